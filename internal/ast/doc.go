// Package ast defines the data model of parsed KORE definitions: sorts,
// symbols, patterns, declarations and modules.
//
// Sorts and patterns are closed variants. Code that needs kind-specific
// behavior switches over the concrete types; the unexported marker methods
// keep other packages from adding members.
//
// Patterns are treated as immutable trees. Substitution and alias expansion
// return new trees and copy every symbol they rebuild, so two expansions of
// the same alias never share symbol objects. The only mutation permitted on
// a symbol after construction is Instantiate and the tag/layout assignment
// performed by the definition preprocessing pass.
package ast
