// Package loader reads KORE definitions and patterns from YAML.
//
// A definition file lists modules, each an ordered list of declarations:
//
//	modules:
//	  - name: KERNEL
//	    declarations:
//	      - sort: SortInt
//	        hook: INT.Int
//	      - symbol: "inj{From, To}(From) : To"
//	        attributes: {sortInjection: {}}
//	      - axiom: {app: inj, sorts: [SortInt, SortKItem], args: [{var: X, sort: SortInt}]}
//	        attributes: {subsort: {sorts: [SortInt, SortKItem]}}
//
// Sorts are written in canonical form. A bare name denotes a sort variable
// when the enclosing declaration lists it in params (or, for symbols and
// aliases, between the braces of the signature) and a nullary sort otherwise.
package loader
