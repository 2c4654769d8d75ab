// Package testutil builds KORE fixtures for tests and compares output
// against golden files.
//
// Sorts in patterns and attributes follow one naming rule: a name starting
// with "Sort" is a composite sort, anything else is a sort variable. Symbol
// declarations are written as signatures, e.g. "inj{From, To}(From) : To",
// where the braces list the sort variables.
package testutil
