// Package ast holds the typed model produced by the parsers: declared data
// items with their picture types, resolved identifiers, values and the
// instruction tree of the procedure section.
//
// Every node is built once, bottom-up, and never mutated afterwards. A
// Repeat exclusively owns its body.
package ast
