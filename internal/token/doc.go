// Package token defines the lexical word kinds of the business-language subset.
// Invariants:
//   - Token.Text is exactly the source slice covered by Token.Span.
//   - Source text is lower-cased before lexing, so keywords are matched
//     case-sensitively against lower-case spellings only.
//   - A string literal keeps its quotes in Text.
package token
