// Package mathovi converts a small plain-text math notation into LaTeX.
//
// A source text is a list of statements separated by semicolons, e.g.
// "a = sqrt(x) / 2; b = 2 * (3 + 4)". Symbols are single letters, numbers are
// decimals, and the operators are + - * / ^ and =. The functions sqrt, sin,
// and cos take one parenthesized argument each, and "..." is an ellipsis.
//
// Conversion is in three stages. Lex turns text into tokens, Parse builds one
// expression tree per statement, and Render produces the LaTeX fragment for a
// tree. Convert runs all three.
//
// Operators at the same precedence group to the right: "a - b - c" is
// "a - (b - c)". The LeftAssociative parse option changes this for arithmetic.
// Unary minus applies to the entire remaining expression, so "-a + b" is
// "-(a + b)".
//
package mathovi
