// Package lexer turns GW source text into a stream of non-blank lines and
// splits lines into escape-decoded tokens.
//
// Token decoding rules:
//   - a backslash copies the following character literally
//   - an unescaped underscore becomes a space
//   - a trailing lone backslash is kept as-is
//
// Malformed escapes never fail; they degrade to a literal copy.
package lexer
