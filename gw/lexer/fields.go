package lexer

import "strings"

// RawFields splits a line on runs of spaces and tabs without decoding tokens.
func RawFields(line string) []string {
	return strings.FieldsFunc(line, isBlank)
}

// Fields splits a line into decoded tokens.
func Fields(line string) []string {
	raw := RawFields(line)
	out := make([]string, len(raw))
	for i, tok := range raw {
		out[i] = Decode(tok)
	}
	return out
}

// Decode applies the token escape rules to a single raw token.
func Decode(tok string) string {
	if !strings.ContainsAny(tok, "\\_") {
		return tok
	}
	var b strings.Builder
	b.Grow(len(tok))
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		switch {
		case c == '\\' && i+1 < len(tok):
			i++
			b.WriteByte(tok[i])
		case c == '_':
			b.WriteByte(' ')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// SplitUnescaped splits s on sep, ignoring separators preceded by a backslash.
// Escapes are preserved in the pieces so they can be decoded afterwards.
func SplitUnescaped(s string, sep byte) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}
