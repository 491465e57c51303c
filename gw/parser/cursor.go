package parser

import (
	"strconv"
	"strings"

	"github.com/teranos/gwkit/gw/date"
	"github.com/teranos/gwkit/gw/lexer"
	"github.com/teranos/gwkit/gw/types"
)

// cursor walks the raw tokens of one line left to right.
type cursor struct {
	toks []string
	pos  int
}

func newCursor(toks []string) *cursor {
	return &cursor{toks: toks}
}

func (c *cursor) done() bool {
	return c.pos >= len(c.toks)
}

func (c *cursor) peek() string {
	if c.done() {
		return ""
	}
	return c.toks[c.pos]
}

func (c *cursor) next() string {
	tok := c.peek()
	if !c.done() {
		c.pos++
	}
	return tok
}

// accept consumes tok if it is next.
func (c *cursor) accept(tok string) bool {
	if !c.done() && c.toks[c.pos] == tok {
		c.pos++
		return true
	}
	return false
}

// expectDone fails if any token is left.
func (c *cursor) expectDone() error {
	if c.done() {
		return nil
	}
	return newGrammarError("unexpected token").WithToken(c.peek())
}

// field reads "tag value" when tag is next, decoding the value.
func (c *cursor) field(tag string, dst *string) error {
	if !c.accept(tag) {
		return nil
	}
	if c.done() {
		return newGrammarError("%s needs a value", tag).WithToken(tag)
	}
	*dst = lexer.Decode(c.next())
	return nil
}

// repeated reads "tag value" as many times as tag occurs.
func (c *cursor) repeated(tag string, dst *[]string) error {
	for c.peek() == tag {
		var v string
		if err := c.field(tag, &v); err != nil {
			return err
		}
		*dst = append(*dst, v)
	}
	return nil
}

// group reads a bracketed value that may span tokens, such as "(Jean le Bon)".
// It returns the raw inner text with tokens rejoined by single spaces.
func (c *cursor) group(open, close byte) (string, bool, error) {
	tok := c.peek()
	if tok == "" || tok[0] != open {
		return "", false, nil
	}
	var parts []string
	for !c.done() {
		t := c.next()
		parts = append(parts, t)
		if strings.HasSuffix(t, string(close)) && !strings.HasSuffix(t, `\`+string(close)) {
			s := strings.Join(parts, " ")
			return s[1 : len(s)-1], true, nil
		}
	}
	return "", false, newGrammarError("missing closing %q", string(close)).WithToken(tok)
}

// parseDate parses a raw date token.
func parseDate(tok string) (date.Date, error) {
	d, err := date.Parse(lexer.Decode(tok))
	if err != nil {
		return nil, newDateError(tok, err)
	}
	return d, nil
}

// splitOcc splits "Jean.2" into ("Jean", 2). The suffix counts only when
// it is all digits.
func splitOcc(raw string) (string, int) {
	i := strings.LastIndexByte(raw, '.')
	if i <= 0 || i == len(raw)-1 {
		return lexer.Decode(raw), 0
	}
	n, err := strconv.Atoi(raw[i+1:])
	if err != nil || n < 0 || strings.ContainsAny(raw[i+1:], "+-") {
		return lexer.Decode(raw), 0
	}
	return lexer.Decode(raw[:i]), n
}

// key reads "Surname Firstname[.occ]".
func (c *cursor) key() (types.Key, error) {
	if len(c.toks)-c.pos < 2 {
		return types.Key{}, newGrammarError("expected surname and first name").WithToken(c.peek())
	}
	surname := lexer.Decode(c.next())
	first, occ := splitOcc(c.next())
	return types.Key{FirstName: first, Surname: surname, Occ: occ}, nil
}
