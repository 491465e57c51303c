package date

import (
	"strconv"
	"strings"

	"github.com/teranos/gwkit/errors"
)

// Parse reads a GW date text.
//
//	[~?<>] d/m/y | m/y | y  [ "|" dmy | ".." dmy ]  [G|J|F|H]
//	0(free text)
//
// "0" on its own is an absent date and yields nil.
func Parse(text string) (Date, error) {
	s := strings.TrimSpace(text)
	if s == "" || s == "0" {
		return nil, nil
	}
	if strings.HasPrefix(s, "0(") {
		if !strings.HasSuffix(s, ")") {
			return nil, errors.Wrapf(errors.ErrDateParse, "unterminated text date %q", text)
		}
		return TextDate{Text: s[2 : len(s)-1]}, nil
	}

	sc := &scanner{s: s}
	kind := Sure
	switch s[0] {
	case '~':
		kind = About
	case '?':
		kind = Maybe
	case '<':
		kind = Before
	case '>':
		kind = After
	}
	if kind != Sure {
		sc.pos++
	}

	dv, err := sc.dmy()
	if err != nil {
		return nil, errors.Wrapf(err, "in %q", text)
	}
	dv.Prec = Prec(kind)

	switch {
	case sc.consume("|"):
		bound, err := sc.dmy()
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", text)
		}
		dv.Prec = Precision{Kind: OrYear, Bound: &bound}
	case sc.consume(".."):
		bound, err := sc.dmy()
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", text)
		}
		dv.Prec = Precision{Kind: YearInt, Bound: &bound}
	}

	cal := Gregorian
	if !sc.done() {
		if c, ok := calendarOfLetter(s[sc.pos]); ok {
			cal = c
			sc.pos++
		}
	}
	if !sc.done() {
		return nil, errors.Wrapf(errors.ErrDateParse, "unexpected %q after date in %q", s[sc.pos:], text)
	}
	return CalendarDate{DateValue: dv, Calendar: cal}, nil
}

type scanner struct {
	s   string
	pos int
}

func (sc *scanner) done() bool {
	return sc.pos >= len(sc.s)
}

func (sc *scanner) consume(lit string) bool {
	if strings.HasPrefix(sc.s[sc.pos:], lit) {
		sc.pos += len(lit)
		return true
	}
	return false
}

func (sc *scanner) number() (int, bool) {
	start := sc.pos
	for sc.pos < len(sc.s) && sc.s[sc.pos] >= '0' && sc.s[sc.pos] <= '9' {
		sc.pos++
	}
	if start == sc.pos {
		return 0, false
	}
	n, err := strconv.Atoi(sc.s[start:sc.pos])
	return n, err == nil
}

// dmy reads one to three slash-separated numbers. The last is always the
// year; earlier groups shift into the month and then day roles.
func (sc *scanner) dmy() (DateValue, error) {
	var groups []int
	for {
		n, ok := sc.number()
		if !ok {
			if sc.done() {
				return DateValue{}, errors.Wrap(errors.ErrDateParse, "missing number")
			}
			return DateValue{}, errors.Wrapf(errors.ErrDateParse, "expected number at %q", sc.s[sc.pos:])
		}
		groups = append(groups, n)
		if len(groups) == 3 || !sc.consume("/") {
			break
		}
	}

	var dv DateValue
	switch len(groups) {
	case 1:
		dv.Year = groups[0]
	case 2:
		dv.Month, dv.Year = groups[0], groups[1]
	case 3:
		dv.Day, dv.Month, dv.Year = groups[0], groups[1], groups[2]
	}
	if len(groups) >= 2 && (dv.Month < 1 || dv.Month > 12) {
		return DateValue{}, errors.Wrapf(errors.ErrDateParse, "month %d out of range", dv.Month)
	}
	if len(groups) == 3 && (dv.Day < 1 || dv.Day > 31) {
		return DateValue{}, errors.Wrapf(errors.ErrDateParse, "day %d out of range", dv.Day)
	}
	return dv, nil
}

// IsDateText reports whether a token looks like the start of a date:
// a digit, or a precision marker followed by a digit.
func IsDateText(tok string) bool {
	if tok == "" {
		return false
	}
	if isDigit(tok[0]) {
		return true
	}
	switch tok[0] {
	case '~', '?', '<', '>':
		return len(tok) > 1 && isDigit(tok[1])
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
