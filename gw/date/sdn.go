package date

import (
	"github.com/teranos/gwkit/errors"
)

// SDN returns the sequential day number of d on the proleptic Gregorian
// calendar. The date's calendar tag is not consulted.
func SDN(d DateValue) (int, error) {
	if d.Day <= 0 || d.Month <= 0 || d.Year == 0 {
		return 0, errors.NewInvalidRequestError("day number needs a complete date, got %s", d)
	}
	a := (14 - d.Month) / 12
	y := d.Year + 4800 - a
	m := d.Month + 12*a - 3
	return d.Day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045, nil
}

// CombinePrecision derives the precision of a span between two dates.
func CombinePrecision(p1, p2 PrecisionKind) PrecisionKind {
	in := func(k PrecisionKind, set ...PrecisionKind) bool {
		for _, s := range set {
			if k == s {
				return true
			}
		}
		return false
	}
	switch {
	case p1 == Sure && p2 == Sure:
		return Sure
	case isLoose(p1) && isLoose(p2):
		return Maybe
	case in(p1, About, Maybe, Sure, Before) && in(p2, After, Sure, Maybe, About):
		return After
	case in(p1, After, Sure, Maybe, About) && in(p2, About, Maybe, Sure, Before):
		return Before
	}
	return Maybe
}

// Difference measures the span from one date to another as years, months and
// days using fixed 365-day years and 30-day months. It returns nil when both
// dates carry the same open bound (Before/After), since such a span is unbounded.
func Difference(from, to DateValue) (*DateValue, error) {
	if from.Prec.Kind == to.Prec.Kind && (from.Prec.Kind == Before || from.Prec.Kind == After) {
		return nil, nil
	}
	s1, err := SDN(from)
	if err != nil {
		return nil, err
	}
	s2, err := SDN(to)
	if err != nil {
		return nil, err
	}
	delta := s2 - s1
	rem := floorMod(delta, 365)
	return &DateValue{
		Year:  floorDiv(delta, 365),
		Month: rem / 30,
		Day:   rem % 30,
		Prec:  Prec(CombinePrecision(from.Prec.Kind, to.Prec.Kind)),
	}, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
