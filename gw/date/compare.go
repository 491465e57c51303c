package date

import (
	"github.com/teranos/gwkit/errors"
)

// Compare orders d against o and returns -1, 0 or 1.
// The boolean is false when the order cannot be decided; that only happens in
// strict mode, where an unknown component or an open bound (Before/After) on
// the wrong side makes the numeric order untrustworthy.
func (d DateValue) Compare(o DateValue, strict bool) (int, bool) {
	pairs := [3][2]int{
		{d.Year, o.Year},
		{d.Month, o.Month},
		{d.Day, o.Day},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		switch {
		case a != 0 && b != 0:
			if a == b {
				continue
			}
			if a < b {
				if strict && (d.Prec.Kind == After || o.Prec.Kind == Before) {
					return 0, false
				}
				return -1, true
			}
			if strict && (o.Prec.Kind == After || d.Prec.Kind == Before) {
				return 0, false
			}
			return 1, true
		case a == 0 && b == 0:
			return comparePrecision(d, o, strict)
		case a == 0:
			switch d.Prec.Kind {
			case After:
				return 1, true
			case Before:
				return -1, true
			}
			if strict {
				return 0, false
			}
			return comparePrecision(d, o, strict)
		default:
			switch o.Prec.Kind {
			case After:
				return -1, true
			case Before:
				return 1, true
			}
			if strict {
				return 0, false
			}
			return comparePrecision(d, o, strict)
		}
	}
	return comparePrecision(d, o, strict)
}

// Equal reports whether d and o denote the same date under non-strict comparison.
func (d DateValue) Equal(o DateValue) (bool, error) {
	c, ok := d.Compare(o, false)
	if !ok {
		return false, errors.Wrapf(errors.ErrNotComparable, "%s vs %s", d, o)
	}
	return c == 0, nil
}

func isLoose(k PrecisionKind) bool {
	return k == Sure || k == About || k == Maybe
}

// comparePrecision orders two dates that agree on every known component.
func comparePrecision(d, o DateValue, strict bool) (int, bool) {
	dk, ek := d.Prec.Kind, o.Prec.Kind
	switch {
	case isLoose(dk) && isLoose(ek):
		return 0, true
	case dk == ek && (dk == Before || dk == After):
		return 0, true
	case dk == ek && d.Prec.IsRange():
		if d.Prec.Bound == nil || o.Prec.Bound == nil {
			return 0, true
		}
		db, ob := *d.Prec.Bound, *o.Prec.Bound
		db.Prec, ob.Prec = Prec(Sure), Prec(Sure)
		return db.Compare(ob, strict)
	case dk == Before && ek == After:
		return -1, true
	case dk == After && ek == Before:
		return 1, true
	}
	return 0, true
}

// Compare orders two dates. Free-text and absent dates, and pairs whose order
// is undecidable, fail with errors.ErrNotComparable.
func Compare(a, b Date, strict bool) (int, error) {
	av, aok := Value(a)
	bv, bok := Value(b)
	if !aok || !bok {
		return 0, errors.Wrapf(errors.ErrNotComparable, "%s vs %s", describe(a), describe(b))
	}
	c, ok := av.Compare(bv, strict)
	if !ok {
		return 0, errors.Wrapf(errors.ErrNotComparable, "%s vs %s", av, bv)
	}
	return c, nil
}

// Equal reports whether two dates are equal; see Compare for failures.
func Equal(a, b Date) (bool, error) {
	c, err := Compare(a, b, false)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

func describe(d Date) string {
	if d == nil {
		return "<none>"
	}
	return d.String()
}
