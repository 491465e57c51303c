// Package date models GW calendar dates with uncertainty.
//
// A DateValue is a day/month/year triple where 0 means "unknown component",
// tagged with a Precision. Range precisions (OrYear, YearInt) carry a second
// bound. The Calendar on a CalendarDate is a display and storage tag only:
// all day-count arithmetic in this package is proleptic Gregorian.
package date

// PrecisionKind is the uncertainty tag of a date.
type PrecisionKind int

const (
	Sure PrecisionKind = iota
	About
	Maybe
	Before
	After
	OrYear  // "either this date or Bound"
	YearInt // "between this date and Bound"
)

var precisionNames = [...]string{"sure", "about", "maybe", "before", "after", "oryear", "yearint"}

func (k PrecisionKind) String() string {
	if k < 0 || int(k) >= len(precisionNames) {
		return "unknown"
	}
	return precisionNames[k]
}

// Precision is a PrecisionKind plus, for OrYear and YearInt, the second bound.
type Precision struct {
	Kind  PrecisionKind
	Bound *DateValue
}

// Prec returns a bound-less precision of the given kind.
func Prec(k PrecisionKind) Precision {
	return Precision{Kind: k}
}

// IsRange reports whether the precision carries a second bound.
func (p Precision) IsRange() bool {
	return p.Kind == OrYear || p.Kind == YearInt
}

// DateValue is a day/month/year triple; 0 marks an unknown component.
type DateValue struct {
	Day   int
	Month int
	Year  int
	Prec  Precision
	Delta int
}

// Calendar tags how a date was written in the source.
type Calendar int

const (
	Gregorian Calendar = iota
	Julian
	French
	Hebrew
)

func (c Calendar) String() string {
	switch c {
	case Julian:
		return "julian"
	case French:
		return "french"
	case Hebrew:
		return "hebrew"
	default:
		return "gregorian"
	}
}

// Letter returns the GW suffix letter for the calendar.
func (c Calendar) Letter() byte {
	switch c {
	case Julian:
		return 'J'
	case French:
		return 'F'
	case Hebrew:
		return 'H'
	default:
		return 'G'
	}
}

func calendarOfLetter(b byte) (Calendar, bool) {
	switch b {
	case 'G':
		return Gregorian, true
	case 'J':
		return Julian, true
	case 'F':
		return French, true
	case 'H':
		return Hebrew, true
	}
	return Gregorian, false
}

// Date is either a CalendarDate or a TextDate. An absent date is nil.
type Date interface {
	isDate()
	String() string
}

// CalendarDate is a structured date with its calendar tag.
type CalendarDate struct {
	DateValue
	Calendar Calendar
}

// TextDate is a free-text historical notation written as 0(text).
type TextDate struct {
	Text string
}

func (CalendarDate) isDate() {}
func (TextDate) isDate()     {}

// Value returns the structured value of d, if it has one.
func Value(d Date) (DateValue, bool) {
	if cd, ok := d.(CalendarDate); ok {
		return cd.DateValue, true
	}
	return DateValue{}, false
}
