package date

import (
	"strconv"
	"strings"
)

// String renders the value in GW date syntax, without a calendar letter.
func (d DateValue) String() string {
	var b strings.Builder
	switch d.Prec.Kind {
	case About:
		b.WriteByte('~')
	case Maybe:
		b.WriteByte('?')
	case Before:
		b.WriteByte('<')
	case After:
		b.WriteByte('>')
	}
	writeDMY(&b, d)
	if d.Prec.IsRange() && d.Prec.Bound != nil {
		if d.Prec.Kind == OrYear {
			b.WriteByte('|')
		} else {
			b.WriteString("..")
		}
		writeDMY(&b, *d.Prec.Bound)
	}
	return b.String()
}

func writeDMY(b *strings.Builder, d DateValue) {
	if d.Day != 0 {
		b.WriteString(strconv.Itoa(d.Day))
		b.WriteByte('/')
	}
	if d.Day != 0 || d.Month != 0 {
		b.WriteString(strconv.Itoa(d.Month))
		b.WriteByte('/')
	}
	b.WriteString(strconv.Itoa(d.Year))
}

func (d CalendarDate) String() string {
	if d.Calendar == Gregorian {
		return d.DateValue.String()
	}
	return d.DateValue.String() + string(d.Calendar.Letter())
}

func (d TextDate) String() string {
	return "0(" + d.Text + ")"
}
