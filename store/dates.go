package store

import (
	"database/sql"

	"github.com/teranos/gwkit/errors"
	"github.com/teranos/gwkit/gw/date"
)

// dateColumns splits a date into its storage pair: the compressed integer
// for simple Gregorian dates, otherwise the GW text.
func dateColumns(d date.Date) (sql.NullInt64, sql.NullString) {
	switch v := d.(type) {
	case nil:
		return sql.NullInt64{}, sql.NullString{}
	case date.CalendarDate:
		if v.Calendar == date.Gregorian {
			if code, ok := v.DateValue.Compress(); ok {
				return sql.NullInt64{Int64: int64(code), Valid: true}, sql.NullString{}
			}
		}
	}
	return sql.NullInt64{}, sql.NullString{String: d.String(), Valid: true}
}

// dateFromColumns reverses dateColumns.
func dateFromColumns(code sql.NullInt64, text sql.NullString) (date.Date, error) {
	switch {
	case code.Valid:
		return date.CalendarDate{DateValue: date.Uncompress(int(code.Int64)), Calendar: date.Gregorian}, nil
	case text.Valid:
		d, err := date.Parse(text.String)
		if err != nil {
			return nil, errors.Wrapf(err, "stored date %q", text.String)
		}
		return d, nil
	}
	return nil, nil
}
