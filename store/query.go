package store

import (
	"context"
	"database/sql"

	"github.com/teranos/gwkit/errors"
	"github.com/teranos/gwkit/gw/date"
	"github.com/teranos/gwkit/gw/types"
)

// VitalRecord is a stored birth, baptism, death or burial record.
type VitalRecord struct {
	Kind   string
	Date   date.Date
	Place  string
	Note   string
	Source string
}

// CountPersons returns the number of persons stored for a run.
func (s *Store) CountPersons(ctx context.Context, id RunID) (int, error) {
	if _, err := s.Run(ctx, id); err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM persons WHERE run_id = ?", string(id)).Scan(&n); err != nil {
		return 0, wrapDB(err, "count persons")
	}
	return n, nil
}

// Dummies returns the keys of persons referenced but never defined in a run.
func (s *Store) Dummies(ctx context.Context, id RunID) ([]types.Key, error) {
	if _, err := s.Run(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT first_name, surname, occ FROM persons
		WHERE run_id = ? AND dummy = 1
		ORDER BY id`, string(id))
	if err != nil {
		return nil, wrapDB(err, "query dummies")
	}
	defer rows.Close()

	var keys []types.Key
	for rows.Next() {
		var k types.Key
		if err := rows.Scan(&k.FirstName, &k.Surname, &k.Occ); err != nil {
			return nil, errors.Wrap(err, "scan dummy")
		}
		keys = append(keys, k)
	}
	return keys, errors.Wrap(rows.Err(), "iterate dummies")
}

// VitalRecords returns the stored vital records of one person.
func (s *Store) VitalRecords(ctx context.Context, id RunID, personID int) ([]VitalRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, date_code, date_text, place, note, source FROM vital_records
		WHERE run_id = ? AND person_id = ?
		ORDER BY rowid`, string(id), personID)
	if err != nil {
		return nil, wrapDB(err, "query vital records")
	}
	defer rows.Close()

	var out []VitalRecord
	for rows.Next() {
		var (
			r    VitalRecord
			code sql.NullInt64
			text sql.NullString
		)
		if err := rows.Scan(&r.Kind, &code, &text, &r.Place, &r.Note, &r.Source); err != nil {
			return nil, errors.Wrap(err, "scan vital record")
		}
		if r.Date, err = dateFromColumns(code, text); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, errors.Wrap(rows.Err(), "iterate vital records")
}
