package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/teranos/gwkit/errors"
	"github.com/teranos/gwkit/gw/graph"
	"github.com/teranos/gwkit/gw/types"
	"github.com/teranos/gwkit/logger"
)

// SaveGraph writes g as a new import run in one transaction.
func (s *Store) SaveGraph(ctx context.Context, source string, g *graph.Graph) (RunID, error) {
	if err := s.CheckCompatible(ctx); err != nil {
		return "", err
	}

	start := s.now()
	id := RunID(uuid.NewString())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", wrapDB(err, "begin import")
	}
	w := &writer{ctx: ctx, tx: tx, run: string(id)}
	if err := w.save(source, s.toolVersion, start, g); err != nil {
		tx.Rollback()
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", wrapDB(err, "commit import")
	}

	s.log.Infow("Saved import run",
		logger.FieldRunID, string(id),
		logger.FieldFile, source,
		logger.FieldPersons, len(g.Persons),
		logger.FieldFamilies, len(g.Families),
		logger.FieldDurationMS, s.now().Sub(start).Milliseconds())
	return id, nil
}

// writer inserts the rows of one run inside a transaction.
type writer struct {
	ctx context.Context
	tx  *sql.Tx
	run string
}

func (w *writer) exec(what, query string, args ...interface{}) (sql.Result, error) {
	res, err := w.tx.ExecContext(w.ctx, query, args...)
	if err != nil {
		return nil, wrapDB(err, what)
	}
	return res, nil
}

func (w *writer) save(source, toolVersion string, start time.Time, g *graph.Graph) error {
	if _, err := w.exec("insert run", `
		INSERT INTO import_runs (id, source, tool_version, started_at, persons, families, dummies, base_notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		w.run, source, toolVersion, start, len(g.Persons), len(g.Families), len(g.Dummies()), g.BaseNotes); err != nil {
		return err
	}
	if _, err := w.exec("record writer version", `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		writerVersionKey, toolVersion); err != nil {
		return err
	}

	for i := range g.Persons {
		if err := w.person(&g.Persons[i]); err != nil {
			return errors.Wrapf(err, "person %d", g.Persons[i].ID)
		}
	}
	for i := range g.Families {
		if err := w.family(&g.Families[i]); err != nil {
			return errors.Wrapf(err, "family %d", g.Families[i].ID)
		}
	}
	for name, text := range g.WizardNotes {
		if _, err := w.exec("insert wizard note", `INSERT INTO extra_notes (run_id, kind, name, content) VALUES (?, 'wizard', ?, ?)`,
			w.run, name, text); err != nil {
			return err
		}
	}
	for name, text := range g.PageExts {
		if _, err := w.exec("insert page", `INSERT INTO extra_notes (run_id, kind, name, content) VALUES (?, 'page', ?, ?)`,
			w.run, name, text); err != nil {
			return err
		}
	}
	return nil
}

func optionalPerson(id graph.PersonID) sql.NullInt64 {
	if id == graph.NoPerson {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(id), Valid: true}
}

func optionalFamily(id graph.FamilyID) sql.NullInt64 {
	if id == graph.NoFamily {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(id), Valid: true}
}

func (w *writer) person(p *graph.Person) error {
	if _, err := w.exec("insert person", `
		INSERT INTO persons (run_id, id, first_name, surname, occ, dummy, sex, access, public_name, image,
			occupation, source, death_kind, death_reason, burial_kind, notes, parents)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.run, int(p.ID), p.FirstName, p.Surname, p.Occ, p.Dummy, p.Sex.String(), p.Access.String(),
		p.PublicName, p.Image, p.Occupation, p.Source,
		p.Death.Kind.String(), p.Death.Reason.String(), p.Burial.Kind.String(),
		p.Notes, optionalFamily(p.Parents)); err != nil {
		return err
	}

	names := []struct {
		kind   string
		values []string
	}{
		{"first_name_alias", p.FirstNameAliases},
		{"surname_alias", p.SurnameAliases},
		{"nickname", p.Nicknames},
		{"alias", p.Aliases},
	}
	for _, n := range names {
		for _, v := range n.values {
			if _, err := w.exec("insert name", `INSERT INTO person_names (run_id, person_id, kind, value) VALUES (?, ?, ?, ?)`,
				w.run, int(p.ID), n.kind, v); err != nil {
				return err
			}
		}
	}

	for i, t := range p.Titles {
		startCode, startText := dateColumns(t.Start)
		endCode, endText := dateColumns(t.End)
		if _, err := w.exec("insert title", `
			INSERT INTO titles (run_id, person_id, seq, name, ident, place, start_code, start_text, end_code, end_text, nth)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			w.run, int(p.ID), i, t.Name, t.Ident, t.Place, startCode, startText, endCode, endText, t.Nth); err != nil {
			return err
		}
	}

	vitals := []struct {
		kind string
		info types.EventInfo
	}{
		{"birth", p.Birth},
		{"baptism", p.Baptism},
		{"death", p.Death.EventInfo},
		{"burial", p.Burial.EventInfo},
	}
	for _, v := range vitals {
		if v.info == (types.EventInfo{}) {
			continue
		}
		code, text := dateColumns(v.info.Date)
		if _, err := w.exec("insert vital record", `
			INSERT INTO vital_records (run_id, person_id, kind, date_code, date_text, place, note, source)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			w.run, int(p.ID), v.kind, code, text, v.info.Place, v.info.Note, v.info.Source); err != nil {
			return err
		}
	}

	if err := w.events("person", int(p.ID), p.Events); err != nil {
		return err
	}

	for _, r := range p.Relations {
		if _, err := w.exec("insert relation", `
			INSERT INTO relations (run_id, person_id, type, father, mother, sources) VALUES (?, ?, ?, ?, ?, ?)`,
			w.run, int(p.ID), r.Type.String(), optionalPerson(r.Father), optionalPerson(r.Mother), r.Sources); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) family(f *graph.Family) error {
	divCode, divText := dateColumns(f.Divorce.Date)
	marCode, marText := dateColumns(f.Marriage.Date)
	if _, err := w.exec("insert family", `
		INSERT INTO families (run_id, id, father, mother, relation, divorce, divorce_code, divorce_text,
			marriage_code, marriage_text, marriage_place, marriage_note, marriage_source, comment, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.run, int(f.ID), optionalPerson(f.Father), optionalPerson(f.Mother),
		f.Relation.Kind.String(), f.Divorce.Kind.String(), divCode, divText,
		marCode, marText, f.Marriage.Place, f.Marriage.Note, f.Marriage.Source, f.Comment, f.Source); err != nil {
		return err
	}

	for i, c := range f.Children {
		if _, err := w.exec("insert child", `INSERT INTO children (run_id, family_id, seq, person_id) VALUES (?, ?, ?, ?)`,
			w.run, int(f.ID), i, int(c)); err != nil {
			return err
		}
	}
	for _, wit := range f.Witnesses {
		if _, err := w.exec("insert family witness", `
			INSERT INTO witnesses (run_id, family_id, person_id, kind) VALUES (?, ?, ?, ?)`,
			w.run, int(f.ID), int(wit.Person), wit.Kind.String()); err != nil {
			return err
		}
	}
	return w.events("family", int(f.ID), f.Events)
}

func (w *writer) events(ownerKind string, ownerID int, evs []graph.Event) error {
	for i, e := range evs {
		code, text := dateColumns(e.Date)
		res, err := w.exec("insert event", `
			INSERT INTO events (run_id, owner_kind, owner_id, seq, name, custom, date_code, date_text, place, reason, source, note)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			w.run, ownerKind, ownerID, i, e.Name, e.Custom, code, text, e.Place, e.Reason, e.Source, e.Note)
		if err != nil {
			return err
		}
		if len(e.Witnesses) == 0 {
			continue
		}
		eventID, err := res.LastInsertId()
		if err != nil {
			return errors.Wrap(err, "event id")
		}
		for _, wit := range e.Witnesses {
			if _, err := w.exec("insert event witness", `
				INSERT INTO witnesses (run_id, event_id, person_id, kind) VALUES (?, ?, ?, ?)`,
				w.run, eventID, int(wit.Person), wit.Kind.String()); err != nil {
				return err
			}
		}
	}
	return nil
}
