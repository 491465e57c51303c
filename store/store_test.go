package store

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/teranos/gwkit/db"
	"github.com/teranos/gwkit/errors"
	"github.com/teranos/gwkit/gw/date"
	"github.com/teranos/gwkit/gw/graph"
	"github.com/teranos/gwkit/gw/parser"
	"github.com/teranos/gwkit/gw/types"
	qtesting "github.com/teranos/gwkit/internal/testing"
)

const sample = `fam Doe John 12/5/1900 #bp Paris 1970 + Roy Anne ~1903
wit: m: Martin Luc
fevt
#marr 10/6/1925 #p Rome
wit: #godp Martin Luc
end fevt
beg
- h Paul #nick Polo 0(spring_1926)
- f Marie 1928J
end
rel Doe Paul
beg
- godp fath: Martin Luc
end
notes Doe Paul
Quiet man.
end notes
wizard-note jdoe
checked
end wizard-note
`

func sampleGraph(t *testing.T) *graph.Graph {
	t.Helper()
	res, err := parser.Parse(strings.NewReader(sample), parser.Options{Logger: zap.NewNop().Sugar()})
	require.NoError(t, err)
	return graph.Build(res.Blocks)
}

func newStore(t *testing.T, opts ...Option) (*Store, *sql.DB) {
	t.Helper()
	conn := qtesting.CreateTestDB(t)
	return New(conn, zap.NewNop().Sugar(), opts...), conn
}

func TestSaveGraph(t *testing.T) {
	ctx := context.Background()
	s, conn := newStore(t, WithToolVersion("1.4.0"))
	g := sampleGraph(t)

	id, err := s.SaveGraph(ctx, "family.gw", g)
	require.NoError(t, err)
	assert.Len(t, string(id), 36)

	run, err := s.Run(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "family.gw", run.Source)
	assert.Equal(t, "1.4.0", run.ToolVersion)
	assert.Equal(t, len(g.Persons), run.Persons)
	assert.Equal(t, 1, run.Families)
	assert.Equal(t, len(g.Dummies()), run.Dummies)

	n, err := s.CountPersons(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, len(g.Persons), n)

	dummies, err := s.Dummies(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []types.Key{{FirstName: "Luc", Surname: "Martin"}}, dummies)

	var children, witnesses, events, relations, wizard int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM children WHERE run_id = ?", string(id)).Scan(&children))
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM witnesses WHERE run_id = ?", string(id)).Scan(&witnesses))
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM events WHERE run_id = ?", string(id)).Scan(&events))
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM relations WHERE run_id = ?", string(id)).Scan(&relations))
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM extra_notes WHERE run_id = ? AND kind = 'wizard'", string(id)).Scan(&wizard))
	assert.Equal(t, 2, children)
	assert.Equal(t, 2, witnesses)
	assert.Equal(t, 1, events)
	assert.Equal(t, 1, relations)
	assert.Equal(t, 1, wizard)

	var notes string
	paul, ok := g.Lookup(types.Key{FirstName: "Paul", Surname: "Doe"})
	require.True(t, ok)
	require.NoError(t, conn.QueryRow("SELECT notes FROM persons WHERE run_id = ? AND id = ?", string(id), int(paul.ID)).Scan(&notes))
	assert.Equal(t, "Quiet man.", notes)
}

func TestSaveGraph_DatesRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	g := sampleGraph(t)

	id, err := s.SaveGraph(ctx, "family.gw", g)
	require.NoError(t, err)

	records := func(first string) map[string]VitalRecord {
		p, ok := g.Lookup(types.Key{FirstName: first, Surname: "Doe"})
		require.True(t, ok)
		recs, err := s.VitalRecords(ctx, id, int(p.ID))
		require.NoError(t, err)
		out := map[string]VitalRecord{}
		for _, r := range recs {
			out[r.Kind] = r
		}
		return out
	}

	john := records("John")
	assert.Equal(t, qtesting.Date(t, "12/5/1900"), john["birth"].Date)
	assert.Equal(t, "Paris", john["birth"].Place)
	assert.Equal(t, qtesting.Date(t, "1970"), john["death"].Date)

	// free text and non-Gregorian dates are kept as text
	assert.Equal(t, date.TextDate{Text: "spring 1926"}, records("Paul")["birth"].Date)
	assert.Equal(t, qtesting.Date(t, "1928J"), records("Marie")["birth"].Date)
}

func TestDateColumns(t *testing.T) {
	code, text := dateColumns(nil)
	assert.False(t, code.Valid)
	assert.False(t, text.Valid)

	code, text = dateColumns(qtesting.Date(t, "~1950"))
	assert.True(t, code.Valid)
	assert.False(t, text.Valid)

	code, text = dateColumns(qtesting.Date(t, "1950|1951"))
	assert.False(t, code.Valid)
	assert.Equal(t, "1950|1951", text.String)

	d, err := dateFromColumns(sql.NullInt64{}, sql.NullString{String: "13/13/1900", Valid: true})
	assert.Error(t, err)
	assert.Nil(t, d)
}

func TestRuns(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	g := sampleGraph(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	first, err := s.SaveGraph(ctx, "a.gw", g)
	require.NoError(t, err)

	s.now = func() time.Time { return base.Add(time.Hour) }
	second, err := s.SaveGraph(ctx, "b.gw", g)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
	assert.True(t, runs[1].StartedAt.Equal(base))
}

func TestRun_NotFound(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	_, err := s.Run(ctx, "missing")
	assert.True(t, errors.IsNotFoundError(err))
	_, err = s.CountPersons(ctx, "missing")
	assert.True(t, errors.IsNotFoundError(err))
	_, err = s.Dummies(ctx, "missing")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestCheckCompatible(t *testing.T) {
	ctx := context.Background()
	g := sampleGraph(t)

	s, conn := newStore(t, WithToolVersion("2.1.0"))
	require.NoError(t, s.CheckCompatible(ctx), "empty database is compatible")
	_, err := s.SaveGraph(ctx, "a.gw", g)
	require.NoError(t, err)

	same := New(conn, zap.NewNop().Sugar(), WithToolVersion("2.0.0"))
	assert.NoError(t, same.CheckCompatible(ctx))

	older := New(conn, zap.NewNop().Sugar(), WithToolVersion("1.9.0"))
	err = older.CheckCompatible(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompatibleSchema))
	assert.NotEmpty(t, errors.GetAllHints(err))

	_, err = older.SaveGraph(ctx, "b.gw", g)
	assert.True(t, errors.Is(err, ErrIncompatibleSchema))
}

func TestCheckCompatible_Mock(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM meta WHERE key = ?")).
		WithArgs(writerVersionKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("not-semver"))

	s := New(conn, zap.NewNop().Sugar(), WithToolVersion("1.0.0"))
	err = s.CheckCompatible(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-semver")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveGraph_RollsBackOnFailure(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM meta WHERE key = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO import_runs")).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	s := New(conn, zap.NewNop().Sugar(), WithToolVersion("1.0.0"))
	_, err = s.SaveGraph(context.Background(), "a.gw", sampleGraph(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert run")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveGraph_ClosedDatabase(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM meta WHERE key = ?")).
		WillReturnError(errors.New("sql: database is closed"))

	s := New(conn, zap.NewNop().Sugar(), WithToolVersion("1.0.0"))
	_, err = s.SaveGraph(context.Background(), "a.gw", sampleGraph(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrDatabaseClosed))
	conn.Close()
}
