package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/JadedPigeon/typechecker/internal/effectiveness"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, "sqlite", filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Migrate(ctx), "migrate must be idempotent")

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func report(name string, types ...string) *effectiveness.Report {
	return &effectiveness.Report{
		Species:       name,
		Types:         types,
		StrongAgainst: []effectiveness.Relation{{Type: "grass"}, {Type: "ice"}},
		WeakAgainst:   []effectiveness.Relation{{Type: "rock"}},
	}
}

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, err := s.Record(ctx, report("charizard", "fire", "flying"))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, 2, first.StrongCount)
	assert.Equal(t, 1, first.WeakCount)

	_, err = s.Record(ctx, report("pikachu", "electric"))
	require.NoError(t, err)

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "pikachu", got[0].Species)
	assert.Equal(t, []string{"electric"}, got[0].Types)
	assert.Equal(t, first, got[1])
	assert.True(t, got[0].CreatedAt.After(got[1].CreatedAt))

	got, err = s.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRecent_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	for range DefaultLimit + 5 {
		_, err := s.Record(ctx, report("ditto", "normal"))
		require.NoError(t, err)
	}

	got, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultLimit)
}

func TestNilStore(t *testing.T) {
	ctx := context.Background()
	var s *Store

	assert.NoError(t, s.Migrate(ctx))
	l, err := s.Record(ctx, report("pikachu", "electric"))
	assert.NoError(t, err)
	assert.Empty(t, l.ID)
	got, err := s.Recent(ctx, 5)
	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, s.Close())
}

func TestOpen_BadDriver(t *testing.T) {
	_, err := Open(context.Background(), "nope", "")
	assert.ErrorContains(t, err, "failed to open database")
}

func TestRebindForPostgres(t *testing.T) {
	db := sqlx.NewDb(nil, "postgres")
	assert.Equal(t, "SELECT 1 LIMIT $1", db.Rebind("SELECT 1 LIMIT ?"))
}
