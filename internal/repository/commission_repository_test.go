package repository

import (
	"commission-central/internal/models"
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", filepath.Join(t.TempDir(), "commissions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, CreateCommissionSchema(context.Background(), db))
	return db
}

func TestSQLCommissionRepositoryRoundTripsSeededData(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)

	sample, err := NewSampleCommissionRepository().LoadCommissionData(ctx)
	require.NoError(t, err)
	require.NoError(t, SeedCommissionData(ctx, db, sample))

	got, err := NewSQLCommissionRepository(db).LoadCommissionData(ctx)
	require.NoError(t, err)

	assert.Equal(t, models.SourceLive, got.Source)
	want := *sample
	want.Source = models.SourceLive
	if diff := cmp.Diff(&want, got); diff != "" {
		t.Errorf("dataset mismatch (-want +got):\n%s", diff)
	}
}

func TestSeedCommissionDataReplacesRows(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)

	sample, err := NewSampleCommissionRepository().LoadCommissionData(ctx)
	require.NoError(t, err)
	require.NoError(t, SeedCommissionData(ctx, db, sample))

	smaller := *sample
	smaller.TeamMembers = sample.TeamMembers[:1]
	require.NoError(t, SeedCommissionData(ctx, db, &smaller))

	got, err := NewSQLCommissionRepository(db).LoadCommissionData(ctx)
	require.NoError(t, err)
	require.Len(t, got.TeamMembers, 1)
	assert.Equal(t, "Judd", got.TeamMembers[0].Name)
}

func TestSQLCommissionRepositoryEmptySummary(t *testing.T) {
	_, err := NewSQLCommissionRepository(newSQLiteDB(t)).LoadCommissionData(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "commission summary")
}
