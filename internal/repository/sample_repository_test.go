package repository

import (
	"commission-central/internal/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleCommissionRepository(t *testing.T) {
	repo := NewSampleCommissionRepository()

	data, err := repo.LoadCommissionData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.SourceSample, data.Source)
	assert.Equal(t, 82090.11, data.Summary.TotalCommissions)
	require.Len(t, data.TeamMembers, 4)
	assert.Equal(t, "Judd", data.TeamMembers[0].Name)
	assert.Equal(t, 45613.19, data.TeamMembers[0].Total)
	assert.Len(t, data.RevenueStreams, 4)
	assert.Len(t, data.MonthlyTrends, 5)

	names := map[string]bool{}
	for _, m := range data.TeamMembers {
		assert.False(t, names[m.Name], "duplicate member %s", m.Name)
		names[m.Name] = true
		assert.GreaterOrEqual(t, m.ConversionRate, 0.0)
		assert.LessOrEqual(t, m.ConversionRate, 1.0)
	}
}

func TestSampleCommissionRepositoryReturnsIndependentCopies(t *testing.T) {
	repo := NewSampleCommissionRepository()

	first, err := repo.LoadCommissionData(context.Background())
	require.NoError(t, err)
	first.TeamMembers[0].Name = "changed"

	second, err := repo.LoadCommissionData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Judd", second.TeamMembers[0].Name)
}
