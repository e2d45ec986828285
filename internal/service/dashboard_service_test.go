package service

import (
	"bytes"
	"commission-central/internal/models"
	"commission-central/internal/repository"
	"commission-central/internal/utils"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRepository struct {
	data *models.CommissionDataset
	err  error
}

func (r staticRepository) LoadCommissionData(ctx context.Context) (*models.CommissionDataset, error) {
	return r.data, r.err
}

func sampleDataset(t *testing.T) *models.CommissionDataset {
	t.Helper()
	data, err := repository.NewSampleCommissionRepository().LoadCommissionData(context.Background())
	require.NoError(t, err)
	return data
}

func TestBuildDashboardFromSample(t *testing.T) {
	d := BuildDashboard(sampleDataset(t), models.ViewState{})

	assert.Equal(t, models.DefaultPeriod, d.View.SelectedPeriod)
	assert.False(t, d.View.ShowDetails)
	assert.Equal(t, "Sample Data", d.SourceLabel)
	assert.Equal(t, models.PeriodOptions, d.PeriodOptions)

	require.Len(t, d.Metrics, 4)
	assert.Equal(t, "Total Commissions", d.Metrics[0].Title)
	assert.Equal(t, "$82,090", d.Metrics[0].Value)
	assert.Equal(t, "+12.3% vs last month", d.Metrics[0].Change)
	assert.Equal(t, "312", d.Metrics[1].Value)
	assert.Equal(t, "$206", d.Metrics[2].Value)
	assert.Equal(t, "3,985", d.Metrics[3].Value)
}

func TestLeaderboardOrderAndFormatting(t *testing.T) {
	d := BuildDashboard(sampleDataset(t), models.ViewState{})

	require.Len(t, d.Leaderboard, 4)
	names := make([]string, 0, 4)
	for _, e := range d.Leaderboard {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Judd", "Deonte", "Sal", "Jon"}, names)

	judd := d.Leaderboard[0]
	assert.Equal(t, 1, judd.Rank)
	assert.Equal(t, "$45,613", judd.FormattedTotal)
	assert.Equal(t, "67.0%", judd.FormattedConversionRate)
	assert.InDelta(t, 100.0, judd.BarWidthPercent, 1e-9)
	assert.InDelta(t, 20472.42/45613.19*100, d.Leaderboard[1].BarWidthPercent, 1e-9)

	require.Len(t, d.Comparison, 4)
	assert.Equal(t, "Judd", d.Comparison[0].Name)
	assert.Equal(t, 680.0, d.Comparison[0].Wireline)
	assert.Equal(t, "Jon", d.Comparison[3].Name)
}

func TestRankByTotalIsStableAndDoesNotMutate(t *testing.T) {
	members := []models.CommissionRecord{
		{Name: "A", Total: 10},
		{Name: "B", Total: 20},
		{Name: "C", Total: 10},
		{Name: "D", Total: 20},
	}

	ranked := RankByTotal(members)

	got := make([]string, 0, len(ranked))
	for _, m := range ranked {
		got = append(got, m.Name)
	}
	assert.Equal(t, []string{"B", "D", "A", "C"}, got)
	assert.Equal(t, "A", members[0].Name)
}

func TestBuildStreamSlices(t *testing.T) {
	slices := BuildStreamSlices([]models.RevenueStream{
		{Name: "One", Value: 75, Color: "#111111", Deals: 3, AvgDeal: 25},
		{Name: "Two", Value: 25, Color: "#222222", Deals: 1, AvgDeal: 25},
	})

	require.Len(t, slices, 2)
	assert.Equal(t, "75.0%", slices[0].FormattedShare)
	assert.Equal(t, "25.0%", slices[1].FormattedShare)
	assert.Equal(t, "$75", slices[0].FormattedValue)
	assert.Equal(t, "#111111", slices[0].Color)
	assert.Equal(t, 25.0, slices[0].AvgDeal)
	assert.Equal(t, "$25", slices[0].FormattedAvgDeal)

	empty := BuildStreamSlices([]models.RevenueStream{{Name: "Zero"}})
	assert.Equal(t, "0.0%", empty[0].FormattedShare)
}

func TestTrendSeriesKeepsStoredOrder(t *testing.T) {
	data := sampleDataset(t)
	trends := BuildTrendSeries(data.MonthlyTrends)

	require.Len(t, trends, 5)
	assert.Equal(t, "Aug", trends[0].Month)
	assert.Equal(t, "Dec", trends[4].Month)
	assert.Equal(t, "$82,090", trends[4].FormattedTotal)

	assert.Equal(t, []string{"$0K", "$21K", "$42K", "$63K", "$84K"}, BuildTrendAxis(data.MonthlyTrends))
	assert.Equal(t, []string{"$0K"}, BuildTrendAxis(nil))
}

func TestSourceLabel(t *testing.T) {
	assert.Equal(t, "Sample Data", SourceLabel(models.SourceSample))
	assert.Equal(t, "Imported Data", SourceLabel(models.SourceImported))
	assert.Equal(t, "Live Data", SourceLabel(models.SourceLive))
	assert.Equal(t, "Sample Data", SourceLabel(""))
}

func TestDashboardServiceFlagsTotalDrift(t *testing.T) {
	var buf bytes.Buffer
	logger := utils.NewLogger(&buf, "warn")
	data := &models.CommissionDataset{
		Source: models.SourceLive,
		TeamMembers: []models.CommissionRecord{
			{Name: "Exact", Upfront: 10, Residual: 5, Total: 15},
			{Name: "Drifted", Upfront: 10, Residual: 5, Total: 16},
		},
	}
	svc := NewDashboardService(staticRepository{data: data}, logger)

	d, err := svc.GetDashboard(context.Background(), models.ViewState{SelectedPeriod: "Q4 2025", ShowDetails: true})
	require.NoError(t, err)

	assert.Equal(t, "Q4 2025", d.View.SelectedPeriod)
	assert.True(t, d.View.ShowDetails)
	assert.Equal(t, "Live Data", d.SourceLabel)
	assert.Equal(t, 16.0, d.Leaderboard[0].Total)
	assert.Contains(t, buf.String(), `"member":"Drifted"`)
	assert.NotContains(t, buf.String(), `"member":"Exact"`)
}

func TestDashboardServiceFlagsOutOfRangeRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := utils.NewLogger(&buf, "warn")
	data := &models.CommissionDataset{
		TeamMembers: []models.CommissionRecord{
			{Name: "Overconverted", Upfront: 1, Total: 1, ConversionRate: 1.5},
		},
	}
	svc := NewDashboardService(staticRepository{data: data}, logger)

	got, err := svc.LoadDataset(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1.5, got.TeamMembers[0].ConversionRate)
	assert.Contains(t, buf.String(), "Commission record out of range")
	assert.Contains(t, buf.String(), "ConversionRate")
}

func TestDashboardServiceWrapsRepositoryErrors(t *testing.T) {
	svc := NewDashboardService(staticRepository{err: errors.New("connection refused")}, quietLogger())

	_, err := svc.GetDashboard(context.Background(), models.ViewState{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
