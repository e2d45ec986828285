package service

import (
	"commission-central/internal/models"
	"commission-central/internal/repository"
	"commission-central/internal/utils"
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// totalDriftTolerance is half a cent.
const totalDriftTolerance = 0.005

type DashboardService struct {
	repo     repository.CommissionRepository
	validate *validator.Validate
	logger   *logrus.Logger
}

func NewDashboardService(repo repository.CommissionRepository, logger *logrus.Logger) *DashboardService {
	return &DashboardService{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

// LoadDataset reads the dataset and flags members that break the record
// invariants or whose stored total does not match the sum of their
// components. Records are never corrected.
func (s *DashboardService) LoadDataset(ctx context.Context) (*models.CommissionDataset, error) {
	data, err := s.repo.LoadCommissionData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load commission data: %w", err)
	}

	for _, member := range data.TeamMembers {
		if err := s.validate.Struct(member); err != nil {
			s.logger.WithError(err).WithField("member", member.Name).Warn("Commission record out of range")
		}

		sum := member.ComponentSum()
		if math.Abs(sum-member.Total) > totalDriftTolerance {
			s.logger.WithFields(logrus.Fields{
				"member":        member.Name,
				"stored_total":  member.Total,
				"component_sum": sum,
			}).Warn("Stored commission total differs from its components")
		}
	}

	return data, nil
}

// GetDashboard loads the dataset and projects it for the given view state.
func (s *DashboardService) GetDashboard(ctx context.Context, view models.ViewState) (*models.Dashboard, error) {
	data, err := s.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	return BuildDashboard(data, view), nil
}

// BuildDashboard is a pure projection of data into the page model.
func BuildDashboard(data *models.CommissionDataset, view models.ViewState) *models.Dashboard {
	if view.SelectedPeriod == "" {
		view.SelectedPeriod = models.DefaultPeriod
	}
	view.DataSource = SourceLabel(data.Source)

	ranked := RankByTotal(data.TeamMembers)

	return &models.Dashboard{
		View:          view,
		SourceLabel:   view.DataSource,
		Metrics:       BuildMetricCards(data.Summary),
		Trends:        BuildTrendSeries(data.MonthlyTrends),
		TrendAxis:     BuildTrendAxis(data.MonthlyTrends),
		Streams:       BuildStreamSlices(data.RevenueStreams),
		Leaderboard:   BuildLeaderboard(ranked),
		Comparison:    BuildComparison(ranked),
		PeriodOptions: append([]string(nil), models.PeriodOptions...),
	}
}

// SourceLabel maps a dataset source to the label shown beside the title.
func SourceLabel(source string) string {
	switch source {
	case models.SourceImported:
		return "Imported Data"
	case models.SourceLive:
		return "Live Data"
	default:
		return "Sample Data"
	}
}

func BuildMetricCards(summary models.CommissionSummary) []models.MetricCard {
	return []models.MetricCard{
		{
			Title:    "Total Commissions",
			Value:    utils.FormatCurrency(summary.TotalCommissions),
			Change:   "+12.3% vs last month",
			Subtitle: "Across all revenue streams",
			Color:    "from-green-500 to-emerald-600",
		},
		{
			Title:    "Active Customers",
			Value:    utils.FormatCount(summary.TotalCustomers),
			Change:   "+8.7% growth",
			Subtitle: "Unique customer base",
			Color:    "from-blue-500 to-cyan-600",
		},
		{
			Title:    "Avg Deal Value",
			Value:    utils.FormatCurrency(summary.AvgCommissionPerDeal),
			Change:   "+5.2% improvement",
			Subtitle: "Per transaction",
			Color:    "from-purple-500 to-pink-600",
		},
		{
			Title:    "Total Transactions",
			Value:    utils.FormatCount(summary.TotalTransactions),
			Change:   "+15.6% volume",
			Subtitle: "This period",
			Color:    "from-orange-500 to-red-600",
		},
	}
}

// BuildTrendSeries keeps the stored month order.
func BuildTrendSeries(trends []models.MonthlyTrendPoint) []models.TrendPoint {
	points := make([]models.TrendPoint, 0, len(trends))
	for _, t := range trends {
		points = append(points, models.TrendPoint{
			Month:          t.Month,
			Total:          t.Total,
			Upfront:        t.Upfront,
			Residual:       t.Residual,
			FormattedTotal: utils.FormatCurrency(t.Total),
		})
	}
	return points
}

// BuildTrendAxis returns five evenly spaced value ticks from zero to the
// highest monthly total, rounded up to the next thousand.
func BuildTrendAxis(trends []models.MonthlyTrendPoint) []string {
	var peak float64
	for _, t := range trends {
		peak = math.Max(peak, t.Total)
	}
	if peak <= 0 {
		return []string{utils.FormatAxisThousands(0)}
	}

	top := math.Ceil(peak/4000) * 4000
	ticks := make([]string, 0, 5)
	for i := 0; i <= 4; i++ {
		ticks = append(ticks, utils.FormatAxisThousands(top*float64(i)/4))
	}
	return ticks
}

// BuildStreamSlices computes each stream's share of the combined value.
func BuildStreamSlices(streams []models.RevenueStream) []models.StreamSlice {
	var total float64
	for _, s := range streams {
		total += s.Value
	}

	slices := make([]models.StreamSlice, 0, len(streams))
	for _, s := range streams {
		share := 0.0
		if total > 0 {
			share = s.Value / total
		}
		slices = append(slices, models.StreamSlice{
			Name:             s.Name,
			Value:            s.Value,
			Color:            s.Color,
			Share:            share,
			FormattedValue:   utils.FormatCurrency(s.Value),
			FormattedShare:   utils.FormatPercent(share),
			Deals:            s.Deals,
			AvgDeal:          s.AvgDeal,
			FormattedAvgDeal: utils.FormatCurrency(s.AvgDeal),
		})
	}
	return slices
}

// RankByTotal returns a copy of members ordered by descending total. Members
// with equal totals keep their input order.
func RankByTotal(members []models.CommissionRecord) []models.CommissionRecord {
	ranked := make([]models.CommissionRecord, len(members))
	copy(ranked, members)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})
	return ranked
}

// BuildLeaderboard expects members already ranked. Bar widths are relative to
// the top total.
func BuildLeaderboard(ranked []models.CommissionRecord) []models.LeaderboardEntry {
	var top float64
	for _, m := range ranked {
		top = math.Max(top, m.Total)
	}

	entries := make([]models.LeaderboardEntry, 0, len(ranked))
	for i, m := range ranked {
		width := 0.0
		if top > 0 {
			width = m.Total / top * 100
		}
		entries = append(entries, models.LeaderboardEntry{
			Rank:                    i + 1,
			Name:                    m.Name,
			Total:                   m.Total,
			FormattedTotal:          utils.FormatCurrency(m.Total),
			Customers:               m.Customers,
			FormattedConversionRate: utils.FormatPercent(m.ConversionRate),
			Deals:                   m.Deals,
			BarWidthPercent:         width,
		})
	}
	return entries
}

func BuildComparison(ranked []models.CommissionRecord) []models.ComparisonBar {
	bars := make([]models.ComparisonBar, 0, len(ranked))
	for _, m := range ranked {
		bars = append(bars, models.ComparisonBar{
			Name:     m.Name,
			Upfront:  m.Upfront,
			Residual: m.Residual,
			Wireline: m.Wireline,
		})
	}
	return bars
}
