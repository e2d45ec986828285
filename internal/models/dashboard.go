package models

// Period options offered by the dashboard header.
var PeriodOptions = []string{
	"December 2025",
	"November 2025",
	"October 2025",
	"Q4 2025",
	"Year to Date",
}

const DefaultPeriod = "December 2025"

// ViewState is the per-viewer display state. None of it changes the data.
type ViewState struct {
	SelectedPeriod string `json:"selected_period"`
	ShowDetails    bool   `json:"show_details"`
	DataSource     string `json:"data_source"`
}

type MetricCard struct {
	Title    string `json:"title"`
	Value    string `json:"value"`
	Change   string `json:"change,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Color    string `json:"color"`
}

type TrendPoint struct {
	Month          string  `json:"month"`
	Total          float64 `json:"total"`
	Upfront        float64 `json:"upfront"`
	Residual       float64 `json:"residual"`
	FormattedTotal string  `json:"formatted_total"`
}

type StreamSlice struct {
	Name             string  `json:"name"`
	Value            float64 `json:"value"`
	Color            string  `json:"color"`
	Share            float64 `json:"share"`
	FormattedValue   string  `json:"formatted_value"`
	FormattedShare   string  `json:"formatted_share"`
	Deals            int     `json:"deals"`
	AvgDeal          float64 `json:"avg_deal"`
	FormattedAvgDeal string  `json:"formatted_avg_deal"`
}

type LeaderboardEntry struct {
	Rank                    int     `json:"rank"`
	Name                    string  `json:"name"`
	Total                   float64 `json:"total"`
	FormattedTotal          string  `json:"formatted_total"`
	Customers               int     `json:"customers"`
	FormattedConversionRate string  `json:"formatted_conversion_rate"`
	Deals                   int     `json:"deals"`
	BarWidthPercent         float64 `json:"bar_width_percent"`
}

type ComparisonBar struct {
	Name     string  `json:"name"`
	Upfront  float64 `json:"upfront"`
	Residual float64 `json:"residual"`
	Wireline float64 `json:"wireline"`
}

// Dashboard is the fully projected page model.
type Dashboard struct {
	View          ViewState          `json:"view"`
	SourceLabel   string             `json:"source_label"`
	Metrics       []MetricCard       `json:"metrics"`
	Trends        []TrendPoint       `json:"trends"`
	TrendAxis     []string           `json:"trend_axis"`
	Streams       []StreamSlice      `json:"streams"`
	Leaderboard   []LeaderboardEntry `json:"leaderboard"`
	Comparison    []ComparisonBar    `json:"comparison"`
	PeriodOptions []string           `json:"period_options"`
}
