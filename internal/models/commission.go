package models

// Data source labels shown next to the dashboard title.
const (
	SourceSample   = "sample"
	SourceImported = "imported"
	SourceLive     = "live"
)

// CommissionRecord is one team member's commission breakdown. Total is stored
// as delivered by the data source and is never recomputed from its parts.
type CommissionRecord struct {
	Name           string  `db:"name" json:"name" validate:"required"`
	Upfront        float64 `db:"upfront" json:"upfront" validate:"gte=0"`
	Residual       float64 `db:"residual" json:"residual" validate:"gte=0"`
	Wireline       float64 `db:"wireline" json:"wireline" validate:"gte=0"`
	Total          float64 `db:"total" json:"total" validate:"gte=0"`
	Customers      int     `db:"customers" json:"customers" validate:"gte=0"`
	ConversionRate float64 `db:"conversion_rate" json:"conversion_rate" validate:"gte=0,lte=1"`
	Deals          int     `db:"deals" json:"deals" validate:"gte=0"`
}

// ComponentSum is upfront + residual + wireline.
func (r CommissionRecord) ComponentSum() float64 {
	return r.Upfront + r.Residual + r.Wireline
}

type RevenueStream struct {
	Name    string  `db:"name" json:"name"`
	Value   float64 `db:"value" json:"value"`
	Color   string  `db:"color" json:"color"`
	Deals   int     `db:"deals" json:"deals"`
	AvgDeal float64 `db:"avg_deal" json:"avg_deal"`
}

type MonthlyTrendPoint struct {
	Month    string  `db:"month" json:"month"`
	Total    float64 `db:"total" json:"total"`
	Upfront  float64 `db:"upfront" json:"upfront"`
	Residual float64 `db:"residual" json:"residual"`
}

type CommissionSummary struct {
	TotalCommissions     float64 `db:"total_commissions" json:"total_commissions"`
	UpfrontCommissions   float64 `db:"upfront_commissions" json:"upfront_commissions"`
	ResidualCommissions  float64 `db:"residual_commissions" json:"residual_commissions"`
	WirelineCommissions  float64 `db:"wireline_commissions" json:"wireline_commissions"`
	TMobileCommissions   float64 `db:"tmobile_commissions" json:"tmobile_commissions"`
	TotalCustomers       int     `db:"total_customers" json:"total_customers"`
	TotalTransactions    int     `db:"total_transactions" json:"total_transactions"`
	AvgCommissionPerDeal float64 `db:"avg_commission_per_deal" json:"avg_commission_per_deal"`
}

// CommissionDataset is everything the dashboard renders.
type CommissionDataset struct {
	Source         string              `json:"source"`
	Summary        CommissionSummary   `json:"summary"`
	TeamMembers    []CommissionRecord  `json:"team_members"`
	RevenueStreams []RevenueStream     `json:"revenue_streams"`
	MonthlyTrends  []MonthlyTrendPoint `json:"monthly_trends"`
}
