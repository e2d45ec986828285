package repository

import (
	"commission-central/internal/models"
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

// CommissionRepository supplies the dataset the dashboard renders.
type CommissionRepository interface {
	LoadCommissionData(ctx context.Context) (*models.CommissionDataset, error)
}

// SQLCommissionRepository reads the dashboard dataset from the commission
// tables. The queries are portable between MySQL and SQLite.
type SQLCommissionRepository struct {
	db *sqlx.DB
}

func NewSQLCommissionRepository(db *sqlx.DB) *SQLCommissionRepository {
	return &SQLCommissionRepository{db: db}
}

// LoadCommissionData reads the four tables concurrently.
func (r *SQLCommissionRepository) LoadCommissionData(ctx context.Context) (*models.CommissionDataset, error) {
	dataset := &models.CommissionDataset{Source: models.SourceLive}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		query := `
			SELECT total_commissions,
			       upfront_commissions,
			       residual_commissions,
			       wireline_commissions,
			       COALESCE(tmobile_commissions, 0) as tmobile_commissions,
			       total_customers,
			       total_transactions,
			       avg_commission_per_deal
			FROM commission_summaries
			ORDER BY id DESC
			LIMIT 1`
		if err := r.db.GetContext(egCtx, &dataset.Summary, query); err != nil {
			return fmt.Errorf("failed to load commission summary: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		query := `
			SELECT name,
			       upfront,
			       residual,
			       wireline,
			       total,
			       customers,
			       conversion_rate,
			       deals
			FROM team_commissions
			ORDER BY sort_order, id`
		if err := r.db.SelectContext(egCtx, &dataset.TeamMembers, query); err != nil {
			return fmt.Errorf("failed to load team commissions: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		query := `
			SELECT name,
			       value,
			       COALESCE(color, '') as color,
			       deals,
			       avg_deal
			FROM revenue_streams
			ORDER BY sort_order, id`
		if err := r.db.SelectContext(egCtx, &dataset.RevenueStreams, query); err != nil {
			return fmt.Errorf("failed to load revenue streams: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		query := `
			SELECT month,
			       total,
			       upfront,
			       residual
			FROM monthly_trends
			ORDER BY sort_order, id`
		if err := r.db.SelectContext(egCtx, &dataset.MonthlyTrends, query); err != nil {
			return fmt.Errorf("failed to load monthly trends: %w", err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return dataset, nil
}
