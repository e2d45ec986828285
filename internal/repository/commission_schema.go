package repository

import (
	"commission-central/internal/models"
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// commissionSchema is valid for both MySQL and SQLite.
var commissionSchema = []string{
	`CREATE TABLE IF NOT EXISTS commission_summaries (
		id INTEGER NOT NULL PRIMARY KEY,
		total_commissions DECIMAL(14,2) NOT NULL,
		upfront_commissions DECIMAL(14,2) NOT NULL,
		residual_commissions DECIMAL(14,2) NOT NULL,
		wireline_commissions DECIMAL(14,2) NOT NULL,
		tmobile_commissions DECIMAL(14,2) NULL,
		total_customers INTEGER NOT NULL,
		total_transactions INTEGER NOT NULL,
		avg_commission_per_deal DECIMAL(14,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS team_commissions (
		id INTEGER NOT NULL PRIMARY KEY,
		sort_order INTEGER NOT NULL DEFAULT 0,
		name VARCHAR(100) NOT NULL UNIQUE,
		upfront DECIMAL(14,2) NOT NULL,
		residual DECIMAL(14,2) NOT NULL,
		wireline DECIMAL(14,2) NOT NULL,
		total DECIMAL(14,2) NOT NULL,
		customers INTEGER NOT NULL,
		conversion_rate DECIMAL(5,4) NOT NULL,
		deals INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS revenue_streams (
		id INTEGER NOT NULL PRIMARY KEY,
		sort_order INTEGER NOT NULL DEFAULT 0,
		name VARCHAR(100) NOT NULL,
		value DECIMAL(14,2) NOT NULL,
		color VARCHAR(20) NULL,
		deals INTEGER NOT NULL,
		avg_deal DECIMAL(14,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS monthly_trends (
		id INTEGER NOT NULL PRIMARY KEY,
		sort_order INTEGER NOT NULL DEFAULT 0,
		month VARCHAR(20) NOT NULL,
		total DECIMAL(14,2) NOT NULL,
		upfront DECIMAL(14,2) NOT NULL,
		residual DECIMAL(14,2) NOT NULL
	)`,
}

// CreateCommissionSchema creates the commission tables when missing.
func CreateCommissionSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range commissionSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create commission schema: %w", err)
		}
	}
	return nil
}

type seededRow struct {
	ID        int `db:"id"`
	SortOrder int `db:"sort_order"`
}

// SeedCommissionData replaces the contents of the commission tables with data
// in one transaction. Slice order becomes sort_order.
func SeedCommissionData(ctx context.Context, db *sqlx.DB, data *models.CommissionDataset) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"commission_summaries", "team_commissions", "revenue_streams", "monthly_trends"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	summary := struct {
		ID int `db:"id"`
		models.CommissionSummary
	}{ID: 1, CommissionSummary: data.Summary}
	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO commission_summaries (
			id, total_commissions, upfront_commissions, residual_commissions, wireline_commissions,
			tmobile_commissions, total_customers, total_transactions, avg_commission_per_deal
		) VALUES (
			:id, :total_commissions, :upfront_commissions, :residual_commissions, :wireline_commissions,
			:tmobile_commissions, :total_customers, :total_transactions, :avg_commission_per_deal
		)`, summary); err != nil {
		return fmt.Errorf("failed to insert commission summary: %w", err)
	}

	for i, member := range data.TeamMembers {
		row := struct {
			seededRow
			models.CommissionRecord
		}{seededRow{ID: i + 1, SortOrder: i}, member}
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO team_commissions (
				id, sort_order, name, upfront, residual, wireline, total, customers, conversion_rate, deals
			) VALUES (
				:id, :sort_order, :name, :upfront, :residual, :wireline, :total, :customers, :conversion_rate, :deals
			)`, row); err != nil {
			return fmt.Errorf("failed to insert team member %s: %w", member.Name, err)
		}
	}

	for i, stream := range data.RevenueStreams {
		row := struct {
			seededRow
			models.RevenueStream
		}{seededRow{ID: i + 1, SortOrder: i}, stream}
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO revenue_streams (id, sort_order, name, value, color, deals, avg_deal)
			VALUES (:id, :sort_order, :name, :value, :color, :deals, :avg_deal)`, row); err != nil {
			return fmt.Errorf("failed to insert revenue stream %s: %w", stream.Name, err)
		}
	}

	for i, point := range data.MonthlyTrends {
		row := struct {
			seededRow
			models.MonthlyTrendPoint
		}{seededRow{ID: i + 1, SortOrder: i}, point}
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO monthly_trends (id, sort_order, month, total, upfront, residual)
			VALUES (:id, :sort_order, :month, :total, :upfront, :residual)`, row); err != nil {
			return fmt.Errorf("failed to insert monthly trend %s: %w", point.Month, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return nil
}
