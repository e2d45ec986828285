package repository

import (
	"commission-central/internal/models"
	"context"
)

// SampleCommissionRepository serves the built-in December 2025 sample dataset.
type SampleCommissionRepository struct{}

func NewSampleCommissionRepository() *SampleCommissionRepository {
	return &SampleCommissionRepository{}
}

// LoadCommissionData returns a fresh copy on every call so callers may sort in place.
func (r *SampleCommissionRepository) LoadCommissionData(ctx context.Context) (*models.CommissionDataset, error) {
	return &models.CommissionDataset{
		Source: models.SourceSample,
		Summary: models.CommissionSummary{
			TotalCommissions:     82090.11,
			UpfrontCommissions:   67912.82,
			ResidualCommissions:  10452.49,
			WirelineCommissions:  680.00,
			TMobileCommissions:   3724.80,
			TotalCustomers:       312,
			TotalTransactions:    3985,
			AvgCommissionPerDeal: 206.13,
		},
		TeamMembers: []models.CommissionRecord{
			{Name: "Judd", Upfront: 38290.70, Residual: 6642.49, Wireline: 680.00, Total: 45613.19, Customers: 120, ConversionRate: 0.67, Deals: 156},
			{Name: "Sal", Upfront: 6198.00, Residual: 74.40, Wireline: 0, Total: 6272.40, Customers: 45, ConversionRate: 0.72, Deals: 67},
			{Name: "Deonte", Upfront: 17754.52, Residual: 2717.90, Wireline: 0, Total: 20472.42, Customers: 89, ConversionRate: 0.64, Deals: 98},
			{Name: "Jon", Upfront: 52.00, Residual: 133.20, Wireline: 0, Total: 185.20, Customers: 12, ConversionRate: 0.58, Deals: 8},
		},
		RevenueStreams: []models.RevenueStream{
			{Name: "AT&T Mobility", Value: 67232.82, Color: "#FF6B6B", Deals: 1601, AvgDeal: 41.99},
			{Name: "AT&T Residual", Value: 10452.49, Color: "#4ECDC4", Deals: 2167, AvgDeal: 4.82},
			{Name: "T-Mobile", Value: 3724.80, Color: "#45B7D1", Deals: 210, AvgDeal: 155.20},
			{Name: "AT&T Wireline", Value: 680.00, Color: "#96CEB4", Deals: 7, AvgDeal: 340.00},
		},
		MonthlyTrends: []models.MonthlyTrendPoint{
			{Month: "Aug", Total: 45000, Upfront: 38000, Residual: 7000},
			{Month: "Sep", Total: 52000, Upfront: 41000, Residual: 11000},
			{Month: "Oct", Total: 68000, Upfront: 55000, Residual: 13000},
			{Month: "Nov", Total: 75000, Upfront: 62000, Residual: 13000},
			{Month: "Dec", Total: 82090, Upfront: 67913, Residual: 10452},
		},
	}, nil
}
