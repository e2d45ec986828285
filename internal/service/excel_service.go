package service

import (
	"commission-central/internal/models"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary     = "Summary"
	SheetTeam        = "Team Performance"
	SheetStreams     = "Revenue Streams"
	SheetTrends      = "Monthly Trends"
	SheetImportData  = "Commission Data"
	currencyNumFmt   = 3 // #,##0
	percentNumFmt    = 10
	twoDecimalNumFmt = 4 // #,##0.00
)

// ImportTemplateHeaders is the column layout the import dialog advertises.
var ImportTemplateHeaders = []string{
	"Name", "Upfront", "Residual", "Wireline", "Total", "Customers", "Conversion Rate", "Deals",
}

type ExcelService struct{}

func NewExcelService() *ExcelService {
	return &ExcelService{}
}

// ExportDashboard renders the dataset into a workbook with one sheet per
// dashboard section. Team members are written in leaderboard order.
func (s *ExcelService) ExportDashboard(data *models.CommissionDataset) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		return nil, err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: twoDecimalNumFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}
	percentStyle, err := f.NewStyle(&excelize.Style{NumFmt: percentNumFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create percent style: %w", err)
	}
	currencyStyle, err := f.NewStyle(&excelize.Style{NumFmt: currencyNumFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create currency style: %w", err)
	}

	// Summary
	summary := data.Summary
	summaryRows := [][]interface{}{
		{"Data Source", SourceLabel(data.Source)},
		{"Total Commissions", summary.TotalCommissions},
		{"Upfront Commissions", summary.UpfrontCommissions},
		{"Residual Commissions", summary.ResidualCommissions},
		{"Wireline Commissions", summary.WirelineCommissions},
		{"T-Mobile Commissions", summary.TMobileCommissions},
		{"Total Customers", summary.TotalCustomers},
		{"Total Transactions", summary.TotalTransactions},
		{"Avg Commission Per Deal", summary.AvgCommissionPerDeal},
	}
	writeHeaders(f, SheetSummary, []string{"Metric", "Value"}, headerStyle)
	writeRows(f, SheetSummary, summaryRows)
	f.SetCellStyle(SheetSummary, "B3", "B7", moneyStyle)
	f.SetCellStyle(SheetSummary, "B10", "B10", moneyStyle)
	f.SetColWidth(SheetSummary, "A", "A", 26)
	f.SetColWidth(SheetSummary, "B", "B", 18)

	// Team performance
	if _, err := f.NewSheet(SheetTeam); err != nil {
		return nil, fmt.Errorf("failed to create team sheet: %w", err)
	}
	teamHeaders := []string{"Rank", "Name", "Upfront", "Residual", "Wireline", "Total", "Customers", "Conversion Rate", "Deals"}
	writeHeaders(f, SheetTeam, teamHeaders, headerStyle)
	var teamRows [][]interface{}
	for i, m := range RankByTotal(data.TeamMembers) {
		teamRows = append(teamRows, []interface{}{
			i + 1, m.Name, m.Upfront, m.Residual, m.Wireline, m.Total, m.Customers, m.ConversionRate, m.Deals,
		})
	}
	writeRows(f, SheetTeam, teamRows)
	if len(teamRows) > 0 {
		last := len(teamRows) + 1
		f.SetCellStyle(SheetTeam, "C2", fmt.Sprintf("F%d", last), moneyStyle)
		f.SetCellStyle(SheetTeam, "H2", fmt.Sprintf("H%d", last), percentStyle)
	}
	f.SetColWidth(SheetTeam, "B", "B", 18)
	f.SetColWidth(SheetTeam, "C", "I", 15)

	// Revenue streams
	if _, err := f.NewSheet(SheetStreams); err != nil {
		return nil, fmt.Errorf("failed to create revenue stream sheet: %w", err)
	}
	writeHeaders(f, SheetStreams, []string{"Stream", "Value", "Share", "Deals", "Avg Deal"}, headerStyle)
	var streamRows [][]interface{}
	for _, slice := range BuildStreamSlices(data.RevenueStreams) {
		streamRows = append(streamRows, []interface{}{slice.Name, slice.Value, slice.Share, slice.Deals, slice.AvgDeal})
	}
	writeRows(f, SheetStreams, streamRows)
	if len(streamRows) > 0 {
		last := len(streamRows) + 1
		f.SetCellStyle(SheetStreams, "B2", fmt.Sprintf("B%d", last), moneyStyle)
		f.SetCellStyle(SheetStreams, "C2", fmt.Sprintf("C%d", last), percentStyle)
		f.SetCellStyle(SheetStreams, "E2", fmt.Sprintf("E%d", last), moneyStyle)
	}
	f.SetColWidth(SheetStreams, "A", "A", 20)
	f.SetColWidth(SheetStreams, "B", "E", 14)

	// Monthly trends
	if _, err := f.NewSheet(SheetTrends); err != nil {
		return nil, fmt.Errorf("failed to create trend sheet: %w", err)
	}
	writeHeaders(f, SheetTrends, []string{"Month", "Total", "Upfront", "Residual"}, headerStyle)
	var trendRows [][]interface{}
	for _, t := range data.MonthlyTrends {
		trendRows = append(trendRows, []interface{}{t.Month, t.Total, t.Upfront, t.Residual})
	}
	writeRows(f, SheetTrends, trendRows)
	if len(trendRows) > 0 {
		f.SetCellStyle(SheetTrends, "B2", fmt.Sprintf("D%d", len(trendRows)+1), currencyStyle)
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateImportTemplate builds a workbook in the layout the import dialog
// accepts, pre-filled with the given members as example rows.
func (s *ExcelService) GenerateImportTemplate(members []models.CommissionRecord) ([]byte, error) {
	f, err := s.buildImportTemplate(members)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write template: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveImportTemplate writes the import template to outputPath.
func (s *ExcelService) SaveImportTemplate(members []models.CommissionRecord, outputPath string) error {
	f, err := s.buildImportTemplate(members)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.SaveAs(outputPath)
}

func (s *ExcelService) buildImportTemplate(members []models.CommissionRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetImportData); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create template sheet: %w", err)
	}

	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	writeHeaders(f, SheetImportData, ImportTemplateHeaders, headerStyle)

	rows := make([][]interface{}, 0, len(members))
	for _, m := range members {
		rows = append(rows, []interface{}{
			m.Name, m.Upfront, m.Residual, m.Wireline, m.Total, m.Customers, m.ConversionRate, m.Deals,
		})
	}
	writeRows(f, SheetImportData, rows)

	f.SetColWidth(SheetImportData, "A", "A", 20)
	f.SetColWidth(SheetImportData, "B", "H", 15)

	// Add instructions
	instructionsStartRow := len(rows) + 4
	instructions := []string{
		"Instructions:",
		"1. Name: Team member name (unique)",
		"2. Upfront, Residual, Wireline: Commission amounts in USD",
		"3. Total: Total commission as reported by the carrier",
		"4. Conversion Rate: Fraction between 0 and 1",
		"",
		"Note: Do not modify the header row. Fill data starting from row 2.",
	}
	for i, instruction := range instructions {
		cell := fmt.Sprintf("A%d", instructionsStartRow+i)
		f.SetCellValue(SheetImportData, cell, instruction)
	}

	instructionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F0F8FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create instruction style: %w", err)
	}
	f.SetCellStyle(SheetImportData, fmt.Sprintf("A%d", instructionsStartRow), fmt.Sprintf("A%d", instructionsStartRow), instructionStyle)

	return f, nil
}

func newHeaderStyle(f *excelize.File) (int, error) {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}
	return style, nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string, style int) {
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", getColumnName(i))
		f.SetCellValue(sheet, cell, header)
	}
	f.SetCellStyle(sheet, "A1", fmt.Sprintf("%s1", getColumnName(len(headers)-1)), style)
}

// writeRows writes rows starting below the header row.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) {
	for i, values := range rows {
		row := i + 2
		for colIdx, value := range values {
			cell := fmt.Sprintf("%s%d", getColumnName(colIdx), row)
			f.SetCellValue(sheet, cell, value)
		}
	}
}

func getColumnName(index int) string {
	result := ""
	for index >= 0 {
		result = string(rune('A'+(index%26))) + result
		index = index/26 - 1
	}
	return result
}
