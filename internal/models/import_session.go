package models

import "time"

type ImportStatus string

const (
	ImportIdle       ImportStatus = "idle"
	ImportProcessing ImportStatus = "processing"
	ImportSucceeded  ImportStatus = "success"
)

// ImportResult is the outcome reported once an import session succeeds.
type ImportResult struct {
	TotalRecords    int      `json:"total_records"`
	NewCustomers    int      `json:"new_customers"`
	TotalCommission float64  `json:"total_commission"`
	Errors          []string `json:"errors"`
}

// ImportSession backs one open import dialog.
//
// Generation identifies the current Processing run. It is bumped every time a
// file selection starts processing, and tick events carry the generation they
// were scheduled for so ticks from an earlier run never touch a later one.
type ImportSession struct {
	Code            string        `json:"code"`
	Status          ImportStatus  `json:"status"`
	ProgressPercent int           `json:"progress_percent"`
	Result          *ImportResult `json:"result,omitempty"`
	Generation      uint64        `json:"generation"`
	FileName        string        `json:"file_name,omitempty"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// NewImportSession returns an idle session for a freshly opened dialog.
func NewImportSession(code string) ImportSession {
	return ImportSession{
		Code:   code,
		Status: ImportIdle,
	}
}

func (s ImportSession) IsProcessing() bool {
	return s.Status == ImportProcessing
}
