package service

import "commission-central/internal/models"

const DefaultTickStep = 20

type ImportEventKind int

const (
	EventFileSelected ImportEventKind = iota
	EventTick
	EventReset
)

// ImportEvent is the input to ImportReducer.Reduce.
type ImportEvent struct {
	Kind        ImportEventKind
	FilePresent bool
	FileName    string
	Generation  uint64
}

// FileHandle describes the file picked in the import dialog. Its contents are
// never read.
type FileHandle struct {
	Name string
	Size int64
}

func FileSelectedEvent(file *FileHandle) ImportEvent {
	if file == nil {
		return ImportEvent{Kind: EventFileSelected}
	}
	return ImportEvent{Kind: EventFileSelected, FilePresent: true, FileName: file.Name}
}

func TickEvent(generation uint64) ImportEvent {
	return ImportEvent{Kind: EventTick, Generation: generation}
}

func ResetEvent() ImportEvent {
	return ImportEvent{Kind: EventReset}
}

// SimulatedImportResult is reported for every completed import regardless of
// the uploaded file.
func SimulatedImportResult() *models.ImportResult {
	return &models.ImportResult{
		TotalRecords:    1250,
		NewCustomers:    45,
		TotalCommission: 82090.11,
		Errors:          []string{},
	}
}

// ImportReducer advances an ImportSession. It is pure: the same session and
// event always produce the same result, and the second return value reports
// whether anything changed.
type ImportReducer struct {
	Step int
}

func NewImportReducer(step int) ImportReducer {
	if step <= 0 {
		step = DefaultTickStep
	}
	return ImportReducer{Step: step}
}

func (r ImportReducer) Reduce(s models.ImportSession, ev ImportEvent) (models.ImportSession, bool) {
	switch ev.Kind {
	case EventFileSelected:
		if !ev.FilePresent || s.Status != models.ImportIdle {
			return s, false
		}
		s.Status = models.ImportProcessing
		s.ProgressPercent = 0
		s.Result = nil
		s.FileName = ev.FileName
		s.Generation++
		return s, true

	case EventTick:
		if s.Status != models.ImportProcessing || ev.Generation != s.Generation {
			return s, false
		}
		s.ProgressPercent += r.Step
		if s.ProgressPercent >= 100 {
			s.ProgressPercent = 100
			s.Status = models.ImportSucceeded
			s.Result = SimulatedImportResult()
		}
		return s, true

	case EventReset:
		if s.Status == models.ImportIdle && s.ProgressPercent == 0 && s.Result == nil && s.FileName == "" {
			return s, false
		}
		s.Status = models.ImportIdle
		s.ProgressPercent = 0
		s.Result = nil
		s.FileName = ""
		return s, true
	}

	return s, false
}
