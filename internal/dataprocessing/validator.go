package dataprocessing

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	apperrors "bridgesched/internal/errors"
	"bridgesched/pkg/contracts/domain"
)

// laneClosedTriggers are the access-method markers that require a lane
// closure on the carried roadway.
var laneClosedTriggers = []string{"WZTC", "BT", "UB60", "UB50", "UB40"}

// CountyResolver maps a master-sheet county ID to its display name. Unknown
// IDs resolve to "".
type CountyResolver func(id int) string

// EntryValidator converts raw pasted rows into typed inspection entries.
type EntryValidator struct {
	layout   ColumnLayout
	dates    *DateParser
	region   string
	counties CountyResolver
	logger   *slog.Logger
}

// NewEntryValidator creates a validator over the given layout and date
// parser. counties may be nil when county IDs never appear in the paste.
func NewEntryValidator(layout ColumnLayout, dates *DateParser, region string, counties CountyResolver, logger *slog.Logger) *EntryValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &EntryValidator{
		layout:   layout,
		dates:    dates,
		region:   region,
		counties: counties,
		logger:   logger.With(slog.String("component", "entry_validator")),
	}
}

// ValidateRow converts one raw row into zero or more entries, one per
// expanded booked-access date. Rows with an empty BIN or an empty
// booked-access field are skipped (nil, nil): the master sheet keeps
// unscheduled structures on rows this service has nothing to say about. An
// unparseable booked-access field fails the whole row; no partial entries.
func (v *EntryValidator) ValidateRow(rowNum int, row []string) ([]domain.InspectionEntry, error) {
	if err := v.layout.CheckWidth(rowNum, row); err != nil {
		return nil, err
	}

	bin := cell(row, v.layout.BIN)
	booked := cell(row, v.layout.BookedAccess)
	if bin == "" || booked == "" {
		v.logger.Debug("skipping row without BIN or booked access",
			slog.Int("row", rowNum))
		return nil, nil
	}

	scheduled, err := v.dates.ExpandDates(booked)
	if err != nil {
		return nil, &apperrors.RowValidationError{Row: rowNum, Field: "booked_access", Cause: err}
	}

	access := cell(row, v.layout.Access)
	base := domain.InspectionEntry{
		Region:         v.region,
		County:         v.countyName(cell(row, v.layout.County)),
		BIN:            bin,
		FeatureCarried: cell(row, v.layout.FeatureCarried),
		FeatureCrossed: cell(row, v.layout.FeatureCrossed),
		DueDate:        v.optionalDate(cell(row, v.layout.DueDate)),
		PrevDueDate:    v.optionalDate(cell(row, v.layout.PrevDueDate)),
		Access:         access,
		Town:           cell(row, v.layout.Town),
		LaneClosed:     LaneClosed(access),
	}

	entries := make([]domain.InspectionEntry, 0, len(scheduled))
	for _, d := range scheduled {
		entry := base
		entry.ScheduledDate = d
		entries = append(entries, entry)
	}
	return entries, nil
}

// countyName resolves a county cell: a 1-2 digit integer is a directory ID,
// anything else is already a display name.
func (v *EntryValidator) countyName(raw string) string {
	if id, err := strconv.Atoi(raw); err == nil && id > 0 && id < 100 {
		if v.counties != nil {
			return v.counties(id)
		}
		return ""
	}
	return raw
}

// optionalDate parses a due-date cell. Incomplete master-sheet data is
// common, so anything unparseable becomes nil rather than an error.
func (v *EntryValidator) optionalDate(raw string) *time.Time {
	if raw == "" || raw == "-" {
		return nil
	}
	d, err := v.dates.ParseToken(raw)
	if err != nil {
		return nil
	}
	return &d
}

// LaneClosed derives the Y/N lane closure flag from the access method field.
func LaneClosed(access string) domain.LaneClosed {
	for _, trigger := range laneClosedTriggers {
		if strings.Contains(access, trigger) {
			return domain.LaneClosedYes
		}
	}
	return domain.LaneClosedNo
}

// RowIssue is one per-row failure surfaced to the preview table.
type RowIssue struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// BatchResult aggregates a parsed paste: the entries that validated plus the
// per-row issues that did not. One bad row never blocks the rest.
type BatchResult struct {
	Entries []domain.InspectionEntry
	Issues  []RowIssue
}

// ParseBatch splits pasted tab-separated text into rows and validates each.
// Blank lines are ignored; row numbers in issues are one-based over the
// non-blank lines as pasted.
func (v *EntryValidator) ParseBatch(raw string) BatchResult {
	var result BatchResult
	rowNum := 0
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rowNum++
		entries, err := v.ValidateRow(rowNum, strings.Split(strings.TrimRight(line, "\r"), "\t"))
		if err != nil {
			result.Issues = append(result.Issues, toIssue(rowNum, err))
			continue
		}
		result.Entries = append(result.Entries, entries...)
	}
	return result
}

func toIssue(rowNum int, err error) RowIssue {
	issue := RowIssue{Row: rowNum, Field: "row", Message: err.Error()}
	switch e := err.(type) {
	case *apperrors.RowValidationError:
		issue.Field = e.Field
	case *apperrors.RowWidthError:
		issue.Field = "width"
	}
	return issue
}
