package dataprocessing

import (
	"strings"

	apperrors "bridgesched/internal/errors"
)

// ColumnLayout maps master-spreadsheet fields to zero-based TSV column
// indices. The indices are a fixed contract with the Region 8 master
// schedule; the gaps are source columns this service never reads. There is no
// header sniffing: a pasted row either satisfies the contract or fails fast.
type ColumnLayout struct {
	County         int
	BIN            int
	FeatureCarried int
	FeatureCrossed int
	PrevDueDate    int
	DueDate        int
	GrossWeight    int
	BookedAccess   int
	Access         int
	Town           int
}

// MasterScheduleLayout is the column contract of the master spreadsheet.
var MasterScheduleLayout = ColumnLayout{
	County:         0,
	BIN:            1,
	FeatureCarried: 2,
	FeatureCrossed: 3,
	PrevDueDate:    4,
	DueDate:        5,
	GrossWeight:    7,
	BookedAccess:   9,
	Access:         16,
	Town:           19,
}

// RequiredWidth is the minimum number of columns a row must carry. BIN and
// booked access are mandatory; fields past the booked-access column are read
// only when the row is wide enough.
func (l ColumnLayout) RequiredWidth() int {
	max := l.BIN
	if l.BookedAccess > max {
		max = l.BookedAccess
	}
	return max + 1
}

// CheckWidth validates that row satisfies the required width, returning a
// RowWidthError naming the one-based row number otherwise.
func (l ColumnLayout) CheckWidth(rowNum int, row []string) error {
	if len(row) < l.RequiredWidth() {
		return &apperrors.RowWidthError{
			Row:      rowNum,
			Width:    len(row),
			Required: l.RequiredWidth(),
		}
	}
	return nil
}

// cell returns the trimmed value at idx, or "" when the row is too narrow.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
