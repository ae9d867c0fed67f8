package domain

import (
	"time"
)

// LaneClosed is the Y/N flag recorded in the LANE CLOSED column.
type LaneClosed string

const (
	LaneClosedYes LaneClosed = "Y"
	LaneClosedNo  LaneClosed = "N"
)

// InspectionEntry is one bridge inspection tied to exactly one scheduled date.
// A pasted row whose booked-access field expands to several dates produces one
// entry per date, identical in every other field.
type InspectionEntry struct {
	Team           string     `json:"team"`
	ScheduledDate  time.Time  `json:"scheduled_date" validate:"required"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	PrevDueDate    *time.Time `json:"prev_due_date,omitempty"`
	Region         string     `json:"region"`
	County         string     `json:"county"`
	BIN            string     `json:"bin" validate:"required"`
	FeatureCarried string     `json:"feature_carried"`
	FeatureCrossed string     `json:"feature_crossed"`
	Access         string     `json:"access"`
	Town           string     `json:"town"`
	LaneClosed     LaneClosed `json:"lane_closed" validate:"oneof=Y N"`
}

// WeekBucket groups the entries whose scheduled dates fall in the same
// calendar week. Entries are kept sorted by (scheduled date, BIN).
type WeekBucket struct {
	Start   time.Time
	Entries []InspectionEntry
}

// End returns the last day of the bucket's week.
func (b WeekBucket) End() time.Time {
	return b.Start.AddDate(0, 0, 6)
}
