package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridgesched/pkg/contracts/domain"
)

func entry(bin string, scheduled time.Time) domain.InspectionEntry {
	return domain.InspectionEntry{BIN: bin, ScheduledDate: scheduled, LaneClosed: domain.LaneClosedNo}
}

func TestWeekGrouper_WeekStart(t *testing.T) {
	g := NewWeekGrouper(time.Sunday)

	tests := []struct {
		name string
		date time.Time
		want time.Time
	}{
		{name: "sunday is its own week start", date: day(2025, time.October, 12), want: day(2025, time.October, 12)},
		{name: "monday", date: day(2025, time.October, 13), want: day(2025, time.October, 12)},
		{name: "saturday", date: day(2025, time.October, 18), want: day(2025, time.October, 12)},
		{name: "next sunday starts a new week", date: day(2025, time.October, 19), want: day(2025, time.October, 19)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.WeekStart(tt.date))
		})
	}
}

func TestWeekGrouper_WeekStart_MondayAnchor(t *testing.T) {
	g := NewWeekGrouper(time.Monday)
	// 2025-10-12 is a Sunday; with a Monday anchor it belongs to the week
	// of the 6th.
	assert.Equal(t, day(2025, time.October, 6), g.WeekStart(day(2025, time.October, 12)))
	assert.Equal(t, day(2025, time.October, 13), g.WeekStart(day(2025, time.October, 13)))
}

func TestWeekGrouper_Group(t *testing.T) {
	g := NewWeekGrouper(time.Sunday)

	entries := []domain.InspectionEntry{
		entry("300", day(2025, time.October, 15)),
		entry("100", day(2025, time.October, 15)),
		entry("200", day(2025, time.October, 13)),
		entry("400", day(2025, time.October, 21)),
		entry("500", day(2025, time.October, 19)),
	}

	buckets := g.Group(entries)
	require.Len(t, buckets, 2)

	// Buckets ascend by week start.
	assert.Equal(t, day(2025, time.October, 12), buckets[0].Start)
	assert.Equal(t, day(2025, time.October, 19), buckets[1].Start)
	assert.Equal(t, day(2025, time.October, 18), buckets[0].End())

	// Within a bucket: scheduled date ascending, then BIN.
	first := buckets[0].Entries
	require.Len(t, first, 3)
	assert.Equal(t, "200", first[0].BIN)
	assert.Equal(t, "100", first[1].BIN)
	assert.Equal(t, "300", first[2].BIN)

	// Union of buckets equals the input, nothing dropped or duplicated.
	total := 0
	seen := map[string]int{}
	for _, b := range buckets {
		for _, e := range b.Entries {
			total++
			seen[e.BIN]++
			weekStart := g.WeekStart(e.ScheduledDate)
			assert.Equal(t, b.Start, weekStart)
			assert.False(t, e.ScheduledDate.Before(b.Start))
			assert.False(t, e.ScheduledDate.After(b.End()))
		}
	}
	assert.Equal(t, len(entries), total)
	for _, e := range entries {
		assert.Equal(t, 1, seen[e.BIN])
	}
}

func TestWeekGrouper_Group_Empty(t *testing.T) {
	g := NewWeekGrouper(time.Sunday)
	assert.Empty(t, g.Group(nil))
}
