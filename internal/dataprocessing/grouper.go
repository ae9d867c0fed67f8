package dataprocessing

import (
	"sort"
	"time"

	"bridgesched/pkg/contracts/domain"
)

// WeekGrouper partitions entries into calendar-week buckets. A week begins on
// the most recent occurrence of the anchor weekday on or before the date.
type WeekGrouper struct {
	anchor time.Weekday
}

// NewWeekGrouper creates a grouper with the given anchor weekday.
func NewWeekGrouper(anchor time.Weekday) *WeekGrouper {
	return &WeekGrouper{anchor: anchor}
}

// WeekStart returns the start of the week containing d.
func (g *WeekGrouper) WeekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) - int(g.anchor) + 7) % 7
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()).AddDate(0, 0, -offset)
}

// Group buckets entries by week start, ascending. Within a bucket, entries
// are sorted by scheduled date, then BIN. Every input entry lands in exactly
// one bucket.
func (g *WeekGrouper) Group(entries []domain.InspectionEntry) []domain.WeekBucket {
	byWeek := make(map[time.Time][]domain.InspectionEntry)
	for _, entry := range entries {
		start := g.WeekStart(entry.ScheduledDate)
		byWeek[start] = append(byWeek[start], entry)
	}

	buckets := make([]domain.WeekBucket, 0, len(byWeek))
	for start, group := range byWeek {
		sort.SliceStable(group, func(i, j int) bool {
			if !group[i].ScheduledDate.Equal(group[j].ScheduledDate) {
				return group[i].ScheduledDate.Before(group[j].ScheduledDate)
			}
			return group[i].BIN < group[j].BIN
		})
		buckets = append(buckets, domain.WeekBucket{Start: start, Entries: group})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})
	return buckets
}
