// Package dataprocessing turns hand-pasted master-spreadsheet text into
// typed inspection entries ready for rendering.
//
// The package is organized into four components:
//
// 1. DateParser: expands booked-access date expressions (single dates,
// ampersand lists, inclusive ranges) into concrete calendar dates
//
// 2. ColumnLayout: the fixed column-index contract shared with the master
// spreadsheet
//
// 3. EntryValidator: coerces raw row cells into InspectionEntry values, one
// per expanded date, accumulating per-row errors
//
// 4. WeekGrouper: partitions entries into calendar-week buckets
//
// Basic usage:
//
//	dates := dataprocessing.NewDateParser(2025, 2000)
//	v := dataprocessing.NewEntryValidator(dataprocessing.MasterScheduleLayout, dates, "8", nil, logger)
//	batch := v.ParseBatch(pastedText)
//	buckets := dataprocessing.NewWeekGrouper(time.Sunday).Group(batch.Entries)
package dataprocessing
