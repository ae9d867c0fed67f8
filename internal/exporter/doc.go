// Package exporter renders weekly schedule workbooks and packages them for
// download.
//
// ScheduleRenderer lays out one xlsx per week bucket: the fixed Region
// template block (headings, contacts, teams, access legend) above a data
// table with one row per inspection entry.
//
// BatchPackager returns a single workbook verbatim or zips several, and
// optionally mirrors each workbook to a server-side directory on a
// best-effort basis.
package exporter
