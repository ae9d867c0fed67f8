package domain

import (
	"time"
)

// Content types returned by the generation pipeline.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeZip  = "application/zip"
)

// RenderedDocument is a rendered weekly schedule workbook plus its download
// metadata. Immutable once produced.
type RenderedDocument struct {
	Filename    string
	ContentType string
	WeekStart   time.Time
	Content     []byte
}

// BatchResult is the packaged output of one generation call: a single workbook
// verbatim, or a zip archive when the batch spans more than one week.
// SavedPaths and Warnings record the optional best-effort directory writes.
type BatchResult struct {
	Filename    string
	ContentType string
	Content     []byte
	Documents   int
	SavedPaths  []string
	Warnings    []string
}
