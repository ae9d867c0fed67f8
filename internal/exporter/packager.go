package exporter

import (
	"archive/zip"
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "bridgesched/internal/errors"
	"bridgesched/pkg/contracts/domain"
)

// ArchiveFilename is the download name when a batch spans multiple weeks.
const ArchiveFilename = "schedules.zip"

// BatchPackager bundles rendered documents into the response payload and
// optionally mirrors each document to a server-side directory.
type BatchPackager struct {
	logger *slog.Logger
}

// NewBatchPackager creates a packager bound to the given logger.
func NewBatchPackager(logger *slog.Logger) *BatchPackager {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchPackager{logger: logger.With(slog.String("component", "batch_packager"))}
}

// Package turns rendered documents into a batch result: one document is
// returned verbatim, several are zipped in document order. When outputDir is
// non-empty every document is also written there; those writes are
// best-effort and only ever produce warnings.
func (p *BatchPackager) Package(docs []domain.RenderedDocument, outputDir string) (*domain.BatchResult, error) {
	if len(docs) == 0 {
		return nil, apperrors.ErrEmptyBatch
	}

	result := &domain.BatchResult{Documents: len(docs)}
	if outputDir != "" {
		result.SavedPaths, result.Warnings = p.saveAll(docs, outputDir)
	}

	if len(docs) == 1 {
		result.Filename = docs[0].Filename
		result.ContentType = docs[0].ContentType
		result.Content = docs[0].Content
		return result, nil
	}

	archive, err := zipDocuments(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to build archive: %w", err)
	}
	result.Filename = ArchiveFilename
	result.ContentType = domain.ContentTypeZip
	result.Content = archive
	return result, nil
}

func zipDocuments(docs []domain.RenderedDocument) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, doc := range docs {
		w, err := zw.Create(doc.Filename)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(doc.Content); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// saveAll writes each document under outputDir. A failed write is logged and
// recorded as a warning; it never fails the batch.
func (p *BatchPackager) saveAll(docs []domain.RenderedDocument, outputDir string) (saved []string, warnings []string) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		writeErr := &apperrors.DirectoryWriteError{Path: outputDir, Cause: err}
		p.logger.Warn("skipping schedule directory writes", slog.String("error", writeErr.Error()))
		return nil, []string{writeErr.Error()}
	}

	for _, doc := range docs {
		path := filepath.Join(outputDir, doc.Filename)
		if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
			writeErr := &apperrors.DirectoryWriteError{Path: path, Cause: err}
			p.logger.Warn("failed to save schedule copy", slog.String("error", writeErr.Error()))
			warnings = append(warnings, writeErr.Error())
			continue
		}
		p.logger.Info("saved schedule copy", slog.String("path", path))
		saved = append(saved, path)
	}
	return saved, warnings
}
