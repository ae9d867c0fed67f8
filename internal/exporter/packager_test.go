package exporter

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bridgesched/internal/errors"
	"bridgesched/pkg/contracts/domain"
)

func testDocs() []domain.RenderedDocument {
	return []domain.RenderedDocument{
		{
			Filename:    "Vaughn Region 8 Bridge Inspection Weekly Schedule - Week of 10-12-25.xlsx",
			ContentType: domain.ContentTypeXLSX,
			WeekStart:   day(2025, time.October, 12),
			Content:     []byte("week one"),
		},
		{
			Filename:    "Vaughn Region 8 Bridge Inspection Weekly Schedule - Week of 10-19-25.xlsx",
			ContentType: domain.ContentTypeXLSX,
			WeekStart:   day(2025, time.October, 19),
			Content:     []byte("week two"),
		},
	}
}

func TestBatchPackager_Package_Empty(t *testing.T) {
	p := NewBatchPackager(nil)
	result, err := p.Package(nil, "")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrEmptyBatch)
}

func TestBatchPackager_Package_SingleDocument(t *testing.T) {
	p := NewBatchPackager(nil)
	docs := testDocs()[:1]

	result, err := p.Package(docs, "")
	require.NoError(t, err)

	assert.Equal(t, docs[0].Filename, result.Filename)
	assert.Equal(t, domain.ContentTypeXLSX, result.ContentType)
	assert.Equal(t, docs[0].Content, result.Content)
	assert.Equal(t, 1, result.Documents)
	assert.Empty(t, result.SavedPaths)
	assert.Empty(t, result.Warnings)
}

func TestBatchPackager_Package_MultipleDocuments(t *testing.T) {
	p := NewBatchPackager(nil)
	docs := testDocs()

	result, err := p.Package(docs, "")
	require.NoError(t, err)

	assert.Equal(t, ArchiveFilename, result.Filename)
	assert.Equal(t, domain.ContentTypeZip, result.ContentType)
	assert.Equal(t, 2, result.Documents)

	zr, err := zip.NewReader(bytes.NewReader(result.Content), int64(len(result.Content)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	// Archive entries keep document order and content.
	for i, zf := range zr.File {
		assert.Equal(t, docs[i].Filename, zf.Name)
		rc, oerr := zf.Open()
		require.NoError(t, oerr)
		content, rerr := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, rerr)
		assert.Equal(t, docs[i].Content, content)
	}
}

func TestBatchPackager_Package_SavesToDirectory(t *testing.T) {
	p := NewBatchPackager(nil)
	docs := testDocs()
	dir := filepath.Join(t.TempDir(), "schedules")

	result, err := p.Package(docs, dir)
	require.NoError(t, err)

	require.Len(t, result.SavedPaths, 2)
	assert.Empty(t, result.Warnings)
	for i, path := range result.SavedPaths {
		assert.Equal(t, filepath.Join(dir, docs[i].Filename), path)
		content, rerr := os.ReadFile(path)
		require.NoError(t, rerr)
		assert.Equal(t, docs[i].Content, content)
	}
}

func TestBatchPackager_Package_SaveFailureIsWarning(t *testing.T) {
	p := NewBatchPackager(nil)
	docs := testDocs()[:1]

	// A regular file where the directory should be makes MkdirAll fail.
	blocked := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	result, err := p.Package(docs, blocked)
	require.NoError(t, err)

	// The download payload is intact; only a warning records the failure.
	assert.Equal(t, docs[0].Content, result.Content)
	assert.Empty(t, result.SavedPaths)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], blocked)
}
