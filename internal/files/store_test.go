package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_List(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	older := "Barrell Region 8 Bridge Inspection Weekly Schedule - Week of 10-12-25.xlsx"
	newer := "Barrell Region 8 Bridge Inspection Weekly Schedule - Week of 10-19-25.xlsx"
	require.NoError(t, os.WriteFile(filepath.Join(dir, older), []byte("one"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, newer), []byte("two"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	// Distinct mtimes so the ordering assertion is deterministic.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, older), past, past))

	schedules, err := s.List()
	require.NoError(t, err)
	require.Len(t, schedules, 2)
	assert.Equal(t, newer, schedules[0].Name)
	assert.Equal(t, older, schedules[1].Name)
	assert.Equal(t, int64(3), schedules[0].Size)
}

func TestStore_List_MissingDirectory(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "never-created"))
	schedules, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, schedules)
}

func TestStore_Read(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	name := "schedule.xlsx"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("content"), 0o644))

	content, err := s.Read(name)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), content)

	_, err = s.Read("missing.xlsx")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStore_Read_RejectsTraversal(t *testing.T) {
	s := NewStore(t.TempDir())
	for _, name := range []string{"../secret", "a/b.xlsx", "..", "."} {
		_, err := s.Read(name)
		assert.ErrorIs(t, err, os.ErrNotExist, "name %q", name)
	}
}
