package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ScheduleFile is one workbook saved under the output directory.
type ScheduleFile struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modified_at"`
}

// Store reads back the schedule copies the packager mirrors to disk. All
// access is confined to the configured output directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at the output directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// List returns the saved schedule workbooks, newest first. A missing output
// directory means nothing has been saved yet, not an error.
func (s *Store) List() ([]ScheduleFile, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var schedules []ScheduleFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xlsx") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		schedules = append(schedules, ScheduleFile{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(schedules, func(i, j int) bool {
		return schedules[i].ModTime.After(schedules[j].ModTime)
	})
	return schedules, nil
}

// Read returns the content of one saved schedule by name. Names are treated
// as bare file names so a caller can never reach outside the output
// directory.
func (s *Store) Read(name string) ([]byte, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return nil, os.ErrNotExist
	}
	return os.ReadFile(filepath.Join(s.dir, name))
}
