// Package store provides task sources for the day view
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lixenwraith/taskfall/task"
)

// ErrNotFound is returned when a task id does not exist or is already archived
var ErrNotFound = errors.New("task not found")

// Source lists the tasks to visualize
type Source interface {
	List(ctx context.Context) ([]task.Task, error)
}

// Open picks a source by file extension: .yaml/.yml files are read-only YAML lists,
// anything else is a SQLite database
func Open(path string) (Source, error) {
	if path == "" {
		return nil, fmt.Errorf("open source: empty path")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLFile(path), nil
	}
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Close releases the source when it holds resources
func Close(s Source) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
