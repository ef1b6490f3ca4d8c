package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// collection owns one named JSON-array file on disk. All access goes through
// its lock: reads take the shared side, mutations take the exclusive side so
// a load-modify-persist cycle is a single critical section per collection.
// Collections with different names are fully independent.
type collection[T any] struct {
	path string
	mu   sync.RWMutex
}

func newCollection[T any](dir, name string) *collection[T] {
	return &collection[T]{path: filepath.Join(dir, name+".json")}
}

// newID returns an opaque unique identifier for a new record.
func newID() string {
	return uuid.NewString()
}

// load reads the full collection. A missing file means the collection has
// never been written and is treated as empty, not as an error.
func (c *collection[T]) load() ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.read()
}

// update runs fn on the current contents inside the collection's critical
// section and persists whatever fn returns. If fn returns an error nothing
// is written and the error propagates unchanged.
func (c *collection[T]) update(fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.read()
	if err != nil {
		return err
	}
	next, err := fn(records)
	if err != nil {
		return err
	}
	return c.write(next)
}

func (c *collection[T]) read() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read collection %s: %w", c.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", c.path, err)
	}
	return records, nil
}

// write replaces the file contents atomically: the records are serialized to
// a temp file in the same directory and renamed over the target, so a
// concurrent read observes either the old or the new contents, never a
// partial write.
func (c *collection[T]) write(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", c.path, err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", c.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write collection %s: %w", c.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close collection %s: %w", c.path, err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace collection %s: %w", c.path, err)
	}
	return nil
}

// init ensures the backing file exists, creating an empty collection on
// first use.
func (c *collection[T]) init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(c.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat collection %s: %w", c.path, err)
	}
	return c.write(nil)
}
