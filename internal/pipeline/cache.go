package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-trade-dashboard/internal/logger"
	"go-trade-dashboard/internal/model"
)

type cacheEntry struct {
	size    int64
	modTime time.Time
	ds      *model.Dataset
}

// DatasetCache memoizes loaded datasets by path. An entry is reused while the
// file's size and mtime are unchanged, or while its content hash still matches.
// Failed loads are never cached.
type DatasetCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func NewDatasetCache() *DatasetCache {
	return &DatasetCache{entries: make(map[string]cacheEntry)}
}

// Get returns the dataset for path, loading it when the file changed.
func (c *DatasetCache) Get(path string) (*model.Dataset, model.LoadReport, error) {
	start := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	report := model.LoadReport{ID: uuid.New().String(), Path: path, CreatedAt: start.UTC()}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = failure(ErrNotFound, path, nil)
		} else {
			err = failure(ErrLoad, path, fmt.Errorf("failed to stat data file: %w", err))
		}
		delete(c.entries, path)
		finishReport(&report, start, err)
		return nil, report, err
	}

	entry, ok := c.entries[path]
	if ok && entry.size == info.Size() && entry.modTime.Equal(info.ModTime()) {
		return c.hit(entry.ds, report, start)
	}

	content, err := readFile(path)
	if err != nil {
		delete(c.entries, path)
		finishReport(&report, start, err)
		return nil, report, err
	}

	// touched but unchanged
	if ok && entry.ds.Signature == signature(content) {
		c.entries[path] = cacheEntry{size: info.Size(), modTime: info.ModTime(), ds: entry.ds}
		return c.hit(entry.ds, report, start)
	}

	ds, err := decode(path, content, &report)
	finishReport(&report, start, err)
	if err != nil {
		delete(c.entries, path)
		return nil, report, err
	}

	c.entries[path] = cacheEntry{size: info.Size(), modTime: info.ModTime(), ds: ds}
	return ds, report, nil
}

func (c *DatasetCache) hit(ds *model.Dataset, report model.LoadReport, start time.Time) (*model.Dataset, model.LoadReport, error) {
	report.CacheHit = true
	report.Signature = ds.Signature
	report.RowsRetained = ds.Len()
	finishReport(&report, start, nil)
	logger.Debugf("💾 dataset cache hit for %s", ds.Path)
	return ds, report, nil
}

// Invalidate drops the entry for path.
func (c *DatasetCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Len returns the number of cached datasets.
func (c *DatasetCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
