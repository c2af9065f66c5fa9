package dataset

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"comment-analytics/models"
)

// Recorder receives cache events. metrics.DatasetMetrics implements it.
type Recorder interface {
	CacheHit()
	CacheMiss()
	LoadSucceeded(rows int, took time.Duration)
	LoadFailed()
}

type nopRecorder struct{}

func (nopRecorder) CacheHit() {}
func (nopRecorder) CacheMiss() {}
func (nopRecorder) LoadSucceeded(int, time.Duration) {}
func (nopRecorder) LoadFailed() {}

// CacheConfig configures a Cache. Only Path is required.
type CacheConfig struct {
	Path     string
	Logger   *logrus.Logger
	Recorder Recorder

	// OnLoad runs after every successful reload. Its error is logged and
	// does not fail the load.
	OnLoad func(*models.Table) error

	// Load defaults to the package Load function.
	Load func(path string) (*models.Table, error)
}

// Cache memoizes the loaded table keyed by the source file identity
// (path, modification time, size). A changed file is reloaded on the next
// Get; Invalidate forces a reload.
type Cache struct {
	path     string
	log      *logrus.Logger
	recorder Recorder
	onLoad   func(*models.Table) error
	load     func(path string) (*models.Table, error)

	group singleflight.Group

	mu    sync.RWMutex
	table *models.Table
	gen   uint64 // bumped by Invalidate
}

func NewCache(cfg CacheConfig) *Cache {
	c := &Cache{
		path:     cfg.Path,
		log:      cfg.Logger,
		recorder: cfg.Recorder,
		onLoad:   cfg.OnLoad,
		load:     cfg.Load,
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}
	if c.recorder == nil {
		c.recorder = nopRecorder{}
	}
	if c.load == nil {
		c.load = Load
	}
	return c
}

// Get returns the table for the current state of the source file.
func (c *Cache) Get() (*models.Table, error) {
	info, err := os.Stat(c.path)
	if err != nil {
		c.recorder.LoadFailed()
		return nil, fmt.Errorf("stat %s: %w", c.path, err)
	}

	c.mu.RLock()
	cached := c.table
	c.mu.RUnlock()

	if cached != nil && sameSource(cached.Source, c.path, info) {
		c.recorder.CacheHit()
		return cached, nil
	}
	c.recorder.CacheMiss()

	key := c.path + "|" + strconv.FormatInt(info.ModTime().UnixNano(), 10) + "|" + strconv.FormatInt(info.Size(), 10)
	v, err, _ := c.group.Do(key, func() (any, error) {
		return c.reload()
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Table), nil
}

// Invalidate drops the cached table.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.table = nil
	c.gen++
	c.mu.Unlock()
	c.log.WithField("path", c.path).Info("Dataset cache cleared")
}

// reload publishes the table only after the hook has run, and only when no
// Invalidate happened while it was loading.
func (c *Cache) reload() (*models.Table, error) {
	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()

	start := time.Now()
	table, err := c.load(c.path)
	if err != nil {
		c.recorder.LoadFailed()
		c.log.WithError(err).WithField("path", c.path).Error("Failed to load dataset")
		return nil, err
	}
	took := time.Since(start)
	c.recorder.LoadSucceeded(table.Len(), took)

	entry := c.log.WithFields(logrus.Fields{
		"path":     c.path,
		"rows":     table.Len(),
		"duration": took.String(),
	})
	if table.UnparsedTimestamps > 0 {
		entry.WithField("unparsed_timestamps", table.UnparsedTimestamps).Warn("Dataset loaded with unparseable timestamps")
	} else {
		entry.Info("Dataset loaded")
	}

	if c.onLoad != nil {
		if err := c.onLoad(table); err != nil {
			c.log.WithError(err).Warn("Dataset load hook failed")
		}
	}

	c.mu.Lock()
	if c.gen == gen {
		c.table = table
	}
	c.mu.Unlock()
	return table, nil
}

func sameSource(s models.Source, path string, info os.FileInfo) bool {
	return s.Path == path && s.Size == info.Size() && s.ModTime.Equal(info.ModTime())
}
