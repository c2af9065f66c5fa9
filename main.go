package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"comment-analytics/config"
	"comment-analytics/database"
	"comment-analytics/dataset"
	"comment-analytics/handlers"
	"comment-analytics/logging"
	"comment-analytics/metrics"
)

// Swapped in tests.
var (
	openStore = database.Open
	listen    = func(r *gin.Engine, addr string) error { return r.Run(addr) }
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	log := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err := run(cfg, log, metrics.New()); err != nil {
		log.WithError(err).Error("Comment analytics dashboard stopped")
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup always happens.
func run(cfg *config.Config, log *logrus.Logger, m *metrics.Metrics) error {
	var store *database.Store
	if cfg.DBPath != "" {
		var err error
		store, err = openStore(cfg.DBPath, log)
		if err != nil {
			return fmt.Errorf("open snapshot database: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.WithError(err).Warn("Failed to close snapshot database")
			}
		}()
	}

	cacheCfg := dataset.CacheConfig{
		Path:     cfg.DataPath,
		Logger:   log,
		Recorder: m.Dataset,
	}
	if store != nil {
		cacheCfg.OnLoad = store.ReplaceSnapshot
	}
	cache := dataset.NewCache(cacheCfg)

	// No dashboard without data: the first load must succeed.
	if _, err := cache.Get(); err != nil {
		return fmt.Errorf("load comments data: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	var querier handlers.CommentQuerier
	if store != nil {
		querier = store
	}
	h := handlers.New(cache, querier, log)
	r := handlers.NewRouter(h, handlers.RouterOptions{
		TemplatesDir: cfg.TemplatesDir,
		Middleware:   []gin.HandlerFunc{logging.Middleware(log), m.HTTP.Middleware()},
		Metrics:      m.Handler(),
	})

	log.WithField("addr", cfg.Addr()).Info("Starting comment analytics dashboard")
	log.Infof("Dashboard: http://localhost%s/dashboard", cfg.Addr())

	if err := listen(r, cfg.Addr()); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
