package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/llehouerou/vitrine/internal/config"
	"github.com/llehouerou/vitrine/internal/db"
	"github.com/llehouerou/vitrine/internal/errmsg"
	"github.com/llehouerou/vitrine/internal/library"
	"github.com/llehouerou/vitrine/internal/logger"
)

// env is what every subcommand needs: configuration, log and index.
type env struct {
	cfg    *config.Config
	log    *slog.Logger
	db     *sql.DB
	lib    *library.Library
	closer io.Closer
}

func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpConfigLoad, err)
	}

	log, closer, err := logger.Open(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	conn, err := db.Open(cfg.IndexPath)
	if err != nil {
		closer.Close()
		return nil, errmsg.Wrap(errmsg.OpIndexOpen, err)
	}

	return &env{cfg: cfg, log: log, db: conn, lib: library.New(conn), closer: closer}, nil
}

func (e *env) Close() {
	if err := e.db.Close(); err != nil {
		e.log.Warn("close index", "err", err)
	}
	_ = e.closer.Close()
}
