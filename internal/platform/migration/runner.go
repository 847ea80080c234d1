// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the SQL schema of the postgres credential backend
// using golang-migrate.
//
// # Architecture
//
// This package belongs to the Infrastructure layer. It runs once at startup,
// before the account seed, and only when CREDENTIAL_BACKEND=postgres.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunUp applies all pending UP migrations.
//
// # Parameters
//   - dsn: A libpq-compatible DSN or postgres:// URL.
//   - migrationsPath: Filesystem path to the migrations directory.
//   - logger: Structured logger for migration events.
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	migrator, err := migrate.New("file://"+migrationsPath, ToPgx5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if err := errors.Join(sourceError, dbError); err != nil {
			logger.Error("migration_close_failed", slog.Any("error", err))
		}
	}()

	migrator.Log = &migrateLogger{logger: logger}

	fromVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}
	if isDirty {
		return fmt.Errorf("migration: database is dirty at version %d (manual intervention required)", fromVersion)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date", slog.Uint64("version", uint64(fromVersion)))
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	toVersion, _, _ := migrator.Version()
	logger.Info("migration_successful",
		slog.Uint64("from_version", uint64(fromVersion)),
		slog.Uint64("to_version", uint64(toVersion)),
	)

	return nil
}

// ToPgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme
// registered by the golang-migrate pgx/v5 driver. Other values pass through.
func ToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, found := strings.CutPrefix(dsn, prefix); found {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger *slog.Logger
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug("migration_progress", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return false
}
