package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func (s *Storage) migrate(ctx context.Context) error {
	if s.driver == driverLibSQL {
		return s.applyUpFiles(ctx)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("creating migration source: %w", err)
	}
	drv, err := sqlite.WithInstance(s.DB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, driverSQLite, drv)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	// Closing m would close s.DB as well.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// applyUpFiles runs the embedded up migrations in order, one statement at a
// time. The remote driver has no golang-migrate backend, so the scripts are
// written to be idempotent.
func (s *Storage) applyUpFiles(ctx context.Context) error {
	names, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := migrationsFS.ReadFile(name)
		if err != nil {
			return err
		}
		for _, stmt := range strings.Split(string(data), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		s.log.WithField("migration", name).Debug("applied")
	}
	return nil
}
