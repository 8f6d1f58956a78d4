package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Migrator struct {
	dbURL string
}

func NewMigrator(dbURL string) *Migrator {
	return &Migrator{dbURL: dbURL}
}

func (m *Migrator) Up() error {
	return m.run(func(migrator *migrate.Migrate) error {
		if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		return nil
	})
}

func (m *Migrator) Down() error {
	return m.run(func(migrator *migrate.Migrate) error {
		if err := migrator.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		return nil
	})
}

// Steps applies n migrations forward, or -n backward when n is negative.
func (m *Migrator) Steps(n int) error {
	return m.run(func(migrator *migrate.Migrate) error {
		return migrator.Steps(n)
	})
}

// Version returns the current schema version. ok is false when no migration was applied.
func (m *Migrator) Version() (version uint, dirty bool, ok bool, err error) {
	err = m.run(func(migrator *migrate.Migrate) error {
		v, d, verr := migrator.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			return nil
		}
		if verr != nil {
			return verr
		}
		version, dirty, ok = v, d, true
		return nil
	})
	return version, dirty, ok, err
}

func (m *Migrator) run(fn func(*migrate.Migrate) error) error {
	migrator, err := m.createMigrator()
	if err != nil {
		return err
	}
	defer migrator.Close()

	return fn(migrator)
}

var (
	openDriver = openPostgresDriver
	newMigrate = migrate.NewWithInstance
)

func (m *Migrator) createMigrator() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations: %w", err)
	}

	driver, err := openDriver(m.dbURL)
	if err != nil {
		_ = src.Close()
		return nil, err
	}

	migrator, err := newMigrate("iofs", src, "postgres", driver)
	if err != nil {
		_ = driver.Close()
		_ = src.Close()
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return migrator, nil
}

// openPostgresDriver owns the *sql.DB it opens; closing the driver closes it.
func openPostgresDriver(dbURL string) (database.Driver, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	return driver, nil
}

// AutoMigrate applies all pending migrations.
func AutoMigrate(dbURL string) error {
	return NewMigrator(dbURL).Up()
}
