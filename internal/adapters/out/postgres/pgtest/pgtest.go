// Package pgtest starts a throwaway PostgreSQL container with the full
// schema for the repository integration suites.
package pgtest

import (
	"context"
	"io"
	"log/slog"
	"time"

	postgresadapter "orderflow/internal/adapters/out/postgres"

	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

const tables = "package_events, charges, discounts, packages, orders, " +
	"contact_address_associations, addresses, contacts, business_hours"

type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "start postgres container")
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, errors.Wrap(err, "container connection string")
	}

	db, err := postgresadapter.OpenDSN(ctx, dsn, false, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	if err := postgresadapter.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db}, nil
}

// Truncate empties every table.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE " + tables).Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
