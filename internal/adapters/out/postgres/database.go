package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/adapters/out/postgres/businesshourrepo"
	"orderflow/internal/adapters/out/postgres/chargerepo"
	"orderflow/internal/adapters/out/postgres/contactrepo"
	"orderflow/internal/adapters/out/postgres/discountrepo"
	"orderflow/internal/adapters/out/postgres/eventrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/packagerepo"

	"github.com/pkg/errors"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const pingTimeout = 5 * time.Second

type ConnectionConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Debug    bool
}

func (c ConnectionConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// Open connects and pings the database. Statements run outside a unit of
// work are not wrapped in implicit transactions.
func Open(ctx context.Context, cfg ConnectionConfig, logger *slog.Logger) (*gorm.DB, error) {
	return OpenDSN(ctx, cfg.DSN(), cfg.Debug, logger)
}

func OpenDSN(ctx context.Context, dsn string, debug bool, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 newGormSlogLogger(logger, debug),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open postgres connection")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get postgres sql.DB")
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, errors.Wrap(err, "failed to ping postgres")
	}
	return db, nil
}

// Migrate creates or alters every table. Parents come before the tables
// holding foreign keys to them.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&packagerepo.PackageDTO{},
		&chargerepo.ChargeDTO{},
		&discountrepo.DiscountDTO{},
		&eventrepo.EventDTO{},
		&contactrepo.ContactDTO{},
		&contactrepo.AddressDTO{},
		&contactrepo.AssociationDTO{},
		&businesshourrepo.WindowDTO{},
	)
	return errors.Wrap(err, "failed to migrate schema")
}
