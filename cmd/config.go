package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/pricing"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort        string        `env:"HTTP_PORT"        envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	DBHost        string `env:"DB_HOST"         envDefault:"localhost"`
	DBPort        string `env:"DB_PORT"         envDefault:"5432"`
	DBUser        string `env:"DB_USER"         envDefault:"postgres"`
	DBPassword    string `env:"DB_PASSWORD"`
	DBName        string `env:"DB_NAME"         envDefault:"orderflow"`
	DBSslMode     string `env:"DB_SSLMODE"      envDefault:"disable"`
	DBDebug       bool   `env:"DB_DEBUG"        envDefault:"false"`
	DBAutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	BusinessTimezone string        `env:"BUSINESS_TIMEZONE" envDefault:"UTC"`
	SweepSchedule    string        `env:"SWEEP_SCHEDULE"    envDefault:"0 3 * * *"`
	PickupLead       time.Duration `env:"PICKUP_LEAD"       envDefault:"15m"`
	PickupMaxAhead   time.Duration `env:"PICKUP_MAX_AHEAD"  envDefault:"48h"`

	FeeSmall         decimal.Decimal `env:"FEE_SMALL"         envDefault:"5.00"`
	FeeMedium        decimal.Decimal `env:"FEE_MEDIUM"        envDefault:"7.50"`
	FeeLarge         decimal.Decimal `env:"FEE_LARGE"         envDefault:"10.00"`
	FeeXLarge        decimal.Decimal `env:"FEE_XLARGE"        envDefault:"15.00"`
	ExpressSurcharge decimal.Decimal `env:"EXPRESS_SURCHARGE" envDefault:"5.00"`

	AssignmentServiceURL string        `env:"ASSIGNMENT_SERVICE_URL" envDefault:"http://localhost:8081"`
	AssignmentTimeout    time.Duration `env:"ASSIGNMENT_TIMEOUT"     envDefault:"5s"`

	// Empty values switch the notification channels to log-only fallbacks.
	FirebaseCredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`
	PubSubProjectID         string `env:"PUBSUB_PROJECT_ID"`
	PubSubSMSTopic          string `env:"PUBSUB_SMS_TOPIC" envDefault:"sms-outbound"`
}

// LoadConfig reads envFile when it exists, then parses the process
// environment. Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Database() postgres.ConnectionConfig {
	return postgres.ConnectionConfig{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
		Debug:    c.DBDebug,
	}
}

func (c Config) Tariff() pricing.Tariff {
	return pricing.Tariff{
		Small:            c.FeeSmall,
		Medium:           c.FeeMedium,
		Large:            c.FeeLarge,
		XLarge:           c.FeeXLarge,
		ExpressSurcharge: c.ExpressSurcharge,
	}
}

func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.BusinessTimezone)
	if err != nil {
		return nil, fmt.Errorf("business timezone %q: %w", c.BusinessTimezone, err)
	}
	return loc, nil
}
