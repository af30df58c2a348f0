package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"connectfood/internal/pkg/errs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
	StoreDriverMemory   = "memory"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8082"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME" envDefault:"connectfood"`
	DBSslMode   string `env:"DB_SSLMODE" envDefault:"disable"`
	MongoURI    string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB     string `env:"MONGO_DB" envDefault:"connectfood"`

	JWTSecret string `env:"JWT_SECRET"`
	JWTIssuer string `env:"JWT_ISSUER"`

	CASAttempts      int           `env:"CAS_ATTEMPTS" envDefault:"3"`
	NotifyQueueSize  int           `env:"NOTIFY_QUEUE_SIZE" envDefault:"256"`
	WSOriginPatterns []string      `env:"WS_ORIGIN_PATTERNS" envSeparator:","`
	StatsSchedule    string        `env:"STATS_SCHEDULE" envDefault:"*/30 * * * * *"`
	SweepSchedule    string        `env:"SWEEP_SCHEDULE" envDefault:"*/15 * * * * *"`
	SweepBatchSize   int           `env:"SWEEP_BATCH_SIZE" envDefault:"100"`
	OTELEndpoint     string        `env:"OTEL_ENDPOINT"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadConfig reads the environment, preceded by an optional .env file in the
// working directory. Variables already set in the environment win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []error

	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMongo, StoreDriverMemory:
	default:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"STORE_DRIVER", fmt.Errorf("%q is not one of postgres, mongo, memory", c.StoreDriver)))
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("JWT_SECRET"))
	}
	if c.CASAttempts < 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("CAS_ATTEMPTS", c.CASAttempts, 1, 100))
	}
	if c.NotifyQueueSize < 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("NOTIFY_QUEUE_SIZE", c.NotifyQueueSize, 1, 1<<20))
	}
	if _, err := c.SlogLevel(); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
	}

	return errors.Join(problems...)
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}
