package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Log      LogConfig
	Tracing  TracingConfig
	Import   ImportConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Version     string
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s Timezone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type LogConfig struct {
	Level      string
	Format     string
	OutputPath string
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Endpoint    string
	SampleRate  float64
}

// SheetConfig identifies one workbook tab. HeaderRow is 1-based; data rows
// start on the row after it. Sheet names vary per delivery (a leading-space
// variant has been observed in the field), so they are configuration, not
// literals.
type SheetConfig struct {
	Name      string
	HeaderRow int
}

type ImportConfig struct {
	DisordersSheet    SheetConfig
	AttemptsSheet     SheetConfig
	ConsumptionsSheet SheetConfig

	// FollowupYear drives both the month-column names ({mes}_{year}) and the
	// period key of generated follow-ups.
	FollowupYear int

	// MaxErrors caps the error list returned to the operator; the total count
	// is always reported.
	MaxErrors int

	MaxUploadBytes int64

	// SystemOperatorID is recorded as creator/performer when no authenticated
	// operator is present, so imports are never blocked by a missing identity.
	SystemOperatorID uuid.UUID
}

func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "mindtrack-api"),
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "0.0.0"),
		},
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "mindtrack"),
			User:            getEnv("DB_USER", "mindtrack"),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "require"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			Issuer: getEnv("JWT_ISSUER", "mindtrack-api"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvBool("TRACING_ENABLED", true),
			ServiceName: getEnv("TRACING_SERVICE_NAME", "mindtrack-api"),
			Endpoint:    getEnv("OTLP_ENDPOINT", "http://jaeger-collector:4318"),
			SampleRate:  getEnvFloat("TRACING_SAMPLE_RATE", 0.1),
		},
		Import: ImportConfig{
			DisordersSheet: SheetConfig{
				Name:      getEnv("IMPORT_SHEET_DISORDERS", "TRASTORNOS 2025"),
				HeaderRow: getEnvInt("IMPORT_SHEET_DISORDERS_HEADER_ROW", 1),
			},
			AttemptsSheet: SheetConfig{
				Name:      getEnv("IMPORT_SHEET_ATTEMPTS", "EVENTO 356 2025"),
				HeaderRow: getEnvInt("IMPORT_SHEET_ATTEMPTS_HEADER_ROW", 1),
			},
			ConsumptionsSheet: SheetConfig{
				Name:      getEnv("IMPORT_SHEET_CONSUMPTIONS", "CONSUMO SPA 2025"),
				HeaderRow: getEnvInt("IMPORT_SHEET_CONSUMPTIONS_HEADER_ROW", 1),
			},
			FollowupYear:     getEnvInt("IMPORT_FOLLOWUP_YEAR", 2025),
			MaxErrors:        getEnvInt("IMPORT_MAX_ERRORS", 50),
			MaxUploadBytes:   int64(getEnvInt("IMPORT_MAX_UPLOAD_BYTES", 20<<20)),
			SystemOperatorID: getEnvUUID("IMPORT_SYSTEM_OPERATOR_ID", uuid.MustParse("00000000-0000-0000-0000-000000000001")),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces production security requirements.
func validate(cfg *Config) error {
	var errs []string

	if cfg.Database.Password == "" && cfg.App.Environment != "development" {
		errs = append(errs, "DB_PASSWORD is required in non-development environments")
	}

	if cfg.Database.SSLMode == "disable" && cfg.App.Environment == "production" {
		errs = append(errs, "DB_SSLMODE=disable is not allowed in production")
	}

	if cfg.JWT.Secret == "" && cfg.App.Environment == "production" {
		errs = append(errs, "JWT_SECRET is required in production")
	}

	for _, sheet := range []SheetConfig{cfg.Import.DisordersSheet, cfg.Import.AttemptsSheet, cfg.Import.ConsumptionsSheet} {
		if sheet.Name == "" {
			errs = append(errs, "import sheet names must not be empty")
		}
		if sheet.HeaderRow < 1 {
			errs = append(errs, fmt.Sprintf("header row for sheet %q must be >= 1", sheet.Name))
		}
	}

	if cfg.Import.FollowupYear < 2000 || cfg.Import.FollowupYear > 2100 {
		errs = append(errs, "IMPORT_FOLLOWUP_YEAR is out of range")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvUUID(key string, fallback uuid.UUID) uuid.UUID {
	if v, ok := os.LookupEnv(key); ok {
		if id, err := uuid.Parse(v); err == nil {
			return id
		}
	}
	return fallback
}
