// Package config provides configuration management for the crowdfund host.
//
// Configuration is loaded from:
// 1. config.yaml file (optional)
// 2. Environment variables (standard names like STORAGE_DRIVER, SERVER_PORT)
// 3. Default values
//
// Import Path: ezcrow.dev/crowdfund/internal/config
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Trace exporters.
const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"
)

// DefaultContractAddress is the address the campaign is hosted at unless
// configured otherwise.
var DefaultContractAddress = "CROWDFUND" + strings.Repeat("A", 47)

// DefaultTokenAddress is the testnet native asset contract.
const DefaultTokenAddress = "CDLZFC3SYJYDZT7K67VZ75HPJVIEUVNIXF47ZG2FB2RMQQVU2HHGCYSC"

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Contract ContractConfig `mapstructure:"contract"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Audit    AuditConfig    `mapstructure:"audit"`
	Log      LogConfig      `mapstructure:"log"`
	River    RiverConfig    `mapstructure:"river"`
	Security SecurityConfig `mapstructure:"security"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port             int           `mapstructure:"port"`
	ReadTimeout      time.Duration `mapstructure:"read_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout"`
	ValidateResponse bool          `mapstructure:"validate_response"`
}

// StorageConfig selects the host storage backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // memory, postgres or sqlite
}

// DatabaseConfig contains PostgreSQL connection settings.
// Host storage, the invocation journal and River share one pool.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`

	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`

	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string.
// Priority: DATABASE_URL > constructed from individual fields.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, sslmode,
	)
}

// SQLiteConfig contains the SQLite database location.
type SQLiteConfig struct {
	Path        string        `mapstructure:"path"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
}

// ContractConfig identifies the hosted contract instance.
type ContractConfig struct {
	Address            string `mapstructure:"address"`
	TokenAddress       string `mapstructure:"token_address"`
	RejectReinitialize bool   `mapstructure:"reject_reinitialize"`
}

// LedgerConfig adjusts the ledger clock.
type LedgerConfig struct {
	ClockOffset time.Duration `mapstructure:"clock_offset"`
}

// AuditConfig controls the invocation journal.
type AuditConfig struct {
	Retention      time.Duration `mapstructure:"retention"`
	MemoryCapacity int           `mapstructure:"memory_capacity"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// RiverConfig contains River Queue settings.
type RiverConfig struct {
	MaxWorkers                  int           `mapstructure:"max_workers"`
	CompletedJobRetentionPeriod time.Duration `mapstructure:"completed_job_retention_period"`
}

// SecurityConfig contains signer token settings.
// The signing secret is auto-generated on first boot if missing.
type SecurityConfig struct {
	SigningSecret string        `mapstructure:"signing_secret"`
	TokenIssuer   string        `mapstructure:"token_issuer"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
}

// WorkerConfig contains worker pool settings.
type WorkerConfig struct {
	GeneralPoolSize int `mapstructure:"general_pool_size"`
	JournalPoolSize int `mapstructure:"journal_pool_size"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Exporter    string  `mapstructure:"exporter"` // otlp or stdout
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
	ServiceName string  `mapstructure:"service_name"`
}

// CORSConfig lists the dashboard origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

var (
	bootstrapLoggerOnce sync.Once
	bootstrapLogger     *zap.Logger
)

var addressPattern = regexp.MustCompile(`^[GC][A-Z2-7]{55}$`)

// Load reads configuration from file and environment variables.
// Nested keys map to upper-case env names: storage.driver becomes STORAGE_DRIVER.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/crowdfund")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file is optional, use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.ensureSecrets(); err != nil {
		return nil, fmt.Errorf("ensure secrets: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate checks for critical configuration errors.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverPostgres:
	case DriverSQLite:
		if strings.TrimSpace(c.SQLite.Path) == "" {
			return fmt.Errorf("sqlite.path must be set when storage.driver is %q", DriverSQLite)
		}
	default:
		return fmt.Errorf("storage.driver %q is not one of memory, postgres, sqlite", c.Storage.Driver)
	}
	if !addressPattern.MatchString(c.Contract.Address) {
		return fmt.Errorf("contract.address %q is not a valid address", c.Contract.Address)
	}
	if !addressPattern.MatchString(c.Contract.TokenAddress) || c.Contract.TokenAddress[0] != 'C' {
		return fmt.Errorf("contract.token_address %q is not a valid contract address", c.Contract.TokenAddress)
	}
	if len(c.Security.SigningSecret) < 32 {
		return fmt.Errorf("security.signing_secret must be at least 32 characters")
	}
	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("security.token_ttl must be positive")
	}
	if c.Tracing.Enabled {
		switch c.Tracing.Exporter {
		case ExporterOTLP, ExporterStdout:
		default:
			return fmt.Errorf("tracing.exporter %q is not one of otlp, stdout", c.Tracing.Exporter)
		}
		if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
			return fmt.Errorf("tracing.sample_ratio must be within [0,1]")
		}
	}
	return nil
}

// ensureSecrets auto-generates a missing signing secret.
func (c *Config) ensureSecrets() error {
	if c.Security.SigningSecret == "" {
		secret, err := generateSecureRandomHex(32)
		if err != nil {
			return fmt.Errorf("auto-generate signing secret: %w", err)
		}
		c.Security.SigningSecret = secret
		logBootstrapWarn(
			"auto-generated signing_secret; set SECURITY_SIGNING_SECRET env var so issued signer tokens survive restarts",
			zap.Int("length", len(secret)),
		)
	}
	return nil
}

func logBootstrapWarn(msg string, fields ...zap.Field) {
	bootstrapLoggerOnce.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

		l, err := cfg.Build()
		if err != nil {
			bootstrapLogger = zap.NewNop()
			return
		}
		bootstrapLogger = l
	})

	bootstrapLogger.Warn(msg, fields...)
}

// generateSecureRandomHex produces a hex-encoded string of n random bytes.
func generateSecureRandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("crypto/rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.validate_response", false)

	// Storage
	v.SetDefault("storage.driver", DriverMemory)

	// Database
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "crowdfund")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "crowdfund")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "10m")
	v.SetDefault("database.auto_migrate", true)

	// SQLite
	v.SetDefault("sqlite.path", "crowdfund.db")
	v.SetDefault("sqlite.busy_timeout", "5s")

	// Contract
	v.SetDefault("contract.address", DefaultContractAddress)
	v.SetDefault("contract.token_address", DefaultTokenAddress)
	v.SetDefault("contract.reject_reinitialize", false)

	// Ledger
	v.SetDefault("ledger.clock_offset", "0s")

	// Audit
	v.SetDefault("audit.retention", "720h")
	v.SetDefault("audit.memory_capacity", 1000)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// River
	v.SetDefault("river.max_workers", 5)
	v.SetDefault("river.completed_job_retention_period", "24h")

	// Security
	v.SetDefault("security.signing_secret", "")
	v.SetDefault("security.token_issuer", "crowdfund")
	v.SetDefault("security.token_ttl", "24h")

	// Worker Pool
	v.SetDefault("worker.general_pool_size", 32)
	v.SetDefault("worker.journal_pool_size", 4)

	// Tracing
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.exporter", ExporterOTLP)
	v.SetDefault("tracing.endpoint", "localhost:4318")
	v.SetDefault("tracing.insecure", true)
	v.SetDefault("tracing.sample_ratio", 1.0)
	v.SetDefault("tracing.service_name", "crowdfund")

	// CORS
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("cors.allow_credentials", false)
}
