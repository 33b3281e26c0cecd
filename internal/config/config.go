package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/money"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`    // Total time spent retrying the initial connection
}

// NATSConfig holds NATS JetStream configuration.
// An empty URL disables event publishing.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort                           string  `mapstructure:"host_port"`
	Namespace                          string  `mapstructure:"namespace"`
	DividendTaskQueue                  string  `mapstructure:"dividend_task_queue"`
	MaxConcurrentActivityExecutionSize int     `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64 `mapstructure:"worker_activities_per_second"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds the shared secrets for inbound triggers
type AuthConfig struct {
	CronSecret    string `mapstructure:"cron_secret"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// DividendConfig holds dividend round configuration
type DividendConfig struct {
	// Rate is the fraction of revenue paid out as dividends, as a decimal string (e.g. "0.75")
	Rate string `mapstructure:"rate"`
	// Window is how far back pending revenue is considered
	Window time.Duration `mapstructure:"window"`
	// Schedule is the cron expression of the scheduled round
	Schedule string `mapstructure:"schedule"`
}

// PayoutConfig holds settlement service configuration
type PayoutConfig struct {
	URL         string        `mapstructure:"url"`
	APIKey      string        `mapstructure:"api_key"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MinSatoshis uint64        `mapstructure:"min_satoshis"`
}

// EquityConfig holds platform equity allocation configuration
type EquityConfig struct {
	// PlatformUserID is the user id recorded as the platform recipient
	PlatformUserID string `mapstructure:"platform_user_id"`
	// Increment is the percentage points granted per completed tranche
	Increment string `mapstructure:"increment"`
	// Cap is the maximum cumulative platform percentage per project
	Cap string `mapstructure:"cap"`
	// CapPolicy is either "reject" or "clamp"
	CapPolicy domain.EquityCapPolicy `mapstructure:"cap_policy"`
}

// WorkerConfig holds internal worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// TrancheSweeperConfig holds configuration for the tranche reconciliation sweeper
type TrancheSweeperConfig struct {
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
	Worker    WorkerConfig  `mapstructure:"worker"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Dividend   DividendConfig `mapstructure:"dividend"`
	Payout     PayoutConfig   `mapstructure:"payout"`
	Equity     EquityConfig   `mapstructure:"equity"`
}

// WorkerServiceConfig holds configuration for the Temporal worker service
type WorkerServiceConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Temporal   TemporalConfig `mapstructure:"temporal"`
	Dividend   DividendConfig `mapstructure:"dividend"`
	Payout     PayoutConfig   `mapstructure:"payout"`
}

// SweeperConfig holds configuration for the sweeper program
type SweeperConfig struct {
	BaseConfig     `mapstructure:",squash"`
	Database       DatabaseConfig       `mapstructure:"database"`
	NATS           NATSConfig           `mapstructure:"nats"`
	Equity         EquityConfig         `mapstructure:"equity"`
	TrancheSweeper TrancheSweeperConfig `mapstructure:"tranche_sweeper"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 90)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	setDividendDefaults(v)
	setEquityDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Dividend.validate(); err != nil {
		return nil, err
	}
	if err := config.Equity.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadWorkerConfig loads configuration for the Temporal worker
func LoadWorkerConfig(configFile string, envPath string) (*WorkerServiceConfig, error) {
	v := configureViper("worker", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	setDividendDefaults(v)
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.dividend_task_queue", "revshare-dividends")
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 10)
	v.SetDefault("temporal.worker_activities_per_second", 10)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config WorkerServiceConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Dividend.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadSweeperConfig loads configuration for the sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	setEquityDefaults(v)
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("tranche_sweeper.interval", "10m")
	v.SetDefault("tranche_sweeper.batch_size", 100)
	v.SetDefault("tranche_sweeper.worker.pool_size", 4)
	v.SetDefault("tranche_sweeper.worker.queue_size", 100)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}
	if err := cfg.Equity.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("database.connect_timeout", "30s")
}

func setNATSDefaults(v *viper.Viper) {
	v.SetDefault("nats.stream_name", "REVSHARE_EVENTS")
	v.SetDefault("nats.subject_prefix", "revshare")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.publish_timeout", "5s")
}

func setDividendDefaults(v *viper.Viper) {
	v.SetDefault("dividend.rate", domain.DEFAULT_DIVIDEND_RATE)
	v.SetDefault("dividend.window", domain.DEFAULT_DISTRIBUTION_WINDOW.String())
	v.SetDefault("dividend.schedule", "0 0 * * *")
	v.SetDefault("payout.timeout", domain.DEFAULT_PAYOUT_TIMEOUT.String())
	v.SetDefault("payout.min_satoshis", 1)
}

func setEquityDefaults(v *viper.Viper) {
	v.SetDefault("equity.increment", domain.DEFAULT_EQUITY_INCREMENT)
	v.SetDefault("equity.cap", domain.DEFAULT_EQUITY_CAP)
	v.SetDefault("equity.cap_policy", string(domain.EquityCapPolicyReject))
}

// readConfig reads the config file, falling back to environment variables when none exists
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// DividendRate returns the parsed dividend rate
func (c DividendConfig) DividendRate() (money.Rate, error) {
	r, err := money.ParseRate(c.Rate)
	if err != nil {
		return 0, fmt.Errorf("invalid dividend.rate %q: %w", c.Rate, err)
	}
	return r, nil
}

func (c DividendConfig) validate() error {
	r, err := c.DividendRate()
	if err != nil {
		return err
	}
	if r.PPM() > money.RateScale {
		return fmt.Errorf("dividend.rate must be between 0 and 1, got %s", c.Rate)
	}
	if c.Window <= 0 {
		return errors.New("dividend.window must be positive")
	}
	return nil
}

// IncrementPercent returns the parsed per-tranche increment
func (c EquityConfig) IncrementPercent() (money.Percent, error) {
	p, err := money.ParsePercent(c.Increment)
	if err != nil {
		return 0, fmt.Errorf("invalid equity.increment %q: %w", c.Increment, err)
	}
	return p, nil
}

// CapPercent returns the parsed platform cap
func (c EquityConfig) CapPercent() (money.Percent, error) {
	p, err := money.ParsePercent(c.Cap)
	if err != nil {
		return 0, fmt.Errorf("invalid equity.cap %q: %w", c.Cap, err)
	}
	return p, nil
}

func (c EquityConfig) validate() error {
	inc, err := c.IncrementPercent()
	if err != nil {
		return err
	}
	capPct, err := c.CapPercent()
	if err != nil {
		return err
	}
	if inc <= 0 {
		return errors.New("equity.increment must be positive")
	}
	if capPct < 0 || capPct > money.HundredPercent {
		return fmt.Errorf("equity.cap must be between 0 and 100, got %s", c.Cap)
	}
	if !c.CapPolicy.IsValid() {
		return fmt.Errorf("equity.cap_policy must be %q or %q, got %q",
			domain.EquityCapPolicyReject, domain.EquityCapPolicyClamp, c.CapPolicy)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/sweeper/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FF_REVSHARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		"database.connect_timeout",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.publish_timeout",
		// Temporal
		"temporal.host_port",
		"temporal.namespace",
		"temporal.dividend_task_queue",
		"temporal.max_concurrent_activity_execution_size",
		"temporal.worker_activities_per_second",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.cron_secret",
		"auth.webhook_secret",
		// Dividend
		"dividend.rate",
		"dividend.window",
		"dividend.schedule",
		// Payout
		"payout.url",
		"payout.api_key",
		"payout.timeout",
		"payout.min_satoshis",
		// Equity
		"equity.platform_user_id",
		"equity.increment",
		"equity.cap",
		"equity.cap_policy",
		// Tranche sweeper
		"tranche_sweeper.interval",
		"tranche_sweeper.batch_size",
		"tranche_sweeper.worker.pool_size",
		"tranche_sweeper.worker.queue_size",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
