package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
)

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with BRIDGE_ prefix (e.g., BRIDGE_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	entity := func(section string) EntitySyncConfig {
		return EntitySyncConfig{
			Enabled:  v.GetBool(section + ".enabled"),
			Outbound: v.GetBool(section + ".outbound"),
			Inbound:  v.GetBool(section + ".inbound"),
		}
	}

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
			MaxBodySize:    v.GetInt64("http.max_body_size"),
			TrustedProxies: v.GetStringSlice("http.trusted_proxies"),
		},
		Ninja: NinjaConfig{
			BaseURL:            v.GetString("ninja.base_url"),
			MasterToken:        v.GetString("ninja.master_token"),
			TimeoutSeconds:     v.GetInt("ninja.timeout_seconds"),
			PingTimeoutSeconds: v.GetInt("ninja.ping_timeout_seconds"),
		},
		Webhook: WebhookConfig{
			Secret: v.GetString("webhook.secret"),
		},
		Sync: SyncConfig{
			Customers:   entity("sync.customers"),
			Invoices:    entity("sync.invoices"),
			Quotations:  entity("sync.quotations"),
			Items:       entity("sync.items"),
			Payments:    entity("sync.payments"),
			LockTTL:     v.GetDuration("sync.lock_ttl"),
			LockEnabled: v.GetBool("sync.lock_enabled"),
		},
		Scheduler: SchedulerConfig{
			Enabled:           v.GetBool("scheduler.enabled"),
			PullInterval:      v.GetDuration("scheduler.pull_interval"),
			CleanupInterval:   v.GetDuration("scheduler.cleanup_interval"),
			LogRetentionDays:  v.GetInt("scheduler.log_retention_days"),
			ReportInterval:    v.GetDuration("scheduler.report_interval"),
			ReportEnabled:     v.GetBool("scheduler.report_enabled"),
			MaxConcurrentJobs: v.GetInt("scheduler.max_concurrent_jobs"),
			JobTimeout:        v.GetDuration("scheduler.job_timeout"),
			QueueSize:         v.GetInt("scheduler.queue_size"),
		},
		Notification: NotificationConfig{
			Enabled:         v.GetBool("notification.enabled"),
			Region:          v.GetString("notification.region"),
			Sender:          v.GetString("notification.sender"),
			Recipients:      v.GetStringSlice("notification.recipients"),
			AccessKeyID:     v.GetString("notification.access_key_id"),
			SecretAccessKey: v.GetString("notification.secret_access_key"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Config holds all application configuration
type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Log          LogConfig
	HTTP         HTTPConfig
	Ninja        NinjaConfig
	Webhook      WebhookConfig
	Sync         SyncConfig
	Scheduler    SchedulerConfig
	Notification NotificationConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	MaxBodySize    int64
	TrustedProxies []string
}

// NinjaConfig holds the master Invoice Ninja connection settings. The
// master token is used for company discovery only; per-company tokens live
// in the credential store.
type NinjaConfig struct {
	BaseURL            string
	MasterToken        string
	TimeoutSeconds     int
	PingTimeoutSeconds int
}

// Configured reports whether master credentials are present.
func (n *NinjaConfig) Configured() bool {
	return n.BaseURL != "" && n.MasterToken != ""
}

// WebhookConfig holds webhook verification settings
type WebhookConfig struct {
	// Secret signs webhook payloads (HMAC-SHA256). Empty disables
	// verification, which production refuses.
	Secret string
}

// EntitySyncConfig holds the per-entity-type sync gates
type EntitySyncConfig struct {
	Enabled  bool
	Outbound bool
	Inbound  bool
}

// SyncConfig holds the sync policy
type SyncConfig struct {
	Customers   EntitySyncConfig
	Invoices    EntitySyncConfig
	Quotations  EntitySyncConfig
	Items       EntitySyncConfig
	Payments    EntitySyncConfig
	LockTTL     time.Duration
	LockEnabled bool
}

// Directives builds the domain directive set from the configured gates.
func (s *SyncConfig) Directives() syncdomain.DirectiveSet {
	build := func(t syncdomain.EntityType, c EntitySyncConfig) syncdomain.Directive {
		return syncdomain.Directive{
			EntityType: t,
			Enabled:    c.Enabled,
			Outbound:   c.Outbound,
			Inbound:    c.Inbound,
		}
	}
	return syncdomain.DirectiveSet{
		syncdomain.EntityTypeCustomer:     build(syncdomain.EntityTypeCustomer, s.Customers),
		syncdomain.EntityTypeSalesInvoice: build(syncdomain.EntityTypeSalesInvoice, s.Invoices),
		syncdomain.EntityTypeQuotation:    build(syncdomain.EntityTypeQuotation, s.Quotations),
		syncdomain.EntityTypeItem:         build(syncdomain.EntityTypeItem, s.Items),
		syncdomain.EntityTypePaymentEntry: build(syncdomain.EntityTypePaymentEntry, s.Payments),
	}
}

// SchedulerConfig holds background schedule configuration
type SchedulerConfig struct {
	Enabled           bool
	PullInterval      time.Duration
	CleanupInterval   time.Duration
	LogRetentionDays  int
	ReportInterval    time.Duration
	ReportEnabled     bool
	MaxConcurrentJobs int
	JobTimeout        time.Duration
	QueueSize         int
}

// NotificationConfig holds email notification settings. When the static key
// pair is empty the default AWS credential chain is used.
type NotificationConfig struct {
	Enabled         bool
	Region          string
	Sender          string
	Recipients      []string
	AccessKeyID     string
	SecretAccessKey string
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the host:port address for the Redis connection.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "ninjasync"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "ninjasync"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 10 << 20 // 10MB
	}
	if cfg.Ninja.TimeoutSeconds == 0 {
		cfg.Ninja.TimeoutSeconds = 30
	}
	if cfg.Ninja.PingTimeoutSeconds == 0 {
		cfg.Ninja.PingTimeoutSeconds = 10
	}
	if cfg.Sync.LockTTL == 0 {
		cfg.Sync.LockTTL = 30 * time.Second
	}
	if cfg.Scheduler.PullInterval == 0 {
		cfg.Scheduler.PullInterval = time.Hour
	}
	if cfg.Scheduler.CleanupInterval == 0 {
		cfg.Scheduler.CleanupInterval = 24 * time.Hour
	}
	if cfg.Scheduler.LogRetentionDays == 0 {
		cfg.Scheduler.LogRetentionDays = 30
	}
	if cfg.Scheduler.ReportInterval == 0 {
		cfg.Scheduler.ReportInterval = 7 * 24 * time.Hour
	}
	if cfg.Scheduler.MaxConcurrentJobs == 0 {
		cfg.Scheduler.MaxConcurrentJobs = 3
	}
	if cfg.Scheduler.JobTimeout == 0 {
		cfg.Scheduler.JobTimeout = 30 * time.Minute
	}
	if cfg.Scheduler.QueueSize == 0 {
		cfg.Scheduler.QueueSize = 100
	}
	if cfg.Notification.Region == "" {
		cfg.Notification.Region = "us-east-1"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Ninja.BaseURL != "" && !strings.HasPrefix(c.Ninja.BaseURL, "http") {
		return fmt.Errorf("ninja.base_url must be an http(s) URL")
	}
	if c.Notification.Enabled {
		if c.Notification.Sender == "" {
			return fmt.Errorf("notification.sender is required when notifications are enabled")
		}
		if len(c.Notification.Recipients) == 0 {
			return fmt.Errorf("notification.recipients is required when notifications are enabled")
		}
	}

	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		if c.Webhook.Secret == "" {
			return fmt.Errorf("webhook.secret is required in production")
		}
		if len(c.Webhook.Secret) < 32 {
			return fmt.Errorf("webhook.secret must be at least 32 characters in production")
		}
	}

	return nil
}
