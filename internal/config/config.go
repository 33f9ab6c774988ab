package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/spf13/viper"
)

type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// Config holds the configuration for QuoteVault and its dependencies.
type Config struct {
	// Listen is the address the HTTP API listens on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// Timezone is the IANA time zone used to compute the quote of the day.
	// Empty means the system time zone.
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
	// PageSize is the default page size of paginated reads.
	PageSize int `yaml:"page_size" mapstructure:"page_size"`
	// ServerURL is the public base URL of the API, used in notifications.
	ServerURL string `yaml:"server_url" mapstructure:"server_url"`
	// Backend holds the connection settings of the hosted backend.
	Backend *BackendConfig `yaml:"backend" mapstructure:"backend"`
	// Database holds the local cache configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Cache holds the quote of the day cache configuration.
	Cache *CacheConfig `yaml:"cache" mapstructure:"cache"`
	// Sync holds the schedules of the periodic pulls.
	Sync *SyncConfig `yaml:"sync" mapstructure:"sync"`
	// Email holds the email delivery configuration.
	Email *EmailConfig `yaml:"email" mapstructure:"email"`
	// Ntfy holds the ntfy delivery configuration.
	Ntfy *NtfyConfig `yaml:"ntfy" mapstructure:"ntfy"`
	// WebPush holds the webpush delivery configuration.
	WebPush *WebPushConfig `yaml:"webpush" mapstructure:"webpush"`
	// Gravatar holds the configuration for Gravatar fallback avatars.
	Gravatar *GravatarConfig `yaml:"gravatar" mapstructure:"gravatar"`
}

// BackendConfig holds the connection settings of the hosted backend.
type BackendConfig struct {
	// URL is the base URL of the backend project.
	URL string `yaml:"url" mapstructure:"url"`
	// AnonKey is the public API key of the project.
	AnonKey string `yaml:"anon_key" mapstructure:"anon_key"`
	// AvatarBucket is the storage bucket avatars are uploaded to.
	AvatarBucket string `yaml:"avatar_bucket" mapstructure:"avatar_bucket"`
	// Timeout is the timeout of a single backend request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// DatabaseConfig holds the local cache configuration.
type DatabaseConfig struct {
	// Path is the path of the SQLite file.
	Path string `yaml:"path" mapstructure:"path"`
}

// CacheConfig holds the configuration for the cache engine.
type CacheConfig struct {
	// Type is the type of cache engine to use (e.g., "memory", "redis").
	Type CacheType `yaml:"type" mapstructure:"type"`
	// RedisURL is the URL for the Redis cache if using Redis.
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
	// QuoteOfDayTTL is how long a resolved quote of the day is kept.
	QuoteOfDayTTL time.Duration `yaml:"quote_of_day_ttl" mapstructure:"quote_of_day_ttl"`
}

// SyncConfig holds the schedules of the periodic pulls.
type SyncConfig struct {
	// RefreshSchedule is the cron schedule for refreshing categories and quotes.
	RefreshSchedule string `yaml:"refresh_schedule" mapstructure:"refresh_schedule"`
	// SyncSchedule is the cron schedule for syncing favorites, collections and settings.
	SyncSchedule string `yaml:"sync_schedule" mapstructure:"sync_schedule"`
	// RefreshOnStart runs both jobs once when the server starts.
	RefreshOnStart bool `yaml:"refresh_on_start" mapstructure:"refresh_on_start"`
}

// EmailConfig holds the email delivery configuration.
type EmailConfig struct {
	// Enabled indicates whether email delivery is enabled.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// SMTPHost is the SMTP server host.
	SMTPHost string `yaml:"smtp_host" mapstructure:"smtp_host"`
	// SMTPPort is the SMTP server port.
	SMTPPort int `yaml:"smtp_port" mapstructure:"smtp_port"`
	// Username is the SMTP username.
	Username string `yaml:"username" mapstructure:"username"`
	// Password is the SMTP password.
	Password string `yaml:"password" mapstructure:"password"`
	// FromEmail is the email address quotes are sent from.
	FromEmail string `yaml:"from_email" mapstructure:"from_email"`
	// FromName is the name quotes are sent from.
	FromName string `yaml:"from_name" mapstructure:"from_name"`
	// To is the recipient of the daily quote. Empty means the signed in user.
	To string `yaml:"to" mapstructure:"to"`
	// UseTLS indicates whether to use TLS for the SMTP connection.
	UseTLS bool `yaml:"use_tls" mapstructure:"use_tls"`
	// UseSSL indicates whether to use SSL for the SMTP connection.
	UseSSL bool `yaml:"use_ssl" mapstructure:"use_ssl"`
	// InsecureSkipVerify indicates whether to skip TLS certificate verification.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify" mapstructure:"insecure_skip_verify"`
}

// NtfyConfig holds the ntfy delivery configuration.
type NtfyConfig struct {
	// Enabled indicates whether ntfy delivery is enabled.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// ServerURL is the URL of the ntfy server.
	ServerURL string `yaml:"server_url" mapstructure:"server_url"`
	// Topic is the ntfy topic to publish quotes to.
	Topic string `yaml:"topic" mapstructure:"topic"`
	// Username is the ntfy username for authentication.
	Username string `yaml:"username" mapstructure:"username"`
	// Password is the ntfy password for authentication.
	Password string `yaml:"password" mapstructure:"password"`
	// Token is the ntfy token for authentication.
	Token string `yaml:"token" mapstructure:"token"`
}

// WebPushConfig holds the webpush delivery configuration.
type WebPushConfig struct {
	// Enabled indicates whether webpush delivery is enabled.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// VAPIDEmail is the email associated with the VAPID keys.
	VAPIDEmail string `yaml:"vapid_email" mapstructure:"vapid_email"`
	// PublicKey is the VAPID public key.
	PublicKey string `yaml:"public_key" mapstructure:"public_key"`
	// PrivateKey is the VAPID private key.
	PrivateKey string `yaml:"private_key" mapstructure:"private_key"`
}

// GravatarConfig holds the configuration for Gravatar profile pictures.
type GravatarConfig struct {
	// Enabled indicates whether Gravatar support is enabled.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// DefaultImage is the default image to use when no Gravatar is found.
	// Valid values: "404", "mp", "identicon", "monsterid", "wavatar", "retro", "robohash", "blank"
	DefaultImage string `yaml:"default_image" mapstructure:"default_image"`
	// Rating is the maximum rating for Gravatar images.
	// Valid values: "g", "pg", "r", "x"
	Rating string `yaml:"rating" mapstructure:"rating"`
	// Size is the size of the Gravatar image in pixels (1-2048).
	Size int `yaml:"size" mapstructure:"size"`
}

// Location returns the configured time zone, or time.Local when unset or unknown.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
func Load(path string) (*Config, error) {
	v := viper.New()

	// bind nested env vars of blocks without defaults
	bindNestedEnv(v)

	// Set default values
	setDefaults(v)

	// Configure Viper
	v.SetConfigType("yaml")
	v.SetEnvPrefix("QUOTEVAULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		// Use specific config file
		v.SetConfigFile(path)
	} else {
		// Search for config in common locations
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.quotevault")
		v.AddConfigPath("/etc/quotevault")
	}

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with the QUOTEVAULT_ prefix override config file values")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Sanitize config values
	sanitizeConfig(&c)

	// Validate required configs
	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "127.0.0.1:3080")
	v.SetDefault("timezone", "")
	v.SetDefault("page_size", 20)
	v.SetDefault("server_url", "http://localhost:3080")

	// Backend defaults
	v.SetDefault("backend.avatar_bucket", "avatars")
	v.SetDefault("backend.timeout", 30*time.Second)

	// Database defaults
	v.SetDefault("database.path", "./data/quotevault.db")

	// Cache defaults
	v.SetDefault("cache.type", CacheTypeMemory) // Default to in-memory
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.quote_of_day_ttl", 24*time.Hour)

	// Sync defaults
	v.SetDefault("sync.refresh_schedule", "0 */6 * * *")
	v.SetDefault("sync.sync_schedule", "*/30 * * * *")
	v.SetDefault("sync.refresh_on_start", true)

	// Email defaults
	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp_host", "")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.username", "")
	v.SetDefault("email.password", "")
	v.SetDefault("email.from_name", "QuoteVault")
	v.SetDefault("email.to", "")
	v.SetDefault("email.use_tls", true)
	v.SetDefault("email.use_ssl", false)
	v.SetDefault("email.insecure_skip_verify", false)

	// Ntfy defaults
	v.SetDefault("ntfy.enabled", false)
	v.SetDefault("ntfy.server_url", "https://ntfy.sh")
	v.SetDefault("ntfy.topic", "quotevault")
	v.SetDefault("ntfy.username", "")
	v.SetDefault("ntfy.password", "")
	v.SetDefault("ntfy.token", "")

	// Gravatar defaults
	v.SetDefault("gravatar.enabled", false)
	v.SetDefault("gravatar.default_image", "identicon")
	v.SetDefault("gravatar.rating", "g")
	v.SetDefault("gravatar.size", 80)

	// WebPush defaults
	v.SetDefault("webpush.enabled", false)
	v.SetDefault("webpush.vapid_email", "")
	v.SetDefault("webpush.public_key", "")
	v.SetDefault("webpush.private_key", "")
}

// the auto env function from viper only works for nested structs, if the struct to which a value binds isn't nil.
// The backend block has required values without defaults, so its env vars are bound manually.
func bindNestedEnv(v *viper.Viper) {
	v.MustBindEnv("backend.url", "QUOTEVAULT_BACKEND_URL")
	v.MustBindEnv("backend.anon_key", "QUOTEVAULT_BACKEND_ANON_KEY")
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing quotevault config")
	}

	if c.Backend == nil || c.Backend.URL == "" {
		return fmt.Errorf("backend URL is required")
	}
	if c.Backend.AnonKey == "" {
		return fmt.Errorf("backend anon key is required")
	}

	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.PageSize <= 0 || c.PageSize > domain.MaxPageSize {
		return fmt.Errorf("page size must be between 1 and %d", domain.MaxPageSize)
	}

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
	}

	if c.Cache != nil {
		if c.Cache.Type == "" {
			return fmt.Errorf("cache type is required when cache is enabled")
		}
		if c.Cache.Type != CacheTypeMemory && c.Cache.Type != CacheTypeRedis {
			return fmt.Errorf("unknown cache type %q", c.Cache.Type)
		}
		if c.Cache.Type == CacheTypeRedis && c.Cache.RedisURL == "" {
			return fmt.Errorf("Redis URL is required when Redis cache is enabled") //nolint:staticcheck
		}
	} else {
		c.Cache = &CacheConfig{
			Type:          CacheTypeMemory, // Default to in-memory cache if not enabled
			QuoteOfDayTTL: 24 * time.Hour,
		}
	}

	if c.Sync != nil {
		for name, schedule := range map[string]string{
			"refresh schedule": c.Sync.RefreshSchedule,
			"sync schedule":    c.Sync.SyncSchedule,
		} {
			if err := validateCron(schedule); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}

	if c.Email != nil && c.Email.Enabled {
		if c.Email.SMTPHost == "" {
			return fmt.Errorf("SMTP host is required when email is enabled")
		}
		if c.Email.FromEmail == "" {
			return fmt.Errorf("from email is required when email is enabled")
		}
	}

	if c.Ntfy != nil && c.Ntfy.Enabled {
		if c.Ntfy.ServerURL == "" {
			return fmt.Errorf("ntfy server URL is required when ntfy is enabled")
		}
		if c.Ntfy.Topic == "" {
			return fmt.Errorf("ntfy topic is required when ntfy is enabled")
		}
	}

	if c.WebPush != nil && c.WebPush.Enabled {
		if c.WebPush.PublicKey == "" || c.WebPush.PrivateKey == "" {
			return fmt.Errorf("VAPID keys are required when webpush is enabled, generate them with 'quotevault push generate-keys'")
		}
		if c.WebPush.VAPIDEmail == "" {
			log.Warn("webpush is enabled without a VAPID email, some push services may reject messages")
		}
	}

	return nil
}

// validateCron checks that schedule is a valid five field cron expression.
func validateCron(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("cron expression is required")
	}
	if len(strings.Fields(schedule)) != 5 {
		return fmt.Errorf("must be a valid cron expression with 5 fields (minute hour day month weekday)")
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	defer s.Shutdown() //nolint:errcheck
	if _, err := s.NewJob(gocron.CronJob(schedule, false), gocron.NewTask(func() {})); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", schedule, err)
	}
	return nil
}

// sanitizeConfig sanitizes the configuration values.
func sanitizeConfig(c *Config) {
	if c == nil {
		return
	}

	c.Listen = urlSanitize(c.Listen)
	c.Timezone = strings.TrimSpace(c.Timezone)

	if c.ServerURL != "" {
		c.ServerURL = urlSanitize(c.ServerURL)
	}

	if c.Backend != nil {
		c.Backend.URL = urlSanitize(c.Backend.URL)
		c.Backend.AnonKey = strings.TrimSpace(c.Backend.AnonKey)
	}

	if c.Ntfy != nil {
		c.Ntfy.ServerURL = urlSanitize(c.Ntfy.ServerURL)
	}
}

func urlSanitize(url string) string {
	return strings.TrimSuffix(strings.TrimSpace(url), "/")
}
