// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"bitwise74/medflow-api/pkg/util"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

var (
	validLogLevels    = []string{"debug", "info", "warn", "error", "fatal"}
	validEnvs         = []string{"development", "production"}
	validStorageTypes = []string{"s3", "local"}
	validDrivers      = []string{"postgres", "sqlite"}
)

type Config struct {
	App struct {
		LogLevel string
		Env      string
	}

	Host struct {
		Port       int
		Domain     string
		SSLEnabled bool
		CORS       []string
	}

	Database struct {
		Driver string
		DSN    string
	}

	Mail struct {
		Host          string
		Port          int
		SenderAddress string
		Password      string
		// Every registration approval request is sent here
		AdminAddress string
	}

	Verification struct {
		TokenTTL        time.Duration
		ResendCooldown  time.Duration
		CleanupSchedule string
	}

	Storage struct {
		Type      string
		LocalPath string
		PublicURL string
	}

	Upload struct {
		MaxSize      int64
		AllowedTypes []string
	}

	S3 struct {
		Endpoint        string
		Region          string
		Bucket          string
		AccessKeyID     string
		SecretAccessKey string
	}

	Firebase struct {
		ProjectID       string
		CredentialsFile string
	}

	JWT struct {
		Secret string
		TTL    time.Duration
	}

	Security struct {
		RateLimit int
	}

	Sentry struct {
		DSN string
	}

	Catalog struct {
		DefaultCategory string
	}

	HTTP struct {
		CacheSeconds int
	}
}

// Production reports whether the app runs with production settings
func (c *Config) Production() bool {
	return c.App.Env == "production"
}

// BaseURL returns the externally reachable address of the API, used
// to build links inside emails
func (c *Config) BaseURL() string {
	scheme := "http"
	if c.Host.SSLEnabled {
		scheme = "https"
	}

	if c.Host.Domain == "localhost" {
		return fmt.Sprintf("%s://localhost:%d", scheme, c.Host.Port)
	}

	return scheme + "://" + c.Host.Domain
}

// Load reads the config file found at path (if any), the environment and
// a .env file and returns a validated config. Function will return an
// error if something is critically wrong and the application can't run
// because of that.
func Load(path string) (*Config, error) {
	// A missing .env is fine, real deployments use the environment
	_ = godotenv.Load()

	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.env", "development")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.ssl.enabled", false)
	v.SetDefault("host.cors", []string{"*"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "database.db")

	v.SetDefault("mail.port", 587)

	v.SetDefault("verification.token_ttl", "24h")
	v.SetDefault("verification.resend_cooldown", "5m")
	v.SetDefault("verification.cleanup_schedule", "@daily")

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "uploads")

	// Containers keep state on the mounted volume
	if util.InContainer() {
		v.SetDefault("database.dsn", "/data/medflow.db")
		v.SetDefault("storage.local_path", "/data/uploads")
	}

	v.SetDefault("upload.max_size", 10)
	v.SetDefault("upload.allowed_types", []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp", "image/tiff", "image/svg+xml"})

	v.SetDefault("s3.region", "auto")

	v.SetDefault("jwt.ttl", "720h")

	v.SetDefault("security.rate_limit", 20)

	v.SetDefault("catalog.default_category", "General")

	// List GETs are cached per URI and writes don't invalidate them, so a
	// non zero value lets clients read lists up to that many seconds old
	v.SetDefault("http.cache_seconds", 0)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file, %w", err)
		}
	}

	c := &Config{}

	c.App.LogLevel = v.GetString("app.log_level")
	c.App.Env = v.GetString("app.env")

	c.Host.Port = v.GetInt("host.port")
	c.Host.Domain = v.GetString("host.domain")
	c.Host.SSLEnabled = v.GetBool("host.ssl.enabled")
	c.Host.CORS = v.GetStringSlice("host.cors")

	c.Database.Driver = v.GetString("database.driver")
	c.Database.DSN = v.GetString("database.dsn")

	c.Mail.Host = v.GetString("mail.host")
	c.Mail.Port = v.GetInt("mail.port")
	c.Mail.SenderAddress = v.GetString("mail.sender_address")
	c.Mail.Password = v.GetString("mail.password")
	c.Mail.AdminAddress = v.GetString("mail.admin_address")

	c.Verification.TokenTTL = v.GetDuration("verification.token_ttl")
	c.Verification.ResendCooldown = v.GetDuration("verification.resend_cooldown")
	c.Verification.CleanupSchedule = v.GetString("verification.cleanup_schedule")

	c.Storage.Type = v.GetString("storage.type")
	c.Storage.LocalPath = v.GetString("storage.local_path")
	c.Storage.PublicURL = strings.TrimSuffix(v.GetString("storage.public_url"), "/")

	c.Upload.MaxSize = v.GetInt64("upload.max_size") << 20
	c.Upload.AllowedTypes = v.GetStringSlice("upload.allowed_types")

	c.S3.Endpoint = v.GetString("s3.endpoint")
	c.S3.Region = v.GetString("s3.region")
	c.S3.Bucket = v.GetString("s3.bucket")
	c.S3.AccessKeyID = v.GetString("s3.access_key_id")
	c.S3.SecretAccessKey = v.GetString("s3.secret_access_key")

	c.Firebase.ProjectID = v.GetString("firebase.project_id")
	c.Firebase.CredentialsFile = v.GetString("firebase.credentials_file")

	c.JWT.Secret = v.GetString("jwt.secret")
	c.JWT.TTL = v.GetDuration("jwt.ttl")

	c.Security.RateLimit = v.GetInt("security.rate_limit")

	c.Sentry.DSN = v.GetString("sentry.dsn")

	c.Catalog.DefaultCategory = v.GetString("catalog.default_category")

	c.HTTP.CacheSeconds = v.GetInt("http.cache_seconds")

	if c.Storage.PublicURL == "" && c.Storage.Type == "local" {
		c.Storage.PublicURL = c.BaseURL() + "/uploads"
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) validate() error {
	if !slices.Contains(validLogLevels, c.App.LogLevel) {
		return errors.New("invalid log level provided")
	}

	if !slices.Contains(validEnvs, c.App.Env) {
		return errors.New("app.env must be development or production")
	}

	if c.Host.Port <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, c.Database.Driver) {
		return errors.New("invalid database driver provided")
	}

	if c.Database.DSN == "" {
		return errors.New("database.dsn can't be empty")
	}

	if c.Mail.AdminAddress == "" {
		return errors.New("mail.admin_address can't be empty")
	}

	if c.Verification.TokenTTL <= 0 {
		return errors.New("verification.token_ttl must be bigger than 0")
	}

	if c.Verification.ResendCooldown < 0 {
		return errors.New("verification.resend_cooldown can't be negative")
	}

	if _, err := cron.ParseStandard(c.Verification.CleanupSchedule); err != nil {
		return fmt.Errorf("invalid verification.cleanup_schedule, %w", err)
	}

	if c.Upload.MaxSize <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	switch c.Storage.Type {
	case "s3":
		if c.S3.Bucket == "" {
			return errors.New("bucket can't be empty")
		}
		if c.S3.AccessKeyID == "" {
			return errors.New("access key id can't be empty")
		}
		if c.S3.SecretAccessKey == "" {
			return errors.New("secret access key can't be empty")
		}
		if c.Storage.PublicURL == "" {
			return errors.New("storage.public_url is required for s3 storage")
		}
	case "local":
		if c.Storage.LocalPath == "" {
			return errors.New("storage.local_path can't be empty")
		}
	}

	if !slices.Contains(validStorageTypes, c.Storage.Type) {
		return errors.New("invalid storage type provided")
	}

	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is missing, generate one with `openssl rand -hex 64`")
	}

	if c.JWT.TTL <= 0 {
		return errors.New("jwt.ttl must be bigger than 0")
	}

	if c.Security.RateLimit <= 0 {
		return errors.New("security.rate_limit must be bigger than 0")
	}

	if c.Catalog.DefaultCategory == "" {
		return errors.New("catalog.default_category can't be empty")
	}

	if c.HTTP.CacheSeconds < 0 {
		return errors.New("http.cache_seconds can't be negative")
	}

	return nil
}
