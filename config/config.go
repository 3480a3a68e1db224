package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Database DatabaseConfig `yaml:"database" toml:"database" envPrefix:"DB_"`
	Auth     AuthConfig     `yaml:"auth" toml:"auth"`
	Storage  StorageConfig  `yaml:"storage" toml:"storage" envPrefix:"STORAGE_"`
	Contact  ContactConfig  `yaml:"contact" toml:"contact" envPrefix:"CONTACT_"`
	Log      LogConfig      `yaml:"log" toml:"log" envPrefix:"LOG_"`
}

type ServerConfig struct {
	Port        string   `yaml:"port" toml:"port" env:"PORT"`
	Mode        string   `yaml:"mode" toml:"mode" env:"GIN_MODE"`
	CORSOrigins []string `yaml:"cors_origins" toml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
	// StaticDir holds the built public site; empty disables static serving.
	StaticDir string `yaml:"static_dir" toml:"static_dir" env:"STATIC_DIR"`
	// TimeZone decides which calendar day is "today" for the schedule.
	TimeZone string `yaml:"time_zone" toml:"time_zone" env:"CLUB_TIME_ZONE"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url" toml:"url" env:"URL"`
	Host     string `yaml:"host" toml:"host" env:"HOST"`
	Port     string `yaml:"port" toml:"port" env:"PORT"`
	User     string `yaml:"user" toml:"user" env:"USER"`
	Password string `yaml:"password" toml:"password" env:"PASSWORD"`
	Name     string `yaml:"name" toml:"name" env:"NAME"`
	SSLMode  string `yaml:"sslmode" toml:"sslmode" env:"SSLMODE"`
	TimeZone string `yaml:"time_zone" toml:"time_zone" env:"TIMEZONE"`
}

type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret" toml:"jwt_secret" env:"JWT_SECRET"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" toml:"access_token_ttl" env:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" toml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL"`
	CookieSecure    bool          `yaml:"cookie_secure" toml:"cookie_secure" env:"COOKIE_SECURE"`
}

type StorageConfig struct {
	Driver    string `yaml:"driver" toml:"driver" env:"DRIVER"` // disk or s3
	Dir       string `yaml:"dir" toml:"dir" env:"DIR"`
	PublicURL string `yaml:"public_url" toml:"public_url" env:"PUBLIC_URL"`

	S3Endpoint  string `yaml:"s3_endpoint" toml:"s3_endpoint" env:"S3_ENDPOINT"`
	S3AccessKey string `yaml:"s3_access_key" toml:"s3_access_key" env:"S3_ACCESS_KEY"`
	S3SecretKey string `yaml:"s3_secret_key" toml:"s3_secret_key" env:"S3_SECRET_KEY"`
	S3Region    string `yaml:"s3_region" toml:"s3_region" env:"S3_REGION"`
	S3UseSSL    bool   `yaml:"s3_use_ssl" toml:"s3_use_ssl" env:"S3_USE_SSL"`
}

type ContactConfig struct {
	FormURL  string        `yaml:"form_url" toml:"form_url" env:"FORM_URL"`
	MailDSN  string        `yaml:"mail_dsn" toml:"mail_dsn" env:"MAIL_DSN"`
	MailFrom string        `yaml:"mail_from" toml:"mail_from" env:"MAIL_FROM"`
	MailTo   string        `yaml:"mail_to" toml:"mail_to" env:"MAIL_TO"`
	Timeout  time.Duration `yaml:"timeout" toml:"timeout" env:"TIMEOUT"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level" env:"LEVEL"`
	Format string `yaml:"format" toml:"format" env:"FORMAT"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:        "8080",
			Mode:        "debug",
			CORSOrigins: []string{"http://localhost:5173"},
			TimeZone:    "America/New_York",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Name:     "titans",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Auth: AuthConfig{
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		Storage: StorageConfig{
			Driver:    "disk",
			Dir:       "uploads",
			PublicURL: "http://localhost:8080/storage",
		},
		Contact: ContactConfig{
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads .env, then the optional CONFIG_FILE, then environment
// variables, each layer overriding the previous one.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read YAML config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("failed to parse TOML config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file %s", path)
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("server port is required"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("invalid time zone %q: %w", c.Server.TimeZone, err))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		errs = append(errs, errors.New("token lifetimes must be positive"))
	}

	switch c.Storage.Driver {
	case "disk":
		if c.Storage.Dir == "" {
			errs = append(errs, errors.New("storage dir is required for the disk driver"))
		}
	case "s3":
		if c.Storage.S3Endpoint == "" {
			errs = append(errs, errors.New("STORAGE_S3_ENDPOINT is required for the s3 driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}

	return errors.Join(errs...)
}

func (c *Config) Location() (*time.Location, error) {
	if c.Server.TimeZone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Server.TimeZone)
}

// DSN returns the postgres connection string, preferring DB_URL.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode, d.TimeZone)
}
