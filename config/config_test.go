package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("CORS_ORIGINS", "https://titans.example.com,https://admin.titans.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, []string{"https://titans.example.com", "https://admin.titans.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, "disk", cfg.Storage.Driver)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  port: "7000"
  time_zone: UTC
auth:
  jwt_secret: from-file
  access_token_ttl: 5m
contact:
  form_url: https://formspree.io/f/abc
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, "https://formspree.io/f/abc", cfg.Contact.FormURL)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[auth]
jwt_secret = "toml-secret"

[storage]
driver = "s3"
s3_endpoint = "minio:9000"
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "toml-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, "minio:9000", cfg.Storage.S3Endpoint)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	assert.ErrorContains(t, err, "JWT_SECRET")

	cfg.Auth.JWTSecret = "x"
	cfg.Storage.Driver = "ftp"
	cfg.Server.TimeZone = "Mars/Olympus"
	err = cfg.Validate()
	assert.ErrorContains(t, err, "unknown storage driver")
	assert.ErrorContains(t, err, "invalid time zone")
}

func TestDSN(t *testing.T) {
	d := Default().Database
	assert.Contains(t, d.DSN(), "host=localhost")
	assert.Contains(t, d.DSN(), "dbname=titans")

	d.URL = "postgres://u:p@db/titans"
	assert.Equal(t, "postgres://u:p@db/titans", d.DSN())
}
