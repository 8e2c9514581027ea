package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  port: 9090
  corsOrigins: ["https://scamshield.example"]
database:
  driver: Postgres
  host: db.internal
  port: 5432
  user: scam
  name: scamshield
auth:
  jwtSecret: from-file
  ttl: 2h
openai:
  timeout: 3s
scoring:
  highThreshold: 70
  floors: [40, 55, 75]
log:
  format: json
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://scamshield.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TTL)
	assert.Equal(t, 3*time.Second, cfg.OpenAI.Timeout)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "json", cfg.Log.Format)

	p, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, 70, p.HighThreshold)
	assert.Equal(t, [3]int{40, 55, 75}, p.Floors)
	assert.Equal(t, 45, p.MediumThreshold)
}

func TestLoad_MissingFileUsesDefaultsAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SCAMSHIELD_JWT_SECRET", "env-secret")
	t.Setenv("SCAMSHIELD_PORT", "7000")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SCAMSHIELD_JWT_SECRET=dotenv-secret\n"), 0o600))
	// godotenv never overrides variables that are already set
	os.Unsetenv("SCAMSHIELD_JWT_SECRET")
	t.Cleanup(func() { os.Unsetenv("SCAMSHIELD_JWT_SECRET") })

	cfg, err := Load(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "dotenv-secret", cfg.Auth.JWTSecret)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := Default()
		c.Auth.JWTSecret = "s"
		return c
	}
	require.NoError(t, base().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }},
		{"sql without host", func(c *Config) { c.Database.Driver = "mysql" }},
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"minio without endpoint", func(c *Config) { c.Minio.Enabled = true }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"floors length", func(c *Config) { c.Scoring.Floors = []int{1, 2} }},
		{"floors order", func(c *Config) { c.Scoring.Floors = []int{80, 60, 45} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestApplyEnv(t *testing.T) {
	c := Default()
	env := map[string]string{
		"SCAMSHIELD_DB_DRIVER":    "mysql",
		"SCAMSHIELD_DB_PORT":      "not-a-number",
		"SCAMSHIELD_CORS_ORIGINS": "https://a.example,https://b.example",
	}
	c.applyEnv(func(k string) (string, bool) { v, ok := env[k]; return v, ok })

	assert.Equal(t, "mysql", c.Database.Driver)
	assert.Zero(t, c.Database.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.Server.CORSOrigins)
}
