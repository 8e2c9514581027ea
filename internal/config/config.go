package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/bryanwahyu/scamshield/internal/domain/scans"
)

type Config struct {
	Server struct {
		Port        int      `yaml:"port"`
		CORSOrigins []string `yaml:"corsOrigins"`
		RateLimit   struct {
			Capacity   int `yaml:"capacity"`
			RefillRate int `yaml:"refillRate"`
		} `yaml:"rateLimit"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`

	Minio struct {
		Enabled    bool          `yaml:"enabled"`
		Endpoint   string        `yaml:"endpoint"`
		AccessKey  string        `yaml:"accessKey"`
		SecretKey  string        `yaml:"secretKey"`
		BucketName string        `yaml:"bucketName"`
		Region     string        `yaml:"region"`
		UseSSL     bool          `yaml:"useSSL"`
		PresignTTL time.Duration `yaml:"presignTTL"`
	} `yaml:"minio"`

	OpenAI struct {
		APIKey  string        `yaml:"apiKey"`
		BaseURL string        `yaml:"baseURL"`
		Model   string        `yaml:"model"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"openai"`

	Auth struct {
		JWTSecret string        `yaml:"jwtSecret"`
		Issuer    string        `yaml:"issuer"`
		TTL       time.Duration `yaml:"ttl"`
	} `yaml:"auth"`

	Scoring Scoring `yaml:"scoring"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Scoring overrides the heuristic constants. Zero values keep the defaults.
type Scoring struct {
	MinScore        int                    `yaml:"minScore"`
	MaxScore        int                    `yaml:"maxScore"`
	CharsPerPoint   int                    `yaml:"charsPerPoint"`
	Floors          []int                  `yaml:"floors"`
	MediumThreshold int                    `yaml:"mediumThreshold"`
	HighThreshold   int                    `yaml:"highThreshold"`
	Groups          []scans.IndicatorGroup `yaml:"groups"`
}

var drivers = map[string]bool{"mysql": true, "postgres": true, "memory": true}

// Load baca .env lalu file config.yaml; file yang tidak ada dianggap kosong
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	var c Config
	c.Server.Port = 8080
	c.Server.RateLimit.Capacity = 30
	c.Server.RateLimit.RefillRate = 1
	c.Database.Driver = "memory"
	c.Database.SSLMode = "disable"
	c.Minio.Region = "us-east-1"
	c.Minio.BucketName = "scamshield-evidence"
	c.OpenAI.Model = "gpt-4o-mini"
	c.OpenAI.Timeout = 10 * time.Second
	c.Auth.Issuer = "scamshield"
	c.Auth.TTL = 24 * time.Hour
	c.Log.Level = "info"
	c.Log.Format = "text"
	return &c
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	num("SCAMSHIELD_PORT", &c.Server.Port)
	str("SCAMSHIELD_DB_DRIVER", &c.Database.Driver)
	str("SCAMSHIELD_DB_HOST", &c.Database.Host)
	num("SCAMSHIELD_DB_PORT", &c.Database.Port)
	str("SCAMSHIELD_DB_USER", &c.Database.User)
	str("SCAMSHIELD_DB_PASSWORD", &c.Database.Password)
	str("SCAMSHIELD_DB_NAME", &c.Database.Name)
	str("SCAMSHIELD_MINIO_ACCESS_KEY", &c.Minio.AccessKey)
	str("SCAMSHIELD_MINIO_SECRET_KEY", &c.Minio.SecretKey)
	str("SCAMSHIELD_JWT_SECRET", &c.Auth.JWTSecret)
	str("SCAMSHIELD_OPENAI_API_KEY", &c.OpenAI.APIKey)
	str("SCAMSHIELD_LOG_LEVEL", &c.Log.Level)
	str("SCAMSHIELD_LOG_FORMAT", &c.Log.Format)

	if v, ok := lookup("SCAMSHIELD_CORS_ORIGINS"); ok && v != "" {
		c.Server.CORSOrigins = strings.Split(v, ",")
	}
}

// Validate cek nilai config yang wajib
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if !drivers[c.Database.Driver] {
		return fmt.Errorf("database.driver %q is not one of mysql, postgres, memory", c.Database.Driver)
	}
	if c.Database.Driver != "memory" && c.Database.Host == "" {
		return fmt.Errorf("database.host is required for driver %s", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwtSecret is required (or set SCAMSHIELD_JWT_SECRET)")
	}
	if c.Minio.Enabled && c.Minio.Endpoint == "" {
		return errors.New("minio.endpoint is required when minio is enabled")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q is not one of text, json", c.Log.Format)
	}
	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	return nil
}

// Policy merges the scoring overrides into the default policy.
func (c *Config) Policy() (scans.Policy, error) {
	p := scans.DefaultPolicy()
	s := c.Scoring
	if s.MinScore > 0 {
		p.MinScore = s.MinScore
	}
	if s.MaxScore > 0 {
		p.MaxScore = s.MaxScore
	}
	if s.CharsPerPoint > 0 {
		p.CharsPerPoint = s.CharsPerPoint
	}
	if len(s.Floors) > 0 {
		if len(s.Floors) != 3 {
			return scans.Policy{}, fmt.Errorf("floors needs exactly 3 values, got %d", len(s.Floors))
		}
		copy(p.Floors[:], s.Floors)
	}
	if s.MediumThreshold > 0 {
		p.MediumThreshold = s.MediumThreshold
	}
	if s.HighThreshold > 0 {
		p.HighThreshold = s.HighThreshold
	}
	if len(s.Groups) > 0 {
		p.Groups = s.Groups
	}
	return p, p.Validate()
}
