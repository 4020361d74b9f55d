package config

import (
	"time"

	"github.com/go-pg/pg/v10"
)

type Config struct {
	Database pg.Options
	App      struct {
		Host string
		Port int
	}
	Auth struct {
		Secret   string
		TokenTTL Duration
	}
	Images struct {
		Dir          string
		MaxSize      int64
		AllowedTypes []string
	}
	Cache struct {
		RedisURL string
		TTL      Duration
	}
	RateLimit struct {
		Rate  float64
		Burst int
	}
	Jobs struct {
		SweepInterval Duration
		SweepMinAge   Duration
	}
}

// Duration wraps time.Duration so TOML values can be written as "5m" or "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Defaults fills zero-valued sections with working values.
func (c *Config) Defaults() {
	if c.App.Port == 0 {
		c.App.Port = 3000
	}
	if c.Auth.TokenTTL.Duration == 0 {
		c.Auth.TokenTTL.Duration = 24 * time.Hour
	}
	if c.Images.Dir == "" {
		c.Images.Dir = "public/images"
	}
	if c.Images.MaxSize == 0 {
		c.Images.MaxSize = 5 << 20
	}
	if len(c.Images.AllowedTypes) == 0 {
		c.Images.AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = time.Minute
	}
	if c.RateLimit.Rate == 0 {
		c.RateLimit.Rate = 20
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 40
	}
	if c.Jobs.SweepInterval.Duration == 0 {
		c.Jobs.SweepInterval.Duration = time.Hour
	}
	if c.Jobs.SweepMinAge.Duration == 0 {
		c.Jobs.SweepMinAge.Duration = time.Hour
	}
}
