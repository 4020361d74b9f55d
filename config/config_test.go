package config

import (
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Decode(t *testing.T) {
	raw := `
[Database]
Addr = "localhost:5432"
User = "news"
Database = "news"

[App]
Host = "127.0.0.1"
Port = 8080

[Auth]
Secret = "topsecret"
TokenTTL = "12h"

[Images]
Dir = "var/images"
MaxSize = 1048576

[Cache]
RedisURL = "redis://localhost:6379/0"
TTL = "30s"

[RateLimit]
Rate = 5.0
Burst = 10

[Jobs]
SweepInterval = "2h"
SweepMinAge = "45m"
`
	var cfg Config
	_, err := toml.Decode(raw, &cfg)
	require.NoError(t, err)

	assert.Equal(t, "localhost:5432", cfg.Database.Addr)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL.Duration)
	assert.Equal(t, int64(1<<20), cfg.Images.MaxSize)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL.Duration)
	assert.Equal(t, 5.0, cfg.RateLimit.Rate)
	assert.Equal(t, 2*time.Hour, cfg.Jobs.SweepInterval.Duration)
	assert.Equal(t, 45*time.Minute, cfg.Jobs.SweepMinAge.Duration)
}

func TestConfig_DecodeBadDuration(t *testing.T) {
	var cfg Config
	_, err := toml.Decode("[Auth]\nTokenTTL = \"soon\"\n", &cfg)
	assert.Error(t, err)
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	cfg.Defaults()

	assert.Equal(t, 3000, cfg.App.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL.Duration)
	assert.Equal(t, "public/images", cfg.Images.Dir)
	assert.Equal(t, int64(5<<20), cfg.Images.MaxSize)
	assert.Contains(t, cfg.Images.AllowedTypes, "image/png")
	assert.Equal(t, time.Minute, cfg.Cache.TTL.Duration)
	assert.Equal(t, 20.0, cfg.RateLimit.Rate)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.Equal(t, time.Hour, cfg.Jobs.SweepInterval.Duration)

	// explicit values survive
	cfg.App.Port = 9000
	cfg.Defaults()
	assert.Equal(t, 9000, cfg.App.Port)
}
