package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 5*time.Minute, cfg.Notifier.PollInterval)
	assert.Equal(t, "lowstock_notified_ids", cfg.Notifier.StorageKey)
	assert.Equal(t, "memory", cfg.Notifier.Store)
	assert.Equal(t, 300*time.Millisecond, cfg.Session.LoadingBudget)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("NOTIFIER_STORE", "Redis")
	v.Set("NOTIFIER_POLL_INTERVAL_SECONDS", "30")
	v.Set("NOTIFIER_TIMEZONE", "America/Bogota")
	v.Set("UPSTREAM_PAGE_SIZE", "no-es-numero")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "redis", cfg.Notifier.Store)
	assert.Equal(t, 30*time.Second, cfg.Notifier.PollInterval)
	assert.Equal(t, 100, cfg.Upstream.PageSize)

	loc, err := cfg.Notifier.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Bogota", loc.String())
}

func TestFromViper_Invalido(t *testing.T) {
	v := viper.New()
	v.Set("NOTIFIER_STORE", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("NOTIFIER_POLL_INTERVAL_SECONDS", "0")
	_, err = fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("NOTIFIER_TIMEZONE", "Marte/Olympus")
	_, err = fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/d?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x/y"
	assert.Equal(t, "postgres://x/y", c.ConnectionString())
}
