package config

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TIDES_URL", "https://tides.example/widget/%s/%s")
	t.Setenv("LOCATIONS_URL", "https://tides.example/locations")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 1, cfg.Retries)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.True(t, cfg.SecureCookies)

	place, err := cfg.Place()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", place.Location.String())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TIDES_URL", "https://tides.example/widget/%s/%s")
	t.Setenv("LOCATIONS_URL", "https://tides.example/locations")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	t.Setenv("CACHE_TTL", "0")
	t.Setenv("DB_DRIVER", "postgres")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Zero(t, cfg.CacheTTL)
	assert.Equal(t, "postgres", cfg.DBDriver)
}

func TestValidate(t *testing.T) {
	good := Config{TidesURL: "x/%s/%s", Zone: "UTC"}
	assert.NoError(t, good.Validate())

	table := []struct {
		name string
		cfg  Config
	}{
		{"one verb", Config{TidesURL: "x/%s", Zone: "UTC"}},
		{"negative retries", Config{TidesURL: "x/%s/%s", Retries: -1, Zone: "UTC"}},
		{"bad zone", Config{TidesURL: "x/%s/%s", Zone: "Mars/Olympus"}},
	}
	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.cfg.Validate())
		})
	}
}

func TestLoadRequiresURLs(t *testing.T) {
	t.Setenv("TIDES_URL", "")
	t.Setenv("LOCATIONS_URL", "")
	_, err := Load()
	assert.Error(t, err)
}
