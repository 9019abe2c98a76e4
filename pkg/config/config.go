// Package config reads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/spencer-p/tidewidget/pkg/sunset"
)

type Config struct {
	Port   string `default:"8080"`
	Prefix string `default:"/"`

	// TidesURL takes the location ID and the yyyy-MM-dd date as %s verbs.
	TidesURL       string        `split_words:"true" required:"true"`
	LocationsURL   string        `split_words:"true" required:"true"`
	RequestTimeout time.Duration `split_words:"true" default:"5s"`
	Retries        int           `default:"1"`
	CacheTTL       time.Duration `split_words:"true" default:"15m"`

	// Zone is the observer's zone tide times are shown in.
	Zone      string  `default:"Europe/Berlin"`
	Latitude  float64 `default:"54.48"`
	Longitude float64 `default:"9.05"`

	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN    string `envconfig:"DB_DSN" default:"tidewidget.db"`

	SessionKey    string `split_words:"true" default:"deadbeef"`
	EncryptionKey string `split_words:"true" default:"deadbeef"`
	SecureCookies bool   `split_words:"true" default:"true"`
}

// Load reads a .env file if there is one, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if strings.Count(c.TidesURL, "%s") != 2 {
		return fmt.Errorf("TIDES_URL %q must contain two %%s verbs", c.TidesURL)
	}
	if c.Retries < 0 {
		return errors.New("RETRIES must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location loads the observer zone.
func (c Config) Location() (*time.Location, error) {
	if c.Zone == "" || c.Zone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Zone)
	if err != nil {
		return nil, fmt.Errorf("invalid ZONE: %w", err)
	}
	return loc, nil
}

// Place is the daylight reference point.
func (c Config) Place() (sunset.Place, error) {
	loc, err := c.Location()
	if err != nil {
		return sunset.Place{}, err
	}
	return sunset.Place{Lat: c.Latitude, Long: c.Longitude, Location: loc}, nil
}
