// Package config loads simulator settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"rapid-response-sim/internal/domain"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type PresenterKind string

const (
	PresenterText PresenterKind = "text"
	PresenterJSON PresenterKind = "json"
)

type Config struct {
	Fallback domain.Coordinate
	// Fixed device position. Nil means the device has no location support.
	Location        *domain.Coordinate
	LocationTimeout time.Duration

	AmbulanceDelay time.Duration
	HospitalDelay  time.Duration
	TypingDelay    time.Duration

	// Zero seeds from the clock.
	RandomSeed uint64
	Presenter  PresenterKind
}

func Default() Config {
	return Config{
		Fallback:        domain.Coordinate{Lat: 28.6139, Lon: 77.2090},
		LocationTimeout: 8 * time.Second,
		AmbulanceDelay:  900 * time.Millisecond,
		HospitalDelay:   1500 * time.Millisecond,
		TypingDelay:     650 * time.Millisecond,
		Presenter:       PresenterText,
	}
}

// Load reads the given .env files (".env" when none are given) and then the
// process environment. A missing .env file is not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function. Unset or empty keys keep
// their defaults.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	p := parser{getenv: getenv}

	cfg.Fallback.Lat = p.float("FALLBACK_LAT", cfg.Fallback.Lat)
	cfg.Fallback.Lon = p.float("FALLBACK_LON", cfg.Fallback.Lon)

	lat, lon := strings.TrimSpace(getenv("LOCATION_LAT")), strings.TrimSpace(getenv("LOCATION_LON"))
	switch {
	case lat != "" && lon != "":
		c := domain.Coordinate{Lat: p.float("LOCATION_LAT", 0), Lon: p.float("LOCATION_LON", 0)}
		cfg.Location = &c
	case lat != "" || lon != "":
		p.fail(errors.New("LOCATION_LAT and LOCATION_LON must be set together"))
	}

	cfg.LocationTimeout = p.duration("LOCATION_TIMEOUT", cfg.LocationTimeout)
	cfg.AmbulanceDelay = p.duration("AMBULANCE_CONFIRM_DELAY", cfg.AmbulanceDelay)
	cfg.HospitalDelay = p.duration("HOSPITAL_CONFIRM_DELAY", cfg.HospitalDelay)
	cfg.TypingDelay = p.duration("TYPING_DELAY", cfg.TypingDelay)
	cfg.RandomSeed = p.uint("RANDOM_SEED", cfg.RandomSeed)

	if v := strings.TrimSpace(getenv("PRESENTER")); v != "" {
		cfg.Presenter = PresenterKind(strings.ToLower(v))
	}

	if p.err != nil {
		return Config{}, fmt.Errorf("load config: %w", p.err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Fallback.Validate(); err != nil {
		return fmt.Errorf("fallback: %w", err)
	}
	if c.Location != nil {
		if err := c.Location.Validate(); err != nil {
			return fmt.Errorf("location: %w", err)
		}
	}
	if c.LocationTimeout < 0 || c.AmbulanceDelay < 0 || c.TypingDelay < 0 {
		return errors.New("delays and timeouts must not be negative")
	}
	if c.HospitalDelay < c.AmbulanceDelay {
		return fmt.Errorf("hospital delay %s is shorter than ambulance delay %s", c.HospitalDelay, c.AmbulanceDelay)
	}
	switch c.Presenter {
	case PresenterText, PresenterJSON:
	default:
		return fmt.Errorf("unknown presenter %q", c.Presenter)
	}
	return nil
}

// parser keeps the first error so FromEnv reads straight through.
type parser struct {
	getenv func(string) string
	err    error
}

func (p *parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *parser) raw(key string) (string, bool) {
	v := strings.TrimSpace(p.getenv(key))
	return v, v != ""
}

func (p *parser) float(key string, fallback float64) float64 {
	v, ok := p.raw(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return f
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v, ok := p.raw(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

func (p *parser) uint(key string, fallback uint64) uint64 {
	v, ok := p.raw(key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		p.fail(fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}
