// Package config loads runtime settings. Values are layered: built-in
// defaults, then an optional TOML file, then a .env file, then the process
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Duration is a time.Duration that decodes from strings such as "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

type Config struct {
	PokeAPI struct {
		BaseURL   string   `toml:"base_url"`
		Timeout   Duration `toml:"timeout"`
		UserAgent string   `toml:"user_agent"`
	} `toml:"pokeapi"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
	History struct {
		Driver string `toml:"driver"`
		DSN    string `toml:"dsn"`
	} `toml:"history"`
	HTTP struct {
		Addr string `toml:"addr"`
	} `toml:"http"`
	Suggest struct {
		Limit int `toml:"limit"`
	} `toml:"suggest"`
}

var LogLevels = []string{"debug", "info", "warn", "error"}

func Default() *Config {
	cfg := &Config{}
	cfg.PokeAPI.BaseURL = "https://pokeapi.co/api/v2"
	cfg.PokeAPI.Timeout = Duration{30 * time.Second}
	cfg.PokeAPI.UserAgent = "typechecker/1.0"
	cfg.Log.Level = "info"
	cfg.History.Driver = "postgres"
	cfg.HTTP.Addr = ":8080"
	cfg.Suggest.Limit = 3
	return cfg
}

// Load reads the optional TOML file at path (empty to skip), then .env from
// the working directory, then the environment.
func Load(path string) (*Config, error) {
	return load(path, ".env", os.LookupEnv)
}

func load(path, envFile string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if path != "" {
		meta, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("config: decode %q: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("config: unknown keys in %q: %v", path, undecoded)
		}
	}

	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read %q: %w", envFile, err)
	}
	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := applyEnv(cfg, get); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, get func(string) (string, bool)) error {
	if v, ok := get("POKEAPI_BASE_URL"); ok {
		cfg.PokeAPI.BaseURL = v
	}
	if v, ok := get("POKEAPI_TIMEOUT"); ok {
		if err := cfg.PokeAPI.Timeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("config: POKEAPI_TIMEOUT: %w", err)
		}
	}
	if v, ok := get("POKEAPI_USER_AGENT"); ok {
		cfg.PokeAPI.UserAgent = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := get("HISTORY_DRIVER"); ok {
		cfg.History.Driver = v
	}
	if v, ok := get("DB_URL"); ok {
		cfg.History.DSN = v
	}
	if v, ok := get("HTTP_ADDR"); ok {
		cfg.HTTP.Addr = v
	}
	if v, ok := get("SUGGEST_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: SUGGEST_LIMIT: %w", err)
		}
		cfg.Suggest.Limit = n
	}
	return nil
}

// Validate returns every problem found, joined.
func Validate(cfg *Config) error {
	var errs []error

	if u, err := url.Parse(cfg.PokeAPI.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("pokeapi.base_url %q must be an http(s) URL", cfg.PokeAPI.BaseURL))
	}
	if cfg.PokeAPI.Timeout.Duration <= 0 {
		errs = append(errs, fmt.Errorf("pokeapi.timeout %s must be positive", cfg.PokeAPI.Timeout.Duration))
	}
	if !slices.Contains(LogLevels, cfg.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q is invalid; valid values: debug, info, warn, error", cfg.Log.Level))
	}
	if cfg.History.DSN != "" && cfg.History.Driver == "" {
		errs = append(errs, errors.New("history.driver is required when history.dsn is set"))
	}
	if cfg.Suggest.Limit < 0 {
		errs = append(errs, fmt.Errorf("suggest.limit %d must not be negative", cfg.Suggest.Limit))
	}
	return errors.Join(errs...)
}
