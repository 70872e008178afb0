package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port     string `yaml:"port"`
		ShareURL string `yaml:"shareUrl"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`
	Storage struct {
		// Backend is one of memory, file, redis, postgres, mongo.
		Backend  string `yaml:"backend"`
		Path     string `yaml:"path"`
		CacheTTL string `yaml:"cacheTtl"`
	} `yaml:"storage"`
	Game struct {
		Title        string `yaml:"title"`
		RoundSeconds int    `yaml:"roundSeconds"`
		TickInterval string `yaml:"tickInterval"`
		HardMode     bool   `yaml:"hardMode"`
		Multiplier   *bool  `yaml:"multiplier"`
		Reactions    *bool  `yaml:"reactions"`
		Admin        *bool  `yaml:"admin"`
		Flash        string `yaml:"flash"`
		Shake        string `yaml:"shake"`
	} `yaml:"game"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Storage.Backend = "file"
	cfg.Storage.Path = defaultBestPath()
	cfg.Mongo.Database = "pastfool"
	cfg.Game.RoundSeconds = 60
	cfg.Game.TickInterval = "1s"
	cfg.Game.Flash = "180ms"
	cfg.Game.Shake = "250ms"
	return cfg
}

// Load reads YAML config from path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields the defaults.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Duration parses a duration string or returns the fallback if empty.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// Enabled resolves an optional feature flag; features are on unless set false.
func Enabled(flag *bool) bool {
	return flag == nil || *flag
}

func defaultBestPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "pastfool-best.yaml"
	}
	return filepath.Join(dir, "pastfool", "best.yaml")
}
