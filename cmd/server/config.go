package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type config struct {
	ListenAddr         string        `yaml:"listen_addr"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	Compression        bool          `yaml:"compression"`
	TrustXFF           bool          `yaml:"trust_xff"`

	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
	OtelExporter string `yaml:"otel_exporter"`

	HitsMirror hitsMirrorConfig `yaml:"hits_mirror"`
}

type hitsMirrorConfig struct {
	Enabled       bool          `yaml:"enabled"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	Prefix        string        `yaml:"prefix"`
	TTL           time.Duration `yaml:"ttl"`
	Bucket        string        `yaml:"bucket"`
	// LogEvery limita o log de falhas do espelho.
	LogEvery      time.Duration `yaml:"log_every"`
}

func defaultConfig() config {
	return config{
		ListenAddr:         "127.0.0.1:3000",
		RequestTimeout:     10 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		CORSAllowedOrigins: []string{"*"},
		Compression:        true,
		LogLevel:           "info",
		LogFormat:          "json",
		OtelExporter:       "none",
		HitsMirror: hitsMirrorConfig{
			Prefix:   "compute:hits",
			TTL:      24 * time.Hour,
			Bucket:   "minute",
			LogEvery: 30 * time.Second,
		},
	}
}

// readConfig aplica, nessa ordem: padrões, arquivo YAML (CONFIG_FILE) e variáveis de ambiente.
func readConfig() (config, error) {
	cfg := defaultConfig()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return config{}, fmt.Errorf("read CONFIG_FILE: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return config{}, fmt.Errorf("parse CONFIG_FILE %s: %w", path, err)
		}
	}

	cfg.ListenAddr = getenvDefault("LISTEN_ADDR", cfg.ListenAddr)
	cfg.RequestTimeout = getenvDurationDefault("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.ShutdownTimeout = getenvDurationDefault("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = splitList(v)
	}
	cfg.Compression = getenvBoolDefault("COMPRESSION_ENABLED", cfg.Compression)
	cfg.TrustXFF = getenvBoolDefault("TRUST_XFF", cfg.TrustXFF)

	cfg.LogLevel = getenvDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getenvDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.OtelExporter = getenvDefault("OTEL_EXPORTER", cfg.OtelExporter)

	m := &cfg.HitsMirror
	m.Enabled = getenvBoolDefault("HITS_MIRROR_ENABLED", m.Enabled)
	m.RedisAddr = getenvDefault("HITS_MIRROR_REDIS_ADDR", m.RedisAddr)
	m.RedisPassword = getenvDefault("HITS_MIRROR_REDIS_PASSWORD", m.RedisPassword)
	m.RedisDB = getenvIntDefault("HITS_MIRROR_REDIS_DB", m.RedisDB)
	m.Prefix = getenvDefault("HITS_MIRROR_PREFIX", m.Prefix)
	m.TTL = getenvDurationDefault("HITS_MIRROR_TTL", m.TTL)
	m.Bucket = getenvDefault("HITS_MIRROR_BUCKET", m.Bucket)
	m.LogEvery = getenvDurationDefault("HITS_MIRROR_LOG_EVERY", m.LogEvery)

	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return config{}, errors.New("LISTEN_ADDR is required")
	}
	if cfg.RequestTimeout < 0 {
		return config{}, errors.New("REQUEST_TIMEOUT must be >= 0")
	}
	if cfg.ShutdownTimeout <= 0 {
		return config{}, errors.New("SHUTDOWN_TIMEOUT must be > 0")
	}
	if m.Enabled && strings.TrimSpace(m.RedisAddr) == "" {
		return config{}, errors.New("HITS_MIRROR_REDIS_ADDR is required when HITS_MIRROR_ENABLED=true")
	}
	switch strings.ToLower(strings.TrimSpace(m.Bucket)) {
	case "minute", "none":
	default:
		return config{}, fmt.Errorf("HITS_MIRROR_BUCKET must be minute or none, got %q", m.Bucket)
	}
	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
