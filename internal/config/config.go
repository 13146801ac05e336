// Package config provides application configuration management with support for
// command-line flags, environment variables, an optional YAML file, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Server    ServerConfig
	TMDB      TMDBConfig
	Discovery DiscoveryConfig
	Cache     CacheConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 9494)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 30s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
	CORSOrigins  []string      // Allowed CORS origins (default: *)
	// Inbound rate limit per client IP.
	RateLimitRPS   float64
	RateLimitBurst int
}

// TMDBConfig holds catalog API configuration.
type TMDBConfig struct {
	// APIKey is the v3 api_key. Either this or ReadAccessToken is required.
	APIKey string
	// ReadAccessToken is the v4 bearer token.
	ReadAccessToken string
	BaseURL         string
	Language        string
	Timeout         time.Duration
}

// DiscoveryConfig holds settings for the discovery feed.
type DiscoveryConfig struct {
	Region string
	// IncludedLanguages is a comma separated list of original languages, e.g. "en, fi".
	IncludedLanguages string
	// WarmInterval is how often the discovery sections are preloaded. Zero disables it.
	WarmInterval time.Duration
}

// CacheConfig holds TTLs for the record cache and the normalized view cache.
type CacheConfig struct {
	RecordTTL time.Duration
	ViewTTL   time.Duration
}

// fileConfig mirrors Config for the optional YAML file. Durations are strings.
type fileConfig struct {
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
	Server   struct {
		Port           string `yaml:"port"`
		ReadTimeout    string `yaml:"read_timeout"`
		WriteTimeout   string `yaml:"write_timeout"`
		IdleTimeout    string `yaml:"idle_timeout"`
		CORSOrigins    string `yaml:"cors_origins"`
		RateLimitRPS   string `yaml:"rate_limit_rps"`
		RateLimitBurst string `yaml:"rate_limit_burst"`
	} `yaml:"server"`
	TMDB struct {
		APIKey          string `yaml:"api_key"`
		ReadAccessToken string `yaml:"read_access_token"`
		BaseURL         string `yaml:"base_url"`
		Language        string `yaml:"language"`
		Timeout         string `yaml:"timeout"`
	} `yaml:"tmdb"`
	Discovery struct {
		Region            string `yaml:"region"`
		IncludedLanguages string `yaml:"included_languages"`
		WarmInterval      string `yaml:"warm_interval"`
	} `yaml:"discovery"`
	Cache struct {
		RecordTTL string `yaml:"record_ttl"`
		ViewTTL   string `yaml:"view_ttl"`
	} `yaml:"cache"`
}

// values flattens the file into the env keys it overrides.
func (f *fileConfig) values() map[string]string {
	return map[string]string{
		"ENV":                          f.Env,
		"LOG_LEVEL":                    f.LogLevel,
		"SERVER_PORT":                  f.Server.Port,
		"SERVER_READ_TIMEOUT":          f.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":         f.Server.WriteTimeout,
		"SERVER_IDLE_TIMEOUT":          f.Server.IdleTimeout,
		"SERVER_CORS_ORIGINS":          f.Server.CORSOrigins,
		"SERVER_RATE_LIMIT_RPS":        f.Server.RateLimitRPS,
		"SERVER_RATE_LIMIT_BURST":      f.Server.RateLimitBurst,
		"TMDB_API_KEY":                 f.TMDB.APIKey,
		"TMDB_READ_ACCESS_TOKEN":       f.TMDB.ReadAccessToken,
		"TMDB_BASE_URL":                f.TMDB.BaseURL,
		"TMDB_LANGUAGE":                f.TMDB.Language,
		"TMDB_TIMEOUT":                 f.TMDB.Timeout,
		"DISCOVERY_REGION":             f.Discovery.Region,
		"DISCOVERY_INCLUDED_LANGUAGES": f.Discovery.IncludedLanguages,
		"DISCOVERY_WARM_INTERVAL":      f.Discovery.WarmInterval,
		"CACHE_RECORD_TTL":             f.Cache.RecordTTL,
		"CACHE_VIEW_TTL":               f.Cache.ViewTTL,
	}
}

// source resolves a key through flag > env > YAML file > default.
// The .env file is applied to the environment before resolution and never
// overrides variables that are already set.
type source struct {
	file map[string]string
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. YAML config file (-config).
// 4. .env file.
// 5. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	configFile := flag.String("config", "", "Path to YAML config file")
	envFile := flag.String("env-file", ".env", "Path to .env file")

	serverPort := flag.String("port", "", "Server port (default: 9494)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 30s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	tmdbKey := flag.String("tmdb-api-key", "", "TMDB v3 API key")
	tmdbLanguage := flag.String("tmdb-language", "", "Catalog language tag (default: en-US)")

	flag.Parse()

	_ = loadEnvFile(*envFile)

	src := source{}
	if *configFile != "" {
		fc, err := loadYAMLFile(*configFile)
		if err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
		src.file = fc.values()
	}

	return src.build(flagValues{
		env:          *env,
		logLevel:     *logLevel,
		port:         *serverPort,
		readTimeout:  *readTimeout,
		writeTimeout: *writeTimeout,
		idleTimeout:  *idleTimeout,
		tmdbKey:      *tmdbKey,
		tmdbLanguage: *tmdbLanguage,
	})
}

type flagValues struct {
	env          string
	logLevel     string
	port         string
	readTimeout  string
	writeTimeout string
	idleTimeout  string
	tmdbKey      string
	tmdbLanguage string
}

func (s source) build(f flagValues) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Environment: s.value(f.env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: s.value(f.logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port:           s.value(f.port, "SERVER_PORT", "9494"),
			CORSOrigins:    splitList(s.value("", "SERVER_CORS_ORIGINS", "*")),
			RateLimitRPS:   s.floatValue("SERVER_RATE_LIMIT_RPS", 20),
			RateLimitBurst: s.intValue("SERVER_RATE_LIMIT_BURST", 40),
		},
		TMDB: TMDBConfig{
			APIKey:          s.value(f.tmdbKey, "TMDB_API_KEY", ""),
			ReadAccessToken: s.value("", "TMDB_READ_ACCESS_TOKEN", ""),
			BaseURL:         strings.TrimRight(s.value("", "TMDB_BASE_URL", "https://api.themoviedb.org"), "/"),
			Language:        s.value(f.tmdbLanguage, "TMDB_LANGUAGE", "en-US"),
		},
		Discovery: DiscoveryConfig{
			Region:            s.value("", "DISCOVERY_REGION", "US"),
			IncludedLanguages: s.value("", "DISCOVERY_INCLUDED_LANGUAGES", "en"),
		},
	}

	durations := []struct {
		flag, key, def string
		dst            *time.Duration
	}{
		{f.readTimeout, "SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{f.writeTimeout, "SERVER_WRITE_TIMEOUT", "30s", &cfg.Server.WriteTimeout},
		{f.idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
		{"", "TMDB_TIMEOUT", "10s", &cfg.TMDB.Timeout},
		{"", "CACHE_RECORD_TTL", "6h", &cfg.Cache.RecordTTL},
		{"", "CACHE_VIEW_TTL", "10m", &cfg.Cache.ViewTTL},
		{"", "DISCOVERY_WARM_INTERVAL", "30m", &cfg.Discovery.WarmInterval},
	}
	for _, d := range durations {
		raw := s.value(d.flag, d.key, d.def)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", strings.ToLower(d.key), raw, err)
		}
		*d.dst = parsed
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.TMDB.APIKey == "" && c.TMDB.ReadAccessToken == "" {
		return errors.New("TMDB_API_KEY or TMDB_READ_ACCESS_TOKEN is required")
	}

	if _, err := language.Parse(c.TMDB.Language); err != nil {
		return fmt.Errorf("invalid catalog language %q: %w", c.TMDB.Language, err)
	}

	if c.Server.RateLimitRPS <= 0 || c.Server.RateLimitBurst <= 0 {
		return errors.New("server rate limit must be positive")
	}

	return nil
}

// value returns the first non-empty value from flag, env var, YAML file, or default.
func (s source) value(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	if fileValue := s.file[envKey]; fileValue != "" {
		return fileValue
	}
	return defaultValue
}

func (s source) intValue(envKey string, defaultValue int) int {
	raw := s.value("", envKey, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

func (s source) floatValue(envKey string, defaultValue float64) float64 {
	raw := s.value("", envKey, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func loadYAMLFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- config path comes from the operator
	if err != nil {
		return nil, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &fc, nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Env vars already set take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
