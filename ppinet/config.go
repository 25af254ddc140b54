package ppinet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "config.json"

// Environment variables consulted by ApplyEnv.
const (
	EnvBaseURL        = "PPINET_BASE_URL"
	EnvSpecies        = "PPINET_SPECIES"
	EnvCallerIdentity = "PPINET_CALLER_IDENTITY"
	EnvTimeoutSeconds = "PPINET_TIMEOUT_SECONDS"
)

var validate = validator.New()

// LoadConfig loads configuration from the given path or the default config.json.
// A missing default file yields the defaults; a missing explicit file is an error.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config: %w", err)
		}
	} else if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration to disk, replacing the file atomically.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// LoadEnvFile loads KEY=value pairs from the given dotenv files (default ".env") into
// the process environment. It reports whether a file was found.
func LoadEnvFile(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// ApplyEnv overrides fetch settings from PPINET_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := lookupEnv(EnvBaseURL); ok {
		c.Fetch.BaseURL = v
	}
	if v, ok := lookupEnv(EnvCallerIdentity); ok {
		c.Fetch.CallerIdentity = v
	}
	if v, ok := lookupEnv(EnvSpecies); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSpecies, err)
		}
		c.Fetch.Species = n
	}
	if v, ok := lookupEnv(EnvTimeoutSeconds); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeoutSeconds, err)
		}
		c.Fetch.TimeoutSeconds = n
	}
	return nil
}

// Validate checks the struct constraints of the configuration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
