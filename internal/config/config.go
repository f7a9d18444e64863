package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
)

// Config holds the stranalyzer configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Profile  ProfileConfig  `yaml:"profile"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// Database drivers.
const (
	DriverBadger = "badger"
	DriverRedis  = "redis"
	DriverValkey = "valkey"
)

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string       `yaml:"driver"` // badger, redis, valkey (default: badger)
	Addrs            []string     `yaml:"addrs"`
	Password         string       `yaml:"password"`
	ReadinessTimeout int          `yaml:"readiness_timeout_sec"`
	Badger           BadgerConfig `yaml:"badger"`
}

// BadgerConfig holds embedded store settings.
type BadgerConfig struct {
	Path           string  `yaml:"path"`
	InMemory       bool    `yaml:"in_memory"`
	SyncWrites     bool    `yaml:"sync_writes"`
	GCIntervalSec  int     `yaml:"gc_interval_sec"`
	GCDiscardRatio float64 `yaml:"gc_discard_ratio"`
}

// Record compression modes.
const (
	CompressionNone = "none"
	CompressionZstd = "zstd"
)

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix   string `yaml:"key_prefix"`
	Compression string `yaml:"compression"` // none, zstd (default: none)
}

// AnalysisConfig holds string analysis limits.
type AnalysisConfig struct {
	MaxLength int `yaml:"max_length"` // code points (default: 500)
}

// Fact providers.
const (
	FactProviderCatFact = "catfact"
	FactProviderOpenAI  = "openai"
)

// ProfileConfig holds the /me payload and its fact provider.
type ProfileConfig struct {
	FullName        string       `yaml:"full_name"`
	Email           string       `yaml:"email"`
	Stack           string       `yaml:"stack"`
	FactProvider    string       `yaml:"fact_provider"` // catfact, openai (default: catfact)
	FactBaseURL     string       `yaml:"fact_base_url"`
	FactTimeoutSec  int          `yaml:"fact_timeout_sec"`
	FactCacheTTLSec int          `yaml:"fact_cache_ttl_sec"` // 0 = no cache
	OpenAI          OpenAIConfig `yaml:"openai"`
}

// OpenAIConfig holds chat provider settings for the openai fact provider.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit YAML file path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverBadger
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.Badger.GCIntervalSec <= 0 {
		c.Database.Badger.GCIntervalSec = 300
	}
	if c.Database.Badger.GCDiscardRatio <= 0 {
		c.Database.Badger.GCDiscardRatio = 0.5
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = domain.KeyPrefix
	}
	if c.Storage.Compression == "" {
		c.Storage.Compression = CompressionNone
	}
	if c.Analysis.MaxLength <= 0 {
		c.Analysis.MaxLength = analysis.DefaultMaxLength
	}
	if c.Profile.FactProvider == "" {
		c.Profile.FactProvider = FactProviderCatFact
	}
	if c.Profile.FactTimeoutSec <= 0 {
		c.Profile.FactTimeoutSec = 5
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverRedis, DriverValkey:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for driver %q", c.Database.Driver)
		}
	case DriverBadger:
		if !c.Database.Badger.InMemory && c.Database.Badger.Path == "" {
			return fmt.Errorf("database.badger.path is required unless in_memory is set")
		}
	default:
		return fmt.Errorf("database.driver must be \"badger\", \"redis\" or \"valkey\", got %q", c.Database.Driver)
	}
	switch c.Storage.Compression {
	case CompressionNone, CompressionZstd:
		// ok
	default:
		return fmt.Errorf("storage.compression must be \"none\" or \"zstd\", got %q", c.Storage.Compression)
	}
	switch c.Profile.FactProvider {
	case FactProviderCatFact:
		// ok
	case FactProviderOpenAI:
		if c.Profile.OpenAI.APIKey == "" {
			return fmt.Errorf("profile.openai.api_key is required for fact_provider %q", FactProviderOpenAI)
		}
	default:
		return fmt.Errorf(
			"profile.fact_provider must be \"catfact\" or \"openai\", got %q",
			c.Profile.FactProvider,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
