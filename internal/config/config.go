package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration. Values are layered:
// built-in defaults, then the optional YAML file, then LAVA_* environment
// variables, later layers winning.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Parser  ParserConfig  `yaml:"parser" envconfig:"PARSER"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	// MaxUploadBytes caps the size of report uploads accepted by the
	// parse endpoint.
	MaxUploadBytes int64           `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"` // console, file, both
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ParserConfig contains the report parser's scan bounds. These are
// worst-case cost guards against pathological exports; they are
// configurable rather than hard-coded because nothing about their exact
// values is load-bearing.
type ParserConfig struct {
	DetectScanLimit   int `yaml:"detect_scan_limit" envconfig:"DETECT_SCAN_LIMIT"`
	UnitNameScanLimit int `yaml:"unit_name_scan_limit" envconfig:"UNIT_NAME_SCAN_LIMIT"`
	// Workers bounds concurrent file parses in the batch processor.
	Workers int `yaml:"workers" envconfig:"WORKERS"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxUploadBytes:  16 << 20,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/lavadash.log",
		},
		Paths: PathsConfig{
			BaseDir:    "data",
			UploadsDir: "uploads",
			ReportsDir: "reports",
			LogsDir:    "logs",
		},
		Parser: ParserConfig{
			DetectScanLimit:   5000,
			UnitNameScanLimit: 50,
			Workers:           4,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// configPath (ignored when absent) and LAVA_* environment variables.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := envconfig.Process("LAVA", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Parser.DetectScanLimit <= 0 {
		return fmt.Errorf("detect_scan_limit must be positive, got %d", c.Parser.DetectScanLimit)
	}
	if c.Parser.UnitNameScanLimit <= 0 {
		return fmt.Errorf("unit_name_scan_limit must be positive, got %d", c.Parser.UnitNameScanLimit)
	}
	if c.Parser.Workers <= 0 {
		return fmt.Errorf("parser workers must be positive, got %d", c.Parser.Workers)
	}
	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %q", c.Logging.Output)
	}
	return nil
}
