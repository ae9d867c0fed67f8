package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration. Defaults are overlaid by
// an optional YAML file, then by SCHED_* environment variables.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Parser   ParserConfig   `yaml:"parser" envconfig:"PARSER"`
	Schedule ScheduleConfig `yaml:"schedule" envconfig:"SCHEDULE"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ParserConfig controls the date grammar. ImplicitYear fills in date tokens
// written without a year ("10/14", "1107"); zero means the current year.
// CenturyBase resolves two-digit years ("10/14/25" -> CenturyBase+25).
type ParserConfig struct {
	ImplicitYear int `yaml:"implicit_year" envconfig:"IMPLICIT_YEAR"`
	CenturyBase  int `yaml:"century_base" envconfig:"CENTURY_BASE"`
}

// Year returns the implicit year, defaulting to the current year.
func (p ParserConfig) Year() int {
	if p.ImplicitYear > 0 {
		return p.ImplicitYear
	}
	return time.Now().Year()
}

// ScheduleConfig carries the fixed template text of the weekly schedule and
// the week-boundary convention.
type ScheduleConfig struct {
	Region     string `yaml:"region" envconfig:"REGION"`
	Company    string `yaml:"company" envconfig:"COMPANY"`
	Title      string `yaml:"title" envconfig:"TITLE"`
	ContractNo string `yaml:"contract_no" envconfig:"CONTRACT_NO"`
	WeekAnchor string `yaml:"week_anchor" envconfig:"WEEK_ANCHOR"`
}

// AnchorWeekday parses the configured week anchor into a time.Weekday.
func (s ScheduleConfig) AnchorWeekday() (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s.WeekAnchor) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid week anchor %q", s.WeekAnchor)
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
}

// SecurityConfig contains rate limiting configuration.
type SecurityConfig struct {
	RateLimitEnabled bool    `yaml:"rate_limit_enabled" envconfig:"RATE_LIMIT_ENABLED"`
	RateLimitRPS     float64 `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS"`
	RateLimitBurst   int     `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/bridgesched.log",
		},
		Parser: ParserConfig{
			ImplicitYear: 0,
			CenturyBase:  2000,
		},
		Schedule: ScheduleConfig{
			Region:     "8",
			Company:    "WSP USA, INC.",
			Title:      "NYSDOT 2025 Region 8 Bridge Inspection",
			ContractNo: "Contract No. D037877",
			WeekAnchor: "Sunday",
		},
		Paths: PathsConfig{
			OutputDir: "output",
		},
		Security: SecurityConfig{
			RateLimitEnabled: true,
			RateLimitRPS:     50,
			RateLimitBurst:   25,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// SCHED_CONFIG_FILE (falling back to config.yaml when present), then
// environment variables on top.
func Load() (*Config, error) {
	cfg := Default()

	configFile := os.Getenv("SCHED_CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process("SCHED", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Parser.CenturyBase%100 != 0 {
		return fmt.Errorf("century base must be a whole century, got %d", c.Parser.CenturyBase)
	}
	if _, err := c.Schedule.AnchorWeekday(); err != nil {
		return err
	}
	return nil
}
