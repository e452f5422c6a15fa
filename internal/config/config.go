package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/toyrobot/internal/logging"
	"github.com/aretw0/toyrobot/pkg/domain"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TOYROBOT_"

// Config is the application configuration, read from YAML or JSON and the environment.
type Config struct {
	Table  TableConfig  `yaml:"table" json:"table" mapstructure:"table"`
	Log    LogConfig    `yaml:"log" json:"log" mapstructure:"log"`
	Server ServerConfig `yaml:"server" json:"server" mapstructure:"server"`
	Input  InputConfig  `yaml:"input" json:"input" mapstructure:"input"`
}

// TableConfig describes the tabletop. A positive Size wins over the explicit bounds.
type TableConfig struct {
	Size int `yaml:"size" json:"size" mapstructure:"size"`
	MinX int `yaml:"min_x" json:"min_x" mapstructure:"min_x"`
	MaxX int `yaml:"max_x" json:"max_x" mapstructure:"max_x"`
	MinY int `yaml:"min_y" json:"min_y" mapstructure:"min_y"`
	MaxY int `yaml:"max_y" json:"max_y" mapstructure:"max_y"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level" mapstructure:"level"`
	Format string `yaml:"format" json:"format" mapstructure:"format"`
	File   string `yaml:"file" json:"file" mapstructure:"file"`
}

type ServerConfig struct {
	Host string `yaml:"host" json:"host" mapstructure:"host"`
	Port int    `yaml:"port" json:"port" mapstructure:"port"`
}

type InputConfig struct {
	MaxSize int `yaml:"max_size" json:"max_size" mapstructure:"max_size"`
}

// envBindings maps environment variables (without prefix) to config paths.
var envBindings = map[string][]string{
	"TABLE_SIZE":     {"table", "size"},
	"TABLE_MIN_X":    {"table", "min_x"},
	"TABLE_MAX_X":    {"table", "max_x"},
	"TABLE_MIN_Y":    {"table", "min_y"},
	"TABLE_MAX_Y":    {"table", "max_y"},
	"LOG_LEVEL":      {"log", "level"},
	"LOG_FORMAT":     {"log", "format"},
	"LOG_FILE":       {"log", "file"},
	"SERVER_HOST":    {"server", "host"},
	"SERVER_PORT":    {"server", "port"},
	"MAX_INPUT_SIZE": {"input", "max_size"},
}

// Default returns the built-in configuration: a 5x5 table, info logs, port 8080.
func Default() Config {
	t := domain.DefaultTable()
	return Config{
		Table:  TableConfig{MinX: t.MinX, MaxX: t.MaxX, MinY: t.MinY, MaxY: t.MaxY},
		Log:    LogConfig{Level: "info", Format: logging.FormatText},
		Server: ServerConfig{Host: "", Port: 8080},
		Input:  InputConfig{MaxSize: 4096},
	}
}

// Load reads path (YAML, or JSON for .json files) over the defaults, applies
// environment overrides and validates the result.
// An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := readFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return nil
	}
	// Default to YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays TOYROBOT_* variables found through lookup onto cfg.
// Values are weakly typed, so "10" decodes into an int field.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	overrides := map[string]any{}
	for name, path := range envBindings {
		val, ok := lookup(EnvPrefix + name)
		if !ok || val == "" {
			continue
		}
		section, _ := overrides[path[0]].(map[string]any)
		if section == nil {
			section = map[string]any{}
			overrides[path[0]] = section
		}
		section[path[1]] = val
	}
	if len(overrides) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           cfg,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(overrides); err != nil {
		return fmt.Errorf("invalid environment override: %w", err)
	}
	return nil
}

// LoadDotEnv loads environment variables from path. Missing files are ignored.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// TableBounds resolves the configured table.
func (c Config) TableBounds() domain.Table {
	if c.Table.Size > 0 {
		return domain.NewSquareTable(c.Table.Size)
	}
	return domain.Table{MinX: c.Table.MinX, MaxX: c.Table.MaxX, MinY: c.Table.MinY, MaxY: c.Table.MaxY}
}

// LogLevel returns the parsed log level. Validate guarantees it parses.
func (c Config) LogLevel() slog.Level {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks the configuration for values the program cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Table.Size < 0 {
		errs = append(errs, fmt.Errorf("table size must not be negative, got %d", c.Table.Size))
	} else if err := c.TableBounds().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port must be within 1..65535, got %d", c.Server.Port))
	}
	if c.Input.MaxSize <= 0 {
		errs = append(errs, fmt.Errorf("input max_size must be positive, got %d", c.Input.MaxSize))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
