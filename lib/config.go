package lib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log     LogConfig     `toml:"log" yaml:"log"`
	History HistoryConfig `toml:"history" yaml:"history"`
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// HistoryConfig selects where check results are recorded. Driver is one of
// "sqlite3" or "postgres"; DSN is passed to sql.Open unchanged.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Driver  string `toml:"driver" yaml:"driver"`
	DSN     string `toml:"dsn" yaml:"dsn"`
}

func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		History: HistoryConfig{
			Enabled: false,
			Driver:  DriverSQLite,
			DSN:     "krkp-history.db",
		},
	}
}

// LoadConfig reads a TOML file, or YAML when the extension is .yaml/.yml,
// over the defaults. An empty path yields the defaults.
func LoadConfig(filePath string) (Config, error) {
	cfg := DefaultConfig()
	if filePath == "" {
		return cfg, nil
	}

	bytes, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &cfg)
	default:
		_, err = toml.Decode(string(bytes), &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", filePath, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("Invalid log format '%s'", c.Log.Format)
	}
	switch c.History.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("Invalid history driver '%s'", c.History.Driver)
	}
	if c.History.Enabled && c.History.DSN == "" {
		return fmt.Errorf("History is enabled but no DSN is set")
	}
	return nil
}
