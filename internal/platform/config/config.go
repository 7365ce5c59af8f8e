package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	FileName  = "flipdeck.yaml"
	EnvPrefix = "FLIPDECK"
)

type Config struct {
	DataPath  string  `mapstructure:"-"`
	DBPath    string  `mapstructure:"db_path" validate:"required"`
	Store     string  `mapstructure:"store" validate:"required,oneof=sqlite file"`
	CellWidth float64 `mapstructure:"cell_width" validate:"gt=0"`
	LogLevel  string  `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string  `mapstructure:"log_format" validate:"required,oneof=text json"`
	LogFile   string  `mapstructure:"log_file"`
	// Strict turns state violations into panics.
	Strict bool `mapstructure:"strict"`
}

// New loads configuration for the data directory. Values come from defaults,
// then <dataPath>/flipdeck.yaml when present, then FLIPDECK_* variables.
func New(dataPath string) (Config, error) {
	if dataPath == "" {
		return Config{}, fmt.Errorf("data path is required")
	}

	v := viper.New()
	v.SetDefault("db_path", filepath.Join(".flipdeck", "flipdeck.db"))
	v.SetDefault("store", "sqlite")
	v.SetDefault("cell_width", 8.0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_file", "")
	v.SetDefault("strict", false)

	path := filepath.Join(dataPath, FileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	cfg.DataPath = dataPath
	cfg.DBPath = resolve(dataPath, cfg.DBPath)
	if cfg.LogFile != "" {
		cfg.LogFile = resolve(dataPath, cfg.LogFile)
	}
	return cfg, nil
}

// BlobDir is where the file store keeps one JSON file per key.
func (c Config) BlobDir() string {
	return filepath.Join(c.DataPath, ".flipdeck", "blobs")
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
