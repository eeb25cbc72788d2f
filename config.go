package polyglot

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// Config is the on-disk configuration of the delivery service.
type Config struct {
	Port            int            `json:"port"`
	TranslationsDir string         `json:"translations_dir"`
	RoutesFile      string         `json:"routes_file"`
	DefaultLanguage string         `json:"default_language"`
	OTLPEndpoint    string         `json:"otlp_endpoint"`
	Dev             bool           `json:"dev"`
	Database        DatabaseConfig `json:"database"`
}

// DatabaseConfig configures the preference store database.
type DatabaseConfig struct {
	Path string `json:"path"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Port:            8080,
		TranslationsDir: "translations",
		DefaultLanguage: string(DefaultLanguage),
		OTLPEndpoint:    "localhost:4317",
		Database:        DatabaseConfig{Path: "data/polyglot.sqlite"},
	}
}

// LoadConfig reads a JSON config file. A missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return config, err
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(&config)
	return config, err
}
