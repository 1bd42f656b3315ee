package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort              = 16181
	DefaultTimezone          = "America/New_York"
	DefaultResponseCacheSize = 256
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration.
// An empty path searches config.yml in the working directory.
func LoadAppConfig(path string) error {
	paths := []string{"config.yml", "./config/config.yml"}
	if path != "" {
		paths = []string{path}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = *cfg
	return nil
}

// Parse decodes, validates and applies defaults to a YAML document
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return nil, err
	}
	if err := v.Struct(cfg.Traffic); err != nil {
		return nil, err
	}
	// datasets are optional; if present validate each, otherwise the top-level data
	if len(cfg.Datasets) == 0 {
		if err := v.Struct(cfg.Data); err != nil {
			return nil, err
		}
	}
	for _, d := range cfg.Datasets {
		if err := v.Struct(d); err != nil {
			return nil, err
		}
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Traffic.ResponseCacheSize == 0 {
		cfg.Traffic.ResponseCacheSize = DefaultResponseCacheSize
	}
	if cfg.Data.Timezone == "" {
		cfg.Data.Timezone = DefaultTimezone
	}
	for i := range cfg.Datasets {
		if cfg.Datasets[i].Data.Timezone == "" {
			cfg.Datasets[i].Data.Timezone = cfg.Data.Timezone
		}
	}
}

// SelectDataset chooses a dataset by name; fallback to first; if none, use top-level data.
// The returned name is empty for the top-level data.
func SelectDataset(name string) (string, DataConfig) {
	return Config.SelectDataset(name)
}

// SelectDataset is the method form of the package-level SelectDataset
func (c AppConfig) SelectDataset(name string) (string, DataConfig) {
	if name != "" {
		for _, d := range c.Datasets {
			if d.Name == name {
				return d.Name, d.Data
			}
		}
	}
	if len(c.Datasets) > 0 {
		return c.Datasets[0].Name, c.Datasets[0].Data
	}
	return "", c.Data
}
