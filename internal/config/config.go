package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "ontax.yaml"

// Config represents the top-level ontax.yaml configuration.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Output   OutputConfig   `yaml:"output"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DataConfig locates the reference tables. When SQLite is set, the tables
// are read from that database instead of the CSV files.
type DataConfig struct {
	Assessments string `yaml:"assessments"`
	Rates       string `yaml:"rates"`
	SQLite      string `yaml:"sqlite,omitempty"`
}

// DefaultsConfig holds default estimate options.
type DefaultsConfig struct {
	TaxYear          int  `yaml:"tax_year"`
	IncludeEducation bool `yaml:"include_education"`
}

// OutputConfig controls report export.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // text, csv or xlsx
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// Load reads an ontax.yaml file from disk. Fields missing from the file keep
// their Default values. Relative data and output paths are resolved against
// the directory containing the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Assessments: filepath.Join("data", "assessments.csv"),
			Rates:       filepath.Join("data", "rates.csv"),
		},
		Defaults: DefaultsConfig{
			TaxYear:          2024,
			IncludeEducation: true,
		},
		Output: OutputConfig{
			Dir:    "outputs",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) resolve(base string) {
	for _, p := range []*string{&c.Data.Assessments, &c.Data.Rates, &c.Data.SQLite, &c.Output.Dir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}
