package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"pet-adoption/internal/platform/logger"
)

// Config de los binarios (api y petctl).
// Orden de precedencia: defaults < archivo YAML (opcional) < env.
type Config struct {
	Port     string    `yaml:"port"`
	DataFile string    `yaml:"data_file"`
	DBDSN    string    `yaml:"db_dsn"` // si viene, la API usa Postgres en vez del archivo
	Log      LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

func Default() *Config {
	return &Config{
		Port:     "8080",
		DataFile: "pets.csv",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "pet-adoption",
		},
	}
}

// Load lee path (si no es vacío) y aplica overrides de env.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv es Load(CONFIG_FILE).
func FromEnv() (*Config, error) {
	return Load(os.Getenv("CONFIG_FILE"))
}

// applyEnvOverrides:
// - PORT, PETS_FILE, DB_DSN
// - LOG_LEVEL, LOG_FORMAT, APP_NAME
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("PETS_FILE"); v != "" {
		c.DataFile = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		c.DBDSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("APP_NAME"); v != "" {
		c.Log.App = v
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("config: port is required")
	}
	if strings.TrimSpace(c.DataFile) == "" && strings.TrimSpace(c.DBDSN) == "" {
		return errors.New("config: data_file is required when db_dsn is empty")
	}
	return nil
}

// Addr devuelve la dirección de escucha (":8080").
func (c *Config) Addr() string {
	p := strings.TrimSpace(c.Port)
	if strings.Contains(p, ":") {
		return p
	}
	return ":" + p
}

func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level:  logger.ParseLevel(c.Log.Level),
		Format: logger.ParseFormat(c.Log.Format),
		App:    c.Log.App,
	}
}
