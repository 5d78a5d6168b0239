package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abaddouh/igazolo/internal/fonts"
	"github.com/abaddouh/igazolo/internal/template"
)

type Config struct {
	Template string       `yaml:"template"`
	LogLevel string       `yaml:"log_level"`
	Fonts    FontConfig   `yaml:"fonts"`
	Server   ServerConfig `yaml:"server"`
}

type FontConfig struct {
	Candidates []string `yaml:"candidates"`
	Dirs       []string `yaml:"dirs"`
	Fallback   string   `yaml:"fallback"`
}

type ServerConfig struct {
	Port  int  `yaml:"port"`
	Watch bool `yaml:"watch"`
}

func Default() *Config {
	return &Config{
		Template: template.DefaultPath,
		LogLevel: "info",
		Fonts: FontConfig{
			Candidates: fonts.DefaultCandidates(),
			Dirs:       fonts.DefaultDirs(),
			Fallback:   string(fonts.FallbackEmbedded),
		},
		Server: ServerConfig{
			Port:  5001,
			Watch: true,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, an
// optional .env file in the working directory and the environment, in that
// order of increasing precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Template = getEnv("IGAZOLAS_TEMPLATE", c.Template)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Fonts.Candidates = getEnvSlice("IGAZOLAS_FONTS", c.Fonts.Candidates)
	c.Fonts.Dirs = getEnvSlice("IGAZOLAS_FONT_DIRS", c.Fonts.Dirs)
	c.Fonts.Fallback = getEnv("IGAZOLAS_FONT_FALLBACK", c.Fonts.Fallback)
	c.Server.Port = getEnvInt("PORT", c.Server.Port)
	c.Server.Watch = getEnvBool("IGAZOLAS_WATCH", c.Server.Watch)
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Template) == "" {
		return errors.New("config: template path is empty")
	}
	if _, err := fonts.ParseFallback(c.Fonts.Fallback); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Server.Port)
	}
	return nil
}

// Resolver builds the font resolver described by the configuration.
func (c *Config) Resolver() *fonts.Resolver {
	fb, err := fonts.ParseFallback(c.Fonts.Fallback)
	if err != nil {
		fb = fonts.FallbackEmbedded
	}
	return &fonts.Resolver{
		Candidates: c.Fonts.Candidates,
		Dirs:       c.Fonts.Dirs,
		Fallback:   fb,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		lower := strings.ToLower(strings.TrimSpace(value))
		return lower == "1" || lower == "true" || lower == "yes" || lower == "on"
	}
	return defaultValue
}
