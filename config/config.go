package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Transport string         `yaml:"transport"`
	Telegram  TelegramConfig `yaml:"telegram"`
	OpenAI    OpenAIConfig   `yaml:"openai"`
	TTS       TTSConfig      `yaml:"tts"`
	Local     LocalConfig    `yaml:"local"`
	Metrics   MetricsConfig  `yaml:"metrics"`
	Menu      []MenuItem     `yaml:"menu"`
	Log       LogConfig      `yaml:"log"`
}

type TelegramConfig struct {
	Token string `yaml:"token"`
}

type OpenAIConfig struct {
	APIKey    string `yaml:"api_key"`
	ChatModel string `yaml:"chat_model"`
	Language  string `yaml:"language"`
}

type TTSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Language string `yaml:"language"`
}

type LocalConfig struct {
	Dir    string `yaml:"dir"`
	UserID int64  `yaml:"user_id"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// MenuItem overrides one catalog dish; an empty menu keeps the built-in
// catalog.
type MenuItem struct {
	Name        string   `yaml:"name"`
	Ingredients []string `yaml:"ingredients"`
	Price       int64    `yaml:"price"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Transport == "" {
		c.Transport = "telegram"
	}
	if c.OpenAI.ChatModel == "" {
		c.OpenAI.ChatModel = "gpt-3.5-turbo"
	}
	if c.OpenAI.Language == "" {
		c.OpenAI.Language = "uk"
	}
	if c.TTS.Language == "" {
		c.TTS.Language = "uk"
	}
	if c.Local.Dir == "" {
		c.Local.Dir = "./inbox"
	}
	if c.Local.UserID == 0 {
		c.Local.UserID = 1
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9090"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}
