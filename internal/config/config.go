package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/nikhilbhutani/speechproxy/internal/tts"
)

type Config struct {
	Env       string          `toml:"env"`
	Log       LogConfig       `toml:"log"`
	Server    ServerConfig    `toml:"server"`
	AWS       AWSConfig       `toml:"aws"`
	Synthesis SynthesisConfig `toml:"synthesis"`
}

type LogConfig struct {
	File string `toml:"file"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// AWSConfig holds the Polly region and credentials. Credentials are optional
// at load time; requests fail individually while they are missing.
type AWSConfig struct {
	Region          string `toml:"region"`
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
	SessionToken    string `toml:"session_token"`
}

type SynthesisConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

func defaults() *Config {
	return &Config{
		Env: "production",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		AWS: AWSConfig{
			Region: "eu-central-1",
		},
		Synthesis: SynthesisConfig{
			TimeoutSeconds: 30,
		},
	}
}

// Load builds the config from defaults, then the TOML file named by
// CONFIG_FILE (if any), then the environment.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	port, err := getEnvInt("SERVER_PORT", cfg.Server.Port)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	timeout, err := getEnvInt("SYNTHESIS_TIMEOUT_SECONDS", cfg.Synthesis.TimeoutSeconds)
	if err != nil {
		return nil, fmt.Errorf("invalid SYNTHESIS_TIMEOUT_SECONDS: %w", err)
	}

	cfg.Env = getEnv("APP_ENV", cfg.Env)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)
	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = port
	cfg.AWS.Region = getEnv("AWS_REGION", cfg.AWS.Region)
	cfg.AWS.AccessKeyID = getEnv("AWS_ACCESS_KEY_ID", cfg.AWS.AccessKeyID)
	cfg.AWS.SecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", cfg.AWS.SecretAccessKey)
	cfg.AWS.SessionToken = getEnv("AWS_SESSION_TOKEN", cfg.AWS.SessionToken)
	cfg.Synthesis.TimeoutSeconds = timeout

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Polly returns the settings the synthesizer is constructed with.
func (c *Config) Polly() tts.PollyConfig {
	return tts.PollyConfig{
		Region:          c.AWS.Region,
		AccessKeyID:     c.AWS.AccessKeyID,
		SecretAccessKey: c.AWS.SecretAccessKey,
		SessionToken:    c.AWS.SessionToken,
		Timeout:         time.Duration(c.Synthesis.TimeoutSeconds) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
