package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Auth   AuthConfig   `mapstructure:"auth"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Worker WorkerConfig `mapstructure:"worker"`
	Logger LoggerConfig `mapstructure:"logger"`
}

type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	BaseURL string `mapstructure:"base_url"`
}

type AuthConfig struct {
	JWTSecret       string             `mapstructure:"jwt_secret"`
	TokenTTLMinutes int                `mapstructure:"token_ttl_minutes"`
	Clients         []ClientCredential `mapstructure:"clients"`
}

// ClientCredential is one API consumer. APIKeyHash is a bcrypt hash; plaintext
// keys are never stored in config.
type ClientCredential struct {
	ClientID   string `mapstructure:"client_id"`
	APIKeyHash string `mapstructure:"api_key_hash"`
}

type LLMConfig struct {
	ServerURL      string `mapstructure:"server_url"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type RedisConfig struct {
	Addr             string `mapstructure:"addr"`
	Password         string `mapstructure:"password"`
	DB               int    `mapstructure:"db"`
	CacheTTLMinutes  int    `mapstructure:"cache_ttl_minutes"`
	ResultTTLMinutes int    `mapstructure:"result_ttl_minutes"`
}

type WorkerConfig struct {
	Concurrency int    `mapstructure:"concurrency"`
	Queue       string `mapstructure:"queue"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Init loads configuration from config.yaml (if present), .env and environment
// variables. Environment variables use the MEETSYNC_ prefix with underscores,
// e.g. MEETSYNC_AUTH_JWT_SECRET overrides auth.jwt_secret.
func Init() error {
	// .env is optional, used in local development only
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("MEETSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required (set MEETSYNC_AUTH_JWT_SECRET)")
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()
	return nil
}

// Get returns the loaded config. Panics if Init has not been called.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("config not initialized, call config.Init first")
	}
	return instance
}

// GetSafe returns the loaded config and whether it is initialized.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}

// Set replaces the global config. Intended for tests.
func Set(cfg *Config) {
	mu.Lock()
	instance = cfg
	mu.Unlock()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("auth.token_ttl_minutes", 60)
	v.SetDefault("llm.server_url", "http://localhost:11434")
	v.SetDefault("llm.model", "llama3.2")
	v.SetDefault("llm.timeout_seconds", 60)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl_minutes", 60)
	v.SetDefault("redis.result_ttl_minutes", 120)
	v.SetDefault("worker.concurrency", 4)
	v.SetDefault("worker.queue", "schedule")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.pretty", false)
}
