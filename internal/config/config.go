// Package config loads runtime settings from file, environment, and defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/uniguide/internal/llm"
	"github.com/alexanderramin/uniguide/internal/weather"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. UNIGUIDE_DB_PATH.
const EnvPrefix = "UNIGUIDE"

type Config struct {
	DB      DBConfig
	Campus  CampusConfig
	Weather weather.Config
	LLM     llm.LLMConfig
	Log     LogConfig
	Server  ServerConfig
}

type DBConfig struct {
	Path string
}

// CampusConfig names the campus for weather lookups and prompts.
type CampusConfig struct {
	City string
	Name string
}

type LogConfig struct {
	Level string
	File  string
}

type ServerConfig struct {
	Addr        string
	RatePerMin  int
	TurnTimeout time.Duration
}

// Load reads uniguide.yaml from path, or from the working directory and
// ~/.uniguide when path is empty. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Conventional provider variables are honored as well.
	_ = v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("weather.api_key", EnvPrefix+"_WEATHER_API_KEY", "OPENWEATHER_API_KEY")

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("uniguide")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".uniguide"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	llmCfg := llm.DefaultConfig()
	llmCfg.Enabled = v.GetBool("llm.enabled")
	llmCfg.LogCalls = v.GetBool("llm.log_calls")
	llmCfg.Provider = llm.Provider(strings.ToLower(v.GetString("llm.provider")))
	llmCfg.Endpoint = v.GetString("llm.endpoint")
	llmCfg.APIKey = v.GetString("llm.api_key")
	llmCfg.Model = v.GetString("llm.model")
	llmCfg.TimeoutMs = v.GetInt("llm.timeout_ms")
	llmCfg.MaxRetries = v.GetInt("llm.max_retries")
	for _, task := range []llm.TaskType{llm.TaskSynthesize, llm.TaskWeatherTip} {
		tc := llmCfg.Tasks[task]
		prefix := "llm.tasks." + string(task) + "."
		tc.Temperature = v.GetFloat64(prefix + "temperature")
		tc.MaxTokens = v.GetInt(prefix + "max_tokens")
		tc.TimeoutMs = v.GetInt(prefix + "timeout_ms")
		llmCfg.Tasks[task] = tc
	}

	cfg := &Config{
		DB: DBConfig{Path: expandHome(v.GetString("db.path"))},
		Campus: CampusConfig{
			City: v.GetString("campus.city"),
			Name: v.GetString("campus.name"),
		},
		Weather: weather.Config{
			Endpoint: v.GetString("weather.endpoint"),
			APIKey:   v.GetString("weather.api_key"),
			Timeout:  v.GetDuration("weather.timeout"),
			CacheTTL: v.GetDuration("weather.cache_ttl"),
		},
		LLM: llmCfg,
		Log: LogConfig{
			Level: v.GetString("log.level"),
			File:  expandHome(v.GetString("log.file")),
		},
		Server: ServerConfig{
			Addr:        v.GetString("server.addr"),
			RatePerMin:  v.GetInt("server.rate_per_min"),
			TurnTimeout: v.GetDuration("server.turn_timeout"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	llmDefaults := llm.DefaultConfig()
	weatherDefaults := weather.DefaultConfig()

	v.SetDefault("db.path", "~/.uniguide/chatalogue.sqlite")

	v.SetDefault("campus.city", "Boston")
	v.SetDefault("campus.name", "Boston University")

	v.SetDefault("weather.endpoint", weatherDefaults.Endpoint)
	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.timeout", weatherDefaults.Timeout)
	v.SetDefault("weather.cache_ttl", weatherDefaults.CacheTTL)

	v.SetDefault("llm.enabled", llmDefaults.Enabled)
	v.SetDefault("llm.log_calls", llmDefaults.LogCalls)
	v.SetDefault("llm.provider", string(llmDefaults.Provider))
	v.SetDefault("llm.endpoint", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", llmDefaults.Model)
	v.SetDefault("llm.timeout_ms", llmDefaults.TimeoutMs)
	v.SetDefault("llm.max_retries", llmDefaults.MaxRetries)
	for task, tc := range llmDefaults.Tasks {
		prefix := "llm.tasks." + string(task) + "."
		v.SetDefault(prefix+"temperature", tc.Temperature)
		v.SetDefault(prefix+"max_tokens", tc.MaxTokens)
		v.SetDefault(prefix+"timeout_ms", tc.TimeoutMs)
	}

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "~/.uniguide/uniguide.log")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.rate_per_min", 60)
	v.SetDefault("server.turn_timeout", 60*time.Second)
}

func (c *Config) validate() error {
	switch c.LLM.Provider {
	case llm.ProviderOpenAI, llm.ProviderOllama:
	default:
		return fmt.Errorf("unsupported llm.provider %q", c.LLM.Provider)
	}
	if c.DB.Path == "" {
		return errors.New("db.path is required")
	}
	if c.LLM.MaxRetries < 0 {
		return errors.New("llm.max_retries must not be negative")
	}
	return nil
}

// SlogLevel maps log.level to a slog level. Unknown values mean info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
