package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/quizdeck/internal/group"
)

// EnvPrefix prefixes every environment variable the app reads.
const EnvPrefix = "QUIZDECK"

var ErrInvalidPageSize = errors.New("page_size must be positive")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	PageSize int          `mapstructure:"page_size"` // questions per group
	DataDir  string       `mapstructure:"data_dir"`  // directory of <subject>.json banks; empty uses the built-in banks
	DBPath   string       `mapstructure:"db_path"`   // SQLite file; empty uses the XDG data path
	Log      LogConfig    `mapstructure:"log"`
	LLM      LLMConfig    `mapstructure:"llm"`
	Update   UpdateConfig `mapstructure:"update"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error or off
	File  string `mapstructure:"file"`
}

// LLMConfig selects and configures the explanation provider.
type LLMConfig struct {
	Provider   string         `mapstructure:"provider"` // empty disables explanations unless a standard key is found
	Timeout    time.Duration  `mapstructure:"timeout"`
	Anthropic  ProviderConfig `mapstructure:"anthropic"`
	OpenAI     ProviderConfig `mapstructure:"openai"`
	Gemini     ProviderConfig `mapstructure:"gemini"`
	OpenRouter ProviderConfig `mapstructure:"openrouter"`
}

// ProviderConfig holds per-provider credentials and model choice.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// UpdateConfig names the GitHub repository checked for new releases.
type UpdateConfig struct {
	Owner string `mapstructure:"owner"`
	Repo  string `mapstructure:"repo"`
}

// Load reads configuration from .env, an optional config file and
// QUIZDECK_* environment variables. path, when set, names the config
// file explicitly and must exist.
func Load(path string) (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range searchPaths() {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var fileLookupErr viper.ConfigFileNotFoundError
			if !errors.As(err, &fileLookupErr) {
				return nil, fmt.Errorf("error loading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that have no usable fallback.
func (c *Config) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.PageSize)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("page_size", group.DefaultPageSize)
	v.SetDefault("data_dir", "")
	v.SetDefault("db_path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", defaultLogFile())

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", "30s")
	for _, p := range []string{"anthropic", "openai", "gemini", "openrouter"} {
		v.SetDefault("llm."+p+".api_key", "")
		v.SetDefault("llm."+p+".model", "")
		v.SetDefault("llm."+p+".base_url", "")
	}

	v.SetDefault("update.owner", "abhisek")
	v.SetDefault("update.repo", "quizdeck")
}

// searchPaths lists directories searched for config.yaml, highest priority first.
func searchPaths() []string {
	var dirs []string
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		dirs = append(dirs, filepath.Join(x, "quizdeck"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "quizdeck"))
	}
	return append(dirs, "./config")
}

func defaultLogFile() string {
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "quizdeck.log")
		}
		state = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(state, "quizdeck", "quizdeck.log")
}
