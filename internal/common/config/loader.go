package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml (plus an optional per-environment
// overlay), applies environment variable overrides, and validates the
// result. A missing config file is fine; every key has a default.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	// Enable ENV override like CRUSTDATA_API_KEY, LLM_API_KEY.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // overlay is optional

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "prospect-pipeline")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.pipeline_addr", ":4000")
	v.SetDefault("server.tools_addr", ":4100")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:5174"})
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 60)

	v.SetDefault("llm.model", "claude-3-haiku-20240307")
	v.SetDefault("llm.max_tokens", 1000)
	v.SetDefault("llm.base_url", "https://api.anthropic.com")
	v.SetDefault("llm.timeout", 30)

	v.SetDefault("crustdata.base_url", "https://api.crustdata.com")
	v.SetDefault("crustdata.timeout", 30)

	v.SetDefault("tools.weather_base_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("tools.random_user_base_url", "https://randomuser.me/api")
	v.SetDefault("tools.time_base_url", "https://worldtimeapi.org/api/timezone")
	v.SetDefault("tools.timeout", 10)
	v.SetDefault("tools.cache_ttl", 120)

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// applyEnvOverrides covers the credential variables the original
// deployment documented, which do not follow the viper key layout.
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("CLAUDE_API_KEY"); key != "" {
		cfg.LLM.APIKey = key
	}
	if key := os.Getenv("CRUSTDATA_API_KEY"); key != "" {
		cfg.Crustdata.APIKey = key
	}
	if key := os.Getenv("OPENWEATHER_API_KEY"); key != "" {
		cfg.Tools.WeatherAPIKey = key
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.PipelineAddr = ":" + port
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.PipelineAddr == "" {
		return fmt.Errorf("server.pipeline_addr must not be empty")
	}
	if cfg.Server.ToolsAddr == "" {
		return fmt.Errorf("server.tools_addr must not be empty")
	}
	if cfg.Crustdata.BaseURL == "" {
		return fmt.Errorf("crustdata.base_url must not be empty")
	}
	if cfg.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive")
	}
	return nil
}

// loadEnvFile tries .env in a few locations so the binary works when
// started from the repo root or from a cmd directory.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
