package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Crustdata CrustdataConfig `mapstructure:"crustdata"`
	Tools     ToolsConfig     `mapstructure:"tools"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig covers both HTTP services; each cmd picks its own address.
type ServerConfig struct {
	PipelineAddr   string   `mapstructure:"pipeline_addr"`
	ToolsAddr      string   `mapstructure:"tools_addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // seconds
	WriteTimeout   int      `mapstructure:"write_timeout"` // seconds
}

// LLMConfig holds credentials for the Anthropic messages endpoint.
// An empty APIKey disables the LLM path; callers fall back to
// deterministic parsing.
type LLMConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
	BaseURL   string `mapstructure:"base_url"`
	Timeout   int    `mapstructure:"timeout"` // seconds
}

// CrustdataConfig holds the company-data provider credentials.
type CrustdataConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

// ToolsConfig holds per-tool upstream endpoints for the public-API tools.
type ToolsConfig struct {
	WeatherBaseURL    string `mapstructure:"weather_base_url"`
	WeatherAPIKey     string `mapstructure:"weather_api_key"`
	RandomUserBaseURL string `mapstructure:"random_user_base_url"`
	TimeBaseURL       string `mapstructure:"time_base_url"`
	Timeout           int    `mapstructure:"timeout"`   // seconds
	CacheTTL          int    `mapstructure:"cache_ttl"` // seconds; 0 disables caching
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

func (s ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

func (l LLMConfig) TimeoutDuration() time.Duration {
	return time.Duration(l.Timeout) * time.Second
}

func (c CrustdataConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (t ToolsConfig) TimeoutDuration() time.Duration {
	return time.Duration(t.Timeout) * time.Second
}

func (t ToolsConfig) CacheTTLDuration() time.Duration {
	return time.Duration(t.CacheTTL) * time.Second
}
