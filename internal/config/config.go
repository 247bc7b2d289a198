package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the validation service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	OpenAIAPIKey     string
	OpenAIModel      string
	GeminiAPIKey     string
	GeminiModel      string
	GeminiBaseURL    string
	ProviderTimeout  time.Duration
	CombineTolerance float64
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// ProviderAName reports which provider fills the engine's first slot.
func (c Config) ProviderAName() string {
	if c.OpenAIAPIKey != "" {
		return "openai"
	}
	return "local"
}

// ProviderBName reports which provider fills the engine's second slot.
func (c Config) ProviderBName() string {
	if c.GeminiAPIKey != "" {
		return "gemini"
	}
	return "local"
}

// Load reads configuration values from environment variables and an optional
// .env file. Provider keys are optional: a missing key degrades that slot to
// deterministic stub verdicts instead of failing startup.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CROSSCHECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Crosscheck API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("provider_timeout_ms", 15000)
	v.SetDefault("combine_tolerance", 2.0)

	timeoutMs := v.GetInt("provider_timeout_ms")
	if timeoutMs <= 0 {
		timeoutMs = 15000
	}

	tolerance := v.GetFloat64("combine_tolerance")
	if tolerance <= 0 {
		tolerance = 2.0
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		OpenAIAPIKey:     v.GetString("openai.api_key"),
		OpenAIModel:      v.GetString("openai.model"),
		GeminiAPIKey:     v.GetString("gemini.api_key"),
		GeminiModel:      v.GetString("gemini.model"),
		GeminiBaseURL:    v.GetString("gemini.base_url"),
		ProviderTimeout:  time.Duration(timeoutMs) * time.Millisecond,
		CombineTolerance: tolerance,
	}

	return cfg, nil
}
