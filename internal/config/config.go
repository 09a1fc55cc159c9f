package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/passport-photo/internal/constants"
)

//go:embed prices.yaml
var pricesYAML []byte

// Default model names, overridable through the environment.
const (
	DefaultGeminiImageModel    = "gemini-2.5-flash-image"
	DefaultGeminiAnalysisModel = "gemini-2.5-flash"
	DefaultOpenAIModel         = "gpt-4.1-mini"
	DefaultProvider            = "gemini"
)

type Config struct {
	AI     AIConfig
	Gemini GeminiConfig
	OpenAI OpenAIConfig
	Web    WebConfig
	Prices PricesConfig
}

type AIConfig struct {
	Provider       string // "gemini" (default) or "openai"
	TimeoutSeconds int    // upper bound for a single AI call
}

// Timeout returns the AI call timeout as a duration.
func (c AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type GeminiConfig struct {
	APIKey        string
	ImageModel    string
	AnalysisModel string
}

type OpenAIConfig struct {
	Token string
	Model string
}

type WebConfig struct {
	Host            string
	Port            int
	AllowedOrigins  []string // extra CORS origins besides localhost
	PhotoTTLMinutes int
	PhotoStoreMax   int
}

type PricesConfig struct {
	Models map[string]RequestPricing `yaml:"models"`
}

type RequestPricing struct {
	Input  float64 `yaml:"input"`
	Output float64 `yaml:"output"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := strings.TrimSpace(os.Getenv(key)); s != "" {
		return s
	}
	return defaultVal
}

// envList splits a comma separated variable, dropping empty entries.
func envList(key string) []string {
	var out []string
	for part := range strings.SplitSeq(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func Load() *Config {
	var prices PricesConfig
	if err := yaml.Unmarshal(pricesYAML, &prices); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded prices.yaml: " + err.Error())
	}

	return &Config{
		AI: AIConfig{
			Provider:       strings.ToLower(envString("AI_PROVIDER", DefaultProvider)),
			TimeoutSeconds: envInt("AI_TIMEOUT_SECONDS", constants.DefaultAITimeoutSeconds),
		},
		Gemini: GeminiConfig{
			APIKey:        os.Getenv("GEMINI_API_KEY"),
			ImageModel:    envString("GEMINI_IMAGE_MODEL", DefaultGeminiImageModel),
			AnalysisModel: envString("GEMINI_ANALYSIS_MODEL", DefaultGeminiAnalysisModel),
		},
		OpenAI: OpenAIConfig{
			Token: os.Getenv("OPENAI_TOKEN"),
			Model: envString("OPENAI_MODEL", DefaultOpenAIModel),
		},
		Web: WebConfig{
			Host:            envString("WEB_HOST", "localhost"),
			Port:            envInt("WEB_PORT", 8080),
			AllowedOrigins:  envList("WEB_ALLOWED_ORIGINS"),
			PhotoTTLMinutes: envInt("PHOTO_TTL_MINUTES", constants.DefaultPhotoTTLMinutes),
			PhotoStoreMax:   envInt("PHOTO_STORE_MAX", constants.DefaultPhotoStoreMax),
		},
		Prices: prices,
	}
}

// GetModelPricing returns pricing for a specific model, zero if unknown.
func (c *Config) GetModelPricing(modelName string) RequestPricing {
	if pricing, ok := c.Prices.Models[modelName]; ok {
		return pricing
	}
	return RequestPricing{}
}
