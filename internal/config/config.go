package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig    `yaml:"server"`
	Pipeline    PipelineConfig  `yaml:"pipeline"`
	OpenAI      ChatAPIConfig   `yaml:"openai"`
	Groq        ChatAPIConfig   `yaml:"groq"`
	Anthropic   ChatAPIConfig   `yaml:"anthropic"`
	Bedrock     BedrockConfig   `yaml:"bedrock"`
	Stability   ImageAPIConfig  `yaml:"stability"`
	HuggingFace ImageAPIConfig  `yaml:"huggingface"`
	Replicate   ImageAPIConfig  `yaml:"replicate"`
	Pexels      SearchAPIConfig `yaml:"pexels"`
	Unsplash    SearchAPIConfig `yaml:"unsplash"`
	Pixabay     SearchAPIConfig `yaml:"pixabay"`
	Throttle    ThrottleConfig  `yaml:"throttle"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// In a container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// PipelineConfig holds generation pipeline settings
type PipelineConfig struct {
	ForceMock         bool `yaml:"force_mock"`
	DefaultCopyCount  int  `yaml:"default_copy_count"`
	DefaultImageCount int  `yaml:"default_image_count"`
	MaxItemCount      int  `yaml:"max_item_count"`
	ImageConcurrency  int  `yaml:"image_concurrency"`
}

// ChatAPIConfig holds configuration for a chat-completion provider
type ChatAPIConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Enabled        bool   `yaml:"enabled"`
}

// Timeout returns the configured timeout as a duration
func (c ChatAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// BedrockConfig holds AWS Bedrock configuration. Bedrock uses the default
// AWS credential chain rather than an API key.
type BedrockConfig struct {
	ModelID        string `yaml:"model_id"`
	Region         string `yaml:"region"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Enabled        bool   `yaml:"enabled"`
}

// Timeout returns the configured timeout as a duration
func (c BedrockConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ImageAPIConfig holds configuration for an image-generation provider
type ImageAPIConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Enabled        bool   `yaml:"enabled"`
}

// Timeout returns the configured timeout as a duration
func (c ImageAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SearchAPIConfig holds configuration for an image-search provider
type SearchAPIConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Enabled        bool   `yaml:"enabled"`
}

// Timeout returns the configured timeout as a duration
func (c SearchAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ThrottleConfig holds per-client rate limiting for the generate endpoint
type ThrottleConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	Burst             int `yaml:"burst"`
}

// Load reads and parses the configuration file. A missing file is not an
// error: credentials may arrive entirely through environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Pipeline.DefaultCopyCount == 0 {
		cfg.Pipeline.DefaultCopyCount = 3
	}
	if cfg.Pipeline.DefaultImageCount == 0 {
		cfg.Pipeline.DefaultImageCount = 3
	}
	if cfg.Pipeline.MaxItemCount == 0 {
		cfg.Pipeline.MaxItemCount = 10
	}
	if cfg.Pipeline.ImageConcurrency == 0 {
		cfg.Pipeline.ImageConcurrency = 3
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o"
	}
	if cfg.OpenAI.TimeoutSeconds == 0 {
		cfg.OpenAI.TimeoutSeconds = 30
	}
	if cfg.Groq.BaseURL == "" {
		cfg.Groq.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Groq.Model == "" {
		cfg.Groq.Model = "llama-3.3-70b-versatile"
	}
	if cfg.Groq.TimeoutSeconds == 0 {
		cfg.Groq.TimeoutSeconds = 30
	}
	if cfg.Anthropic.BaseURL == "" {
		cfg.Anthropic.BaseURL = "https://api.anthropic.com/v1"
	}
	if cfg.Anthropic.Model == "" {
		cfg.Anthropic.Model = "claude-sonnet-4-20250514"
	}
	if cfg.Anthropic.TimeoutSeconds == 0 {
		cfg.Anthropic.TimeoutSeconds = 30
	}
	if cfg.Bedrock.Region == "" {
		cfg.Bedrock.Region = "us-east-1"
	}
	if cfg.Bedrock.TimeoutSeconds == 0 {
		cfg.Bedrock.TimeoutSeconds = 30
	}
	if cfg.Stability.BaseURL == "" {
		cfg.Stability.BaseURL = "https://api.stability.ai"
	}
	if cfg.Stability.Model == "" {
		cfg.Stability.Model = "stable-diffusion-xl-1024-v1-0"
	}
	if cfg.Stability.TimeoutSeconds == 0 {
		cfg.Stability.TimeoutSeconds = 90
	}
	if cfg.HuggingFace.BaseURL == "" {
		cfg.HuggingFace.BaseURL = "https://api-inference.huggingface.co"
	}
	if cfg.HuggingFace.Model == "" {
		cfg.HuggingFace.Model = "stabilityai/stable-diffusion-xl-base-1.0"
	}
	if cfg.HuggingFace.TimeoutSeconds == 0 {
		cfg.HuggingFace.TimeoutSeconds = 90
	}
	if cfg.Replicate.BaseURL == "" {
		cfg.Replicate.BaseURL = "https://api.replicate.com/v1"
	}
	if cfg.Replicate.TimeoutSeconds == 0 {
		cfg.Replicate.TimeoutSeconds = 100
	}
	if cfg.Pexels.BaseURL == "" {
		cfg.Pexels.BaseURL = "https://api.pexels.com/v1"
	}
	if cfg.Pexels.TimeoutSeconds == 0 {
		cfg.Pexels.TimeoutSeconds = 15
	}
	if cfg.Unsplash.BaseURL == "" {
		cfg.Unsplash.BaseURL = "https://api.unsplash.com"
	}
	if cfg.Unsplash.TimeoutSeconds == 0 {
		cfg.Unsplash.TimeoutSeconds = 15
	}
	if cfg.Pixabay.BaseURL == "" {
		cfg.Pixabay.BaseURL = "https://pixabay.com/api"
	}
	if cfg.Pixabay.TimeoutSeconds == 0 {
		cfg.Pixabay.TimeoutSeconds = 15
	}
	if cfg.Throttle.RequestsPerMinute == 0 {
		cfg.Throttle.RequestsPerMinute = 30
	}
	if cfg.Throttle.Burst == 0 {
		cfg.Throttle.Burst = 5
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so credentials can live in .env locally and in real env vars in production.
// An absent credential leaves the provider unavailable; it is never a
// startup failure.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
		cfg.OpenAI.Enabled = true
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAI.Model = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.Groq.APIKey = v
		cfg.Groq.Enabled = true
	}
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		cfg.Groq.Model = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Anthropic.APIKey = v
		cfg.Anthropic.Enabled = true
	}
	if v := os.Getenv("BEDROCK_MODEL_ID"); v != "" {
		cfg.Bedrock.ModelID = v
		cfg.Bedrock.Enabled = true
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.Bedrock.Region = v
	}
	if v := os.Getenv("STABILITY_API_KEY"); v != "" {
		cfg.Stability.APIKey = v
		cfg.Stability.Enabled = true
	}
	if v := os.Getenv("HUGGINGFACE_TOKEN"); v != "" {
		cfg.HuggingFace.APIKey = v
		cfg.HuggingFace.Enabled = true
	}
	if v := os.Getenv("REPLICATE_API_TOKEN"); v != "" {
		cfg.Replicate.APIKey = v
		cfg.Replicate.Enabled = true
	}
	if v := os.Getenv("PEXELS_API_KEY"); v != "" {
		cfg.Pexels.APIKey = v
		cfg.Pexels.Enabled = true
	}
	if v := os.Getenv("UNSPLASH_ACCESS_KEY"); v != "" {
		cfg.Unsplash.APIKey = v
		cfg.Unsplash.Enabled = true
	}
	if v := os.Getenv("PIXABAY_API_KEY"); v != "" {
		cfg.Pixabay.APIKey = v
		cfg.Pixabay.Enabled = true
	}
	if v := os.Getenv("FORCE_MOCK_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Pipeline.ForceMock = b
		}
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Server.Port = p
		}
	}

	return cfg, nil
}
