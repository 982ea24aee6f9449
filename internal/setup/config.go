package setup

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is everything the process takes from the environment. Secrets
// are injected at start, never compiled in.
type Config struct {
	MongoURI    string
	MongoDBName string

	// LLM judge provider: "openai" or "bedrock".
	DefaultProvider string
	OpenAIKey       string
	OpenAIModelID   string
	AWSRegion       string
	ClaudeModelID   string
	LLMTimeout      time.Duration

	LangfusePublicKey string
	LangfuseSecretKey string
	LangfuseHost      string

	// Base URLs of the assistant's own services; carried for parity with
	// its deployment environment, unused by the evaluator.
	SearchAPIURL string
	ChatAPIURL   string

	ScheduleDay time.Weekday
	Workers     int
	LogLevel    string

	RedisAddr     string
	RedisPassword string
	StreamName    string
	StreamGroup   string

	APIPort string
}

func LoadConfig() *Config {
	return &Config{
		MongoURI:    getEnv("MONGODB_URI", ""),
		MongoDBName: getEnv("MONGODB_DB_NAME", "genieai"),

		DefaultProvider: getEnv("DEFAULT_LLM_PROVIDER", "openai"),
		OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIModelID:   getEnv("OPENAI_MODEL_ID", "gpt-4o"),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:   getEnv("CLAUDE_MODEL_ID", ""),
		LLMTimeout:      getEnvDuration("LLM_REQUEST_TIMEOUT", 60*time.Second),

		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:      getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),

		SearchAPIURL: getEnv("SEARCH_API_URL", ""),
		ChatAPIURL:   getEnv("CHAT_API_URL", ""),

		ScheduleDay: getEnvWeekday("EVAL_SCHEDULE_DAY", time.Sunday),
		Workers:     getEnvInt("EVAL_WORKERS", 5),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		StreamName:    getEnv("REEVALUATION_STREAM", "rag-eval-requests"),
		StreamGroup:   getEnv("REEVALUATION_GROUP", "rag-eval-agent"),

		APIPort: getEnv("EVAL_AGENT_API_PORT", "18081"),
	}
}

// Validate is the startup gate for configuration errors: a missing
// credential fails here, before the turn selector ever runs, naming the
// key that is missing.
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("configuration error: MONGODB_URI is required")
	}

	switch c.DefaultProvider {
	case "openai":
		if c.OpenAIKey == "" {
			return fmt.Errorf("configuration error: OPENAI_API_KEY is required for provider openai")
		}
	case "bedrock":
		if c.ClaudeModelID == "" {
			return fmt.Errorf("configuration error: CLAUDE_MODEL_ID is required for provider bedrock")
		}
	default:
		return fmt.Errorf("configuration error: unknown DEFAULT_LLM_PROVIDER %q", c.DefaultProvider)
	}

	// Tracing is optional, but half a key pair is a misconfiguration.
	if (c.LangfusePublicKey == "") != (c.LangfuseSecretKey == "") {
		return fmt.Errorf("configuration error: LANGFUSE_PUBLIC_KEY and LANGFUSE_SECRET_KEY must both be set")
	}

	return nil
}

// TracingEnabled reports whether Langfuse credentials were supplied.
func (c *Config) TracingEnabled() bool {
	return c.LangfusePublicKey != "" && c.LangfuseSecretKey != ""
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvWeekday(key string, defaultValue time.Weekday) time.Weekday {
	value := strings.ToLower(os.Getenv(key))
	days := map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday,
		"friday": time.Friday, "saturday": time.Saturday,
	}
	if day, ok := days[value]; ok {
		return day
	}
	return defaultValue
}
