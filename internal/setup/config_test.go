package setup

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MONGODB_URI", "MONGODB_DB_NAME", "DEFAULT_LLM_PROVIDER",
		"OPENAI_API_KEY", "OPENAI_MODEL_ID", "AWS_REGION", "CLAUDE_MODEL_ID",
		"LANGFUSE_PUBLIC_KEY", "LANGFUSE_SECRET_KEY", "LANGFUSE_HOST",
		"EVAL_SCHEDULE_DAY", "EVAL_WORKERS", "LLM_REQUEST_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := LoadConfig()

	if cfg.MongoDBName != "genieai" {
		t.Errorf("Expected default db name genieai, got %q", cfg.MongoDBName)
	}
	if cfg.DefaultProvider != "openai" {
		t.Errorf("Expected default provider openai, got %q", cfg.DefaultProvider)
	}
	if cfg.OpenAIModelID != "gpt-4o" {
		t.Errorf("Expected default model gpt-4o, got %q", cfg.OpenAIModelID)
	}
	if cfg.ScheduleDay != time.Sunday {
		t.Errorf("Expected Sunday schedule, got %v", cfg.ScheduleDay)
	}
	if cfg.Workers != 5 {
		t.Errorf("Expected 5 workers, got %d", cfg.Workers)
	}
	if cfg.LLMTimeout != 60*time.Second {
		t.Errorf("Expected 60s LLM timeout, got %v", cfg.LLMTimeout)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("EVAL_SCHEDULE_DAY", "wednesday")
	t.Setenv("EVAL_WORKERS", "12")
	t.Setenv("LLM_REQUEST_TIMEOUT", "90s")

	cfg := LoadConfig()

	if cfg.ScheduleDay != time.Wednesday {
		t.Errorf("Expected Wednesday, got %v", cfg.ScheduleDay)
	}
	if cfg.Workers != 12 {
		t.Errorf("Expected 12 workers, got %d", cfg.Workers)
	}
	if cfg.LLMTimeout != 90*time.Second {
		t.Errorf("Expected 90s, got %v", cfg.LLMTimeout)
	}
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			MongoURI:        "mongodb://localhost:27017",
			DefaultProvider: "openai",
			OpenAIKey:       "sk-test",
		}
	}

	t.Run("valid", func(t *testing.T) {
		if err := base().Validate(); err != nil {
			t.Errorf("Expected valid config, got %v", err)
		}
	})

	t.Run("missing mongo uri", func(t *testing.T) {
		cfg := base()
		cfg.MongoURI = ""
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for missing MONGODB_URI")
		}
	})

	t.Run("openai without key", func(t *testing.T) {
		cfg := base()
		cfg.OpenAIKey = ""
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for missing OPENAI_API_KEY")
		}
	})

	t.Run("bedrock without model", func(t *testing.T) {
		cfg := base()
		cfg.DefaultProvider = "bedrock"
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for missing CLAUDE_MODEL_ID")
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := base()
		cfg.DefaultProvider = "llamafarm"
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for unknown provider")
		}
	})

	t.Run("half a langfuse key pair", func(t *testing.T) {
		cfg := base()
		cfg.LangfusePublicKey = "pk-only"
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for incomplete langfuse credentials")
		}
	})
}

func TestConfig_TracingEnabled(t *testing.T) {
	cfg := &Config{LangfusePublicKey: "pk", LangfuseSecretKey: "sk"}
	if !cfg.TracingEnabled() {
		t.Error("Expected tracing enabled with both keys")
	}
	if (&Config{}).TracingEnabled() {
		t.Error("Expected tracing disabled without keys")
	}
}
