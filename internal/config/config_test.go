package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DATABASE_URL", "")
	conf, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if conf.MainConfig.Port != 8080 || conf.DatabaseConfig.Driver != "postgres" {
		t.Fatalf("defaults not applied: port=%d driver=%s", conf.MainConfig.Port, conf.DatabaseConfig.Driver)
	}
	if conf.AIConfig.ChatModel.APIKey != "" {
		t.Fatalf("api key should be empty")
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	body := `
[mainConfig]
port = 9000
[databaseConfig]
driver = "sqlite"
[aiConfig.chatModel]
provider = "gemini"
model = "file-model"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GEMINI_API_KEY", "k-123")
	t.Setenv("GEMINI_MODEL", "env-model")
	t.Setenv("CAPTCHA_SECRET_KEY", "cap")
	t.Setenv("REDIS_ADDR", "cache:6380")

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if conf.MainConfig.Port != 9000 || conf.DatabaseConfig.Driver != "sqlite" {
		t.Fatalf("file values lost: %+v", conf.MainConfig)
	}
	if got := conf.AIConfig.ChatModel.APIKey; got != "k-123" {
		t.Fatalf("api key: got=%q want=%q", got, "k-123")
	}
	if got := conf.AIConfig.ChatModel.Model; got != "env-model" {
		t.Fatalf("model: got=%q want=%q", got, "env-model")
	}
	if conf.CaptchaConfig.SecretKey != "cap" {
		t.Fatalf("captcha secret not applied")
	}
	if conf.RedisConfig.Host != "cache" || conf.RedisConfig.Port != 6380 {
		t.Fatalf("redis addr: got=%s:%d", conf.RedisConfig.Host, conf.RedisConfig.Port)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[mainConfig\nport="), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestApplyEnvObservability(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "TRUE")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	conf := Default()
	ApplyEnv(conf)
	if !conf.ObservabilityConfig.Enabled || conf.ObservabilityConfig.Endpoint != "collector:4318" {
		t.Fatalf("observability env: got=%+v", conf.ObservabilityConfig)
	}

	t.Setenv("OTEL_ENABLED", "off")
	ApplyEnv(conf)
	if conf.ObservabilityConfig.Enabled {
		t.Fatalf("OTEL_ENABLED=off should disable tracing")
	}
}
