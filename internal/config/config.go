package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const DefaultConfigPath = "configs/config_local.toml"

type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Mode    string `toml:"mode"`
	// 集成测试/同步的模拟耗时
	DemoDelayMs int `toml:"demoDelayMs"`
}

type DatabaseConfig struct {
	Driver       string `toml:"driver"`
	DSN          string `toml:"dsn"`
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
	SSLMode      string `toml:"sslMode"`
	AutoMigrate  bool   `toml:"autoMigrate"`
	MaxOpenConns int    `toml:"maxOpenConns"`
}

type LogConfig struct {
	LogPath string `toml:"logPath"`
	Level   string `toml:"level"`
}

type JwtConfig struct {
	Key         string `toml:"key"`
	ExpireHours int    `toml:"expireHours"`
	Issuer      string `toml:"issuer"`
}

type AIChatModelConfig struct {
	Provider       string `toml:"provider"`
	APIKey         string `toml:"apiKey"`
	AccessKey      string `toml:"accessKey"`
	SecretKey      string `toml:"secretKey"`
	BaseURL        string `toml:"baseURL"`
	Region         string `toml:"region"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
	RetryTimes     int    `toml:"retryTimes"`
	// 结构化结果缓存时长，0 表示不缓存
	CacheTTLSeconds int `toml:"cacheTTLSeconds"`
}

type AIConfig struct {
	ChatModel AIChatModelConfig `toml:"chatModel"`
}

type RedisConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	PoolSize     int    `toml:"poolSize"`
	MinIdleConns int    `toml:"minIdleConns"`
}

type CaptchaConfig struct {
	Provider       string `toml:"provider"`
	SecretKey      string `toml:"secretKey"`
	VerifyURL      string `toml:"verifyURL"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
}

type SecurityConfig struct {
	SSLRedirect     bool     `toml:"sslRedirect"`
	AllowOrigins    []string `toml:"allowOrigins"`
	SessionTTLHours int      `toml:"sessionTTLHours"`
}

// ObservabilityConfig 链路追踪；未配置 endpoint 时输出到 stdout
type ObservabilityConfig struct {
	Enabled     bool    `toml:"enabled"`
	ServiceName string  `toml:"serviceName"`
	Endpoint    string  `toml:"endpoint"`
	Insecure    bool    `toml:"insecure"`
	SampleRatio float64 `toml:"sampleRatio"`
}

type Config struct {
	MainConfig          `toml:"mainConfig"`
	DatabaseConfig      `toml:"databaseConfig"`
	JwtConfig           `toml:"jwtConfig"`
	AIConfig            `toml:"aiConfig"`
	LogConfig           `toml:"logConfig"`
	RedisConfig         `toml:"redisConfig"`
	CaptchaConfig       `toml:"captchaConfig"`
	SecurityConfig      `toml:"securityConfig"`
	ObservabilityConfig `toml:"observabilityConfig"`
}

// Default 返回未加载任何配置文件时的默认配置
func Default() *Config {
	return &Config{
		MainConfig: MainConfig{
			AppName:     "EDT",
			Host:        "0.0.0.0",
			Port:        8080,
			Mode:        "release",
			DemoDelayMs: 1500,
		},
		DatabaseConfig: DatabaseConfig{
			Driver:      "postgres",
			SSLMode:     "disable",
			AutoMigrate: true,
		},
		JwtConfig: JwtConfig{ExpireHours: 24},
		AIConfig: AIConfig{ChatModel: AIChatModelConfig{
			Provider:        "gemini",
			TimeoutSeconds:  120,
			CacheTTLSeconds: 600,
		}},
		LogConfig:           LogConfig{Level: "info"},
		CaptchaConfig:       CaptchaConfig{Provider: "turnstile", TimeoutSeconds: 10},
		SecurityConfig:      SecurityConfig{AllowOrigins: []string{"*"}, SessionTTLHours: 24 * 7},
		ObservabilityConfig: ObservabilityConfig{SampleRatio: 0.1},
	}
}

// Load 读取 toml 配置并叠加环境变量；文件不存在时使用默认值
func Load(path string) (*Config, error) {
	conf := Default()
	if strings.TrimSpace(path) == "" {
		path = os.Getenv("EDT_CONFIG")
	}
	if strings.TrimSpace(path) == "" {
		path = DefaultConfigPath
	}
	if _, err := toml.DecodeFile(path, conf); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	ApplyEnv(conf)
	return conf, nil
}

// ApplyEnv 环境变量覆盖文件配置
func ApplyEnv(conf *Config) {
	if v := env("GEMINI_API_KEY"); v != "" {
		if conf.AIConfig.ChatModel.Provider == "" {
			conf.AIConfig.ChatModel.Provider = "gemini"
		}
		if strings.EqualFold(conf.AIConfig.ChatModel.Provider, "gemini") {
			conf.AIConfig.ChatModel.APIKey = v
		}
	}
	if v := env("GEMINI_MODEL"); v != "" && strings.EqualFold(conf.AIConfig.ChatModel.Provider, "gemini") {
		conf.AIConfig.ChatModel.Model = v
	}
	if v := env("CAPTCHA_SECRET_KEY"); v != "" {
		conf.CaptchaConfig.SecretKey = v
	}
	if v := env("DATABASE_URL"); v != "" {
		conf.DatabaseConfig.DSN = v
	}
	if v := env("EDT_JWT_SECRET"); v != "" {
		conf.JwtConfig.Key = v
	}
	if v := env("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		conf.RedisConfig.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				conf.RedisConfig.Port = p
			}
		}
	}
	if v := strings.ToLower(env("OTEL_ENABLED")); v != "" {
		conf.ObservabilityConfig.Enabled = v == "1" || v == "true" || v == "yes" || v == "on"
	}
	if v := env("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		conf.ObservabilityConfig.Endpoint = v
	}
	if v := env("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			conf.MainConfig.Port = p
		}
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
