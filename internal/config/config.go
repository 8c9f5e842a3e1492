/**
* Name: 			config.go
* Description: 		환경 변수(.env) 기반 서버 설정
* Workflow: 		.env 로드, viper 기본값 적용, 유효성 검사
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderStub   = "stub"
)

type Config struct {
	Port     string
	GinMode  string
	Log      LogConfig
	LLM      LLMConfig
	Limit    RateLimitConfig
	CORS     CORSConfig
	Auth     AuthConfig
	LoadedAt time.Time
}

type LogConfig struct {
	Level  string
	Format string
}

type LLMConfig struct {
	Provider      string
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	Timeout       time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
	TTL   time.Duration
}

type CORSConfig struct {
	AllowOrigins []string
}

type AuthConfig struct {
	Required  bool
	JWTSecret string
	TokenTTL  time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config.Load(): failed to read .env: %w", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LLM_PROVIDER", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("GENERATION_TIMEOUT", "45s")
	v.SetDefault("RATE_LIMIT_RPS", 0.2)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("RATE_LIMIT_TTL", "1h")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("AUTH_REQUIRED", false)
	v.SetDefault("JWT_SECRET_KEY", "")
	v.SetDefault("SESSION_TOKEN_TTL", "24h")
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:    v.GetString("PORT"),
		GinMode: v.GetString("GIN_MODE"),
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		LLM: LLMConfig{
			Provider:      strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER"))),
			GeminiAPIKey:  v.GetString("GEMINI_API_KEY"),
			GeminiModel:   v.GetString("GEMINI_MODEL"),
			OpenAIAPIKey:  v.GetString("OPENAI_API_KEY"),
			OpenAIModel:   v.GetString("OPENAI_MODEL"),
			OpenAIBaseURL: v.GetString("OPENAI_BASE_URL"),
			Timeout:       v.GetDuration("GENERATION_TIMEOUT"),
		},
		Limit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
			TTL:   v.GetDuration("RATE_LIMIT_TTL"),
		},
		CORS: CORSConfig{
			AllowOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		},
		Auth: AuthConfig{
			Required:  v.GetBool("AUTH_REQUIRED"),
			JWTSecret: v.GetString("JWT_SECRET_KEY"),
			TokenTTL:  v.GetDuration("SESSION_TOKEN_TTL"),
		},
		LoadedAt: time.Now(),
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = detectProvider(cfg.LLM)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// API 키가 있는 공급자를 우선 선택, 없으면 로컬 stub
func detectProvider(llm LLMConfig) string {
	switch {
	case llm.GeminiAPIKey != "":
		return ProviderGemini
	case llm.OpenAIAPIKey != "":
		return ProviderOpenAI
	default:
		return ProviderStub
	}
}

func (c *Config) Validate() error {
	var problems []string

	switch c.LLM.Provider {
	case ProviderGemini:
		if c.LLM.GeminiAPIKey == "" {
			problems = append(problems, "GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			problems = append(problems, "OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
	case ProviderStub:
	default:
		problems = append(problems, fmt.Sprintf("unknown LLM_PROVIDER %q", c.LLM.Provider))
	}

	if c.LLM.Timeout <= 0 {
		problems = append(problems, "GENERATION_TIMEOUT must be positive")
	}
	if c.Limit.RPS < 0 || c.Limit.Burst < 0 {
		problems = append(problems, "RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	if len(c.CORS.AllowOrigins) == 0 {
		problems = append(problems, "CORS_ALLOW_ORIGINS must list at least one origin or *")
	}
	if c.Auth.Required && c.Auth.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET_KEY is required when AUTH_REQUIRED=true")
	}
	if c.Auth.TokenTTL <= 0 {
		problems = append(problems, "SESSION_TOKEN_TTL must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
