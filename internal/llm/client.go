package llm

import (
	"SkinProtocol_Backend/internal/config"
	"context"
	"errors"
	"fmt"
)

var (
	// ErrRefused: 공급자가 사용할 수 있는 내용을 돌려주지 않음 (안전 필터, 빈 후보)
	ErrRefused = errors.New("llm: provider returned no usable content")
	// ErrTransport: 네트워크 또는 공급자 API 오류
	ErrTransport = errors.New("llm: provider call failed")
)

// Generator is a hosted (or local) text generation capability.
// Implementations return ErrRefused or ErrTransport (wrapped) on failure.
type Generator interface {
	Generate(ctx context.Context, prompt string, wantJSON bool) (string, error)
	Name() string
}

// NewGenerator creates the generator selected by cfg.Provider.
func NewGenerator(ctx context.Context, cfg config.LLMConfig) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case config.ProviderOpenAI:
		return NewOpenAIGenerator(ctx, OpenAIOptions{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: cfg.Timeout,
		})
	case config.ProviderStub:
		return NewStubGenerator(0), nil
	default:
		return nil, fmt.Errorf("NewGenerator(): unknown provider %q", cfg.Provider)
	}
}

// transportError keeps context errors visible to errors.Is alongside ErrTransport.
func transportError(provider string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrTransport, provider, err)
}
