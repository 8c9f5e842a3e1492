/**
* Name: 			service.go
* Description: 		상담 입력 → 프롬프트 → 모델 호출 → 정리/파싱/검증
* Workflow: 		Received → PromptBuilt → ModelCalled → {ContentBlocked | ParseFailed | Parsed} → Responded
 */

package protocol

import (
	"SkinProtocol_Backend/internal/llm"
	"SkinProtocol_Backend/internal/metrics"
	"SkinProtocol_Backend/internal/models"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// State is a step of the per-request generation state machine.
type State string

const (
	StateReceived       State = "Received"
	StatePromptBuilt    State = "PromptBuilt"
	StateModelCalled    State = "ModelCalled"
	StateContentBlocked State = "ContentBlocked"
	StateParseFailed    State = "ParseFailed"
	StateParsed         State = "Parsed"
	StateResponded      State = "Responded"
)

const DefaultTimeout = 45 * time.Second

// Observer is notified of each state transition. It must not block.
type Observer func(State)

type Service struct {
	generator llm.Generator
	timeout   time.Duration
	logger    *zap.Logger
}

func NewService(generator llm.Generator, timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		generator: generator,
		timeout:   timeout,
		logger:    logger.With(zap.String("provider", generator.Name())),
	}
}

// Provider returns the name of the configured generator.
func (s *Service) Provider() string {
	return s.generator.Name()
}

// Generate runs one consultation through the model. It calls the model
// exactly once.
func (s *Service) Generate(ctx context.Context, in models.ConsultationInput, observe Observer) (*models.ProtocolResult, error) {
	if observe == nil {
		observe = func(State) {}
	}
	start := time.Now()
	metrics.GenerationsInFlight.Inc()
	defer metrics.GenerationsInFlight.Dec()

	result, err := s.generate(ctx, in, observe)

	kind := "success"
	if err != nil {
		kind = string(KindOf(err))
	}
	metrics.GenerationsTotal.WithLabelValues(s.generator.Name(), kind).Inc()
	metrics.GenerationDuration.WithLabelValues(s.generator.Name()).Observe(time.Since(start).Seconds())
	return result, err
}

func (s *Service) generate(ctx context.Context, in models.ConsultationInput, observe Observer) (*models.ProtocolResult, error) {
	observe(StateReceived)
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	prompt := BuildPrompt(in)
	observe(StatePromptBuilt)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	observe(StateModelCalled)
	modelStart := time.Now()
	text, err := s.generator.Generate(callCtx, prompt, true)
	metrics.ModelCallDuration.WithLabelValues(s.generator.Name()).Observe(time.Since(modelStart).Seconds())
	if err != nil {
		if errors.Is(err, llm.ErrRefused) {
			observe(StateContentBlocked)
			return nil, &GenerationError{Kind: KindGenerationBlocked, Err: err}
		}
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("model call exceeded %s: %w", s.timeout, err)
		}
		return nil, &GenerationError{Kind: KindTransportError, Err: err}
	}
	// 코드 펜스만 있는 응답도 내용 없음으로 처리
	if StripCodeFences(text) == "" {
		observe(StateContentBlocked)
		return nil, newError(KindGenerationBlocked, "provider returned empty text")
	}

	result, err := ParseProtocol(text)
	if err != nil {
		observe(StateParseFailed)
		s.logger.Debug("Service.generate(): unparseable model output", zap.Int("bytes", len(text)), zap.Error(err))
		return nil, err
	}
	observe(StateParsed)
	return result, nil
}

// ValidateInput rejects input that cannot produce a prompt. Values outside
// the catalog are allowed through; see UnknownValues.
func ValidateInput(in models.ConsultationInput) error {
	if strings.TrimSpace(string(in.SkinType)) == "" {
		return newError(KindInputMalformed, "skinType is required")
	}
	return nil
}

// UnknownValues lists skin type and concern values that are not in the catalog.
func UnknownValues(in models.ConsultationInput) []string {
	var unknown []string
	if _, ok := models.GetSkinType(in.SkinType); !ok {
		unknown = append(unknown, "skinType="+string(in.SkinType))
	}
	for _, c := range in.Concerns {
		if !models.IsKnownConcern(c) {
			unknown = append(unknown, "concern="+c)
		}
	}
	return unknown
}
