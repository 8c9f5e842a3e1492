/**
* Name: 			gemini.go
* Description: 		Google Gemini (genai SDK) 생성 클라이언트
* Workflow: 		클라이언트 생성, 프롬프트 전송, 응답 텍스트 추출 및 차단 판별
 */

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("NewGeminiGenerator(): API key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("NewGeminiGenerator(): failed to create client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Name() string {
	return "gemini:" + g.model
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, wantJSON bool) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if wantJSON {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", transportError("gemini", err)
	}
	return geminiText(resp)
}

// geminiText returns the candidate text, or ErrRefused when the prompt or the
// candidate was blocked or nothing was generated.
func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", ErrRefused)
	}
	if pf := resp.PromptFeedback; pf != nil && pf.BlockReason != "" && pf.BlockReason != genai.BlockedReasonUnspecified {
		return "", fmt.Errorf("%w: prompt blocked (%s)", ErrRefused, pf.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates", ErrRefused)
	}

	switch reason := resp.Candidates[0].FinishReason; reason {
	case genai.FinishReasonSafety,
		genai.FinishReasonRecitation,
		genai.FinishReasonBlocklist,
		genai.FinishReasonProhibitedContent:
		return "", fmt.Errorf("%w: candidate finished with %s", ErrRefused, reason)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty candidate", ErrRefused)
	}
	return text, nil
}
