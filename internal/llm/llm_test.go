package llm

import (
	"SkinProtocol_Backend/internal/config"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiText(t *testing.T) {
	okCandidate := func(text string, reason genai.FinishReason) *genai.Candidate {
		return &genai.Candidate{
			Content:      genai.NewContentFromText(text, genai.RoleModel),
			FinishReason: reason,
		}
	}

	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		refused bool
	}{
		{
			name: "plain text",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{okCandidate(`{"analysis":"x"}`, genai.FinishReasonStop)},
			},
			want: `{"analysis":"x"}`,
		},
		{name: "nil response", resp: nil, refused: true},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, refused: true},
		{
			name: "prompt blocked",
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
			},
			refused: true,
		},
		{
			name: "safety finish",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{okCandidate("partial", genai.FinishReasonSafety)},
			},
			refused: true,
		},
		{
			name: "whitespace only",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{okCandidate("  \n", genai.FinishReasonStop)},
			},
			refused: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := geminiText(tt.resp)
			if tt.refused {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrRefused)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type fakeChatModel struct {
	msg   *schema.Message
	err   error
	calls int
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.calls++
	return f.msg, f.err
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	t.Run("json model used when JSON is wanted", func(t *testing.T) {
		jsonModel := &fakeChatModel{msg: schema.AssistantMessage(`{"tips":[]}`, nil)}
		textModel := &fakeChatModel{msg: schema.AssistantMessage("hello", nil)}
		g := &OpenAIGenerator{jsonModel: jsonModel, textModel: textModel, model: "gpt-4o-mini"}

		got, err := g.Generate(context.Background(), "prompt", true)
		require.NoError(t, err)
		assert.Equal(t, `{"tips":[]}`, got)
		assert.Equal(t, 1, jsonModel.calls)
		assert.Equal(t, 0, textModel.calls)
	})

	t.Run("empty content is refused", func(t *testing.T) {
		m := &fakeChatModel{msg: schema.AssistantMessage("", nil)}
		g := &OpenAIGenerator{jsonModel: m, textModel: m}

		_, err := g.Generate(context.Background(), "prompt", true)
		assert.ErrorIs(t, err, ErrRefused)
	})

	t.Run("provider error is transport", func(t *testing.T) {
		m := &fakeChatModel{err: errors.New("connection reset")}
		g := &OpenAIGenerator{jsonModel: m, textModel: m}

		_, err := g.Generate(context.Background(), "prompt", true)
		assert.ErrorIs(t, err, ErrTransport)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestStubGenerator(t *testing.T) {
	g := NewStubGenerator(0)
	prompt := "You are a celebrity dermatologist.\nSkin: dry\nConcerns: Redness, Texture\nProducts user already uses: None/Starting Fresh\n"

	text, err := g.Generate(context.Background(), prompt, true)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.Contains(t, out["analysis"], "dry skin")
	assert.Contains(t, out["analysis"], "Redness, Texture")
	assert.NotEmpty(t, out["am_routine"])
	assert.NotEmpty(t, out["pm_routine"])
	assert.NotEmpty(t, out["tips"])
}

func TestStubGenerator_Cancelled(t *testing.T) {
	g := NewStubGenerator(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, "Skin: oily", true)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewGenerator(t *testing.T) {
	g, err := NewGenerator(context.Background(), config.LLMConfig{Provider: config.ProviderStub})
	require.NoError(t, err)
	assert.Equal(t, "stub", g.Name())

	_, err = NewGenerator(context.Background(), config.LLMConfig{Provider: "carrier-pigeon"})
	assert.Error(t, err)

	_, err = NewGenerator(context.Background(), config.LLMConfig{Provider: config.ProviderGemini})
	assert.Error(t, err, "missing API key")
}
