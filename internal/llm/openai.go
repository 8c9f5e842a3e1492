package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const defaultOpenAIModel = "gpt-4o-mini"

type OpenAIOptions struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// chatModel is the part of eino's chat model this package calls.
type chatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// OpenAIGenerator keeps one chat model configured for json_object output
// and one for plain text.
type OpenAIGenerator struct {
	jsonModel chatModel
	textModel chatModel
	model     string
}

func NewOpenAIGenerator(ctx context.Context, opts OpenAIOptions) (*OpenAIGenerator, error) {
	if opts.APIKey == "" {
		return nil, errors.New("NewOpenAIGenerator(): API key is required")
	}
	if opts.Model == "" {
		opts.Model = defaultOpenAIModel
	}

	jsonModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  opts.APIKey,
		Model:   opts.Model,
		BaseURL: opts.BaseURL,
		Timeout: opts.Timeout,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("NewOpenAIGenerator(): failed to create json chat model: %w", err)
	}
	textModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  opts.APIKey,
		Model:   opts.Model,
		BaseURL: opts.BaseURL,
		Timeout: opts.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("NewOpenAIGenerator(): failed to create chat model: %w", err)
	}

	return &OpenAIGenerator{jsonModel: jsonModel, textModel: textModel, model: opts.Model}, nil
}

func (o *OpenAIGenerator) Name() string {
	return "openai:" + o.model
}

func (o *OpenAIGenerator) Generate(ctx context.Context, prompt string, wantJSON bool) (string, error) {
	cm := o.textModel
	if wantJSON {
		cm = o.jsonModel
	}

	msg, err := cm.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", transportError("openai", err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", fmt.Errorf("%w: empty message content", ErrRefused)
	}
	return msg.Content, nil
}
