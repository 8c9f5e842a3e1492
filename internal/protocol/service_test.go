package protocol

import (
	"SkinProtocol_Backend/internal/llm"
	"SkinProtocol_Backend/internal/metrics"
	"SkinProtocol_Backend/internal/models"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeGenerator struct {
	name     string
	text     string
	err      error
	block    bool
	calls    int
	prompt   string
	wantJSON bool
}

func (f *fakeGenerator) Name() string {
	if f.name == "" {
		return "fake"
	}
	return f.name
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, wantJSON bool) (string, error) {
	f.calls++
	f.prompt = prompt
	f.wantJSON = wantJSON
	if f.block {
		<-ctx.Done()
		return "", fmt.Errorf("%w: %w", llm.ErrTransport, ctx.Err())
	}
	return f.text, f.err
}

var validInput = models.ConsultationInput{
	SkinType: models.SkinTypeOily,
	Concerns: []string{"Acne", "Texture"},
}

func recordStates() (*[]State, Observer) {
	var states []State
	return &states, func(s State) { states = append(states, s) }
}

func TestService_Generate_Success(t *testing.T) {
	gen := &fakeGenerator{text: "```json\n{\"analysis\":\"x\",\"am_routine\":[],\"pm_routine\":[],\"tips\":[]}\n```"}
	svc := NewService(gen, time.Second, zaptest.NewLogger(t))
	states, observe := recordStates()

	result, err := svc.Generate(context.Background(), validInput, observe)
	require.NoError(t, err)
	assert.Equal(t, "x", result.Analysis)

	assert.Equal(t, 1, gen.calls)
	assert.True(t, gen.wantJSON)
	assert.Equal(t, BuildPrompt(validInput), gen.prompt)
	assert.Equal(t, []State{StateReceived, StatePromptBuilt, StateModelCalled, StateParsed}, *states)
}

func TestService_Generate_Failures(t *testing.T) {
	tests := []struct {
		name       string
		gen        *fakeGenerator
		input      models.ConsultationInput
		sentinel   error
		kind       Kind
		lastState  State
		modelCalls int
	}{
		{
			name:       "refused",
			gen:        &fakeGenerator{err: fmt.Errorf("%w: prompt blocked (SAFETY)", llm.ErrRefused)},
			input:      validInput,
			sentinel:   ErrGenerationBlocked,
			kind:       KindGenerationBlocked,
			lastState:  StateContentBlocked,
			modelCalls: 1,
		},
		{
			name:       "empty text without error",
			gen:        &fakeGenerator{text: "   "},
			input:      validInput,
			sentinel:   ErrGenerationBlocked,
			kind:       KindGenerationBlocked,
			lastState:  StateContentBlocked,
			modelCalls: 1,
		},
		{
			name:       "fenced json block with nothing inside",
			gen:        &fakeGenerator{text: "```json\n```"},
			input:      validInput,
			sentinel:   ErrGenerationBlocked,
			kind:       KindGenerationBlocked,
			lastState:  StateContentBlocked,
			modelCalls: 1,
		},
		{
			name:       "bare fences around blank lines",
			gen:        &fakeGenerator{text: "```\n\n```"},
			input:      validInput,
			sentinel:   ErrGenerationBlocked,
			kind:       KindGenerationBlocked,
			lastState:  StateContentBlocked,
			modelCalls: 1,
		},
		{
			name:       "invalid json",
			gen:        &fakeGenerator{text: "{\"analysis\": \"x\", "},
			input:      validInput,
			sentinel:   ErrGenerationParse,
			kind:       KindGenerationParse,
			lastState:  StateParseFailed,
			modelCalls: 1,
		},
		{
			name:       "wrong shape",
			gen:        &fakeGenerator{text: `{"analysis":"x"}`},
			input:      validInput,
			sentinel:   ErrGenerationParse,
			kind:       KindGenerationParse,
			lastState:  StateParseFailed,
			modelCalls: 1,
		},
		{
			name:       "transport",
			gen:        &fakeGenerator{err: fmt.Errorf("%w: dial tcp: connection refused", llm.ErrTransport)},
			input:      validInput,
			sentinel:   ErrGenerationTransport,
			kind:       KindTransportError,
			lastState:  StateModelCalled,
			modelCalls: 1,
		},
		{
			name:       "unclassified provider error",
			gen:        &fakeGenerator{err: errors.New("boom")},
			input:      validInput,
			sentinel:   ErrGenerationTransport,
			kind:       KindTransportError,
			lastState:  StateModelCalled,
			modelCalls: 1,
		},
		{
			name:       "missing skin type",
			gen:        &fakeGenerator{},
			input:      models.ConsultationInput{Concerns: []string{"Acne"}},
			sentinel:   ErrInputMalformed,
			kind:       KindInputMalformed,
			lastState:  StateReceived,
			modelCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.gen, time.Second, zaptest.NewLogger(t))
			states, observe := recordStates()

			result, err := svc.Generate(context.Background(), tt.input, observe)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.kind, KindOf(err))
			assert.Equal(t, tt.modelCalls, tt.gen.calls)
			require.NotEmpty(t, *states)
			assert.Equal(t, tt.lastState, (*states)[len(*states)-1])
		})
	}
}

func TestService_Generate_Timeout(t *testing.T) {
	gen := &fakeGenerator{block: true}
	svc := NewService(gen, 20*time.Millisecond, zaptest.NewLogger(t))

	start := time.Now()
	_, err := svc.Generate(context.Background(), validInput, nil)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.ErrorIs(t, err, ErrGenerationTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "exceeded")
}

func TestService_Generate_CallerCancel(t *testing.T) {
	gen := &fakeGenerator{block: true}
	svc := NewService(gen, time.Minute, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := svc.Generate(ctx, validInput, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, KindTransportError, KindOf(err))
}

func TestService_Generate_RecordsMetrics(t *testing.T) {
	gen := &fakeGenerator{name: "metrics-fake", err: llm.ErrRefused}
	svc := NewService(gen, time.Second, zaptest.NewLogger(t))
	counter := metrics.GenerationsTotal.WithLabelValues("metrics-fake", string(KindGenerationBlocked))

	before := testutil.ToFloat64(counter)
	_, _ = svc.Generate(context.Background(), validInput, nil)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Equal(t, "metrics-fake", svc.Provider())
}
