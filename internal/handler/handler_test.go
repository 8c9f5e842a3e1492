package handler

import (
	"SkinProtocol_Backend/internal/auth"
	"SkinProtocol_Backend/internal/llm"
	"SkinProtocol_Backend/internal/middleware"
	"SkinProtocol_Backend/internal/protocol"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const scenarioBModelOutput = "```json\n" + `{
  "analysis": "Oily skin with mild congestion.",
  "am_routine": [{"name": "Cleanser", "type": "Gel", "note": "Use a pea-sized amount.", "example": "Minimalist Salicylic Acid Face Wash", "price_range": "₹250–₹350"}],
  "pm_routine": [{"name": "Retinoid", "type": "Serum", "note": "Start twice a week."}],
  "tips": ["Change pillowcases weekly."]
}` + "\n```"

const scenarioBResult = `{
  "analysis": "Oily skin with mild congestion.",
  "am_routine": [{"name": "Cleanser", "type": "Gel", "note": "Use a pea-sized amount.", "example": "Minimalist Salicylic Acid Face Wash", "price_range": "₹250–₹350"}],
  "pm_routine": [{"name": "Retinoid", "type": "Serum", "note": "Start twice a week."}],
  "tips": ["Change pillowcases weekly."]
}`

type fakeGenerator struct {
	text  string
	err   error
	calls atomic.Int32

	// block makes Generate wait for ctx; started and cancelled report progress.
	block     bool
	started   chan struct{}
	cancelled chan struct{}
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, wantJSON bool) (string, error) {
	f.calls.Add(1)
	if f.block {
		if f.started != nil {
			close(f.started)
		}
		<-ctx.Done()
		if f.cancelled != nil {
			close(f.cancelled)
		}
		return "", fmt.Errorf("%w: fake: %w", llm.ErrTransport, ctx.Err())
	}
	return f.text, f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, gen llm.Generator, issuer *auth.TokenIssuer, logger *zap.Logger, guard ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := protocol.NewService(gen, 2*time.Second, logger)
	router := gin.New()
	router.Use(middleware.RequestLogger(logger, []byte("test-key")))
	New(svc, issuer, logger).Register(router, guard...)
	return router
}

func postGenerate(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGenerate_FencedModelOutput(t *testing.T) {
	gen := &fakeGenerator{text: scenarioBModelOutput}
	router := newTestRouter(t, gen, nil, nil)

	w := postGenerate(router, `{"skinType":"oily","concerns":["Acne"],"products":""}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, scenarioBResult, w.Body.String())
	assert.Equal(t, int32(1), gen.calls.Load())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestGenerate_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `skinType=oily`},
		{"empty body", ``},
		{"wrong concerns type", `{"skinType":"oily","concerns":"Acne"}`},
		{"wrong skinType type", `{"skinType":5,"concerns":[]}`},
		{"missing skinType", `{"concerns":["Acne"],"products":""}`},
		{"blank skinType", `{"skinType":"  ","concerns":["Acne"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{text: scenarioBModelOutput}
			router := newTestRouter(t, gen, nil, nil)

			w := postGenerate(router, tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, string(protocol.KindInputMalformed), decodeError(t, w).Kind)
			assert.Zero(t, gen.calls.Load(), "model must not be called")
		})
	}
}

func TestGenerate_UnknownValuesForwarded(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	gen := &fakeGenerator{text: scenarioBModelOutput}
	router := newTestRouter(t, gen, nil, zap.New(core))

	w := postGenerate(router, `{"skinType":"oily-ish","concerns":["Pores"],"products":""}`)

	require.Equal(t, http.StatusOK, w.Code)
	entries := logs.FilterMessageSnippet("values outside catalog").All()
	require.Len(t, entries, 1)
	assert.ElementsMatch(t,
		[]interface{}{"skinType=oily-ish", "concern=Pores"},
		entries[0].ContextMap()["values"])
}

func TestGenerate_GenerationFailures(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
		kind protocol.Kind
	}{
		{
			name: "transport error",
			gen:  &fakeGenerator{err: fmt.Errorf("%w: fake: dial tcp: connection refused", llm.ErrTransport)},
			kind: protocol.KindTransportError,
		},
		{
			name: "refused",
			gen:  &fakeGenerator{err: fmt.Errorf("%w: finish reason SAFETY", llm.ErrRefused)},
			kind: protocol.KindGenerationBlocked,
		},
		{
			name: "empty content",
			gen:  &fakeGenerator{text: "   "},
			kind: protocol.KindGenerationBlocked,
		},
		{
			name: "invalid json",
			gen:  &fakeGenerator{text: "Sure! Here is your routine: step one, cleanse."},
			kind: protocol.KindGenerationParse,
		},
		{
			name: "wrong shape",
			gen:  &fakeGenerator{text: `{"analysis":"x","am_routine":"none","pm_routine":[],"tips":[]}`},
			kind: protocol.KindGenerationParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, tt.gen, nil, nil)

			w := postGenerate(router, `{"skinType":"dry","concerns":["Redness"],"products":"CeraVe"}`)

			require.Equal(t, http.StatusInternalServerError, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, "Failed to generate valid JSON", body.Error)
			assert.Equal(t, string(tt.kind), body.Kind)
			assert.NotContains(t, w.Body.String(), "connection refused")
			assert.NotContains(t, w.Body.String(), "SAFETY")
			assert.Equal(t, int32(1), tt.gen.calls.Load())
		})
	}
}

func TestGenerate_RequiresSessionWhenGuarded(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	gen := &fakeGenerator{text: scenarioBModelOutput}
	router := newTestRouter(t, gen, issuer, nil, middleware.AuthMiddleware(issuer))

	w := postGenerate(router, `{"skinType":"oily","concerns":["Acne"]}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, gen.calls.Load())

	token, _, err := issuer.Issue()
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"skinType":"oily","concerns":["Acne"]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(1), gen.calls.Load())
}

func TestCreateSession(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		router := newTestRouter(t, &fakeGenerator{}, nil, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/session", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("enabled", func(t *testing.T) {
		issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
		require.NoError(t, err)
		router := newTestRouter(t, &fakeGenerator{}, issuer, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/session", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var body SessionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		claims, err := issuer.Validate(body.Token)
		require.NoError(t, err)
		assert.NotEmpty(t, claims.SessionID)
		assert.WithinDuration(t, time.Now().Add(time.Hour), body.ExpiresAt, time.Minute)
	})
}

func TestCatalogAndHealth(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{}, nil, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var catalog CatalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
	assert.Len(t, catalog.SkinTypes, 5)
	assert.Equal(t, "oily", string(catalog.SkinTypes[0].Key))
	assert.Contains(t, catalog.Concerns, "Dark Spots")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","provider":"fake"}`, w.Body.String())
}

func TestErrorBody(t *testing.T) {
	body := errorBody(errors.New("something internal"))
	assert.Equal(t, generationFailedMessage, body.Error)
	assert.Equal(t, string(protocol.KindGenerationFailed), body.Kind)
}
