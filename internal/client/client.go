/**
* Name: 			client.go
* Description: 		프로토콜 생성 API 클라이언트
* Workflow: 		상담 입력 → POST /api/generate (단일 시도) → 결과 또는 GenerationFailed
 */

package client

import (
	"SkinProtocol_Backend/internal/models"
	"SkinProtocol_Backend/internal/protocol"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

const (
	defaultTimeout = 60 * time.Second
	maxBodyBytes   = 1 << 20
)

// ErrGenerationFailed matches every failure returned by Generate.
var ErrGenerationFailed = errors.New("generation failed")

// Error describes a failed call. Status is 0 when no response arrived.
type Error struct {
	Status  int
	Message string
	Kind    string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("generation failed")
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if e.Kind != "" {
		fmt.Fprintf(&b, " (%s)", e.Kind)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrGenerationFailed
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each call, including reading the response.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithToken sends token as a Bearer session token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the session token used by later calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Generate sends one generation request. It does not retry. Cancelling ctx
// aborts the request in flight.
func (c *Client) Generate(ctx context.Context, in models.ConsultationInput) (*models.ProtocolResult, error) {
	if in.Concerns == nil {
		in.Concerns = []string{}
	}
	body, err := sonic.Marshal(in)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("failed to encode input: %w", err)}
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/generate", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromBody(resp.StatusCode, raw)
	}

	if err := protocol.ValidateShape(raw); err != nil {
		return nil, &Error{Status: resp.StatusCode, Err: fmt.Errorf("unexpected response: %w", err)}
	}
	var result models.ProtocolResult
	if err := sonic.Unmarshal(raw, &result); err != nil {
		return nil, &Error{Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return &result, nil
}

type sessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RequestSession obtains an anonymous session token and uses it for later
// calls.
func (c *Client) RequestSession(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/session", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &Error{Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", errorFromBody(resp.StatusCode, raw)
	}

	var session sessionResponse
	if err := sonic.Unmarshal(raw, &session); err != nil || session.Token == "" {
		return "", &Error{Status: resp.StatusCode, Message: "no session token in response", Err: err}
	}
	c.token = session.Token
	return session.Token, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &Error{Err: err}
	}
	return resp, nil
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func errorFromBody(status int, raw []byte) error {
	var body errorResponse
	if err := sonic.Unmarshal(raw, &body); err != nil {
		return &Error{Status: status, Message: http.StatusText(status)}
	}
	return &Error{Status: status, Message: body.Error, Kind: body.Kind}
}
