package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
)

type tokenKey struct{}

// WithAccessToken makes requests made with ctx act as the signed-in user
// instead of the anonymous API key.
func WithAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

func accessToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client talks to a PostgREST/GoTrue compatible backend
type Client struct {
	baseURL string
	apiKey  string
	http    *retryablehttp.Client
}

// NewClient creates a backend client. retryMax 0 sends every request once.
func NewClient(baseURL, apiKey string, timeout time.Duration, retryMax int, log *logger.Logger) *Client {
	hc := retryablehttp.NewClient()
	hc.RetryMax = retryMax
	hc.Logger = log.Named("backend").Leveled()
	hc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if timeout > 0 {
		hc.HTTPClient.Timeout = timeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    hc,
	}
}

// request describes one backend call
type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	header http.Header
	token  string
}

// do sends the request and decodes a 2xx body into out. Other statuses are
// returned as *domain.BackendError.
func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	var body io.Reader
	if r.body != nil {
		jsonBytes, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewBuffer(jsonBytes)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	token := r.token
	if token == "" {
		token = accessToken(ctx)
	}
	if token == "" {
		token = c.apiKey
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range r.header {
		req.Header[k] = v
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorBody covers the PostgREST and GoTrue error shapes
type errorBody struct {
	Code             json.RawMessage `json:"code"`
	ErrorCode        string          `json:"error_code"`
	Message          string          `json:"message"`
	Msg              string          `json:"msg"`
	Error            string          `json:"error"`
	ErrorDescription string          `json:"error_description"`
}

func decodeError(status int, body []byte) error {
	be := &domain.BackendError{StatusCode: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		be.Code = eb.ErrorCode
		if be.Code == "" && len(eb.Code) > 0 {
			var code string
			if json.Unmarshal(eb.Code, &code) == nil {
				be.Code = code
			}
		}
		for _, m := range []string{eb.Message, eb.Msg, eb.ErrorDescription, eb.Error} {
			if m != "" {
				be.Message = m
				break
			}
		}
	}
	if be.Message == "" {
		be.Message = fmt.Sprintf("unexpected status %d", status)
		if text := strings.TrimSpace(string(body)); text != "" {
			be.Message += " - " + text
		}
	}
	return be
}
