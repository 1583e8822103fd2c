package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/carlsburger/gastrocore/gastrocore/v1/common"
)

// TokenProvider supplies the bearer credential per request. Keeping the
// credential behind an interface leaves expiry and refresh to the auth
// layer instead of baking a token into the transport.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed credential.
type StaticToken string

func (s StaticToken) Token(context.Context) (string, error) { return string(s), nil }

type Response struct {
	Data []byte
}

// Transport handles low-level HTTP and authentication.
type Transport struct {
	BaseURL    string
	Tokens     TokenProvider
	HTTPClient *http.Client
}

// NewTransport creates a transport with base URL and credential source.
// A nil provider sends unauthenticated requests.
func NewTransport(baseURL string, tokens TokenProvider) *Transport {
	return &Transport{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Tokens:     tokens,
		HTTPClient: &http.Client{},
	}
}

// helper: build full URL with query params
func (t *Transport) buildURL(path string, query map[string]string) string {
	u, _ := url.Parse(t.BaseURL + path)
	q := u.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (t *Transport) authorize(ctx context.Context, req *http.Request) error {
	if t.Tokens == nil {
		return nil
	}
	token, err := t.Tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("resolving credential: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	return nil
}

// Get sends a GET request and returns the raw body.
func (t *Transport) Get(ctx context.Context, path string, query map[string]string) (*Response, error) {
	return t.do(ctx, http.MethodGet, path, nil, query)
}

// Post sends a POST request with a JSON body.
func (t *Transport) Post(ctx context.Context, path string, data any, query map[string]string) (*Response, error) {
	return t.do(ctx, http.MethodPost, path, data, query)
}

// Put sends a PUT request with a JSON body.
func (t *Transport) Put(ctx context.Context, path string, data any) (*Response, error) {
	return t.do(ctx, http.MethodPut, path, data, nil)
}

// Delete sends a DELETE request.
func (t *Transport) Delete(ctx context.Context, path string) (*Response, error) {
	return t.do(ctx, http.MethodDelete, path, nil, nil)
}

func (t *Transport) do(ctx context.Context, method, path string, data any, query map[string]string) (*Response, error) {
	fullURL := t.buildURL(path, query)

	var body io.Reader
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, err
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := t.authorize(ctx, req); err != nil {
		return nil, err
	}

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, readAPIError(resp)
	}

	resdata, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{Data: resdata}, nil
}

// PostMultipart uploads a single file as multipart/form-data.
func (t *Transport) PostMultipart(ctx context.Context, path, field, filename string, r io.Reader) (*Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.buildURL(path, nil), &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := t.authorize(ctx, req); err != nil {
		return nil, err
	}

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, readAPIError(resp)
	}
	resdata, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{Data: resdata}, nil
}

// GetStream sends a GET request and returns the body for streaming reads.
// The caller must close it.
func (t *Transport) GetStream(ctx context.Context, path string, query map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.buildURL(path, query), nil)
	if err != nil {
		return nil, err
	}
	if err := t.authorize(ctx, req); err != nil {
		return nil, err
	}

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, readAPIError(resp)
	}
	return resp.Body, nil
}

// readAPIError turns a non-2xx response into an *APIError, pulling code
// and message out of the envelope when the body carries one.
func readAPIError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil || len(b) == 0 {
		return apiErr
	}

	var envelope common.StatusAPIResponse[json.RawMessage]
	if err := json.Unmarshal(b, &envelope); err == nil && envelope.Error != nil {
		if envelope.Error.Message != "" {
			apiErr.Message = envelope.Error.Message
		}
		apiErr.Code = envelope.Error.Code
		return apiErr
	}

	if s := strings.TrimSpace(string(b)); s != "" && len(s) <= 512 {
		apiErr.Message = s
	}
	return apiErr
}
