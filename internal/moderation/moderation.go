// Package moderation filters user-supplied text before it is stored. The
// production Checker calls the APILayer bad-words API and returns the text
// with offending words masked.
package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tbourn/go-qa-backend/internal/apperr"
)

// DefaultURL is the APILayer bad-words endpoint.
const DefaultURL = "https://api.apilayer.com/bad_words"

// maxResponseBytes caps how much of an upstream body is read.
const maxResponseBytes = 1 << 20

// Checker returns text with objectionable content masked.
type Checker interface {
	Check(ctx context.Context, text string) (string, error)
}

// Noop returns text unchanged. It is used when filtering is disabled.
type Noop struct{}

// Check implements Checker.
func (Noop) Check(_ context.Context, text string) (string, error) { return text, nil }

// APILayer is a Checker backed by the APILayer bad-words API.
type APILayer struct {
	BaseURL    string
	APIKey     string
	CensorChar string
	HTTPClient *http.Client
}

// NewAPILayer builds a client with the given key and request timeout. An
// empty baseURL selects DefaultURL.
func NewAPILayer(baseURL, apiKey string, timeout time.Duration) *APILayer {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &APILayer{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		CensorChar: "*",
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type badWordsResponse struct {
	Content         string `json:"content"`
	BadWordsTotal   int    `json:"bad_words_total"`
	CensoredContent string `json:"censored_content"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Check posts text to the API and returns the censored version.
//
// A transport failure is ExternalUnavailable. A non-2xx reply is
// ExternalService carrying the upstream status and message.
func (a *APILayer) Check(ctx context.Context, text string) (string, error) {
	endpoint, err := url.Parse(a.BaseURL)
	if err != nil {
		return "", apperr.ExternalUnavailable(fmt.Errorf("moderation: bad url: %w", err))
	}
	if a.CensorChar != "" {
		q := endpoint.Query()
		q.Set("censor_character", a.CensorChar)
		endpoint.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(text))
	if err != nil {
		return "", apperr.ExternalUnavailable(fmt.Errorf("moderation: build request: %w", err))
	}
	req.Header.Set("apikey", a.APIKey)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	client := a.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", apperr.ExternalUnavailable(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", apperr.ExternalUnavailable(fmt.Errorf("moderation: read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		if json.Unmarshal(body, &e) != nil || e.Message == "" {
			e.Message = strings.TrimSpace(string(body))
		}
		if e.Message == "" {
			e.Message = http.StatusText(resp.StatusCode)
		}
		return "", apperr.ExternalService(resp.StatusCode, e.Message)
	}

	var out badWordsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", apperr.ExternalService(resp.StatusCode, "malformed response")
	}
	return out.CensoredContent, nil
}
