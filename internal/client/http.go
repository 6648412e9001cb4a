package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/resty.v1"
)

type request struct {
	Code string `json:"code"`
}

// HTTPEvaluator posts snippets as JSON to the evaluation webhook.
type HTTPEvaluator struct {
	url    string
	client *resty.Client
}

// NewHTTP creates an evaluator for url. A zero timeout means no timeout.
func NewHTTP(url string, timeout time.Duration) *HTTPEvaluator {
	cl := http.Client{Timeout: timeout}
	return &HTTPEvaluator{url: url, client: resty.NewWithClient(&cl)}
}

func (h *HTTPEvaluator) Name() string { return "http" }

// URL returns the endpoint the evaluator posts to.
func (h *HTTPEvaluator) URL() string { return h.url }

func (h *HTTPEvaluator) Evaluate(ctx context.Context, code string) ([]byte, error) {
	code, err := Trim(code)
	if err != nil {
		return nil, fmt.Errorf("client.Evaluate: %w", err)
	}

	start := time.Now()
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request{Code: code}).
		Post(h.url)
	if err != nil {
		return nil, fmt.Errorf("client.Evaluate: %w", &TransportError{Err: err})
	}
	log.WithFields(log.Fields{
		"url":     h.url,
		"status":  resp.StatusCode(),
		"bytes":   len(resp.Body()),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Debug("evaluation response")

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, fmt.Errorf("client.Evaluate: %w", &StatusError{Code: resp.StatusCode(), Body: resp.Body()})
	}
	return resp.Body(), nil
}
