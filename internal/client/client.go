// Package client sends code snippets to the evaluation service.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/maverickalo/check-my-code/internal/review"
)

// ErrEmptyCode is returned when the snippet is empty after trimming.
var ErrEmptyCode = errors.New("Please provide some code to evaluate")

// Evaluator submits a snippet and returns the raw response body.
type Evaluator interface {
	Evaluate(ctx context.Context, code string) ([]byte, error)
	Name() string
}

// StatusError is a response with a non-2xx status.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned %d: %s", e.Code, http.StatusText(e.Code))
}

// TransportError means no response was received at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CORSMessage is shown when the service could not be reached.
const CORSMessage = "CORS error: The API doesn't allow browser requests. You can either:\n\n" +
	"1. Add CORS headers to your n8n workflow\n" +
	"2. Use a proxy server\n" +
	"3. Test directly with curl/Postman"

// Classify turns a submission error into the failure shown to the user.
// Unreachable services are flagged as CORS failures.
func Classify(err error) review.Failure {
	var te *TransportError
	if errors.As(err, &te) {
		return review.Failure{Error: CORSMessage, CORSError: true}
	}
	return review.Failure{Error: "Failed to evaluate code: " + rootMessage(err)}
}

// rootMessage strips the pkg.Func prefixes added while wrapping.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		if _, ok := next.(*StatusError); ok || next == ErrEmptyCode {
			return next.Error()
		}
		err = next
	}
}

// Trim removes surrounding whitespace and rejects empty snippets.
func Trim(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrEmptyCode
	}
	return code, nil
}
