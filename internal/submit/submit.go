// Package submit runs one code snippet through the evaluation pipeline:
// redact, send, unwrap, normalize.
package submit

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/maverickalo/check-my-code/internal/client"
	"github.com/maverickalo/check-my-code/internal/envelope"
	"github.com/maverickalo/check-my-code/internal/grade"
	"github.com/maverickalo/check-my-code/internal/metrics"
	"github.com/maverickalo/check-my-code/internal/normalize"
	"github.com/maverickalo/check-my-code/internal/redact"
	"github.com/maverickalo/check-my-code/internal/review"
)

// ErrInvalidResponse is returned when the service body is not JSON.
var ErrInvalidResponse = errors.New("response is not valid JSON")

// Pipeline turns snippets into outcomes.
type Pipeline struct {
	Evaluator client.Evaluator
	Unwrapper envelope.Unwrapper
	// Redact masks credentials before the snippet is sent.
	Redact  bool
	Metrics *metrics.Recorder
}

// Run submits code and returns exactly one of a result or a failure.
func (p *Pipeline) Run(ctx context.Context, code string) review.Outcome {
	start := time.Now()
	raw, err := p.send(ctx, code)
	if err != nil {
		f := client.Classify(err)
		outcome := metrics.OutcomeFailure
		if f.CORSError {
			outcome = metrics.OutcomeCORS
		}
		p.Metrics.Submission(outcome, time.Since(start))
		log.WithError(err).WithField("cors", f.CORSError).Warn("evaluation failed")
		return review.FailureOutcome(f)
	}
	p.Metrics.Submission(metrics.OutcomeResult, time.Since(start))
	return review.ResultOutcome(p.Normalize(raw))
}

func (p *Pipeline) send(ctx context.Context, code string) ([]byte, error) {
	code, err := client.Trim(code)
	if err != nil {
		return nil, fmt.Errorf("submit.Run: %w", err)
	}
	if p.Redact {
		var n int
		if code, n = redact.Count(code); n > 0 {
			log.WithField("count", n).Info("redacted credentials from snippet")
		}
	}
	raw, err := p.Evaluator.Evaluate(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("submit.Run: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("submit.Run: %w", ErrInvalidResponse)
	}
	return raw, nil
}

// Normalize unwraps and normalizes a raw service body.
func (p *Pipeline) Normalize(raw []byte) review.EvaluationResult {
	payload, form := p.Unwrapper.Extract(raw)
	r := normalize.Normalize(payload)

	letter := grade.Letter(r.Representative()).Letter
	p.Metrics.Payload(string(form))
	p.Metrics.Grade(letter)
	log.WithFields(log.Fields{
		"form":   form,
		"evals":  r.EvalCount,
		"issues": len(r.Issues),
		"grade":  letter,
	}).Debug("normalized evaluation")
	return r
}
