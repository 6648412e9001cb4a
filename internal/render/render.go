// Package render produces Markdown, terminal text and JSON output from an
// evaluation outcome.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/maverickalo/check-my-code/internal/present"
	"github.com/maverickalo/check-my-code/internal/review"
)

// Format is an output format name.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatText     Format = "text"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatMarkdown, FormatText:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want json, md or text)", s)
}

// Options controls rendering.
type Options struct {
	present.Options
	// Color enables ANSI colors in text output.
	Color bool
}

// Outcome renders either the dashboard of a result or the failure block.
func Outcome(f Format, o review.Outcome, opts Options) ([]byte, error) {
	if !o.Succeeded() {
		fail := review.Failure{Error: "no result"}
		if o.Failure != nil {
			fail = *o.Failure
		}
		return Failure(f, fail, opts)
	}
	d := present.Build(*o.Result, opts.Options)
	switch f {
	case FormatJSON:
		return JSON(Report{Result: o.Result, Dashboard: &d})
	case FormatMarkdown:
		return []byte(Markdown(d)), nil
	case FormatText:
		return []byte(Text(d, opts.Color)), nil
	}
	return nil, fmt.Errorf("render.Outcome: unknown format %q", f)
}

// Failure renders the error variant of an outcome.
func Failure(f Format, fail review.Failure, opts Options) ([]byte, error) {
	switch f {
	case FormatJSON:
		return JSON(Report{Failure: &fail})
	case FormatMarkdown:
		return []byte(FailureMarkdown(fail)), nil
	case FormatText:
		return []byte(FailureText(fail, opts.Color)), nil
	}
	return nil, fmt.Errorf("render.Failure: unknown format %q", f)
}

// Report is the JSON document written for an outcome.
type Report struct {
	Result    *review.EvaluationResult `json:"result,omitempty"`
	Dashboard *present.Dashboard       `json:"dashboard,omitempty"`
	Failure   *review.Failure          `json:"failure,omitempty"`
}

// JSON encodes a report with two-space indentation and a trailing newline.
func JSON(r Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render.JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// CORSHelp lists what to try when the evaluation endpoint cannot be reached.
var CORSHelp = []string{
	"Add CORS headers to your n8n workflow: add a \"Set\" node with " +
		"Access-Control-Allow-Origin: *, Access-Control-Allow-Methods: POST, OPTIONS " +
		"and Access-Control-Allow-Headers: Content-Type",
	"Use a proxy: run `checkmycode serve` and point the client at it",
	"Test with curl: curl -X POST <api-url> -H \"Content-Type: application/json\" " +
		"-d '{\"code\": \"console.log(\\\"test\\\")\"}'",
}

const corsTitle = "CORS Policy Blocking Request"
