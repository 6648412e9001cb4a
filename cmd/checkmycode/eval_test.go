package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maverickalo/check-my-code/internal/client"
	"github.com/maverickalo/check-my-code/internal/render"
)

func validMockResponse() []byte {
	return []byte(`{
  "evalCount": 3,
  "finalScore": 92,
  "finalRecommendation": "optimal",
  "averages": {"styleScore": 90, "performanceScore": 88, "securityScore": 95, "overallScore": 91},
  "consensus": {"totalEvals": 3, "optimalVotes": 3, "agreement": true, "agreementPct": 100},
  "issueSummary": {"total": 1, "bySeverity": {"high": 0, "medium": 1, "low": 0}},
  "issues": [
    {
      "severity": "medium",
      "category": "style",
      "message": "Prefer const",
      "line": 1,
      "codeSnippet": "let x = 1;",
      "fixedSnippet": "const x = 1;"
    }
  ],
  "suggestions": ["Improve variable naming"],
  "evals": [{"reviewer": "alpha", "score": 9, "notes": "Clean"}]
}`)
}

func lowScoreResponse() []byte {
	return []byte(`{"evalCount": 2, "averages": {"overallScore": 72}, "consensus": {"totalEvals": 2, "optimalVotes": 0}}`)
}

func writeTempSnippet(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "snippet.js")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// isolate keeps config lookups away from the developer's environment.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CHECKMYCODE_API_URL", "")
	t.Setenv("REACT_APP_API_URL", "")
}

func assertExitCode(t *testing.T, err error, wantCode int) {
	t.Helper()
	if wantCode == 0 {
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected exit code %d, got nil error", wantCode)
	}
	var ee *exitErr
	if !errors.As(err, &ee) {
		t.Fatalf("expected *exitErr, got %T: %v", err, err)
	}
	if ee.code != wantCode {
		t.Errorf("exit code = %d, want %d (msg: %s)", ee.code, wantCode, ee.msg)
	}
}

func newEvalFlags(ev client.Evaluator, out *bytes.Buffer) *evalFlags {
	return &evalFlags{
		format:    "json",
		severity:  "all",
		category:  "all",
		redact:    true,
		evaluator: ev,
		stdout:    out,
	}
}

func TestRunEvalHappyPath(t *testing.T) {
	isolate(t)
	path := writeTempSnippet(t, "let x = 1;\n")
	var out bytes.Buffer
	mock := &client.MockEvaluator{Response: validMockResponse()}

	err := runEval(context.Background(), path, newEvalFlags(mock, &out))
	assertExitCode(t, err, 0)

	var rep render.Report
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if rep.Result == nil || rep.Dashboard == nil {
		t.Fatal("expected result and dashboard in report")
	}
	if rep.Result.EvalCount != 3 {
		t.Errorf("evalCount = %d, want 3", rep.Result.EvalCount)
	}
	if rep.Dashboard.Assessment.Grade.Letter != "A" {
		t.Errorf("grade = %q, want A", rep.Dashboard.Assessment.Grade.Letter)
	}
	if len(mock.Calls) != 1 || mock.Calls[0] != "let x = 1;" {
		t.Errorf("evaluator calls = %q", mock.Calls)
	}
}

func TestRunEvalStdin(t *testing.T) {
	isolate(t)
	var out bytes.Buffer
	f := newEvalFlags(&client.MockEvaluator{Response: validMockResponse()}, &out)
	f.stdin = strings.NewReader("print('hi')")
	f.language = "python"

	err := runEval(context.Background(), "-", f)
	assertExitCode(t, err, 0)
}

func TestRunEvalMissingFile(t *testing.T) {
	isolate(t)
	var out bytes.Buffer
	err := runEval(context.Background(), "/nonexistent/snippet.js", newEvalFlags(&client.MockEvaluator{}, &out))
	assertExitCode(t, err, 3)
}

func TestRunEvalEmptySnippet(t *testing.T) {
	isolate(t)
	path := writeTempSnippet(t, "  \n\t\n")
	mock := &client.MockEvaluator{Response: validMockResponse()}
	var out bytes.Buffer

	err := runEval(context.Background(), path, newEvalFlags(mock, &out))
	assertExitCode(t, err, 3)
	if len(mock.Calls) != 0 {
		t.Errorf("evaluator called %d times, want 0", len(mock.Calls))
	}
}

func TestRunEvalBadFlags(t *testing.T) {
	isolate(t)
	path := writeTempSnippet(t, "let x = 1;")
	tests := map[string]func(f *evalFlags){
		"format":     func(f *evalFlags) { f.format = "xml" },
		"fail-below": func(f *evalFlags) { f.failBelow = "E" },
		"language":   func(f *evalFlags) { f.language = "cobol" },
		"rules":      func(f *evalFlags) { f.rules = "/nonexistent/rules.yaml" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			f := newEvalFlags(&client.MockEvaluator{Response: validMockResponse()}, &out)
			mutate(f)
			assertExitCode(t, runEval(context.Background(), path, f), 3)
		})
	}
}

func TestRunEvalTransportFailure(t *testing.T) {
	isolate(t)
	path := writeTempSnippet(t, "let x = 1;")
	var out bytes.Buffer
	mock := &client.MockEvaluator{Err: &client.TransportError{Err: errors.New("connection refused")}}

	err := runEval(context.Background(), path, newEvalFlags(mock, &out))
	assertExitCode(t, err, 4)

	var rep render.Report
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if rep.Failure == nil || !rep.Failure.CORSError {
		t.Fatalf("expected CORS failure, got %+v", rep.Failure)
	}
}

func TestRunEvalNonJSONResponse(t *testing.T) {
	isolate(t)
	path := writeTempSnippet(t, "let x = 1;")
	var out bytes.Buffer
	f := newEvalFlags(&client.MockEvaluator{Response: []byte("<html>oops</html>")}, &out)
	f.format = "text"

	err := runEval(context.Background(), path, f)
	assertExitCode(t, err, 4)
	if !strings.Contains(out.String(), "Failed to evaluate code") {
		t.Errorf("expected failure text, got:\n%s", out.String())
	}
}

func TestRunEvalFailBelow(t *testing.T) {
	isolate(t)
	path := writeTempSnippet(t, "let x = 1;")
	tests := []struct {
		failBelow string
		response  []byte
		want      int
	}{
		{"B", lowScoreResponse(), 2},
		{"c", lowScoreResponse(), 0},
		{"A", validMockResponse(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.failBelow, func(t *testing.T) {
			var out bytes.Buffer
			f := newEvalFlags(&client.MockEvaluator{Response: tt.response}, &out)
			f.failBelow = tt.failBelow
			assertExitCode(t, runEval(context.Background(), path, f), tt.want)
		})
	}
}

func TestRunEvalFormatMarkdown(t *testing.T) {
	isolate(t)
	path := writeTempSnippet(t, "let x = 1;")
	var out bytes.Buffer
	f := newEvalFlags(&client.MockEvaluator{Response: validMockResponse()}, &out)
	f.format = "md"

	assertExitCode(t, runEval(context.Background(), path, f), 0)
	if !strings.HasPrefix(out.String(), "# Evaluation Results") {
		t.Errorf("unexpected markdown:\n%s", out.String())
	}
}

func TestRunEvalOutFile(t *testing.T) {
	isolate(t)
	path := writeTempSnippet(t, "let x = 1;")
	outPath := filepath.Join(t.TempDir(), "report.json")
	var out bytes.Buffer
	f := newEvalFlags(&client.MockEvaluator{Response: validMockResponse()}, &out)
	f.out = outPath

	assertExitCode(t, runEval(context.Background(), path, f), 0)
	if out.Len() != 0 {
		t.Error("expected nothing on stdout when --out is set")
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) {
		t.Error("output file is not valid JSON")
	}
}

func TestRunEvalFixesOut(t *testing.T) {
	isolate(t)
	path := writeTempSnippet(t, "let x = 1;")
	fixesPath := filepath.Join(t.TempDir(), "fixes.diff")
	var out bytes.Buffer
	f := newEvalFlags(&client.MockEvaluator{Response: validMockResponse()}, &out)
	f.fixesOut = fixesPath

	assertExitCode(t, runEval(context.Background(), path, f), 0)
	data, err := os.ReadFile(fixesPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# medium: Prefer const", "-let x = 1;", "+const x = 1;"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("fixes file missing %q:\n%s", want, data)
		}
	}
}

func TestRunEvalRedact(t *testing.T) {
	isolate(t)
	path := writeTempSnippet(t, `const password = "hunter2hunter2";`)

	tests := []struct {
		redact bool
		leaked bool
	}{
		{true, false},
		{false, true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		mock := &client.MockEvaluator{Response: validMockResponse()}
		f := newEvalFlags(mock, &out)
		f.redact = tt.redact

		assertExitCode(t, runEval(context.Background(), path, f), 0)
		if len(mock.Calls) != 1 {
			t.Fatalf("evaluator calls = %d, want 1", len(mock.Calls))
		}
		if got := strings.Contains(mock.Calls[0], "hunter2hunter2"); got != tt.leaked {
			t.Errorf("redact=%v: secret sent = %v, want %v", tt.redact, got, tt.leaked)
		}
	}
}
