package client

import "context"

// MockEvaluator is a test double that returns canned responses.
type MockEvaluator struct {
	Response []byte
	Err      error
	// Calls records every trimmed snippet received.
	Calls []string
}

func (m *MockEvaluator) Name() string { return "mock" }

func (m *MockEvaluator) Evaluate(_ context.Context, code string) ([]byte, error) {
	code, err := Trim(code)
	if err != nil {
		return nil, err
	}
	m.Calls = append(m.Calls, code)
	return m.Response, m.Err
}
