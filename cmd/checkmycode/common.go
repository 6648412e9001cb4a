package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/maverickalo/check-my-code/internal/config"
	"github.com/maverickalo/check-my-code/internal/logging"
	"github.com/maverickalo/check-my-code/internal/suggest"
)

// Exit codes.
const (
	exitBelowGrade = 2
	exitInput      = 3
	exitTransport  = 4
)

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// setup loads configuration and configures logging. verbose forces debug
// logs.
func setup(configPath string, verbose bool) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, exitError(exitInput, "failed to load config: %v", err)
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	if err := logging.Setup(level, cfg.LogFormat); err != nil {
		return nil, exitError(exitInput, "invalid logging config: %v", err)
	}
	return cfg, nil
}

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// loadRules reads custom suggestion rules, or returns the built-in set when
// path is empty.
func loadRules(path string) (*suggest.Rules, error) {
	if path == "" {
		r, err := suggest.Builtin()
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	r, err := suggest.LoadFile(path)
	if err != nil {
		return nil, exitError(exitInput, "failed to load rules: %v", err)
	}
	return r, nil
}

// colorEnabled reports whether stdout is a terminal that accepts colors.
func colorEnabled() bool {
	return !color.NoColor
}
