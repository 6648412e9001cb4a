// Package snippet loads the code to evaluate from a file or stdin.
package snippet

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// DefaultLanguage is assumed when nothing else identifies the language.
const DefaultLanguage = "javascript"

// Languages lists the languages a snippet may be tagged with.
var Languages = []string{
	"javascript", "typescript", "python", "java", "cpp", "c",
	"csharp", "go", "rust", "php", "ruby", "swift",
}

var extensions = map[string]string{
	".js":    "javascript",
	".jsx":   "javascript",
	".mjs":   "javascript",
	".cjs":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".py":    "python",
	".java":  "java",
	".cpp":   "cpp",
	".cc":    "cpp",
	".cxx":   "cpp",
	".hpp":   "cpp",
	".c":     "c",
	".h":     "c",
	".cs":    "csharp",
	".go":    "go",
	".rs":    "rust",
	".php":   "php",
	".rb":    "ruby",
	".swift": "swift",
}

// Snippet is a trimmed piece of code with its metadata.
type Snippet struct {
	Source   string
	Code     string
	Lines    int
	Hash     string
	Language string
}

// Load reads a snippet from path, or from stdin when path is "-".
func Load(path string, stdin io.Reader) (*Snippet, error) {
	if path == Stdin {
		return Read(stdin, "stdin")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("snippet.Load: %w", err)
	}
	defer f.Close()
	s, err := Read(f, path)
	if err != nil {
		return nil, fmt.Errorf("snippet.Load: %w", err)
	}
	return s, nil
}

// Read consumes r and builds a snippet. The code is trimmed; an empty
// snippet is returned as-is and rejected later by the client.
func Read(r io.Reader, source string) (*Snippet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("snippet.Read: %w", err)
	}
	code := strings.TrimSpace(string(data))
	h := sha256.Sum256([]byte(code))
	s := &Snippet{
		Source:   source,
		Code:     code,
		Hash:     fmt.Sprintf("sha256:%x", h),
		Language: DetectLanguage(source),
	}
	if code != "" {
		s.Lines = strings.Count(code, "\n") + 1
	}
	return s, nil
}

// DetectLanguage infers the language from a file extension.
func DetectLanguage(path string) string {
	if lang, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return DefaultLanguage
}

// ValidLanguage reports whether lang is one of Languages.
func ValidLanguage(lang string) bool {
	return slices.Contains(Languages, lang)
}
