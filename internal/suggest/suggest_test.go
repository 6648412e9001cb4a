package suggest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinIcons(t *testing.T) {
	r, err := Builtin()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		text string
		want string
	}{
		{"Use more descriptive variable names", "🏷️"},
		{"Improve NAMING conventions", "🏷️"},
		{"Add error handling around the fetch call", "🛡️"},
		{"Optimize the inner loop", "⚡"},
		{"Add input validation for security", "🔒"},
		{"Add comments to the public API", "📝"},
		{"Extract auth into middleware", "⚙️"},
		{"Use parameterized SQL queries", "🗄️"},
		{"Introduce rate limiting", "🚦"},
		{"Support pagination for large lists", "📄"},
		{"Sanitize user-provided strings", "🧹"},
		{"Refactor into smaller functions", "🔧"},
		{"", "🔧"},
	}
	for _, tt := range tests {
		if got := r.Icon(tt.text); got != tt.want {
			t.Errorf("Icon(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

// Earlier rules win when several match.
func TestRuleOrderMatters(t *testing.T) {
	r, err := Builtin()
	if err != nil {
		t.Fatal(err)
	}
	// "variable" (naming) precedes "error" (error handling).
	if got := r.Icon("Rename the error variable"); got != "🏷️" {
		t.Errorf("Icon() = %s, want naming icon", got)
	}
	// "validation" (security) precedes "input" (input).
	if got := r.Icon("Add input validation"); got != "🔒" {
		t.Errorf("Icon() = %s, want security icon", got)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	bad := map[string]string{
		"no default":    "rules:\n  - icon: x\n    keywords: [a]\n",
		"no icon":       "default: d\nrules:\n  - keywords: [a]\n",
		"no keywords":   "default: d\nrules:\n  - icon: x\n",
		"empty keyword": "default: d\nrules:\n  - icon: x\n    keywords: [\" \"]\n",
		"not yaml":      "default: [unclosed\n",
	}
	for name, in := range bad {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "default: \"•\"\nrules:\n  - name: tests\n    icon: \"🧪\"\n    keywords: [Test]\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	r, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Icon("add unit tests"); got != "🧪" {
		t.Errorf("Icon() = %s, want 🧪", got)
	}
	if got := r.Icon("something else"); got != "•" {
		t.Errorf("Icon() = %s, want default", got)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
