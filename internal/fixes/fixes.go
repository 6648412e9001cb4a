// Package fixes turns issues that carry a suggested replacement into
// unified diffs.
package fixes

import (
	"fmt"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/maverickalo/check-my-code/internal/review"
)

// Fix is the diff for one issue.
type Fix struct {
	// Index is the issue's position in the result, starting at 1.
	Index   int
	Issue   review.Issue
	Diff    string
	Added   int
	Removed int
}

// Collect builds a fix for every issue with both a current and a fixed
// snippet that differ.
func Collect(list []review.Issue) []Fix {
	var out []Fix
	for i, iss := range list {
		if iss.CodeSnippet == "" || iss.FixedSnippet == "" || iss.CodeSnippet == iss.FixedSnippet {
			continue
		}
		f := Fix{Index: i + 1, Issue: iss}
		f.Diff, f.Added, f.Removed = unified(fmt.Sprintf("issue-%d", i+1), iss.CodeSnippet, iss.FixedSnippet)
		out = append(out, f)
	}
	return out
}

func unified(name, before, after string) (string, int, int) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before+"\n", after+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var body strings.Builder
	var added, removed, context int
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			body.WriteString(prefix + line + "\n")
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				added++
			case diffmatchpatch.DiffDelete:
				removed++
			default:
				context++
			}
		}
	}

	var out strings.Builder
	fmt.Fprintf(&out, "--- a/%s\n+++ b/%s\n", name, name)
	fmt.Fprintf(&out, "@@ -1,%d +1,%d @@\n", context+removed, context+added)
	out.WriteString(body.String())
	return out.String(), added, removed
}

// WriteFile writes all fix diffs to path. If there are no fixes, no file is
// created.
func WriteFile(fixes []Fix, path string) error {
	if len(fixes) == 0 {
		return nil
	}
	var b strings.Builder
	for _, f := range fixes {
		fmt.Fprintf(&b, "# %s: %s\n", f.Issue.Severity, f.Issue.Message)
		b.WriteString(f.Diff)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("fixes.WriteFile: %w", err)
	}
	return nil
}
