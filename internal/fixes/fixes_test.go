package fixes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maverickalo/check-my-code/internal/review"
)

func sampleIssues() []review.Issue {
	return []review.Issue{
		{Severity: "high", Message: "XSS", CodeSnippet: "el.innerHTML = name", FixedSnippet: "el.textContent = name"},
		{Severity: "low", Message: "no fix", CodeSnippet: "var x = 1"},
		{Severity: "low", Message: "only fix", FixedSnippet: "let x = 1"},
		{Severity: "medium", Message: "same", CodeSnippet: "a()", FixedSnippet: "a()"},
		{
			Severity:     "medium",
			Message:      "loop query",
			CodeSnippet:  "for (const id of ids) {\n  await db.get(id)\n}",
			FixedSnippet: "const rows = await db.getMany(ids)\nfor (const row of rows) {\n}",
		},
	}
}

func TestCollect(t *testing.T) {
	fixes := Collect(sampleIssues())
	if len(fixes) != 2 {
		t.Fatalf("got %d fixes, want 2", len(fixes))
	}
	if fixes[0].Index != 1 || fixes[1].Index != 5 {
		t.Errorf("indexes = %d, %d, want 1, 5", fixes[0].Index, fixes[1].Index)
	}

	want := "--- a/issue-1\n+++ b/issue-1\n@@ -1,1 +1,1 @@\n-el.innerHTML = name\n+el.textContent = name\n"
	if fixes[0].Diff != want {
		t.Errorf("diff =\n%s\nwant\n%s", fixes[0].Diff, want)
	}
	if fixes[0].Added != 1 || fixes[0].Removed != 1 {
		t.Errorf("added/removed = %d/%d", fixes[0].Added, fixes[0].Removed)
	}
}

func TestCollectKeepsContextLines(t *testing.T) {
	f := Collect(sampleIssues())[1]
	if !strings.Contains(f.Diff, "+const rows = await db.getMany(ids)\n") {
		t.Errorf("missing insertion:\n%s", f.Diff)
	}
	if !strings.Contains(f.Diff, "-  await db.get(id)\n") {
		t.Errorf("missing deletion:\n%s", f.Diff)
	}
	if !strings.Contains(f.Diff, " }\n") {
		t.Errorf("missing context line:\n%s", f.Diff)
	}
	if !strings.Contains(f.Diff, "@@ -1,3 +1,3 @@") {
		t.Errorf("unexpected hunk header:\n%s", f.Diff)
	}
}

func TestCollectNone(t *testing.T) {
	if got := Collect(nil); len(got) != 0 {
		t.Errorf("got %d fixes", len(got))
	}
}

func TestWriteFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "fixes.diff")
	if err := WriteFile(Collect(sampleIssues()), out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "# high: XSS\n--- a/issue-1") || !strings.Contains(content, "+++ b/issue-5") {
		t.Errorf("unexpected content:\n%s", content)
	}
}

func TestWriteFileEmpty(t *testing.T) {
	out := filepath.Join(t.TempDir(), "fixes.diff")
	if err := WriteFile(nil, out); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("no file should be created when there are no fixes")
	}
}
