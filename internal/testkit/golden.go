package testkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// UpdateEnv is the environment variable that makes Golden rewrite files.
const UpdateEnv = "CDOC_UPDATE_GOLDEN"

// Diff returns a unified diff between want and got, or "" when equal.
func Diff(want, got, wantName, gotName string) string {
	if want == got {
		return ""
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: wantName,
		ToFile:   gotName,
		Context:  3,
	})
	if err != nil {
		return err.Error()
	}
	return text
}

// Golden compares got with the content of path. With CDOC_UPDATE_GOLDEN=1
// the file is rewritten instead.
func Golden(tb testing.TB, path, got string) {
	tb.Helper()
	if os.Getenv(UpdateEnv) == "1" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			tb.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(got), 0o600); err != nil {
			tb.Fatalf("update golden %s: %v", path, err)
		}
		return
	}
	want, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read golden %s: %v", path, err)
	}
	if d := Diff(string(want), got, path, "got"); d != "" {
		tb.Errorf("golden mismatch (%s=1 to update):\n%s", UpdateEnv, d)
	}
}

// ReadFile reads a testdata file as a string or fails the test.
func ReadFile(tb testing.TB, path string) string {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
