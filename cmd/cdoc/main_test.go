package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cdoc/internal/project"
)

// execute runs the CLI in-process. Flags keep their values between runs, so
// every test passes the flags it depends on explicitly.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func newProject(t *testing.T, files map[string]string) (dir, config string) {
	t.Helper()
	dir = t.TempDir()
	config, err := project.WriteDefault(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	for name, body := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir, config
}

func TestCheckReportsFatalErrors(t *testing.T) {
	dir, config := newProject(t, map[string]string{
		"a.txt": "Intro.\n@param[in] x The x.\n",
		"b.txt": "@note\n",
	})
	out, err := execute(t, "", "check", "--quiet", "--config", config, "--format", "short", dir)
	var exitErr *exitCodeError
	if !errors.As(err, &exitErr) || exitErr.code != 1 {
		t.Fatalf("expected exit status 1, got %v", err)
	}
	if !strings.Contains(out, "DOC1004") || !strings.Contains(out, "b.txt") {
		t.Fatalf("missing diagnostic in output:\n%s", out)
	}
	if strings.Contains(out, "a.txt") {
		t.Fatalf("clean file reported:\n%s", out)
	}
}

func TestRenderWritesFiles(t *testing.T) {
	dir, config := newProject(t, map[string]string{
		"a.txt":     "Intro.\n@brief Short.\n",
		"sub/b.txt": "@return The value.\n",
	})
	out := filepath.Join(dir, "site")
	if _, err := execute(t, "", "render", "--quiet", "--ui", "off", "--no-cache", "--config", config, "--out", out, dir); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(out, "sub", "b.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# Return value\n\nThe value.\n\n" {
		t.Fatalf("unexpected rendered text %q", data)
	}
	if _, err := os.Stat(filepath.Join(out, "a.md")); err != nil {
		t.Fatal(err)
	}
}

func TestRenderStdin(t *testing.T) {
	_, config := newProject(t, nil)
	out, err := execute(t, "@see #foo\n", "render", "--quiet", "--no-cache", "--config", config, "-")
	if err != nil {
		t.Fatal(err)
	}
	if out != "See: foo\n\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEventsJSONFromStdin(t *testing.T) {
	_, config := newProject(t, nil)
	out, err := execute(t, "Text.\n@param[inout] buf\n", "events", "--quiet", "--config", config, "--format", "json", "-")
	if err != nil {
		t.Fatal(err)
	}
	var dump struct {
		Events []struct {
			Kind string `json:"kind"`
		} `json:"events"`
	}
	if err := json.Unmarshal([]byte(out), &dump); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(dump.Events) != 2 || dump.Events[0].Kind != "description" || dump.Events[1].Kind != "attr" {
		t.Fatalf("unexpected events %+v", dump.Events)
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "", "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatal(err)
	}
	if info["version"] == "" || info["go_version"] == "" {
		t.Fatalf("incomplete version info %v", info)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "", "init", "--quiet", dir); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "", "init", "--quiet", dir); err == nil {
		t.Fatal("second init must fail without --force")
	}
	if _, err := execute(t, "", "init", "--quiet", "--force", dir); err != nil {
		t.Fatal(err)
	}
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"ON", uiModeOn, false},
		{" off ", uiModeOff, false},
		{"maybe", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
}
