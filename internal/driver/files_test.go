package driver

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestCollectInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "c.md"), "c")
	writeFile(t, filepath.Join(dir, ".hidden", "b.txt"), "b")
	writeFile(t, filepath.Join(dir, "sub", "d.cdoc"), "d")
	explicit := filepath.Join(dir, "c.md")

	got, err := CollectInputs([]string{dir, explicit, filepath.Join(dir, "a.txt")}, []string{".txt", ".cdoc"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "c.md"),
		filepath.Join(dir, "sub", "d.cdoc"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCollectInputsMissing(t *testing.T) {
	if _, err := CollectInputs([]string{filepath.Join(t.TempDir(), "nope")}, []string{".txt"}); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestOutputPath(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name  string
		input string
		base  string
		want  string
	}{
		{"nested", filepath.Join(root, "sub", "x.txt"), root, filepath.Join("out", "sub", "x.md")},
		{"no base", filepath.Join(root, "sub", "x.txt"), "", filepath.Join("out", "x.md")},
		{"outside base", filepath.Join(root, "x.txt"), filepath.Join(root, "sub"), filepath.Join("out", "x.md")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OutputPath(tt.input, tt.base, "out", ".md")
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
