package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeLines(t *testing.T, n int) (string, []string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")

	var content strings.Builder
	var all []string
	for i := 1; i <= n; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		all = append(all, line)
	}
	if err := os.WriteFile(path, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}
	return path, all
}

func TestRead(t *testing.T) {
	logPath, expectedAll := writeLines(t, 10)

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "zero", maxLines: 0, expected: nil},
		{name: "negative", maxLines: -1, expected: nil},
		{name: "partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 5)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestLoad_Preview(t *testing.T) {
	path, all := writeLines(t, 30)

	p, err := Load(path, PreviewLines)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(p.Lines, all[10:]) {
		t.Fatalf("Lines = %v, want last 20", p.Lines)
	}
	info, _ := os.Stat(path)
	if p.Size != info.Size() {
		t.Fatalf("Size = %d, want %d", p.Size, info.Size())
	}
	if p.HumanSize() != fmt.Sprintf("%d B", info.Size()) {
		t.Fatalf("HumanSize = %q", p.HumanSize())
	}
}

func TestLoad_MissingAndDirectoryFail(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "nope.log"), PreviewLines); err == nil {
		t.Fatalf("Load(missing) returned nil error")
	}
	if _, err := Load(dir, PreviewLines); err == nil {
		t.Fatalf("Load(dir) returned nil error")
	}
}

func TestHumanSize(t *testing.T) {
	if got := (Preview{Size: 1_500_000}).HumanSize(); got != "1.5 MB" {
		t.Fatalf("HumanSize = %q, want 1.5 MB", got)
	}
}
