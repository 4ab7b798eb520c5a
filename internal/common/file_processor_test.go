package common

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cvoptimera/internal/errors"
)

func TestFileProcessorReadFile(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)

	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	content := "Anna Svensson\nanna@example.com\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	fp := NewFileProcessor(logger)

	t.Run("reads existing file", func(t *testing.T) {
		got, err := fp.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if got != content {
			t.Errorf("ReadFile() = %q, want %q", got, content)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := fp.ReadFile(filepath.Join(dir, "saknas.txt"))
		if err == nil {
			t.Fatal("Expected error for missing file")
		}
		if code := errors.CodeOf(err); code != errors.ErrCodeFileNotFound {
			t.Errorf("Expected FILE_NOT_FOUND, got %s", code)
		}
	})
}

func TestFileProcessorSizeLimit(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)

	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 2048)), 0600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	t.Run("over the limit", func(t *testing.T) {
		fp := NewFileProcessorWithLimit(logger, 1024)
		_, err := fp.ReadFile(path)
		if err == nil {
			t.Fatal("Expected error for oversized file")
		}
		if code := errors.CodeOf(err); code != "FILE_TOO_LARGE" {
			t.Errorf("Expected FILE_TOO_LARGE, got %s", code)
		}
	})

	t.Run("under the limit", func(t *testing.T) {
		fp := NewFileProcessorWithLimit(logger, 4096)
		if _, err := fp.ReadFile(path); err != nil {
			t.Errorf("ReadFile failed: %v", err)
		}
	})

	t.Run("zero limit disables the check", func(t *testing.T) {
		fp := NewFileProcessorWithLimit(logger, 0)
		if _, err := fp.ReadFile(path); err != nil {
			t.Errorf("ReadFile failed: %v", err)
		}
	})
}

func TestFileProcessorWriteFile(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)
	fp := NewFileProcessor(logger)

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.json")

	if err := fp.WriteFile(path, `{"success": true}`); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read back: %v", err)
	}
	if string(got) != `{"success": true}` {
		t.Errorf("Unexpected content: %q", got)
	}
}
