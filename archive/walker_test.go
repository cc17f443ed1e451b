package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func createTestZip(t *testing.T, names map[string]string) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "test.zip")

	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	w := zip.NewWriter(zipFile)
	for name, content := range names {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", name, err)
		}
	}
	w.Close()
	zipFile.Close()
	return zipPath
}

func TestWalk(t *testing.T) {
	zipPath := createTestZip(t, map[string]string{
		"docs/one.html":  "one",
		"docs/two.html":  "two",
		"misc/other.txt": "other",
		"root.html":      "root",
	})

	t.Run("prefix match", func(t *testing.T) {
		var visited []string
		err := Walk(zipPath, "docs/", func(archive string, file *zip.File) error {
			if archive != zipPath {
				t.Errorf("archive = %s, want %s", archive, zipPath)
			}
			visited = append(visited, file.Name)
			return nil
		})
		if err != nil {
			t.Errorf("Walk() error = %v", err)
		}
		if len(visited) != 2 {
			t.Errorf("visited %d files, want 2", len(visited))
		}
	})

	t.Run("empty prefix visits everything", func(t *testing.T) {
		count := 0
		if err := Walk(zipPath, "", func(string, *zip.File) error {
			count++
			return nil
		}); err != nil {
			t.Errorf("Walk() error = %v", err)
		}
		if count != 4 {
			t.Errorf("visited %d files, want 4", count)
		}
	})

	t.Run("no match", func(t *testing.T) {
		count := 0
		if err := Walk(zipPath, "absent/", func(string, *zip.File) error {
			count++
			return nil
		}); err != nil {
			t.Errorf("Walk() error = %v", err)
		}
		if count != 0 {
			t.Errorf("visited %d files, want 0", count)
		}
	})

	t.Run("callback error stops walk", func(t *testing.T) {
		wantErr := errors.New("stop")
		count := 0
		err := Walk(zipPath, "", func(string, *zip.File) error {
			count++
			return wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Errorf("Walk() error = %v, want %v", err, wantErr)
		}
		if count != 1 {
			t.Errorf("callback called %d times after error, want 1", count)
		}
	})
}

func TestWalk_MissingArchive(t *testing.T) {
	if err := Walk("/nonexistent/archive.zip", "", func(string, *zip.File) error {
		return nil
	}); err == nil {
		t.Error("Expected error for missing archive")
	}
}

func TestWalk_RejectsUnsafePaths(t *testing.T) {
	zipPath := createTestZip(t, map[string]string{
		"../escape.html": "bad",
	})
	err := Walk(zipPath, "", func(string, *zip.File) error { return nil })
	if err == nil {
		t.Fatal("Expected error for path traversal entry")
	}
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		safe bool
	}{
		{"docs/file.html", true},
		{"file.html", true},
		{"/etc/passwd", false},
		{`\windows\path`, false},
		{"a/../../b", false},
		{"..", false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.safe {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.safe)
		}
	}
}
