package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
)

func writeTree(t *testing.T, root string, files []string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte("test content"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	rel := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("Rel(%s): %v", p, err)
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

func TestScanFilesOrder(t *testing.T) {
	tmpDir := t.TempDir()

	// tmpDir/
	//   c.txt
	//   b.txt
	//   a/
	//     x.txt
	//     deep/
	//       y.txt
	//   z/
	//     w.txt
	writeTree(t, tmpDir, []string{
		"c.txt",
		"b.txt",
		"a/x.txt",
		"a/deep/y.txt",
		"z/w.txt",
	})

	result, err := ScanFiles(tmpDir)
	if err != nil {
		t.Fatalf("ScanFiles() error = %v", err)
	}

	want := []string{"b.txt", "c.txt", "a/x.txt", "a/deep/y.txt", "z/w.txt"}
	got := relPaths(t, tmpDir, result.Files)
	if len(got) != len(want) {
		t.Fatalf("ScanFiles() returned %d files %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected scan errors: %v", result.Errors)
	}
}

func TestScanFilesIgnoresSymlinks(t *testing.T) {
	tmpDir := t.TempDir()
	outside := t.TempDir()

	writeTree(t, tmpDir, []string{"real.txt", "sub/inner.txt"})
	writeTree(t, outside, []string{"elsewhere.txt"})

	if err := os.Symlink(filepath.Join(tmpDir, "real.txt"), filepath.Join(tmpDir, "link.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(outside, filepath.Join(tmpDir, "linkdir")); err != nil {
		t.Fatalf("failed to create dir symlink: %v", err)
	}

	result, err := ScanFiles(tmpDir)
	if err != nil {
		t.Fatalf("ScanFiles() error = %v", err)
	}

	got := relPaths(t, tmpDir, result.Files)
	want := []string{"real.txt", "sub/inner.txt"}
	if len(got) != len(want) {
		t.Fatalf("ScanFiles() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestScanFilesSkipsSpecialFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"plain.txt"})

	if err := syscall.Mkfifo(filepath.Join(tmpDir, "pipe"), 0644); err != nil {
		t.Skipf("mkfifo not supported: %v", err)
	}

	result, err := ScanFiles(tmpDir)
	if err != nil {
		t.Fatalf("ScanFiles() error = %v", err)
	}
	if len(result.Files) != 1 || filepath.Base(result.Files[0]) != "plain.txt" {
		t.Errorf("ScanFiles() = %v, want only plain.txt", result.Files)
	}
}

func TestScanFilesUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"ok.txt", "locked/hidden.txt", "open/visible.txt"})

	locked := filepath.Join(tmpDir, "locked")
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	result, err := ScanFiles(tmpDir)
	if err != nil {
		t.Fatalf("ScanFiles() error = %v", err)
	}

	got := relPaths(t, tmpDir, result.Files)
	want := []string{"ok.txt", "open/visible.txt"}
	if len(got) != len(want) {
		t.Fatalf("ScanFiles() = %v, want %v", got, want)
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 scan error, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestScanFilesInvalidRoot(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"file.txt"})

	tests := []struct {
		name    string
		root    string
		wantErr error
	}{
		{name: "missing directory", root: filepath.Join(tmpDir, "missing"), wantErr: os.ErrNotExist},
		{name: "file instead of directory", root: filepath.Join(tmpDir, "file.txt"), wantErr: ErrNotDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ScanFiles(tt.root)
			if err == nil {
				t.Fatal("ScanFiles() expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ScanFiles() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestScanFilesEmptyDirectory(t *testing.T) {
	result, err := ScanFiles(t.TempDir())
	if err != nil {
		t.Fatalf("ScanFiles() error = %v", err)
	}
	if len(result.Files) != 0 {
		t.Errorf("expected no files, got %v", result.Files)
	}
}
