package osfilesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSystem_WriteAndReadFile(t *testing.T) {
	fs := New()
	testPath := filepath.Join(t.TempDir(), "input.txt")
	testData := []byte("file '/a.png'\nduration 2.0\n")

	if err := fs.WriteFile(testPath, testData); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fs.ReadFile(testPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != string(testData) {
		t.Errorf("expected %q, got %q", testData, data)
	}
}

func TestFileSystem_WriteFileLeavesNoTempFiles(t *testing.T) {
	fs := New()
	dir := t.TempDir()

	if err := fs.WriteFile(filepath.Join(dir, "list.txt"), []byte("a")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := fs.WriteFile(filepath.Join(dir, "list.txt"), []byte("b")); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	names, err := fs.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(names) != 1 || names[0] != "list.txt" {
		t.Errorf("expected only list.txt, got %v", names)
	}
}

func TestFileSystem_WriteFileCreatesParentDirs(t *testing.T) {
	fs := New()
	testPath := filepath.Join(t.TempDir(), "a", "b", "c", "test.txt")

	if err := fs.WriteFile(testPath, []byte("test")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	exists, err := fs.Exists(testPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}
}

func TestFileSystem_Exists(t *testing.T) {
	fs := New()
	dir := t.TempDir()
	testPath := filepath.Join(dir, "test.txt")
	os.WriteFile(testPath, []byte("test"), 0644)

	tests := []struct {
		path string
		want bool
	}{
		{testPath, true},
		{dir, true},
		{filepath.Join(dir, "nonexistent.txt"), false},
	}
	for _, tt := range tests {
		got, err := fs.Exists(tt.path)
		if err != nil {
			t.Fatalf("Exists(%s) failed: %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("Exists(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFileSystem_RemoveAndRemoveAll(t *testing.T) {
	fs := New()
	dir := t.TempDir()

	file := filepath.Join(dir, "test.txt")
	os.WriteFile(file, []byte("test"), 0644)
	if err := fs.Remove(file); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if exists, _ := fs.Exists(file); exists {
		t.Error("expected file to be removed")
	}

	job := filepath.Join(dir, "SequenceStitch_job")
	os.MkdirAll(filepath.Join(job, "nested"), 0755)
	os.WriteFile(filepath.Join(job, "nested", "frame.png"), []byte("x"), 0644)
	if err := fs.RemoveAll(job); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	if exists, _ := fs.Exists(job); exists {
		t.Error("expected directory tree to be removed")
	}
}

func TestFileSystem_ReadDirSortedFilesOnly(t *testing.T) {
	fs := New()
	dir := t.TempDir()
	for _, name := range []string{"frame_00003.png", "frame_00001.png", "frame_00002.png"} {
		os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644)
	}
	os.Mkdir(filepath.Join(dir, "subdir"), 0755)

	names, err := fs.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if got := strings.Join(names, ","); got != "frame_00001.png,frame_00002.png,frame_00003.png" {
		t.Errorf("unexpected listing %s", got)
	}
}

func TestFileSystem_Size(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "video.mp4")
	os.WriteFile(path, make([]byte, 1234), 0644)

	size, err := fs.Size(path)
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if size != 1234 {
		t.Errorf("expected 1234, got %d", size)
	}

	if _, err := fs.Size(path + ".missing"); err == nil {
		t.Error("expected error for missing file")
	}
}
