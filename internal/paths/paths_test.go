package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveUsesFlag(t *testing.T) {
	dir := t.TempDir()
	p, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if p.Root != dir {
		t.Fatalf("Root = %q; want %q", p.Root, dir)
	}
	if p.ConfigFile != filepath.Join(dir, "clipmerge.yaml") {
		t.Fatalf("ConfigFile = %q", p.ConfigFile)
	}
	if p.LogsDir != filepath.Join(dir, "logs") {
		t.Fatalf("LogsDir = %q", p.LogsDir)
	}
}

func TestEnsureDirs(t *testing.T) {
	root := filepath.Join(t.TempDir(), "work")
	p, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if err := p.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs error: %v", err)
	}
	info, err := os.Stat(p.LogsDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("logs dir not created: %v", err)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if ok, err := FileExists(file); err != nil || !ok {
		t.Fatalf("FileExists(file) = %v, %v", ok, err)
	}
	if ok, err := FileExists(filepath.Join(dir, "missing.mp4")); err != nil || ok {
		t.Fatalf("FileExists(missing) = %v, %v", ok, err)
	}
	if ok, err := FileExists(dir); err != nil || ok {
		t.Fatalf("FileExists(dir) = %v, %v", ok, err)
	}
}
