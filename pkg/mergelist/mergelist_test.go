package mergelist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "merge.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	return path
}

func TestLoadValidList(t *testing.T) {
	path := writeList(t, `
clips:
  - path: intro.mp4
  - path: talk.mp4
    start: "3"
    end: "8.5"
transition: crossfade
audio: keep_first
watermark: My Channel
output: merged.mp4
format: webm
quality: high
`)

	list, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(list.Clips) != 2 {
		t.Fatalf("expected 2 clips, got %d", len(list.Clips))
	}
	if list.Clips[1].Start != "3" || list.Clips[1].End != "8.5" {
		t.Errorf("unexpected trim fields: %+v", list.Clips[1])
	}
	if list.Transition != "crossfade" {
		t.Errorf("expected transition crossfade, got %q", list.Transition)
	}
	if list.Audio != "keep_first" {
		t.Errorf("expected audio keep_first, got %q", list.Audio)
	}
	if list.Output != "merged.mp4" || list.Format != "webm" || list.Quality != "high" {
		t.Errorf("unexpected output settings: %+v", list)
	}
}

func TestLoadCollectsAllIssues(t *testing.T) {
	path := writeList(t, `
clips:
  - path: ""
    start: abc
  - path: ok.mp4
    start: "5"
    end: "5"
transition: wipe
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	issues := errs.Issues()
	if len(issues) != 4 {
		t.Fatalf("expected 4 issues, got %d: %v", len(issues), errs)
	}

	msg := errs.Error()
	for _, want := range []string{
		"clip 1 path path is required",
		"clip 1 start must be a number of seconds",
		"clip 2 end end must be greater than start",
		`unknown transition "wipe"`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected error to mention %q, got %q", want, msg)
		}
	}
}

func TestLoadRejectsNegativeSeconds(t *testing.T) {
	path := writeList(t, `
clips:
  - path: a.mp4
    start: "-2"
`)

	_, err := Load(path)
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if !strings.Contains(errs.Error(), "must not be negative") {
		t.Errorf("unexpected message: %v", errs)
	}
}

func TestLoadRejectsUnknownAudioPolicy(t *testing.T) {
	path := writeList(t, `
clips:
  - path: a.mp4
audio: loudest
`)

	_, err := Load(path)
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if !strings.Contains(errs.Error(), `unknown audio policy "loudest"`) {
		t.Errorf("unexpected message: %v", errs)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeList(t, "")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "merge list is empty") {
		t.Fatalf("expected empty file error, got %v", err)
	}
}

func TestLoadNoClips(t *testing.T) {
	path := writeList(t, "transition: fade\n")
	_, err := Load(path)
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if !strings.Contains(errs.Error(), "at least one clip is required") {
		t.Errorf("unexpected message: %v", errs)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeList(t, "clips: [unclosed")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse YAML") {
		t.Fatalf("expected parse error, got %v", err)
	}
}
