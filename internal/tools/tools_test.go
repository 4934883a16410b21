package tools

import (
	"strings"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{
			name:   "ffmpeg release",
			output: "ffmpeg version 6.1.1 Copyright (c) 2000-2023 the FFmpeg developers\nbuilt with gcc 13",
			want:   "6.1.1",
		},
		{
			name:   "ffprobe release",
			output: "ffprobe version 6.1.1 Copyright (c) 2007-2023 the FFmpeg developers",
			want:   "6.1.1",
		},
		{
			name:   "git snapshot",
			output: "ffmpeg version n7.0-29-g1234abcd Copyright (c) 2000-2024 the FFmpeg developers",
			want:   "n7.0-29-g1234abcd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.output)
			if err != nil {
				t.Fatalf("ParseVersion() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseVersionRejectsGarbage(t *testing.T) {
	_, err := ParseVersion("command not found")
	if err == nil {
		t.Fatal("expected error for unrecognized output")
	}
	if !strings.Contains(err.Error(), "unrecognized version output") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestKnownTools(t *testing.T) {
	names := KnownTools()
	if len(names) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(names))
	}
	if names[0] != "ffmpeg" || names[1] != "ffprobe" {
		t.Fatalf("unexpected tool list: %v", names)
	}
}
