package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "clipmerge.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Video.Width != 1920 || cfg.Video.Height != 1080 || cfg.Video.FPS != 30 {
		t.Fatalf("video defaults = %+v", cfg.Video)
	}
	if cfg.Audio.SampleRate != 44100 || cfg.Audio.ChannelLayout != "stereo" {
		t.Fatalf("audio defaults = %+v", cfg.Audio)
	}
	if cfg.Transitions.CrossfadeSeconds != 1.0 {
		t.Fatalf("crossfade default = %v", cfg.Transitions.CrossfadeSeconds)
	}
}

func TestLoadAppliesPartialOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipmerge.yaml")
	contents := []byte("video:\n  width: 1280\n  height: 720\ntransitions:\n  crossfade_s: 2.5\n")
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Video.Width != 1280 || cfg.Video.Height != 720 {
		t.Fatalf("canvas = %dx%d; want 1280x720", cfg.Video.Width, cfg.Video.Height)
	}
	if cfg.Video.FPS != 30 {
		t.Fatalf("fps should fall back to default, got %d", cfg.Video.FPS)
	}
	if cfg.Transitions.CrossfadeSeconds != 2.5 {
		t.Fatalf("crossfade = %v; want 2.5", cfg.Transitions.CrossfadeSeconds)
	}
	if cfg.Transitions.FadeSeconds != 0.5 {
		t.Fatalf("fade should fall back to default, got %v", cfg.Transitions.FadeSeconds)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipmerge.yaml")
	if err := os.WriteFile(path, []byte("video: [not a map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected malformed YAML to fail")
	}
}

func TestPlanOptions(t *testing.T) {
	cfg := Default()
	cfg.Video.Width = 640
	cfg.Audio.SampleRate = 48000

	opts := cfg.PlanOptions()
	if opts.Width != 640 || opts.SampleRate != 48000 {
		t.Fatalf("PlanOptions = %+v", opts)
	}
	if opts.PixelFormat != "yuv420p" || opts.ChannelLayout != "stereo" {
		t.Fatalf("PlanOptions normalization = %+v", opts)
	}
}

func TestEncodeParams(t *testing.T) {
	cfg := Default()
	params, err := cfg.EncodeParams()
	if err != nil {
		t.Fatalf("EncodeParams error: %v", err)
	}
	if params.VideoCodec != "libx264" || params.Extension != ".mp4" {
		t.Fatalf("EncodeParams = %+v", params)
	}

	cfg.Output.Format = "avi"
	if _, err := cfg.EncodeParams(); err == nil {
		t.Fatal("expected unknown format to fail")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	buf, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "clipmerge.yaml")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded != cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}
