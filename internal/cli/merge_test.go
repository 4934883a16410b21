package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"clipmerge/internal/paths"
	"clipmerge/internal/plan"
)

func TestResolveOutputPathDefaultName(t *testing.T) {
	pp := paths.WorkPaths{Root: "/work"}

	tests := []struct {
		format plan.Format
		want   string
	}{
		{plan.FormatMP4, filepath.Join("/work", "merged.mp4")},
		{plan.FormatWebM, filepath.Join("/work", "merged.webm")},
		{plan.FormatMKV, filepath.Join("/work", "merged.mkv")},
	}

	for _, tt := range tests {
		req := mergeRequest{Encode: plan.EncodeParamsFor(tt.format, plan.QualityMedium)}
		got := resolveOutputPath(pp, req)
		if got != tt.want {
			t.Errorf("resolveOutputPath(%s) = %q, want %q", tt.format, got, tt.want)
		}
		if strings.Contains(got, "..") {
			t.Errorf("default output path contains a double dot: %q", got)
		}
	}
}

func TestResolveOutputPathRelativeName(t *testing.T) {
	pp := paths.WorkPaths{Root: "/work"}
	req := mergeRequest{
		OutputName: "show.mp4",
		Encode:     plan.EncodeParamsFor(plan.FormatMP4, plan.QualityMedium),
	}

	if got, want := resolveOutputPath(pp, req), filepath.Join("/work", "show.mp4"); got != want {
		t.Errorf("resolveOutputPath() = %q, want %q", got, want)
	}
}

func TestResolveOutputPathAbsoluteName(t *testing.T) {
	pp := paths.WorkPaths{Root: "/work"}
	req := mergeRequest{
		OutputName: "/elsewhere/final.mp4",
		Encode:     plan.EncodeParamsFor(plan.FormatMP4, plan.QualityMedium),
	}

	if got := resolveOutputPath(pp, req); got != "/elsewhere/final.mp4" {
		t.Errorf("resolveOutputPath() = %q, want absolute name unchanged", got)
	}
}
