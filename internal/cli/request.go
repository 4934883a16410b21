package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"clipmerge/internal/config"
	"clipmerge/internal/plan"
	"clipmerge/pkg/mergelist"
)

// requestFlags holds the flags shared by the merge and plan commands.
type requestFlags struct {
	list       string
	trims      []string
	transition string
	audio      string
	watermark  string
	format     string
	quality    string
	output     string
}

func addRequestFlags(cmd *cobra.Command, f *requestFlags) {
	cmd.Flags().StringVar(&f.list, "list", "", "Merge list YAML file (alternative to positional clips)")
	cmd.Flags().StringArrayVar(&f.trims, "trim", nil, `Trim for the clip at the same position, as "start:end" (either side may be empty; repeat flag)`)
	cmd.Flags().StringVar(&f.transition, "transition", "", "Transition between clips: none, fade, crossfade")
	cmd.Flags().StringVar(&f.audio, "audio", "", "Audio policy: keep_all, keep_first, mute_all")
	cmd.Flags().StringVar(&f.watermark, "watermark", "", "Watermark text drawn on the output")
	cmd.Flags().StringVar(&f.format, "format", "", "Output container: mp4, webm, mkv")
	cmd.Flags().StringVar(&f.quality, "quality", "", "Encode quality: low, medium, high")
	cmd.Flags().StringVar(&f.output, "out", "", "Output file path")
}

// mergeRequest is everything the compiler and engine need, assembled from
// config, an optional merge list, and command flags. Flags win over the
// list; the list wins over config defaults.
type mergeRequest struct {
	Clips      []plan.ClipSpec
	Opts       plan.Options
	Encode     plan.EncodeParams
	OutputName string
}

func buildRequest(cmd *cobra.Command, args []string, f requestFlags, cfg config.Config) (mergeRequest, error) {
	var req mergeRequest

	listed := f.list != ""
	if listed && len(args) > 0 {
		return req, fmt.Errorf("pass clips positionally or via --list, not both")
	}

	var ml mergelist.List
	if listed {
		var err error
		ml, err = mergelist.Load(f.list)
		if err != nil {
			return req, fmt.Errorf("load merge list: %w", err)
		}
		for _, clip := range ml.Clips {
			req.Clips = append(req.Clips, plan.ClipSpec{Path: clip.Path, Start: clip.Start, End: clip.End})
		}
	} else {
		if len(args) == 0 {
			return req, fmt.Errorf("no clips given; pass file paths or --list")
		}
		if len(f.trims) > len(args) {
			return req, fmt.Errorf("%d --trim flags for %d clips", len(f.trims), len(args))
		}
		for i, path := range args {
			spec := plan.ClipSpec{Path: path}
			if i < len(f.trims) {
				start, end, err := parseTrimFlag(f.trims[i])
				if err != nil {
					return req, fmt.Errorf("--trim %q: %w", f.trims[i], err)
				}
				spec.Start, spec.End = start, end
			}
			req.Clips = append(req.Clips, spec)
		}
	}

	pick := func(flagName, flagValue, listValue string) string {
		if cmd.Flags().Changed(flagName) {
			return flagValue
		}
		return listValue
	}

	req.Opts = cfg.PlanOptions()

	transition, err := plan.ParseTransition(pick("transition", f.transition, ml.Transition))
	if err != nil {
		return req, err
	}
	req.Opts.Transition = transition

	policy, err := plan.ParseAudioPolicy(pick("audio", f.audio, ml.Audio))
	if err != nil {
		return req, err
	}
	req.Opts.AudioPolicy = policy

	req.Opts.Watermark = pick("watermark", f.watermark, ml.Watermark)

	formatName := pick("format", f.format, ml.Format)
	if formatName == "" {
		formatName = cfg.Output.Format
	}
	format, err := plan.ParseFormat(formatName)
	if err != nil {
		return req, err
	}

	qualityName := pick("quality", f.quality, ml.Quality)
	if qualityName == "" {
		qualityName = cfg.Output.Quality
	}
	quality, err := plan.ParseQuality(qualityName)
	if err != nil {
		return req, err
	}

	req.Encode = plan.EncodeParamsFor(format, quality)
	req.OutputName = pick("out", f.output, ml.Output)

	return req, nil
}

// parseTrimFlag splits a "start:end" trim value. Either side may be empty.
func parseTrimFlag(value string) (start, end string, err error) {
	before, after, found := strings.Cut(value, ":")
	if !found {
		return "", "", fmt.Errorf("expected start:end")
	}
	return strings.TrimSpace(before), strings.TrimSpace(after), nil
}
