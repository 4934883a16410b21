package plan

import "fmt"

// Compile turns an ordered clip list, its probe results, and the merge
// options into a MergePlan. It is a pure function: no I/O, no shared state.
// Compilation is all-or-nothing; the first invalid clip aborts it.
func Compile(clips []ClipSpec, probes []ClipProbe, opts Options) (*MergePlan, error) {
	if len(clips) == 0 {
		return nil, ErrEmptyMerge
	}
	if len(probes) != len(clips) {
		return nil, fmt.Errorf("probe count %d does not match clip count %d", len(probes), len(clips))
	}
	opts = opts.withDefaults()

	trims := make([]EffectiveTrim, len(clips))
	for i, clip := range clips {
		trim, err := ResolveTrim(i, clip, probes[i])
		if err != nil {
			return nil, err
		}
		trims[i] = trim
	}

	g := NewGraph(len(clips))

	for i := range clips {
		if err := normalizeStreams(g, i, trims[i], probes[i], opts); err != nil {
			return nil, err
		}
	}

	joined, err := joinStreams(g, trims, opts)
	if err != nil {
		return nil, err
	}

	video, err := applyWatermark(g, joined.Video, opts.Watermark)
	if err != nil {
		return nil, err
	}

	inputs := make([]string, len(clips))
	for i, clip := range clips {
		inputs[i] = clip.Path
	}

	return &MergePlan{
		Inputs:        inputs,
		Trims:         trims,
		Width:         opts.Width,
		Height:        opts.Height,
		FPS:           opts.FPS,
		PixelFormat:   opts.PixelFormat,
		SampleRate:    opts.SampleRate,
		SampleFormat:  opts.SampleFormat,
		ChannelLayout: opts.ChannelLayout,
		Nodes:         g.Nodes(),
		FinalVideo:    video,
		FinalAudio:    joined.Audio,
		OutputSeconds: joined.Seconds,
	}, nil
}
