package plan

import (
	"fmt"
	"strconv"
)

// normalizeStreams appends the per-clip video and audio chains for clip i.
// Every clip leaves here with labels v{i}/a{i} carrying identical geometry,
// frame rate, pixel format, sample rate, sample format, and channel layout;
// the downstream join rejects mismatched streams, so the normalization
// chain is mandatory on every path, including synthesized silence.
func normalizeStreams(g *Graph, i int, trim EffectiveTrim, probe ClipProbe, opts Options) error {
	if err := normalizeVideo(g, i, trim, opts); err != nil {
		return err
	}
	return normalizeAudio(g, i, trim, probe, opts)
}

func normalizeVideo(g *Graph, i int, trim EffectiveTrim, opts Options) error {
	cur := strconv.Itoa(i) + ":v"
	var err error

	if trim.NeedsTrim {
		args := fmt.Sprintf("start=%s:end=%s", formatSeconds(trim.Start), formatSeconds(trim.End))
		if cur, err = g.Add(KindVideoTransform, "trim", args, []string{cur}, ""); err != nil {
			return err
		}
		if cur, err = g.Add(KindVideoTransform, "setpts", "PTS-STARTPTS", []string{cur}, ""); err != nil {
			return err
		}
	}

	scaleArgs := fmt.Sprintf("w=%d:h=%d:force_original_aspect_ratio=decrease:flags=lanczos", opts.Width, opts.Height)
	if cur, err = g.Add(KindVideoTransform, "scale", scaleArgs, []string{cur}, ""); err != nil {
		return err
	}

	padArgs := fmt.Sprintf("w=%d:h=%d:x=(ow-iw)/2:y=(oh-ih)/2:color=%s", opts.Width, opts.Height, opts.PadColor)
	if cur, err = g.Add(KindVideoTransform, "pad", padArgs, []string{cur}, ""); err != nil {
		return err
	}

	if cur, err = g.Add(KindVideoTransform, "setsar", "1", []string{cur}, ""); err != nil {
		return err
	}
	if cur, err = g.Add(KindVideoTransform, "fps", strconv.Itoa(opts.FPS), []string{cur}, ""); err != nil {
		return err
	}
	_, err = g.Add(KindVideoTransform, "format", "pix_fmts="+opts.PixelFormat, []string{cur}, videoLabel(i))
	return err
}

func normalizeAudio(g *Graph, i int, trim EffectiveTrim, probe ClipProbe, opts Options) error {
	if silenceRequired(i, probe, opts.AudioPolicy) {
		return synthesizeSilence(g, i, trim, opts)
	}

	cur := strconv.Itoa(i) + ":a"
	var err error

	if trim.NeedsTrim {
		args := fmt.Sprintf("start=%s:end=%s", formatSeconds(trim.Start), formatSeconds(trim.End))
		if cur, err = g.Add(KindAudioTransform, "atrim", args, []string{cur}, ""); err != nil {
			return err
		}
		if cur, err = g.Add(KindAudioTransform, "asetpts", "PTS-STARTPTS", []string{cur}, ""); err != nil {
			return err
		}
	}

	return appendAudioFormat(g, cur, audioLabel(i), opts)
}

func silenceRequired(i int, probe ClipProbe, policy AudioPolicy) bool {
	switch policy {
	case AudioMuteAll:
		return true
	case AudioKeepFirst:
		return i > 0 || !probe.HasAudio
	default:
		return !probe.HasAudio
	}
}

func synthesizeSilence(g *Graph, i int, trim EffectiveTrim, opts Options) error {
	srcArgs := fmt.Sprintf("channel_layout=%s:sample_rate=%d", opts.ChannelLayout, opts.SampleRate)
	cur, err := g.Add(KindSilenceSource, "anullsrc", srcArgs, nil, "")
	if err != nil {
		return err
	}

	// Silence must match the clip's effective duration exactly.
	cur, err = g.Add(KindAudioTransform, "atrim", "end="+formatSeconds(trim.Duration()), []string{cur}, "")
	if err != nil {
		return err
	}

	return appendAudioFormat(g, cur, audioLabel(i), opts)
}

// appendAudioFormat emits the mandatory resample + format chain that pins
// every audio stream to the target rate, sample format, and layout.
func appendAudioFormat(g *Graph, cur, output string, opts Options) error {
	cur, err := g.Add(KindAudioTransform, "aresample", strconv.Itoa(opts.SampleRate), []string{cur}, "")
	if err != nil {
		return err
	}
	args := fmt.Sprintf("sample_fmts=%s:channel_layouts=%s", opts.SampleFormat, opts.ChannelLayout)
	_, err = g.Add(KindAudioTransform, "aformat", args, []string{cur}, output)
	return err
}

func videoLabel(i int) string {
	return "v" + strconv.Itoa(i)
}

func audioLabel(i int) string {
	return "a" + strconv.Itoa(i)
}
