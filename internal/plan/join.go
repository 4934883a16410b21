package plan

import (
	"fmt"
	"math"
	"strconv"
)

const (
	finalVideoLabel = "outv"
	finalAudioLabel = "outa"
)

// joinResult names the joined output pair and its nominal duration.
type joinResult struct {
	Video   string
	Audio   string
	Seconds float64
}

// joinStreams combines the normalized per-clip pairs using the configured
// transition. A single clip passes through untouched; its normalized labels
// become the final pair with no join node at all.
func joinStreams(g *Graph, trims []EffectiveTrim, opts Options) (joinResult, error) {
	n := len(trims)
	if n == 0 {
		return joinResult{}, ErrEmptyMerge
	}
	if n == 1 {
		return joinResult{
			Video:   videoLabel(0),
			Audio:   audioLabel(0),
			Seconds: trims[0].Duration(),
		}, nil
	}

	switch opts.Transition {
	case TransitionFade:
		return joinWithFades(g, trims, opts)
	case TransitionCrossfade:
		return joinCrossfade(g, trims, opts)
	default:
		return concatPairs(g, pairLabels(n), sumDurations(trims))
	}
}

// concatPairs emits one concat node consuming the given video/audio pairs
// in clip order.
func concatPairs(g *Graph, pairs []string, seconds float64) (joinResult, error) {
	args := fmt.Sprintf("n=%d:v=1:a=1", len(pairs)/2)
	outputs, err := g.AddMulti(KindJoiner, "concat", args, pairs, []string{finalVideoLabel, finalAudioLabel})
	if err != nil {
		return joinResult{}, err
	}
	return joinResult{Video: outputs[0], Audio: outputs[1], Seconds: seconds}, nil
}

// joinWithFades applies in-place boundary fades and then concatenates.
// Fades disguise the cuts without overlapping them, so the total duration
// is the plain sum of the effective clip durations.
func joinWithFades(g *Graph, trims []EffectiveTrim, opts Options) (joinResult, error) {
	n := len(trims)
	fade := opts.FadeSeconds
	pairs := make([]string, 0, n*2)

	for i, trim := range trims {
		video := videoLabel(i)
		audio := audioLabel(i)
		duration := trim.Duration()

		if i > 0 {
			args := "t=in:st=0:d=" + formatSeconds(fade)
			var err error
			if video, err = g.Add(KindVideoTransform, "fade", args, []string{video}, ""); err != nil {
				return joinResult{}, err
			}
			if audio, err = g.Add(KindAudioTransform, "afade", args, []string{audio}, ""); err != nil {
				return joinResult{}, err
			}
		}
		if i < n-1 {
			start := math.Max(0, duration-fade)
			args := fmt.Sprintf("t=out:st=%s:d=%s", formatSeconds(start), formatSeconds(fade))
			var err error
			if video, err = g.Add(KindVideoTransform, "fade", args, []string{video}, ""); err != nil {
				return joinResult{}, err
			}
			if audio, err = g.Add(KindAudioTransform, "afade", args, []string{audio}, ""); err != nil {
				return joinResult{}, err
			}
		}

		pairs = append(pairs, video, audio)
	}

	return concatPairs(g, pairs, sumDurations(trims))
}

// joinCrossfade folds the clips into a chain of blend nodes with true
// temporal overlap. Each step blends the running pair with the next clip at
// offset max(0, cumulative - X), so the output is (n-1)*X seconds shorter
// than a plain concatenation.
func joinCrossfade(g *Graph, trims []EffectiveTrim, opts Options) (joinResult, error) {
	n := len(trims)
	overlap := opts.CrossfadeSeconds

	video := videoLabel(0)
	audio := audioLabel(0)
	cumulative := trims[0].Duration()

	for i := 1; i < n; i++ {
		offset := math.Max(0, cumulative-overlap)

		outVideo := "xv" + strconv.Itoa(i)
		outAudio := "xa" + strconv.Itoa(i)
		if i == n-1 {
			outVideo = finalVideoLabel
			outAudio = finalAudioLabel
		}

		videoArgs := fmt.Sprintf("transition=dissolve:duration=%s:offset=%s",
			formatSeconds(overlap), formatSeconds(offset))
		next, err := g.Add(KindJoiner, "xfade", videoArgs, []string{video, videoLabel(i)}, outVideo)
		if err != nil {
			return joinResult{}, err
		}
		video = next

		audioArgs := fmt.Sprintf("d=%s:c1=tri:c2=tri", formatSeconds(overlap))
		next, err = g.Add(KindJoiner, "acrossfade", audioArgs, []string{audio, audioLabel(i)}, outAudio)
		if err != nil {
			return joinResult{}, err
		}
		audio = next

		cumulative = offset + trims[i].Duration()
	}

	return joinResult{Video: video, Audio: audio, Seconds: cumulative}, nil
}

func pairLabels(n int) []string {
	pairs := make([]string, 0, n*2)
	for i := 0; i < n; i++ {
		pairs = append(pairs, videoLabel(i), audioLabel(i))
	}
	return pairs
}

func sumDurations(trims []EffectiveTrim) float64 {
	total := 0.0
	for _, t := range trims {
		total += t.Duration()
	}
	return total
}
