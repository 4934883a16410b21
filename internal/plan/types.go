package plan

import (
	"fmt"
	"strings"
)

// ClipSpec describes one input clip in merge order. Start and End are
// optional trim offsets in seconds; an empty or non-numeric value means
// "use the clip's natural boundary".
type ClipSpec struct {
	Path  string
	Start string
	End   string
}

// ClipProbe is the probed metadata the compiler needs per clip.
type ClipProbe struct {
	Duration float64
	HasAudio bool
}

// EffectiveTrim is the clamped [Start, End) window actually applied to a
// clip. NeedsTrim reports whether a trim operation is structurally
// required, i.e. the window differs from the full clip.
type EffectiveTrim struct {
	Start     float64
	End       float64
	NeedsTrim bool
}

// Duration returns the length of the effective window in seconds.
func (t EffectiveTrim) Duration() float64 {
	return t.End - t.Start
}

// Transition selects how normalized clip streams are joined.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionFade
	TransitionCrossfade
)

// ParseTransition maps a user-supplied name to a Transition.
func ParseTransition(value string) (Transition, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none", "cut":
		return TransitionNone, nil
	case "fade":
		return TransitionFade, nil
	case "crossfade", "dissolve":
		return TransitionCrossfade, nil
	default:
		return TransitionNone, fmt.Errorf("unknown transition %q", value)
	}
}

func (t Transition) String() string {
	switch t {
	case TransitionNone:
		return "none"
	case TransitionFade:
		return "fade"
	case TransitionCrossfade:
		return "crossfade"
	default:
		return fmt.Sprintf("transition(%d)", int(t))
	}
}

// AudioPolicy decides which clips contribute real audio to the merge.
type AudioPolicy int

const (
	// AudioKeepAll keeps every clip's audio, synthesizing silence only for
	// clips that have no audio stream.
	AudioKeepAll AudioPolicy = iota
	// AudioMuteAll sends every clip down the silence path.
	AudioMuteAll
	// AudioKeepFirst keeps clip 0's audio and silences the rest.
	AudioKeepFirst
)

// ParseAudioPolicy maps a user-supplied name to an AudioPolicy.
func ParseAudioPolicy(value string) (AudioPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "keep_all", "keep-all", "all":
		return AudioKeepAll, nil
	case "mute_all", "mute-all", "mute":
		return AudioMuteAll, nil
	case "keep_first", "keep-first", "first":
		return AudioKeepFirst, nil
	default:
		return AudioKeepAll, fmt.Errorf("unknown audio policy %q", value)
	}
}

func (p AudioPolicy) String() string {
	switch p {
	case AudioKeepAll:
		return "keep_all"
	case AudioMuteAll:
		return "mute_all"
	case AudioKeepFirst:
		return "keep_first"
	default:
		return fmt.Sprintf("audio(%d)", int(p))
	}
}

// Options holds the target stream parameters and merge behaviour for a
// compilation. Zero fields fall back to the defaults in withDefaults.
type Options struct {
	Width  int
	Height int
	FPS    int

	PixelFormat   string
	PadColor      string
	SampleRate    int
	SampleFormat  string
	ChannelLayout string

	Transition  Transition
	AudioPolicy AudioPolicy
	Watermark   string

	// FadeSeconds is the boundary fade length for TransitionFade.
	FadeSeconds float64
	// CrossfadeSeconds is the overlap length for TransitionCrossfade.
	CrossfadeSeconds float64
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 1920
	}
	if o.Height <= 0 {
		o.Height = 1080
	}
	if o.FPS <= 0 {
		o.FPS = 30
	}
	if o.PixelFormat == "" {
		o.PixelFormat = "yuv420p"
	}
	if o.PadColor == "" {
		o.PadColor = "black"
	}
	if o.SampleRate <= 0 {
		o.SampleRate = 44100
	}
	if o.SampleFormat == "" {
		o.SampleFormat = "fltp"
	}
	if o.ChannelLayout == "" {
		o.ChannelLayout = "stereo"
	}
	if o.FadeSeconds <= 0 {
		o.FadeSeconds = 0.5
	}
	if o.CrossfadeSeconds <= 0 {
		o.CrossfadeSeconds = 1.0
	}
	return o
}

// MergePlan is the compiled processing graph plus the stream parameters it
// was built against. It is a closed program: every label a node consumes is
// produced by an earlier node or is a raw input stream.
type MergePlan struct {
	Inputs []string
	Trims  []EffectiveTrim

	Width         int
	Height        int
	FPS           int
	PixelFormat   string
	SampleRate    int
	SampleFormat  string
	ChannelLayout string

	Nodes      []Node
	FinalVideo string
	FinalAudio string

	// OutputSeconds is the nominal output duration; crossfades shorten it
	// relative to the sum of effective clip durations.
	OutputSeconds float64
}

// FilterComplex serializes the node list to an ffmpeg filter_complex
// program. Serialization happens only here, at the engine boundary.
func (p *MergePlan) FilterComplex() string {
	return serializeNodes(p.Nodes)
}
