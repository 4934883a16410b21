package plan

import (
	"strconv"
	"strings"
)

// ResolveTrim clamps a clip's requested trim window against its probed
// duration. A missing, empty, or non-numeric request is treated as absent.
// The resolved window must be non-empty; an empty or inverted window fails
// with InvalidRangeError so the caller rejects the clip instead of emitting
// a degenerate segment.
func ResolveTrim(clip int, spec ClipSpec, probe ClipProbe) (EffectiveTrim, error) {
	duration := probe.Duration

	start := 0.0
	if v, ok := parseSeconds(spec.Start); ok {
		start = v
	}
	if start < 0 {
		start = 0
	}

	end := duration
	if v, ok := parseSeconds(spec.End); ok && v > 0 {
		end = v
	}
	if end > duration {
		end = duration
	}

	if end <= start {
		return EffectiveTrim{}, &InvalidRangeError{
			Clip:     clip,
			Start:    start,
			End:      end,
			Duration: duration,
		}
	}

	// Exact comparison: a requested window equal to the full clip skips the
	// trim node entirely.
	return EffectiveTrim{
		Start:     start,
		End:       end,
		NeedsTrim: start > 0 || end < duration,
	}, nil
}

func parseSeconds(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
