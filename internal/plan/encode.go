package plan

import (
	"fmt"
	"strings"
)

// Quality selects the encoder quality tier.
type Quality int

const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
)

// ParseQuality maps a user-supplied name to a Quality.
func ParseQuality(value string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "medium":
		return QualityMedium, nil
	case "low":
		return QualityLow, nil
	case "high":
		return QualityHigh, nil
	default:
		return QualityMedium, fmt.Errorf("unknown quality %q", value)
	}
}

func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	default:
		return fmt.Sprintf("quality(%d)", int(q))
	}
}

// Format selects the output container.
type Format int

const (
	FormatMP4 Format = iota
	FormatWebM
	FormatMKV
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "mp4":
		return FormatMP4, nil
	case "webm":
		return FormatWebM, nil
	case "mkv", "matroska":
		return FormatMKV, nil
	default:
		return FormatMP4, fmt.Errorf("unknown format %q", value)
	}
}

func (f Format) String() string {
	switch f {
	case FormatMP4:
		return "mp4"
	case FormatWebM:
		return "webm"
	case FormatMKV:
		return "mkv"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// EncodeParams are the encoder settings handed to the engine alongside the
// compiled plan.
type EncodeParams struct {
	VideoCodec   string
	AudioCodec   string
	CRF          int
	Preset       string
	AudioBitrate string
	Extension    string
	FastStart    bool
}

// EncodeParamsFor resolves the encoder settings for a format and quality
// tier. Out-of-range values get the MP4/medium defaults; parsing already
// rejected unknown names.
func EncodeParamsFor(format Format, quality Quality) EncodeParams {
	params := EncodeParams{}

	switch format {
	case FormatWebM:
		params.VideoCodec = "libvpx-vp9"
		params.AudioCodec = "libopus"
		params.Extension = ".webm"
	case FormatMKV:
		params.VideoCodec = "libx264"
		params.AudioCodec = "aac"
		params.Extension = ".mkv"
	case FormatMP4:
		fallthrough
	default:
		params.VideoCodec = "libx264"
		params.AudioCodec = "aac"
		params.Extension = ".mp4"
		params.FastStart = true
	}

	switch quality {
	case QualityLow:
		params.CRF = 28
		params.Preset = "veryfast"
		params.AudioBitrate = "96k"
	case QualityHigh:
		params.CRF = 18
		params.Preset = "slow"
		params.AudioBitrate = "256k"
	case QualityMedium:
		fallthrough
	default:
		params.CRF = 23
		params.Preset = "medium"
		params.AudioBitrate = "192k"
	}

	return params
}
