package plan

import "strings"

const watermarkLabel = "wm"

// applyWatermark draws the watermark text over the joined video at a fixed
// bottom-right inset with a drop shadow for legibility. It returns the new
// video label; the audio path is never touched. An empty watermark returns
// the input label unchanged.
func applyWatermark(g *Graph, video, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return video, nil
	}

	// The text value stays unquoted. ffmpeg treats everything between
	// quotes literally and a quote cannot appear inside a quoted string,
	// so reserved characters are backslash-escaped instead.
	values := []string{
		"text=" + EscapeText(text),
		"fontsize=28",
		"fontcolor=white@0.85",
		"box=1",
		"boxcolor=black@0.4",
		"boxborderw=8",
		"shadowcolor=black@0.6",
		"shadowx=2",
		"shadowy=2",
		"x=w-text_w-24",
		"y=h-text_h-24",
	}

	return g.Add(KindOverlay, "drawtext", strings.Join(values, ":"), []string{video}, watermarkLabel)
}

// EscapeText escapes the characters the drawtext mini-language treats as
// syntax. A backslash followed by a reserved character is recognized as an
// already-escaped pair and left alone, so the function is idempotent.
func EscapeText(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '\\' {
			if i+1 < len(value) && reservedTextChar(value[i+1]) {
				b.WriteByte(c)
				b.WriteByte(value[i+1])
				i++
				continue
			}
			b.WriteString(`\\`)
			continue
		}
		if reservedTextChar(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}

	return b.String()
}

func reservedTextChar(c byte) bool {
	switch c {
	case '\'', ':', ',', ';', '[', ']', '\\', '%':
		return true
	}
	return false
}
