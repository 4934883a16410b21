package engine

import (
	"bytes"
	"strconv"
	"strings"
)

// Progress is a snapshot of an in-flight merge. Percent is bound to the
// plan's nominal output duration and never decreases across callbacks.
type Progress struct {
	Percent     float64
	OutTime     float64
	Speed       float64
	FPS         float64
	TotalOutput float64
}

// progressWriter parses ffmpeg -progress pipe:1 output (key=value lines)
// as it streams in, invoking the callback on every out_time update.
type progressWriter struct {
	total float64
	fn    func(Progress)

	buf     bytes.Buffer
	current Progress
}

func newProgressWriter(totalSeconds float64, fn func(Progress)) *progressWriter {
	if fn == nil {
		return nil
	}
	return &progressWriter{total: totalSeconds, fn: fn, current: Progress{TotalOutput: totalSeconds}}
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Partial line; keep it for the next Write.
			w.buf.WriteString(line)
			return len(p), nil
		}
		w.parseLine(strings.TrimSpace(line))
	}
}

func (w *progressWriter) parseLine(line string) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return
	}
	value = strings.TrimSpace(value)

	switch key {
	case "out_time_us", "out_time_ms":
		// ffmpeg reports microseconds under both keys.
		if us, err := strconv.ParseInt(value, 10, 64); err == nil {
			w.updateOutTime(float64(us) / 1e6)
		}
	case "out_time":
		if seconds, ok := parseClockTime(value); ok {
			w.updateOutTime(seconds)
		}
	case "speed":
		if v, err := strconv.ParseFloat(strings.TrimSuffix(value, "x"), 64); err == nil {
			w.current.Speed = v
		}
	case "fps":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			w.current.FPS = v
		}
	case "progress":
		if value == "end" {
			w.current.Percent = 100
			w.fn(w.current)
		}
	}
}

func (w *progressWriter) updateOutTime(seconds float64) {
	if seconds < w.current.OutTime {
		return
	}
	w.current.OutTime = seconds

	if w.total > 0 {
		percent := seconds / w.total * 100
		if percent > 100 {
			percent = 100
		}
		// Monotonically non-decreasing.
		if percent > w.current.Percent {
			w.current.Percent = percent
		}
	}

	w.fn(w.current)
}

// parseClockTime converts ffmpeg's HH:MM:SS.micro clock format to seconds.
func parseClockTime(value string) (float64, bool) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, false
	}
	hours, err1 := strconv.ParseFloat(parts[0], 64)
	minutes, err2 := strconv.ParseFloat(parts[1], 64)
	seconds, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return hours*3600 + minutes*60 + seconds, true
}
