// Package probe queries media metadata through ffprobe. The compiler treats
// probing as a pure read-only query: one result per clip, gathered before
// trim resolution starts.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"clipmerge/internal/run"
)

// Result is the metadata the merge compiler needs for one clip.
type Result struct {
	Path       string  `json:"path"`
	Duration   float64 `json:"duration_seconds"`
	HasAudio   bool    `json:"has_audio"`
	Width      int     `json:"width,omitempty"`
	Height     int     `json:"height,omitempty"`
	VideoCodec string  `json:"video_codec,omitempty"`
}

// Error reports an unreadable media handle. Any probe failure aborts the
// whole compilation; there is no partial-result path.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Prober runs ffprobe against media files.
type Prober struct {
	Runner      run.Runner
	FFprobePath string
}

// New returns a prober bound to the given ffprobe binary.
func New(ffprobePath string, runner run.Runner) *Prober {
	if runner == nil {
		runner = run.CmdRunner{}
	}
	return &Prober{Runner: runner, FFprobePath: ffprobePath}
}

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// Probe reads duration, audio presence, and video geometry for one file.
func (p *Prober) Probe(ctx context.Context, path string) (Result, error) {
	args := []string{
		"-v", "error",
		"-show_format",
		"-show_streams",
		"-print_format", "json",
		path,
	}

	result, runErr := p.Runner.Run(ctx, p.FFprobePath, args, run.Options{})
	if runErr != nil {
		if stderr := strings.TrimSpace(string(result.Stderr)); stderr != "" {
			return Result{}, &Error{Path: path, Err: fmt.Errorf("%w: %s", runErr, stderr)}
		}
		return Result{}, &Error{Path: path, Err: runErr}
	}
	if len(result.Stdout) == 0 {
		return Result{}, &Error{Path: path, Err: fmt.Errorf("ffprobe produced no output")}
	}

	var parsed ffprobeOutput
	if err := json.Unmarshal(result.Stdout, &parsed); err != nil {
		return Result{}, &Error{Path: path, Err: fmt.Errorf("decode ffprobe output: %w", err)}
	}

	out := Result{Path: path}
	if parsed.Format.Duration != "" {
		if v, err := strconv.ParseFloat(parsed.Format.Duration, 64); err == nil {
			out.Duration = v
		}
	}
	for _, stream := range parsed.Streams {
		switch stream.CodecType {
		case "audio":
			out.HasAudio = true
		case "video":
			if out.VideoCodec == "" {
				out.VideoCodec = stream.CodecName
				out.Width = stream.Width
				out.Height = stream.Height
			}
		}
	}

	if out.Duration <= 0 {
		return Result{}, &Error{Path: path, Err: fmt.Errorf("no duration reported")}
	}

	return out, nil
}

// ProbeAll probes every path, issuing up to concurrency queries at once.
// Results keep input order. The first failure wins; the remaining results
// are discarded because compilation is all-or-nothing.
func (p *Prober) ProbeAll(ctx context.Context, paths []string, concurrency int) ([]Result, error) {
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]Result, len(paths))
	errs := make([]error, len(paths))

	var (
		wg  sync.WaitGroup
		sem = make(chan struct{}, concurrency)
	)

	for i, path := range paths {
		i, path := i, path
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			results[i], errs[i] = p.Probe(ctx, path)
		}()
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
