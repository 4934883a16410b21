// Package engine executes a compiled merge plan with ffmpeg. The plan is
// opaque to it beyond the input list, the serialized filter graph, and the
// final output labels.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"clipmerge/internal/plan"
	"clipmerge/internal/run"
)

// Error wraps an ffmpeg execution failure. Engine failures are opaque to
// the compiler; they are reported as-is and never retried here.
type Error struct {
	LogPath string
	Err     error
}

func (e *Error) Error() string {
	if e.LogPath != "" {
		return fmt.Sprintf("engine: %v (see %s)", e.Err, e.LogPath)
	}
	return fmt.Sprintf("engine: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Engine runs merge plans. LogsDir receives one ffmpeg log per job.
type Engine struct {
	FFmpegPath string
	Runner     run.Runner
	LogsDir    string

	stdout io.Writer
}

// New returns an engine bound to the given ffmpeg binary.
func New(ffmpegPath, logsDir string, runner run.Runner) *Engine {
	if runner == nil {
		runner = run.CmdRunner{}
	}
	return &Engine{FFmpegPath: ffmpegPath, Runner: runner, LogsDir: logsDir}
}

// SetStdout configures an optional writer for human-readable notes.
func (e *Engine) SetStdout(w io.Writer) {
	e.stdout = w
}

// Options controls a single execution.
type Options struct {
	OutputPath string
	Encode     plan.EncodeParams
	// OnProgress receives progress updates during execution. Completion of
	// Execute, not the last reported percentage, signals success.
	OnProgress func(Progress)
}

// Execute runs the plan and returns the output path. The ffmpeg stderr log
// lands in LogsDir under a per-job name.
func (e *Engine) Execute(ctx context.Context, p *plan.MergePlan, opts Options) (string, error) {
	if p == nil {
		return "", &Error{Err: errors.New("nil plan")}
	}
	if strings.TrimSpace(opts.OutputPath) == "" {
		return "", &Error{Err: errors.New("output path is empty")}
	}

	args := BuildArgs(p, opts)

	if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755); err != nil {
		return "", &Error{Err: fmt.Errorf("prepare output dir: %w", err)}
	}

	logPath := filepath.Join(e.LogsDir, "merge_"+uuid.NewString()+".log")
	if err := os.MkdirAll(e.LogsDir, 0o755); err != nil {
		return "", &Error{Err: fmt.Errorf("prepare logs dir: %w", err)}
	}
	logFile, err := os.Create(logPath)
	if err != nil {
		return "", &Error{Err: fmt.Errorf("open log file: %w", err)}
	}
	defer logFile.Close()

	e.printf("merging %d clip(s) -> %s\n", len(p.Inputs), filepath.Base(opts.OutputPath))

	runOpts := run.Options{Stderr: logFile}
	if opts.OnProgress != nil {
		runOpts.Stdout = newProgressWriter(p.OutputSeconds, opts.OnProgress)
	}

	if _, err := e.Runner.Run(ctx, e.FFmpegPath, args, runOpts); err != nil {
		_ = os.Remove(opts.OutputPath)
		return "", &Error{LogPath: logPath, Err: err}
	}

	return opts.OutputPath, nil
}

// BuildArgs assembles the full ffmpeg argument list for a plan. The filter
// graph is serialized exactly once, here at the engine boundary.
func BuildArgs(p *plan.MergePlan, opts Options) []string {
	args := []string{
		"-hide_banner",
		"-y",
	}

	for _, input := range p.Inputs {
		args = append(args, "-i", input)
	}

	args = append(args,
		"-filter_complex", p.FilterComplex(),
		"-map", "["+p.FinalVideo+"]",
		"-map", "["+p.FinalAudio+"]",
	)

	enc := opts.Encode
	if enc.VideoCodec != "" {
		args = append(args, "-c:v", enc.VideoCodec)
	}
	if enc.CRF > 0 {
		args = append(args, "-crf", strconv.Itoa(enc.CRF))
		// libvpx-vp9 interprets -crf as constrained quality unless the
		// bitrate cap is zeroed out.
		if enc.VideoCodec == "libvpx-vp9" {
			args = append(args, "-b:v", "0")
		}
	}
	if enc.Preset != "" && enc.VideoCodec == "libx264" {
		args = append(args, "-preset", enc.Preset)
	}
	if enc.AudioCodec != "" {
		args = append(args, "-c:a", enc.AudioCodec)
	}
	if enc.AudioBitrate != "" {
		args = append(args, "-b:a", enc.AudioBitrate)
	}
	if p.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(p.SampleRate))
	}
	args = append(args, "-r", strconv.Itoa(p.FPS))
	if enc.FastStart {
		args = append(args, "-movflags", "+faststart")
	}

	args = append(args,
		"-progress", "pipe:1",
		"-nostats",
		opts.OutputPath,
	)

	return args
}

func (e *Engine) printf(format string, args ...any) {
	if e == nil || e.stdout == nil {
		return
	}
	fmt.Fprintf(e.stdout, format, args...)
}
