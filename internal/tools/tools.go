// Package tools locates the external ffmpeg and ffprobe binaries and reads
// their versions. Both must be present on PATH; nothing is installed.
package tools

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"clipmerge/internal/run"
)

// KnownTools lists the binaries the merge pipeline depends on.
func KnownTools() []string {
	return []string{"ffmpeg", "ffprobe"}
}

// Status describes one located tool.
type Status struct {
	Tool    string `json:"tool"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Lookup resolves a tool on PATH.
func Lookup(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("locate %s: %w", name, err)
	}
	return path, nil
}

// Detect reports the status of every known tool.
func Detect(ctx context.Context, runner run.Runner) []Status {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}
	if runner == nil {
		runner = run.CmdRunner{}
	}

	var statuses []Status
	for _, name := range KnownTools() {
		status := Status{Tool: name}
		path, err := Lookup(name)
		if err != nil {
			status.Error = err.Error()
			statuses = append(statuses, status)
			continue
		}
		status.Path = path

		version, err := readVersion(ctx, runner, path)
		if err != nil {
			status.Error = err.Error()
		} else {
			status.Version = version
		}
		statuses = append(statuses, status)
	}
	return statuses
}

var versionPattern = regexp.MustCompile(`^ff\w+ version (\S+)`)

func readVersion(ctx context.Context, runner run.Runner, path string) (string, error) {
	result, err := runner.Run(ctx, path, []string{"-version"}, run.Options{})
	if err != nil {
		return "", fmt.Errorf("read version: %w", err)
	}
	return ParseVersion(string(result.Stdout))
}

// ParseVersion extracts the version token from ffmpeg/ffprobe -version
// output.
func ParseVersion(output string) (string, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	m := versionPattern.FindStringSubmatch(line)
	if m == nil {
		return "", fmt.Errorf("unrecognized version output %q", line)
	}
	return m[1], nil
}
