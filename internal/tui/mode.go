package tui

import (
	"io"
	"os"
	"runtime"
	"strings"
)

// OutputMode describes how progress output should be rendered.
type OutputMode int

const (
	// ModeTUI uses bubbletea for interactive progress rendering.
	ModeTUI OutputMode = iota
	// ModePlain writes line-oriented output suitable for pipes and logs.
	ModePlain
	// ModeJSON writes structured JSON output.
	ModeJSON
)

// DetectMode picks the output mode for a writer. JSON wins over everything;
// the interactive mode requires an actual character-device terminal with a
// usable TERM.
func DetectMode(out io.Writer, noProgress, jsonOutput bool) OutputMode {
	if jsonOutput {
		return ModeJSON
	}
	if noProgress || !isTerminal(out) {
		return ModePlain
	}
	return ModeTUI
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	term := os.Getenv("TERM")
	return term != "" && !strings.EqualFold(term, "dumb")
}
