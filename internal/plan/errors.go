package plan

import (
	"errors"
	"fmt"
)

// ErrEmptyMerge is returned when a merge request contains no clips.
var ErrEmptyMerge = errors.New("merge requires at least one clip")

// InvalidRangeError reports a trim window that resolved to an empty or
// inverted interval for a specific clip.
type InvalidRangeError struct {
	Clip     int
	Start    float64
	End      float64
	Duration float64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("clip %d: trim window [%s, %s) is empty (clip duration %s)",
		e.Clip, formatSeconds(e.Start), formatSeconds(e.End), formatSeconds(e.Duration))
}

// UnknownLabelError reports a node input that references a label no earlier
// node produced. Compilation constructs graphs in topological order, so this
// surfaces programming mistakes rather than bad user input.
type UnknownLabelError struct {
	Node  string
	Label string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("node %s references unknown label %q", e.Node, e.Label)
}
