// Package mergelist loads declarative merge list files. A merge list names
// the clips to join in order, optional trim points per clip, and the
// transition and output settings for the whole merge. It is deliberately
// free of any planning logic so other tools can reuse the format.
package mergelist

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Clip is one entry in a merge list. Start and End are kept as strings so
// an absent value is distinguishable from zero.
type Clip struct {
	Path  string `yaml:"path"`
	Start string `yaml:"start,omitempty"`
	End   string `yaml:"end,omitempty"`
}

// List is a parsed merge list file.
type List struct {
	Clips      []Clip `yaml:"clips"`
	Transition string `yaml:"transition,omitempty"`
	Audio      string `yaml:"audio,omitempty"`
	Watermark  string `yaml:"watermark,omitempty"`
	Output     string `yaml:"output,omitempty"`
	Format     string `yaml:"format,omitempty"`
	Quality    string `yaml:"quality,omitempty"`
}

var (
	knownTransitions = []string{"none", "fade", "crossfade"}
	knownPolicies    = []string{"keep_all", "keep_first", "mute_all"}
)

// Load reads a merge list file and validates it. When validation issues are
// found, the returned error is of type ValidationErrors and the parsed list
// is still returned so callers can report all problems at once.
func Load(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return List{}, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return List{}, errors.New("merge list is empty")
	}

	var list List
	if err := yaml.Unmarshal(data, &list); err != nil {
		return List{}, fmt.Errorf("parse YAML: %w", err)
	}

	if errs := list.validate(); len(errs) > 0 {
		return list, errs
	}
	return list, nil
}

func (l List) validate() ValidationErrors {
	var errs ValidationErrors

	if len(l.Clips) == 0 {
		errs = append(errs, ValidationError{Message: "at least one clip is required"})
		return errs
	}

	for i, clip := range l.Clips {
		num := i + 1
		if strings.TrimSpace(clip.Path) == "" {
			errs = append(errs, ValidationError{Clip: num, Field: "path", Message: "path is required"})
		}
		start, startErr := validateSeconds(clip.Start)
		if startErr != nil {
			errs = append(errs, ValidationError{Clip: num, Field: "start", Message: startErr.Error()})
		}
		end, endErr := validateSeconds(clip.End)
		if endErr != nil {
			errs = append(errs, ValidationError{Clip: num, Field: "end", Message: endErr.Error()})
		}
		if startErr == nil && endErr == nil && start >= 0 && end >= 0 && end <= start {
			errs = append(errs, ValidationError{Clip: num, Field: "end", Message: "end must be greater than start"})
		}
	}

	if l.Transition != "" && !contains(knownTransitions, l.Transition) {
		errs = append(errs, ValidationError{
			Field:   "transition",
			Message: fmt.Sprintf("unknown transition %q (expected one of %s)", l.Transition, strings.Join(knownTransitions, ", ")),
		})
	}
	if l.Audio != "" && !contains(knownPolicies, l.Audio) {
		errs = append(errs, ValidationError{
			Field:   "audio",
			Message: fmt.Sprintf("unknown audio policy %q (expected one of %s)", l.Audio, strings.Join(knownPolicies, ", ")),
		})
	}

	return errs
}

// validateSeconds checks an optional seconds field. It returns -1 when the
// field is absent.
func validateSeconds(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return -1, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return -1, errors.New("must be a number of seconds")
	}
	if v < 0 {
		return -1, errors.New("must not be negative")
	}
	return v, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
