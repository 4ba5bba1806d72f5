package profile

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError represents a specific validation failure in a profile.
type ValidationError struct {
	// Field is the profile field that failed validation (e.g., "ejection.standoff").
	Field string

	// Message describes what's wrong with the field value.
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("profile validation error: %s: %s", e.Field, e.Message)
}

// Validate checks that the profile can drive the pipeline. It returns a
// list of validation errors (empty list = valid profile).
//
// Checks performed:
//   - extension starts with "." and is not just the dot
//   - sentinels are non-empty and pairwise distinct
//   - sentinels contain no line terminator (LineEnding supplies it)
//   - lineEnding is "\n" or "\r\n"
//   - ignoredLayers is not negative
//   - motionPrefix and axis are exactly one character
//   - suffix is non-empty, so outputs never overwrite their inputs
//   - the standoff template contains the placeholder
func (p Profile) Validate() []ValidationError {
	var errs []ValidationError
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if !strings.HasPrefix(p.Extension, ".") || len(p.Extension) < 2 {
		add("extension", fmt.Sprintf("must start with \".\" and name a suffix, got %q", p.Extension))
	}

	sentinels := []struct{ field, value string }{
		{"printStart", p.PrintStart},
		{"printEnd", p.PrintEnd},
		{"layerChange", p.LayerChange},
	}
	seen := make(map[string]string)
	for _, s := range sentinels {
		if s.value == "" {
			add(s.field, "must not be empty")
			continue
		}
		if strings.ContainsAny(s.value, "\r\n") {
			add(s.field, "must not contain a line terminator; set lineEnding instead")
		}
		if other, ok := seen[s.value]; ok {
			add(s.field, fmt.Sprintf("must differ from %s", other))
		}
		seen[s.value] = s.field
	}

	if p.LineEnding != "\n" && p.LineEnding != "\r\n" {
		add("lineEnding", fmt.Sprintf("must be \"\\n\" or \"\\r\\n\", got %q", p.LineEnding))
	}
	if p.IgnoredLayers < 0 {
		add("ignoredLayers", fmt.Sprintf("must not be negative, got %d", p.IgnoredLayers))
	}
	if utf8.RuneCountInString(p.MotionPrefix) != 1 {
		add("motionPrefix", fmt.Sprintf("must be a single character, got %q", p.MotionPrefix))
	}
	if utf8.RuneCountInString(p.Axis) != 1 {
		add("axis", fmt.Sprintf("must be a single letter, got %q", p.Axis))
	}
	if p.Suffix == "" {
		add("suffix", "must not be empty")
	}
	if p.Placeholder == "" {
		add("placeholder", "must not be empty")
	} else if !strings.Contains(p.Ejection.Standoff, p.Placeholder) {
		add("ejection.standoff", fmt.Sprintf("must contain the placeholder %q", p.Placeholder))
	}

	return errs
}
