package gcode

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shinji-kodama/gcode-ejector/internal/profile"
)

// Sampler extracts one axis coordinate from the motion commands of a Region.
type Sampler struct {
	prefix        string
	ignoredLayers int
	pattern       *regexp.Regexp
}

// NewSampler builds a Sampler for the profile's motion prefix, axis and
// ignored-layer count.
//
// Only "<axis><digits>.<digits>" is recognised. Integer-only ("X10") and
// exponent forms never match and are skipped.
func NewSampler(p profile.Profile) *Sampler {
	return &Sampler{
		prefix:        p.MotionPrefix,
		ignoredLayers: p.IgnoredLayers,
		pattern:       regexp.MustCompile(regexp.QuoteMeta(p.Axis) + `(\d+\.\d+)`),
	}
}

// Sample returns the coordinates of eligible lines in line order. The result
// is empty (nil) when nothing matched.
func (s *Sampler) Sample(r Region) []float64 {
	var samples []float64
	for layer, line := range r.Layers() {
		if layer <= s.ignoredLayers || !strings.HasPrefix(line, s.prefix) {
			continue
		}
		if v, ok := s.Coordinate(line); ok {
			samples = append(samples, v)
		}
	}
	return samples
}

// Coordinate parses the first axis coordinate found in line.
func (s *Sampler) Coordinate(line string) (float64, bool) {
	m := s.pattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
