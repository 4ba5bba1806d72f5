package gcode

import (
	"errors"
	"iter"

	"github.com/shinji-kodama/gcode-ejector/internal/profile"
)

// ErrStartNotFound is returned when no line equals the start-of-print sentinel.
var ErrStartNotFound = errors.New("start-of-print marker not found")

// Region is a read-only view of the print body: it starts at the
// start-of-print line and is bounded by the first end-of-print line.
// The underlying slice is shared with the caller and never modified.
type Region struct {
	lines     []string
	start     int
	endLine   string
	layerLine string
}

// FindRegion locates the first line exactly equal to the profile's start
// sentinel.
func FindRegion(lines []string, p profile.Profile) (Region, error) {
	startLine := p.StartLine()
	for i, line := range lines {
		if line == startLine {
			return Region{
				lines:     lines,
				start:     i,
				endLine:   p.EndLine(),
				layerLine: p.LayerLine(),
			}, nil
		}
	}
	return Region{}, ErrStartNotFound
}

// Start returns the index of the start-of-print line in the original slice.
func (r Region) Start() int {
	return r.start
}

// Layers yields (layer, line) for every line from the start sentinel up to,
// but excluding, the first end sentinel. The layer counter starts at 1 and
// is incremented on a layer-change line before that line is yielded.
// The sequence can be ranged over any number of times.
func (r Region) Layers() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		layer := 1
		for _, line := range r.lines[r.start:] {
			if line == r.endLine {
				return
			}
			if line == r.layerLine {
				layer++
			}
			if !yield(layer, line) {
				return
			}
		}
	}
}
