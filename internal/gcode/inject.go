package gcode

import "github.com/shinji-kodama/gcode-ejector/internal/profile"

// EjectionBlock renders the profile's ejection templates for the given mean
// coordinate, each line terminated with the profile's line ending.
func EjectionBlock(mean float64, p profile.Profile) []string {
	coord := FormatCoordinate(mean)
	templates := p.Ejection.Templates()
	block := make([]string, len(templates))
	for i, tmpl := range templates {
		block[i] = p.Render(tmpl, coord)
	}
	return block
}

// Inject returns a copy of lines with the ejection block inserted right after
// every line equal to the end-of-print sentinel, and the number of blocks
// inserted. lines itself is not modified.
func Inject(lines []string, mean float64, p profile.Profile) ([]string, int) {
	endLine := p.EndLine()
	block := EjectionBlock(mean, p)

	out := make([]string, 0, len(lines)+len(block))
	injected := 0
	for _, line := range lines {
		out = append(out, line)
		if line == endLine {
			out = append(out, block...)
			injected++
		}
	}
	return out, injected
}
