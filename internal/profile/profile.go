package profile

import (
	"strconv"
	"strings"
)

const (
	// DefaultPlaceholder is the token replaced by the computed mean coordinate.
	DefaultPlaceholder = "•"

	// TempToken is replaced by CoolingTemp in every ejection template.
	TempToken = "{temp}"
)

// Profile describes one printer/slicer combination.
//
// Sentinel fields hold the line text WITHOUT its terminator; the matching
// helpers (StartLine, EndLine, LayerLine) append LineEnding so that
// comparisons stay exact, terminator included.
type Profile struct {
	// Extension is the file suffix of print files, including the dot.
	Extension string `yaml:"extension" json:"extension"`

	// PrintStart marks the first line of the region scanned for coordinates.
	PrintStart string `yaml:"printStart" json:"printStart"`

	// PrintEnd marks the end of the scanned region. The ejection block is
	// injected after every line equal to it.
	PrintEnd string `yaml:"printEnd" json:"printEnd"`

	// LayerChange marks the beginning of a new layer.
	LayerChange string `yaml:"layerChange" json:"layerChange"`

	// LineEnding terminates sentinel and injected lines.
	LineEnding string `yaml:"lineEnding" json:"lineEnding"`

	// IgnoredLayers is the number of leading layers (skirt, brim) excluded
	// from sampling.
	IgnoredLayers int `yaml:"ignoredLayers" json:"ignoredLayers"`

	// MotionPrefix is the single character a motion command starts with.
	MotionPrefix string `yaml:"motionPrefix" json:"motionPrefix"`

	// Axis is the single axis letter whose coordinate is sampled.
	Axis string `yaml:"axis" json:"axis"`

	// Suffix is appended to the base name of every output file.
	Suffix string `yaml:"suffix" json:"suffix"`

	// CoolingTemp is the nozzle temperature to wait for before pushing.
	CoolingTemp int `yaml:"coolingTemp" json:"coolingTemp"`

	// Placeholder is the token substituted with the mean coordinate.
	Placeholder string `yaml:"placeholder" json:"placeholder"`

	// Ejection holds the injected command templates.
	Ejection Ejection `yaml:"ejection" json:"ejection"`
}

// Ejection is the ordered set of command templates injected after the
// end-of-print marker. Templates omit the line terminator.
type Ejection struct {
	Comment  string `yaml:"comment" json:"comment"`
	CoolDown string `yaml:"coolDown" json:"coolDown"`
	Home     string `yaml:"home" json:"home"`
	Standoff string `yaml:"standoff" json:"standoff"`
	GoToBed  string `yaml:"goToBed" json:"goToBed"`
	Push     string `yaml:"push" json:"push"`
}

// Templates returns the ejection templates in injection order.
func (e Ejection) Templates() []string {
	return []string{e.Comment, e.CoolDown, e.Home, e.Standoff, e.GoToBed, e.Push}
}

// Default returns the built-in profile (Qidi X-Plus 3).
func Default() Profile {
	return Profile{
		Extension:     ".gcode",
		PrintStart:    "PRINT_START",
		PrintEnd:      "; EXECUTABLE_BLOCK_END",
		LayerChange:   ";LAYER_CHANGE",
		LineEnding:    "\n",
		IgnoredLayers: 2,
		MotionPrefix:  "G",
		Axis:          "X",
		Suffix:        "_pushed",
		CoolingTemp:   30,
		Placeholder:   DefaultPlaceholder,
		Ejection: Ejection{
			Comment:  "; PUSH PRINT OFF BED",
			CoolDown: "M109 S" + TempToken + "; Waits for the nozzle to cool down",
			Home:     "G28 X Y; Homes the X and Y axis",
			Standoff: "G1 X" + DefaultPlaceholder + " Y260; Goes to the back of the printer",
			GoToBed:  "G28 Z; Goes to the bed for print removal",
			Push:     "G1 Y" + DefaultPlaceholder + "; Push print off bed",
		},
	}
}

// StartLine returns the exact start-of-print line, terminator included.
func (p Profile) StartLine() string { return p.PrintStart + p.LineEnding }

// EndLine returns the exact end-of-print line, terminator included.
func (p Profile) EndLine() string { return p.PrintEnd + p.LineEnding }

// LayerLine returns the exact layer-change line, terminator included.
func (p Profile) LayerLine() string { return p.LayerChange + p.LineEnding }

// Render expands one ejection template: the placeholder becomes coord and
// TempToken becomes CoolingTemp. The line ending is appended.
func (p Profile) Render(template, coord string) string {
	line := template
	if p.Placeholder != "" {
		line = strings.ReplaceAll(line, p.Placeholder, coord)
	}
	line = strings.ReplaceAll(line, TempToken, strconv.Itoa(p.CoolingTemp))
	return line + p.LineEnding
}
