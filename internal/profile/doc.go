// Package profile holds the printer profile that drives G-code
// post-processing: the sentinel lines that delimit the print, the sampling
// rules, and the text of the injected ejection sequence.
//
// A Profile is an immutable value. Default returns the values for a
// Qidi X-Plus 3 running PrusaSlicer/OrcaSlicer output. Load reads a profile
// file on top of those defaults, in YAML (gopkg.in/yaml.v3) or JSON with
// comments (github.com/tidwall/jsonc), so a user only has to spell out the
// fields that differ for their printer.
package profile
