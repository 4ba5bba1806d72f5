// Package gcode scans and rewrites sliced G-code as a sequence of lines.
//
// The pipeline is deliberately small:
//
//	ReadLines -> FindRegion -> Sampler.Sample -> ComputeStats -> Inject
//
// Lines keep their terminators so sentinels compare exactly and the
// rewritten output is byte-identical to the input outside the injected
// ejection blocks. Nothing in this package touches the filesystem except
// ReadLines.
package gcode
