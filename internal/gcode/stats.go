package gcode

import (
	"errors"
	"slices"
	"strconv"
	"strings"
)

// ErrNoSamples is returned when statistics are requested for an empty sample set.
var ErrNoSamples = errors.New("no coordinate samples found")

// Stats summarises the sampled coordinates of one file.
type Stats struct {
	Count int
	Min   float64
	Max   float64
	Width float64 // Max-Min, rounded to two decimals
	Mean  float64 // rounded to two decimals
}

// ComputeStats returns min, max, width and mean of samples. The result does
// not depend on sample order: the sum is taken over a sorted copy. Summing
// in line order instead can differ in the last bit for the same samples.
func ComputeStats(samples []float64) (Stats, error) {
	if len(samples) == 0 {
		return Stats{}, ErrNoSamples
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	minV, maxV := sorted[0], sorted[len(sorted)-1]
	return Stats{
		Count: len(sorted),
		Min:   minV,
		Max:   maxV,
		Width: Round2(maxV - minV),
		Mean:  Round2(sum / float64(len(sorted))),
	}, nil
}

// Round2 rounds v to two decimal places. The exact binary value is rounded
// and exact ties go to even, so 10.125 becomes 10.12.
func Round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// FormatCoordinate renders v the way it is written into G-code: the
// shortest exact decimal, always with a fractional part ("50.0", "123.45").
func FormatCoordinate(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
