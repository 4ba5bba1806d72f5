package gcode

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/gcode-ejector/internal/profile"
)

type layerLine struct {
	Layer int
	Line  string
}

func collect(r Region) []layerLine {
	var got []layerLine
	for layer, line := range r.Layers() {
		got = append(got, layerLine{layer, line})
	}
	return got
}

func TestFindRegion(t *testing.T) {
	lines := []string{
		"G28\n",
		"PRINT_START\n",
		"G1 X1.00\n",
	}

	r, err := FindRegion(lines, profile.Default())
	require.NoError(t, err)
	assert.Equal(t, 1, r.Start())
}

// TestFindRegion_Missing verifies the bounded failure when the start
// marker is absent.
func TestFindRegion_Missing(t *testing.T) {
	lines := []string{"G28\n", "G1 X1.00\n"}

	_, err := FindRegion(lines, profile.Default())
	assert.ErrorIs(t, err, ErrStartNotFound)
}

// TestFindRegion_ExactMatch ensures sentinels are not trimmed or matched
// as substrings.
func TestFindRegion_ExactMatch(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"trailing space", "PRINT_START \n"},
		{"missing terminator", "PRINT_START"},
		{"crlf with lf profile", "PRINT_START\r\n"},
		{"with arguments", "PRINT_START BED=60\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindRegion([]string{tt.line}, profile.Default())
			assert.ErrorIs(t, err, ErrStartNotFound)
		})
	}
}

// TestRegion_Layers checks the counter semantics: it starts at 1, is bumped
// on the layer-change line itself, and iteration stops before the end marker.
func TestRegion_Layers(t *testing.T) {
	lines := []string{
		"; header\n",
		"PRINT_START\n",
		"G1 X1.00\n",
		";LAYER_CHANGE\n",
		"G1 X2.00\n",
		"; EXECUTABLE_BLOCK_END\n",
		"G1 X3.00\n",
	}

	r, err := FindRegion(lines, profile.Default())
	require.NoError(t, err)

	want := []layerLine{
		{1, "PRINT_START\n"},
		{1, "G1 X1.00\n"},
		{2, ";LAYER_CHANGE\n"},
		{2, "G1 X2.00\n"},
	}
	if diff := cmp.Diff(want, collect(r)); diff != "" {
		t.Errorf("Layers() mismatch (-want +got):\n%s", diff)
	}
}

// TestRegion_LayersRestartable verifies that ranging twice yields the same
// sequence and that the source slice is left untouched.
func TestRegion_LayersRestartable(t *testing.T) {
	lines := []string{"M104 S0\n", "PRINT_START\n", ";LAYER_CHANGE\n", "G1 X5.50\n"}
	orig := append([]string(nil), lines...)

	r, err := FindRegion(lines, profile.Default())
	require.NoError(t, err)

	first := collect(r)
	second := collect(r)
	assert.Equal(t, first, second)
	assert.Equal(t, orig, lines)
}

func TestRegion_LayersEarlyBreak(t *testing.T) {
	lines := []string{"PRINT_START\n", "a\n", "b\n", "c\n"}
	r, err := FindRegion(lines, profile.Default())
	require.NoError(t, err)

	n := 0
	for range r.Layers() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

// TestRegion_NoEndMarker scans to the end of input when the end marker is absent.
func TestRegion_NoEndMarker(t *testing.T) {
	lines := []string{"PRINT_START\n", ";LAYER_CHANGE\n", "G1 X1.00\n"}
	r, err := FindRegion(lines, profile.Default())
	require.NoError(t, err)

	got := collect(r)
	require.Len(t, got, 3)
	assert.Equal(t, 2, got[2].Layer)
}
