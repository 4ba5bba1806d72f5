package processor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/shinji-kodama/gcode-ejector/internal/gcode"
	"github.com/shinji-kodama/gcode-ejector/internal/model"
	"github.com/shinji-kodama/gcode-ejector/internal/profile"
)

const scenario = "PRINT_START\n" +
	"G1 X10.00 Y0.00\n" +
	";LAYER_CHANGE\n" +
	";LAYER_CHANGE\n" +
	";LAYER_CHANGE\n" +
	"G1 X50.00 Y0.00\n" +
	"; EXECUTABLE_BLOCK_END\n"

// tooEarly has coordinates only at or before the ignored-layer threshold.
const tooEarly = "PRINT_START\n" +
	"G1 X10.00 Y0.00\n" +
	";LAYER_CHANGE\n" +
	"G1 X20.00 Y0.00\n" +
	"; EXECUTABLE_BLOCK_END\n"

// writeInput creates dir/name with content and returns its path.
func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	lines, err := gcode.ReadLines(path)
	require.NoError(t, err)
	return lines
}

func TestOutputName(t *testing.T) {
	p := profile.Default()

	tests := []struct {
		name string
		want string
	}{
		{"benchy.gcode", "benchy_pushed.gcode"},
		{"my.part.v2.gcode", "my.part.v2_pushed.gcode"},
		{"cube.gco", "cube_pushed.gco"},
		{"README", "README_pushed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputName(tt.name, p))
		})
	}
}

func TestIsOutputName(t *testing.T) {
	p := profile.Default()
	assert.True(t, IsOutputName("benchy_pushed.gcode", p))
	assert.False(t, IsOutputName("benchy.gcode", p))
	assert.False(t, IsOutputName("benchy_pushed.bgcode", p))
}

// TestProcessFile_Scenario verifies the canonical example end to end.
func TestProcessFile_Scenario(t *testing.T) {
	in := writeInput(t, t.TempDir(), "part.gcode", scenario)
	outDir := t.TempDir()

	report := New(profile.Default()).ProcessFile(in, outDir)

	require.Equal(t, model.StatusOK, report.Status, report.Error)
	assert.Equal(t, filepath.Join(outDir, "part_pushed.gcode"), report.Output)
	assert.Equal(t, 1, report.Samples)
	assert.Equal(t, 50.0, report.Mean)
	assert.Equal(t, 0.0, report.Width)
	assert.Equal(t, 1, report.Injections)

	want := append(readLines(t, in), gcode.EjectionBlock(50, profile.Default())...)
	if diff := cmp.Diff(want, readLines(t, report.Output)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

// TestProcessFile_PreservesBytes checks that CRLF input with a header and an
// unterminated last line comes back unchanged around the injected block.
func TestProcessFile_PreservesBytes(t *testing.T) {
	p := profile.Default()
	p.LineEnding = "\r\n"
	p.IgnoredLayers = 0

	content := "; header\r\nPRINT_START\r\nG1 X12.50 Y3.00\r\n; EXECUTABLE_BLOCK_END\r\nM84"
	in := writeInput(t, t.TempDir(), "crlf.gcode", content)

	report := New(p).ProcessFile(in, t.TempDir())
	require.False(t, report.Failed(), report.Error)

	got, err := os.ReadFile(report.Output)
	require.NoError(t, err)

	block := strings.Join(gcode.EjectionBlock(12.5, p), "")
	want := "; header\r\nPRINT_START\r\nG1 X12.50 Y3.00\r\n; EXECUTABLE_BLOCK_END\r\n" + block + "M84"
	assert.Equal(t, want, string(got))
}

func TestProcessFile_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"no eligible samples", tooEarly, gcode.ErrNoSamples},
		{"no start marker", "G28\nG1 X10.00\n", gcode.ErrStartNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := writeInput(t, t.TempDir(), "bad.gcode", tt.content)
			outDir := t.TempDir()

			report := New(profile.Default()).ProcessFile(in, outDir)

			assert.True(t, report.Failed())
			assert.ErrorIs(t, report.Err, tt.wantErr)
			assert.Empty(t, report.Output)

			entries, err := os.ReadDir(outDir)
			require.NoError(t, err)
			assert.Empty(t, entries, "no output file may be created for a failed input")
		})
	}
}

func TestProcessFile_MissingInput(t *testing.T) {
	report := New(profile.Default()).ProcessFile(filepath.Join(t.TempDir(), "gone.gcode"), t.TempDir())

	assert.True(t, report.Failed())
	assert.True(t, errors.Is(report.Err, os.ErrNotExist))
	assert.Contains(t, report.Error, "gone.gcode")
}

// TestProcessFile_TwoEndMarkers checks that every end marker gets a block.
func TestProcessFile_TwoEndMarkers(t *testing.T) {
	content := scenario + "G1 X1.00\n" + "; EXECUTABLE_BLOCK_END\n"
	in := writeInput(t, t.TempDir(), "twice.gcode", content)

	report := New(profile.Default()).ProcessFile(in, t.TempDir())
	require.False(t, report.Failed(), report.Error)
	assert.Equal(t, 2, report.Injections)

	out := readLines(t, report.Output)
	assert.Len(t, out, len(readLines(t, in))+12)
	assert.Equal(t, 2, strings.Count(strings.Join(out, ""), "; PUSH PRINT OFF BED\n"))
}

func TestProcessFile_DryRun(t *testing.T) {
	in := writeInput(t, t.TempDir(), "part.gcode", scenario)
	outDir := filepath.Join(t.TempDir(), "outputs")

	report := New(profile.Default(), WithDryRun(true)).ProcessFile(in, outDir)

	require.False(t, report.Failed(), report.Error)
	assert.True(t, report.DryRun)
	assert.Equal(t, filepath.Join(outDir, "part_pushed.gcode"), report.Output)
	assert.NoFileExists(t, report.Output)
}

// TestProcessFile_Overwrites verifies that an existing output is replaced.
func TestProcessFile_Overwrites(t *testing.T) {
	in := writeInput(t, t.TempDir(), "part.gcode", scenario)
	outDir := t.TempDir()
	stale := writeInput(t, outDir, "part_pushed.gcode", "stale\n")

	report := New(profile.Default()).ProcessFile(in, outDir)
	require.False(t, report.Failed(), report.Error)

	got, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got), "PRINT_START\n"))
}

// TestProcessDir verifies directory creation, extension filtering, sorted
// order and that one failing file does not stop the batch.
func TestProcessDir(t *testing.T) {
	root := t.TempDir()
	inDir := filepath.Join(root, "inputs")
	outDir := filepath.Join(root, "outputs")

	writeInput(t, inDir, "b.gcode", tooEarly)
	writeInput(t, inDir, "a.gcode", scenario)
	writeInput(t, inDir, "c.gcode", scenario)
	writeInput(t, inDir, "notes.txt", scenario)
	require.NoError(t, os.MkdirAll(filepath.Join(inDir, "sub.gcode"), 0o755))

	core, logs := observer.New(zapcore.InfoLevel)
	proc := New(profile.Default(), WithLogger(zap.New(core)))

	reports, err := proc.ProcessDir(inDir, outDir)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, filepath.Join(inDir, "a.gcode"), reports[0].Input)
	assert.Equal(t, model.StatusOK, reports[0].Status)
	assert.Equal(t, model.StatusFailed, reports[1].Status)
	assert.ErrorIs(t, reports[1].Err, gcode.ErrNoSamples)
	assert.Equal(t, model.StatusOK, reports[2].Status)

	assert.FileExists(t, filepath.Join(outDir, "a_pushed.gcode"))
	assert.NoFileExists(t, filepath.Join(outDir, "b_pushed.gcode"))
	assert.FileExists(t, filepath.Join(outDir, "c_pushed.gcode"))
	assert.NoFileExists(t, filepath.Join(outDir, "notes_pushed.txt"))

	assert.Equal(t, 3, logs.FilterMessage("processing file").Len())
	failed := logs.FilterMessage("failed to process input").All()
	require.Len(t, failed, 1)
	assert.Equal(t, filepath.Join(inDir, "b.gcode"), failed[0].ContextMap()["file"])
}

func TestProcessDir_CreatesMissingDirs(t *testing.T) {
	root := t.TempDir()
	inDir := filepath.Join(root, "inputs")
	outDir := filepath.Join(root, "outputs")

	reports, err := New(profile.Default()).ProcessDir(inDir, outDir)
	require.NoError(t, err)
	assert.Empty(t, reports)
	assert.DirExists(t, inDir)
	assert.DirExists(t, outDir)
}

func TestProcessDir_DryRunLeavesOutputAbsent(t *testing.T) {
	root := t.TempDir()
	inDir := filepath.Join(root, "inputs")
	outDir := filepath.Join(root, "outputs")
	writeInput(t, inDir, "a.gcode", scenario)

	reports, err := New(profile.Default(), WithDryRun(true)).ProcessDir(inDir, outDir)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.NoDirExists(t, outDir)
}

// TestProcessDir_SameDirectory verifies that outputs written next to their
// inputs are not picked up again by a later run.
func TestProcessDir_SameDirectory(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "part.gcode", scenario)
	proc := New(profile.Default())

	for range 2 {
		reports, err := proc.ProcessDir(dir, dir)
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, filepath.Join(dir, "part.gcode"), reports[0].Input)
	}

	assert.FileExists(t, filepath.Join(dir, "part_pushed.gcode"))
	assert.NoFileExists(t, filepath.Join(dir, "part_pushed_pushed.gcode"))
}

func TestListInputs_SkipsOutputs(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "a.gcode", scenario)
	writeInput(t, dir, "a_pushed.gcode", scenario)
	writeInput(t, dir, "b.txt", scenario)

	got, err := ListInputs(dir, profile.Default())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.gcode")}, got)
}

func TestListInputs_Missing(t *testing.T) {
	_, err := ListInputs(filepath.Join(t.TempDir(), "absent"), profile.Default())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteLines_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.gcode")

	require.NoError(t, WriteLines(path, []string{"G28\n", "M84"}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "G28\nM84", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteLines_MissingDir(t *testing.T) {
	err := WriteLines(filepath.Join(t.TempDir(), "nope", "out.gcode"), []string{"G28\n"})
	assert.Error(t, err)
}
