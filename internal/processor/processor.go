package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/shinji-kodama/gcode-ejector/internal/gcode"
	"github.com/shinji-kodama/gcode-ejector/internal/model"
	"github.com/shinji-kodama/gcode-ejector/internal/profile"
)

// Processor runs the pipeline with one fixed profile.
type Processor struct {
	profile profile.Profile
	sampler *gcode.Sampler
	logger  *zap.Logger
	dryRun  bool
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger. The default is zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithDryRun makes the Processor compute reports without writing output files
// or creating the output directory.
func WithDryRun(dryRun bool) Option {
	return func(p *Processor) { p.dryRun = dryRun }
}

// New creates a Processor for the given profile.
func New(prof profile.Profile, opts ...Option) *Processor {
	p := &Processor{
		profile: prof,
		sampler: gcode.NewSampler(prof),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Profile returns the profile the Processor was built with.
func (p *Processor) Profile() profile.Profile {
	return p.profile
}

// Result is the in-memory outcome of Transform.
type Result struct {
	Stats      gcode.Stats
	Lines      []string
	Injections int
}

// Transform runs region extraction, sampling, statistics and injection over
// lines. It fails with gcode.ErrStartNotFound or gcode.ErrNoSamples.
func (p *Processor) Transform(lines []string) (Result, error) {
	region, err := gcode.FindRegion(lines, p.profile)
	if err != nil {
		return Result{}, err
	}

	stats, err := gcode.ComputeStats(p.sampler.Sample(region))
	if err != nil {
		return Result{}, err
	}

	out, n := gcode.Inject(lines, stats.Mean, p.profile)
	return Result{Stats: stats, Lines: out, Injections: n}, nil
}

// ProcessFile reads inputPath, transforms it and writes the result into
// outputDir under the derived output name. Failures are recorded in the
// returned report; no output file is created for a failed input.
func (p *Processor) ProcessFile(inputPath, outputDir string) model.FileReport {
	report := model.FileReport{
		Input:  inputPath,
		Status: model.StatusOK,
		DryRun: p.dryRun,
	}
	log := p.logger.With(zap.String("file", inputPath))

	lines, err := gcode.ReadLines(inputPath)
	if err != nil {
		report.Fail(err)
		log.Error("failed to read input", zap.Error(err))
		return report
	}

	res, err := p.Transform(lines)
	if err != nil {
		report.Fail(err)
		log.Error("failed to process input", zap.Error(err))
		return report
	}

	report.Samples = res.Stats.Count
	report.Min = res.Stats.Min
	report.Max = res.Stats.Max
	report.Width = res.Stats.Width
	report.Mean = res.Stats.Mean
	report.Injections = res.Injections
	report.Output = filepath.Join(outputDir, OutputName(filepath.Base(inputPath), p.profile))

	log.Debug("coordinate statistics",
		zap.String("axis", p.profile.Axis),
		zap.Int("samples", res.Stats.Count),
		zap.Float64("min", res.Stats.Min),
		zap.Float64("max", res.Stats.Max),
		zap.Float64("width", res.Stats.Width),
		zap.Float64("mean", res.Stats.Mean))

	if res.Injections == 0 {
		log.Warn("end-of-print marker not found, output has no ejection sequence",
			zap.String("marker", p.profile.PrintEnd))
	}

	if p.dryRun {
		log.Info("dry run, output not written", zap.String("output", report.Output))
		return report
	}

	if err := WriteLines(report.Output, res.Lines); err != nil {
		report.Fail(err)
		log.Error("failed to write output", zap.Error(err))
		return report
	}

	log.Info("wrote output", zap.String("output", report.Output), zap.Int("injections", res.Injections))
	return report
}

// ProcessFiles processes inputPaths in order. Only a failure to prepare
// outputDir aborts the batch; per-file failures are reported and skipped.
func (p *Processor) ProcessFiles(inputPaths []string, outputDir string) ([]model.FileReport, error) {
	if !p.dryRun {
		if err := EnsureDir(outputDir); err != nil {
			return nil, err
		}
	}

	reports := make([]model.FileReport, 0, len(inputPaths))
	for i, path := range inputPaths {
		p.logger.Info("processing file",
			zap.Int("index", i+1),
			zap.Int("total", len(inputPaths)),
			zap.String("file", path))
		reports = append(reports, p.ProcessFile(path, outputDir))
	}
	return reports, nil
}

// ProcessDir processes every file in inputDir whose name ends with the
// profile extension, skipping earlier outputs. Both directories are created
// if absent, and they may be the same directory.
func (p *Processor) ProcessDir(inputDir, outputDir string) ([]model.FileReport, error) {
	if err := EnsureDir(inputDir); err != nil {
		return nil, err
	}

	inputs, err := ListInputs(inputDir, p.profile)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("listed inputs", zap.String("dir", inputDir), zap.Int("count", len(inputs)))

	return p.ProcessFiles(inputs, outputDir)
}

// OutputName derives the output file name: the base name without its
// extension, then the profile suffix, then the extension. The profile
// extension is used when name carries it, otherwise name's own extension.
func OutputName(name string, prof profile.Profile) string {
	ext := prof.Extension
	if !strings.HasSuffix(name, ext) {
		ext = filepath.Ext(name)
	}
	return strings.TrimSuffix(name, ext) + prof.Suffix + ext
}

// IsOutputName reports whether name looks like a file this tool produced.
func IsOutputName(name string, prof profile.Profile) bool {
	return strings.HasSuffix(name, prof.Suffix+prof.Extension)
}

// ListInputs returns the paths of regular entries in dir whose name ends
// with the profile extension, sorted by name. Files named like outputs
// (see IsOutputName) and other entries are skipped silently.
func ListInputs(dir string, prof profile.Profile) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), prof.Extension) || IsOutputName(e.Name(), prof) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// EnsureDir creates dir and its parents if they do not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
