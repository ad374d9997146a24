package cli

import (
	"github.com/spf13/pflag"

	"github.com/ladybug-tools/dragonfly-display/pkg/output"
	"github.com/ladybug-tools/dragonfly-display/pkg/pipeline"
)

// =============================================================================
// Flag pairs
// =============================================================================

// toggle is a --on/--off flag pair over one boolean. The off flag wins when
// both are given; when neither is given the caller's default applies.
type toggle struct {
	on, off       string
	onVal, offVal bool
}

func addToggle(fs *pflag.FlagSet, on, off string, def bool, usage string) *toggle {
	t := &toggle{on: on, off: off}
	fs.BoolVar(&t.onVal, on, def, usage)
	fs.BoolVar(&t.offVal, off, !def, "opposite of --"+on)
	return t
}

// addConfigToggle registers a pair whose default comes from the config file,
// so neither flag advertises a built-in default in the help text.
func addConfigToggle(fs *pflag.FlagSet, on, off, usage string) *toggle {
	t := &toggle{on: on, off: off}
	fs.BoolVar(&t.onVal, on, false, usage)
	fs.BoolVar(&t.offVal, off, false, "opposite of --"+on)
	return t
}

func (t *toggle) value(fs *pflag.FlagSet, def bool) bool {
	switch {
	case fs.Changed(t.off):
		return !t.offVal
	case fs.Changed(t.on):
		return t.onVal
	}
	return def
}

// stringFlag returns the flag value when it was set, else the configured
// value, else the flag default.
func stringFlag(fs *pflag.FlagSet, name, val, configured string) string {
	if fs.Changed(name) || configured == "" {
		return val
	}
	return configured
}

func floatFlag(fs *pflag.FlagSet, name string, val, configured float64) float64 {
	if fs.Changed(name) || configured == 0 {
		return val
	}
	return configured
}

// =============================================================================
// Shared flag groups
// =============================================================================

// convertFlags are the district conversion flags of every vis command.
type convertFlags struct {
	multiplier     *toggle
	ceilAdjacency  *toggle
	excludePlenums bool
	mergeMethod    string
	resetCoords    bool
}

func (f *convertFlags) register(fs *pflag.FlagSet) {
	f.multiplier = addToggle(fs, "multiplier", "full-geometry", true,
		"represent repeated stories by their multiplier instead of full geometry")
	f.ceilAdjacency = addToggle(fs, "ceil-adjacency", "no-ceil-adjacency", false,
		"solve floor/ceiling adjacencies between stacked rooms")
	fs.BoolVar(&f.excludePlenums, "exclude-plenums", false, "leave plenum depths out of the rooms")
	fs.StringVar(&f.mergeMethod, "merge-method", "None",
		"merge rooms before display: None, Zones, PlenumZones, Stories or PlenumStories")
	fs.BoolVar(&f.resetCoords, "reset-coordinates", false,
		"move the district so its center sits at the origin, ground at zero")
}

func (f *convertFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	opts.UseMultiplier = f.multiplier.value(fs, true)
	opts.SolveCeilingAdjacencies = f.ceilAdjacency.value(fs, false)
	opts.ExcludePlenums = f.excludePlenums
	opts.MergeMethod = f.mergeMethod
	opts.ResetCoordinates = f.resetCoords
}

// outputFlags select where and how a visualization set is written.
type outputFlags struct {
	format  string
	file    string
	noCache bool
}

func (f *outputFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.format, "output-format", string(output.FormatVSF),
		"output format: vsf, json, pkl, vtkjs or html")
	fs.StringVarP(&f.file, "output-file", "o", "-",
		"output file, s3://bucket/key, or - for stdout")
	fs.BoolVar(&f.noCache, "no-cache", false, "build without reading or writing the cache")
}
