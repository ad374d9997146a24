package cli

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/pipeline"
)

const (
	districtPath = "../../examples/models/office_district.dfjson"
	revisedPath  = "../../examples/models/office_district_revised.dfjson"
)

// runCLI executes the root command with args in an isolated environment and
// returns stdout and the status lines.
func runCLI(t *testing.T, args ...string) (stdout, status string, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if os.Getenv("DFDISPLAY_CACHE_DIR") == "" {
		t.Setenv("DFDISPLAY_CACHE_DIR", t.TempDir())
	}

	var statusBuf bytes.Buffer
	prev := statusOut
	statusOut = &statusBuf
	t.Cleanup(func() { statusOut = prev })

	var out bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err = root.Execute()
	return out.String(), statusBuf.String(), err
}

func layerIDs(t *testing.T, data string) []string {
	t.Helper()
	var vs struct {
		Geometry []struct {
			Identifier string `json:"identifier"`
		} `json:"geometry"`
	}
	if err := json.Unmarshal([]byte(data), &vs); err != nil {
		t.Fatalf("decode visualization set: %v", err)
	}
	ids := make([]string, len(vs.Geometry))
	for i, g := range vs.Geometry {
		ids[i] = g.Identifier
	}
	return ids
}

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestModelToVisLayers(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		layers int
	}{
		{"defaults", nil, 10},
		{"exclude wireframe", []string{"--exclude-wireframe"}, 9},
		{"boundary condition", []string{"--color-by", "boundary_condition"}, 6},
		{"no coloring", []string{"-c", "none"}, 1},
		{"no coloring without wireframe", []string{"-c", "none", "--exclude-wireframe"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"model-to-vis", districtPath, "--output-format", "JSON"}, tt.args...)
			stdout, status, err := runCLI(t, args...)
			if err != nil {
				t.Fatalf("model-to-vis error = %v", err)
			}
			if got := len(layerIDs(t, stdout)); got != tt.layers {
				t.Errorf("layers = %d, want %d", got, tt.layers)
			}
			if !strings.Contains(status, "fresh") {
				t.Errorf("status = %q, want a fresh build", status)
			}
		})
	}
}

func TestModelToVisVTKJS(t *testing.T) {
	stdout, _, err := runCLI(t, "model-to-vis", districtPath, "--output-format", "vtkjs")
	if err != nil {
		t.Fatalf("model-to-vis error = %v", err)
	}
	if len(stdout) <= 1000 {
		t.Errorf("vtkjs output = %d bytes, want > 1000", len(stdout))
	}
	if _, err := base64.StdEncoding.DecodeString(stdout); err != nil {
		t.Errorf("vtkjs output is not base64: %v", err)
	}
}

func TestModelToVisFiles(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		format, file, want string
	}{
		{"html", "district.html", "district.html"},
		{"vtkjs", "district", "district.vtkjs"},
		{"vsf", "district.vsf", "district.vsf"},
		{"pkl", "district.pkl", "district.pkl"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			stdout, status, err := runCLI(t, "model-to-vis", districtPath,
				"--output-format", tt.format, "--output-file", path,
				"--room-attr", "program", "--text-attr")
			if err != nil {
				t.Fatalf("model-to-vis error = %v", err)
			}
			if stdout != "" {
				t.Errorf("stdout = %d bytes, want nothing", len(stdout))
			}
			want := filepath.Join(dir, tt.want)
			if _, err := os.Stat(want); err != nil {
				t.Errorf("output file: %v", err)
			}
			if !strings.Contains(status, tt.want) {
				t.Errorf("status %q does not name %s", status, tt.want)
			}
		})
	}
}

func TestModelToVisErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown format before reading", []string{"model-to-vis", "missing.dfjson", "--output-format", "obj"}, errors.ErrCodeInvalidFormat},
		{"missing model", []string{"model-to-vis", "missing.dfjson"}, errors.ErrCodeFileNotFound},
		{"bad merge method", []string{"model-to-vis", districtPath, "--merge-method", "Floors"}, errors.ErrCodeInvalidInput},
		{"bad comparison color", []string{"model-comparison-to-vis", districtPath, revisedPath, "--base-color", "teal"}, errors.ErrCodeInvalidColor},
		{"bad coplanar mode", []string{"model-envelope-edges-to-vis", districtPath, "--exclude-coplanar", "Some"}, errors.ErrCodeInvalidInput},
		{"bad tree format", []string{"model-tree", districtPath, "--format", "png"}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestComparison(t *testing.T) {
	stdout, status, err := runCLI(t, "model-comparison-to-vis", districtPath, revisedPath, "--output-format", "json")
	if err != nil {
		t.Fatalf("model-comparison-to-vis error = %v", err)
	}
	ids := strings.Join(layerIDs(t, stdout), ",")
	for _, want := range []string{"Base_Model", "Incoming_Model"} {
		if !strings.Contains(ids, want) {
			t.Errorf("layers %s missing %s", ids, want)
		}
	}
	if !strings.Contains(status, "4 buildings") {
		t.Errorf("status = %q", status)
	}
}

func TestEnvelopeEdges(t *testing.T) {
	tests := []struct {
		mode     string
		interior bool
	}{
		{"FloorPlatesOnly", true},
		{"all", false},
		{"None", false},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			stdout, _, err := runCLI(t, "model-envelope-edges-to-vis", districtPath,
				"--exclude-coplanar", tt.mode, "--output-format", "json")
			if err != nil {
				t.Fatalf("model-envelope-edges-to-vis error = %v", err)
			}
			ids := strings.Join(layerIDs(t, stdout), ",")
			if got := strings.Contains(ids, pipeline.InteriorFloorsID); got != tt.interior {
				t.Errorf("layers %s: interior floors = %v, want %v", ids, got, tt.interior)
			}
		})
	}
}

func TestUncachedByDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DFDISPLAY_CACHE_DIR", dir)
	args := []string{"model-to-vis", districtPath, "--output-format", "json"}
	for i := 0; i < 2; i++ {
		_, status, err := runCLI(t, args...)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(status, "cached") {
			t.Errorf("run %d status = %q, want a fresh build", i+1, status)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries, want none", len(entries))
	}
}

func TestCachedRun(t *testing.T) {
	t.Setenv("DFDISPLAY_CACHE_DRIVER", "file")
	t.Setenv("DFDISPLAY_CACHE_DIR", t.TempDir())
	args := []string{"model-to-vis", districtPath, "--output-format", "json"}
	first, _, err := runCLI(t, args...)
	if err != nil {
		t.Fatal(err)
	}
	second, status, err := runCLI(t, args...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(status, "cached") {
		t.Errorf("second run status = %q, want cached", status)
	}
	if len(layerIDs(t, first)) != len(layerIDs(t, second)) {
		t.Error("cached set differs from the built one")
	}

	_, status, err = runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	if !strings.Contains(status, "Cleared") {
		t.Errorf("cache clear status = %q", status)
	}

	_, status, err = runCLI(t, append(args, "--no-cache")...)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(status, "cached") {
		t.Errorf("--no-cache status = %q", status)
	}
}

func TestCachePath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DFDISPLAY_CACHE_DIR", dir)
	stdout, _, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout) != dir {
		t.Errorf("cache path = %q, want %q", stdout, dir)
	}
}

func TestConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.toml")
	data := "[model_to_vis]\ncolor_by = \"none\"\noutput_format = \"json\"\n"
	if err := os.WriteFile(cfg, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, "--config", cfg, "model-to-vis", districtPath)
	if err != nil {
		t.Fatalf("model-to-vis error = %v", err)
	}
	if got := layerIDs(t, stdout); len(got) != 1 || got[0] != "Wireframe" {
		t.Errorf("layers = %v, want only the wireframe with color_by none from config", got)
	}

	stdout, _, err = runCLI(t, "--config", cfg, "model-to-vis", districtPath, "-c", "type")
	if err != nil {
		t.Fatal(err)
	}
	if got := len(layerIDs(t, stdout)); got != 10 {
		t.Errorf("layers = %d, want flag to override config", got)
	}

	if _, _, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "cache", "path"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing config error = %v", err)
	}
}

func TestModelTree(t *testing.T) {
	stdout, status, err := runCLI(t, "model-tree", districtPath, "--format", "dot")
	if err != nil {
		t.Fatalf("model-tree error = %v", err)
	}
	if !strings.HasPrefix(stdout, "digraph District {") {
		t.Errorf("stdout = %.40q", stdout)
	}
	if !strings.Contains(status, "Rooms") {
		t.Errorf("status = %q", status)
	}

	path := filepath.Join(t.TempDir(), "tree.svg")
	if _, _, err := runCLI(t, "model-tree", districtPath, "-o", path); err != nil {
		t.Fatalf("model-tree svg error = %v", err)
	}
	svg, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("tree file is not SVG")
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			stdout, _, err := runCLI(t, "completion", shell)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(stdout, "dragonfly-display") {
				t.Error("completion script does not name the command")
			}
		})
	}
}

func TestToggle(t *testing.T) {
	tests := []struct {
		name string
		args []string
		def  bool
		want bool
	}{
		{"unset uses default true", nil, true, true},
		{"unset uses default false", nil, false, false},
		{"on", []string{"--show-grid"}, false, true},
		{"off", []string{"--hide-grid"}, true, false},
		{"off wins", []string{"--show-grid", "--hide-grid"}, true, false},
		{"explicit off false", []string{"--hide-grid=false"}, false, true},
	}
	register := map[string]func(fs *pflag.FlagSet) *toggle{
		"flag default": func(fs *pflag.FlagSet) *toggle { return addToggle(fs, "show-grid", "hide-grid", true, "") },
		"config default": func(fs *pflag.FlagSet) *toggle { return addConfigToggle(fs, "show-grid", "hide-grid", "") },
	}
	for kind, add := range register {
		for _, tt := range tests {
			t.Run(kind+"/"+tt.name, func(t *testing.T) {
				fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
				tg := add(fs)
				if err := fs.Parse(tt.args); err != nil {
					t.Fatal(err)
				}
				if got := tg.value(fs, tt.def); got != tt.want {
					t.Errorf("value() = %v, want %v", got, tt.want)
				}
			})
		}
	}
}

func TestShowGridHelp(t *testing.T) {
	cmd := New(io.Discard, LogInfo).modelToVisCommand()
	for _, name := range []string{"show-grid", "hide-grid"} {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			t.Fatalf("no --%s flag", name)
		}
		if f.DefValue != "false" {
			t.Errorf("--%s advertises default %q", name, f.DefValue)
		}
	}
	if usage := cmd.Flags().FlagUsages(); !strings.Contains(usage, "default from config show_grid") {
		t.Errorf("usage does not point at the config default:\n%s", usage)
	}
}

func TestStringFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var v string
	fs.StringVar(&v, "color-by", "type", "")
	if got := stringFlag(fs, "color-by", v, "none"); got != "none" {
		t.Errorf("unset flag = %q, want config value", got)
	}
	if got := stringFlag(fs, "color-by", v, ""); got != "type" {
		t.Errorf("unset flag without config = %q, want flag default", got)
	}
	if err := fs.Parse([]string{"--color-by", "boundary_condition"}); err != nil {
		t.Fatal(err)
	}
	if got := stringFlag(fs, "color-by", v, "none"); got != "boundary_condition" {
		t.Errorf("set flag = %q, want flag value", got)
	}
}
