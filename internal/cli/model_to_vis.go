package cli

import (
	"github.com/spf13/cobra"

	"github.com/ladybug-tools/dragonfly-display/pkg/display"
	"github.com/ladybug-tools/dragonfly-display/pkg/pipeline"
)

// modelToVisCommand creates the model-to-vis command.
func (c *CLI) modelToVisCommand() *cobra.Command {
	var (
		conv      convertFlags
		out       outputFlags
		colorBy   string
		gridMode  string
		roomAttrs []string
		faceAttrs []string

		wireframe, mesh, showColorBy, colorAttr, showGrid *toggle
	)

	cmd := &cobra.Command{
		Use:   "model-to-vis <model-file>",
		Short: "Translate a district model to a visualization set",
		Long: `Translate a dragonfly district model (DFJSON or DFpkl) into a visualization
set. Geometry is colored by face type, boundary condition or not at all, and
any room or face attribute can be added as a colored layer or as text labels.`,
		Example: `  # VisualizationSet JSON on stdout
  dragonfly-display model-to-vis district.dfjson

  # Web page colored by boundary condition
  dragonfly-display model-to-vis district.dfjson --color-by boundary_condition \
    --output-format html -o district.html

  # Program labels uploaded to S3
  dragonfly-display model-to-vis district.dfjson --room-attr program --text-attr \
    --output-format vtkjs -o s3://viz/district.vtkjs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := c.outputFormat(cmd, out)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			cfg := c.Config.ModelToVis

			opts := pipeline.DefaultOptions()
			conv.apply(fs, &opts)
			opts.ColorBy = stringFlag(fs, "color-by", colorBy, cfg.ColorBy)
			opts.IncludeWireframe = wireframe.value(fs, true)
			opts.UseMesh = mesh.value(fs, true)
			opts.HideColorBy = !showColorBy.value(fs, true)
			opts.GridDisplayMode = stringFlag(fs, "grid-display-mode", gridMode, cfg.GridDisplayMode)
			opts.HideGrid = !showGrid.value(fs, cfg.ShowGrid)
			if err := opts.SetAttributes(roomAttrs, faceAttrs, colorAttr.value(fs, true)); err != nil {
				return err
			}
			opts.Logger = c.Logger

			model, err := c.loadModel(args[0])
			if err != nil {
				return err
			}
			return c.visualize(cmd, pipeline.Request{Kind: pipeline.KindModel, Model: model, Options: opts}, format, out)
		},
	}

	fs := cmd.Flags()
	conv.register(fs)
	fs.StringVarP(&colorBy, "color-by", "c", display.ColorByType,
		"color geometry by type, boundary_condition or none")
	wireframe = addToggle(fs, "wireframe", "exclude-wireframe", true, "add a wireframe layer of every face")
	mesh = addToggle(fs, "mesh", "faces", true, "display colored geometry as meshes rather than faces")
	showColorBy = addToggle(fs, "show-color-by", "hide-color-by", true, "show the color-by layers by default")
	fs.StringArrayVarP(&roomAttrs, "room-attr", "r", nil,
		"room attribute to display, as a dotted path (repeatable)")
	fs.StringArrayVarP(&faceAttrs, "face-attr", "f", nil,
		"face attribute to display, as a dotted path (repeatable)")
	colorAttr = addToggle(fs, "color-attr", "text-attr", true, "show attributes as colors rather than text labels")
	fs.StringVarP(&gridMode, "grid-display-mode", "m", display.GridDefault,
		"sensor grid display: Default, Points, Wireframe, Surface, SurfaceWithEdges or None")
	showGrid = addConfigToggle(fs, "show-grid", "hide-grid", "show sensor grids (default from config show_grid)")
	out.register(fs)

	return cmd
}
