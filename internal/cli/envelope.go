package cli

import (
	"github.com/spf13/cobra"

	"github.com/ladybug-tools/dragonfly-display/pkg/pipeline"
)

// envelopeCommand creates the model-envelope-edges-to-vis command.
func (c *CLI) envelopeCommand() *cobra.Command {
	var (
		conv      convertFlags
		out       outputFlags
		exclude   string
		lineWidth float64
	)

	cmd := &cobra.Command{
		Use:   "model-envelope-edges-to-vis <model-file>",
		Short: "Draw the classified envelope edges of a district model",
		Long: `Draw the envelope edges of a district model, one layer per edge class.

--exclude-coplanar controls edges between coplanar faces: None keeps them,
All drops them, and FloorPlatesOnly drops them but adds the horizontal
edges where stacked rooms meet as an Interior_Floors_to_Walls layer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := c.outputFormat(cmd, out)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			cfg := c.Config.Envelope

			opts := pipeline.DefaultOptions()
			conv.apply(fs, &opts)
			mode, err := pipeline.ParseExcludeCoplanar(stringFlag(fs, "exclude-coplanar", exclude, cfg.ExcludeCoplanar))
			if err != nil {
				return err
			}
			opts.ExcludeCoplanar = mode
			opts.LineWidth = floatFlag(fs, "line-width", lineWidth, cfg.LineWidth)
			opts.Logger = c.Logger

			model, err := c.loadModel(args[0])
			if err != nil {
				return err
			}
			return c.visualize(cmd, pipeline.Request{Kind: pipeline.KindEnvelope, Model: model, Options: opts}, format, out)
		},
	}

	fs := cmd.Flags()
	conv.register(fs)
	fs.StringVar(&exclude, "exclude-coplanar", string(pipeline.FloorPlatesOnly),
		"coplanar edge handling: None, FloorPlatesOnly or All")
	fs.Float64Var(&lineWidth, "line-width", pipeline.DefaultEdgeLineWidth, "line width of the edge layers")
	out.register(fs)

	return cmd
}
