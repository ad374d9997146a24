package cli

import (
	"github.com/spf13/cobra"

	"github.com/ladybug-tools/dragonfly-display/pkg/pipeline"
)

// comparisonCommand creates the model-comparison-to-vis command.
func (c *CLI) comparisonCommand() *cobra.Command {
	var (
		conv          convertFlags
		out           outputFlags
		baseColor     string
		incomingColor string
	)

	cmd := &cobra.Command{
		Use:   "model-comparison-to-vis <base-model-file> <incoming-model-file>",
		Short: "Overlay two district models in one visualization set",
		Long: `Overlay a base and an incoming district model. Both are centered on the
base model and drawn in translucent colors with their own wireframes.`,
		Example: `  dragonfly-display model-comparison-to-vis base.dfjson revised.dfjson \
    --output-format html -o comparison.html`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := c.outputFormat(cmd, out)
			if err != nil {
				return err
			}
			fs := cmd.Flags()

			opts := pipeline.DefaultOptions()
			conv.apply(fs, &opts)
			opts.BaseColor = stringFlag(fs, "base-color", baseColor, c.Config.Comparison.BaseColor)
			opts.IncomingColor = stringFlag(fs, "incoming-color", incomingColor, c.Config.Comparison.IncomingColor)
			if _, _, err := opts.ComparisonColors(); err != nil {
				return err
			}
			opts.Logger = c.Logger

			base, err := c.loadModel(args[0])
			if err != nil {
				return err
			}
			incoming, err := c.loadModel(args[1])
			if err != nil {
				return err
			}
			req := pipeline.Request{Kind: pipeline.KindComparison, Model: base, Incoming: incoming, Options: opts}
			return c.visualize(cmd, req, format, out)
		},
	}

	fs := cmd.Flags()
	conv.register(fs)
	fs.StringVar(&baseColor, "base-color", pipeline.DefaultBaseColor, "hex color of the base model")
	fs.StringVar(&incomingColor, "incoming-color", pipeline.DefaultIncomingColor, "hex color of the incoming model")
	out.register(fs)

	return cmd
}
