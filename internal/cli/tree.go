package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/tree"
)

// treeCommand creates the model-tree command for inspecting a district's hierarchy.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		format   string
		file     string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "model-tree <model-file>",
		Short: "Render the building, story and room hierarchy of a model (debug tool)",
		Example: `  # SVG diagram
  dragonfly-display model-tree district.dfjson -o district.svg

  # DOT source with story multipliers and room areas
  dragonfly-display model-tree district.dfjson --format dot --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "dot" && format != "svg" {
				return errors.New(errors.ErrCodeInvalidFormat, "unrecognized tree format %q (choose from dot, svg)", format)
			}

			model, err := c.loadModel(args[0])
			if err != nil {
				return err
			}
			data := []byte(tree.ToDOT(model, tree.Options{Detailed: detailed}))
			contentType := "text/vnd.graphviz"
			if format == "svg" {
				if data, err = tree.RenderSVG(cmd.Context(), string(data)); err != nil {
					return err
				}
				contentType = "image/svg+xml"
			}
			if err := c.writeData(cmd, data, file, contentType); err != nil {
				return err
			}

			stats := tree.Count(model)
			printSuccess("Model tree generated")
			printKeyValue("Buildings", fmt.Sprintf("%d", stats.Buildings))
			printKeyValue("Stories", fmt.Sprintf("%d", stats.Stories))
			printKeyValue("Rooms", fmt.Sprintf("%d", stats.Rooms))
			if file != "" && file != "-" {
				printFile(file)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "svg", "output format: dot or svg")
	cmd.Flags().StringVarP(&file, "output-file", "o", "-", "output file, s3://bucket/key, or - for stdout")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label stories with multiplier and elevation, rooms with area and program")

	return cmd
}
