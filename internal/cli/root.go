package cli

import (
	"github.com/spf13/cobra"

	"github.com/ladybug-tools/dragonfly-display/pkg/buildinfo"
	"github.com/ladybug-tools/dragonfly-display/pkg/config"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The --config file is loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	root := &cobra.Command{
		Use:   appName,
		Short: "Display dragonfly district models in the ladybug visualization formats",
		Long: `dragonfly-display converts dragonfly district models into visualization sets
that can be written as VisualizationSet files, pickles, vtk.js archives or
self-contained HTML pages.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			c.Logger.Debug("loaded config", "path", configOrDefault(configPath), "cache", cfg.Cache.Driver)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.Path()+")")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.modelToVisCommand())
	root.AddCommand(c.comparisonCommand())
	root.AddCommand(c.envelopeCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func configOrDefault(path string) string {
	if path == "" {
		return config.Path()
	}
	return path
}
