// Command pointpreview reads a points document from stdin and saves a
// gnuplot rendering of it. gnuplot must be on PATH.
package main

import (
	"os"

	"github.com/l2project/pointplot"
	"github.com/l2project/pointplot/preview"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pointpreview <output.png>",
		Short:        "Render points read from stdin with gnuplot",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			logger.SetOutput(cmd.ErrOrStderr())
			logger.SetLevel(logrus.WarnLevel)
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
			preview.SetLogger(logger)

			doc, err := pointplot.Decode(cmd.InOrStdin())
			if err != nil {
				return err
			}
			return preview.RenderGnuplot(doc, args[0])
		},
	}
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug information to stderr")
	return rootCmd
}
