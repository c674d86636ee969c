// Command plotpoints renders the JSON points document read from stdin as a
// scatter plot in ~/l2_project/bin/output.png.
package main

import (
	"io"
	"os"

	"github.com/l2project/pointplot"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plotpoints",
		Short: "Render points read from stdin as a scatter plot",
		Long: `plotpoints reads {"points": [{"file", "x", "y", "group"}, ...]} from stdin
and saves a scatter plot to ~/l2_project/bin/output.png. The directory must exist.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := pointplot.DefaultOutputPath()
			if err != nil {
				return err
			}
			return run(cmd.InOrStdin(), path)
		},
	}
}

func run(in io.Reader, path string) error {
	doc, err := pointplot.Decode(in)
	if err != nil {
		return err
	}
	return pointplot.Render(doc, path)
}
