// Command pointparse reads point files (.txt, .bin, .json) and optionally a
// MySQL table, and prints them as the JSON document plotpoints consumes.
// It does not need gnuplot; pipe its output to pointpreview for that.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/l2project/pointplot"
	"github.com/l2project/pointplot/source"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dsn     string
	verbose bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pointparse [file ...]",
		Short: "Convert point files into a points JSON document",
		Long: `pointparse reads points from .txt (group:x,y per line), .bin (packed
32-bit records) and .json files, in argument order, and writes
{"points": [...]} to stdout.`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&dsn, "dsn", "", "MySQL DSN to read additional points from (table=<name> selects the table)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug information to stderr")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && dsn == "" {
		return errors.New("usage: pointparse file1 file2 ... (or --dsn)")
	}

	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	source.SetLogger(logger)
	pointplot.SetLogger(logger)

	points, err := source.ParseFiles(args)
	if err != nil {
		return err
	}

	if dsn != "" {
		db, err := source.OpenMySQL(dsn)
		if err != nil {
			return err
		}
		defer db.Close()

		rows, err := db.Points(context.Background())
		if err != nil {
			return err
		}
		points = append(points, rows...)
	}

	doc := &pointplot.Document{Points: points}
	return doc.Encode(cmd.OutOrStdout())
}
