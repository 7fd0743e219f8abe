package cmd

import (
	"fmt"
	"io"

	"github.com/mkarren/gherkit/internal/ui"
	"github.com/mkarren/gherkit/internal/validator"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate feature files and report defects",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunCheck(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func RunCheck(w io.Writer, paths []string) error {
	totalDefects := 0
	problemFiles := 0
	for _, path := range paths {
		feature, err := readFeature(path)
		if err != nil {
			ui.ErrLine(w, path, err)
			problemFiles++
			continue
		}
		defects := validator.Collect(feature)
		if len(defects) == 0 {
			ui.OkLine(w, path)
			continue
		}
		ui.ErrLine(w, path, fmt.Errorf("%d defects", len(defects)))
		for _, d := range defects {
			ui.DefectLine(w, d.String())
		}
		totalDefects += len(defects)
		problemFiles++
	}

	ui.CheckSummary(w, len(paths), totalDefects)
	if problemFiles > 0 {
		return fmt.Errorf("%d of %d files have problems", problemFiles, len(paths))
	}
	return nil
}
