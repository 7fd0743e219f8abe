package cmd

import (
	"fmt"
	"io"

	"github.com/mkarren/gherkit/internal/export"
	"github.com/spf13/cobra"
)

var formatFlag string

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export a feature file as JSON or Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunExport(cmd.OutOrStdout(), args[0], formatFlag)
	},
}

func init() {
	exportCmd.Flags().StringVar(&formatFlag, "format", "json", "Output format: json or markdown")
	rootCmd.AddCommand(exportCmd)
}

func RunExport(w io.Writer, path, format string) error {
	feature, err := readFeature(path)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		data, err := export.Encode(feature)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		fmt.Fprintln(w, string(data))
	case "markdown":
		fmt.Fprint(w, export.Markdown(feature))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}
