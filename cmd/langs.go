package cmd

import (
	"fmt"
	"io"

	"github.com/mkarren/gherkit/internal/language"
	"github.com/spf13/cobra"
)

var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "List supported languages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunLangs(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(langsCmd)
}

func RunLangs(w io.Writer) error {
	langs := language.All()

	codeWidth, nameWidth := 0, 0
	for _, l := range langs {
		if len(l.Code) > codeWidth {
			codeWidth = len(l.Code)
		}
		if len(l.Name) > nameWidth {
			nameWidth = len(l.Name)
		}
	}

	for _, l := range langs {
		fmt.Fprintf(w, "%-*s  %-*s  %s\n", codeWidth, l.Code, nameWidth, l.Name, l.Native)
	}
	return nil
}
