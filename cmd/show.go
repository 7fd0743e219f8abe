package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mkarren/gherkit/internal/db"
	"github.com/mkarren/gherkit/internal/formatter"
	"github.com/mkarren/gherkit/internal/parser"
	"github.com/mkarren/gherkit/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a cataloged document by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, rawID string) error {
	// Strip # prefix if present
	rawID = strings.TrimPrefix(rawID, "#")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid document ID: %s", rawID)
	}

	if _, err := os.Stat("features"); os.IsNotExist(err) {
		return fmt.Errorf("run `gherkit init` first")
	}

	sqlDB, err := db.Open("features/gherkit.db")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	doc, scenarios, defects, err := db.GetDocument(sqlDB, id)
	if err != nil {
		return err
	}

	ui.ShowHeader(w, doc.ID, doc.Path)
	fmt.Fprintf(w, "language: %s, %d scenarios\n", doc.Language, len(scenarios))
	for _, d := range defects {
		ui.DefectLine(w, d.Detail)
	}

	// Re-read and pretty-print the current file content
	content, err := os.ReadFile(doc.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", doc.Path, err)
	}
	feature, err := parser.Parse(content)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", doc.Path, err)
	}

	fmt.Fprintln(w)
	ui.ShowGherkin(w, formatter.Format(feature, formatter.DefaultConfig()))
	return nil
}
