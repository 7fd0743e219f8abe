package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mkarren/gherkit/internal/db"
	"github.com/mkarren/gherkit/internal/ui"
	"github.com/spf13/cobra"
)

var (
	langFlag        string
	defectsOnlyFlag bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cataloged documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), langFlag, defectsOnlyFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&langFlag, "lang", "", "Filter by language code")
	listCmd.Flags().BoolVar(&defectsOnlyFlag, "defects", false, "Show only documents with defects")
	rootCmd.AddCommand(listCmd)
}

func RunList(w io.Writer, langFilter string, defectsOnly bool) error {
	if _, err := os.Stat("features"); os.IsNotExist(err) {
		return fmt.Errorf("run `gherkit init` first")
	}

	sqlDB, err := db.Open("features/gherkit.db")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	docs, err := db.ListDocuments(sqlDB)
	if err != nil {
		return err
	}

	var results []db.DocumentRow
	for _, d := range docs {
		if langFilter != "" && d.Language != langFilter {
			continue
		}
		if defectsOnly && d.DefectCount == 0 {
			continue
		}
		results = append(results, d)
	}

	if len(results) == 0 {
		return nil
	}

	// Compute column widths
	pathWidth, titleWidth := 0, 0
	for _, r := range results {
		if len(r.Path) > pathWidth {
			pathWidth = len(r.Path)
		}
		if len(r.Title) > titleWidth {
			titleWidth = len(r.Title)
		}
	}

	for _, r := range results {
		ui.ListRow(w, r.ID, r.Path, r.Title, r.Language, r.Scenarios, r.DefectCount, pathWidth, titleWidth)
	}

	return nil
}
