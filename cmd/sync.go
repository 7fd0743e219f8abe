package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/mkarren/gherkit/internal/batch"
	"github.com/mkarren/gherkit/internal/db"
	"github.com/mkarren/gherkit/internal/ui"
	"github.com/spf13/cobra"
)

var syncWorkersFlag int

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scan features/ for .feature files and register them in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSync(cmd.OutOrStdout(), syncWorkersFlag)
	},
}

func init() {
	syncCmd.Flags().IntVar(&syncWorkersFlag, "workers", runtime.NumCPU(), "Number of parallel workers")
	rootCmd.AddCommand(syncCmd)
}

func RunSync(w io.Writer, workers int) error {
	if _, err := os.Stat("features"); os.IsNotExist(err) {
		return fmt.Errorf("run `gherkit init` first")
	}

	sqlDB, err := db.Open("features/gherkit.db")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	paths, err := batch.Walk("features")
	if err != nil {
		return fmt.Errorf("scanning features/: %w", err)
	}

	items := batch.ProcessFiles(context.Background(), workers, paths)

	count := 0
	for _, item := range items {
		if item.Err != nil {
			ui.ErrLine(w, item.Input, item.Err)
			continue
		}
		res := item.Result
		id, created, err := db.UpsertDocument(sqlDB, res.Path, res.Feature)
		if err != nil {
			return err
		}
		if err := db.ReplaceScenarios(sqlDB, id, res.Feature); err != nil {
			return err
		}
		if err := db.ReplaceDefects(sqlDB, id, res.Defects); err != nil {
			return err
		}
		if created {
			ui.NewLine(w, res.Path)
		} else {
			ui.TrkLine(w, res.Path)
		}
		for _, d := range res.Defects {
			ui.DefectLine(w, d.String())
		}
		count++
	}

	ui.SummaryLine(w, count)
	return nil
}
