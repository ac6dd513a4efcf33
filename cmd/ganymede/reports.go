package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tabular-hq/ganymede/pkg/report"
	"tabular-hq/ganymede/pkg/report/retention"
	"tabular-hq/ganymede/pkg/report/storage"
)

var reportsFlags struct {
	db      string
	dataset string
	outcome string
	limit   int
	format  string
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Query recorded validation runs",
	Long:  `Query the report database written by "ganymede check --report".`,
	Args:  cobra.NoArgs,
	RunE:  runReports,
}

var pruneFlags struct {
	db   string
	days int
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete validation runs older than the retention window",
	Args:  cobra.NoArgs,
	RunE:  runPrune,
}

func init() {
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.AddCommand(pruneCmd)

	reportsCmd.Flags().StringVar(&reportsFlags.db, "db", "data/reports.db", "report database path")
	reportsCmd.Flags().StringVar(&reportsFlags.dataset, "dataset", "", "filter by dataset name")
	reportsCmd.Flags().StringVar(&reportsFlags.outcome, "outcome", "", "filter by outcome: pass, fail")
	reportsCmd.Flags().IntVar(&reportsFlags.limit, "limit", 20, "maximum records to return")
	reportsCmd.Flags().StringVar(&reportsFlags.format, "format", "text", "output format: text, json")

	pruneCmd.Flags().StringVar(&pruneFlags.db, "db", "data/reports.db", "report database path")
	pruneCmd.Flags().IntVar(&pruneFlags.days, "days", 90, "delete runs older than this many days")
}

func runReports(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
		Path:        reportsFlags.db,
		WALMode:     true,
		BusyTimeout: 5 * time.Second,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Query(cmd.Context(), &report.Query{
		Dataset: reportsFlags.dataset,
		Outcome: report.Outcome(reportsFlags.outcome),
		Limit:   reportsFlags.limit,
	})
	if err != nil {
		return err
	}

	if reportsFlags.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("no records")
		return nil
	}
	for _, rec := range records {
		fmt.Printf("%s  %-30s  %-4s  %d rows, %d cols, %d error(s)\n",
			rec.StartedAt.Format(time.RFC3339), rec.Dataset, rec.Outcome,
			rec.Rows, rec.Columns, len(rec.Errors))
	}
	return nil
}

func runPrune(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
		Path:        pruneFlags.db,
		WALMode:     true,
		BusyTimeout: 5 * time.Second,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	pruner := retention.NewPruner(store, &retention.Config{RetentionDays: pruneFlags.days})
	deleted, err := pruner.Prune(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("deleted %d record(s)\n", deleted)
	return nil
}
