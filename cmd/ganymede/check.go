package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"tabular-hq/ganymede/pkg/frame"
	"tabular-hq/ganymede/pkg/guard"
	"tabular-hq/ganymede/pkg/report"
	"tabular-hq/ganymede/pkg/report/storage"
	"tabular-hq/ganymede/pkg/schema"
	"tabular-hq/ganymede/pkg/validation"
)

var checkFlags struct {
	schema     string
	table      string
	name       string
	strict     bool
	lazy       bool
	allowEmpty bool
	format     string
	reportDB   string
	delimiter  string
}

var checkCmd = &cobra.Command{
	Use:   "check [data file]",
	Short: "Validate a tabular dataset against a schema",
	Long: `Validate a CSV file or SQLite table against a YAML schema.

The data file is a CSV file by default; pass --table to read a table
from a SQLite database instead.

Flag precedence: an explicit command-line flag overrides the schema
document, which overrides the project configuration file.

Examples:
  # Validate a CSV file
  ganymede check --schema schema.yaml data.csv

  # Validate a SQLite table
  ganymede check --schema schema.yaml --table orders data.db

  # Collect all failures, JSON output for CI
  ganymede check --schema schema.yaml --lazy --format json data.csv

  # Record the outcome to a report database
  ganymede check --schema schema.yaml --report data/reports.db data.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFlags.schema, "schema", "s", "", "schema file (required)")
	checkCmd.Flags().StringVarP(&checkFlags.table, "table", "t", "", "SQLite table to read instead of CSV")
	checkCmd.Flags().StringVar(&checkFlags.name, "name", "", "dataset name for reports (default: schema dataset or file name)")
	checkCmd.Flags().BoolVar(&checkFlags.strict, "strict", false, "reject undeclared columns")
	checkCmd.Flags().BoolVar(&checkFlags.lazy, "lazy", false, "collect all failures instead of stopping at the first")
	checkCmd.Flags().BoolVar(&checkFlags.allowEmpty, "allow-empty", true, "permit zero-row tables")
	checkCmd.Flags().StringVar(&checkFlags.format, "format", "text", "output format: text, json")
	checkCmd.Flags().StringVar(&checkFlags.reportDB, "report", "", "record the outcome to this report database")
	checkCmd.Flags().StringVar(&checkFlags.delimiter, "delimiter", ",", "CSV field delimiter")
	_ = checkCmd.MarkFlagRequired("schema")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	doc, err := schema.LoadDocument(checkFlags.schema)
	if err != nil {
		return err
	}

	df, err := loadFrame(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	opts, cleanup, err := buildOptions(cmd, doc, args[0])
	if err != nil {
		return err
	}
	defer cleanup()

	err = guard.CheckContext(cmd.Context(), df, opts...)

	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		if printErr := printRecords(verr.Records); printErr != nil {
			return printErr
		}
		os.Exit(1)
	}
	if err != nil {
		return err
	}

	if checkFlags.format == "json" {
		fmt.Println(`{"valid": true}`)
	} else {
		fmt.Printf("OK: %d rows, %d columns\n", df.NumRows(), df.NumColumns())
	}
	return nil
}

// loadFrame reads the dataset: a SQLite table when --table is set,
// otherwise a CSV file.
func loadFrame(ctx context.Context, path string) (*frame.DataFrame, error) {
	if checkFlags.table != "" {
		db, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, fmt.Errorf("open database %q: %w", path, err)
		}
		defer db.Close()
		return frame.ReadSQL(ctx, db, checkFlags.table)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	opts := frame.DefaultCSVOptions()
	if checkFlags.delimiter != "" {
		opts.Delimiter, err = parseDelimiter(checkFlags.delimiter)
		if err != nil {
			return nil, err
		}
	}
	return frame.ReadCSV(f, opts)
}

// parseDelimiter decodes the --delimiter value as exactly one character,
// multi-byte runes included.
func parseDelimiter(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return r, nil
}

// buildOptions assembles guard options from the schema document and the
// command-line flags. Explicit flags win over document values; unset
// values fall through to the project configuration.
func buildOptions(cmd *cobra.Command, doc *schema.Document, dataPath string) ([]guard.Option, func(), error) {
	var opts []guard.Option
	cleanup := func() {}

	name := checkFlags.name
	if name == "" {
		name = doc.Dataset
	}
	if name == "" {
		name = dataPath
	}
	opts = append(opts, guard.WithName(name))

	if len(doc.Columns) > 0 {
		opts = append(opts, guard.WithColumns(doc.Columns))
	}
	for _, group := range doc.CompositeUnique {
		opts = append(opts, guard.WithCompositeUnique(group...))
	}
	if doc.MinRows != nil {
		opts = append(opts, guard.WithMinRows(*doc.MinRows))
	}
	if doc.MaxRows != nil {
		opts = append(opts, guard.WithMaxRows(*doc.MaxRows))
	}
	if doc.ExactRows != nil {
		opts = append(opts, guard.WithExactRows(*doc.ExactRows))
	}

	if b := resolveBool(cmd, "strict", checkFlags.strict, doc.Strict); b != nil {
		opts = append(opts, guard.WithStrict(*b))
	}
	if b := resolveBool(cmd, "lazy", checkFlags.lazy, doc.Lazy); b != nil {
		opts = append(opts, guard.WithLazy(*b))
	}
	if b := resolveBool(cmd, "allow-empty", checkFlags.allowEmpty, doc.AllowEmpty); b != nil {
		opts = append(opts, guard.WithAllowEmpty(*b))
	}

	if checkFlags.reportDB != "" {
		store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
			Path:         checkFlags.reportDB,
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			WALMode:      true,
			BusyTimeout:  5 * time.Second,
		})
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { store.Close() }
		opts = append(opts, guard.WithRecorder(report.NewRecorder(store, nil)))
	}

	return opts, cleanup, nil
}

// resolveBool returns the flag value when explicitly set, else the schema
// document value, else nil (project config decides).
func resolveBool(cmd *cobra.Command, flag string, flagVal bool, docVal *bool) *bool {
	if cmd.Flags().Changed(flag) {
		return &flagVal
	}
	return docVal
}

func printRecords(records []*validation.ErrorRecord) error {
	if checkFlags.format == "json" {
		out := struct {
			Valid  bool                      `json:"valid"`
			Errors []*validation.ErrorRecord `json:"errors"`
		}{Valid: false, Errors: records}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("FAIL: %d error(s)\n", len(records))
	for _, rec := range records {
		fmt.Printf("  - %s\n", rec)
	}
	return nil
}
