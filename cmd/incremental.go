package cmd

import (
	"context"
	"fmt"
	"time"

	"logi-migrate/internal/blobs"
	"logi-migrate/internal/dialect"
	"logi-migrate/internal/diff"
	"logi-migrate/internal/dump"
	"logi-migrate/internal/engine"
	"logi-migrate/internal/objectstore"
	"logi-migrate/internal/schema"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	incrementalDryRun bool
	skipUpload        bool
)

// increment is the new rows of one table, kept with the new dump's columns.
type increment struct {
	spec  schema.IncrementalSpec
	table *schema.Table
}

var incrementalCmd = &cobra.Command{
	Use:    "incremental",
	Short:  "Import rows added between two dumps and upload their file blobs",
	PreRun: bindBatchSize,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		pterm.Info.Printfln("Old: %s", cfg.Dumps.Old)
		pterm.Info.Printfln("New: %s", cfg.Dumps.New)
		pterm.Info.Println("Extracting and comparing dumps...")

		specs := schema.IncrementalTables()
		filter := dump.Filter{Include: incrementalNames(specs)}
		older, err := dump.ParseFile(cfg.Dumps.Old, cfg.Dumps.Member, filter)
		if err != nil {
			return err
		}
		newer, err := dump.ParseFile(cfg.Dumps.New, cfg.Dumps.Member, filter)
		if err != nil {
			return err
		}

		increments, total, err := planIncrements(specs, older, newer)
		if err != nil {
			return err
		}

		fmt.Println("\nNew records to import:")
		for _, inc := range increments {
			fmt.Printf("  %-30s %d\n", inc.spec.Name+":", len(inc.table.Rows))
		}
		if total == 0 {
			pterm.Success.Println("Nothing to import!")
			return nil
		}
		if incrementalDryRun {
			pterm.Info.Println("[SIMULATION] Dry-Run Mode Active: No data will be written.")
			return nil
		}

		sess, err := openSession(ctx, cfg)
		if err != nil {
			return err
		}
		defer sess.Close()
		if err := sess.scopeToTenant(ctx, cfg.Tenant.ID); err != nil {
			return err
		}

		start := time.Now()
		results, files, err := importIncrements(ctx, sess.conn, sess.dialect, cfg, increments, total)
		if err != nil {
			return err
		}
		printSummary("Incremental Import", results, start)

		if skipUpload {
			return nil
		}
		return uploadNewBlobs(ctx, cfg, files)
	},
}

func init() {
	RootCmd.AddCommand(incrementalCmd)

	incrementalCmd.Flags().String("old", "", "Dump the tenant was last imported from")
	incrementalCmd.Flags().String("new", "", "Newer dump to import the difference of")
	incrementalCmd.Flags().Int("batch-size", 0, "Rows per INSERT statement (overrides config)")
	incrementalCmd.Flags().BoolVar(&incrementalDryRun, "dry-run", false, "Only report the new rows per table")
	incrementalCmd.Flags().BoolVar(&skipUpload, "skip-upload", false, "Do not upload blobs of new files rows")

	viper.BindPFlag("dumps.old", incrementalCmd.Flags().Lookup("old"))
	viper.BindPFlag("dumps.new", incrementalCmd.Flags().Lookup("new"))
}

func incrementalNames(specs []schema.IncrementalSpec) []string {
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	return names
}

// planIncrements diffs every configured table. It returns one increment per table,
// in configured order, and the total number of new rows.
func planIncrements(specs []schema.IncrementalSpec, older, newer map[string]*schema.Table) ([]increment, int, error) {
	var out []increment
	total := 0
	for _, spec := range specs {
		rows, err := diff.NewTableRows(older[spec.Name], newer[spec.Name], spec.Key...)
		if err != nil {
			return nil, 0, err
		}
		t := &schema.Table{Name: spec.Name, Rows: rows}
		if n := newer[spec.Name]; n != nil {
			t.Columns = n.Columns
		}
		out = append(out, increment{spec: spec, table: t})
		total += len(rows)
	}
	return out, total, nil
}

// importIncrements writes every increment in order and returns the new files rows
// for the blob upload.
func importIncrements(ctx context.Context, db engine.DB, d dialect.Dialect, cfg *Config, increments []increment, total int) ([]engine.Result, *schema.Table, error) {
	im := engine.NewImporter(db, d, cfg.Import.BatchSize)
	progress, bar := startBar(total, "Importing")
	defer progress.Stop()

	var results []engine.Result
	var files *schema.Table
	for _, inc := range increments {
		if len(inc.table.Rows) == 0 {
			pterm.Info.Printfln("%s: no new rows", inc.spec.Name)
			continue
		}

		var res engine.Result
		var err error
		switch inc.spec.Mode {
		case schema.ModeFileMetadata:
			files = inc.table
			fm := &engine.FileMetadata{
				DB: db, Dialect: d, Table: inc.spec.Name,
				TenantID: cfg.Tenant.ID, StorageClass: cfg.Blobs.StorageClass,
				OnProgress: func() { bar.Incr() },
			}
			res, err = fm.Import(ctx, inc.table)
		default:
			job := engine.Prepare(inc.table, inc.spec.Mapping, inc.spec.Padded, cfg.Tenant.ID)
			job.PlainValues = inc.spec.PlainValues
			im.OnProgress = func(n int) { advance(bar, n) }
			res, err = im.Import(ctx, job)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", inc.spec.Name, err)
		}
		results = append(results, res)
	}
	return results, files, nil
}

func uploadNewBlobs(ctx context.Context, cfg *Config, files *schema.Table) error {
	if files == nil || len(files.Rows) == 0 {
		pterm.Info.Println("Object store: no files to upload")
		return nil
	}

	uploader, err := objectstore.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer uploader.Close()

	pterm.Info.Printfln("Uploading %d files to %s bucket '%s'...", len(files.Rows), cfg.Storage.Provider, cfg.Storage.Bucket)
	_, err = uploadBlobs(ctx, uploader, cfg, files)
	return err
}

func uploadBlobs(ctx context.Context, u objectstore.Uploader, cfg *Config, files *schema.Table) (blobs.UploadStats, error) {
	progress, bar := startBar(len(files.Rows), "Uploading")
	stats, err := blobs.UploadRows(ctx, u, files, cfg.Tenant.ID, func() { bar.Incr() })
	progress.Stop()
	if err != nil {
		return stats, err
	}
	pterm.Success.Printfln("Object store: uploaded %d, skipped %d, errors %d", stats.Uploaded, stats.Skipped, stats.Errors)
	return stats, nil
}
