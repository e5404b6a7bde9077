package cmd

import (
	"fmt"
	"strings"
	"time"

	"logi-migrate/internal/dialect"
	"logi-migrate/internal/dump"
	"logi-migrate/internal/engine"
	"logi-migrate/internal/schema"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dryRun    bool
	skipReset bool
	tables    []string
)

var convertCmd = &cobra.Command{
	Use:    "convert",
	Short:  "Convert a single-tenant dump and import it for the tenant",
	PreRun: bindBatchSize,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		// Filter tables strategy: flag, then config, then the full import list.
		targetNames := tables
		if len(targetNames) == 0 {
			targetNames = cfg.Import.Tables
		}
		specs, err := selectTables(schema.ImportTables(), targetNames)
		if err != nil {
			return err
		}
		specs = schema.SortTables(specs)
		names := schema.Names(specs)

		pterm.Info.Printfln("Reading %s...", cfg.Dumps.Full)
		parsed, err := dump.ParseFile(cfg.Dumps.Full, cfg.Dumps.Member, dump.Filter{Include: names, Skip: schema.SkipTables()})
		if err != nil {
			return err
		}
		for _, name := range names {
			if t, ok := parsed[name]; ok {
				pterm.Debug.Printfln("%s: %d rows parsed, %d dropped", name, len(t.Rows), t.Dropped)
			}
		}

		var sess *session
		var d dialect.Dialect
		if dryRun {
			pterm.Info.Println("[SIMULATION] Dry-Run Mode Active: No data will be written.")
			if d, err = dialect.GetDialect(cfg.Database.Driver); err != nil {
				return err
			}
		} else {
			if sess, err = openSession(ctx, cfg); err != nil {
				return err
			}
			defer sess.Close()
			d = sess.dialect

			if err := sess.scopeToTenant(ctx, cfg.Tenant.ID); err != nil {
				return err
			}
			if !skipReset {
				pterm.Info.Printfln("Creating organization %s...", cfg.Tenant.ID)
				if err := engine.EnsureOrganization(ctx, sess.conn, d, cfg.Tenant.OrganizationsTable, engine.Organization{
					ID: cfg.Tenant.ID, Name: cfg.Tenant.Name, Slug: cfg.Tenant.Slug,
				}); err != nil {
					return err
				}
				pterm.Info.Println("Deleting existing tenant data...")
				deleted := engine.DeleteTenantRows(ctx, sess.conn, d, names, cfg.Tenant.ID)
				pterm.Success.Printfln("Deleted %d rows", deleted)
			}
		}

		jobs := make(map[string]engine.TableJob, len(names))
		for _, name := range names {
			t, ok := parsed[name]
			if !ok {
				continue
			}
			job := engine.Prepare(t, schema.MappingFor(name), nil, cfg.Tenant.ID)
			if sess != nil {
				checkTargetColumns(cmd, sess, cfg, job)
			}
			jobs[name] = job
		}

		var im *engine.Importer
		if sess != nil {
			im = engine.NewImporter(sess.conn, d, cfg.Import.BatchSize)
		} else {
			im = engine.NewImporter(nil, d, cfg.Import.BatchSize)
			im.DryRun = true
		}

		totalRows, totalBatches := 0, 0
		for _, job := range jobs {
			totalRows += len(job.Rows)
			totalBatches += im.Batches(len(job.Rows))
		}

		pterm.Info.Printfln("Importing %d rows from %d tables in %d statements...", totalRows, len(jobs), totalBatches)
		start := time.Now()
		progress, bar := startBar(totalRows, "Importing")
		im.OnProgress = func(n int) { advance(bar, n) }

		var results []engine.Result
		for _, name := range names {
			job, ok := jobs[name]
			if !ok {
				pterm.Warning.Printfln("%s: no data found", name)
				results = append(results, engine.Result{TableName: name, Status: engine.StatusNoData})
				continue
			}
			res, err := im.Import(ctx, job)
			if err != nil {
				progress.Stop()
				return err
			}
			results = append(results, res)
		}
		progress.Stop()

		if sess != nil {
			results = engine.VerifyTenantCounts(ctx, sess.conn, d, cfg.Tenant.ID, results)
		}
		printSummary("Summary Report (Import Order)", results, start)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(convertCmd)

	convertCmd.Flags().String("dump", "", "Dump file (.sql or .zip) to convert")
	convertCmd.Flags().Int("batch-size", 0, "Rows per INSERT statement (overrides config)")
	convertCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render statements without writing to DB")
	convertCmd.Flags().BoolVar(&skipReset, "skip-reset", false, "Keep the organization and the tenant's existing rows")
	convertCmd.Flags().StringSliceVarP(&tables, "tables", "t", []string{}, "Specific tables to import (comma-separated)")

	viper.BindPFlag("dumps.full", convertCmd.Flags().Lookup("dump"))
}

// bindBatchSize binds --batch-size of the running command; convert and incremental
// share the key.
func bindBatchSize(cmd *cobra.Command, args []string) {
	viper.BindPFlag("import.batch_size", cmd.Flags().Lookup("batch-size"))
}

// selectTables keeps the configured tables named in want, in configured order.
func selectTables(all []*schema.TableSpec, want []string) ([]*schema.TableSpec, error) {
	if len(want) == 0 {
		return all, nil
	}
	req := make(map[string]bool, len(want))
	for _, t := range want {
		req[strings.ToLower(t)] = true
	}
	var out []*schema.TableSpec
	for _, t := range all {
		if req[strings.ToLower(t.Name)] {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no matching tables found for inputs: %v", want)
	}
	return out, nil
}

// checkTargetColumns warns about columns the target table does not have; their
// batches will fail.
func checkTargetColumns(cmd *cobra.Command, sess *session, cfg *Config, job engine.TableJob) {
	target, err := schema.TargetColumns(cmd.Context(), sess.conn, sess.dialect.GetColumnsQuery(),
		sess.dialect.GetSchemaName(cfg.Database.Schema), job.Table)
	if err != nil {
		pterm.Warning.Printfln("%s: could not read target columns: %v", job.Table, err)
		return
	}
	if len(target) == 0 {
		pterm.Warning.Printfln("%s: table not found in target schema", job.Table)
		return
	}
	if missing := schema.MissingColumns(job.Columns, target); len(missing) > 0 {
		pterm.Warning.Printfln("%s: target is missing columns %v", job.Table, missing)
	}
}
