package cmd

import (
	"logi-migrate/internal/engine"
	"logi-migrate/internal/schema"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cleanTables []string

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete the tenant's rows from the import tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		specs, err := selectTables(schema.ImportTables(), cleanTables)
		if err != nil {
			return err
		}
		names := schema.Names(schema.SortTables(specs))

		sess, err := openSession(ctx, cfg)
		if err != nil {
			return err
		}
		defer sess.Close()
		if err := sess.scopeToTenant(ctx, cfg.Tenant.ID); err != nil {
			return err
		}

		pterm.Info.Printfln("Deleting rows of %s from %d tables...", cfg.Tenant.ID, len(names))
		deleted := engine.DeleteTenantRows(ctx, sess.conn, sess.dialect, names, cfg.Tenant.ID)
		pterm.Success.Printfln("Database Cleaned Successfully! (%d rows)", deleted)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringSliceVarP(&cleanTables, "tables", "t", []string{}, "Specific tables to clean (comma-separated)")
}
