package cmd

import (
	"time"

	"logi-migrate/internal/blobs"
	"logi-migrate/internal/objectstore"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate-blobs",
	Short: "Move inline file blobs from the database to the object store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		sess, err := openSession(ctx, cfg)
		if err != nil {
			return err
		}
		defer sess.Close()

		uploader, err := objectstore.New(ctx, cfg.Storage)
		if err != nil {
			return err
		}
		defer uploader.Close()

		opts := blobs.Options{
			Table:        cfg.Blobs.Table,
			PageSize:     cfg.Blobs.PageSize,
			StorageClass: cfg.Blobs.StorageClass,
		}
		pending, err := blobs.NewMigrator(sess.conn, sess.dialect, uploader, opts).Pending(ctx)
		if err != nil {
			return err
		}
		if pending == 0 {
			pterm.Success.Println("No files to migrate")
			return nil
		}

		pterm.Info.Printfln("Found %d files to migrate to %s bucket '%s'", pending, cfg.Storage.Provider, cfg.Storage.Bucket)
		start := time.Now()
		progress, bar := startBar(pending, "Migrating")
		opts.OnProgress = func() { bar.Incr() }

		stats, err := blobs.NewMigrator(sess.conn, sess.dialect, uploader, opts).Run(ctx)
		progress.Stop()
		if err != nil {
			return err
		}

		pterm.Success.Printfln("Migrated %d of %d files, %d errors (%s)", stats.Migrated, stats.Pending, stats.Errors, time.Since(start).Round(time.Millisecond))
		pterm.Info.Printfln("Verification: %d rows in object store, %d rows still inline", stats.Stored, stats.Inline)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().Int("page-size", 0, "Rows fetched per page (overrides config)")
	migrateCmd.Flags().String("bucket", "", "Target bucket (overrides config)")
	migrateCmd.Flags().String("provider", "", "Object store provider: GCS, S3 or MINIO (overrides config)")

	viper.BindPFlag("blobs.page_size", migrateCmd.Flags().Lookup("page-size"))
	viper.BindPFlag("storage.bucket", migrateCmd.Flags().Lookup("bucket"))
	viper.BindPFlag("storage.provider", migrateCmd.Flags().Lookup("provider"))
}
