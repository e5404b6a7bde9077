package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	dsn      string
	tenantID string
)

var RootCmd = &cobra.Command{
	Use:   "logi-migrate",
	Short: "Multi-tenant migration toolkit for the logistics database",
	Long: `
  _     ___   ____ ___   __  __ ___ ____ ____      _  _____ _____
 | |   / _ \ / ___|_ _| |  \/  |_ _/ ___|  _ \    / \|_   _| ____|
 | |  | | | | |  _ | |  | |\/| || | |  _| |_) |  / _ \ | | |  _|
 | |__| |_| | |_| || |  | |  | || | |_| |  _ <  / ___ \| | | |___
 |_____\___/ \____|___| |_|  |_|___\____|_| \_\/_/   \_\_| |_____|

Convert single-tenant dumps, import dump increments and move file blobs to object storage.
`,
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		stop()
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./logi-migrate.yaml)")
	RootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Target database DSN")
	RootCmd.PersistentFlags().StringVar(&tenantID, "tenant", "", "Organization id written into every imported row")
	RootCmd.PersistentFlags().BoolVarP(&pterm.PrintDebugMessages, "debug", "", false, "enable debug messages")
	RootCmd.PersistentFlags().BoolVarP(&pterm.RawOutput, "raw", "", false, "print unstyled raw output (set it if output is written to a file)")

	viper.BindPFlag("database.dsn", RootCmd.PersistentFlags().Lookup("dsn"))
	viper.BindPFlag("tenant.id", RootCmd.PersistentFlags().Lookup("tenant"))

	setDefaults(viper.GetViper())
}

// setDefaults mirrors the constants the migration was first run with.
func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "postgres://postgres@127.0.0.1:5432/rust_logi_test?sslmode=disable")
	v.SetDefault("database.schema", "public")

	v.SetDefault("tenant.id", "00000000-0000-0000-0000-000000000001")
	v.SetDefault("tenant.name", "Test Organization")
	v.SetDefault("tenant.slug", "test-org")
	v.SetDefault("tenant.organizations_table", "organizations")

	v.SetDefault("import.batch_size", 50)

	v.SetDefault("dumps.full", "db202601031200.zip")
	v.SetDefault("dumps.old", "db202601031200.zip")
	v.SetDefault("dumps.new", "db202601301200.zip")

	v.SetDefault("storage.provider", "GCS")
	v.SetDefault("storage.bucket", "rust-logi-files")

	v.SetDefault("blobs.table", "files")
	v.SetDefault("blobs.page_size", 100)
	v.SetDefault("blobs.storage_class", "STANDARD")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		if ex, err := os.Executable(); err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}
		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("logi-migrate")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("LOGI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		pterm.Info.Println("Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		pterm.Warning.Printfln("Could not read %s: %v", cfgFile, err)
	}
}
