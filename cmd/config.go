package cmd

import (
	"fmt"

	"logi-migrate/internal/objectstore"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type DBConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Schema string `mapstructure:"schema"`
	Active bool   `mapstructure:"active"`
}

type TenantConfig struct {
	ID                 string `mapstructure:"id"`
	Name               string `mapstructure:"name"`
	Slug               string `mapstructure:"slug"`
	OrganizationsTable string `mapstructure:"organizations_table"`
}

type ImportConfig struct {
	BatchSize int      `mapstructure:"batch_size"`
	Tables    []string `mapstructure:"tables"`
}

type DumpsConfig struct {
	Full string `mapstructure:"full"`
	Old  string `mapstructure:"old"`
	New  string `mapstructure:"new"`
	// Member is the entry read from .zip dumps; empty picks the first .sql file.
	Member string `mapstructure:"member"`
}

type BlobsConfig struct {
	Table        string `mapstructure:"table"`
	PageSize     int    `mapstructure:"page_size"`
	StorageClass string `mapstructure:"storage_class"`
}

// Config is everything a job needs, resolved from flags, env and the config file.
type Config struct {
	Database  DBConfig             `mapstructure:"database"`
	Databases []DBConfig           `mapstructure:"databases"`
	Tenant    TenantConfig         `mapstructure:"tenant"`
	Import    ImportConfig         `mapstructure:"import"`
	Dumps     DumpsConfig          `mapstructure:"dumps"`
	Storage   objectstore.Settings `mapstructure:"storage"`
	Blobs     BlobsConfig          `mapstructure:"blobs"`
}

// LoadConfig unmarshals v and checks the values every job relies on.
func LoadConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(cfg.Databases) > 0 {
		active, err := activeDBConfig(cfg.Databases)
		if err != nil {
			return nil, err
		}
		// An explicit --dsn still wins over the config file.
		if dsnFromFlag(v) {
			active.DSN = v.GetString("database.dsn")
		}
		if active.Driver == "" {
			active.Driver = cfg.Database.Driver
		}
		if active.Schema == "" {
			active.Schema = cfg.Database.Schema
		}
		cfg.Database = *active
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required (via flag or config)")
	}
	if _, err := uuid.Parse(cfg.Tenant.ID); err != nil {
		return nil, fmt.Errorf("tenant.id %q is not a UUID: %w", cfg.Tenant.ID, err)
	}
	if cfg.Import.BatchSize <= 0 {
		return nil, fmt.Errorf("import.batch_size must be positive, got %d", cfg.Import.BatchSize)
	}
	return &cfg, nil
}

// activeDBConfig returns the single entry marked active.
func activeDBConfig(configs []DBConfig) (*DBConfig, error) {
	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active database found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}
	return activeConfig, nil
}

func dsnFromFlag(v *viper.Viper) bool {
	f := RootCmd.PersistentFlags().Lookup("dsn")
	return v == viper.GetViper() && f != nil && f.Changed
}
