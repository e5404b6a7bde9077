package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"logi-migrate/internal/dialect"
	"logi-migrate/internal/engine"

	"github.com/pterm/pterm"
)

// session is one dedicated connection; session settings stick to it.
type session struct {
	db      *sql.DB
	conn    *sql.Conn
	dialect dialect.Dialect
}

func openSession(ctx context.Context, cfg *Config) (*session, error) {
	d, err := dialect.GetDialect(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	pterm.Success.Printfln("Connected via %s", cfg.Database.Driver)
	return &session{db: db, conn: conn, dialect: d}, nil
}

// scopeToTenant points row level security at the tenant for the rest of the session.
func (s *session) scopeToTenant(ctx context.Context, tenant string) error {
	if err := engine.SetSessionVariable(ctx, s.conn, s.dialect, engine.SessionTenantVariable, tenant); err != nil {
		return err
	}
	pterm.Info.Printfln("RLS organization set to %s", tenant)
	return nil
}

func (s *session) Close() {
	s.conn.Close()
	s.db.Close()
}
