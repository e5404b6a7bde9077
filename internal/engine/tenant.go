package engine

import (
	"context"
	"fmt"

	"logi-migrate/internal/dialect"
	"logi-migrate/internal/schema"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
)

// Organization is the tenant row created before a full import.
type Organization struct {
	ID   string
	Name string
	Slug string
}

// SessionTenantVariable is read by the target's row level security policies.
const SessionTenantVariable = "app.current_organization_id"

// EnsureOrganization creates the tenant organization unless it already exists.
func EnsureOrganization(ctx context.Context, db DB, d dialect.Dialect, table string, org Organization) error {
	if _, err := db.ExecContext(ctx, d.InsertOrganizationQuery(table), org.ID, org.Name, org.Slug); err != nil {
		return fmt.Errorf("failed to create organization %s: %w", org.ID, err)
	}
	return nil
}

// DeleteTenantRows removes the tenant's rows from tables in reverse order so children
// go before parents. Failures are logged and skipped. It returns the rows deleted.
func DeleteTenantRows(ctx context.Context, db DB, d dialect.Dialect, tables []string, tenantID string) int64 {
	var deleted int64
	ordered := lo.Reverse(append([]string(nil), tables...))
	for i, table := range ordered {
		res, err := db.ExecContext(ctx, d.DeleteTenantQuery(table, schema.TenantColumn), tenantID)
		if err != nil {
			pterm.Warning.Printfln("Failed to clean %s: %v (continuing...)", table, err)
			continue
		}
		if n, err := res.RowsAffected(); err == nil {
			deleted += n
		}
		if (i+1)%5 == 0 || i+1 == len(ordered) {
			pterm.Debug.Printfln("Cleaned %d/%d tables...", i+1, len(ordered))
		}
	}
	return deleted
}

// SetSessionVariable sets a session-scoped setting on the connection.
func SetSessionVariable(ctx context.Context, db DB, d dialect.Dialect, name, value string) error {
	if _, err := db.ExecContext(ctx, d.SetSessionVariableQuery(), name, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", name, err)
	}
	return nil
}

// VerifyTenantCounts re-counts the tenant's rows in every reported table.
func VerifyTenantCounts(ctx context.Context, db DB, d dialect.Dialect, tenantID string, results []Result) []Result {
	verified := make([]Result, 0, len(results))
	for _, res := range results {
		if res.Status == StatusNoData || res.Status == StatusDryRun {
			verified = append(verified, res)
			continue
		}

		var current int
		err := db.QueryRowContext(ctx, d.CountTenantQuery(res.TableName, schema.TenantColumn), tenantID).Scan(&current)

		status := StatusOK
		if err != nil {
			status = fmt.Sprintf("VERIFY_FAIL: %v", err)
		} else if current < res.Target {
			status = fmt.Sprintf("PARTIAL: %d/%d", current, res.Target)
		}

		res.Actual = current
		res.Status = status
		verified = append(verified, res)
	}
	return verified
}
