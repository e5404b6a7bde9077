package dialect

import "fmt"

// GetDialect returns the Dialect implementation for a driver name.
func GetDialect(driver string) (Dialect, error) {
	switch driver {
	case "postgres", "postgresql", "":
		return &PostgresDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q: only postgres is supported", driver)
	}
}

// Ensure interface implementation
var _ Dialect = (*PostgresDialect)(nil)
