package database

import "trivia-api/internal/config"

// PageClause returns the row-limiting clause for driverName with its bind
// arguments in placeholder order. Oracle and PostgreSQL accept the SQL:2008
// form; SQLite and anything unknown get LIMIT/OFFSET.
func PageClause(driverName string, limit, offset int) (string, []any) {
	switch driverName {
	case config.DriverOracle, config.DriverPostgres:
		return "OFFSET ? ROWS FETCH NEXT ? ROWS ONLY", []any{offset, limit}
	default:
		return "LIMIT ? OFFSET ?", []any{limit, offset}
	}
}

// SupportsReturning reports whether INSERT ... RETURNING can be read as a
// result row. Oracle needs RETURNING ... INTO with an out bind instead.
func SupportsReturning(driverName string) bool {
	return driverName != config.DriverOracle
}
