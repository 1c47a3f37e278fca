package dao

import "strings"

// Fallback keys for the SQL resolvers.
const (
	PostgresFallbackKey = "postgres.constraint.violation"
	MySQLFallbackKey    = "mysql.duplicate.key"
)

// PostgresConstraintNameResolver extracts the constraint name from messages
// like `duplicate key value violates unique constraint "uk_order_id"`.
type PostgresConstraintNameResolver struct{}

func (PostgresConstraintNameResolver) DBType() DBType { return DBTypePostgres }

func (PostgresConstraintNameResolver) ResolveConstraintName(exceptionMessage string) string {
	if name, ok := quotedToken(exceptionMessage, `constraint "`, `"`); ok {
		return name
	}
	return PostgresFallbackKey
}

// MySQLConstraintNameResolver extracts the key name from messages like
// `Duplicate entry 'x' for key 'orders.uk_email'`.
type MySQLConstraintNameResolver struct{}

func (MySQLConstraintNameResolver) DBType() DBType { return DBTypeMySQL }

func (MySQLConstraintNameResolver) ResolveConstraintName(exceptionMessage string) string {
	name, ok := quotedToken(exceptionMessage, `for key '`, `'`)
	if !ok {
		return MySQLFallbackKey
	}
	return name
}

// quotedToken returns the substring between the first occurrence of marker
// and the following closing quote.
func quotedToken(msg, marker, quote string) (string, bool) {
	start := strings.Index(msg, marker)
	if start < 0 {
		return "", false
	}
	rest := msg[start+len(marker):]
	end := strings.Index(rest, quote)
	if end <= 0 {
		return "", false
	}
	return rest[:end], true
}
