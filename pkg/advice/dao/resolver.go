// Package dao provides advices for storage-constraint violations. A
// ConstraintNameResolver parses a driver's raw violation message into a
// stable symbolic key so generated error codes stay storage-agnostic.
package dao

// DBType identifies a storage engine.
type DBType string

const (
	DBTypeMongo    DBType = "mongodb"
	DBTypePostgres DBType = "postgresql"
	DBTypeMySQL    DBType = "mysql"
)

// ConstraintNameResolver turns a storage engine's raw violation message
// into an entity.index-shaped key. Resolution is best-effort diagnostic
// enrichment: parse failures yield the engine's generic fallback key,
// never an error.
type ConstraintNameResolver interface {
	// ResolveConstraintName parses the raw exception message.
	ResolveConstraintName(exceptionMessage string) string

	// DBType identifies the engine this resolver handles.
	DBType() DBType
}
