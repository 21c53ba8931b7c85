package sqlstore

// Dialect classifies driver errors for a database engine.
type Dialect interface {
	// Name identifies the engine in logs, e.g. "postgres".
	Name() string

	// IsUniqueViolation reports whether err is a unique or primary key
	// constraint violation.
	IsUniqueViolation(err error) bool

	// IsForeignKeyViolation reports whether err is a foreign key violation.
	IsForeignKeyViolation(err error) bool
}
