package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestDialect_Classification(t *testing.T) {
	t.Parallel()

	unique := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "lesson_upvotes_user_lesson_key"}
	foreignKey := &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "lesson_upvotes_lesson_id_fkey"}
	check := &pgconn.PgError{Code: "23514"}

	tests := []struct {
		name       string
		err        error
		unique     bool
		foreignKey bool
	}{
		{name: "unique", err: unique, unique: true},
		{name: "wrapped unique", err: fmt.Errorf("insert: %w", unique), unique: true},
		{name: "foreign key", err: foreignKey, foreignKey: true},
		{name: "wrapped foreign key", err: fmt.Errorf("insert: %w", foreignKey), foreignKey: true},
		{name: "check violation", err: check},
		{name: "plain error", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	dialect := Dialect{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.unique, dialect.IsUniqueViolation(tt.err))
			assert.Equal(t, tt.foreignKey, dialect.IsForeignKeyViolation(tt.err))
		})
	}

	assert.Equal(t, "postgres", dialect.Name())
}

func TestMigrationsEmbedded(t *testing.T) {
	t.Parallel()

	entries, err := migrationFiles.ReadDir("migrations")
	assert.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"00001_create_lessons.sql", "00002_create_lesson_upvotes.sql"}, names)
}
