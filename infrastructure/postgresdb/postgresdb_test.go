package postgresdb

import (
	"errors"
	"fmt"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestHandlePgError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "unique", in: fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolation}), want: ErrDBDuplicatedEntry},
		{name: "undefined-table", in: &pgconn.PgError{Code: undefinedTable}, want: ErrUndefinedTable},
		{name: "no-rows", in: pgx.ErrNoRows, want: ErrDBNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HandlePgError(tt.in)
			if !errors.Is(got, tt.want) {
				t.Errorf("HandlePgError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMigrationFilesSorted(t *testing.T) {
	fsys := fstest.MapFS{
		"pg/002_tasks.sql": {Data: []byte("select 2")},
		"pg/001_users.sql": {Data: []byte("select 1")},
		"pg/README.md":     {Data: []byte("docs")},
	}

	files, err := migrationFiles(fsys, "pg")
	if err != nil {
		t.Fatalf("migrationFiles: %v", err)
	}
	want := []string{"001_users.sql", "002_tasks.sql"}
	if !slices.Equal(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
}

func TestPrettyPrintSQL(t *testing.T) {
	in := `SELECT task_id
		FROM tasks
		WHERE ( status = @status )`
	want := "SELECT task_id FROM tasks WHERE(status = @status)"
	if got := prettyPrintSQL(in); got != want {
		t.Errorf("prettyPrintSQL() = %q, want %q", got, want)
	}
}
