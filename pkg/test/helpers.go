package test

import (
	"database/sql"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"petstore/internal/adapter/database/sqlite"
	"petstore/pkg"
)

type TestSetup struct {
	DB *sqlite.DB
}

// InitTestDB opens an in-memory sqlite database with the full schema applied.
func InitTestDB() *sqlite.DB {
	db, err := sql.Open("sqlite3", ":memory:")

	if err != nil {
		log.Fatal(err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		log.Fatal(err)
	}

	migrationsPath := filepath.Join(pkg.FindProjectRoot(), "db", "migrations", "sqlite")
	sqlite.RunMigrations(db, migrationsPath)

	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	return &sqlite.DB{
		DB:           db,
		QueryBuilder: &queryBuilder,
	}
}

func SetupTest(t *testing.T) *TestSetup {
	return &TestSetup{
		DB: InitTestDB(),
	}
}

func TeardownTest(t *testing.T, setup *TestSetup) {
	if setup.DB != nil {
		CleanDB(t, setup)
		setup.DB.Close()
	}
}

func CleanDB(t *testing.T, setup *TestSetup) {
	rows, err := setup.DB.Query("SELECT name FROM sqlite_master WHERE type = 'table' and name not in ('sqlite_sequence', 'schema_migrations')")
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}
	defer rows.Close()

	tables := []string{}

	for rows.Next() {
		var table string

		if err := rows.Scan(&table); err != nil {
			t.Fatalf("Failed to scan table name: %v", err)
		}

		tables = append(tables, strings.TrimSpace(table))
	}

	if err := rows.Err(); err != nil {
		t.Fatalf("Error iterating over rows: %v", err)
	}

	for _, table := range tables {
		if _, err := setup.DB.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}
