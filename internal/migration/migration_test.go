package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func migrationsFS(files map[string]string) fstest.MapFS {
	out := fstest.MapFS{}
	for name, content := range files {
		out[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return out
}

func TestApplyFreshDatabase(t *testing.T) {
	db := openTestDB(t)
	fsys := migrationsFS(map[string]string{
		"001_init.sql":  `CREATE TABLE items (id TEXT PRIMARY KEY);`,
		"002_extra.sql": `ALTER TABLE items ADD COLUMN name TEXT;`,
	})
	r := NewRunner(db, fsys)

	applied, err := r.Apply(nil)
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("Apply() = %d, want 2", applied)
	}

	version, err := r.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion() failed: %v", err)
	}
	if version != 2 {
		t.Errorf("CurrentVersion() = %d, want 2", version)
	}

	if _, err := db.Exec(`INSERT INTO items (id, name) VALUES ('a', 'test')`); err != nil {
		t.Errorf("migrated schema not usable: %v", err)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	fsys := migrationsFS(map[string]string{
		"001_init.sql": `CREATE TABLE items (id TEXT PRIMARY KEY);`,
	})
	r := NewRunner(db, fsys)

	if _, err := r.Apply(nil); err != nil {
		t.Fatalf("first Apply() failed: %v", err)
	}
	applied, err := r.Apply(nil)
	if err != nil {
		t.Fatalf("second Apply() failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("second Apply() = %d, want 0", applied)
	}
}

func TestApplyPendingOnly(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, migrationsFS(map[string]string{
		"001_init.sql": `CREATE TABLE items (id TEXT PRIMARY KEY);`,
	}))
	if _, err := r.Apply(nil); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	r = NewRunner(db, migrationsFS(map[string]string{
		"001_init.sql":  `CREATE TABLE items (id TEXT PRIMARY KEY);`,
		"002_extra.sql": `ALTER TABLE items ADD COLUMN name TEXT;`,
	}))
	applied, err := r.Apply(nil)
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("Apply() = %d, want 1 (only the pending migration)", applied)
	}
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, migrationsFS(map[string]string{
		"001_bad.sql": `THIS IS NOT SQL;`,
	}))

	if _, err := r.Apply(nil); err == nil {
		t.Fatal("Apply() should fail on invalid SQL")
	}

	version, err := r.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion() failed: %v", err)
	}
	if version != 0 {
		t.Errorf("CurrentVersion() = %d after failed migration, want 0", version)
	}
}

func TestInvalidFilenames(t *testing.T) {
	db := openTestDB(t)
	cases := []struct {
		name string
		file string
	}{
		{"no underscore", "001.sql"},
		{"non-numeric version", "abc_init.sql"},
		{"zero version", "000_init.sql"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRunner(db, migrationsFS(map[string]string{
				tc.file: `CREATE TABLE items (id TEXT PRIMARY KEY);`,
			}))
			if _, err := r.Apply(nil); err == nil {
				t.Errorf("Apply() should reject filename %q", tc.file)
			}
		})
	}
}

func TestDuplicateVersions(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, migrationsFS(map[string]string{
		"001_first.sql":  `CREATE TABLE a (id TEXT);`,
		"001_second.sql": `CREATE TABLE b (id TEXT);`,
	}))

	_, err := r.Apply(nil)
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version") {
		t.Errorf("Apply() error = %v, want duplicate version error", err)
	}
}

func TestValidateVersionRejectsNewerSchema(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, migrationsFS(map[string]string{
		"001_init.sql":  `CREATE TABLE items (id TEXT PRIMARY KEY);`,
		"002_extra.sql": `ALTER TABLE items ADD COLUMN name TEXT;`,
	}))
	if _, err := r.Apply(nil); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	// A build that only knows version 1 must refuse a version 2 database.
	older := NewRunner(db, migrationsFS(map[string]string{
		"001_init.sql": `CREATE TABLE items (id TEXT PRIMARY KEY);`,
	}))
	err := older.ValidateVersion()
	if err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("ValidateVersion() error = %v, want newer-than-supported error", err)
	}

	if err := r.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion() failed for a current build: %v", err)
	}
}

func TestNonSQLFilesIgnored(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, migrationsFS(map[string]string{
		"001_init.sql": `CREATE TABLE items (id TEXT PRIMARY KEY);`,
		"README.md":    `not a migration`,
	}))

	applied, err := r.Apply(nil)
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("Apply() = %d, want 1", applied)
	}
}
