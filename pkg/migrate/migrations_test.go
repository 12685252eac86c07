package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marisolvega/vendorhub-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestInitMigrationContainsMoneyConstraints(t *testing.T) {
	content := readMigration(t, "*_init.sql")

	checks := []string{
		"CREATE TYPE credit_entry_type AS ENUM ('credit_add', 'credit_deduct', 'credit_apply', 'credit_reversal')",
		"amount_due numeric(12, 2) NOT NULL DEFAULT 0 CHECK (amount_due >= 0)",
		"qty integer NOT NULL CHECK (qty > 0)",
		"CREATE INDEX credit_entries_pair_idx ON credit_entries (vendor_id, distributor_id, created_at)",
		"DROP TABLE IF EXISTS credit_entries",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestDraftMigrationEnforcesFieldLimits(t *testing.T) {
	content := readMigration(t, "*_draft_orders.sql")

	checks := []string{
		"name text CHECK (name IS NULL OR char_length(name) <= 120)",
		"note text CHECK (note IS NULL OR char_length(note) <= 500)",
		"currency text NOT NULL DEFAULT 'usd'",
		"DROP TABLE IF EXISTS draft_orders",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
