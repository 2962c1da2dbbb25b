package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vestiplan/vestiplan-backend/pkg/migrate"
)

func TestArticlesMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_articles_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no articles migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS articles",
		"price NUMERIC(12,2) NOT NULL CHECK (price > 0)",
		"photos TEXT[] NOT NULL DEFAULT ARRAY[]::TEXT[]",
		"status TEXT NOT NULL DEFAULT 'draft'",
		"CREATE INDEX IF NOT EXISTS idx_articles_user_status",
		"CREATE INDEX IF NOT EXISTS idx_articles_user_created_at",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestSellingSuggestionsMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_selling_suggestions_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no selling suggestions migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS selling_suggestions",
		"REFERENCES articles (id) ON DELETE CASCADE",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_selling_suggestions_article_id",
		"status TEXT NOT NULL DEFAULT 'pending'",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}
