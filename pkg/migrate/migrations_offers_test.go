package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOffersMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_offers.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no offers migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS offers",
		"FOREIGN KEY (item_id) REFERENCES items(id) ON DELETE CASCADE",
		"CHECK (original_price > 0)",
		"CHECK (discount_percent >= 0 AND discount_percent <= 100)",
		"CHECK (end_date IS NULL OR end_date >= start_date)",
		"DROP TABLE IF EXISTS offers",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
