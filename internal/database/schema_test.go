package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const migrationsDir = "../../migrations"

func TestMigrationFilesExist(t *testing.T) {
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		t.Fatal("Migrations directory does not exist")
	}

	expectedMigrations := []string{
		"00001_create_products_table.sql",
	}

	for _, migration := range expectedMigrations {
		path := filepath.Join(migrationsDir, migration)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Migration file %s does not exist", migration)
		}
	}
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("Failed to read migrations directory: %v", err)
	}

	sqlFileCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		sqlFileCount++
		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", file.Name(), err)
			continue
		}

		contentStr := string(content)

		if !strings.Contains(contentStr, "-- +goose Up") {
			t.Errorf("Migration file %s missing '-- +goose Up' directive", file.Name())
		}

		if !strings.Contains(contentStr, "-- +goose Down") {
			t.Errorf("Migration file %s missing '-- +goose Down' directive", file.Name())
		}
	}

	if sqlFileCount == 0 {
		t.Error("No SQL migration files found")
	}
}

func TestProductsTableHasRequiredColumns(t *testing.T) {
	path := filepath.Join(migrationsDir, "00001_create_products_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read products migration: %v", err)
	}

	contentStr := string(content)
	requiredColumns := []string{
		"id UUID PRIMARY KEY",
		"name VARCHAR",
		"brand VARCHAR",
		"sku VARCHAR",
		"category VARCHAR",
		"price DECIMAL",
		"release_date TIMESTAMPTZ",
		"image_url VARCHAR",
		"is_available BOOLEAN",
		"stock_quantity INTEGER",
		"created_at TIMESTAMPTZ",
		"updated_at TIMESTAMPTZ",
	}

	for _, column := range requiredColumns {
		if !strings.Contains(contentStr, column) {
			t.Errorf("Products table missing required column definition: %s", column)
		}
	}

	if !strings.Contains(contentStr, "DROP TABLE IF EXISTS products") {
		t.Error("Products migration does not drop the table in the down section")
	}
}

func TestProductsTableHasUniqueConstraints(t *testing.T) {
	path := filepath.Join(migrationsDir, "00001_create_products_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read products migration: %v", err)
	}

	contentStr := string(content)

	// The repository maps constraint violations back to sentinel errors by
	// name, so the names are part of the contract.
	if !strings.Contains(contentStr, "CONSTRAINT products_sku_key UNIQUE (sku)") {
		t.Error("Products table missing unique constraint on sku")
	}

	if !strings.Contains(contentStr, "CONSTRAINT products_name_brand_key UNIQUE (name, brand)") {
		t.Error("Products table missing unique constraint on (name, brand)")
	}
}

func TestProductsTableHasCreatedAtIndex(t *testing.T) {
	path := filepath.Join(migrationsDir, "00001_create_products_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read products migration: %v", err)
	}

	// The daily creation cap counts rows by created_at on every create.
	if !strings.Contains(string(content), "idx_products_created_at") {
		t.Error("Products table missing index on created_at")
	}
}
