package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_resources_premises_allocations",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_allocation_source",
		Up:      migrationV2,
	},
}

// RunMigrations executes all pending migrations, each in its own transaction.
func RunMigrations(database *sql.DB) error {
	if _, err := database.Exec(schemaVersionSQL); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var currentVersion int
	err := database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := database.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// CurrentVersion returns the highest applied migration.
func CurrentVersion(database *sql.DB) (int, error) {
	var version int
	err := database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// LatestVersion returns the version a fully migrated database reports.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

// migrationV1 creates the original tables, before allocations carried a source.
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS resources (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL CHECK(type IN ('OFFICIAL', 'WITNESS', 'DRIVER', 'CRPF')),
			name TEXT NOT NULL,
			gender TEXT CHECK(gender IN ('MALE', 'FEMALE', 'OTHER')),
			rank TEXT,
			designation TEXT,
			phone TEXT,
			vehicle_type TEXT,
			vehicle_number TEXT,
			crpf_male_count INTEGER NOT NULL DEFAULT 0 CHECK(crpf_male_count >= 0),
			crpf_female_count INTEGER NOT NULL DEFAULT 0 CHECK(crpf_female_count >= 0),
			status TEXT NOT NULL CHECK(status IN ('AVAILABLE', 'ASSIGNED', 'UNAVAILABLE')) DEFAULT 'AVAILABLE',
			search_id TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_resources_status ON resources(status);
		CREATE INDEX IF NOT EXISTS idx_resources_type ON resources(type);
		CREATE INDEX IF NOT EXISTS idx_resources_search ON resources(search_id);

		CREATE TABLE IF NOT EXISTS premises (
			id TEXT PRIMARY KEY,
			search_id TEXT NOT NULL,
			name TEXT NOT NULL,
			address TEXT,
			nature TEXT NOT NULL CHECK(nature IN ('RESIDENTIAL', 'COMMERCIAL', 'OFFICE', 'INDUSTRIAL', 'OTHERS')),
			has_requirements INTEGER NOT NULL DEFAULT 0,
			male_witness INTEGER NOT NULL DEFAULT 0 CHECK(male_witness >= 0),
			female_witness INTEGER NOT NULL DEFAULT 0 CHECK(female_witness >= 0),
			crpf_team_size INTEGER NOT NULL DEFAULT 0 CHECK(crpf_team_size >= 0),
			crpf_male_count INTEGER NOT NULL DEFAULT 0 CHECK(crpf_male_count >= 0),
			crpf_female_count INTEGER NOT NULL DEFAULT 0 CHECK(crpf_female_count >= 0),
			vehicles INTEGER NOT NULL DEFAULT 0 CHECK(vehicles >= 0),
			recce_status TEXT NOT NULL CHECK(recce_status IN ('PENDING', 'IN_PROGRESS', 'COMPLETED', 'COULD_NOT_LOCATE')) DEFAULT 'PENDING',
			decision_status TEXT NOT NULL CHECK(decision_status IN ('PENDING', 'APPROVED', 'REJECTED', 'ON_HOLD')) DEFAULT 'PENDING',
			allocation_status TEXT NOT NULL CHECK(allocation_status IN ('PENDING', 'DONE')) DEFAULT 'PENDING',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_premises_search ON premises(search_id);
		CREATE INDEX IF NOT EXISTS idx_premises_decision ON premises(decision_status);

		CREATE TABLE IF NOT EXISTS allocations (
			id TEXT PRIMARY KEY,
			premise_id TEXT NOT NULL,
			resource_id TEXT NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (premise_id) REFERENCES premises(id) ON DELETE CASCADE,
			FOREIGN KEY (resource_id) REFERENCES resources(id)
		);
		CREATE INDEX IF NOT EXISTS idx_allocations_premise ON allocations(premise_id);
	`)
	return err
}

// migrationV2 records which path created each allocation.
func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec(`ALTER TABLE allocations ADD COLUMN source TEXT NOT NULL DEFAULT 'sync' CHECK(source IN ('auto', 'sync', 'manual'))`)
	return err
}
