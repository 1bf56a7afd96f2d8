package db

import "database/sql"

// SchemaSQL is the complete schema for fresh installs.
//
// This is the single source of truth for the database schema. Repository
// tests load it through GetSchemaSQL(), so a repository that references a
// missing column fails with "no such column" at test time.
//
// When adding columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Resources (officials, witnesses, drivers, CRPF squads)
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

-- Premises
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

-- Allocations (active premise/resource pairs; a resource has at most one)
CREATE TABLE IF NOT EXISTS allocations (
	id TEXT PRIMARY KEY,
	premise_id TEXT NOT NULL,
	resource_id TEXT NOT NULL UNIQUE,
	source TEXT NOT NULL CHECK(source IN ('auto', 'sync', 'manual')),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (premise_id) REFERENCES premises(id) ON DELETE CASCADE,
	FOREIGN KEY (resource_id) REFERENCES resources(id)
);

CREATE INDEX IF NOT EXISTS idx_allocations_premise ON allocations(premise_id);
`

const schemaVersionSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// InitSchema creates the schema on a fresh database and runs pending
// migrations on an existing one.
func InitSchema(database *sql.DB) error {
	var tableCount int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Fresh install: create the current schema and mark every migration applied.
		if _, err := database.Exec(SchemaSQL); err != nil {
			return err
		}
		if _, err := database.Exec(schemaVersionSQL); err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return err
			}
		}
		return nil
	}

	return RunMigrations(database)
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
