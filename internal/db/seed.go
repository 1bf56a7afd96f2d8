package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates the database with a small demonstration search:
// a mixed resource pool and premises at every stage of the workflow.
func SeedFixtures(database *sql.DB) error {
	officials := []struct{ id, name, gender, rank, designation string }{
		{"RES-001", "A. Sharma", "MALE", "AD", "Assistant Director"},
		{"RES-002", "P. Nair", "FEMALE", "EO", "Enforcement Officer"},
		{"RES-003", "K. Rao", "MALE", "AEO", "Assistant Enforcement Officer"},
		{"RES-004", "S. Iyer", "FEMALE", "INSPECTOR", "Inspector"},
		{"RES-005", "M. Khan", "MALE", "SI", "Sub-Inspector"},
	}
	for _, o := range officials {
		if _, err := database.Exec(
			"INSERT INTO resources (id, type, name, gender, rank, designation) VALUES (?, 'OFFICIAL', ?, ?, ?, ?)",
			o.id, o.name, o.gender, o.rank, o.designation,
		); err != nil {
			return fmt.Errorf("seed officials: %w", err)
		}
	}

	witnesses := []struct{ id, name, gender, phone string }{
		{"RES-006", "R. Gupta", "MALE", "9800000001"},
		{"RES-007", "L. Das", "FEMALE", "9800000002"},
		{"RES-008", "V. Menon", "MALE", "9800000003"},
		{"RES-009", "N. Bose", "FEMALE", "9800000004"},
	}
	for _, w := range witnesses {
		if _, err := database.Exec(
			"INSERT INTO resources (id, type, name, gender, phone) VALUES (?, 'WITNESS', ?, ?, ?)",
			w.id, w.name, w.gender, w.phone,
		); err != nil {
			return fmt.Errorf("seed witnesses: %w", err)
		}
	}

	drivers := []struct{ id, name, vehicleType, vehicleNumber string }{
		{"RES-010", "T. Singh", "SUV", "DL01AB1234"},
		{"RES-011", "H. Yadav", "SEDAN", "DL01CD5678"},
	}
	for _, d := range drivers {
		if _, err := database.Exec(
			"INSERT INTO resources (id, type, name, gender, vehicle_type, vehicle_number) VALUES (?, 'DRIVER', ?, 'MALE', ?, ?)",
			d.id, d.name, d.vehicleType, d.vehicleNumber,
		); err != nil {
			return fmt.Errorf("seed drivers: %w", err)
		}
	}

	squads := []struct {
		id, name     string
		male, female int
	}{
		{"RES-012", "CRPF Alpha", 4, 2},
		{"RES-013", "CRPF Bravo", 6, 0},
		{"RES-014", "CRPF Charlie", 2, 2},
	}
	for _, s := range squads {
		if _, err := database.Exec(
			"INSERT INTO resources (id, type, name, crpf_male_count, crpf_female_count) VALUES (?, 'CRPF', ?, ?, ?)",
			s.id, s.name, s.male, s.female,
		); err != nil {
			return fmt.Errorf("seed squads: %w", err)
		}
	}

	premises := []struct {
		id, name, address, nature, recce, decision string
		withRequirements                           bool
	}{
		{"PREM-001", "Main residence", "12 Park Street", "RESIDENTIAL", "COMPLETED", "APPROVED", true},
		{"PREM-002", "Registered office", "4th Floor, Trade Tower", "OFFICE", "COMPLETED", "APPROVED", true},
		{"PREM-003", "Warehouse", "Plot 7, Industrial Area", "INDUSTRIAL", "IN_PROGRESS", "PENDING", false},
	}
	for _, p := range premises {
		hasReq := 0
		if p.withRequirements {
			hasReq = 1
		}
		if _, err := database.Exec(
			`INSERT INTO premises (id, search_id, name, address, nature, has_requirements,
				male_witness, female_witness, crpf_team_size, crpf_male_count, crpf_female_count, vehicles,
				recce_status, decision_status)
			VALUES (?, 'SRCH-DEMO', ?, ?, ?, ?, 1, 1, 6, 0, 2, 1, ?, ?)`,
			p.id, p.name, p.address, p.nature, hasReq, p.recce, p.decision,
		); err != nil {
			return fmt.Errorf("seed premises: %w", err)
		}
	}

	return nil
}
