package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/searchops/internal/errs"
	"github.com/example/searchops/internal/ports/secondary"
)

// PremiseRepository implements secondary.PremiseRepository with SQLite.
type PremiseRepository struct {
	db *sql.DB
}

// NewPremiseRepository creates a new SQLite premise repository.
func NewPremiseRepository(db *sql.DB) *PremiseRepository {
	return &PremiseRepository{db: db}
}

// scanPremise scans a premise row into a PremiseRecord.
func scanPremise(scanner interface {
	Scan(dest ...any) error
}) (*secondary.PremiseRecord, error) {
	var (
		address         sql.NullString
		hasRequirements bool
		req             secondary.RequirementsRecord
		createdAt       time.Time
		updatedAt       time.Time
	)

	record := &secondary.PremiseRecord{}
	err := scanner.Scan(
		&record.ID, &record.SearchID, &record.Name, &address, &record.Nature, &hasRequirements,
		&req.MaleWitness, &req.FemaleWitness, &req.CrpfTeamSize, &req.CrpfMaleCount, &req.CrpfFemaleCount, &req.Vehicles,
		&record.RecceStatus, &record.DecisionStatus, &record.AllocationStatus, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Address = address.String
	if hasRequirements {
		record.Requirements = &req
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

const premiseSelectCols = "id, search_id, name, address, nature, has_requirements, male_witness, female_witness, crpf_team_size, crpf_male_count, crpf_female_count, vehicles, recce_status, decision_status, allocation_status, created_at, updated_at"

// Create persists a new premise.
func (r *PremiseRepository) Create(ctx context.Context, premise *secondary.PremiseRecord) error {
	var req secondary.RequirementsRecord
	hasRequirements := premise.Requirements != nil
	if hasRequirements {
		req = *premise.Requirements
	}

	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO premises (id, search_id, name, address, nature, has_requirements,
			male_witness, female_witness, crpf_team_size, crpf_male_count, crpf_female_count, vehicles,
			recce_status, decision_status, allocation_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		premise.ID, premise.SearchID, premise.Name, nullString(premise.Address), premise.Nature, hasRequirements,
		req.MaleWitness, req.FemaleWitness, req.CrpfTeamSize, req.CrpfMaleCount, req.CrpfFemaleCount, req.Vehicles,
		defaultString(premise.RecceStatus, "PENDING"),
		defaultString(premise.DecisionStatus, "PENDING"),
		defaultString(premise.AllocationStatus, "PENDING"),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("premise %s already exists", premise.ID)
		}
		return wrapErr(err, "failed to create premise")
	}

	return nil
}

// GetByID retrieves a premise by its ID.
func (r *PremiseRepository) GetByID(ctx context.Context, id string) (*secondary.PremiseRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+premiseSelectCols+" FROM premises WHERE id = ?",
		id,
	)

	record, err := scanPremise(row)
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("premise %s", id)
	}
	if err != nil {
		return nil, wrapErr(err, "failed to get premise")
	}

	return record, nil
}

// List retrieves premises matching the given filters.
func (r *PremiseRepository) List(ctx context.Context, filters secondary.PremiseFilters) ([]*secondary.PremiseRecord, error) {
	query := "SELECT " + premiseSelectCols + " FROM premises WHERE 1=1"
	args := []any{}

	if filters.SearchID != "" {
		query += " AND search_id = ?"
		args = append(args, filters.SearchID)
	}

	if filters.DecisionStatus != "" {
		query += " AND decision_status = ?"
		args = append(args, filters.DecisionStatus)
	}

	query += " ORDER BY id ASC"

	return r.query(ctx, query, args...)
}

// ListEligibleForAllocation retrieves every APPROVED premise.
func (r *PremiseRepository) ListEligibleForAllocation(ctx context.Context) ([]*secondary.PremiseRecord, error) {
	return r.List(ctx, secondary.PremiseFilters{DecisionStatus: "APPROVED"})
}

func (r *PremiseRepository) query(ctx context.Context, query string, args ...any) ([]*secondary.PremiseRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err, "failed to list premises")
	}
	defer rows.Close()

	var premises []*secondary.PremiseRecord
	for rows.Next() {
		record, err := scanPremise(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan premise: %w", err)
		}
		premises = append(premises, record)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "failed to list premises")
	}
	return premises, nil
}

// UpdateRecceStatus sets the recce track.
func (r *PremiseRepository) UpdateRecceStatus(ctx context.Context, id, status string) error {
	return r.updateColumn(ctx, id, "recce_status", status)
}

// UpdateDecisionStatus sets the decision track.
func (r *PremiseRepository) UpdateDecisionStatus(ctx context.Context, id, status string) error {
	return r.updateColumn(ctx, id, "decision_status", status)
}

// UpdateAllocationStatus sets the completion marker.
func (r *PremiseRepository) UpdateAllocationStatus(ctx context.Context, id, status string) error {
	return r.updateColumn(ctx, id, "allocation_status", status)
}

// updateColumn sets one status column. column is always a constant from this file.
func (r *PremiseRepository) updateColumn(ctx context.Context, id, column, value string) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE premises SET "+column+" = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		value, id,
	)
	if err != nil {
		return wrapErr(err, "failed to update premise %s", column)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFound("premise %s", id)
	}

	return nil
}

// UpdateRequirements replaces the requisition.
func (r *PremiseRepository) UpdateRequirements(ctx context.Context, id string, req secondary.RequirementsRecord) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE premises SET has_requirements = 1, male_witness = ?, female_witness = ?, crpf_team_size = ?,
			crpf_male_count = ?, crpf_female_count = ?, vehicles = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		req.MaleWitness, req.FemaleWitness, req.CrpfTeamSize, req.CrpfMaleCount, req.CrpfFemaleCount, req.Vehicles, id,
	)
	if err != nil {
		return wrapErr(err, "failed to update premise requirements")
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errs.NotFound("premise %s", id)
	}

	return nil
}

// GetNextID returns the next available premise ID.
func (r *PremiseRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM premises WHERE id LIKE 'PREM-%'",
	).Scan(&maxID)
	if err != nil {
		return "", wrapErr(err, "failed to get next premise ID")
	}

	return fmt.Sprintf("PREM-%03d", maxID+1), nil
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

var _ secondary.PremiseRepository = (*PremiseRepository)(nil)
