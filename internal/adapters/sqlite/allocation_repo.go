package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/searchops/internal/errs"
	"github.com/example/searchops/internal/ports/secondary"
)

// AllocationLedger implements secondary.AllocationLedger with SQLite.
type AllocationLedger struct {
	db *sql.DB
}

// NewAllocationLedger creates a new SQLite allocation ledger.
func NewAllocationLedger(db *sql.DB) *AllocationLedger {
	return &AllocationLedger{db: db}
}

// scanAllocation scans an allocation row into an AllocationRecord.
func scanAllocation(scanner interface {
	Scan(dest ...any) error
}) (*secondary.AllocationRecord, error) {
	var createdAt time.Time

	record := &secondary.AllocationRecord{}
	if err := scanner.Scan(&record.ID, &record.PremiseID, &record.ResourceID, &record.Source, &createdAt); err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

const allocationSelectCols = "id, premise_id, resource_id, source, created_at"

// Create inserts one allocation per record. Records without an ID get a
// random one. A resource that is already allocated is a conflict.
func (l *AllocationLedger) Create(ctx context.Context, records []secondary.AllocationRecord) error {
	q := conn(ctx, l.db)
	for _, rec := range records {
		id := rec.ID
		if id == "" {
			id = uuid.NewString()
		}
		source := defaultString(rec.Source, "sync")

		_, err := q.ExecContext(ctx,
			"INSERT INTO allocations (id, premise_id, resource_id, source) VALUES (?, ?, ?, ?)",
			id, rec.PremiseID, rec.ResourceID, source,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return errs.Conflict("resource %s is already allocated", rec.ResourceID)
			}
			return wrapErr(err, "failed to create allocation")
		}
	}

	return nil
}

// DeleteByResourceIDs removes the allocations of the given resources from a
// premise and returns the resource IDs that were deleted.
func (l *AllocationLedger) DeleteByResourceIDs(ctx context.Context, premiseID string, resourceIDs []string) ([]string, error) {
	if len(resourceIDs) == 0 {
		return nil, nil
	}

	q := conn(ctx, l.db)
	args := append([]any{premiseID}, stringArgs(resourceIDs)...)
	rows, err := q.QueryContext(ctx,
		"SELECT resource_id FROM allocations WHERE premise_id = ? AND resource_id IN ("+placeholders(len(resourceIDs))+") ORDER BY resource_id",
		args...,
	)
	if err != nil {
		return nil, wrapErr(err, "failed to find allocations")
	}

	var deleted []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		deleted = append(deleted, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "failed to find allocations")
	}

	if len(deleted) == 0 {
		return nil, nil
	}

	args = append([]any{premiseID}, stringArgs(deleted)...)
	_, err = q.ExecContext(ctx,
		"DELETE FROM allocations WHERE premise_id = ? AND resource_id IN ("+placeholders(len(deleted))+")",
		args...,
	)
	if err != nil {
		return nil, wrapErr(err, "failed to delete allocations")
	}

	return deleted, nil
}

// ListByPremise returns the active allocations of a premise.
func (l *AllocationLedger) ListByPremise(ctx context.Context, premiseID string) ([]*secondary.AllocationRecord, error) {
	return l.ListByPremises(ctx, []string{premiseID})
}

// ListByPremises returns the active allocations of several premises.
func (l *AllocationLedger) ListByPremises(ctx context.Context, premiseIDs []string) ([]*secondary.AllocationRecord, error) {
	if len(premiseIDs) == 0 {
		return nil, nil
	}

	rows, err := conn(ctx, l.db).QueryContext(ctx,
		"SELECT "+allocationSelectCols+" FROM allocations WHERE premise_id IN ("+placeholders(len(premiseIDs))+") ORDER BY premise_id, created_at, resource_id",
		stringArgs(premiseIDs)...,
	)
	if err != nil {
		return nil, wrapErr(err, "failed to list allocations")
	}
	defer rows.Close()

	var allocations []*secondary.AllocationRecord
	for rows.Next() {
		record, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, record)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "failed to list allocations")
	}
	return allocations, nil
}

// CountByPremise returns the number of active allocations of a premise.
func (l *AllocationLedger) CountByPremise(ctx context.Context, premiseID string) (int, error) {
	var count int
	err := conn(ctx, l.db).QueryRowContext(ctx,
		"SELECT COUNT(*) FROM allocations WHERE premise_id = ?",
		premiseID,
	).Scan(&count)
	if err != nil {
		return 0, wrapErr(err, "failed to count allocations")
	}

	return count, nil
}

var _ secondary.AllocationLedger = (*AllocationLedger)(nil)
