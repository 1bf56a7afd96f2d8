package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/searchops/internal/errs"
	"github.com/example/searchops/internal/ports/secondary"
)

// ResourceRepository implements secondary.ResourceRepository with SQLite.
type ResourceRepository struct {
	db *sql.DB
}

// NewResourceRepository creates a new SQLite resource repository.
func NewResourceRepository(db *sql.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// scanResource scans a resource row into a ResourceRecord.
func scanResource(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ResourceRecord, error) {
	var (
		gender        sql.NullString
		rank          sql.NullString
		designation   sql.NullString
		phone         sql.NullString
		vehicleType   sql.NullString
		vehicleNumber sql.NullString
		searchID      sql.NullString
		createdAt     time.Time
		updatedAt     time.Time
	)

	record := &secondary.ResourceRecord{}
	err := scanner.Scan(
		&record.ID, &record.Type, &record.Name, &gender, &rank, &designation, &phone,
		&vehicleType, &vehicleNumber, &record.CrpfMaleCount, &record.CrpfFemaleCount,
		&record.Status, &searchID, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Gender = gender.String
	record.Rank = rank.String
	record.Designation = designation.String
	record.Phone = phone.String
	record.VehicleType = vehicleType.String
	record.VehicleNumber = vehicleNumber.String
	record.SearchID = searchID.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

const resourceSelectCols = "id, type, name, gender, rank, designation, phone, vehicle_type, vehicle_number, crpf_male_count, crpf_female_count, status, search_id, created_at, updated_at"

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Create persists a new resource.
func (r *ResourceRepository) Create(ctx context.Context, resource *secondary.ResourceRecord) error {
	status := resource.Status
	if status == "" {
		status = "AVAILABLE"
	}

	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO resources (id, type, name, gender, rank, designation, phone, vehicle_type, vehicle_number,
			crpf_male_count, crpf_female_count, status, search_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		resource.ID, resource.Type, resource.Name, nullString(resource.Gender), nullString(resource.Rank),
		nullString(resource.Designation), nullString(resource.Phone), nullString(resource.VehicleType),
		nullString(resource.VehicleNumber), resource.CrpfMaleCount, resource.CrpfFemaleCount,
		status, nullString(resource.SearchID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("resource %s already exists", resource.ID)
		}
		return wrapErr(err, "failed to create resource")
	}

	return nil
}

// GetByID retrieves a resource by its ID.
func (r *ResourceRepository) GetByID(ctx context.Context, id string) (*secondary.ResourceRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+resourceSelectCols+" FROM resources WHERE id = ?",
		id,
	)

	record, err := scanResource(row)
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("resource %s", id)
	}
	if err != nil {
		return nil, wrapErr(err, "failed to get resource")
	}

	return record, nil
}

// GetByIDs retrieves the resources with the given IDs, ordered by ID.
func (r *ResourceRepository) GetByIDs(ctx context.Context, ids []string) ([]*secondary.ResourceRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := "SELECT " + resourceSelectCols + " FROM resources WHERE id IN (" + placeholders(len(ids)) + ") ORDER BY id"
	return r.query(ctx, query, stringArgs(ids)...)
}

// List retrieves resources matching the given filters.
func (r *ResourceRepository) List(ctx context.Context, filters secondary.ResourceFilters) ([]*secondary.ResourceRecord, error) {
	query := "SELECT " + resourceSelectCols + " FROM resources WHERE 1=1"
	args := []any{}

	if filters.Type != "" {
		query += " AND type = ?"
		args = append(args, filters.Type)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	if filters.SearchID != "" {
		query += " AND (search_id = ? OR search_id IS NULL)"
		args = append(args, filters.SearchID)
	}

	query += " ORDER BY id ASC"

	return r.query(ctx, query, args...)
}

func (r *ResourceRepository) query(ctx context.Context, query string, args ...any) ([]*secondary.ResourceRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err, "failed to list resources")
	}
	defer rows.Close()

	var resources []*secondary.ResourceRecord
	for rows.Next() {
		record, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		resources = append(resources, record)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "failed to list resources")
	}
	return resources, nil
}

// UpdateStatusBatch sets status on every id whose current status is in from
// and returns the number of rows changed.
func (r *ResourceRepository) UpdateStatusBatch(ctx context.Context, ids []string, status string, from ...string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := "UPDATE resources SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id IN (" + placeholders(len(ids)) + ")"
	args := append([]any{status}, stringArgs(ids)...)

	if len(from) > 0 {
		query += " AND status IN (" + placeholders(len(from)) + ")"
		args = append(args, stringArgs(from)...)
	}

	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapErr(err, "failed to update resource status")
	}

	rowsAffected, _ := result.RowsAffected()
	return int(rowsAffected), nil
}

// GetNextID returns the next available resource ID.
func (r *ResourceRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM resources WHERE id LIKE 'RES-%'",
	).Scan(&maxID)
	if err != nil {
		return "", wrapErr(err, "failed to get next resource ID")
	}

	return fmt.Sprintf("RES-%03d", maxID+1), nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func stringArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

var _ secondary.ResourceRepository = (*ResourceRepository)(nil)
