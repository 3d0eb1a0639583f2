package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/employee"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeProfileRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeProfileRepository(db *database.DB) employee.ProfileRepository {
	return &employeeProfileRepositoryImpl{db: db}
}

func (r *employeeProfileRepositoryImpl) GetByIdentity(ctx context.Context, identity string) (employee.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT identity, full_name, department, designation, resignation_reason, created_at, updated_at
		FROM employee_profiles
		WHERE identity = $1
	`

	var profile employee.Profile
	err := q.QueryRow(ctx, query, identity).Scan(
		&profile.Identity,
		&profile.FullName,
		&profile.Department,
		&profile.Designation,
		&profile.ResignationReason,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Profile{}, employee.ErrProfileNotFound
		}
		return employee.Profile{}, err
	}

	return profile, nil
}

func (r *employeeProfileRepositoryImpl) RecordResignationReason(ctx context.Context, identity, reason string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_profiles
		SET resignation_reason = $1, updated_at = NOW()
		WHERE identity = $2
	`

	commandTag, err := q.Exec(ctx, query, reason, identity)
	if err != nil {
		return fmt.Errorf("failed to record resignation reason for %s: %w", identity, err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrProfileNotFound
	}
	return nil
}
