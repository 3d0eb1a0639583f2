package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/resignation"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type resignationRepositoryImpl struct {
	db *database.DB
}

func NewResignationRepository(db *database.DB) resignation.Repository {
	return &resignationRepositoryImpl{db: db}
}

const resignationColumns = `
	rr.id, rr.identity, rr.full_name, rr.department, rr.designation, rr.reason,
	rr.manager_decision, rr.manager_note, rr.manager_decided_by, rr.manager_decided_at,
	rr.hr_decision, rr.hr_note, rr.hr_decided_by, rr.hr_decided_at,
	rr.overall_status, rr.submitted_at, rr.relieved_at, rr.created_at, rr.updated_at
`

func scanRequest(row pgx.Row) (resignation.Request, error) {
	var req resignation.Request
	err := row.Scan(
		&req.ID, &req.Identity, &req.FullName, &req.Department, &req.Designation, &req.Reason,
		&req.ManagerDecision, &req.ManagerNote, &req.ManagerDecidedBy, &req.ManagerDecidedAt,
		&req.HRDecision, &req.HRNote, &req.HRDecidedBy, &req.HRDecidedAt,
		&req.OverallStatus, &req.SubmittedAt, &req.RelievedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

func (r *resignationRepositoryImpl) Create(ctx context.Context, request resignation.Request) (resignation.Request, error) {
	q := GetQuerier(ctx, r.db)

	// The partial unique index on (identity) WHERE overall_status = 'pending'
	// is the authority on the single-active-request invariant; a violation
	// surfaces here as SQLSTATE 23505 even when two submissions race past the
	// service-level pre-check.
	query := `
		INSERT INTO resignation_requests (
			id, identity, full_name, department, designation, reason,
			manager_decision, hr_decision, overall_status,
			submitted_at, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5,
			'pending', 'pending', 'pending',
			NOW(), NOW(), NOW()
		) RETURNING
			id, identity, full_name, department, designation, reason,
			manager_decision, manager_note, manager_decided_by, manager_decided_at,
			hr_decision, hr_note, hr_decided_by, hr_decided_at,
			overall_status, submitted_at, relieved_at, created_at, updated_at
	`

	created, err := scanRequest(q.QueryRow(ctx, query,
		request.Identity, request.FullName, request.Department, request.Designation, request.Reason,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return resignation.Request{}, resignation.ErrDuplicateActiveRequest
		}
		return resignation.Request{}, fmt.Errorf("failed to create resignation request: %w", err)
	}

	return created, nil
}

func (r *resignationRepositoryImpl) GetByID(ctx context.Context, id string) (resignation.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + resignationColumns + `
		FROM resignation_requests rr
		WHERE rr.id = $1
	`

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resignation.Request{}, resignation.ErrRequestNotFound
		}
		return resignation.Request{}, err
	}

	return req, nil
}

func (r *resignationRepositoryImpl) FindActiveByIdentity(ctx context.Context, identity string) (resignation.Request, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + resignationColumns + `
		FROM resignation_requests rr
		WHERE rr.identity = $1 AND rr.overall_status = 'pending'
		ORDER BY rr.submitted_at DESC
		LIMIT 1
	`

	req, err := scanRequest(q.QueryRow(ctx, query, identity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resignation.Request{}, false, nil
		}
		return resignation.Request{}, false, err
	}

	return req, true, nil
}

func (r *resignationRepositoryImpl) ListPendingForStage(ctx context.Context, stage resignation.Stage) ([]resignation.Request, error) {
	q := GetQuerier(ctx, r.db)

	stageColumn := "rr.manager_decision"
	if stage == resignation.StageHR {
		stageColumn = "rr.hr_decision"
	}

	query := fmt.Sprintf(`
		SELECT `+resignationColumns+`
		FROM resignation_requests rr
		WHERE rr.overall_status = 'pending' AND %s = 'pending'
		ORDER BY rr.submitted_at ASC
	`, stageColumn)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending resignation requests: %w", err)
	}
	defer rows.Close()

	var requests []resignation.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resignation request: %w", err)
		}
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}

func (r *resignationRepositoryImpl) ListByIdentity(ctx context.Context, identity string) ([]resignation.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + resignationColumns + `
		FROM resignation_requests rr
		WHERE rr.identity = $1
		ORDER BY rr.submitted_at DESC
	`

	rows, err := q.Query(ctx, query, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to query resignation requests: %w", err)
	}
	defer rows.Close()

	var requests []resignation.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resignation request: %w", err)
		}
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}

// DecideStage implements resignation.Repository.
//
// The whole transition is one conditional UPDATE: the stage columns, the
// recomputed overall status and relieved_at are all written in the same
// statement, guarded by the stage still being pending. Two racing decisions
// for the same stage therefore cannot both succeed.
func (r *resignationRepositoryImpl) DecideStage(ctx context.Context, update resignation.StageUpdate) (resignation.Request, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	switch update.Stage {
	case resignation.StageManager:
		query = `
			UPDATE resignation_requests SET
				manager_decision = $1,
				manager_note = $2,
				manager_decided_by = $3,
				manager_decided_at = $4,
				overall_status = CASE
					WHEN $1 = 'rejected' OR hr_decision = 'rejected' THEN 'rejected'
					WHEN $1 = 'approved' AND hr_decision = 'approved' THEN 'approved'
					ELSE 'pending'
				END,
				relieved_at = CASE
					WHEN $1 = 'approved' AND hr_decision = 'approved' AND relieved_at IS NULL THEN $4
					ELSE relieved_at
				END,
				updated_at = NOW()
			WHERE id = $5 AND manager_decision = 'pending'
			RETURNING
				id, identity, full_name, department, designation, reason,
				manager_decision, manager_note, manager_decided_by, manager_decided_at,
				hr_decision, hr_note, hr_decided_by, hr_decided_at,
				overall_status, submitted_at, relieved_at, created_at, updated_at
		`
	case resignation.StageHR:
		query = `
			UPDATE resignation_requests SET
				hr_decision = $1,
				hr_note = $2,
				hr_decided_by = $3,
				hr_decided_at = $4,
				overall_status = CASE
					WHEN $1 = 'rejected' OR manager_decision = 'rejected' THEN 'rejected'
					WHEN $1 = 'approved' AND manager_decision = 'approved' THEN 'approved'
					ELSE 'pending'
				END,
				relieved_at = CASE
					WHEN $1 = 'approved' AND manager_decision = 'approved' AND relieved_at IS NULL THEN $4
					ELSE relieved_at
				END,
				updated_at = NOW()
			WHERE id = $5 AND hr_decision = 'pending'
			RETURNING
				id, identity, full_name, department, designation, reason,
				manager_decision, manager_note, manager_decided_by, manager_decided_at,
				hr_decision, hr_note, hr_decided_by, hr_decided_at,
				overall_status, submitted_at, relieved_at, created_at, updated_at
		`
	default:
		return resignation.Request{}, fmt.Errorf("unknown stage: %s", update.Stage)
	}

	req, err := scanRequest(q.QueryRow(ctx, query,
		string(update.Decision), update.Note, update.DecidedBy, update.DecidedAt, update.RequestID,
	))
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return resignation.Request{}, fmt.Errorf("failed to decide %s stage for request %s: %w", update.Stage, update.RequestID, err)
	}

	// No row matched: either the id is unknown or the stage left pending first.
	if _, err := r.GetByID(ctx, update.RequestID); err != nil {
		return resignation.Request{}, err
	}
	return resignation.Request{}, resignation.ErrStageAlreadyDecided
}
