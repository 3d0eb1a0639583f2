package offboarding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/employee"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/resignation"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/pkg/validator"
)

// Service is the offboarding workflow engine. It validates submissions,
// applies stage decisions and derives the overall status; the record store
// under it provides the atomic per-stage write.
type Service struct {
	requests resignation.Repository
	profiles employee.ProfileRepository
}

func NewService(requests resignation.Repository, profiles employee.ProfileRepository) *Service {
	return &Service{
		requests: requests,
		profiles: profiles,
	}
}

var _ resignation.Service = (*Service)(nil)

// Submit creates a new resignation request for the identity. At most one
// request per identity may be pending at a time; a duplicate submission is
// rejected before any write.
func (s *Service) Submit(ctx context.Context, req resignation.SubmitRequest) (resignation.Request, error) {
	if err := req.Validate(); err != nil {
		return resignation.Request{}, err
	}

	if _, active, err := s.requests.FindActiveByIdentity(ctx, req.Identity); err != nil {
		return resignation.Request{}, fmt.Errorf("failed to check for active resignation request: %w", err)
	} else if active {
		return resignation.Request{}, resignation.ErrDuplicateActiveRequest
	}

	if err := s.fillProfileSnapshot(ctx, &req); err != nil {
		return resignation.Request{}, err
	}

	created, err := s.requests.Create(ctx, resignation.Request{
		Identity:    req.Identity,
		FullName:    req.FullName,
		Department:  req.Department,
		Designation: req.Designation,
		Reason:      req.Reason,
	})
	if err != nil {
		// The store's unique constraint closes the window between the
		// pre-check and the insert.
		if errors.Is(err, resignation.ErrDuplicateActiveRequest) {
			return resignation.Request{}, err
		}
		return resignation.Request{}, fmt.Errorf("failed to create resignation request: %w", err)
	}

	// Best-effort audit write to the canonical profile. The resignation record
	// is the source of truth for workflow state, so a failure here is logged
	// and never rolls back the submission.
	if err := s.profiles.RecordResignationReason(ctx, req.Identity, req.Reason); err != nil {
		slog.Warn("Failed to record resignation reason on employee profile",
			"identity", req.Identity, "error", err)
	}

	return created, nil
}

// fillProfileSnapshot denormalizes missing employee attributes from the
// directory profile. Snapshot fields supplied by the caller win.
func (s *Service) fillProfileSnapshot(ctx context.Context, req *resignation.SubmitRequest) error {
	if !validator.IsEmpty(req.FullName) && !validator.IsEmpty(req.Department) && !validator.IsEmpty(req.Designation) {
		return nil
	}

	profile, err := s.profiles.GetByIdentity(ctx, req.Identity)
	if err != nil && !errors.Is(err, employee.ErrProfileNotFound) {
		return fmt.Errorf("failed to load employee profile: %w", err)
	}
	if err == nil {
		if validator.IsEmpty(req.FullName) {
			req.FullName = profile.FullName
		}
		if validator.IsEmpty(req.Department) {
			req.Department = profile.Department
		}
		if validator.IsEmpty(req.Designation) {
			req.Designation = profile.Designation
		}
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(req.FullName) {
		errs = append(errs, validator.ValidationError{Field: "fullname", Message: "fullname is required"})
	}
	if validator.IsEmpty(req.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department is required"})
	}
	if validator.IsEmpty(req.Designation) {
		errs = append(errs, validator.ValidationError{Field: "designation", Message: "designation is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Decide records one stage decision. Decisions are write-once per stage per
// record: the store's compare-and-set update admits exactly one writer, so a
// repeated or racing call gets ErrStageAlreadyDecided. The overall status and
// relieved_at are recomputed in the same write.
func (s *Service) Decide(ctx context.Context, req resignation.DecideRequest) (resignation.Request, error) {
	if err := req.Validate(); err != nil {
		return resignation.Request{}, err
	}

	updated, err := s.requests.DecideStage(ctx, resignation.StageUpdate{
		RequestID: req.RequestID,
		Stage:     req.Stage,
		Decision:  req.Decision,
		Note:      req.Note,
		DecidedBy: req.DecidedBy,
		DecidedAt: time.Now(),
	})
	if err != nil {
		if errors.Is(err, resignation.ErrRequestNotFound) || errors.Is(err, resignation.ErrStageAlreadyDecided) {
			return resignation.Request{}, err
		}
		return resignation.Request{}, fmt.Errorf("failed to decide %s stage: %w", req.Stage, err)
	}

	slog.Info("Resignation stage decided",
		"request_id", updated.ID,
		"stage", string(req.Stage),
		"decision", string(req.Decision),
		"overall_status", string(updated.OverallStatus),
	)

	return updated, nil
}

// FindActiveFor returns the identity's pending request, if any. Both clients
// use it: the status client to block duplicate submission and render
// progress, the approval client to load record context.
func (s *Service) FindActiveFor(ctx context.Context, identity string) (resignation.Request, bool, error) {
	return s.requests.FindActiveByIdentity(ctx, identity)
}

// ListPending returns the review queue for a stage: requests still pending
// overall whose given stage has not been decided.
func (s *Service) ListPending(ctx context.Context, stage resignation.Stage) ([]resignation.Request, error) {
	if !stage.IsValid() {
		return nil, validator.ValidationErrors{{Field: "stage", Message: "stage must be one of: manager, hr"}}
	}
	return s.requests.ListPendingForStage(ctx, stage)
}

// History returns all requests ever submitted by the identity, newest first.
// Terminal records are never deleted.
func (s *Service) History(ctx context.Context, identity string) ([]resignation.Request, error) {
	return s.requests.ListByIdentity(ctx, identity)
}
