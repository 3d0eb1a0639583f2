package resignation

import (
	"context"
	"time"
)

// StageUpdate carries one stage decision into the conditional write. The
// repository applies it only while the targeted stage is still pending.
type StageUpdate struct {
	RequestID string
	Stage     Stage
	Decision  Decision
	Note      string
	DecidedBy string
	DecidedAt time.Time
}

// Repository - interface for resignation_requests table
type Repository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// FindActiveByIdentity returns the identity's pending request, if any.
	FindActiveByIdentity(ctx context.Context, identity string) (Request, bool, error)

	// ListPendingForStage returns requests whose overall status is pending and
	// whose given stage has not been decided yet, oldest first.
	ListPendingForStage(ctx context.Context, stage Stage) ([]Request, error)

	// ListByIdentity returns all requests for an identity, newest first.
	ListByIdentity(ctx context.Context, identity string) ([]Request, error)

	// DecideStage applies one stage decision with compare-and-set semantics:
	// the write succeeds only while the stage is still pending. On a lost race
	// it returns ErrStageAlreadyDecided; on an unknown id, ErrRequestNotFound.
	DecideStage(ctx context.Context, update StageUpdate) (Request, error)
}
