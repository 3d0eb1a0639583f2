package resignation

import "context"

// Service is the offboarding workflow engine surface consumed by the HTTP
// handlers and, through them, by the approval and status clients.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (Request, error)
	Decide(ctx context.Context, req DecideRequest) (Request, error)
	FindActiveFor(ctx context.Context, identity string) (Request, bool, error)
	ListPending(ctx context.Context, stage Stage) ([]Request, error)
	History(ctx context.Context, identity string) ([]Request, error)
}
