package employee

import "context"

// ProfileRepository - interface for the external employee profile store.
type ProfileRepository interface {
	GetByIdentity(ctx context.Context, identity string) (Profile, error)

	// RecordResignationReason writes the submitted reason back to the profile.
	// Callers treat this as best-effort: a failure is logged, never propagated.
	RecordResignationReason(ctx context.Context, identity, reason string) error
}
