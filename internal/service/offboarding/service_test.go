package offboarding

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/employee"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/resignation"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRequestRepo implements resignation.Repository with the same
// compare-and-set stage semantics the SQL store provides.
type memoryRequestRepo struct {
	mu       sync.Mutex
	requests map[string]resignation.Request
}

func newMemoryRequestRepo() *memoryRequestRepo {
	return &memoryRequestRepo{requests: make(map[string]resignation.Request)}
}

func (m *memoryRequestRepo) Create(ctx context.Context, request resignation.Request) (resignation.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.requests {
		if existing.Identity == request.Identity && existing.OverallStatus == resignation.OverallPending {
			return resignation.Request{}, resignation.ErrDuplicateActiveRequest
		}
	}

	now := time.Now()
	request.ID = uuid.NewString()
	request.ManagerDecision = resignation.DecisionPending
	request.HRDecision = resignation.DecisionPending
	request.OverallStatus = resignation.OverallPending
	request.SubmittedAt = now
	request.CreatedAt = now
	request.UpdatedAt = now

	m.requests[request.ID] = request
	return request, nil
}

func (m *memoryRequestRepo) GetByID(ctx context.Context, id string) (resignation.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	req, ok := m.requests[id]
	if !ok {
		return resignation.Request{}, resignation.ErrRequestNotFound
	}
	return req, nil
}

func (m *memoryRequestRepo) FindActiveByIdentity(ctx context.Context, identity string) (resignation.Request, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, req := range m.requests {
		if req.Identity == identity && req.OverallStatus == resignation.OverallPending {
			return req, true, nil
		}
	}
	return resignation.Request{}, false, nil
}

func (m *memoryRequestRepo) ListPendingForStage(ctx context.Context, stage resignation.Stage) ([]resignation.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []resignation.Request
	for _, req := range m.requests {
		if req.OverallStatus == resignation.OverallPending && req.StageDecision(stage) == resignation.DecisionPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *memoryRequestRepo) ListByIdentity(ctx context.Context, identity string) ([]resignation.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []resignation.Request
	for _, req := range m.requests {
		if req.Identity == identity {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *memoryRequestRepo) DecideStage(ctx context.Context, update resignation.StageUpdate) (resignation.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	req, ok := m.requests[update.RequestID]
	if !ok {
		return resignation.Request{}, resignation.ErrRequestNotFound
	}

	if req.StageDecision(update.Stage) != resignation.DecisionPending {
		return resignation.Request{}, resignation.ErrStageAlreadyDecided
	}

	note := update.Note
	decidedBy := update.DecidedBy
	decidedAt := update.DecidedAt
	switch update.Stage {
	case resignation.StageManager:
		req.ManagerDecision = update.Decision
		req.ManagerNote = &note
		req.ManagerDecidedBy = &decidedBy
		req.ManagerDecidedAt = &decidedAt
	case resignation.StageHR:
		req.HRDecision = update.Decision
		req.HRNote = &note
		req.HRDecidedBy = &decidedBy
		req.HRDecidedAt = &decidedAt
	}

	req.OverallStatus = resignation.DeriveOverall(req.ManagerDecision, req.HRDecision)
	if req.OverallStatus == resignation.OverallApproved && req.RelievedAt == nil {
		req.RelievedAt = &decidedAt
	}
	req.UpdatedAt = decidedAt

	m.requests[update.RequestID] = req
	return req, nil
}

// memoryProfileRepo implements employee.ProfileRepository.
type memoryProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]employee.Profile
	writeErr error
	writes   int
}

func newMemoryProfileRepo() *memoryProfileRepo {
	return &memoryProfileRepo{profiles: make(map[string]employee.Profile)}
}

func (m *memoryProfileRepo) GetByIdentity(ctx context.Context, identity string) (employee.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	profile, ok := m.profiles[identity]
	if !ok {
		return employee.Profile{}, employee.ErrProfileNotFound
	}
	return profile, nil
}

func (m *memoryProfileRepo) RecordResignationReason(ctx context.Context, identity, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}
	profile := m.profiles[identity]
	profile.Identity = identity
	profile.ResignationReason = &reason
	m.profiles[identity] = profile
	return nil
}

func newTestService() (*Service, *memoryRequestRepo, *memoryProfileRepo) {
	requests := newMemoryRequestRepo()
	profiles := newMemoryProfileRepo()
	return NewService(requests, profiles), requests, profiles
}

func submitFixture(identity string) resignation.SubmitRequest {
	return resignation.SubmitRequest{
		Identity:    identity,
		FullName:    "Ayu Lestari",
		Department:  "Engineering",
		Designation: "Backend Engineer",
		Reason:      "relocating",
	}
}

func TestSubmit_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, profiles := newTestService()

	created, err := svc.Submit(ctx, submitFixture("a@x.com"))

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "a@x.com", created.Identity)
	assert.Equal(t, resignation.DecisionPending, created.ManagerDecision)
	assert.Equal(t, resignation.DecisionPending, created.HRDecision)
	assert.Equal(t, resignation.OverallPending, created.OverallStatus)
	assert.False(t, created.SubmittedAt.IsZero())
	assert.Nil(t, created.RelievedAt)

	// Best-effort audit write landed on the profile
	profile, err := profiles.GetByIdentity(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, profile.ResignationReason)
	assert.Equal(t, "relocating", *profile.ResignationReason)
}

func TestSubmit_DuplicateActiveRequest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Submit(ctx, submitFixture("a@x.com"))
	require.NoError(t, err)

	_, err = svc.Submit(ctx, submitFixture("a@x.com"))
	assert.ErrorIs(t, err, resignation.ErrDuplicateActiveRequest)
}

func TestSubmit_ValidationErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, requests, _ := newTestService()

	req := submitFixture("a@x.com")
	req.Reason = ""

	_, err := svc.Submit(ctx, req)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "reason")
	assert.Empty(t, requests.requests, "no record may be written on validation failure")
}

func TestSubmit_SnapshotFilledFromProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, profiles := newTestService()

	profiles.profiles["a@x.com"] = employee.Profile{
		Identity:    "a@x.com",
		FullName:    "Ayu Lestari",
		Department:  "Engineering",
		Designation: "Backend Engineer",
	}

	created, err := svc.Submit(ctx, resignation.SubmitRequest{
		Identity: "a@x.com",
		Reason:   "relocating",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ayu Lestari", created.FullName)
	assert.Equal(t, "Engineering", created.Department)
	assert.Equal(t, "Backend Engineer", created.Designation)
}

func TestSubmit_SnapshotMissingAndNoProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Submit(ctx, resignation.SubmitRequest{
		Identity: "a@x.com",
		Reason:   "relocating",
	})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "fullname")
}

func TestSubmit_ProfileWriteFailureDoesNotRollBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, requests, profiles := newTestService()

	profiles.writeErr = assert.AnError

	created, err := svc.Submit(ctx, submitFixture("a@x.com"))

	require.NoError(t, err, "profile write is fire-and-forget")
	assert.Equal(t, 1, profiles.writes)
	_, err = requests.GetByID(ctx, created.ID)
	assert.NoError(t, err, "the primary record must survive the secondary failure")
}

func TestSubmit_AllowedAgainAfterTerminal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService()

	first, err := svc.Submit(ctx, submitFixture("a@x.com"))
	require.NoError(t, err)

	_, err = svc.Decide(ctx, resignation.DecideRequest{
		RequestID: first.ID,
		Stage:     resignation.StageManager,
		Decision:  resignation.DecisionRejected,
		Note:      "incomplete handover",
		DecidedBy: "mgr@x.com",
	})
	require.NoError(t, err)

	// Only a pending record blocks re-submission
	second, err := svc.Submit(ctx, submitFixture("a@x.com"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	history, err := svc.History(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestDecide_BothStagesApproveRelieves(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService()

	created, err := svc.Submit(ctx, submitFixture("a@x.com"))
	require.NoError(t, err)

	afterManager, err := svc.Decide(ctx, resignation.DecideRequest{
		RequestID: created.ID,
		Stage:     resignation.StageManager,
		Decision:  resignation.DecisionApproved,
		Note:      "ok",
		DecidedBy: "mgr@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, resignation.OverallPending, afterManager.OverallStatus)
	assert.Nil(t, afterManager.RelievedAt)

	afterHR, err := svc.Decide(ctx, resignation.DecideRequest{
		RequestID: created.ID,
		Stage:     resignation.StageHR,
		Decision:  resignation.DecisionApproved,
		Note:      "cleared",
		DecidedBy: "hr@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, resignation.OverallApproved, afterHR.OverallStatus)
	require.NotNil(t, afterHR.RelievedAt)

	// relieved_at is never cleared or moved by further calls
	_, err = svc.Decide(ctx, resignation.DecideRequest{
		RequestID: created.ID,
		Stage:     resignation.StageHR,
		Decision:  resignation.DecisionRejected,
		Note:      "changed my mind",
		DecidedBy: "hr@x.com",
	})
	assert.ErrorIs(t, err, resignation.ErrStageAlreadyDecided)

	final, _, err := fetch(ctx, svc, created.ID, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, *afterHR.RelievedAt, *final.RelievedAt)
}

// fetch loads a record through the service surface (history scan).
func fetch(ctx context.Context, svc *Service, id, identity string) (resignation.Request, bool, error) {
	records, err := svc.History(ctx, identity)
	if err != nil {
		return resignation.Request{}, false, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec, true, nil
		}
	}
	return resignation.Request{}, false, nil
}

func TestDecide_HRStageFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService()

	created, err := svc.Submit(ctx, submitFixture("a@x.com"))
	require.NoError(t, err)

	// No ordering dependency between stages
	afterHR, err := svc.Decide(ctx, resignation.DecideRequest{
		RequestID: created.ID,
		Stage:     resignation.StageHR,
		Decision:  resignation.DecisionApproved,
		Note:      "cleared",
		DecidedBy: "hr@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, resignation.OverallPending, afterHR.OverallStatus)

	afterManager, err := svc.Decide(ctx, resignation.DecideRequest{
		RequestID: created.ID,
		Stage:     resignation.StageManager,
		Decision:  resignation.DecisionApproved,
		Note:      "ok",
		DecidedBy: "mgr@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, resignation.OverallApproved, afterManager.OverallStatus)
	assert.NotNil(t, afterManager.RelievedAt)
}

func TestDecide_ManagerRejectionIsTerminal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService()

	created, err := svc.Submit(ctx, submitFixture("a@x.com"))
	require.NoError(t, err)

	rejected, err := svc.Decide(ctx, resignation.DecideRequest{
		RequestID: created.ID,
		Stage:     resignation.StageManager,
		Decision:  resignation.DecisionRejected,
		Note:      "incomplete handover",
		DecidedBy: "mgr@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, resignation.OverallRejected, rejected.OverallStatus)
	assert.Equal(t, resignation.DecisionPending, rejected.HRDecision,
		"the hr stage is never required to change a rejected record")
	assert.Nil(t, rejected.RelievedAt)
}

func TestDecide_EmptyNoteRejectedBeforeWrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService()

	created, err := svc.Submit(ctx, submitFixture("a@x.com"))
	require.NoError(t, err)

	_, err = svc.Decide(ctx, resignation.DecideRequest{
		RequestID: created.ID,
		Stage:     resignation.StageManager,
		Decision:  resignation.DecisionApproved,
		Note:      "",
		DecidedBy: "mgr@x.com",
	})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "note")

	// No state change
	record, found, err := fetch(ctx, svc, created.ID, "a@x.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, resignation.DecisionPending, record.ManagerDecision)
}

func TestDecide_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Decide(ctx, resignation.DecideRequest{
		RequestID: uuid.NewString(),
		Stage:     resignation.StageManager,
		Decision:  resignation.DecisionApproved,
		Note:      "ok",
		DecidedBy: "mgr@x.com",
	})

	assert.ErrorIs(t, err, resignation.ErrRequestNotFound)
}

func TestDecide_Idempotence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService()

	created, err := svc.Submit(ctx, submitFixture("a@x.com"))
	require.NoError(t, err)

	decide := resignation.DecideRequest{
		RequestID: created.ID,
		Stage:     resignation.StageManager,
		Decision:  resignation.DecisionApproved,
		Note:      "ok",
		DecidedBy: "mgr@x.com",
	}

	_, err = svc.Decide(ctx, decide)
	require.NoError(t, err)

	// Identical repeat calls fail the same way, with no double effect
	_, err = svc.Decide(ctx, decide)
	assert.ErrorIs(t, err, resignation.ErrStageAlreadyDecided)
	_, err = svc.Decide(ctx, decide)
	assert.ErrorIs(t, err, resignation.ErrStageAlreadyDecided)

	record, found, err := fetch(ctx, svc, created.ID, "a@x.com")
	require.NoError(t, err)
	require.True(t, found)
	require.NotNil(t, record.ManagerDecidedAt)
}

func TestDecide_ConcurrentSameStage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService()

	created, err := svc.Submit(ctx, submitFixture("a@x.com"))
	require.NoError(t, err)

	const racers = 8
	results := make(chan error, racers)
	var start sync.WaitGroup
	start.Add(1)

	for i := 0; i < racers; i++ {
		go func() {
			start.Wait()
			_, err := svc.Decide(ctx, resignation.DecideRequest{
				RequestID: created.ID,
				Stage:     resignation.StageManager,
				Decision:  resignation.DecisionApproved,
				Note:      "ok",
				DecidedBy: "mgr@x.com",
			})
			results <- err
		}()
	}
	start.Done()

	var succeeded, lost int
	for i := 0; i < racers; i++ {
		err := <-results
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, resignation.ErrStageAlreadyDecided)
			lost++
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one racer may win the stage")
	assert.Equal(t, racers-1, lost)
}

func TestListPending_FiltersByStage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService()

	first, err := svc.Submit(ctx, submitFixture("a@x.com"))
	require.NoError(t, err)
	second, err := svc.Submit(ctx, submitFixture("b@x.com"))
	require.NoError(t, err)

	// Manager decides the first record; it leaves the manager queue but
	// remains in the hr queue.
	_, err = svc.Decide(ctx, resignation.DecideRequest{
		RequestID: first.ID,
		Stage:     resignation.StageManager,
		Decision:  resignation.DecisionApproved,
		Note:      "ok",
		DecidedBy: "mgr@x.com",
	})
	require.NoError(t, err)

	managerQueue, err := svc.ListPending(ctx, resignation.StageManager)
	require.NoError(t, err)
	require.Len(t, managerQueue, 1)
	assert.Equal(t, second.ID, managerQueue[0].ID)

	hrQueue, err := svc.ListPending(ctx, resignation.StageHR)
	require.NoError(t, err)
	assert.Len(t, hrQueue, 2)
}

func TestListPending_InvalidStage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.ListPending(ctx, resignation.Stage("finance"))

	var errs validator.ValidationErrors
	assert.ErrorAs(t, err, &errs)
}

func TestFindActiveFor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, found, err := svc.FindActiveFor(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, found)

	created, err := svc.Submit(ctx, submitFixture("a@x.com"))
	require.NoError(t, err)

	active, found, err := svc.FindActiveFor(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created.ID, active.ID)
}
