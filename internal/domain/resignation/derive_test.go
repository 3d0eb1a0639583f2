package resignation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveOverall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		manager Decision
		hr      Decision
		want    OverallStatus
	}{
		{"both pending", DecisionPending, DecisionPending, OverallPending},
		{"manager approved only", DecisionApproved, DecisionPending, OverallPending},
		{"hr approved only", DecisionPending, DecisionApproved, OverallPending},
		{"both approved", DecisionApproved, DecisionApproved, OverallApproved},
		{"manager rejected", DecisionRejected, DecisionPending, OverallRejected},
		{"hr rejected", DecisionPending, DecisionRejected, OverallRejected},
		{"rejected wins over approved", DecisionApproved, DecisionRejected, OverallRejected},
		{"both rejected", DecisionRejected, DecisionRejected, OverallRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DeriveOverall(tt.manager, tt.hr))
		})
	}
}

func TestDeriveOverall_ApprovedOnlyWhenBothApproved(t *testing.T) {
	t.Parallel()

	decisions := []Decision{DecisionPending, DecisionApproved, DecisionRejected}
	for _, m := range decisions {
		for _, h := range decisions {
			overall := DeriveOverall(m, h)

			bothApproved := m == DecisionApproved && h == DecisionApproved
			assert.Equal(t, bothApproved, overall == OverallApproved,
				"manager=%s hr=%s", m, h)

			anyRejected := m == DecisionRejected || h == DecisionRejected
			assert.Equal(t, anyRejected, overall == OverallRejected,
				"manager=%s hr=%s", m, h)
		}
	}
}

func TestProgressSteps_AllPending(t *testing.T) {
	t.Parallel()

	steps := ProgressSteps(Request{
		ManagerDecision: DecisionPending,
		HRDecision:      DecisionPending,
	})

	assert.Len(t, steps, 4)
	assert.Equal(t, StepComplete, steps[0].State) // Applied
	assert.Equal(t, StepCurrent, steps[1].State)
	assert.Equal(t, StepCurrent, steps[2].State)
	assert.Equal(t, StepUpcoming, steps[3].State)
}

func TestProgressSteps_Relieved(t *testing.T) {
	t.Parallel()

	relievedAt := time.Now()
	steps := ProgressSteps(Request{
		ManagerDecision: DecisionApproved,
		HRDecision:      DecisionApproved,
		RelievedAt:      &relievedAt,
	})

	for _, step := range steps {
		assert.Equal(t, StepComplete, step.State, step.Name)
	}
}

func TestProgressSteps_ManagerRejected(t *testing.T) {
	t.Parallel()

	steps := ProgressSteps(Request{
		ManagerDecision: DecisionRejected,
		HRDecision:      DecisionPending,
	})

	assert.Equal(t, StepComplete, steps[0].State)
	assert.Equal(t, StepRejected, steps[1].State)
	// The hr stage is never required to act on a rejected record
	assert.Equal(t, StepUpcoming, steps[2].State)
	assert.Equal(t, StepRejected, steps[3].State)
}
