package resignation

// DeriveOverall computes the aggregate status from the two stage decisions.
// This is the only place the combination rule lives; the engine applies it on
// every decision write and both client views project from it.
//
//   - rejected if either stage is rejected
//   - approved only if both stages are approved
//   - pending otherwise
func DeriveOverall(manager, hr Decision) OverallStatus {
	switch {
	case manager == DecisionRejected || hr == DecisionRejected:
		return OverallRejected
	case manager == DecisionApproved && hr == DecisionApproved:
		return OverallApproved
	default:
		return OverallPending
	}
}

// StepState is the visual state of one step in the employee progress view.
type StepState string

const (
	StepComplete StepState = "complete"
	StepRejected StepState = "rejected"
	StepCurrent  StepState = "current"
	StepUpcoming StepState = "upcoming"
)

// ProgressStep is one entry of the four-step offboarding progress.
type ProgressStep struct {
	Name  string    `json:"name"`
	State StepState `json:"state"`
}

// ProgressSteps projects a request onto the four-step progress shown to the
// employee: Applied, Manager approval, HR attestation, Relieved. The steps
// are a pure projection of the record's fields.
func ProgressSteps(req Request) []ProgressStep {
	overall := DeriveOverall(req.ManagerDecision, req.HRDecision)

	steps := []ProgressStep{
		{Name: "Applied", State: StepComplete},
		{Name: "Manager approval", State: stageStepState(req.ManagerDecision, overall)},
		{Name: "HR attestation", State: stageStepState(req.HRDecision, overall)},
	}

	relieved := ProgressStep{Name: "Relieved", State: StepUpcoming}
	switch {
	case req.RelievedAt != nil:
		relieved.State = StepComplete
	case overall == OverallRejected:
		relieved.State = StepRejected
	}
	steps = append(steps, relieved)

	return steps
}

func stageStepState(decision Decision, overall OverallStatus) StepState {
	switch decision {
	case DecisionApproved:
		return StepComplete
	case DecisionRejected:
		return StepRejected
	default:
		// A rejected record never requires the other stage to act.
		if overall == OverallRejected {
			return StepUpcoming
		}
		return StepCurrent
	}
}
