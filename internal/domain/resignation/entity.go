package resignation

import "time"

// Decision is the state of one approval stage on a resignation request.
type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// OverallStatus is the aggregate of both stage decisions, derived and never
// written directly by a client.
type OverallStatus string

const (
	OverallPending  OverallStatus = "pending"
	OverallApproved OverallStatus = "approved"
	OverallRejected OverallStatus = "rejected"
)

// Stage identifies one of the two independent approval checkpoints.
type Stage string

const (
	StageManager Stage = "manager"
	StageHR      Stage = "hr"
)

// IsValid reports whether s names a known stage.
func (s Stage) IsValid() bool {
	return s == StageManager || s == StageHR
}

// Request entity. One row per offboarding attempt; terminal rows are kept as
// history and a later re-submission for the same identity creates a new row.
type Request struct {
	ID       string `json:"id"`
	Identity string `json:"identity"` // stable employee identifier (email)

	// Snapshot of the employee profile at submission time
	FullName    string `json:"fullname"`
	Department  string `json:"department"`
	Designation string `json:"designation"`

	Reason string `json:"reason"`

	ManagerDecision  Decision   `json:"manager_decision"`
	ManagerNote      *string    `json:"manager_note,omitempty"`
	ManagerDecidedBy *string    `json:"manager_decided_by,omitempty"`
	ManagerDecidedAt *time.Time `json:"manager_decided_at,omitempty"`

	HRDecision  Decision   `json:"hr_decision"`
	HRNote      *string    `json:"hr_note,omitempty"`
	HRDecidedBy *string    `json:"hr_decided_by,omitempty"`
	HRDecidedAt *time.Time `json:"hr_decided_at,omitempty"`

	OverallStatus OverallStatus `json:"overall_status"`

	SubmittedAt time.Time  `json:"submitted_at"`
	RelievedAt  *time.Time `json:"relieved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the request still blocks a new submission for the
// same identity.
func (r *Request) IsActive() bool {
	return r.OverallStatus == OverallPending
}

// StageDecision returns the decision recorded for the given stage.
func (r *Request) StageDecision(stage Stage) Decision {
	if stage == StageManager {
		return r.ManagerDecision
	}
	return r.HRDecision
}
