package employee

import "time"

// Profile is the canonical employee directory record, owned by an external
// system. The offboarding service only reads the snapshot fields and writes
// the resignation reason back for audit visibility.
type Profile struct {
	Identity    string // stable employee identifier (email)
	FullName    string
	Department  string
	Designation string

	ResignationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
