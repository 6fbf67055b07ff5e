package models

import "time"

// Participant status values as stored on the documents.
const (
	StatusApproved = "APPROVED"
	StatusPending  = "PENDING"
	StatusRejected = "REJECTED"
	StatusCanceled = "CANCELED"
)

// StaffTeamNumber is the reserved team number that marks a record as
// operations staff. Regular participants always have a team number >= 1.
const StaffTeamNumber = 0

// ParticipantRecord represents a regular attendee document in the
// participants_checkin collection, keyed by phone-key.
type ParticipantRecord struct {
	PhoneKey string `firestore:"-" json:"phoneKey"`

	Name       string `firestore:"name" json:"name"`
	Email      string `firestore:"email" json:"email"`
	Phone      string `firestore:"phone" json:"phone_number"`
	Position   string `firestore:"position" json:"part"`
	School     string `firestore:"school" json:"school,omitempty"`
	TeamNumber int    `firestore:"teamNumber" json:"team_number"`
	Status     string `firestore:"status" json:"status"`

	CheckedIn      bool       `firestore:"checked_in_status" json:"isCheckedIn"`
	CheckedInAt    *time.Time `firestore:"checkedInAt" json:"checkedInAt"`
	CheckedOutAt   *time.Time `firestore:"checkedOutAt" json:"checkedOutAt"`
	Memo           string     `firestore:"memo" json:"memo"`
	CheckedOutMemo string     `firestore:"checkedOutMemo" json:"checkedOutMemo"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt,omitempty"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt,omitempty"`
}

// IsStaff reports whether the record belongs to the staff team. Records
// with team number 0 must never appear in regular participant listings.
func (p *ParticipantRecord) IsStaff() bool {
	return p.TeamNumber == StaffTeamNumber
}

// EffectiveTeamNumber returns the team number used on check-in ledger
// entries; imported rows without a team default to 1.
func (p *ParticipantRecord) EffectiveTeamNumber() int {
	if p.TeamNumber == 0 {
		return 1
	}
	return p.TeamNumber
}
