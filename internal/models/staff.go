package models

import "time"

// StaffRecord represents an operations staff document in the
// participants_admin collection, keyed by phone-key. Staff records carry no
// stored team number; team 0 is synthesized wherever one is required.
type StaffRecord struct {
	PhoneKey string `firestore:"-" json:"phoneKey"`

	Name     string `firestore:"name" json:"name"`
	Email    string `firestore:"email" json:"email"`
	Phone    string `firestore:"phone" json:"phoneNumber"`
	Position string `firestore:"position" json:"part"`
	School   string `firestore:"school" json:"school"`
	Status   string `firestore:"status" json:"status"`
	Memo     string `firestore:"memo" json:"memo"`

	CheckedIn      bool       `firestore:"checked_in_status" json:"isCheckedIn"`
	CheckedInAt    *time.Time `firestore:"checkedInAt" json:"checkedInAt"`
	CheckedOutAt   *time.Time `firestore:"checkedOutAt" json:"checkedOutAt"`
	CheckedOutMemo string     `firestore:"checkedOutMemo" json:"checkedOutMemo"`

	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt,omitempty"`
}
