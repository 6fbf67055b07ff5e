package models

import "time"

// DailyCheckinEntry is one row of the per-day check-in ledger
// (collection checkIn_<YYYY-MM-DD>, keyed by phone-key). The ledger feeds
// the real-time "who checked in today" view; the checked-in flag on the
// participant or staff record stays the source of truth.
type DailyCheckinEntry struct {
	PhoneKey string `firestore:"-" json:"phoneKey"`

	Name       string `firestore:"name" json:"name"`
	Phone      string `firestore:"phoneNumber" json:"phoneNumber"`
	Part       string `firestore:"part" json:"part"`
	TeamNumber int    `firestore:"teamNumber" json:"teamNumber"`
	IsStaff    bool   `firestore:"isStaff" json:"isStaff"`

	CheckedInAt    time.Time  `firestore:"checkedInAt" json:"checkedInAt"`
	CheckedOutAt   *time.Time `firestore:"checkedOutAt" json:"checkedOutAt,omitempty"`
	CheckedOutMemo string     `firestore:"checkedOutMemo" json:"checkedOutMemo,omitempty"`
}
