package models

// Event describes one day's event document (events collection, keyed by
// the day string). Participants lists the phone-keys expected to attend.
type Event struct {
	Day          string   `firestore:"-" json:"day"`
	EventName    string   `firestore:"eventName" json:"eventName"`
	EventType    string   `firestore:"eventType" json:"eventType"`
	Participants []string `firestore:"participants" json:"participants"`
}

// RosterEntry is the minimal profile stored in participants_roster, used
// to render the not-yet-checked-in side of the real-time view.
type RosterEntry struct {
	PhoneKey string `firestore:"-" json:"phoneKey"`
	Name     string `firestore:"name" json:"name"`
	Phone    string `firestore:"phoneNumber" json:"phoneNumber"`
	Part     string `firestore:"part" json:"part"`
}
