package services

import "time"

// Clock supplies the current time. Handlers and tests inject it so "today"
// is deterministic instead of read from process wall-clock at call sites.
type Clock interface {
	Now() time.Time
}

// eventZone is the event's fixed timezone (KST, UTC+9). The ledger day
// boundary follows this zone regardless of server locale.
var eventZone = time.FixedZone("KST", 9*60*60)

// DayString truncates a point in time to the event calendar date, the
// partition key of the daily check-in ledger.
func DayString(t time.Time) string {
	return t.In(eventZone).Format("2006-01-02")
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// NewSystemClock returns a Clock backed by the system wall-clock.
func NewSystemClock() Clock {
	return systemClock{}
}
