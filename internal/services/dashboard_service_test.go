package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onewave/qrcheckin-backend/internal/models"
)

func newDashboardFixture(t *testing.T) (*fakeEventStore, *fakeLedger, *fakeClock, *DashboardService) {
	t.Helper()

	events := newFakeEventStore()
	ledger := newFakeLedger()
	clock := &fakeClock{now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
	return events, ledger, clock, NewDashboardService(events, ledger, clock)
}

func TestStatsWithoutEvent(t *testing.T) {
	_, _, _, service := newDashboardFixture(t)

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)

	// An idle day renders as zeros, not an error.
	assert.Equal(t, &DashboardStats{}, stats)
}

func TestStatsCountsAndPercentage(t *testing.T) {
	events, ledger, clock, service := newDashboardFixture(t)
	ctx := context.Background()
	day := DayString(clock.now)

	events.events[day] = &models.Event{
		EventName:    "Spring Session",
		EventType:    "rehearsal",
		Participants: []string{"01011111111", "01022222222", "01033333333"},
	}
	require.NoError(t, ledger.Put(ctx, day, "01011111111", &models.DailyCheckinEntry{
		PhoneKey: "01011111111", Name: "Kim Minji", CheckedInAt: clock.now,
	}))

	stats, err := service.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Spring Session", stats.EventName)
	assert.Equal(t, "rehearsal", stats.EventType)
	assert.Equal(t, 3, stats.TotalParticipants)
	assert.Equal(t, 1, stats.TodayCheckInCount)
	// 1/3 rounds to 33.
	assert.Equal(t, 33, stats.TodayCheckInPercentage)
}

func TestRealtimeWithoutEvent(t *testing.T) {
	_, _, _, service := newDashboardFixture(t)

	_, err := service.Realtime(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRealtimeSplitsCheckedInAndPending(t *testing.T) {
	events, ledger, clock, service := newDashboardFixture(t)
	ctx := context.Background()
	day := DayString(clock.now)

	events.events[day] = &models.Event{
		EventName:    "Spring Session",
		EventType:    "rehearsal",
		Participants: []string{"01011111111", "01022222222"},
	}
	events.roster["01022222222"] = &models.RosterEntry{
		PhoneKey: "01022222222",
		Name:     "Lee Hana",
		Phone:    "010-2222-2222",
		Part:     "Drums",
	}
	require.NoError(t, ledger.Put(ctx, day, "01011111111", &models.DailyCheckinEntry{
		PhoneKey:    "01011111111",
		Name:        "Kim Minji",
		Phone:       "010-1111-1111",
		Part:        "Vocal",
		CheckedInAt: clock.now,
	}))

	data, err := service.Realtime(ctx)
	require.NoError(t, err)

	require.Len(t, data.CheckedIn, 1)
	assert.Equal(t, "Kim Minji", data.CheckedIn[0].Name)
	assert.Equal(t, clock.now, data.CheckedIn[0].CheckedInAt)

	require.Len(t, data.NotCheckedIn, 1)
	assert.Equal(t, "Lee Hana", data.NotCheckedIn[0].Name)
	assert.Equal(t, "Drums", data.NotCheckedIn[0].Part)

	assert.Equal(t, 1, data.Stats.CheckedInCount)
	assert.Equal(t, 2, data.Stats.TotalCount)
	assert.Equal(t, 50, data.Stats.CheckInRate)
}

func TestRealtimeToleratesRosterGaps(t *testing.T) {
	events, _, clock, service := newDashboardFixture(t)
	ctx := context.Background()
	day := DayString(clock.now)

	// Two pending keys, only one resolvable in the roster. The missing one
	// is dropped from the pending list but still counts toward the total.
	events.events[day] = &models.Event{
		EventName:    "Spring Session",
		Participants: []string{"01011111111", "01022222222"},
	}
	events.roster["01011111111"] = &models.RosterEntry{
		PhoneKey: "01011111111",
		Name:     "Kim Minji",
	}

	data, err := service.Realtime(ctx)
	require.NoError(t, err)

	require.Len(t, data.NotCheckedIn, 1)
	assert.Equal(t, "Kim Minji", data.NotCheckedIn[0].Name)
	assert.Equal(t, 2, data.Stats.TotalCount)
	assert.Equal(t, 0, data.Stats.CheckInRate)
}

func TestPercentageRounding(t *testing.T) {
	assert.Equal(t, 0, percentage(0, 0))
	assert.Equal(t, 0, percentage(5, 0))
	assert.Equal(t, 50, percentage(1, 2))
	assert.Equal(t, 33, percentage(1, 3))
	assert.Equal(t, 67, percentage(2, 3))
	assert.Equal(t, 100, percentage(3, 3))
}
