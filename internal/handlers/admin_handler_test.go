package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onewave/qrcheckin-backend/internal/models"
	"github.com/onewave/qrcheckin-backend/internal/services"
)

func TestGetMembersEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.staff.records["01077778888"] = &models.StaffRecord{
		PhoneKey: "01077778888",
		Name:     "Park Jisoo",
		Position: "Operations",
	}

	w := env.do(t, http.MethodGet, "/api/members", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Members []services.MemberView `json:"members"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Members, 1)
	assert.Equal(t, "Park Jisoo", body.Members[0].Name)
	assert.Equal(t, models.StatusApproved, body.Members[0].Status)
}

func TestGetParticipantsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.participants.records["01012345678"] = &models.ParticipantRecord{
		PhoneKey:   "01012345678",
		Name:       "Kim Minji",
		TeamNumber: 2,
		Status:     models.StatusApproved,
	}
	env.participants.records["01000001111"] = &models.ParticipantRecord{
		PhoneKey:   "01000001111",
		Name:       "Stray Staff",
		TeamNumber: models.StaffTeamNumber,
	}

	w := env.do(t, http.MethodGet, "/api/participants", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// The participants listing is a bare array, not an envelope.
	var views []services.ParticipantView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "Kim Minji", views[0].Name)
}

func TestUpdateParticipantEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.participants.records["01012345678"] = &models.ParticipantRecord{
		PhoneKey:   "01012345678",
		Name:       "Kim Minji",
		TeamNumber: 2,
	}

	w := env.do(t, http.MethodPut, "/api/participants/01012345678", `{"checked_in_status":true}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"participantId":"01012345678"`)

	assert.True(t, env.participants.records["01012345678"].CheckedIn)
}

func TestUpdateParticipantEndpointStaffCheckinForbidden(t *testing.T) {
	env := newTestEnv(t)
	env.staff.records["01077778888"] = &models.StaffRecord{
		PhoneKey: "01077778888",
		Name:     "Park Jisoo",
	}

	w := env.do(t, http.MethodPut, "/api/participants/01077778888", `{"checked_in_status":true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.staff.records["01077778888"].CheckedIn)
}

func TestUpdateParticipantEndpointNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/participants/01000000000", `{"memo":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateParticipantEndpointBadBody(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/participants/01012345678", `{bad`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncDiscordEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.discord.members = []*models.DiscordMember{
		{Name: "Kim Minji", Phone: "010-1234-5678", TeamNumber: 2},
		{Name: "Canceled", Phone: "010-9999-8888", Status: models.StatusCanceled},
	}

	w := env.do(t, http.MethodPost, "/api/sync-discord", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Total   int  `json:"total"`
		Synced  int  `json:"synced"`
		Skipped int  `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, 1, body.Synced)
	assert.Equal(t, 1, body.Skipped)

	assert.NotNil(t, env.participants.records["01012345678"])
}
