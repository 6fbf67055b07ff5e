package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onewave/qrcheckin-backend/internal/services"
)

// AdminHandler serves the privileged record management endpoints.
type AdminHandler struct {
	adminService *services.AdminService
	syncService  *services.SyncService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService, syncService *services.SyncService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		syncService:  syncService,
	}
}

// GetMembers lists all staff records
// GET /api/members
func (h *AdminHandler) GetMembers(c *gin.Context) {
	members, err := h.adminService.ListMembers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

// GetParticipants lists all regular participants
// GET /api/participants
func (h *AdminHandler) GetParticipants(c *gin.Context) {
	participants, err := h.adminService.ListParticipants(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, participants)
}

// UpdateParticipant applies a partial edit to a participant or staff record
// and reconciles today's check-in ledger
// PUT /api/participants/:id
func (h *AdminHandler) UpdateParticipant(c *gin.Context) {
	id := c.Param("id")

	var update services.ParticipantUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if err := h.adminService.UpdateParticipant(c.Request.Context(), id, &update); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"participantId": id,
	})
}

// SyncDiscord reconciles the participant store from the Discord roster
// POST /api/sync-discord
func (h *AdminHandler) SyncDiscord(c *gin.Context) {
	result, err := h.syncService.SyncDiscord(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"total":   result.Total,
		"synced":  result.Synced,
		"skipped": result.Skipped,
	})
}
