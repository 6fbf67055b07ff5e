package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onewave/qrcheckin-backend/internal/services"
)

// CheckinHandler serves the public kiosk endpoints: suffix search and the
// check-in transition.
type CheckinHandler struct {
	searchService  *services.SearchService
	checkinService *services.CheckinService
}

// NewCheckinHandler creates a new kiosk handler
func NewCheckinHandler(searchService *services.SearchService, checkinService *services.CheckinService) *CheckinHandler {
	return &CheckinHandler{
		searchService:  searchService,
		checkinService: checkinService,
	}
}

// Search finds check-in candidates by phone suffix
// GET /api/search?phoneLast4=XXXX
func (h *CheckinHandler) Search(c *gin.Context) {
	results, err := h.searchService.Search(c.Request.Context(), c.Query("phoneLast4"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// CheckinRequest is the kiosk check-in request body.
type CheckinRequest struct {
	PhoneKey string `json:"phoneKey"`
}

// CheckIn performs the check-in transition
// POST /api/checkin
func (h *CheckinHandler) CheckIn(c *gin.Context) {
	var req CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	result, err := h.checkinService.CheckIn(c.Request.Context(), req.PhoneKey)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
