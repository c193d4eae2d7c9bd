package handler

import (
	"github.com/fuelsight/fuelsight-api/internal/application/service"
	"github.com/fuelsight/fuelsight-api/internal/presentation/http/dto/request"
	"github.com/fuelsight/fuelsight-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles station settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns the station's settings, creating defaults on first access
func (h *SettingsHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	settings, err := h.settingsService.Get(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved", gin.H{"settings": settings})
}

// Update applies a partial settings update
func (h *SettingsHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), &service.UpdateSettingsInput{
		UserID:               *userID,
		Currency:             req.Currency,
		Timezone:             req.Timezone,
		DateFormat:           req.DateFormat,
		NozzleFuelMap:        req.NozzleFuelMap,
		EmailNotifications:   req.EmailNotifications,
		UnreadableSlipAlerts: req.UnreadableSlipAlerts,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated", gin.H{"settings": settings})
}
