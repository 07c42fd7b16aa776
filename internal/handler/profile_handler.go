package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/drillwise/mwd-backend-go/internal/models"
	"github.com/drillwise/mwd-backend-go/internal/pipeline"
	"github.com/drillwise/mwd-backend-go/internal/service"
	"github.com/drillwise/mwd-backend-go/pkg/response"
)

// ProfileHandler handles HTTP requests for the hole depth profile
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// RunProfile handles POST /api/v1/profiles/run
func (h *ProfileHandler) RunProfile(c *gin.Context) {
	var req models.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid run request: "+err.Error())
		return
	}

	report, err := h.profileService.RunProfile(req)
	if err != nil {
		var rigErr *pipeline.MalformedRigNameError
		if errors.As(err, &rigErr) {
			// Identity failures carry enough context to locate the bad
			// record; they are the caller's data problem, not ours.
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, report)
}

// GetProfile handles GET /api/v1/profiles
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	var filter models.ProfileFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	records, total, err := h.profileService.GetProfile(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"total":   total,
		"records": records,
	})
}

// GetCycles handles GET /api/v1/profiles/cycles
func (h *ProfileHandler) GetCycles(c *gin.Context) {
	var filter models.CycleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	records, total, err := h.profileService.GetCycles(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"total":   total,
		"records": records,
	})
}
