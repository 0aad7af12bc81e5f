package schedule

import (
	"errors"
	"fmt"
	"net/http"

	"fieldbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts schedule generation; the group is expected to sit
// behind staff auth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/schedules/generate", h.Generate)
}

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		case errors.Is(err, ErrDuplicateSchedule):
			msg := "Schedule already exists for the requested range"
			if result != nil && result.DuplicateDates != "" {
				msg = fmt.Sprintf("Schedule already exists for: %s", result.DuplicateDates)
			}
			response.Error(c, http.StatusConflict, "DUPLICATE_SCHEDULE", msg)
		case errors.Is(err, ErrNothingToGenerate):
			response.Error(c, http.StatusUnprocessableEntity, "NOTHING_TO_GENERATE", "Nothing to generate for the requested range")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate schedule")
		}
		return
	}

	response.Success(c, http.StatusCreated,
		fmt.Sprintf("%d slots created", result.CreatedCount), result)
}
