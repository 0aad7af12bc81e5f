package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"fieldbook/internal/pkg/response"
	"fieldbook/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public read endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/facilities", h.ListFacilities)
	rg.GET("/facilities/:id", h.GetFacility)
	rg.GET("/facilities/:id/fields", h.ListFields)
	rg.GET("/fields/:id/slots", h.ListFieldSlots)
}

// RegisterStaffRoutes mounts slot maintenance behind staff auth.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/slots/:id/block", h.BlockSlot)
	rg.PATCH("/slots/:id/unblock", h.UnblockSlot)
}

func (h *Handler) ListFacilities(c *gin.Context) {
	facilities, err := h.service.ListFacilities(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list facilities")
		return
	}
	response.Success(c, http.StatusOK, "", facilities)
}

func (h *Handler) GetFacility(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid facility ID")
		return
	}

	facility, err := h.service.GetFacility(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Facility not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load facility")
		return
	}
	response.Success(c, http.StatusOK, "", facility)
}

func (h *Handler) ListFields(c *gin.Context) {
	facilityID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid facility ID")
		return
	}

	var categoryID *int64
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID")
			return
		}
		categoryID = &id
	}

	fields, err := h.service.ListFields(c.Request.Context(), facilityID, categoryID)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list fields")
		return
	}
	response.Success(c, http.StatusOK, "", fields)
}

func (h *Handler) ListFieldSlots(c *gin.Context) {
	fieldID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid field ID")
		return
	}
	dateStr := c.Query("date")
	if dateStr == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date query parameter is required")
		return
	}

	slots, err := h.service.ListFieldSlots(c.Request.Context(), fieldID, dateStr)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list slots")
		return
	}
	response.Success(c, http.StatusOK, "", slots)
}

func (h *Handler) BlockSlot(c *gin.Context) {
	h.toggleSlot(c, true)
}

func (h *Handler) UnblockSlot(c *gin.Context) {
	h.toggleSlot(c, false)
}

func (h *Handler) toggleSlot(c *gin.Context, blocked bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid slot ID")
		return
	}

	if blocked {
		err = h.service.BlockSlot(c.Request.Context(), id)
	} else {
		err = h.service.UnblockSlot(c.Request.Context(), id)
	}
	if err != nil {
		if errors.Is(err, repository.ErrSlotUnavailable) {
			response.Error(c, http.StatusConflict, "SLOT_CONFLICT", "Slot cannot change state")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update slot")
		return
	}

	msg := "Slot blocked"
	if !blocked {
		msg = "Slot unblocked"
	}
	response.Success(c, http.StatusOK, msg, nil)
}
