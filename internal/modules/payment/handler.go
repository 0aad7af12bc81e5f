package payment

import (
	"errors"
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/checkout", h.Checkout)
	rg.GET("/payments/vnpay/return", h.HandleReturn)
}

func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	resp, err := h.service.Checkout(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrNoSlots) {
			response.Error(c, http.StatusConflict, "SLOT_CONFLICT", err.Error())
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to start checkout")
		return
	}
	response.Success(c, http.StatusOK, "Checkout created", resp)
}

// HandleReturn is the inbound gateway callback. The browser always ends up
// on a success or failure page; nothing is rendered here.
func (h *Handler) HandleReturn(c *gin.Context) {
	result := h.service.HandleReturn(c.Request.Context(), c.Request.URL.Query())
	c.Redirect(http.StatusFound, result.RedirectURL)
}
