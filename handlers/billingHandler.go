package handlers

import (
	"ClinicFlow/middlewares"
	"ClinicFlow/services"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	service *services.BillingService
}

func NewBillingHandler(service *services.BillingService) *BillingHandler {
	return &BillingHandler{service: service}
}

// GetBill returns the running bill for a session.
func (h *BillingHandler) GetBill(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	bill, err := h.service.GetBill(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, bill)
}

// SettlePayment persists the invoice and completes the session.
func (h *BillingHandler) SettlePayment(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	var input struct {
		PaidAmount float64 `json:"paid_amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	invoice, err := h.service.SettlePayment(c.Request.Context(), id, input.PaidAmount)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, invoice)
}

// ListInvoices returns all settled invoices.
func (h *BillingHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.service.ListInvoices(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, invoices)
}
