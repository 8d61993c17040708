package handlers

import (
	"ClinicFlow/middlewares"
	"ClinicFlow/services"

	"github.com/gin-gonic/gin"
)

type QueueHandler struct {
	service *services.QueueService
}

func NewQueueHandler(service *services.QueueService) *QueueHandler {
	return &QueueHandler{service: service}
}

// GetMainQueue returns every non-completed session in arrival order.
func (h *QueueHandler) GetMainQueue(c *gin.Context) {
	sessions, err := h.service.MainQueue(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"data": sessions}, 200)
}

// GetPharmacyQueue returns the medication queue projection.
func (h *QueueHandler) GetPharmacyQueue(c *gin.Context) {
	view, err := h.service.PharmacyQueue(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, view, 200)
}

// GetDoctorQueue returns the per-doctor queue projection.
func (h *QueueHandler) GetDoctorQueue(c *gin.Context) {
	view, err := h.service.DoctorQueue(c.Request.Context(), c.Param("doctor_id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, view, 200)
}
