package handlers

import (
	"ClinicFlow/middlewares"
	"ClinicFlow/models"
	"ClinicFlow/services"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type CareSessionHandler struct {
	service *services.CareSessionService
	queues  *services.QueueService
}

func NewCareSessionHandler(service *services.CareSessionService, queues *services.QueueService) *CareSessionHandler {
	return &CareSessionHandler{service: service, queues: queues}
}

func parseSessionID(c *gin.Context) (uint, bool) {
	idStr := c.Param("session_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid session ID"})
		return 0, false
	}
	return uint(id), true
}

// CreateSession registers a patient into today's queue.
func (h *CareSessionHandler) CreateSession(c *gin.Context) {
	var input services.CreateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	session, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, session)
}

// GetSessionByID returns one session with its clinical associations.
func (h *CareSessionHandler) GetSessionByID(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	session, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, session)
}

// ListSessions lists sessions with filters and optional pagination.
func (h *CareSessionHandler) ListSessions(c *gin.Context) {
	params := services.ListParams{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		DoctorID: c.Query("doctorId"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Page = page
	}
	if pageSize, err := strconv.Atoi(c.Query("pageSize")); err == nil {
		params.PageSize = pageSize
	}
	if roomID, err := strconv.ParseUint(c.Query("roomId"), 10, 32); err == nil {
		params.RoomID = uint(roomID)
	}
	if dateStart, err := time.Parse("2006-01-02", c.Query("dateStart")); err == nil {
		params.DateStart = &dateStart
	}
	if dateEnd, err := time.Parse("2006-01-02", c.Query("dateEnd")); err == nil {
		end := dateEnd.AddDate(0, 0, 1) // inclusive end date
		params.DateEnd = &end
	}

	sessions, meta, err := h.queues.List(c.Request.Context(), params)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, gin.H{"data": sessions, "meta": meta})
}

// UpdateSession applies the whitelisted partial update (status transition
// and/or diagnosis summary).
func (h *CareSessionHandler) UpdateSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	var input services.UpdateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	session, err := h.service.UpdateStatus(c.Request.Context(), id, input)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, session)
}

// RecordVitalSign attaches the session's vital-sign record.
func (h *CareSessionHandler) RecordVitalSign(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	var vitalSign models.VitalSign
	if err := c.ShouldBindJSON(&vitalSign); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	session, err := h.service.RecordVitalSign(c.Request.Context(), id, &vitalSign)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, session)
}

// GetVitalSign returns the session's vital-sign record.
func (h *CareSessionHandler) GetVitalSign(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	session, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if session.VitalSign == nil {
		c.JSON(404, gin.H{"error": "Vital sign not recorded for this session"})
		return
	}
	c.JSON(200, session.VitalSign)
}

// AddDiagnosis attaches a coded diagnosis.
func (h *CareSessionHandler) AddDiagnosis(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	var diagnosis models.SessionDiagnosis
	if err := c.ShouldBindJSON(&diagnosis); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	session, err := h.service.AddDiagnosis(c.Request.Context(), id, &diagnosis)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, session)
}

// GetDiagnoses lists the session's coded diagnoses.
func (h *CareSessionHandler) GetDiagnoses(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	session, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, session.Diagnoses)
}

// AddTreatment attaches a catalog treatment with a price snapshot.
func (h *CareSessionHandler) AddTreatment(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	var input struct {
		TreatmentID uint `json:"treatment_id"`
		Quantity    int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	session, err := h.service.AddTreatment(c.Request.Context(), id, input.TreatmentID, input.Quantity)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, session)
}

// GetTreatments lists the session's applied treatments.
func (h *CareSessionHandler) GetTreatments(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	session, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, session.Treatments)
}

// AddDrugOrder attaches a drug order with a price snapshot.
func (h *CareSessionHandler) AddDrugOrder(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	var input struct {
		DrugID   uint   `json:"drug_id"`
		Quantity int    `json:"quantity"`
		Dose     string `json:"dose"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	session, err := h.service.AddDrugOrder(c.Request.Context(), id, input.DrugID, input.Quantity, input.Dose)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, session)
}

// GetDrugOrders lists the session's drug orders.
func (h *CareSessionHandler) GetDrugOrders(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	session, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, session.DrugOrders)
}
