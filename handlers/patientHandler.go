package handlers

import (
	"ClinicFlow/middlewares"
	"ClinicFlow/models"
	"ClinicFlow/services"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.service.Create(c.Request.Context(), &patient); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, patient)
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patient, err := h.service.GetByID(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, patient)
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	patients, err := h.service.GetAll(c.Request.Context(), c.Query("search"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, patients)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	patient.ID = c.Param("patient_id")
	if err := h.service.Update(c.Request.Context(), &patient); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, patient)
}

func (h *PatientHandler) DeletePatient(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("patient_id")); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Patient deleted"})
}
