package handlers

import (
	"ClinicFlow/middlewares"
	"ClinicFlow/models"
	"ClinicFlow/services"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	service *services.DoctorService
}

func NewDoctorHandler(service *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.service.Create(c.Request.Context(), &doctor); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, doctor)
}

func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	doctor, err := h.service.GetByID(c.Request.Context(), c.Param("doctor_id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, doctor)
}

func (h *DoctorHandler) GetAllDoctors(c *gin.Context) {
	doctors, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, doctors)
}

func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	doctor.ID = c.Param("doctor_id")
	if err := h.service.Update(c.Request.Context(), &doctor); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, doctor)
}

func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("doctor_id")); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Doctor deleted"})
}
