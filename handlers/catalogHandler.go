package handlers

import (
	"ClinicFlow/middlewares"
	"ClinicFlow/models"
	"ClinicFlow/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	service *services.CatalogService
}

func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func parseCatalogID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid catalog ID"})
		return 0, false
	}
	return uint(id), true
}

func (h *CatalogHandler) CreateDrug(c *gin.Context) {
	var drug models.Drug
	if err := c.ShouldBindJSON(&drug); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.service.CreateDrug(c.Request.Context(), &drug); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, drug)
}

func (h *CatalogHandler) GetDrugByID(c *gin.Context) {
	id, ok := parseCatalogID(c, "drug_id")
	if !ok {
		return
	}
	drug, err := h.service.GetDrugByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, drug)
}

func (h *CatalogHandler) GetAllDrugs(c *gin.Context) {
	drugs, err := h.service.GetAllDrugs(c.Request.Context(), c.Query("search"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, drugs)
}

func (h *CatalogHandler) UpdateDrug(c *gin.Context) {
	id, ok := parseCatalogID(c, "drug_id")
	if !ok {
		return
	}
	var drug models.Drug
	if err := c.ShouldBindJSON(&drug); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	drug.ID = id
	if err := h.service.UpdateDrug(c.Request.Context(), &drug); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, drug)
}

func (h *CatalogHandler) DeleteDrug(c *gin.Context) {
	id, ok := parseCatalogID(c, "drug_id")
	if !ok {
		return
	}
	if err := h.service.DeleteDrug(c.Request.Context(), id); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Drug deleted"})
}

func (h *CatalogHandler) CreateTreatment(c *gin.Context) {
	var treatment models.TreatmentCatalog
	if err := c.ShouldBindJSON(&treatment); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.service.CreateTreatment(c.Request.Context(), &treatment); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, treatment)
}

func (h *CatalogHandler) GetTreatmentByID(c *gin.Context) {
	id, ok := parseCatalogID(c, "treatment_id")
	if !ok {
		return
	}
	treatment, err := h.service.GetTreatmentByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, treatment)
}

func (h *CatalogHandler) GetAllTreatments(c *gin.Context) {
	treatments, err := h.service.GetAllTreatments(c.Request.Context(), c.Query("search"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, treatments)
}

func (h *CatalogHandler) UpdateTreatment(c *gin.Context) {
	id, ok := parseCatalogID(c, "treatment_id")
	if !ok {
		return
	}
	var treatment models.TreatmentCatalog
	if err := c.ShouldBindJSON(&treatment); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	treatment.ID = id
	if err := h.service.UpdateTreatment(c.Request.Context(), &treatment); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, treatment)
}

func (h *CatalogHandler) DeleteTreatment(c *gin.Context) {
	id, ok := parseCatalogID(c, "treatment_id")
	if !ok {
		return
	}
	if err := h.service.DeleteTreatment(c.Request.Context(), id); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Treatment deleted"})
}
