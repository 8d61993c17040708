package services

import (
	"ClinicFlow/apperrors"
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"context"
)

type CatalogService struct {
	repository *repositories.CatalogRepository
}

func NewCatalogService(repository *repositories.CatalogRepository) *CatalogService {
	return &CatalogService{repository: repository}
}

func (s *CatalogService) CreateDrug(ctx context.Context, drug *models.Drug) error {
	if drug.Name == "" || drug.Unit == "" {
		return apperrors.Validation("drug name and unit are required")
	}
	if drug.Price < 0 {
		return apperrors.Validation("drug price cannot be negative")
	}
	return s.repository.CreateDrug(ctx, drug)
}

func (s *CatalogService) GetDrugByID(ctx context.Context, id uint) (*models.Drug, error) {
	return s.repository.GetDrugByID(ctx, id)
}

func (s *CatalogService) GetAllDrugs(ctx context.Context, search string) ([]models.Drug, error) {
	return s.repository.GetAllDrugs(ctx, search)
}

func (s *CatalogService) UpdateDrug(ctx context.Context, drug *models.Drug) error {
	return s.repository.UpdateDrug(ctx, drug)
}

func (s *CatalogService) DeleteDrug(ctx context.Context, id uint) error {
	return s.repository.DeleteDrug(ctx, id)
}

func (s *CatalogService) CreateTreatment(ctx context.Context, treatment *models.TreatmentCatalog) error {
	if treatment.Name == "" {
		return apperrors.Validation("treatment name is required")
	}
	if treatment.Price < 0 {
		return apperrors.Validation("treatment price cannot be negative")
	}
	return s.repository.CreateTreatment(ctx, treatment)
}

func (s *CatalogService) GetTreatmentByID(ctx context.Context, id uint) (*models.TreatmentCatalog, error) {
	return s.repository.GetTreatmentByID(ctx, id)
}

func (s *CatalogService) GetAllTreatments(ctx context.Context, search string) ([]models.TreatmentCatalog, error) {
	return s.repository.GetAllTreatments(ctx, search)
}

func (s *CatalogService) UpdateTreatment(ctx context.Context, treatment *models.TreatmentCatalog) error {
	return s.repository.UpdateTreatment(ctx, treatment)
}

func (s *CatalogService) DeleteTreatment(ctx context.Context, id uint) error {
	return s.repository.DeleteTreatment(ctx, id)
}
