package services

import (
	"ClinicFlow/apperrors"
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"ClinicFlow/utils"
	"context"
)

type PatientService struct {
	repository *repositories.PatientRepository
}

func NewPatientService(repository *repositories.PatientRepository) *PatientService {
	return &PatientService{repository: repository}
}

func (s *PatientService) Create(ctx context.Context, patient *models.Patient) error {
	if err := utils.ValidatePatientData(patient); err != nil {
		return apperrors.Validation(err.Error())
	}
	return s.repository.Create(ctx, patient)
}

func (s *PatientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *PatientService) GetAll(ctx context.Context, search string) ([]models.Patient, error) {
	return s.repository.GetAll(ctx, search)
}

func (s *PatientService) Update(ctx context.Context, patient *models.Patient) error {
	if err := utils.ValidatePatientData(patient); err != nil {
		return apperrors.Validation(err.Error())
	}
	return s.repository.Update(ctx, patient)
}

func (s *PatientService) Delete(ctx context.Context, id string) error {
	return s.repository.Delete(ctx, id)
}
