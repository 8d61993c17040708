package repositories

import (
	"ClinicFlow/apperrors"
	"ClinicFlow/cache"
	"ClinicFlow/database"
	"ClinicFlow/models"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	PatientCacheExpiry = 7 * 24 * time.Hour
)

type PatientRepository struct {
	cache *cache.Cache
}

func NewPatientRepository(cache *cache.Cache) *PatientRepository {
	return &PatientRepository{cache: cache}
}

// patientLockKey returns the registration dedup lock key. Phone is optional,
// so phoneless walk-ins get no lock rather than all contending on one key.
func patientLockKey(patient *models.Patient) (string, bool) {
	if patient.Phone == "" {
		return "", false
	}
	return fmt.Sprintf("patient_lock:%s", patient.Phone), true
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if lockKey, ok := patientLockKey(patient); ok {
		lockValue := uuid.New().String()
		locked, err := database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err != nil || !locked {
			return apperrors.Internal(errors.Wrap(err, "patient lock"), "failed to acquire patient lock")
		}
		defer func() {
			if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
				log.Printf("Failed to release patient lock: %v", err)
			}
		}()
	}

	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	if err := database.DB.WithContext(ctx).Create(patient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("patient already registered")
		}
		return apperrors.Internal(err, "failed to create patient")
	}
	return r.cache.DeleteAll(ctx, "patients_cache*")
}

func (r *PatientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getPatientCacheKey(id)
	cachedPatient, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedPatient != "" {
		var patient models.Patient
		if err := json.Unmarshal([]byte(cachedPatient), &patient); err == nil {
			return &patient, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get patient from cache: %v", err)
	}

	var patient models.Patient
	err = database.DB.WithContext(ctx).First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("patient not found")
		}
		return nil, apperrors.Internal(err, "failed to get patient")
	}

	patientJSON, err := json.Marshal(patient)
	if err == nil {
		if err := r.cache.Set(ctx, cacheKey, patientJSON, PatientCacheExpiry); err != nil {
			log.Printf("Failed to set patient in cache: %v", err)
		}
	}
	return &patient, nil
}

func (r *PatientRepository) GetAll(ctx context.Context, search string) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var patients []models.Patient
	query := database.DB.WithContext(ctx).Order("name ASC")
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if err := query.Find(&patients).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to get all patients")
	}
	return patients, nil
}

func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	result := database.DB.WithContext(ctx).
		Model(&models.Patient{}).
		Where("id = ?", patient.ID).
		Updates(map[string]interface{}{
			"name":          patient.Name,
			"sex":           patient.Sex,
			"date_of_birth": patient.DateOfBirth,
			"phone":         patient.Phone,
			"address":       patient.Address,
		})
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to update patient")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("patient not found")
	}
	if err := r.cache.Delete(ctx, r.getPatientCacheKey(patient.ID)); err != nil {
		log.Printf("Failed to delete patient cache: %v", err)
	}
	return r.cache.DeleteAll(ctx, "patients_cache*")
}

func (r *PatientRepository) Delete(ctx context.Context, id string) error {
	result := database.DB.WithContext(ctx).Delete(&models.Patient{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to delete patient")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("patient not found")
	}
	if err := r.cache.Delete(ctx, r.getPatientCacheKey(id)); err != nil {
		log.Printf("Failed to delete patient cache: %v", err)
	}
	return r.cache.DeleteAll(ctx, "patients_cache*")
}

func (r *PatientRepository) getPatientCacheKey(id string) string {
	return fmt.Sprintf("patient_cache:%s", id)
}
