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
	DoctorCacheExpiry = 7 * 24 * time.Hour
)

type DoctorRepository struct {
	cache *cache.Cache
}

func NewDoctorRepository(cache *cache.Cache) *DoctorRepository {
	return &DoctorRepository{cache: cache}
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	if doctor.ID == "" {
		doctor.ID = uuid.New().String()
	}
	if err := database.DB.WithContext(ctx).Create(doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("doctor username already taken")
		}
		return apperrors.Internal(err, "failed to create doctor")
	}
	return r.cache.DeleteAll(ctx, "doctors_cache*")
}

func (r *DoctorRepository) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getDoctorCacheKey(id)
	cachedDoctor, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedDoctor != "" {
		var doctor models.Doctor
		if err := json.Unmarshal([]byte(cachedDoctor), &doctor); err == nil {
			return &doctor, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get doctor from cache: %v", err)
	}

	var doctor models.Doctor
	err = database.DB.WithContext(ctx).First(&doctor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("doctor not found")
		}
		return nil, apperrors.Internal(err, "failed to get doctor")
	}

	doctorJSON, err := json.Marshal(doctor)
	if err == nil {
		if err := r.cache.Set(ctx, cacheKey, doctorJSON, DoctorCacheExpiry); err != nil {
			log.Printf("Failed to set doctor in cache: %v", err)
		}
	}
	return &doctor, nil
}

func (r *DoctorRepository) GetAll(ctx context.Context) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "doctors_cache"
	cachedDoctors, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedDoctors != "" {
		var doctors []models.Doctor
		if err := json.Unmarshal([]byte(cachedDoctors), &doctors); err == nil {
			return doctors, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get doctors from cache: %v", err)
	}

	var doctors []models.Doctor
	if err := database.DB.WithContext(ctx).Order("name ASC").Find(&doctors).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to get all doctors")
	}

	doctorsJSON, err := json.Marshal(doctors)
	if err == nil {
		if err := r.cache.Set(ctx, cacheKey, doctorsJSON, DoctorCacheExpiry); err != nil {
			log.Printf("Failed to set doctors in cache: %v", err)
		}
	}
	return doctors, nil
}

func (r *DoctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	result := database.DB.WithContext(ctx).
		Model(&models.Doctor{}).
		Where("id = ?", doctor.ID).
		Updates(map[string]interface{}{
			"username":  doctor.Username,
			"name":      doctor.Name,
			"specialty": doctor.Specialty,
		})
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to update doctor")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("doctor not found")
	}
	if err := r.cache.Delete(ctx, r.getDoctorCacheKey(doctor.ID)); err != nil {
		log.Printf("Failed to delete doctor cache: %v", err)
	}
	return r.cache.DeleteAll(ctx, "doctors_cache*")
}

func (r *DoctorRepository) Delete(ctx context.Context, id string) error {
	result := database.DB.WithContext(ctx).Delete(&models.Doctor{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to delete doctor")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("doctor not found")
	}
	if err := r.cache.Delete(ctx, r.getDoctorCacheKey(id)); err != nil {
		log.Printf("Failed to delete doctor cache: %v", err)
	}
	return r.cache.DeleteAll(ctx, "doctors_cache*")
}

func (r *DoctorRepository) getDoctorCacheKey(id string) string {
	return fmt.Sprintf("doctor_cache:%s", id)
}
