package repositories

import (
	"ClinicFlow/apperrors"
	"ClinicFlow/cache"
	"ClinicFlow/database"
	"ClinicFlow/models"
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CatalogRepository holds the drug and treatment price catalogs. Session
// records copy prices from here at attachment time.
type CatalogRepository struct {
	cache *cache.Cache
}

func NewCatalogRepository(cache *cache.Cache) *CatalogRepository {
	return &CatalogRepository{cache: cache}
}

func (r *CatalogRepository) CreateDrug(ctx context.Context, drug *models.Drug) error {
	if err := database.DB.WithContext(ctx).Create(drug).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("drug name already registered")
		}
		return apperrors.Internal(err, "failed to create drug")
	}
	return r.cache.DeleteAll(ctx, "drugs_cache*")
}

func (r *CatalogRepository) GetDrugByID(ctx context.Context, id uint) (*models.Drug, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var drug models.Drug
	err := database.DB.WithContext(ctx).First(&drug, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("drug not found")
		}
		return nil, apperrors.Internal(err, "failed to get drug")
	}
	return &drug, nil
}

func (r *CatalogRepository) GetAllDrugs(ctx context.Context, search string) ([]models.Drug, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var drugs []models.Drug
	query := database.DB.WithContext(ctx).Order("name ASC")
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if err := query.Find(&drugs).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to get all drugs")
	}
	return drugs, nil
}

func (r *CatalogRepository) UpdateDrug(ctx context.Context, drug *models.Drug) error {
	result := database.DB.WithContext(ctx).
		Model(&models.Drug{}).
		Where("id = ?", drug.ID).
		Updates(map[string]interface{}{
			"name":  drug.Name,
			"unit":  drug.Unit,
			"stock": drug.Stock,
			"price": drug.Price,
		})
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to update drug")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("drug not found")
	}
	return r.cache.DeleteAll(ctx, "drugs_cache*")
}

func (r *CatalogRepository) DeleteDrug(ctx context.Context, id uint) error {
	result := database.DB.WithContext(ctx).Delete(&models.Drug{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to delete drug")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("drug not found")
	}
	return r.cache.DeleteAll(ctx, "drugs_cache*")
}

func (r *CatalogRepository) CreateTreatment(ctx context.Context, treatment *models.TreatmentCatalog) error {
	if err := database.DB.WithContext(ctx).Create(treatment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("treatment name already registered")
		}
		return apperrors.Internal(err, "failed to create treatment")
	}
	return r.cache.DeleteAll(ctx, "treatments_cache*")
}

func (r *CatalogRepository) GetTreatmentByID(ctx context.Context, id uint) (*models.TreatmentCatalog, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var treatment models.TreatmentCatalog
	err := database.DB.WithContext(ctx).First(&treatment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("treatment not found")
		}
		return nil, apperrors.Internal(err, "failed to get treatment")
	}
	return &treatment, nil
}

func (r *CatalogRepository) GetAllTreatments(ctx context.Context, search string) ([]models.TreatmentCatalog, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var treatments []models.TreatmentCatalog
	query := database.DB.WithContext(ctx).Order("name ASC")
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if err := query.Find(&treatments).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to get all treatments")
	}
	return treatments, nil
}

func (r *CatalogRepository) UpdateTreatment(ctx context.Context, treatment *models.TreatmentCatalog) error {
	result := database.DB.WithContext(ctx).
		Model(&models.TreatmentCatalog{}).
		Where("id = ?", treatment.ID).
		Updates(map[string]interface{}{
			"name":  treatment.Name,
			"price": treatment.Price,
		})
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to update treatment")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("treatment not found")
	}
	return r.cache.DeleteAll(ctx, "treatments_cache*")
}

func (r *CatalogRepository) DeleteTreatment(ctx context.Context, id uint) error {
	result := database.DB.WithContext(ctx).Delete(&models.TreatmentCatalog{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to delete treatment")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("treatment not found")
	}
	return r.cache.DeleteAll(ctx, "treatments_cache*")
}
