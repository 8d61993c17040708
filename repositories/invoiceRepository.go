package repositories

import (
	"ClinicFlow/apperrors"
	"ClinicFlow/cache"
	"ClinicFlow/database"
	"ClinicFlow/models"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	cache *cache.Cache
}

func NewInvoiceRepository(cache *cache.Cache) *InvoiceRepository {
	return &InvoiceRepository{cache: cache}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	if err := database.DB.WithContext(ctx).Create(invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("session already has an invoice")
		}
		return apperrors.Internal(err, "failed to create invoice")
	}
	return r.cache.DeleteAll(ctx, "invoices_cache*")
}

func (r *InvoiceRepository) GetBySessionID(ctx context.Context, sessionID uint) (*models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var invoice models.Invoice
	err := database.DB.WithContext(ctx).First(&invoice, "session_id = ?", sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("invoice not found")
		}
		return nil, apperrors.Internal(err, "failed to get invoice")
	}
	return &invoice, nil
}

func (r *InvoiceRepository) GetAll(ctx context.Context) ([]models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var invoices []models.Invoice
	if err := database.DB.WithContext(ctx).Order("created_at DESC").Find(&invoices).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to get all invoices")
	}
	return invoices, nil
}
