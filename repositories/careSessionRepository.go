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
	SessionCacheExpiry = 24 * time.Hour

	// MaxDailyTickets is the last ticket the U%03d format can express.
	MaxDailyTickets = 999
)

// SessionFilter is the predicate set for listing care sessions. A zero Limit
// means unpaginated.
type SessionFilter struct {
	Status    string
	Search    string
	DoctorID  string
	RoomID    uint
	DateStart *time.Time
	DateEnd   *time.Time
	Offset    int
	Limit     int
}

// CareSessionRepository persists care sessions and their child records.
type CareSessionRepository interface {
	Create(ctx context.Context, session *models.CareSession) error
	GetByID(ctx context.Context, id uint) (*models.CareSession, error)
	UpdateStatus(ctx context.Context, id uint, fields map[string]interface{}) (*models.CareSession, error)
	List(ctx context.Context, filter SessionFilter) ([]models.CareSession, int64, error)
	AddVitalSign(ctx context.Context, vitalSign *models.VitalSign) error
	AddDiagnosis(ctx context.Context, diagnosis *models.SessionDiagnosis) error
	AddTreatment(ctx context.Context, treatment *models.SessionTreatment) error
	AddDrugOrder(ctx context.Context, order *models.DrugOrder) error
}

type careSessionRepository struct {
	cache *cache.Cache
}

func NewCareSessionRepository(cache *cache.Cache) CareSessionRepository {
	return &careSessionRepository{cache: cache}
}

// FormatQueueNumber renders the daily ticket for the n-th registration of the
// day. n must be in [1, MaxDailyTickets].
func FormatQueueNumber(n int) string {
	return fmt.Sprintf("U%03d", n)
}

// NextDailyTicket issues the ticket following count same-day registrations,
// or a Conflict once the U%03d format is exhausted.
func NextDailyTicket(count int64) (string, error) {
	if count >= MaxDailyTickets {
		return "", apperrors.Conflict("daily queue capacity exceeded")
	}
	return FormatQueueNumber(int(count) + 1), nil
}

// DayBounds returns [start of day, start of next day) for t in local time.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// Create registers a session with the next daily queue ticket. The per-day
// Redis lock plus the surrounding transaction make the count-and-insert
// atomic, so concurrent registrations cannot observe the same count.
func (r *careSessionRepository) Create(ctx context.Context, session *models.CareSession) error {
	now := time.Now()
	dayKey := now.Format("2006-01-02")

	lockKey := fmt.Sprintf("queue_number_lock:%s", dayKey)
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 200 * time.Millisecond
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return apperrors.Internal(errors.Wrap(err, "queue number lock"), "failed to acquire daily queue lock")
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release queue number lock: %v", err)
		}
	}()

	start, end := DayBounds(now)
	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.CareSession{}).
			Where("created_at >= ? AND created_at < ?", start, end).
			Count(&count).Error; err != nil {
			return apperrors.Internal(err, "failed to count today's sessions")
		}
		ticket, err := NextDailyTicket(count)
		if err != nil {
			return err
		}

		session.QueueNumber = ticket
		session.QueueDate = dayKey
		session.Status = models.StatusWaitingConsultation

		if err := tx.Create(session).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Conflict("queue number already taken, retry registration")
			}
			return apperrors.Internal(err, "failed to create care session")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := r.cache.DeleteAll(ctx, "sessions_cache*"); err != nil {
		log.Printf("Failed to invalidate sessions cache: %v", err)
	}
	return nil
}

// GetByID loads a session with its clinical associations eagerly attached, so
// status gates always evaluate against the same row they guard.
func (r *careSessionRepository) GetByID(ctx context.Context, id uint) (*models.CareSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getSessionCacheKey(id)
	cachedSession, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedSession != "" {
		var session models.CareSession
		if err := json.Unmarshal([]byte(cachedSession), &session); err == nil {
			return &session, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get session from cache: %v", err)
	}

	session, err := r.loadSession(ctx, database.DB, id)
	if err != nil {
		return nil, err
	}

	sessionJSON, err := json.Marshal(session)
	if err == nil {
		if err := r.cache.Set(ctx, cacheKey, sessionJSON, SessionCacheExpiry); err != nil {
			log.Printf("Failed to set session in cache: %v", err)
		}
	}

	return session, nil
}

func (r *careSessionRepository) loadSession(ctx context.Context, db *gorm.DB, id uint) (*models.CareSession, error) {
	var session models.CareSession
	err := db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Preload("Room").
		Preload("VitalSign").
		Preload("Diagnoses").
		Preload("Treatments.Treatment").
		Preload("DrugOrders.Drug").
		First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("care session not found")
		}
		return nil, apperrors.Internal(err, "failed to get care session")
	}
	return &session, nil
}

// UpdateStatus persists the whitelisted fields and returns the reloaded
// session. Fields are restricted by the service layer to status and the
// free-text diagnosis summary.
func (r *careSessionRepository) UpdateStatus(ctx context.Context, id uint, fields map[string]interface{}) (*models.CareSession, error) {
	result := database.DB.WithContext(ctx).
		Model(&models.CareSession{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, apperrors.Internal(result.Error, "failed to update care session")
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NotFound("care session not found")
	}

	if err := r.invalidateSession(ctx, id); err != nil {
		log.Printf("Failed to invalidate session cache: %v", err)
	}
	return r.loadSession(ctx, database.DB, id)
}

// List returns sessions matching the filter in FIFO order (created_at
// ascending) together with the total match count before pagination.
func (r *careSessionRepository) List(ctx context.Context, filter SessionFilter) ([]models.CareSession, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := database.DB.WithContext(ctx).
		Model(&models.CareSession{}).
		Joins("JOIN patient ON patient.id = care_session.patient_id").
		Joins("JOIN doctor ON doctor.id = care_session.doctor_id")

	switch filter.Status {
	case "", models.StatusFilterActive:
		query = query.Where("care_session.status <> ?", models.StatusCompleted)
	default:
		query = query.Where("care_session.status = ?", filter.Status)
	}
	if filter.DoctorID != "" {
		query = query.Where("care_session.doctor_id = ?", filter.DoctorID)
	}
	if filter.RoomID != 0 {
		query = query.Where("care_session.room_id = ?", filter.RoomID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("patient.name ILIKE ? OR doctor.username ILIKE ?", pattern, pattern)
	}
	if filter.DateStart != nil {
		query = query.Where("care_session.created_at >= ?", *filter.DateStart)
	}
	if filter.DateEnd != nil {
		query = query.Where("care_session.created_at < ?", *filter.DateEnd)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err, "failed to count care sessions")
	}

	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}

	var sessions []models.CareSession
	err := query.
		Preload("Patient").
		Preload("Doctor").
		Preload("Room").
		Preload("VitalSign").
		Preload("Diagnoses").
		Preload("Treatments.Treatment").
		Preload("DrugOrders.Drug").
		Order("care_session.created_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, 0, apperrors.Internal(err, "failed to list care sessions")
	}
	return sessions, total, nil
}

func (r *careSessionRepository) AddVitalSign(ctx context.Context, vitalSign *models.VitalSign) error {
	if err := database.DB.WithContext(ctx).Create(vitalSign).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("vital sign already recorded for this session")
		}
		return apperrors.Internal(err, "failed to create vital sign")
	}
	return r.invalidateSession(ctx, vitalSign.SessionID)
}

func (r *careSessionRepository) AddDiagnosis(ctx context.Context, diagnosis *models.SessionDiagnosis) error {
	if err := database.DB.WithContext(ctx).Create(diagnosis).Error; err != nil {
		return apperrors.Internal(err, "failed to create diagnosis")
	}
	return r.invalidateSession(ctx, diagnosis.SessionID)
}

func (r *careSessionRepository) AddTreatment(ctx context.Context, treatment *models.SessionTreatment) error {
	if err := database.DB.WithContext(ctx).Create(treatment).Error; err != nil {
		return apperrors.Internal(err, "failed to create session treatment")
	}
	return r.invalidateSession(ctx, treatment.SessionID)
}

func (r *careSessionRepository) AddDrugOrder(ctx context.Context, order *models.DrugOrder) error {
	if err := database.DB.WithContext(ctx).Create(order).Error; err != nil {
		return apperrors.Internal(err, "failed to create drug order")
	}
	return r.invalidateSession(ctx, order.SessionID)
}

func (r *careSessionRepository) invalidateSession(ctx context.Context, id uint) error {
	if err := r.cache.Delete(ctx, r.getSessionCacheKey(id)); err != nil {
		return err
	}
	return r.cache.DeleteAll(ctx, "sessions_cache*")
}

func (r *careSessionRepository) getSessionCacheKey(id uint) string {
	return fmt.Sprintf("session_cache:%d", id)
}
