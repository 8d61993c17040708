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

type RoomRepository struct {
	cache *cache.Cache
}

func NewRoomRepository(cache *cache.Cache) *RoomRepository {
	return &RoomRepository{cache: cache}
}

func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	if err := database.DB.WithContext(ctx).Create(room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("room name already taken")
		}
		return apperrors.Internal(err, "failed to create room")
	}
	return r.cache.DeleteAll(ctx, "rooms_cache*")
}

func (r *RoomRepository) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var room models.Room
	err := database.DB.WithContext(ctx).First(&room, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("room not found")
		}
		return nil, apperrors.Internal(err, "failed to get room")
	}
	return &room, nil
}

func (r *RoomRepository) GetAll(ctx context.Context) ([]models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rooms []models.Room
	if err := database.DB.WithContext(ctx).Order("name ASC").Find(&rooms).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to get all rooms")
	}
	return rooms, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	result := database.DB.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", room.ID).
		Update("name", room.Name)
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to update room")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("room not found")
	}
	return r.cache.DeleteAll(ctx, "rooms_cache*")
}

func (r *RoomRepository) Delete(ctx context.Context, id uint) error {
	result := database.DB.WithContext(ctx).Delete(&models.Room{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to delete room")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("room not found")
	}
	return r.cache.DeleteAll(ctx, "rooms_cache*")
}
