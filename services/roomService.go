package services

import (
	"ClinicFlow/apperrors"
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"context"
)

type RoomService struct {
	repository *repositories.RoomRepository
}

func NewRoomService(repository *repositories.RoomRepository) *RoomService {
	return &RoomService{repository: repository}
}

func (s *RoomService) Create(ctx context.Context, room *models.Room) error {
	if room.Name == "" {
		return apperrors.Validation("room name is required")
	}
	return s.repository.Create(ctx, room)
}

func (s *RoomService) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *RoomService) GetAll(ctx context.Context) ([]models.Room, error) {
	return s.repository.GetAll(ctx)
}

func (s *RoomService) Update(ctx context.Context, room *models.Room) error {
	return s.repository.Update(ctx, room)
}

func (s *RoomService) Delete(ctx context.Context, id uint) error {
	return s.repository.Delete(ctx, id)
}
