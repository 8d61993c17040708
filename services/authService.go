package services

import (
	"ClinicFlow/apperrors"
	"ClinicFlow/database"
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"ClinicFlow/utils"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type UserService interface {
	ValidateAndCreateUser(ctx context.Context, user *models.User) error
	AuthenticateUser(ctx context.Context, email, password string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, userID int64, hashedPassword string) error
	UpdateUserProfile(ctx context.Context, userID int64, username, email string) error
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserPermissions(ctx context.Context, userID int64) ([]models.Permission, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// withUserLock runs fn while holding the per-user Redis lock.
func withUserLock(ctx context.Context, lockID string, fn func() error) error {
	lockKey := fmt.Sprintf("user_lock:%s", lockID)
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, time.Minute)
	if err != nil || !locked {
		return apperrors.Internal(errors.Wrap(err, "user lock"), "failed to acquire user lock")
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release user lock: %v", err)
		}
	}()
	return fn()
}

func (s *userService) ValidateAndCreateUser(ctx context.Context, user *models.User) error {
	return withUserLock(ctx, user.Email, func() error {
		if err := utils.ValidateUserData(*user); err != nil {
			return apperrors.Validation(err.Error())
		}

		if exists, err := s.userRepo.EmailExists(ctx, user.Email); err != nil {
			return err
		} else if exists {
			return apperrors.Conflict("email already registered")
		}

		if err := s.userRepo.ValidateRoleID(ctx, user.RoleID); err != nil {
			return err
		}

		hashedPassword, err := utils.HashPassword(user.Password)
		if err != nil {
			return apperrors.Internal(err, "failed to hash password")
		}
		user.Password = hashedPassword

		return s.userRepo.CreateUser(ctx, user)
	})
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.AuthenticateUser(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, apperrors.Validation("invalid email or password")
	}
	return user, nil
}

func (s *userService) UpdateUserPassword(ctx context.Context, userID int64, hashedPassword string) error {
	return withUserLock(ctx, fmt.Sprintf("%d", userID), func() error {
		user, err := s.userRepo.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := s.userRepo.UpdateUserPassword(ctx, userID, hashedPassword); err != nil {
			return apperrors.Internal(err, "failed to update user password")
		}
		return s.userRepo.DeleteUserCache(ctx, user)
	})
}

func (s *userService) UpdateUserProfile(ctx context.Context, userID int64, username, email string) error {
	return withUserLock(ctx, fmt.Sprintf("%d", userID), func() error {
		// Load before updating so the cache entries under the old
		// username and email get dropped too.
		user, err := s.userRepo.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := s.userRepo.UpdateUserProfile(ctx, userID, username, email); err != nil {
			return apperrors.Internal(err, "failed to update user profile")
		}
		return s.userRepo.DeleteUserCache(ctx, user)
	})
}

func (s *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAllUsers(ctx)
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetUserByUsername(ctx, username)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetUserByEmail(ctx, email)
}

func (s *userService) GetUserPermissions(ctx context.Context, userID int64) ([]models.Permission, error) {
	return s.userRepo.GetUserPermissions(ctx, userID)
}

func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	return withUserLock(ctx, fmt.Sprintf("%d", userID), func() error {
		user, err := s.userRepo.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := s.userRepo.DeleteUserCache(ctx, user); err != nil {
			log.Printf("Failed to delete user cache: %v", err)
		}
		return s.userRepo.DeleteUser(ctx, userID)
	})
}
