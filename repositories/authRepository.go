package repositories

import (
	"ClinicFlow/apperrors"
	"ClinicFlow/cache"
	"ClinicFlow/models"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	UserCacheExpiry = 7 * 24 * time.Hour
)

type UserRepository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	AuthenticateUser(ctx context.Context, email, password string) (*models.User, error)
	ValidateRoleID(ctx context.Context, roleID int64) error
	UpdateUserPassword(ctx context.Context, userID int64, hashedPassword string) error
	UpdateUserProfile(ctx context.Context, userID int64, username, email string) error
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUserPermissions(ctx context.Context, userID int64) ([]models.Permission, error)
	DeleteUser(ctx context.Context, userID int64) error
	DeleteUserCache(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewUserRepository(db *gorm.DB, cache *cache.Cache) UserRepository {
	return &userRepository{db: db, cache: cache}
}

// getUser resolves a user by an arbitrary where clause, going through the
// cache keyed on cacheID. The password column is never selected here.
func (r *userRepository) getUser(ctx context.Context, cacheID string, query string, args ...interface{}) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getUserCacheKey(cacheID)
	cachedUser, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedUser != "" {
		var user models.User
		if err := json.Unmarshal([]byte(cachedUser), &user); err == nil {
			return &user, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get user from cache: %v", err)
	}

	var user models.User
	err = r.db.WithContext(ctx).
		Select("id, username, email, role_id, created_at").
		Preload("Role", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, description")
		}).
		Where(query, args...).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal(err, "failed to get user")
	}

	userJSON, err := json.Marshal(user)
	if err == nil {
		if err := r.cache.Set(ctx, cacheKey, userJSON, UserCacheExpiry); err != nil {
			log.Printf("Failed to set user in cache: %v", err)
		}
	}
	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUser(ctx, username, "username = ?", username)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, email, "email = ?", email)
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return r.getUser(ctx, fmt.Sprintf("%d", userID), "id = ?", userID)
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, apperrors.Internal(err, "failed to check email existence")
	}
	return count > 0, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("username or email already registered")
		}
		return apperrors.Internal(err, "failed to create user")
	}
	return nil
}

// AuthenticateUser loads the user including the password hash; the service
// compares it with bcrypt.
func (r *userRepository) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select("id, username, email, password, role_id, created_at").
		Preload("Role", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, description")
		}).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validation("invalid email or password")
		}
		return nil, apperrors.Internal(err, "failed to authenticate user")
	}
	return &user, nil
}

func (r *userRepository) ValidateRoleID(ctx context.Context, roleID int64) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Role{}).Where("id = ?", roleID).Count(&count).Error
	if err != nil {
		return apperrors.Internal(err, "failed to validate role ID")
	}
	if count == 0 {
		return apperrors.NotFound("role not found")
	}
	return nil
}

func (r *userRepository) UpdateUserPassword(ctx context.Context, userID int64, hashedPassword string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("password", hashedPassword).Error
}

func (r *userRepository) UpdateUserProfile(ctx context.Context, userID int64, username, email string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"username": username,
		"email":    email,
	}).Error
}

func (r *userRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var users []models.User
	err := r.db.WithContext(ctx).
		Select("id, username, email, role_id, created_at").
		Preload("Role", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, description")
		}).
		Find(&users).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to get all users")
	}
	return users, nil
}

func (r *userRepository) GetUserPermissions(ctx context.Context, userID int64) ([]models.Permission, error) {
	var permissions []models.Permission
	err := r.db.WithContext(ctx).
		Joins("JOIN role_permissions rp ON permissions.id = rp.permission_id").
		Joins("JOIN roles r ON rp.role_id = r.id").
		Where("r.id = (SELECT role_id FROM users WHERE id = ?)", userID).
		Find(&permissions).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to get user permissions")
	}
	return permissions, nil
}

func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, userID)
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}

// DeleteUserCache drops every key the user may be cached under: getUser keys
// by username, email, or ID depending on the lookup.
func (r *userRepository) DeleteUserCache(ctx context.Context, user *models.User) error {
	return r.cache.DeleteBatch(ctx,
		r.getUserCacheKey(user.Username),
		r.getUserCacheKey(user.Email),
		r.getUserCacheKey(fmt.Sprintf("%d", user.ID)),
	)
}

func (r *userRepository) getUserCacheKey(identifier string) string {
	return fmt.Sprintf("user_cache:%s", identifier)
}
