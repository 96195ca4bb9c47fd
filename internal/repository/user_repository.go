package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"roomlog/internal/apperr"
	"roomlog/internal/models"
	"roomlog/internal/storage"
)

// UserRepository 是用戶資料的存取介面
type UserRepository interface {
	// Create 寫入新用戶，userId 或 secretKey 重複時回傳 apperr.ErrDuplicateIdentity
	Create(ctx context.Context, user *models.User) error
	// FindByUserID 依登入名稱查詢，查無資料時回傳 apperr.ErrNotFound
	FindByUserID(ctx context.Context, userID string) (*models.User, error)
	// FindAll 回傳所有用戶，不含密碼欄位
	FindAll(ctx context.Context) ([]models.User, error)
	// Delete 依記錄 ID 刪除，回傳是否有資料被刪除
	Delete(ctx context.Context, id string) (bool, error)
}

type userRepository struct {
	baseRepository
}

func NewUserRepository(db *storage.SQLDB) UserRepository {
	return &userRepository{baseRepository{db: db}}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.create(ctx, user)
}

func (r *userRepository) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := r.db.WithContext(ctx).Omit("password").Order("created_at asc").Find(&users).Error
	return users, err
}

func (r *userRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.deleteByID(ctx, &models.User{}, id)
}
