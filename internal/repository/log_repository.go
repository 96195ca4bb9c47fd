package repository

import (
	"context"

	"roomlog/internal/models"
	"roomlog/internal/storage"
)

// LogRepository 是進出紀錄的存取介面
type LogRepository interface {
	Create(ctx context.Context, entry *models.LogEntry) error
	FindAll(ctx context.Context) ([]models.LogEntry, error)
	// FindByUserID 回傳指定用戶的紀錄，沒有紀錄時回傳空切片
	FindByUserID(ctx context.Context, userID string) ([]models.LogEntry, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type logRepository struct {
	baseRepository
}

func NewLogRepository(db *storage.SQLDB) LogRepository {
	return &logRepository{baseRepository{db: db}}
}

func (r *logRepository) Create(ctx context.Context, entry *models.LogEntry) error {
	return r.create(ctx, entry)
}

func (r *logRepository) FindAll(ctx context.Context) ([]models.LogEntry, error) {
	entries := []models.LogEntry{}
	err := r.db.WithContext(ctx).Order("timestamp asc").Find(&entries).Error
	return entries, err
}

func (r *logRepository) FindByUserID(ctx context.Context, userID string) ([]models.LogEntry, error) {
	entries := []models.LogEntry{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("timestamp asc").Find(&entries).Error
	return entries, err
}

func (r *logRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.deleteByID(ctx, &models.LogEntry{}, id)
}
