package repository

import (
	"context"

	"roomlog/internal/models"
	"roomlog/internal/storage"
)

type Repositories struct {
	User UserRepository
	Log  LogRepository
}

// NewRepositories 建立 gorm（postgres / sqlite）實作
func NewRepositories(db *storage.SQLDB) *Repositories {
	return &Repositories{
		User: NewUserRepository(db),
		Log:  NewLogRepository(db),
	}
}

// Migrate 建立或更新資料表
func Migrate(db *storage.SQLDB) error {
	return db.AutoMigrate(&models.User{}, &models.LogEntry{})
}

// NewMongoRepositories 建立 MongoDB 實作並確保唯一索引存在
func NewMongoRepositories(ctx context.Context, db *storage.MongoDB) (*Repositories, error) {
	users := NewMongoUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	logs := NewMongoLogRepository(db)
	if err := logs.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return &Repositories{User: users, Log: logs}, nil
}
