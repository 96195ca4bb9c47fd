package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"roomlog/internal/apperr"
	"roomlog/internal/storage"
)

// baseRepository 提供 gorm 實作共用的寫入與刪除
type baseRepository struct {
	db *storage.SQLDB
}

func (r *baseRepository) create(ctx context.Context, model interface{}) error {
	return translateError(r.db.WithContext(ctx).Create(model).Error)
}

// deleteByID 依記錄 ID 刪除，回傳是否有資料被刪除
func (r *baseRepository) deleteByID(ctx context.Context, model interface{}, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return false, translateError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// translateError 將 gorm 錯誤轉為 apperr 的錯誤種類
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return apperr.DuplicateIdentity(err)
	}
	return err
}

// isUniqueViolation 處理未被驅動程式翻譯的唯一鍵錯誤
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
