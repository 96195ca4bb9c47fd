package storage

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB 開啟 sqlite 資料庫，path 為 ":memory:" 時使用記憶體資料庫
func NewSQLiteDB(path string) (*SQLDB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if path == ":memory:" {
		// 每條連線都是獨立的記憶體資料庫，必須限制為單一連線
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return &SQLDB{DB: db}, nil
}
