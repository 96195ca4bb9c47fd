package storage

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLDB 包裝 gorm 連線，供 postgres 與 sqlite 共用
type SQLDB struct {
	*gorm.DB
}

// PostgresOptions 描述 PostgreSQL 連線參數
type PostgresOptions struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     int
	SSLMode  string
}

// DSN 組合 PostgreSQL 連線字串
func (o PostgresOptions) DSN() string {
	sslMode := o.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		o.Host, o.User, o.Password, o.Name, o.Port, sslMode)
}

func NewPostgresDB(opts PostgresOptions) (*SQLDB, error) {
	return NewPostgresDBFromDSN(opts.DSN())
}

// NewPostgresDBFromDSN 以完整連線字串開啟 PostgreSQL
func NewPostgresDBFromDSN(dsn string) (*SQLDB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLDB{DB: db}, nil
}

func (db *SQLDB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate 自動遷移資料庫結構
func (db *SQLDB) AutoMigrate(models ...interface{}) error {
	return db.DB.AutoMigrate(models...)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		// 將驅動程式的唯一鍵錯誤轉為 gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
}
