package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogEntry 表示一次進入房間的紀錄
type LogEntry struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id" json:"_id"`
	UserID    string    `gorm:"index;not null" bson:"userId" json:"userId"` // 只是複製的值，不做外鍵約束
	Room      string    `gorm:"not null" bson:"room" json:"room"`
	Timestamp time.Time `gorm:"not null" bson:"timestamp" json:"timestamp"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TableName 指定資料表名稱
func (LogEntry) TableName() string {
	return "logs"
}

// BeforeCreate 在寫入前指派記錄 ID
func (l *LogEntry) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// NewLogEntry 建立一筆紀錄，未指定時間時使用現在時間
func NewLogEntry(userID, room string, timestamp *time.Time) LogEntry {
	ts := time.Now()
	if timestamp != nil && !timestamp.IsZero() {
		ts = *timestamp
	}
	return LogEntry{
		UserID:    userID,
		Room:      room,
		Timestamp: ts,
	}
}
