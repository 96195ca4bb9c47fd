package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 表示可登入系統的用戶
type User struct {
	ID          string    `gorm:"primaryKey;size:36" bson:"_id" json:"_id"`
	UserID      string    `gorm:"uniqueIndex;not null" bson:"userId" json:"userId"`       // 登入用的識別名稱，必須唯一
	SecretKey   string    `gorm:"uniqueIndex;not null" bson:"secretKey" json:"secretKey"` // 系統產生，必須唯一
	Password    string    `gorm:"not null" bson:"password,omitempty" json:"-"`            // 只存雜湊值，json 序列化時會被忽略
	Role        UserRole  `gorm:"not null" bson:"role" json:"role"`
	AllowedRoom []string  `gorm:"serializer:json" bson:"allowedRoom" json:"allowedRoom"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserRole 定義用戶角色的類型
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleLecturer UserRole = "lecturer"
)

// Valid 判斷角色是否為允許的值
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleLecturer
}

// BeforeCreate 在寫入前指派記錄 ID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// CanAccess 判斷用戶是否可進入指定房間，管理員不受房間列表限制
func (u *User) CanAccess(room string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return slices.Contains(u.AllowedRoom, room)
}

// Sanitized 回傳不含密碼的副本
func (u User) Sanitized() User {
	u.Password = ""
	if u.AllowedRoom == nil {
		u.AllowedRoom = []string{}
	}
	return u
}
