package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost 是密碼雜湊的預設成本（2^10 輪）
const DefaultBcryptCost = 10

// MaxPasswordBytes 是 bcrypt 可接受的最大密碼長度
const MaxPasswordBytes = 72

// PasswordHasher 負責密碼的單向雜湊與驗證，沒有還原的方法
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// BcryptHasher 以 bcrypt 實作 PasswordHasher
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher 建立 BcryptHasher，cost 超出 bcrypt 範圍時使用預設值
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
