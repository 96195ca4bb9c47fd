package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// SecretKeySize 是金鑰的隨機位元組數，編碼後為 64 個十六進位字元
const SecretKeySize = 32

// SecretKeyIssuer 為新用戶產生不透明的金鑰
type SecretKeyIssuer interface {
	Issue() (string, error)
}

// RandomKeyIssuer 以 crypto/rand 產生金鑰
type RandomKeyIssuer struct{}

func (RandomKeyIssuer) Issue() (string, error) {
	return MakeRandHexString(SecretKeySize)
}

// MakeRandHexString 產生 size 個隨機位元組並以十六進位編碼
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
