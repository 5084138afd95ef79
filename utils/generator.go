package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"

	"github.com/anjiri1684/tutoring_center/models"
	"gorm.io/gorm"
)

const (
	checkInCodeLength = 8
	checkInAttempts   = 10
	letterBytes       = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// RandomCode returns n characters drawn from an alphabet without look-alike
// characters, suitable for typing from a projected QR fallback.
func RandomCode(n int) (string, error) {
	b := make([]byte, n)
	max := big.NewInt(int64(len(letterBytes)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = letterBytes[idx.Int64()]
	}
	return string(b), nil
}

// RandomToken returns a hex string of nBytes random bytes.
func RandomToken(nBytes int) (string, error) {
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func GenerateUniqueCheckInCode(tx *gorm.DB) (string, error) {
	for i := 0; i < checkInAttempts; i++ {
		code, err := RandomCode(checkInCodeLength)
		if err != nil {
			return "", err
		}

		var count int64
		if err := tx.Model(&models.ClassSession{}).Where("check_in_token = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique check-in code")
}
