package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/google/uuid"
)

// ==================== REQUEST ID ====================

func GenerateRequestID() string {
	return uuid.New().String()
}

// ==================== CONFIRMATION CODE ====================

const (
	ConfirmationCodeMin = 100000
	ConfirmationCodeMax = 1000000 // exclusive

	// SpentConfirmationCode marks a code that was used or burned by a wrong guess.
	SpentConfirmationCode = "0"
)

// GenerateConfirmationCode returns a six digit code in [ConfirmationCodeMin, ConfirmationCodeMax).
func GenerateConfirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(ConfirmationCodeMax-ConfirmationCodeMin))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+ConfirmationCodeMin, 10), nil
}
