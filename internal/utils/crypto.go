package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTPCode returns a uniform random 6-digit numeric code with
// leading zeros preserved.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
