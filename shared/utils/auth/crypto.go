package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// Generate Random String (hex encoded, length bytes of entropy)
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// temporary password alphabet - no ambiguous characters (0/O, 1/l/I)
const tempPasswordAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateTemporaryPassword creates the single-use credential issued to a
// delegate account. The delegate must rotate it on first login.
func GenerateTemporaryPassword(length int) (string, error) {
	if length < 12 {
		length = 12
	}

	result := make([]byte, length)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		result[i] = tempPasswordAlphabet[n.Int64()]
	}

	return string(result), nil
}
