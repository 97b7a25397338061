package common

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
)

// ReadFileDigest loads path and returns its contents with their SHA-256.
func ReadFileDigest(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return data, Sha256Hex(data), nil
}

func Sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
