package domain

import "encoding/hex"

const idLength = 24

// IsValidID reports whether id has the shape of a stored document id:
// 24 hexadecimal characters.
func IsValidID(id string) bool {
	if len(id) != idLength {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}
