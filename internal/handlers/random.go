package handlers

import (
	"crypto/rand"
	"encoding/hex"
)

// randomState — одноразовый state для OAuth-редиректа.
func randomState() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
