package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewHex32 mints a party/request identifier: exactly 32 lowercase hex
// characters (no separators/prefixes), the format every identity field in
// the ledger uses.
func NewHex32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
