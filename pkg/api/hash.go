package api

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// ContentSum returns a BLAKE3 fingerprint of document content. The
// session controller compares fingerprints to decide whether the
// in-memory buffer still matches the durable record.
func ContentSum(content string) string {
	sum := blake3.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
