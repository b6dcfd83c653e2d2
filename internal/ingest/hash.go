package ingest

import (
	"crypto/sha256"
	"encoding/hex"
)

// sourceHash fingerprints the exact bytes fetched for a snapshot. The
// 16-hex-char sha256 prefix is enough for provenance and diagnostics.
func sourceHash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])[:16]
}
