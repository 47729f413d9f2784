package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// ContentHash returns a SHA-256 hex digest of the snapshot's content.
// FetchedAt is excluded, so two syncs over unchanged upstream data hash
// identically. Go's JSON encoding sorts map keys, which keeps the digest
// deterministic.
func (s *Snapshot) ContentHash() string {
	if s == nil {
		return ""
	}
	shadow := *s
	shadow.FetchedAt = time.Time{}

	data, err := json.Marshal(&shadow)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Equal reports whether two snapshots carry the same content, ignoring
// fetch timestamps.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.ContentHash() == other.ContentHash()
}
