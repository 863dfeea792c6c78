package model

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ContentHash digests the user visible payload of an entity. Bookkeeping
// columns (timestamps, soft delete markers) must never be part of the input.
// The published twin carries the hash of the draft snapshot it was produced
// from, so equal hashes between twins mean publishing can be skipped.
func ContentHash(parts ...string) string {
	h := xxhash.New()
	for _, part := range parts {
		_, _ = h.WriteString(part)
		_, _ = h.Write([]byte{0})
	}

	return strconv.FormatUint(h.Sum64(), 16)
}
