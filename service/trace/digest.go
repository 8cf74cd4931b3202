package trace

import (
	"encoding/hex"

	"github.com/viant/schedsim/model"
	"golang.org/x/crypto/blake2b"
)

// Digest returns the hex BLAKE2b-256 of the rendered text trace. Sequence
// numbers and timestamps are not part of the digest, so identical inputs
// always produce identical digests.
func Digest(events []*model.Event) string {
	sum := blake2b.Sum256([]byte(Text(events)))
	return hex.EncodeToString(sum[:])
}
