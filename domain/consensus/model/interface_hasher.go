package model

import (
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
)

// Hasher computes the content hash of a byte sequence. Implementations
// must be deterministic and safe for concurrent use.
type Hasher interface {
	Hash(data []byte) *externalapi.DomainHash
}
