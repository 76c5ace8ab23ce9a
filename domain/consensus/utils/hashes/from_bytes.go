package hashes

import (
	"math/big"

	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
)

// ToBig converts a hash into a big.Int, reading the hash bytes as a
// big-endian unsigned integer.
func ToBig(hash *externalapi.DomainHash) *big.Int {
	return new(big.Int).SetBytes(hash.ByteSlice())
}
