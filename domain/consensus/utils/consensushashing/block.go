package consensushashing

import (
	"github.com/kaspanet/blockcapsule/domain/consensus/model"
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/serialization"
)

// BlockHash returns the given block's content hash: the hash of its full
// canonical encoding
func BlockHash(block *externalapi.DomainBlock, hasher model.Hasher) (*externalapi.DomainHash, error) {
	blockBytes, err := serialization.BlockToBytes(block)
	if err != nil {
		return nil, err
	}
	return hasher.Hash(blockBytes), nil
}

// HeaderHash returns the hash of the given header's canonical encoding
func HeaderHash(header *externalapi.DomainBlockHeader, hasher model.Hasher) *externalapi.DomainHash {
	return hasher.Hash(serialization.HeaderToBytes(header))
}
