package model

import (
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
)

// BlockCodec converts blocks to and from their canonical binary encoding
type BlockCodec interface {
	Encode(block *externalapi.DomainBlock) ([]byte, error)
	Decode(blockBytes []byte) (*externalapi.DomainBlock, error)
}
