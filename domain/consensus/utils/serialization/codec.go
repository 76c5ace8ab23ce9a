package serialization

import (
	"github.com/kaspanet/blockcapsule/domain/consensus/model"
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
)

type codec struct{}

// NewCodec returns the canonical block codec
func NewCodec() model.BlockCodec {
	return codec{}
}

func (codec) Encode(block *externalapi.DomainBlock) ([]byte, error) {
	return BlockToBytes(block)
}

func (codec) Decode(blockBytes []byte) (*externalapi.DomainBlock, error) {
	return BytesToBlock(blockBytes)
}
