package blockcapsule

import (
	"github.com/kaspanet/blockcapsule/domain/consensus/model"
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockcapsule/domain/consensus/processes/blockvalidator"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/hashes"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// Factory creates capsules that share a codec, a content hasher and a
// block validator
type Factory struct {
	codec     model.BlockCodec
	hasher    model.Hasher
	validator model.BlockValidator
}

// NewFactory returns a new capsule Factory
func NewFactory(codec model.BlockCodec, hasher model.Hasher, validator model.BlockValidator) *Factory {
	return &Factory{
		codec:     codec,
		hasher:    hasher,
		validator: validator,
	}
}

var defaultFactory = NewFactory(serialization.NewCodec(), hashes.SHA256(),
	blockvalidator.New(hashes.SHA256(), nil))

// DefaultFactory returns the factory used by the package-level FromBlock
// and FromBytes: the canonical codec, SHA-256 content hashes and the
// default validation rules
func DefaultFactory() *Factory {
	return defaultFactory
}

// Hasher returns the content hasher of capsules created by f
func (f *Factory) Hasher() model.Hasher {
	return f.hasher
}

// FromBlock returns a capsule holding a clone of block. The block is not
// encoded, hashed or validated until asked for. It panics if block is nil.
func (f *Factory) FromBlock(block *externalapi.DomainBlock) *Capsule {
	if block == nil {
		panic(errors.New("FromBlock: nil block"))
	}
	return &Capsule{
		factory: f,
		state:   &structuredOnly{block: block.Clone()},
	}
}

// FromBytes returns a capsule holding a copy of blockBytes and their content
// hash. The bytes are not decoded until asked for, so FromBytes succeeds even
// if they are malformed.
func (f *Factory) FromBytes(blockBytes []byte) *Capsule {
	encoded := make([]byte, len(blockBytes))
	copy(encoded, blockBytes)
	return &Capsule{
		factory: f,
		state: &rawOnly{
			encoded: encoded,
			hash:    f.hasher.Hash(encoded),
		},
	}
}

// FromBlock returns a capsule holding a clone of block, using the default factory
func FromBlock(block *externalapi.DomainBlock) *Capsule {
	return defaultFactory.FromBlock(block)
}

// FromBytes returns a capsule holding a copy of blockBytes, using the default factory
func FromBytes(blockBytes []byte) *Capsule {
	return defaultFactory.FromBytes(blockBytes)
}
