package blockcapsule

import (
	"fmt"
	"sync"

	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockcapsule/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

// Capsule holds a block as its canonical encoding, its structured form or
// both, and converts lazily between the two. The content hash is cached
// alongside the encoding. A Capsule is immutable and safe for concurrent use.
type Capsule struct {
	factory *Factory

	mutex sync.Mutex
	state capsuleState
}

// materialize makes sure the structured form is present and returns it.
// c.mutex must be held.
func (c *Capsule) materialize() (*externalapi.DomainBlock, error) {
	switch state := c.state.(type) {
	case *structuredOnly:
		return state.block, nil
	case *rawAndStructured:
		return state.block, nil
	case *rawOnly:
		if state.decodeErr != nil {
			return nil, state.decodeErr
		}
		block, err := c.factory.codec.Decode(state.encoded)
		if err != nil {
			log.Debugf("Failed to decode block %s: %s", state.hash, err)
			state.decodeErr = errors.Wrapf(ErrCorruptBlock, "block %s: %s", state.hash, err)
			return nil, state.decodeErr
		}
		c.state = &rawAndStructured{
			encoded: state.encoded,
			hash:    state.hash,
			block:   block,
		}
		return block, nil
	default:
		panic(errors.Errorf("unexpected capsule state %T", state))
	}
}

// serialize makes sure the encoding and its hash are present and returns
// them. c.mutex must be held.
func (c *Capsule) serialize() ([]byte, *externalapi.DomainHash, error) {
	switch state := c.state.(type) {
	case *rawOnly:
		return state.encoded, state.hash, nil
	case *rawAndStructured:
		return state.encoded, state.hash, nil
	case *structuredOnly:
		encoded, err := c.factory.codec.Encode(state.block)
		if err != nil {
			return nil, nil, errors.Wrapf(ErrEncodeBlock, "%s", err)
		}
		hash := c.factory.hasher.Hash(encoded)
		c.state = &rawAndStructured{
			encoded: encoded,
			hash:    hash,
			block:   state.block,
		}
		return encoded, hash, nil
	default:
		panic(errors.Errorf("unexpected capsule state %T", state))
	}
}

func (c *Capsule) structured() (*externalapi.DomainBlock, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.materialize()
}

func (c *Capsule) header() (*externalapi.DomainBlockHeader, error) {
	block, err := c.structured()
	if err != nil {
		return nil, err
	}
	if block.Header == nil {
		return nil, errors.Wrapf(ruleerrors.ErrMissingHeader, "block has no header")
	}
	return block.Header, nil
}

func (c *Capsule) encoded() ([]byte, *externalapi.DomainHash, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.serialize()
}

// EncodedBytes returns a copy of the block's canonical encoding
func (c *Capsule) EncodedBytes() ([]byte, error) {
	encoded, _, err := c.encoded()
	if err != nil {
		return nil, err
	}
	encodedCopy := make([]byte, len(encoded))
	copy(encodedCopy, encoded)
	return encodedCopy, nil
}

// Hash returns the content hash of the block's canonical encoding
func (c *Capsule) Hash() (*externalapi.DomainHash, error) {
	_, hash, err := c.encoded()
	if err != nil {
		return nil, err
	}
	return hash, nil
}

// ParentHash returns the hash of the block's parent as recorded in its header
func (c *Capsule) ParentHash() (*externalapi.DomainHash, error) {
	header, err := c.header()
	if err != nil {
		return nil, err
	}
	parentHash := header.ParentHash
	return &parentHash, nil
}

// BlockNumber returns the block's height as recorded in its header
func (c *Capsule) BlockNumber() (uint64, error) {
	header, err := c.header()
	if err != nil {
		return 0, err
	}
	return header.Number, nil
}

// Block returns a clone of the structured block
func (c *Capsule) Block() (*externalapi.DomainBlock, error) {
	block, err := c.structured()
	if err != nil {
		return nil, err
	}
	return block.Clone(), nil
}

// Validate runs the factory's block validator. A block that breaks a
// validation rule returns false and no error. Any other failure, including
// ErrCorruptBlock, is returned as an error.
func (c *Capsule) Validate() (bool, error) {
	block, err := c.structured()
	if err != nil {
		return false, err
	}

	err = c.factory.validator.ValidateBlock(block)
	if err != nil {
		if ruleerrors.IsRuleError(err) {
			log.Debugf("Block is invalid: %s", err)
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IsMaterialized returns whether the structured form is present. It never
// triggers a decode.
func (c *Capsule) IsMaterialized() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.state.isMaterialized()
}

// String returns a short description of the capsule. It never triggers a
// decode or an encode.
func (c *Capsule) String() string {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	switch state := c.state.(type) {
	case *rawOnly:
		if state.decodeErr != nil {
			return fmt.Sprintf("BlockCapsule{hash: %s, %d bytes, corrupt}", state.hash, len(state.encoded))
		}
		return fmt.Sprintf("BlockCapsule{hash: %s, %d bytes}", state.hash, len(state.encoded))
	case *structuredOnly:
		if state.block.Header == nil {
			return "BlockCapsule{no header, not serialized}"
		}
		return fmt.Sprintf("BlockCapsule{number: %d, parent: %s, not serialized}",
			state.block.Header.Number, state.block.Header.ParentHash)
	case *rawAndStructured:
		if state.block.Header == nil {
			return fmt.Sprintf("BlockCapsule{hash: %s, no header}", state.hash)
		}
		return fmt.Sprintf("BlockCapsule{hash: %s, number: %d, parent: %s}",
			state.hash, state.block.Header.Number, state.block.Header.ParentHash)
	default:
		return fmt.Sprintf("BlockCapsule{%T}", state)
	}
}
