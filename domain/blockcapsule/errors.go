package blockcapsule

import (
	"github.com/pkg/errors"
)

var (
	// ErrCorruptBlock indicates that a capsule's encoded bytes could not be
	// decoded into a block. The encoded bytes and their hash remain available.
	ErrCorruptBlock = errors.New("corrupt block")

	// ErrEncodeBlock indicates that a capsule's block could not be encoded.
	ErrEncodeBlock = errors.New("block encoding failed")
)
