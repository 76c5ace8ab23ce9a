package blockcapsule

import (
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
)

// capsuleState is one of rawOnly, structuredOnly or rawAndStructured.
// A capsule always holds at least one of the two representations.
type capsuleState interface {
	isMaterialized() bool
}

type rawOnly struct {
	encoded []byte
	hash    *externalapi.DomainHash

	// decodeErr is set once a decode of encoded has failed
	decodeErr error
}

type structuredOnly struct {
	block *externalapi.DomainBlock
}

type rawAndStructured struct {
	encoded []byte
	hash    *externalapi.DomainHash
	block   *externalapi.DomainBlock
}

func (*rawOnly) isMaterialized() bool          { return false }
func (*structuredOnly) isMaterialized() bool   { return true }
func (*rawAndStructured) isMaterialized() bool { return true }
