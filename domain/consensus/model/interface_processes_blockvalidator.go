package model

import (
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
)

// BlockValidator determines whether a structured block satisfies the
// consensus rules that can be checked on the block in isolation.
// A nil error means the block is valid; rule violations are returned as
// ruleerrors.RuleError values.
type BlockValidator interface {
	ValidateBlock(block *externalapi.DomainBlock) error
}
