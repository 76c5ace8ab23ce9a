package blockvalidator

import (
	"github.com/kaspanet/blockcapsule/domain/consensus/model"
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockcapsule/infrastructure/logger"
)

// Params holds the knobs of the block validation rules
type Params struct {
	// CheckProofOfWork enables the proof-of-work rule for every block
	// above genesis.
	CheckProofOfWork bool

	// CheckSignatures enables Schnorr signature verification of every
	// non-coinbase input.
	CheckSignatures bool
}

// DefaultParams are the validation parameters used when none are given
var DefaultParams = Params{
	CheckProofOfWork: false,
	CheckSignatures:  false,
}

// blockValidator checks a block in isolation: everything that can be
// decided from the block's own fields.
type blockValidator struct {
	hasher model.Hasher
	params Params
}

// New instantiates a new BlockValidator
func New(hasher model.Hasher, params *Params) model.BlockValidator {
	if params == nil {
		params = &DefaultParams
	}
	return &blockValidator{
		hasher: hasher,
		params: *params,
	}
}

// ValidateBlock returns nil if the block passes every rule, or the first
// rule error it violates
func (v *blockValidator) ValidateBlock(block *externalapi.DomainBlock) error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "ValidateBlock")
	defer onEnd()

	err := v.validateHeaderInIsolation(block)
	if err != nil {
		log.Debugf("Block failed header validation: %s", err)
		return err
	}

	err = v.validateBodyInIsolation(block)
	if err != nil {
		log.Debugf("Block %d failed body validation: %s", block.Header.Number, err)
		return err
	}

	return nil
}
