package blockvalidator

import (
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockcapsule/domain/consensus/ruleerrors"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/pow"
	"github.com/pkg/errors"
)

func (v *blockValidator) validateHeaderInIsolation(block *externalapi.DomainBlock) error {
	if block == nil || block.Header == nil {
		return errors.Wrapf(ruleerrors.ErrMissingHeader, "block has no header")
	}

	header := block.Header
	err := v.checkDifficulty(header)
	if err != nil {
		return err
	}

	err = v.checkProofOfWork(block)
	if err != nil {
		return err
	}

	return nil
}

func (v *blockValidator) checkDifficulty(header *externalapi.DomainBlockHeader) error {
	_, err := pow.Boundary(header.Difficulty)
	if err != nil {
		return errors.Wrapf(ruleerrors.ErrBadDifficulty, "block difficulty %x is invalid: %s",
			header.Difficulty, err)
	}
	return nil
}

// checkProofOfWork ensures the block's mine value is within the boundary
// set by its difficulty. Genesis blocks are exempt since they are fixed
// by the network parameters.
func (v *blockValidator) checkProofOfWork(block *externalapi.DomainBlock) error {
	if !v.params.CheckProofOfWork || block.IsGenesis() {
		return nil
	}

	ok, err := pow.CheckProofOfWork(block.Header, v.hasher)
	if err != nil {
		return errors.Wrapf(ruleerrors.ErrBadDifficulty, "%s", err)
	}
	if !ok {
		return errors.Wrapf(ruleerrors.ErrInvalidPoW, "block %d has a mine value of %s, higher "+
			"than its difficulty allows", block.Header.Number, pow.MineValue(block.Header, v.hasher))
	}
	return nil
}
