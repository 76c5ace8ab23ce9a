package blockvalidator

import (
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockcapsule/domain/consensus/ruleerrors"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/merkle"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/transactionhelper"
	"github.com/pkg/errors"
)

func (v *blockValidator) validateBodyInIsolation(block *externalapi.DomainBlock) error {
	err := v.checkBlockContainsAtLeastOneTransaction(block)
	if err != nil {
		return err
	}

	err = v.checkFirstBlockTransactionIsCoinbase(block)
	if err != nil {
		return err
	}

	err = v.checkBlockContainsOnlyOneCoinbase(block)
	if err != nil {
		return err
	}

	err = v.checkTransactionsInIsolation(block)
	if err != nil {
		return err
	}

	err = v.checkBlockTxMerkleRoot(block)
	if err != nil {
		return err
	}

	err = v.checkSignatures(block)
	if err != nil {
		return err
	}

	return nil
}

func (v *blockValidator) checkBlockContainsAtLeastOneTransaction(block *externalapi.DomainBlock) error {
	if len(block.Transactions) == 0 {
		return errors.Wrapf(ruleerrors.ErrNoTransactions, "block does not contain "+
			"any transactions")
	}
	return nil
}

func (v *blockValidator) checkFirstBlockTransactionIsCoinbase(block *externalapi.DomainBlock) error {
	coinbase := block.Transactions[transactionhelper.CoinbaseTransactionIndex]
	if coinbase == nil || !coinbase.IsCoinbase() {
		return errors.Wrapf(ruleerrors.ErrFirstTxNotCoinbase, "first transaction in "+
			"block is not a coinbase")
	}
	return nil
}

func (v *blockValidator) checkBlockContainsOnlyOneCoinbase(block *externalapi.DomainBlock) error {
	for i, tx := range block.Transactions[transactionhelper.CoinbaseTransactionIndex+1:] {
		if tx != nil && tx.IsCoinbase() {
			return errors.Wrapf(ruleerrors.ErrMultipleCoinbases, "block contains second coinbase at "+
				"index %d", i+transactionhelper.CoinbaseTransactionIndex+1)
		}
	}
	return nil
}

func (v *blockValidator) checkTransactionsInIsolation(block *externalapi.DomainBlock) error {
	for i, tx := range block.Transactions {
		err := checkTransactionInIsolation(tx)
		if err != nil {
			return ruleerrors.NewErrInvalidTransaction(i, err)
		}
	}
	return nil
}

func checkTransactionInIsolation(tx *externalapi.DomainTransaction) error {
	if tx == nil {
		return errors.Wrapf(ruleerrors.ErrMalformedTransaction, "transaction is nil")
	}
	if len(tx.Inputs) == 0 {
		return errors.Wrapf(ruleerrors.ErrNoTxInputs, "transaction has no inputs")
	}
	if len(tx.Outputs) == 0 {
		return errors.Wrapf(ruleerrors.ErrNoTxOutputs, "transaction has no outputs")
	}
	for i, input := range tx.Inputs {
		if input == nil {
			return errors.Wrapf(ruleerrors.ErrMalformedTransaction, "input #%d is nil", i)
		}
	}
	for i, output := range tx.Outputs {
		if output == nil {
			return errors.Wrapf(ruleerrors.ErrMalformedTransaction, "output #%d is nil", i)
		}
		if output.Value < 0 {
			return errors.Wrapf(ruleerrors.ErrBadTxOutValue, "output #%d has negative "+
				"value of %d", i, output.Value)
		}
	}
	return nil
}

func (v *blockValidator) checkBlockTxMerkleRoot(block *externalapi.DomainBlock) error {
	calculatedTxMerkleRoot, err := merkle.CalculateTransactionMerkleRoot(block.Transactions, v.hasher)
	if err != nil {
		return errors.Wrapf(ruleerrors.ErrMalformedTransaction, "%s", err)
	}
	if !block.Header.TxMerkleRoot.Equal(calculatedTxMerkleRoot) {
		return errors.Wrapf(ruleerrors.ErrBadMerkleRoot, "block tx merkle root is invalid - block "+
			"header indicates %s, but calculated value is %s",
			block.Header.TxMerkleRoot, calculatedTxMerkleRoot)
	}
	return nil
}

// checkSignatures verifies the signature of every input of every
// non-coinbase transaction
func (v *blockValidator) checkSignatures(block *externalapi.DomainBlock) error {
	if !v.params.CheckSignatures {
		return nil
	}

	for i, tx := range block.Transactions {
		if tx.IsCoinbase() {
			continue
		}
		for inputIndex := range tx.Inputs {
			isValid, err := transactionhelper.VerifyInputSignature(tx, inputIndex, v.hasher)
			if err != nil {
				return ruleerrors.NewErrInvalidTransaction(i,
					errors.Wrapf(ruleerrors.ErrMalformedTransaction, "%s", err))
			}
			if !isValid {
				return ruleerrors.NewErrInvalidTransaction(i,
					errors.Wrapf(ruleerrors.ErrBadSignature, "input #%d has an invalid signature", inputIndex))
			}
		}
	}
	return nil
}
