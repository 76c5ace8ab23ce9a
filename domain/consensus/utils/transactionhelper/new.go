package transactionhelper

import (
	"encoding/hex"

	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// CoinbaseTransactionIndex is the index of the coinbase transaction in every block
const CoinbaseTransactionIndex = 0

// NewCoinbaseTransaction returns a transaction minting value to the given
// public key hash. The coinbase data is carried in the signature field of the
// transaction's single input.
func NewCoinbaseTransaction(publicKeyHashHex string, coinbaseData []byte, value int64) (*externalapi.DomainTransaction, error) {
	publicKeyHash, err := hex.DecodeString(publicKeyHashHex)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid public key hash %q", publicKeyHashHex)
	}

	return &externalapi.DomainTransaction{
		Inputs: []*externalapi.DomainTransactionInput{{
			PreviousTransactionID: []byte{},
			PreviousOutputIndex:   externalapi.CoinbaseOutputIndex,
			Signature:             coinbaseData,
			PublicKey:             []byte{},
		}},
		Outputs: []*externalapi.DomainTransactionOutput{{
			Value:         value,
			PublicKeyHash: publicKeyHash,
		}},
	}, nil
}

// NewNativeTransaction returns a new transaction spending the given inputs
// into the given outputs
func NewNativeTransaction(inputs []*externalapi.DomainTransactionInput,
	outputs []*externalapi.DomainTransactionOutput) *externalapi.DomainTransaction {

	return &externalapi.DomainTransaction{
		Inputs:  inputs,
		Outputs: outputs,
	}
}
