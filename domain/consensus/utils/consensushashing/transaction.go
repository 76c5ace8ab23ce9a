package consensushashing

import (
	"github.com/kaspanet/blockcapsule/domain/consensus/model"
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/serialization"
)

// TransactionID returns the given transaction's ID: the content hash of its
// canonical encoding
func TransactionID(tx *externalapi.DomainTransaction, hasher model.Hasher) (*externalapi.DomainHash, error) {
	txBytes, err := serialization.TransactionToBytes(tx)
	if err != nil {
		return nil, err
	}
	return hasher.Hash(txBytes), nil
}

// TransactionIDs returns the IDs of the given transactions, in order
func TransactionIDs(txs []*externalapi.DomainTransaction, hasher model.Hasher) ([]*externalapi.DomainHash, error) {
	ids := make([]*externalapi.DomainHash, len(txs))
	for i, tx := range txs {
		id, err := TransactionID(tx, hasher)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
