package model

import "github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"

// BlockBuilder builds blocks whose header commits to their transactions
type BlockBuilder interface {
	BuildBlock(transactions []*externalapi.DomainTransaction, parentHash *externalapi.DomainHash,
		difficulty []byte, number uint64, timestampInMilliseconds int64) (*externalapi.DomainBlock, error)
	BuildGenesisBlock(coinbase *externalapi.DomainTransaction) (*externalapi.DomainBlock, error)
}
