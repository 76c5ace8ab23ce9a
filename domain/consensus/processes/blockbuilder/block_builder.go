package blockbuilder

import (
	"github.com/kaspanet/blockcapsule/domain/consensus/model"
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/merkle"
	"github.com/kaspanet/blockcapsule/infrastructure/logger"
)

// GenesisDifficulty is the difficulty written into genesis blocks
var GenesisDifficulty = []byte{0x20, 0x01}

// GenesisCoinbaseData is the coinbase data of the default genesis block
var GenesisCoinbaseData = []byte("0x10")

type blockBuilder struct {
	hasher model.Hasher
}

// New instantiates a new BlockBuilder
func New(hasher model.Hasher) model.BlockBuilder {
	return &blockBuilder{hasher: hasher}
}

// BuildBlock builds a block over the given parent with the given
// transactions. The transactions are used as-is: the first one is expected
// to be a coinbase.
func (bb *blockBuilder) BuildBlock(transactions []*externalapi.DomainTransaction,
	parentHash *externalapi.DomainHash, difficulty []byte, number uint64,
	timestampInMilliseconds int64) (*externalapi.DomainBlock, error) {

	onEnd := logger.LogAndMeasureExecutionTime(log, "BuildBlock")
	defer onEnd()

	txMerkleRoot, err := merkle.CalculateTransactionMerkleRoot(transactions, bb.hasher)
	if err != nil {
		return nil, err
	}

	if parentHash == nil {
		parentHash = externalapi.ZeroHash
	}
	difficultyClone := make([]byte, len(difficulty))
	copy(difficultyClone, difficulty)

	block := &externalapi.DomainBlock{
		Header: &externalapi.DomainBlockHeader{
			Timestamp:    timestampInMilliseconds,
			TxMerkleRoot: *txMerkleRoot,
			ParentHash:   *parentHash,
			Number:       number,
			Difficulty:   difficultyClone,
		},
		Transactions: transactions,
	}
	return block.Clone(), nil
}

// BuildGenesisBlock builds the block at height zero: no parent, zero
// timestamp, the genesis difficulty and the given coinbase as its only
// transaction
func (bb *blockBuilder) BuildGenesisBlock(coinbase *externalapi.DomainTransaction) (*externalapi.DomainBlock, error) {
	return bb.BuildBlock([]*externalapi.DomainTransaction{coinbase}, externalapi.ZeroHash,
		GenesisDifficulty, 0, 0)
}
