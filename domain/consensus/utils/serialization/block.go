package serialization

import (
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	blockTransactionsField protowire.Number = 1
	blockHeaderField       protowire.Number = 2
)

const (
	headerTimestampField    protowire.Number = 1
	headerTxMerkleRootField protowire.Number = 2
	headerParentHashField   protowire.Number = 3
	headerNonceField        protowire.Number = 4
	headerDifficultyField   protowire.Number = 5
	headerNumberField       protowire.Number = 6
)

// BlockToBytes returns the canonical encoding of the given block
func BlockToBytes(block *externalapi.DomainBlock) ([]byte, error) {
	if block == nil {
		return nil, errors.Wrap(errMissingField, "block")
	}
	if block.Header == nil {
		return nil, errors.Wrap(errMissingField, "block header")
	}

	var b []byte
	for i, tx := range block.Transactions {
		txBytes, err := TransactionToBytes(tx)
		if err != nil {
			return nil, errors.Wrapf(err, "transaction #%d", i)
		}
		b = protowire.AppendTag(b, blockTransactionsField, protowire.BytesType)
		b = protowire.AppendBytes(b, txBytes)
	}

	b = protowire.AppendTag(b, blockHeaderField, protowire.BytesType)
	b = protowire.AppendBytes(b, HeaderToBytes(block.Header))
	return b, nil
}

// BytesToBlock decodes a block from its canonical encoding
func BytesToBlock(blockBytes []byte) (*externalapi.DomainBlock, error) {
	block := &externalapi.DomainBlock{
		Transactions: []*externalapi.DomainTransaction{},
	}

	err := consumeMessage(blockBytes, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case blockTransactionsField:
			txBytes, n, err := consumeBytes(num, typ, b)
			if err != nil {
				return 0, err
			}
			tx, err := BytesToTransaction(txBytes)
			if err != nil {
				return 0, errors.Wrapf(err, "transaction #%d", len(block.Transactions))
			}
			block.Transactions = append(block.Transactions, tx)
			return n, nil
		case blockHeaderField:
			headerBytes, n, err := consumeBytes(num, typ, b)
			if err != nil {
				return 0, err
			}
			header, err := BytesToHeader(headerBytes)
			if err != nil {
				return 0, err
			}
			block.Header = header
			return n, nil
		}
		return 0, nil
	})
	if err != nil {
		return nil, err
	}

	if block.Header == nil {
		return nil, errors.Wrap(errMalformed, "block header is missing")
	}
	return block, nil
}

// HeaderToBytes returns the canonical encoding of the given header
func HeaderToBytes(header *externalapi.DomainBlockHeader) []byte {
	var b []byte
	b = appendVarintField(b, headerTimestampField, uint64(header.Timestamp))
	b = appendHashField(b, headerTxMerkleRootField, &header.TxMerkleRoot)
	b = appendHashField(b, headerParentHashField, &header.ParentHash)
	b = appendBytesField(b, headerNonceField, header.Nonce)
	b = appendBytesField(b, headerDifficultyField, header.Difficulty)
	b = appendVarintField(b, headerNumberField, header.Number)
	return b
}

// BytesToHeader decodes a header from its canonical encoding
func BytesToHeader(headerBytes []byte) (*externalapi.DomainBlockHeader, error) {
	header := &externalapi.DomainBlockHeader{}

	err := consumeMessage(headerBytes, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case headerTimestampField:
			value, n, err := consumeVarint(num, typ, b)
			header.Timestamp = int64(value)
			return n, err
		case headerTxMerkleRootField:
			return consumeHash(num, typ, b, &header.TxMerkleRoot)
		case headerParentHashField:
			return consumeHash(num, typ, b, &header.ParentHash)
		case headerNonceField:
			value, n, err := consumeBytes(num, typ, b)
			header.Nonce = value
			return n, err
		case headerDifficultyField:
			value, n, err := consumeBytes(num, typ, b)
			header.Difficulty = value
			return n, err
		case headerNumberField:
			value, n, err := consumeVarint(num, typ, b)
			header.Number = value
			return n, err
		}
		return 0, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "block header")
	}
	return header, nil
}
