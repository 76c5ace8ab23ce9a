package externalapi

import "bytes"

// DomainBlock represents a block: a header and the transactions it carries
type DomainBlock struct {
	Header       *DomainBlockHeader
	Transactions []*DomainTransaction
}

// Clone returns a clone of DomainBlock
func (block *DomainBlock) Clone() *DomainBlock {
	transactionClone := make([]*DomainTransaction, len(block.Transactions))
	for i, tx := range block.Transactions {
		transactionClone[i] = tx.Clone()
	}

	return &DomainBlock{
		Header:       block.Header.Clone(),
		Transactions: transactionClone,
	}
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = DomainBlock{&DomainBlockHeader{}, []*DomainTransaction{}}

// Equal returns whether block equals to other
func (block *DomainBlock) Equal(other *DomainBlock) bool {
	if block == nil || other == nil {
		return block == other
	}

	if len(block.Transactions) != len(other.Transactions) {
		return false
	}

	if !block.Header.Equal(other.Header) {
		return false
	}

	for i, tx := range block.Transactions {
		if !tx.Equal(other.Transactions[i]) {
			return false
		}
	}

	return true
}

// IsGenesis returns whether the block sits at height zero
func (block *DomainBlock) IsGenesis() bool {
	return block.Header != nil && block.Header.Number == 0
}

// DomainBlockHeader represents the header part of a block
type DomainBlockHeader struct {
	Timestamp    int64
	TxMerkleRoot DomainHash
	ParentHash   DomainHash
	Number       uint64
	Nonce        []byte
	Difficulty   []byte
}

// Clone returns a clone of DomainBlockHeader. A nil header clones to nil.
func (header *DomainBlockHeader) Clone() *DomainBlockHeader {
	if header == nil {
		return nil
	}
	return &DomainBlockHeader{
		Timestamp:    header.Timestamp,
		TxMerkleRoot: header.TxMerkleRoot,
		ParentHash:   header.ParentHash,
		Number:       header.Number,
		Nonce:        cloneBytes(header.Nonce),
		Difficulty:   cloneBytes(header.Difficulty),
	}
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &DomainBlockHeader{0, DomainHash{}, DomainHash{}, 0, []byte{}, []byte{}}

// Equal returns whether header equals to other
func (header *DomainBlockHeader) Equal(other *DomainBlockHeader) bool {
	if header == nil || other == nil {
		return header == other
	}

	if header.Timestamp != other.Timestamp {
		return false
	}

	if !header.TxMerkleRoot.Equal(&other.TxMerkleRoot) {
		return false
	}

	if !header.ParentHash.Equal(&other.ParentHash) {
		return false
	}

	if header.Number != other.Number {
		return false
	}

	if !bytes.Equal(header.Nonce, other.Nonce) {
		return false
	}

	if !bytes.Equal(header.Difficulty, other.Difficulty) {
		return false
	}

	return true
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	clone := make([]byte, len(b))
	copy(clone, b)
	return clone
}
