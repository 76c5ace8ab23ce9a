package merkle

import (
	"math"

	"github.com/kaspanet/blockcapsule/domain/consensus/model"
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/consensushashing"
)

// nextPowerOfTwo returns the next highest power of two from a given number if
// it is not already a power of two. This is a helper function used during the
// calculation of a merkle tree.
func nextPowerOfTwo(n int) int {
	// Return the number if it's already a power of 2.
	if n&(n-1) == 0 {
		return n
	}

	// Figure out and return the next power of two.
	exponent := uint(math.Log2(float64(n))) + 1
	return 1 << exponent // 2^exponent
}

// hashMerkleBranches takes two hashes, treated as the left and right tree
// nodes, and returns the hash of their concatenation. This is a helper
// function used to aid in the generation of a merkle tree.
func hashMerkleBranches(left, right *externalapi.DomainHash, hasher model.Hasher) *externalapi.DomainHash {
	concatenated := make([]byte, 0, externalapi.DomainHashSize*2)
	concatenated = append(concatenated, left.ByteSlice()...)
	concatenated = append(concatenated, right.ByteSlice()...)
	return hasher.Hash(concatenated)
}

// CalculateTransactionMerkleRoot calculates the merkle root of a tree whose
// leaves are the IDs of the given transactions. An empty transaction list
// has the zero hash as its root.
func CalculateTransactionMerkleRoot(transactions []*externalapi.DomainTransaction,
	hasher model.Hasher) (*externalapi.DomainHash, error) {

	if len(transactions) == 0 {
		return externalapi.ZeroHash, nil
	}

	ids, err := consensushashing.TransactionIDs(transactions, hasher)
	if err != nil {
		return nil, err
	}
	return merkleRoot(ids, hasher), nil
}

// merkleRoot builds the tree as a linear array (see BuildMerkleTreeStore in
// btcd) and returns its last element. A node without a right child is
// hashed with a copy of its left child.
func merkleRoot(leaves []*externalapi.DomainHash, hasher model.Hasher) *externalapi.DomainHash {
	nextPoT := nextPowerOfTwo(len(leaves))
	arraySize := nextPoT*2 - 1
	merkles := make([]*externalapi.DomainHash, arraySize)

	copy(merkles, leaves)

	offset := nextPoT
	for i := 0; i < arraySize-1; i += 2 {
		switch {
		// When there is no left child node, the parent is nil too.
		case merkles[i] == nil:
			merkles[offset] = nil

		// When there is no right child, the parent is generated by
		// hashing the concatenation of the left child with itself.
		case merkles[i+1] == nil:
			merkles[offset] = hashMerkleBranches(merkles[i], merkles[i], hasher)

		// The normal case sets the parent node to the hash
		// of the concatentation of the left and right children.
		default:
			merkles[offset] = hashMerkleBranches(merkles[i], merkles[i+1], hasher)
		}
		offset++
	}

	return merkles[len(merkles)-1]
}
