package merkle

import (
	"testing"

	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/hashes"
)

func transactionForTest(value int64) *externalapi.DomainTransaction {
	return &externalapi.DomainTransaction{
		Inputs:  []*externalapi.DomainTransactionInput{{PreviousOutputIndex: externalapi.CoinbaseOutputIndex}},
		Outputs: []*externalapi.DomainTransactionOutput{{Value: value}},
	}
}

func TestCalculateTransactionMerkleRoot(t *testing.T) {
	hasher := hashes.SHA256()

	root, err := CalculateTransactionMerkleRoot(nil, hasher)
	if err != nil {
		t.Fatalf("CalculateTransactionMerkleRoot: %s", err)
	}
	if !root.Equal(externalapi.ZeroHash) {
		t.Fatalf("CalculateTransactionMerkleRoot: expected the zero hash for no transactions, got %s", root)
	}

	tx1, tx2, tx3 := transactionForTest(1), transactionForTest(2), transactionForTest(3)
	id1, _ := consensushashing.TransactionID(tx1, hasher)
	id2, _ := consensushashing.TransactionID(tx2, hasher)
	id3, _ := consensushashing.TransactionID(tx3, hasher)

	root, err = CalculateTransactionMerkleRoot([]*externalapi.DomainTransaction{tx1}, hasher)
	if err != nil {
		t.Fatalf("CalculateTransactionMerkleRoot: %s", err)
	}
	if !root.Equal(id1) {
		t.Fatalf("CalculateTransactionMerkleRoot: a single transaction should be its own root")
	}

	root, err = CalculateTransactionMerkleRoot([]*externalapi.DomainTransaction{tx1, tx2, tx3}, hasher)
	if err != nil {
		t.Fatalf("CalculateTransactionMerkleRoot: %s", err)
	}
	left := hashMerkleBranches(id1, id2, hasher)
	right := hashMerkleBranches(id3, id3, hasher)
	expected := hashMerkleBranches(left, right, hasher)
	if !root.Equal(expected) {
		t.Fatalf("CalculateTransactionMerkleRoot: expected %s, got %s", expected, root)
	}

	swapped, err := CalculateTransactionMerkleRoot([]*externalapi.DomainTransaction{tx2, tx1, tx3}, hasher)
	if err != nil {
		t.Fatalf("CalculateTransactionMerkleRoot: %s", err)
	}
	if swapped.Equal(root) {
		t.Fatalf("CalculateTransactionMerkleRoot: transaction order should affect the root")
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := map[int]int{1: 1, 2: 2, 3: 4, 5: 8, 8: 8, 9: 16}
	for n, expected := range tests {
		if result := nextPowerOfTwo(n); result != expected {
			t.Errorf("nextPowerOfTwo(%d): expected %d, got %d", n, expected, result)
		}
	}
}
