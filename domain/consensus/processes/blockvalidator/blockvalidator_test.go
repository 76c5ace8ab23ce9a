package blockvalidator

import (
	"context"
	"testing"

	"github.com/kaspanet/blockcapsule/domain/consensus/model"
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockcapsule/domain/consensus/processes/blockbuilder"
	"github.com/kaspanet/blockcapsule/domain/consensus/ruleerrors"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/hashes"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/pow"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/transactionhelper"
	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"
)

const publicKeyHashForTest = "0304f784e4e7bae517bcab94c3e0c9214fb4ac7ff9d7d5a937d1f40031f87b85"

func buildBlockForTest(t *testing.T, hasher model.Hasher, number uint64,
	extraTransactions ...*externalapi.DomainTransaction) *externalapi.DomainBlock {

	coinbase, err := transactionhelper.NewCoinbaseTransaction(publicKeyHashForTest, []byte("data"), 50)
	if err != nil {
		t.Fatalf("NewCoinbaseTransaction: %s", err)
	}
	transactions := append([]*externalapi.DomainTransaction{coinbase}, extraTransactions...)
	block, err := blockbuilder.New(hasher).BuildBlock(transactions, externalapi.ZeroHash,
		[]byte{0x01, 0x00}, number, 0)
	if err != nil {
		t.Fatalf("BuildBlock: %s", err)
	}
	return block
}

func spendingTransactionForTest(value int64) *externalapi.DomainTransaction {
	return transactionhelper.NewNativeTransaction(
		[]*externalapi.DomainTransactionInput{{PreviousTransactionID: []byte{0x01}, PreviousOutputIndex: 0}},
		[]*externalapi.DomainTransactionOutput{{Value: value, PublicKeyHash: []byte{0x02}}})
}

func TestValidateBlock(t *testing.T) {
	hasher := hashes.SHA256()
	validator := New(hasher, nil)

	tests := []struct {
		name        string
		block       func() *externalapi.DomainBlock
		expectedErr error
	}{
		{
			name:        "valid genesis",
			block:       func() *externalapi.DomainBlock { return buildBlockForTest(t, hasher, 0) },
			expectedErr: nil,
		},
		{
			name: "valid block with a spending transaction",
			block: func() *externalapi.DomainBlock {
				return buildBlockForTest(t, hasher, 5, spendingTransactionForTest(3))
			},
			expectedErr: nil,
		},
		{
			name:        "missing header",
			block:       func() *externalapi.DomainBlock { return &externalapi.DomainBlock{} },
			expectedErr: ruleerrors.ErrMissingHeader,
		},
		{
			name: "zero difficulty",
			block: func() *externalapi.DomainBlock {
				block := buildBlockForTest(t, hasher, 1)
				block.Header.Difficulty = []byte{0x00}
				return block
			},
			expectedErr: ruleerrors.ErrBadDifficulty,
		},
		{
			name: "no transactions",
			block: func() *externalapi.DomainBlock {
				block := buildBlockForTest(t, hasher, 1)
				block.Transactions = nil
				return block
			},
			expectedErr: ruleerrors.ErrNoTransactions,
		},
		{
			name: "first transaction is not a coinbase",
			block: func() *externalapi.DomainBlock {
				block := buildBlockForTest(t, hasher, 1)
				block.Transactions[0] = spendingTransactionForTest(1)
				return block
			},
			expectedErr: ruleerrors.ErrFirstTxNotCoinbase,
		},
		{
			name: "two coinbases",
			block: func() *externalapi.DomainBlock {
				block := buildBlockForTest(t, hasher, 1)
				block.Transactions = append(block.Transactions, block.Transactions[0].Clone())
				return block
			},
			expectedErr: ruleerrors.ErrMultipleCoinbases,
		},
		{
			name: "negative output",
			block: func() *externalapi.DomainBlock {
				return buildBlockForTest(t, hasher, 1, spendingTransactionForTest(-1))
			},
			expectedErr: ruleerrors.ErrBadTxOutValue,
		},
		{
			name: "transaction without inputs",
			block: func() *externalapi.DomainBlock {
				tx := spendingTransactionForTest(1)
				tx.Inputs = nil
				return buildBlockForTest(t, hasher, 1, tx)
			},
			expectedErr: ruleerrors.ErrNoTxInputs,
		},
		{
			name: "transaction without outputs",
			block: func() *externalapi.DomainBlock {
				tx := spendingTransactionForTest(1)
				tx.Outputs = nil
				return buildBlockForTest(t, hasher, 1, tx)
			},
			expectedErr: ruleerrors.ErrNoTxOutputs,
		},
		{
			name: "bad merkle root",
			block: func() *externalapi.DomainBlock {
				block := buildBlockForTest(t, hasher, 1)
				block.Transactions[0].Outputs[0].Value++
				return block
			},
			expectedErr: ruleerrors.ErrBadMerkleRoot,
		},
	}

	for _, test := range tests {
		err := validator.ValidateBlock(test.block())
		if test.expectedErr == nil {
			if err != nil {
				t.Errorf("%s: unexpected error: %s", test.name, err)
			}
			continue
		}
		if !errors.Is(err, test.expectedErr) {
			t.Errorf("%s: expected %s, got: %v", test.name, test.expectedErr, err)
		}
		if !ruleerrors.IsRuleError(err) {
			t.Errorf("%s: expected a rule error, got: %v", test.name, err)
		}
	}
}

func TestValidateBlockProofOfWork(t *testing.T) {
	hasher := hashes.SHA256()
	validator := New(hasher, &Params{CheckProofOfWork: true})

	block := buildBlockForTest(t, hasher, 1)
	block.Header.Difficulty = []byte{0x10, 0x00}
	err := pow.SolveBlock(context.Background(), block, hasher)
	if err != nil {
		t.Fatalf("SolveBlock: %s", err)
	}
	err = validator.ValidateBlock(block)
	if err != nil {
		t.Fatalf("ValidateBlock: solved block should be valid: %s", err)
	}

	// Search for a nonce that misses the boundary. With a difficulty of
	// 0x1000 almost every nonce does.
	for i := byte(0); ; i++ {
		block.Header.Nonce = []byte{0xff, i}
		ok, err := pow.CheckProofOfWork(block.Header, hasher)
		if err != nil {
			t.Fatalf("CheckProofOfWork: %s", err)
		}
		if !ok {
			break
		}
	}
	err = validator.ValidateBlock(block)
	if !errors.Is(err, ruleerrors.ErrInvalidPoW) {
		t.Fatalf("ValidateBlock: expected ErrInvalidPoW, got: %v", err)
	}

	genesis := buildBlockForTest(t, hasher, 0)
	genesis.Header.Difficulty = []byte{0x7f, 0xff, 0xff, 0xff}
	err = validator.ValidateBlock(genesis)
	if err != nil {
		t.Fatalf("ValidateBlock: genesis should be exempt from proof of work: %s", err)
	}
}

func TestValidateBlockSignatures(t *testing.T) {
	hasher := hashes.SHA256()
	validator := New(hasher, &Params{CheckSignatures: true})

	privateKeyBytes := hasher.Hash([]byte("TestValidateBlockSignatures")).ByteSlice()
	keyPair, err := secp256k1.DeserializeSchnorrPrivateKeyFromSlice(privateKeyBytes)
	if err != nil {
		t.Fatalf("DeserializeSchnorrPrivateKeyFromSlice: %s", err)
	}

	signed := spendingTransactionForTest(3)
	err = transactionhelper.SignInput(signed, 0, keyPair, hasher)
	if err != nil {
		t.Fatalf("SignInput: %s", err)
	}
	err = validator.ValidateBlock(buildBlockForTest(t, hasher, 1, signed))
	if err != nil {
		t.Fatalf("ValidateBlock: a block with signed inputs should be valid: %s", err)
	}

	err = validator.ValidateBlock(buildBlockForTest(t, hasher, 1, spendingTransactionForTest(3)))
	if !errors.Is(err, ruleerrors.ErrBadSignature) {
		t.Fatalf("ValidateBlock: expected ErrBadSignature, got: %v", err)
	}
}
