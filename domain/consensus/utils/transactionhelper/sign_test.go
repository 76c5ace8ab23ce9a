package transactionhelper

import (
	"testing"

	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/hashes"
	"github.com/kaspanet/go-secp256k1"
)

func keyPairForTest(t *testing.T, seed string) *secp256k1.SchnorrKeyPair {
	privateKeyBytes := hashes.SHA256().Hash([]byte(seed)).ByteSlice()
	keyPair, err := secp256k1.DeserializeSchnorrPrivateKeyFromSlice(privateKeyBytes)
	if err != nil {
		t.Fatalf("DeserializeSchnorrPrivateKeyFromSlice: %s", err)
	}
	return keyPair
}

func spendForTest() *externalapi.DomainTransaction {
	return NewNativeTransaction(
		[]*externalapi.DomainTransactionInput{
			{PreviousTransactionID: []byte{0x01}, PreviousOutputIndex: 0},
			{PreviousTransactionID: []byte{0x02}, PreviousOutputIndex: 3},
		},
		[]*externalapi.DomainTransactionOutput{{Value: 10, PublicKeyHash: []byte{0x03}}})
}

func TestSignInput(t *testing.T) {
	hasher := hashes.SHA256()
	keyPair := keyPairForTest(t, "TestSignInput")
	tx := spendForTest()

	for i := range tx.Inputs {
		err := SignInput(tx, i, keyPair, hasher)
		if err != nil {
			t.Fatalf("SignInput: %s", err)
		}
	}
	for i, input := range tx.Inputs {
		if len(input.Signature) != secp256k1.SerializedSchnorrSignatureSize {
			t.Fatalf("SignInput: input #%d has a %d byte signature", i, len(input.Signature))
		}
		isValid, err := VerifyInputSignature(tx, i, hasher)
		if err != nil {
			t.Fatalf("VerifyInputSignature: %s", err)
		}
		if !isValid {
			t.Fatalf("VerifyInputSignature: input #%d does not verify", i)
		}
	}

	// Signatures are bound to their input index
	tx.Inputs[0].Signature, tx.Inputs[1].Signature = tx.Inputs[1].Signature, tx.Inputs[0].Signature
	isValid, err := VerifyInputSignature(tx, 0, hasher)
	if err != nil {
		t.Fatalf("VerifyInputSignature: %s", err)
	}
	if isValid {
		t.Fatalf("VerifyInputSignature: a signature of another input verified")
	}
}

func TestVerifyInputSignatureTampered(t *testing.T) {
	hasher := hashes.SHA256()
	tx := spendForTest()
	err := SignInput(tx, 0, keyPairForTest(t, "TestVerifyInputSignatureTampered"), hasher)
	if err != nil {
		t.Fatalf("SignInput: %s", err)
	}

	tx.Outputs[0].Value = 11
	isValid, err := VerifyInputSignature(tx, 0, hasher)
	if err != nil {
		t.Fatalf("VerifyInputSignature: %s", err)
	}
	if isValid {
		t.Fatalf("VerifyInputSignature: a signature verified after the outputs changed")
	}

	isValid, err = VerifyInputSignature(tx, 1, hasher)
	if err != nil {
		t.Fatalf("VerifyInputSignature: %s", err)
	}
	if isValid {
		t.Fatalf("VerifyInputSignature: an unsigned input verified")
	}

	_, err = VerifyInputSignature(tx, 2, hasher)
	if err == nil {
		t.Fatalf("VerifyInputSignature: expected an error for an out of range input")
	}
}
