package transactionhelper

import (
	"encoding/binary"

	"github.com/kaspanet/blockcapsule/domain/consensus/model"
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/serialization"
	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"
)

// SignatureHash returns the hash the input at inputIndex commits to: the
// transaction encoding with every signature and public key cleared,
// followed by the little-endian input index.
func SignatureHash(tx *externalapi.DomainTransaction, inputIndex int,
	hasher model.Hasher) (*externalapi.DomainHash, error) {

	if inputIndex < 0 || inputIndex >= len(tx.Inputs) {
		return nil, errors.Errorf("input index %d is out of range [0, %d)", inputIndex, len(tx.Inputs))
	}

	stripped := tx.Clone()
	for _, input := range stripped.Inputs {
		input.Signature = nil
		input.PublicKey = nil
	}
	txBytes, err := serialization.TransactionToBytes(stripped)
	if err != nil {
		return nil, err
	}

	var inputIndexBytes [4]byte
	binary.LittleEndian.PutUint32(inputIndexBytes[:], uint32(inputIndex))
	return hasher.Hash(append(txBytes, inputIndexBytes[:]...)), nil
}

// SignInput signs the input at inputIndex with the given key pair and sets
// the input's signature and public key
func SignInput(tx *externalapi.DomainTransaction, inputIndex int,
	keyPair *secp256k1.SchnorrKeyPair, hasher model.Hasher) error {

	sigHash, err := SignatureHash(tx, inputIndex, hasher)
	if err != nil {
		return err
	}
	secpHash := secp256k1.Hash(*sigHash.ByteArray())
	signature, err := keyPair.SchnorrSign(&secpHash)
	if err != nil {
		return errors.Errorf("cannot sign tx input: %s", err)
	}

	publicKey, err := keyPair.SchnorrPublicKey()
	if err != nil {
		return err
	}
	serializedPublicKey, err := publicKey.Serialize()
	if err != nil {
		return err
	}

	input := tx.Inputs[inputIndex]
	input.Signature = signature.Serialize()[:]
	input.PublicKey = serializedPublicKey[:]
	return nil
}

// VerifyInputSignature returns whether the signature of the input at
// inputIndex verifies against the input's public key. A missing or
// malformed signature or public key does not verify.
func VerifyInputSignature(tx *externalapi.DomainTransaction, inputIndex int,
	hasher model.Hasher) (bool, error) {

	sigHash, err := SignatureHash(tx, inputIndex, hasher)
	if err != nil {
		return false, err
	}

	input := tx.Inputs[inputIndex]
	publicKey, err := secp256k1.DeserializeSchnorrPubKey(input.PublicKey)
	if err != nil {
		return false, nil
	}
	signature, err := secp256k1.DeserializeSchnorrSignatureFromSlice(input.Signature)
	if err != nil {
		return false, nil
	}

	secpHash := secp256k1.Hash(*sigHash.ByteArray())
	return publicKey.SchnorrVerify(&secpHash, signature), nil
}
