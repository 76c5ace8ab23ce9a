package externalapi

import "bytes"

// CoinbaseOutputIndex is the previous-output index carried by the single
// input of a coinbase transaction.
const CoinbaseOutputIndex = -1

// DomainTransaction represents a transaction
type DomainTransaction struct {
	Inputs  []*DomainTransactionInput
	Outputs []*DomainTransactionOutput
}

// DomainTransactionInput represents a transaction input
type DomainTransactionInput struct {
	PreviousTransactionID []byte
	PreviousOutputIndex   int64
	Signature             []byte
	PublicKey             []byte
}

// DomainTransactionOutput represents a transaction output
type DomainTransactionOutput struct {
	Value         int64
	PublicKeyHash []byte
}

// IsCoinbase returns whether the transaction mints new value instead of
// spending a previous output.
func (tx *DomainTransaction) IsCoinbase() bool {
	if tx == nil || len(tx.Inputs) != 1 {
		return false
	}
	input := tx.Inputs[0]
	return input != nil && len(input.PreviousTransactionID) == 0 &&
		input.PreviousOutputIndex == CoinbaseOutputIndex
}

// Clone returns a clone of DomainTransaction. A nil transaction clones to nil.
func (tx *DomainTransaction) Clone() *DomainTransaction {
	if tx == nil {
		return nil
	}

	inputsClone := make([]*DomainTransactionInput, len(tx.Inputs))
	for i, input := range tx.Inputs {
		inputsClone[i] = input.Clone()
	}

	outputsClone := make([]*DomainTransactionOutput, len(tx.Outputs))
	for i, output := range tx.Outputs {
		outputsClone[i] = output.Clone()
	}

	return &DomainTransaction{
		Inputs:  inputsClone,
		Outputs: outputsClone,
	}
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = DomainTransaction{[]*DomainTransactionInput{}, []*DomainTransactionOutput{}}

// Equal returns whether tx equals to other
func (tx *DomainTransaction) Equal(other *DomainTransaction) bool {
	if tx == nil || other == nil {
		return tx == other
	}

	if len(tx.Inputs) != len(other.Inputs) {
		return false
	}
	for i, input := range tx.Inputs {
		if !input.Equal(other.Inputs[i]) {
			return false
		}
	}

	if len(tx.Outputs) != len(other.Outputs) {
		return false
	}
	for i, output := range tx.Outputs {
		if !output.Equal(other.Outputs[i]) {
			return false
		}
	}

	return true
}

// Clone returns a clone of DomainTransactionInput. A nil input clones to nil.
func (input *DomainTransactionInput) Clone() *DomainTransactionInput {
	if input == nil {
		return nil
	}
	return &DomainTransactionInput{
		PreviousTransactionID: cloneBytes(input.PreviousTransactionID),
		PreviousOutputIndex:   input.PreviousOutputIndex,
		Signature:             cloneBytes(input.Signature),
		PublicKey:             cloneBytes(input.PublicKey),
	}
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &DomainTransactionInput{[]byte{}, 0, []byte{}, []byte{}}

// Equal returns whether input equals to other
func (input *DomainTransactionInput) Equal(other *DomainTransactionInput) bool {
	if input == nil || other == nil {
		return input == other
	}

	return bytes.Equal(input.PreviousTransactionID, other.PreviousTransactionID) &&
		input.PreviousOutputIndex == other.PreviousOutputIndex &&
		bytes.Equal(input.Signature, other.Signature) &&
		bytes.Equal(input.PublicKey, other.PublicKey)
}

// Clone returns a clone of DomainTransactionOutput. A nil output clones to nil.
func (output *DomainTransactionOutput) Clone() *DomainTransactionOutput {
	if output == nil {
		return nil
	}
	return &DomainTransactionOutput{
		Value:         output.Value,
		PublicKeyHash: cloneBytes(output.PublicKeyHash),
	}
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &DomainTransactionOutput{0, []byte{}}

// Equal returns whether output equals to other
func (output *DomainTransactionOutput) Equal(other *DomainTransactionOutput) bool {
	if output == nil || other == nil {
		return output == other
	}

	return output.Value == other.Value && bytes.Equal(output.PublicKeyHash, other.PublicKeyHash)
}
