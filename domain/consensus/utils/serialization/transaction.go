package serialization

import (
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field 1 of a transaction used to carry its id. The id is now derived
// from the encoding, so the number stays reserved.
const (
	transactionInputsField  protowire.Number = 2
	transactionOutputsField protowire.Number = 3
)

const (
	inputPreviousTransactionIDField protowire.Number = 1
	inputPreviousOutputIndexField   protowire.Number = 2
	inputSignatureField             protowire.Number = 3
	inputPublicKeyField             protowire.Number = 4
)

const (
	outputValueField         protowire.Number = 1
	outputPublicKeyHashField protowire.Number = 2
)

// TransactionToBytes returns the canonical encoding of the given transaction
func TransactionToBytes(tx *externalapi.DomainTransaction) ([]byte, error) {
	if tx == nil {
		return nil, errors.Wrap(errMissingField, "transaction")
	}

	var b []byte
	for i, input := range tx.Inputs {
		if input == nil {
			return nil, errors.Wrapf(errMissingField, "input #%d", i)
		}
		b = protowire.AppendTag(b, transactionInputsField, protowire.BytesType)
		b = protowire.AppendBytes(b, inputToBytes(input))
	}
	for i, output := range tx.Outputs {
		if output == nil {
			return nil, errors.Wrapf(errMissingField, "output #%d", i)
		}
		b = protowire.AppendTag(b, transactionOutputsField, protowire.BytesType)
		b = protowire.AppendBytes(b, outputToBytes(output))
	}
	return b, nil
}

// BytesToTransaction decodes a transaction from its canonical encoding
func BytesToTransaction(txBytes []byte) (*externalapi.DomainTransaction, error) {
	tx := &externalapi.DomainTransaction{
		Inputs:  []*externalapi.DomainTransactionInput{},
		Outputs: []*externalapi.DomainTransactionOutput{},
	}

	err := consumeMessage(txBytes, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case transactionInputsField:
			inputBytes, n, err := consumeBytes(num, typ, b)
			if err != nil {
				return 0, err
			}
			input, err := bytesToInput(inputBytes)
			if err != nil {
				return 0, errors.Wrapf(err, "input #%d", len(tx.Inputs))
			}
			tx.Inputs = append(tx.Inputs, input)
			return n, nil
		case transactionOutputsField:
			outputBytes, n, err := consumeBytes(num, typ, b)
			if err != nil {
				return 0, err
			}
			output, err := bytesToOutput(outputBytes)
			if err != nil {
				return 0, errors.Wrapf(err, "output #%d", len(tx.Outputs))
			}
			tx.Outputs = append(tx.Outputs, output)
			return n, nil
		}
		return 0, nil
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func inputToBytes(input *externalapi.DomainTransactionInput) []byte {
	var b []byte
	b = appendBytesField(b, inputPreviousTransactionIDField, input.PreviousTransactionID)
	b = appendVarintField(b, inputPreviousOutputIndexField, uint64(input.PreviousOutputIndex))
	b = appendBytesField(b, inputSignatureField, input.Signature)
	b = appendBytesField(b, inputPublicKeyField, input.PublicKey)
	return b
}

func bytesToInput(inputBytes []byte) (*externalapi.DomainTransactionInput, error) {
	input := &externalapi.DomainTransactionInput{}
	err := consumeMessage(inputBytes, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case inputPreviousTransactionIDField:
			value, n, err := consumeBytes(num, typ, b)
			input.PreviousTransactionID = value
			return n, err
		case inputPreviousOutputIndexField:
			value, n, err := consumeVarint(num, typ, b)
			input.PreviousOutputIndex = int64(value)
			return n, err
		case inputSignatureField:
			value, n, err := consumeBytes(num, typ, b)
			input.Signature = value
			return n, err
		case inputPublicKeyField:
			value, n, err := consumeBytes(num, typ, b)
			input.PublicKey = value
			return n, err
		}
		return 0, nil
	})
	if err != nil {
		return nil, err
	}
	return input, nil
}

func outputToBytes(output *externalapi.DomainTransactionOutput) []byte {
	var b []byte
	b = appendVarintField(b, outputValueField, uint64(output.Value))
	b = appendBytesField(b, outputPublicKeyHashField, output.PublicKeyHash)
	return b
}

func bytesToOutput(outputBytes []byte) (*externalapi.DomainTransactionOutput, error) {
	output := &externalapi.DomainTransactionOutput{}
	err := consumeMessage(outputBytes, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case outputValueField:
			value, n, err := consumeVarint(num, typ, b)
			output.Value = int64(value)
			return n, err
		case outputPublicKeyHashField:
			value, n, err := consumeBytes(num, typ, b)
			output.PublicKeyHash = value
			return n, err
		}
		return 0, nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
