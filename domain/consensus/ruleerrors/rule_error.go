package ruleerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError.
var (
	// ErrMissingHeader indicates the block has no header.
	ErrMissingHeader = newRuleError("ErrMissingHeader")

	// ErrBadDifficulty indicates the header difficulty is empty or zero.
	ErrBadDifficulty = newRuleError("ErrBadDifficulty")

	// ErrInvalidPoW indicates that the block proof-of-work is invalid.
	ErrInvalidPoW = newRuleError("ErrInvalidPoW")

	// ErrBadMerkleRoot indicates the calculated merkle root does not match
	// the expected value.
	ErrBadMerkleRoot = newRuleError("ErrBadMerkleRoot")

	// ErrNoTransactions indicates the block does not have a least one
	// transaction. A valid block must have at least the coinbase
	// transaction.
	ErrNoTransactions = newRuleError("ErrNoTransactions")

	// ErrNoTxInputs indicates a transaction does not have any inputs. A
	// valid transaction must have at least one input.
	ErrNoTxInputs = newRuleError("ErrNoTxInputs")

	// ErrNoTxOutputs indicates a transaction does not have any outputs.
	ErrNoTxOutputs = newRuleError("ErrNoTxOutputs")

	// ErrBadTxOutValue indicates an output value for a transaction is
	// invalid in some way such as being out of range.
	ErrBadTxOutValue = newRuleError("ErrBadTxOutValue")

	// ErrFirstTxNotCoinbase indicates the first transaction in a block
	// is not a coinbase transaction.
	ErrFirstTxNotCoinbase = newRuleError("ErrFirstTxNotCoinbase")

	// ErrMultipleCoinbases indicates a block contains more than one
	// coinbase transaction.
	ErrMultipleCoinbases = newRuleError("ErrMultipleCoinbases")

	// ErrBadSignature indicates an input signature does not verify
	// against the input's public key.
	ErrBadSignature = newRuleError("ErrBadSignature")

	// ErrMalformedTransaction indicates a transaction could not be encoded,
	// typically because it holds a nil input or output.
	ErrMalformedTransaction = newRuleError("ErrMalformedTransaction")
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of a block or transaction failed due to one of the many validation
// rules. The caller can use type assertions to determine if a failure was
// specifically due to a rule violation.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// IsRuleError returns whether err is, or wraps, a RuleError
func IsRuleError(err error) bool {
	return errors.As(err, &RuleError{})
}

// ErrInvalidTransaction indicates that the transaction at a given index of
// a block violates a rule
type ErrInvalidTransaction struct {
	Index int
	Err   error
}

func (e ErrInvalidTransaction) Error() string {
	return fmt.Sprintf("transaction #%d: %s", e.Index, e.Err)
}

// Unwrap satisfies the errors.Unwrap interface
func (e ErrInvalidTransaction) Unwrap() error {
	return e.Err
}

// NewErrInvalidTransaction creates a new ErrInvalidTransaction error wrapped in a RuleError
func NewErrInvalidTransaction(index int, err error) error {
	return errors.WithStack(RuleError{
		message: "ErrInvalidTransaction",
		inner:   ErrInvalidTransaction{Index: index, Err: err},
	})
}
