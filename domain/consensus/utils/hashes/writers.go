package hashes

import (
	"crypto/sha256"
	"hash"

	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// HashWriter is used to incrementally hash data without concatenating all of the data to a single buffer
// it exposes an io.Writer api and a Finalize function to get the resulting hash.
// This can only be created via one of the algorithm specific constructors
type HashWriter struct {
	hash.Hash
}

// NewSHA256Writer returns a HashWriter backed by SHA-256
func NewSHA256Writer() HashWriter {
	return HashWriter{sha256.New()}
}

// NewBlake2bWriter returns a HashWriter backed by unkeyed BLAKE2b-256
func NewBlake2bWriter() HashWriter {
	blake, err := blake2b.New256(nil)
	if err != nil {
		panic(errors.Wrapf(err, "this should never happen. %s is not a valid key", "nil"))
	}
	return HashWriter{blake}
}

// NewSHA3Writer returns a HashWriter backed by SHA3-256
func NewSHA3Writer() HashWriter {
	return HashWriter{sha3.New256()}
}

// InfallibleWrite is just like write but doesn't return anything
func (h HashWriter) InfallibleWrite(p []byte) {
	// This write can never return an error, this is part of the hash.Hash interface contract.
	_, err := h.Write(p)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. hash.Hash interface promises to not return errors."))
	}
}

// Finalize returns the resulting hash
func (h HashWriter) Finalize() *externalapi.DomainHash {
	var sum [externalapi.DomainHashSize]byte
	// This should prevent `Sum` for allocating an output buffer, by using the DomainHash buffer. we still copy because we don't want to rely on that.
	copy(sum[:], h.Sum(sum[:0]))
	return externalapi.NewDomainHashFromByteArray(&sum)
}
