package hashes

import (
	"strings"

	"github.com/kaspanet/blockcapsule/domain/consensus/model"
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// Names of the supported content hash functions
const (
	SHA256Name  = "sha256"
	Blake2bName = "blake2b"
	SHA3Name    = "sha3"
)

// DefaultHasherName is the content hash used when nothing else is configured
const DefaultHasherName = SHA256Name

type writerHasher struct {
	newWriter func() HashWriter
}

func (h *writerHasher) Hash(data []byte) *externalapi.DomainHash {
	writer := h.newWriter()
	writer.InfallibleWrite(data)
	return writer.Finalize()
}

var hashers = map[string]model.Hasher{
	SHA256Name:  &writerHasher{NewSHA256Writer},
	Blake2bName: &writerHasher{NewBlake2bWriter},
	SHA3Name:    &writerHasher{NewSHA3Writer},
}

// SHA256 returns the SHA-256 content hasher
func SHA256() model.Hasher {
	return hashers[SHA256Name]
}

// Blake2b returns the BLAKE2b-256 content hasher
func Blake2b() model.Hasher {
	return hashers[Blake2bName]
}

// SHA3 returns the SHA3-256 content hasher
func SHA3() model.Hasher {
	return hashers[SHA3Name]
}

// HasherByName returns the content hasher registered under the given name
func HasherByName(name string) (model.Hasher, error) {
	hasher, ok := hashers[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unknown hash function %q. Supported: %s",
			name, strings.Join(SupportedHasherNames(), ", "))
	}
	return hasher, nil
}

// SupportedHasherNames returns the names accepted by HasherByName
func SupportedHasherNames() []string {
	return []string{SHA256Name, Blake2bName, SHA3Name}
}
