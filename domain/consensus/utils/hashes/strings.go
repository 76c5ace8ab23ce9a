package hashes

import (
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
)

// FromString creates a DomainHash from a hash string. The string should be
// the hexadecimal string of a hash.
func FromString(hash string) (*externalapi.DomainHash, error) {
	return externalapi.NewDomainHashFromString(hash)
}

// ToStrings converts a slice of hashes into a slice of the corresponding strings
func ToStrings(hashes []*externalapi.DomainHash) []string {
	strings := make([]string, len(hashes))
	for i, hash := range hashes {
		strings[i] = hash.String()
	}
	return strings
}
