package model

import "github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"

// Multiset is an order-independent hash over a set of byte strings.
// Elements can be added and removed in any order.
type Multiset interface {
	Add(data []byte)
	Remove(data []byte)
	Hash() *externalapi.DomainHash
	Serialize() []byte
	Clone() Multiset
}
