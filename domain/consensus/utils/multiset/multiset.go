package multiset

import (
	"github.com/kaspanet/blockcapsule/domain/consensus/model"
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/go-muhash"
	"github.com/pkg/errors"
)

// multiset is a MuHash multiset hash
type multiset struct {
	ms *muhash.MuHash
}

// New returns an empty model.Multiset
func New() model.Multiset {
	return &multiset{ms: muhash.NewMuHash()}
}

// FromBytes deserializes a multiset previously returned by Serialize
func FromBytes(multisetBytes []byte) (model.Multiset, error) {
	serialized := &muhash.SerializedMuHash{}
	if len(multisetBytes) != len(serialized) {
		return nil, errors.Errorf("multiset is %d bytes long, while it should be %d",
			len(multisetBytes), len(serialized))
	}
	copy(serialized[:], multisetBytes)

	ms, err := muhash.DeserializeMuHash(serialized)
	if err != nil {
		return nil, errors.Wrap(err, "malformed multiset")
	}
	return &multiset{ms: ms}, nil
}

func (m *multiset) Add(data []byte) {
	m.ms.Add(data)
}

func (m *multiset) Remove(data []byte) {
	m.ms.Remove(data)
}

func (m *multiset) Hash() *externalapi.DomainHash {
	finalized := m.ms.Finalize()
	return externalapi.NewDomainHashFromByteArray(finalized.AsArray())
}

func (m *multiset) Serialize() []byte {
	return m.ms.Serialize()[:]
}

func (m *multiset) Clone() model.Multiset {
	return &multiset{ms: m.ms.Clone()}
}
