package multiset

import (
	"testing"
)

func TestMultisetOrderIndependence(t *testing.T) {
	elements := [][]byte{{1}, {2, 2}, {3, 3, 3}}

	forward := New()
	for _, element := range elements {
		forward.Add(element)
	}
	backward := New()
	for i := len(elements) - 1; i >= 0; i-- {
		backward.Add(elements[i])
	}
	if !forward.Hash().Equal(backward.Hash()) {
		t.Fatalf("Hash: insertion order changed the hash: %s != %s", forward.Hash(), backward.Hash())
	}

	forward.Remove(elements[1])
	withoutSecond := New()
	withoutSecond.Add(elements[0])
	withoutSecond.Add(elements[2])
	if !forward.Hash().Equal(withoutSecond.Hash()) {
		t.Fatalf("Remove: expected %s, got %s", withoutSecond.Hash(), forward.Hash())
	}
}

func TestMultisetSerialization(t *testing.T) {
	ms := New()
	ms.Add([]byte("block"))

	deserialized, err := FromBytes(ms.Serialize())
	if err != nil {
		t.Fatalf("FromBytes: %s", err)
	}
	if !deserialized.Hash().Equal(ms.Hash()) {
		t.Fatalf("FromBytes: expected %s, got %s", ms.Hash(), deserialized.Hash())
	}

	_, err = FromBytes([]byte{1, 2, 3})
	if err == nil {
		t.Fatalf("FromBytes: expected an error for a short multiset")
	}
}

func TestMultisetClone(t *testing.T) {
	ms := New()
	ms.Add([]byte("a"))
	expected := ms.Hash()

	clone := ms.Clone()
	clone.Add([]byte("b"))
	if !ms.Hash().Equal(expected) {
		t.Fatalf("Clone: modifying the clone changed the original")
	}
	if clone.Hash().Equal(expected) {
		t.Fatalf("Clone: adding to the clone did not change its hash")
	}
}
