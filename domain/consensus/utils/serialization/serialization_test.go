package serialization

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"google.golang.org/protobuf/encoding/protowire"
)

func testBlock(t *testing.T) *externalapi.DomainBlock {
	parentHash, err := externalapi.NewDomainHashFromString(
		"0304f784e4e7bae517bcab94c3e0c9214fb4ac7ff9d7d5a937d1f40031f87b85")
	if err != nil {
		t.Fatalf("NewDomainHashFromString: %s", err)
	}
	return &externalapi.DomainBlock{
		Header: &externalapi.DomainBlockHeader{
			Timestamp:  1514764800000,
			ParentHash: *parentHash,
			Number:     42,
			Nonce:      []byte{0x00, 0x01},
			Difficulty: []byte{0x20, 0x01},
		},
		Transactions: []*externalapi.DomainTransaction{
			{
				Inputs: []*externalapi.DomainTransactionInput{{
					PreviousOutputIndex: externalapi.CoinbaseOutputIndex,
					Signature:           []byte("coinbase data"),
				}},
				Outputs: []*externalapi.DomainTransactionOutput{{
					Value:         10,
					PublicKeyHash: parentHash.ByteSlice(),
				}},
			},
			{
				Inputs: []*externalapi.DomainTransactionInput{{
					PreviousTransactionID: []byte{0x01, 0x02, 0x03},
					PreviousOutputIndex:   0,
					Signature:             []byte{0x04},
					PublicKey:             []byte{0x05},
				}},
				Outputs: []*externalapi.DomainTransactionOutput{
					{Value: 3, PublicKeyHash: []byte{0x06}},
					{Value: 0, PublicKeyHash: []byte{0x07}},
				},
			},
		},
	}
}

func TestBlockRoundTrip(t *testing.T) {
	block := testBlock(t)
	codec := NewCodec()

	blockBytes, err := codec.Encode(block)
	if err != nil {
		t.Fatalf("Encode: %s", err)
	}
	decoded, err := codec.Decode(blockBytes)
	if err != nil {
		t.Fatalf("Decode: %s", err)
	}
	if !decoded.Equal(block) {
		t.Fatalf("Decode: round trip mismatch.\nexpected: %s\ngot: %s", spew.Sdump(block), spew.Sdump(decoded))
	}

	reencoded, err := codec.Encode(decoded)
	if err != nil {
		t.Fatalf("Encode: %s", err)
	}
	if !bytes.Equal(reencoded, blockBytes) {
		t.Fatalf("Encode: encoding is not canonical. first: %x, second: %x", blockBytes, reencoded)
	}
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	blockBytes, err := BlockToBytes(testBlock(t))
	if err != nil {
		t.Fatalf("BlockToBytes: %s", err)
	}
	decoded, err := BytesToBlock(blockBytes)
	if err != nil {
		t.Fatalf("BytesToBlock: %s", err)
	}
	for i := range blockBytes {
		blockBytes[i] = 0
	}
	if !decoded.Equal(testBlock(t)) {
		t.Fatalf("BytesToBlock: decoded block changed after the source buffer was overwritten")
	}
}

func TestGenesisHeaderLayout(t *testing.T) {
	header := &externalapi.DomainBlockHeader{Difficulty: []byte{0x20, 0x01}}
	// Two always-present hashes followed by the difficulty.
	expected := "1220" + "0000000000000000000000000000000000000000000000000000000000000000" +
		"1a20" + "0000000000000000000000000000000000000000000000000000000000000000" +
		"2a022001"
	if encoded := hex.EncodeToString(HeaderToBytes(header)); encoded != expected {
		t.Fatalf("HeaderToBytes: expected %s, got %s", expected, encoded)
	}
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	blockBytes, err := BlockToBytes(testBlock(t))
	if err != nil {
		t.Fatalf("BlockToBytes: %s", err)
	}
	withUnknown := protowire.AppendTag(nil, 15, protowire.VarintType)
	withUnknown = protowire.AppendVarint(withUnknown, 7)
	withUnknown = append(withUnknown, blockBytes...)

	decoded, err := BytesToBlock(withUnknown)
	if err != nil {
		t.Fatalf("BytesToBlock: %s", err)
	}
	if !decoded.Equal(testBlock(t)) {
		t.Fatalf("BytesToBlock: unknown field changed the decoded block")
	}
}

func TestDecodeMalformed(t *testing.T) {
	shortHashHeader := protowire.AppendTag(nil, headerParentHashField, protowire.BytesType)
	shortHashHeader = protowire.AppendBytes(shortHashHeader, []byte{0x01, 0x02})
	blockWithShortHash := protowire.AppendTag(nil, blockHeaderField, protowire.BytesType)
	blockWithShortHash = protowire.AppendBytes(blockWithShortHash, shortHashHeader)

	wrongWireType := protowire.AppendTag(nil, blockHeaderField, protowire.VarintType)
	wrongWireType = protowire.AppendVarint(wrongWireType, 1)

	noHeader := protowire.AppendTag(nil, blockTransactionsField, protowire.BytesType)
	noHeader = protowire.AppendBytes(noHeader, nil)

	truncated, err := BlockToBytes(testBlock(t))
	if err != nil {
		t.Fatalf("BlockToBytes: %s", err)
	}
	truncated = truncated[:len(truncated)-5]

	tests := []struct {
		name       string
		blockBytes []byte
	}{
		{"empty", []byte{}},
		{"garbage", []byte{0xff, 0xff, 0xff}},
		{"short hash", blockWithShortHash},
		{"wrong wire type", wrongWireType},
		{"no header", noHeader},
		{"truncated", truncated},
	}

	for _, test := range tests {
		_, err := BytesToBlock(test.blockBytes)
		if err == nil {
			t.Errorf("%s: expected an error", test.name)
			continue
		}
		if !IsMalformedError(err) {
			t.Errorf("%s: expected a malformed error, got: %s", test.name, err)
		}
	}
}

func TestEncodeMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		block *externalapi.DomainBlock
	}{
		{"nil block", nil},
		{"nil header", &externalapi.DomainBlock{}},
		{"nil transaction", &externalapi.DomainBlock{
			Header:       &externalapi.DomainBlockHeader{},
			Transactions: []*externalapi.DomainTransaction{nil},
		}},
		{"nil input", &externalapi.DomainBlock{
			Header: &externalapi.DomainBlockHeader{},
			Transactions: []*externalapi.DomainTransaction{{
				Inputs: []*externalapi.DomainTransactionInput{nil},
			}},
		}},
	}

	for _, test := range tests {
		_, err := BlockToBytes(test.block)
		if !IsMissingFieldError(err) {
			t.Errorf("%s: expected a missing field error, got: %v", test.name, err)
		}
	}
}
