package serialization

import (
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

var errMalformed = errors.New("errMalformed")

// errMissingField is returned when encoding an object that has a required
// field set to nil.
var errMissingField = errors.New("required field is nil")

// IsMalformedError returns whether the error indicates a malformed data source
func IsMalformedError(err error) bool {
	return errors.Is(err, errMalformed)
}

// IsMissingFieldError returns whether the error indicates that an object
// could not be encoded because a required field was nil
func IsMissingFieldError(err error) bool {
	return errors.Is(err, errMissingField)
}

func appendVarintField(b []byte, num protowire.Number, value uint64) []byte {
	if value == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, value)
}

func appendBytesField(b []byte, num protowire.Number, value []byte) []byte {
	if len(value) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, value)
}

// appendHashField always writes the hash, zero hashes included, so that
// every encoded header has the same layout.
func appendHashField(b []byte, num protowire.Number, hash *externalapi.DomainHash) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, hash.ByteSlice())
}

// fieldConsumer consumes the value of a single field. It returns the number
// of bytes consumed, or zero if the field is unknown and should be skipped.
type fieldConsumer func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

func consumeMessage(b []byte, consumeField fieldConsumer) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errors.Wrapf(errMalformed, "invalid field tag: %s", protowire.ParseError(n))
		}
		b = b[n:]

		n, err := consumeField(num, typ, b)
		if err != nil {
			return err
		}
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return errors.Wrapf(errMalformed, "invalid value for unknown field %d: %s",
					num, protowire.ParseError(n))
			}
		}
		b = b[n:]
	}
	return nil
}

func consumeVarint(num protowire.Number, typ protowire.Type, b []byte) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, errors.Wrapf(errMalformed, "field %d has wire type %d, while it should be a varint", num, typ)
	}
	value, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, errors.Wrapf(errMalformed, "invalid varint in field %d: %s", num, protowire.ParseError(n))
	}
	return value, n, nil
}

// consumeBytes returns a copy of the field's bytes, so that the decoded
// object never aliases the source buffer.
func consumeBytes(num protowire.Number, typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, errors.Wrapf(errMalformed, "field %d has wire type %d, while it should be length-delimited", num, typ)
	}
	value, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, errors.Wrapf(errMalformed, "invalid length-delimited value in field %d: %s",
			num, protowire.ParseError(n))
	}
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	return valueCopy, n, nil
}

func consumeHash(num protowire.Number, typ protowire.Type, b []byte, hash *externalapi.DomainHash) (int, error) {
	hashBytes, n, err := consumeBytes(num, typ, b)
	if err != nil {
		return 0, err
	}
	decoded, err := externalapi.NewDomainHashFromByteSlice(hashBytes)
	if err != nil {
		return 0, errors.Wrapf(errMalformed, "field %d: %s", num, err)
	}
	*hash = *decoded
	return n, nil
}
