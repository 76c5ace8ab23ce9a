package pow

import (
	"context"
	"encoding/binary"
	"math/big"

	"github.com/kaspanet/blockcapsule/domain/consensus/model"
	"github.com/kaspanet/blockcapsule/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/blockcapsule/domain/consensus/utils/hashes"
	"github.com/pkg/errors"
)

// NonceSize is the size of the nonces written by SolveBlock
const NonceSize = 8

var twoTo256 = new(big.Int).Lsh(big.NewInt(1), 256)

// ErrZeroDifficulty is returned when a header's difficulty is empty or zero
var ErrZeroDifficulty = errors.New("difficulty must be a positive number")

// Boundary returns the highest mine value that satisfies the given
// difficulty: 2^256 / difficulty, where difficulty is read as a big-endian
// unsigned integer.
func Boundary(difficulty []byte) (*big.Int, error) {
	difficultyValue := new(big.Int).SetBytes(difficulty)
	if difficultyValue.Sign() == 0 {
		return nil, errors.WithStack(ErrZeroDifficulty)
	}
	return new(big.Int).Div(twoTo256, difficultyValue), nil
}

// MineValue returns the header hash read as a big-endian integer. The
// header's nonce is part of the hashed data.
func MineValue(header *externalapi.DomainBlockHeader, hasher model.Hasher) *big.Int {
	return hashes.ToBig(consensushashing.HeaderHash(header, hasher))
}

// CheckProofOfWork returns whether the header's mine value is within the
// boundary set by its own difficulty
func CheckProofOfWork(header *externalapi.DomainBlockHeader, hasher model.Hasher) (bool, error) {
	boundary, err := Boundary(header.Difficulty)
	if err != nil {
		return false, err
	}
	return MineValue(header, hasher).Cmp(boundary) <= 0, nil
}

// SolveBlock searches the nonce space for a nonce that satisfies the block's
// difficulty and writes it into the header. It returns ctx.Err() if the
// context is done before a solution is found.
func SolveBlock(ctx context.Context, block *externalapi.DomainBlock, hasher model.Hasher) error {
	header := block.Header
	boundary, err := Boundary(header.Difficulty)
	if err != nil {
		return err
	}

	nonce := make([]byte, NonceSize)
	header.Nonce = nonce
	for i := uint64(0); ; i++ {
		if i%1024 == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		binary.BigEndian.PutUint64(nonce, i)
		if MineValue(header, hasher).Cmp(boundary) <= 0 {
			return nil
		}
		if i == ^uint64(0) {
			return errors.New("nonce space exhausted")
		}
	}
}
