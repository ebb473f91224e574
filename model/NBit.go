package model

import (
	"encoding/binary"
	"encoding/hex"
	"math/big"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stycoin/stynode/errors"
)

// difficultyOneBits is the compact target that defines difficulty 1.
const difficultyOneBits uint32 = 0x1d00ffff

// NBit is the compact difficulty target in wire (little-endian) order.
type NBit [4]byte

func NewNBitFromUint32(compact uint32) NBit {
	var b NBit

	binary.LittleEndian.PutUint32(b[:], compact)

	return b
}

// NewNBitFromString parses the conventional big-endian hex form, e.g. "1f00ffff".
func NewNBitFromString(s string) (*NBit, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid nBits hex %q", s, err)
	}

	return NewNBitFromSlice(bt.ReverseBytes(raw))
}

// NewNBitFromSlice takes the 4 bytes as they appear in a serialized header.
func NewNBitFromSlice(b []byte) (*NBit, error) {
	if len(b) != 4 {
		return nil, errors.NewInvalidArgumentError("nBits should be 4 bytes long, got %d", len(b))
	}

	var n NBit

	copy(n[:], b)

	return &n, nil
}

func (b NBit) Uint32() uint32 {
	return binary.LittleEndian.Uint32(b[:])
}

func (b NBit) String() string {
	return hex.EncodeToString(bt.ReverseBytes(b[:]))
}

// CalculateTarget expands the compact form into the full 256-bit target.
func (b NBit) CalculateTarget() *big.Int {
	return CompactToBig(b.Uint32())
}

// CalculateDifficulty returns how many times harder this target is than difficulty 1.
func (b NBit) CalculateDifficulty() *big.Float {
	diffOne := new(big.Float).SetInt(CompactToBig(difficultyOneBits))
	target := new(big.Float).SetInt(b.CalculateTarget())

	if target.Sign() == 0 {
		return new(big.Float)
	}

	return new(big.Float).Quo(diffOne, target)
}

// CompactToBig converts a compact representation of a whole number N to a big
// integer. The representation is similar to IEEE754 floating point numbers:
// the most significant 8 bits are the base-256 exponent, the next bit is the
// sign and the remaining 23 bits are the mantissa.
//
//	N = (-1^sign) * mantissa * 256^(exponent-3)
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := uint(compact >> 24)

	var bn *big.Int

	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(exponent-3))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}

	return bn
}

// BigToCompact is the inverse of CompactToBig. Precision below the 23-bit
// mantissa is lost.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	var mantissa uint32

	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	// the sign bit is set: move the mantissa down a byte and bump the exponent
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	//nolint:gosec // exponent is at most 33 for 256-bit values
	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}

	return compact
}

// HashToBig interprets a hash as a little-endian 256-bit number, which is how
// proof of work compares it against the target.
func HashToBig(hash *chainhash.Hash) *big.Int {
	return new(big.Int).SetBytes(bt.ReverseBytes(hash[:]))
}
