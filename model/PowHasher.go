package model

import (
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stycoin/stynode/errors"
	"golang.org/x/crypto/scrypt"
)

// PowHasher computes the proof-of-work hash of a serialized block header.
type PowHasher interface {
	PowHash(header []byte) (*chainhash.Hash, error)
}

// scrypt parameters of the block header hash
const (
	scryptN      = 1024
	scryptR      = 1
	scryptP      = 1
	scryptKeyLen = chainhash.HashSize
)

// ScryptHasher hashes headers with scrypt(header, header, 1024, 1, 1, 32),
// the proof-of-work function of this chain.
type ScryptHasher struct{}

var _ PowHasher = (*ScryptHasher)(nil)

func NewScryptHasher() *ScryptHasher {
	return &ScryptHasher{}
}

func (h *ScryptHasher) PowHash(header []byte) (*chainhash.Hash, error) {
	key, err := scrypt.Key(header, header, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, errors.NewProcessingError("scrypt failed", err)
	}

	return chainhash.NewHash(key)
}
