package model

import (
	"encoding/binary"
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stycoin/stynode/errors"
)

// BlockHeaderSize is the length of a serialized block header.
const BlockHeaderSize = 80

type BlockHeader struct {
	// Version of the block.  This is not the same as the protocol version.
	Version uint32

	// Hash of the previous block header in the blockchain.
	HashPrevBlock *chainhash.Hash

	// Merkle tree reference to hash of all transactions for the block.
	HashMerkleRoot *chainhash.Hash

	// Time the block was created in unix time.
	Timestamp uint32

	// Difficulty target for the block.
	Bits NBit

	// Nonce used to generate the block.
	Nonce uint32
}

func (bh *BlockHeader) Bytes() []byte {
	b := make([]byte, BlockHeaderSize)

	binary.LittleEndian.PutUint32(b[0:4], bh.Version)

	if bh.HashPrevBlock != nil {
		copy(b[4:36], bh.HashPrevBlock[:])
	}

	if bh.HashMerkleRoot != nil {
		copy(b[36:68], bh.HashMerkleRoot[:])
	}

	binary.LittleEndian.PutUint32(b[68:72], bh.Timestamp)
	copy(b[72:76], bh.Bits[:])
	binary.LittleEndian.PutUint32(b[76:80], bh.Nonce)

	return b
}

// Hash returns the proof-of-work hash of the header, which is also the block id.
func (bh *BlockHeader) Hash(hasher PowHasher) (*chainhash.Hash, error) {
	return hasher.PowHash(bh.Bytes())
}

// HasMetTargetDifficulty reports whether the header hash is at or below the
// target encoded in Bits. The hash is returned so callers do not hash twice.
func (bh *BlockHeader) HasMetTargetDifficulty(hasher PowHasher) (bool, *chainhash.Hash, error) {
	hash, err := bh.Hash(hasher)
	if err != nil {
		return false, nil, err
	}

	target := bh.Bits.CalculateTarget()
	if target.Sign() <= 0 {
		return false, hash, errors.NewBlockInvalidError("block target %s is not positive", bh.Bits.String())
	}

	return HashToBig(hash).Cmp(target) <= 0, hash, nil
}

func (bh *BlockHeader) String() string {
	return fmt.Sprintf("BlockHeader(ver=%d, hashPrevBlock=%s, hashMerkleRoot=%s, nTime=%d, nBits=%s, nNonce=%d)",
		bh.Version, bh.HashPrevBlock, bh.HashMerkleRoot, bh.Timestamp, bh.Bits.String(), bh.Nonce)
}
