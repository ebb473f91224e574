package model

import (
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stycoin/stynode/errors"
)

type Block struct {
	Header       *BlockHeader
	Transactions []*Transaction
}

func NewBlock(header *BlockHeader, txs ...*Transaction) *Block {
	return &Block{
		Header:       header,
		Transactions: txs,
	}
}

func (b *Block) Hash(hasher PowHasher) (*chainhash.Hash, error) {
	return b.Header.Hash(hasher)
}

func (b *Block) String() string {
	return fmt.Sprintf("Block(%s, vtx=%d)", b.Header.String(), len(b.Transactions))
}

// Bytes serialises the header followed by the transaction count and transactions.
func (b *Block) Bytes() []byte {
	out := append(b.Header.Bytes(), bt.VarInt(uint64(len(b.Transactions))).Bytes()...)

	for _, tx := range b.Transactions {
		out = append(out, tx.Bytes()...)
	}

	return out
}

// BuildMerkleRoot computes the merkle root of the block's transaction ids.
// Levels with an odd number of nodes pair the last node with itself.
func (b *Block) BuildMerkleRoot() (*chainhash.Hash, error) {
	if len(b.Transactions) == 0 {
		return nil, errors.NewBlockInvalidError("cannot build merkle root of a block without transactions")
	}

	hashes := make([]chainhash.Hash, len(b.Transactions))
	for i, tx := range b.Transactions {
		hashes[i] = *tx.TxIDChainHash()
	}

	root := MerkleRootFromHashes(hashes)

	return &root, nil
}

// CheckMerkleRoot verifies the header commits to the block's transactions.
func (b *Block) CheckMerkleRoot() error {
	calculated, err := b.BuildMerkleRoot()
	if err != nil {
		return err
	}

	if b.Header.HashMerkleRoot == nil || !b.Header.HashMerkleRoot.IsEqual(calculated) {
		return errors.NewBlockInvalidError("merkle root does not match, header %s, calculated %s", b.Header.HashMerkleRoot, calculated)
	}

	return nil
}

// MerkleRootFromHashes reduces the leaves pairwise with sha256d until one hash
// is left. The input slice is not modified.
func MerkleRootFromHashes(leaves []chainhash.Hash) chainhash.Hash {
	if len(leaves) == 0 {
		return chainhash.Hash{}
	}

	level := append([]chainhash.Hash(nil), leaves...)

	var pair [chainhash.HashSize * 2]byte

	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}

		next := make([]chainhash.Hash, 0, len(level)/2)

		for i := 0; i < len(level); i += 2 {
			copy(pair[:chainhash.HashSize], level[i][:])
			copy(pair[chainhash.HashSize:], level[i+1][:])
			next = append(next, chainhash.DoubleHashH(pair[:]))
		}

		level = next
	}

	return level[0]
}
