package model

import (
	"encoding/hex"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mainnet genesis header, scrypt proof of work
const (
	genesisHeaderHex  = "010000000000000000000000000000000000000000000000000000000000000000000000f026c488e517b22f5d504deb22488c81a75142574bab759782fe9705d521079d497c055bffff001f39730200"
	genesisHashHex    = "000059b00a8735812562b81dabdc4928ec1bab3abf3e806a942069656a002284"
	genesisMerkleRoot = "9d0721d50597fe829775ab4b574251a7818c4822eb4d505d2fb217e588c426f0"
)

func genesisHeader(t *testing.T) *BlockHeader {
	t.Helper()

	merkleRoot, err := chainhash.NewHashFromStr(genesisMerkleRoot)
	require.NoError(t, err)

	return &BlockHeader{
		Version:        1,
		HashPrevBlock:  &chainhash.Hash{},
		HashMerkleRoot: merkleRoot,
		Timestamp:      1527086153,
		Bits:           NewNBitFromUint32(0x1f00ffff),
		Nonce:          160569,
	}
}

// fixedHasher returns the same hash for every header.
type fixedHasher struct {
	hash chainhash.Hash
}

func (h *fixedHasher) PowHash([]byte) (*chainhash.Hash, error) {
	hash := h.hash
	return &hash, nil
}

func TestBlockHeader_Bytes(t *testing.T) {
	b := genesisHeader(t).Bytes()

	require.Len(t, b, BlockHeaderSize)
	assert.Equal(t, genesisHeaderHex, hex.EncodeToString(b))
}

func TestBlockHeader_Bytes_NilHashes(t *testing.T) {
	header := &BlockHeader{
		Version:   2,
		Timestamp: 10,
		Bits:      NewNBitFromUint32(0x207fffff),
		Nonce:     3,
	}

	b := header.Bytes()
	require.Len(t, b, BlockHeaderSize)
	assert.Equal(t, make([]byte, 64), b[4:68])
	assert.Equal(t, []byte{3, 0, 0, 0}, b[76:])
}

func TestBlockHeader_Hash(t *testing.T) {
	hash, err := genesisHeader(t).Hash(NewScryptHasher())
	require.NoError(t, err)
	assert.Equal(t, genesisHashHex, hash.String())
}

func TestBlockHeader_HasMetTargetDifficulty(t *testing.T) {
	header := genesisHeader(t)

	ok, hash, err := header.HasMetTargetDifficulty(NewScryptHasher())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, genesisHashHex, hash.String())

	t.Run("hash equal to target meets it", func(t *testing.T) {
		var atTarget chainhash.Hash

		target := header.Bits.CalculateTarget().Bytes()
		for i, b := range target {
			atTarget[len(target)-1-i] = b
		}

		ok, _, err := header.HasMetTargetDifficulty(&fixedHasher{hash: atTarget})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("hash above target", func(t *testing.T) {
		var maxHash chainhash.Hash
		for i := range maxHash {
			maxHash[i] = 0xff
		}

		ok, hash, err := header.HasMetTargetDifficulty(&fixedHasher{hash: maxHash})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, maxHash, *hash)
	})

	t.Run("non-positive target", func(t *testing.T) {
		zeroBits := *header
		zeroBits.Bits = NewNBitFromUint32(0)

		_, _, err := zeroBits.HasMetTargetDifficulty(NewScryptHasher())
		require.Error(t, err)
	})
}
