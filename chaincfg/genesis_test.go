package chaincfg

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stycoin/stynode/errors"
	"github.com/stycoin/stynode/model"
	"github.com/stycoin/stynode/ulogger"
	"go.uber.org/atomic"
)

const genesisCoinbaseHex = "01000000497c055b010000000000000000000000000000000000000000000000000000000000000000ffffffff2900012a254e7954696d65732e636f6d20323031382f30352f323320486f77204d75656c6c6572732e2effffffff0100000000000000000000000000"

// countingHasher wraps a hasher and counts the headers it hashed.
type countingHasher struct {
	model.PowHasher
	calls atomic.Uint64
}

func (h *countingHasher) PowHash(header []byte) (*chainhash.Hash, error) {
	h.calls.Add(1)
	return h.PowHasher.PowHash(header)
}

// nonceHasher returns the zero hash for one nonce and the maximum hash for all others.
type nonceHasher struct {
	winningNonce uint32
}

func (h *nonceHasher) PowHash(header []byte) (*chainhash.Hash, error) {
	hash := chainhash.Hash{}

	if binary.LittleEndian.Uint32(header[76:80]) != h.winningNonce {
		for i := range hash {
			hash[i] = 0xff
		}
	}

	return &hash, nil
}

type failingHasher struct{}

func (failingHasher) PowHash([]byte) (*chainhash.Hash, error) {
	return nil, errors.NewProcessingError("hasher unavailable")
}

func searchSpec(bits uint32) GenesisSpec {
	spec := MainNetConfig().Genesis
	spec.Bits = bits
	spec.Nonce = 0
	spec.ExpectedHash = nil

	return spec
}

func TestNewCoinbaseTransaction(t *testing.T) {
	tx, err := NewCoinbaseTransaction(MainNetConfig().Genesis)
	require.NoError(t, err)

	assert.Equal(t, genesisCoinbaseHex, hex.EncodeToString(tx.Bytes()))
	assert.True(t, tx.IsCoinbase())
	require.Len(t, tx.Outputs, 1)
	assert.True(t, tx.Outputs[0].IsEmpty())
	assert.Equal(t, "00012a254e7954696d65732e636f6d20323031382f30352f323320486f77204d75656c6c6572732e2e", hex.EncodeToString(*tx.Inputs[0].UnlockingScript))
}

func TestGenesisSpec_Block(t *testing.T) {
	block, err := MainNetConfig().Genesis.Block()
	require.NoError(t, err)

	assert.True(t, block.Header.HashPrevBlock.IsEqual(&chainhash.Hash{}))
	assert.Equal(t, genesisMerkle, block.Header.HashMerkleRoot.String())
	assert.Equal(t, "1f00ffff", block.Header.Bits.String())
	assert.Equal(t, uint32(genesisNonce), block.Header.Nonce)
	require.Len(t, block.Transactions, 1)
}

func TestGenesisBuilder_MainNet(t *testing.T) {
	ctx := context.Background()
	hasher := &countingHasher{PowHasher: model.NewScryptHasher()}
	builder := NewGenesisBuilder(ulogger.TestLogger{}, hasher)

	genesis, err := builder.Build(ctx, MainNetConfig().Genesis)
	require.NoError(t, err)

	assert.Equal(t, genesisHash, genesis.Hash.String())
	assert.Equal(t, genesisMerkle, genesis.MerkleRoot.String())
	assert.Equal(t, uint64(0), genesis.Iterations)
	assert.Equal(t, uint64(1), hasher.calls.Load(), "the literal nonce must not trigger a search")

	t.Run("deterministic", func(t *testing.T) {
		again, err := builder.Build(ctx, MainNetConfig().Genesis)
		require.NoError(t, err)

		assert.Equal(t, genesis.Hash, again.Hash)
		assert.Equal(t, genesis.MerkleRoot, again.MerkleRoot)
		assert.Equal(t, genesis.Block.Bytes(), again.Block.Bytes())
	})

	t.Run("testnet converges to the same block", func(t *testing.T) {
		testnet, err := builder.Build(ctx, TestNetConfig().Genesis)
		require.NoError(t, err)

		assert.Equal(t, genesis.Hash, testnet.Hash)
	})
}

func TestGenesisBuilder_Search(t *testing.T) {
	tests := []struct {
		name       string
		bits       uint32
		nonce      uint32
		iterations uint64
		hash       string
	}{
		{"literal nonce already meets target", 0x207fffff, 0, 0, "08d216eb4f12e5f5fb5e70eef496f2f5d49df966a8c648ecead45463f68756f0"},
		{"short search", 0x200fffff, 5, 5, "075be7a325d70bff252024c2b0074fdbbdd77a5fc11055f98fc9fe0a81eb5985"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := NewGenesisBuilder(ulogger.NewVerboseTestLogger(t), model.NewScryptHasher(), WithSearch(true), WithProgressInterval(2))

			genesis, err := builder.Build(context.Background(), searchSpec(tt.bits))
			require.NoError(t, err)

			assert.Equal(t, tt.iterations, genesis.Iterations)
			assert.Equal(t, tt.nonce, genesis.Block.Header.Nonce)
			assert.Equal(t, tt.hash, genesis.Hash.String())
			assert.Equal(t, uint32(genesisTimestamp), genesis.Block.Header.Timestamp)

			// the result never exceeds the target of its own bits
			assert.LessOrEqual(t, model.HashToBig(genesis.Hash).Cmp(genesis.Block.Header.Bits.CalculateTarget()), 0)

			ok, hash, err := genesis.Block.Header.HasMetTargetDifficulty(model.NewScryptHasher())
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, genesis.Hash, hash)
		})
	}
}

func TestGenesisBuilder_NonceWrapBumpsTimestamp(t *testing.T) {
	builder := NewGenesisBuilder(ulogger.TestLogger{}, &nonceHasher{winningNonce: 1}, WithSearch(true))

	spec := searchSpec(0x1f00ffff)
	spec.Nonce = 0xfffffffe

	genesis, err := builder.Build(context.Background(), spec)
	require.NoError(t, err)

	// 0xffffffff, then 0 with the timestamp bumped, then 1
	assert.Equal(t, uint64(3), genesis.Iterations)
	assert.Equal(t, uint32(1), genesis.Block.Header.Nonce)
	assert.Equal(t, uint32(genesisTimestamp+1), genesis.Block.Header.Timestamp)

	// the coinbase keeps its own time
	assert.Equal(t, uint32(genesisTimestamp), genesis.Block.Transactions[0].Time)
}

func TestGenesisBuilder_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("hash mismatch without search", func(t *testing.T) {
		spec := MainNetConfig().Genesis
		spec.Nonce++

		_, err := NewGenesisBuilder(ulogger.TestLogger{}, model.NewScryptHasher()).Build(ctx, spec)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfiguration))
		assert.Contains(t, err.Error(), "does not match expected")
	})

	t.Run("above target without search", func(t *testing.T) {
		_, err := NewGenesisBuilder(ulogger.TestLogger{}, model.NewScryptHasher()).Build(ctx, searchSpec(0x200fffff))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfiguration))
	})

	t.Run("search result does not match expected", func(t *testing.T) {
		spec := searchSpec(0x200fffff)
		spec.ExpectedHash = newHashFromStr(genesisHash)

		_, err := NewGenesisBuilder(ulogger.TestLogger{}, model.NewScryptHasher(), WithSearch(true)).Build(ctx, spec)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfiguration))
	})

	t.Run("merkle root mismatch", func(t *testing.T) {
		spec := MainNetConfig().Genesis
		spec.CoinbaseMessage = "NyTimes.com 2018/05/24"

		_, err := NewGenesisBuilder(ulogger.TestLogger{}, model.NewScryptHasher()).Build(ctx, spec)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfiguration))
		assert.True(t, errors.Is(err, errors.ErrBlockInvalid), "the block level merkle check is wrapped")
		assert.Contains(t, err.Error(), "merkle root")
	})

	t.Run("expected merkle root not committed by the coinbase", func(t *testing.T) {
		spec := MainNetConfig().Genesis
		spec.ExpectedMerkleRoot = &chainhash.Hash{}

		hasher := &countingHasher{PowHasher: model.NewScryptHasher()}

		_, err := NewGenesisBuilder(ulogger.TestLogger{}, hasher).Build(ctx, spec)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfiguration))
		assert.Equal(t, uint64(0), hasher.calls.Load(), "the header is not hashed once the merkle root is wrong")
	})

	t.Run("expected hash above target", func(t *testing.T) {
		maxHash := chainhash.Hash{}
		for i := range maxHash {
			maxHash[i] = 0xff
		}

		spec := MainNetConfig().Genesis
		spec.ExpectedHash = &maxHash

		_, err := NewGenesisBuilder(ulogger.TestLogger{}, &nonceHasher{winningNonce: spec.Nonce + 1}).Build(ctx, spec)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfiguration))
		assert.Contains(t, err.Error(), "above target")
	})

	t.Run("zero target", func(t *testing.T) {
		_, err := NewGenesisBuilder(ulogger.TestLogger{}, model.NewScryptHasher(), WithSearch(true)).Build(ctx, searchSpec(0))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfiguration))
		assert.True(t, errors.Is(err, errors.ErrBlockInvalid))
		assert.Contains(t, err.Error(), "non-positive target")
	})

	t.Run("hasher failure", func(t *testing.T) {
		_, err := NewGenesisBuilder(ulogger.TestLogger{}, failingHasher{}).Build(ctx, MainNetConfig().Genesis)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrProcessing))
	})

	t.Run("cancelled search", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		builder := NewGenesisBuilder(ulogger.TestLogger{}, &nonceHasher{winningNonce: 100}, WithSearch(true))

		_, err := builder.Build(cancelled, searchSpec(0x1f00ffff))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrContextCanceled))
	})
}
