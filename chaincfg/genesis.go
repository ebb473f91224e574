package chaincfg

import (
	"context"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stycoin/stynode/errors"
	"github.com/stycoin/stynode/model"
	"github.com/stycoin/stynode/ulogger"
)

// defaultProgressInterval is how many nonces are tried between progress log lines.
const defaultProgressInterval = 1 << 16

// GenesisSpec holds the literal constants a genesis block is built from.
// ExpectedHash and ExpectedMerkleRoot are optional; when set, Build fails
// unless the constructed block reproduces them.
type GenesisSpec struct {
	Version     uint32
	Timestamp   uint32
	TxTimestamp uint32
	Bits        uint32
	Nonce       uint32

	// CoinbaseMessage is pushed into the coinbase scriptSig after OP_0 and CoinbaseTag.
	CoinbaseMessage string
	CoinbaseTag     []byte

	ExpectedHash       *chainhash.Hash
	ExpectedMerkleRoot *chainhash.Hash
}

// NewCoinbaseTransaction builds the genesis coinbase: a single input spending
// the null outpoint with scriptSig OP_0 <tag> <message>, and a single empty
// output. The output can never be spent.
func NewCoinbaseTransaction(spec GenesisSpec) (*model.Transaction, error) {
	unlockingScript := &bscript.Script{}

	if err := unlockingScript.AppendOpcodes(bscript.Op0); err != nil {
		return nil, errors.NewProcessingError("could not build coinbase script", err)
	}

	if err := unlockingScript.AppendPushData(spec.CoinbaseTag); err != nil {
		return nil, errors.NewProcessingError("could not push coinbase tag", err)
	}

	if err := unlockingScript.AppendPushData([]byte(spec.CoinbaseMessage)); err != nil {
		return nil, errors.NewProcessingError("could not push coinbase message", err)
	}

	return &model.Transaction{
		Version: 1,
		Time:    spec.TxTimestamp,
		Inputs: []*model.Input{
			{
				PreviousTxOutIndex: model.CoinbaseOutIndex,
				UnlockingScript:    unlockingScript,
				SequenceNumber:     0xffffffff,
			},
		},
		Outputs: []*model.Output{
			{
				Satoshis:      0,
				LockingScript: &bscript.Script{},
			},
		},
		LockTime: 0,
	}, nil
}

// Block assembles the genesis block at the literal nonce, without any search.
func (s GenesisSpec) Block() (*model.Block, error) {
	coinbase, err := NewCoinbaseTransaction(s)
	if err != nil {
		return nil, err
	}

	block := model.NewBlock(&model.BlockHeader{
		Version:       s.Version,
		HashPrevBlock: &chainhash.Hash{},
		Timestamp:     s.Timestamp,
		Bits:          model.NewNBitFromUint32(s.Bits),
		Nonce:         s.Nonce,
	}, coinbase)

	if block.Header.HashMerkleRoot, err = block.BuildMerkleRoot(); err != nil {
		return nil, err
	}

	return block, nil
}

type Genesis struct {
	Block      *model.Block
	Hash       *chainhash.Hash
	MerkleRoot *chainhash.Hash

	// Iterations is the number of nonces tried beyond the literal one.
	Iterations uint64
}

type GenesisBuilder struct {
	logger           ulogger.Logger
	hasher           model.PowHasher
	search           bool
	progressInterval uint64
}

type GenesisOption func(*GenesisBuilder)

// WithSearch allows Build to look for a nonce when the literal one does not
// reproduce the expected hash. Only the genesis tool turns this on.
func WithSearch(search bool) GenesisOption {
	return func(g *GenesisBuilder) {
		g.search = search
	}
}

func WithProgressInterval(n uint64) GenesisOption {
	return func(g *GenesisBuilder) {
		if n > 0 {
			g.progressInterval = n
		}
	}
}

func NewGenesisBuilder(logger ulogger.Logger, hasher model.PowHasher, opts ...GenesisOption) *GenesisBuilder {
	initPrometheusMetrics()

	g := &GenesisBuilder{
		logger:           logger,
		hasher:           hasher,
		progressInterval: defaultProgressInterval,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Build constructs the genesis block described by spec and verifies it.
//
// When the literal nonce already hashes to spec.ExpectedHash no search is
// done. Otherwise, if search is enabled, nonces are tried upwards from the
// literal one until the header hash is at or below the target, bumping the
// timestamp whenever the nonce wraps. The result must still match any
// expected hash and merkle root.
func (g *GenesisBuilder) Build(ctx context.Context, spec GenesisSpec) (*Genesis, error) {
	start := time.Now()
	defer func() {
		prometheusGenesisBuild.Observe(time.Since(start).Seconds())
	}()

	block, err := spec.Block()
	if err != nil {
		return nil, err
	}

	merkleRoot := block.Header.HashMerkleRoot

	if spec.ExpectedMerkleRoot != nil {
		committed := *block.Header
		committed.HashMerkleRoot = spec.ExpectedMerkleRoot

		if err = model.NewBlock(&committed, block.Transactions...).CheckMerkleRoot(); err != nil {
			return nil, errors.NewConfigurationError("[GenesisBuilder] expected merkle root %s is not the root of the coinbase", spec.ExpectedMerkleRoot, err)
		}
	}

	met, hash, err := block.Header.HasMetTargetDifficulty(g.hasher)
	if err != nil {
		if errors.Is(err, errors.ErrBlockInvalid) {
			return nil, errors.NewConfigurationError("[GenesisBuilder] bits %s give a non-positive target", block.Header.Bits.String(), err)
		}

		return nil, errors.NewProcessingError("[GenesisBuilder] could not hash genesis header", err)
	}

	genesis := &Genesis{
		Block:      block,
		Hash:       hash,
		MerkleRoot: merkleRoot,
	}

	if spec.ExpectedHash != nil && hash.IsEqual(spec.ExpectedHash) {
		if !met {
			return nil, errors.NewConfigurationError("[GenesisBuilder] expected genesis hash %s is above target %s", hash, block.Header.Bits.String())
		}

		g.logGenesis(genesis)

		return genesis, nil
	}

	if !met {
		if !g.search {
			if spec.ExpectedHash != nil {
				return nil, errors.NewConfigurationError("[GenesisBuilder] genesis hash %s does not match expected %s", hash, spec.ExpectedHash)
			}

			return nil, errors.NewConfigurationError("[GenesisBuilder] genesis hash %s is above target %s and nonce search is disabled", hash, block.Header.Bits.String())
		}

		if err = g.searchNonce(ctx, genesis); err != nil {
			return nil, err
		}
	}

	g.logGenesis(genesis)

	if spec.ExpectedHash != nil && !genesis.Hash.IsEqual(spec.ExpectedHash) {
		return nil, errors.NewConfigurationError("[GenesisBuilder] genesis hash %s does not match expected %s", genesis.Hash, spec.ExpectedHash)
	}

	return genesis, nil
}

// searchNonce mutates the header of genesis.Block until its hash meets the target.
func (g *GenesisBuilder) searchNonce(ctx context.Context, genesis *Genesis) error {
	header := genesis.Block.Header

	g.logger.Infof("[GenesisBuilder] searching for genesis nonce from %d, target %s", header.Nonce, header.Bits.String())

	var iterations uint64

	defer func() {
		prometheusGenesisSearchIterations.Add(float64(iterations))
		genesis.Iterations = iterations
	}()

	var (
		met  bool
		hash *chainhash.Hash
		err  error
	)

	for !met {
		select {
		case <-ctx.Done():
			return errors.NewContextCanceledError("[GenesisBuilder] nonce search stopped at nonce %d after %d iterations", header.Nonce, iterations, ctx.Err())
		default:
		}

		header.Nonce++
		if header.Nonce == 0 {
			header.Timestamp++
			g.logger.Infof("[GenesisBuilder] nonce wrapped, timestamp now %d", header.Timestamp)
		}

		if met, hash, err = header.HasMetTargetDifficulty(g.hasher); err != nil {
			return errors.NewProcessingError("[GenesisBuilder] could not hash genesis header", err)
		}

		iterations++

		if iterations%g.progressInterval == 0 {
			g.logger.Infof("[GenesisBuilder] tried %d nonces, at nonce %d, hash %s", iterations, header.Nonce, hash)
		}
	}

	genesis.Hash = hash

	return nil
}

func (g *GenesisBuilder) logGenesis(genesis *Genesis) {
	header := genesis.Block.Header

	g.logger.Debugf("[GenesisBuilder] genesis nTime=%d nNonce=%d hash=%s merkleRoot=%s iterations=%d",
		header.Timestamp, header.Nonce, genesis.Hash, genesis.MerkleRoot, genesis.Iterations)
}
