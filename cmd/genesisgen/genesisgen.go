package main

import (
	"context"
	"fmt"
	"io"

	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	"github.com/stycoin/stynode/chaincfg"
	"github.com/stycoin/stynode/errors"
	"github.com/stycoin/stynode/model"
	"github.com/stycoin/stynode/ulogger"
)

type generateOptions struct {
	network   string
	timestamp *uint64
	nonce     *uint64
	bits      string
	message   string
	progress  uint64
}

// genesisSpec starts from the network's own definition and applies the
// overrides. The expected hashes are dropped since the search is meant to
// produce new ones.
func genesisSpec(opts generateOptions) (chaincfg.GenesisSpec, error) {
	network, err := chaincfg.ParseNetwork(opts.network)
	if err != nil {
		return chaincfg.GenesisSpec{}, err
	}

	cfg, err := chaincfg.NetworkConfigFor(network)
	if err != nil {
		return chaincfg.GenesisSpec{}, err
	}

	spec := cfg.Genesis
	spec.ExpectedHash = nil
	spec.ExpectedMerkleRoot = nil

	if opts.timestamp != nil {
		if spec.Timestamp, err = safeconversion.Uint64ToUint32(*opts.timestamp); err != nil {
			return spec, errors.NewInvalidArgumentError("timestamp out of range", err)
		}
	}

	if opts.nonce != nil {
		if spec.Nonce, err = safeconversion.Uint64ToUint32(*opts.nonce); err != nil {
			return spec, errors.NewInvalidArgumentError("nonce out of range", err)
		}
	}

	if opts.bits != "" {
		bits, err := model.NewNBitFromString(opts.bits)
		if err != nil {
			return spec, errors.NewInvalidArgumentError("invalid bits %q", opts.bits, err)
		}

		spec.Bits = bits.Uint32()
	}

	if opts.message != "" {
		spec.CoinbaseMessage = opts.message
	}

	return spec, nil
}

func generate(ctx context.Context, logger ulogger.Logger, opts generateOptions) (*chaincfg.Genesis, error) {
	spec, err := genesisSpec(opts)
	if err != nil {
		return nil, err
	}

	builder := chaincfg.NewGenesisBuilder(logger, model.NewScryptHasher(),
		chaincfg.WithSearch(true),
		chaincfg.WithProgressInterval(opts.progress),
	)

	return builder.Build(ctx, spec)
}

func printGenesis(w io.Writer, genesis *chaincfg.Genesis) error {
	header := genesis.Block.Header

	_, err := fmt.Fprintf(w, `genesisTimestamp = %d
genesisNonce     = %d
genesisBits      = 0x%08x
genesisHash      = "%s"
genesisMerkle    = "%s"
iterations       = %d
`,
		header.Timestamp, header.Nonce, header.Bits.Uint32(), genesis.Hash, genesis.MerkleRoot, genesis.Iterations)

	return err
}
