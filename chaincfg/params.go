// Package chaincfg defines the parameters that identify a STY network: the
// wire magic, ports, genesis block, address prefixes, seeds and the consensus
// thresholds the rest of the node validates against.
//
// Parameters are built once at start-up from a NetworkConfig literal by
// NewParams, which also rebuilds and verifies the genesis block. A Registry
// holds the built parameter sets and the one selected for this process.
package chaincfg

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"math/big"
	"strconv"
	"strings"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/go-wire"
	"github.com/stycoin/stynode/errors"
	"github.com/stycoin/stynode/model"
	"github.com/stycoin/stynode/ulogger"
)

// Network identifies one of the supported networks.
type Network int

const (
	MainNet Network = iota
	TestNet
)

func (n Network) String() string {
	switch n {
	case MainNet:
		return "mainnet"
	case TestNet:
		return "testnet"
	default:
		return "unknown(" + strconv.Itoa(int(n)) + ")"
	}
}

// ParseNetwork accepts the network names used in settings and on the command line.
func ParseNetwork(name string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mainnet", "main":
		return MainNet, nil
	case "testnet", "test":
		return TestNet, nil
	default:
		return 0, errors.NewInvalidArgumentError("unknown network %q", name)
	}
}

// AddressKind is the purpose a base58 prefix is prepended for.
type AddressKind int

const (
	PubKeyAddress AddressKind = iota
	ScriptAddress
	SecretKey
	StealthAddress
	ExtPublicKey
	ExtSecretKey
)

// AddressKinds lists every kind a network must define a prefix for.
var AddressKinds = []AddressKind{
	PubKeyAddress,
	ScriptAddress,
	SecretKey,
	StealthAddress,
	ExtPublicKey,
	ExtSecretKey,
}

func (k AddressKind) String() string {
	switch k {
	case PubKeyAddress:
		return "PUBKEY_ADDRESS"
	case ScriptAddress:
		return "SCRIPT_ADDRESS"
	case SecretKey:
		return "SECRET_KEY"
	case StealthAddress:
		return "STEALTH_ADDRESS"
	case ExtPublicKey:
		return "EXT_PUBLIC_KEY"
	case ExtSecretKey:
		return "EXT_SECRET_KEY"
	default:
		return "UNKNOWN(" + strconv.Itoa(int(k)) + ")"
	}
}

// Params defines a network by its parameters. Values are set once by
// NewParams and must not be modified afterwards.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	Network Network

	// Net defines the magic bytes used to identify the network.
	Net wire.BitcoinNet

	// AlertPubKey verifies signed network alerts.
	AlertPubKey []byte

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort uint16

	RPCPort uint16

	// DataDir is the sub directory of the data folder used by this network,
	// empty for the main network.
	DataDir string

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// GenesisBlock defines the first block of the chain.
	GenesisBlock *model.Block

	// GenesisHash is the starting block hash.
	GenesisHash *chainhash.Hash

	Base58Prefixes map[AddressKind][]byte

	// DNSSeeds defines a list of DNS seeds for the network that are used
	// as one method to discover peers.
	DNSSeeds []DNSSeed

	// FixedSeeds is the fallback peer list used when DNS seeding is unavailable.
	FixedSeeds []*wire.NetAddress

	// LastPOWBlock is the last height at which proof of work blocks are accepted.
	LastPOWBlock int32

	// POSStartBlock is the first height at which proof of stake blocks are accepted.
	POSStartBlock int32

	PoolMaxTransactions int
	PoolDummyAddress    string
}

// MagicBytes returns the message start bytes in the order they appear on the wire.
func (p *Params) MagicBytes() [4]byte {
	var b [4]byte

	binary.LittleEndian.PutUint32(b[:], uint32(p.Net))

	return b
}

// Prefix returns a copy of the base58 prefix for kind, or nil when the kind is unknown.
func (p *Params) Prefix(kind AddressKind) []byte {
	prefix, ok := p.Base58Prefixes[kind]
	if !ok {
		return nil
	}

	return append([]byte(nil), prefix...)
}

func (p *Params) DefaultPortString() string {
	return strconv.Itoa(int(p.DefaultPort))
}

func (p *Params) RPCPortString() string {
	return strconv.Itoa(int(p.RPCPort))
}

// NetworkConfig is the literal definition of one network. Each network has
// its own complete record; nothing is inherited from another network.
type NetworkConfig struct {
	Name    string
	Network Network
	Magic   [4]byte

	// AlertPubKey is hex encoded.
	AlertPubKey string

	DefaultPort uint16
	RPCPort     uint16
	DataDir     string

	PowLimit *big.Int
	Genesis  GenesisSpec

	Base58Prefixes map[AddressKind][]byte

	DNSSeeds []DNSSeed

	// FixedSeeds are packed IPv4 words, see PackedSeedToIP.
	FixedSeeds []uint32

	LastPOWBlock        int32
	POSStartBlock       int32
	PoolMaxTransactions int
	PoolDummyAddress    string
}

type buildOptions struct {
	logger     ulogger.Logger
	hasher     model.PowHasher
	timeSource TimeSource
	randSource RandSource
	search     bool
	progress   uint64
}

type BuildOption func(*buildOptions)

func WithLogger(logger ulogger.Logger) BuildOption {
	return func(o *buildOptions) {
		o.logger = logger
	}
}

func WithHasher(hasher model.PowHasher) BuildOption {
	return func(o *buildOptions) {
		o.hasher = hasher
	}
}

func WithTimeSource(now TimeSource) BuildOption {
	return func(o *buildOptions) {
		o.timeSource = now
	}
}

func WithRandSource(rnd RandSource) BuildOption {
	return func(o *buildOptions) {
		o.randSource = rnd
	}
}

// WithGenesisSearch lets NewParams search for a genesis nonce when the
// literal one does not reproduce the expected hash. Off by default: a
// mismatch fails construction.
func WithGenesisSearch(search bool) BuildOption {
	return func(o *buildOptions) {
		o.search = search
	}
}

// WithGenesisProgressInterval sets how many nonces a genesis search tries
// between progress log lines.
func WithGenesisProgressInterval(n uint64) BuildOption {
	return func(o *buildOptions) {
		o.progress = n
	}
}

func newBuildOptions(opts []BuildOption) *buildOptions {
	o := &buildOptions{
		hasher:     model.NewScryptHasher(),
		timeSource: DefaultTimeSource,
		randSource: DefaultRandSource,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = ulogger.New("chaincfg")
	}

	return o
}

// NewParams validates cfg, builds and verifies its genesis block and converts
// its fixed seeds. Any inconsistency in the literal constants is returned as a
// configuration error.
func NewParams(ctx context.Context, cfg NetworkConfig, opts ...BuildOption) (*Params, error) {
	o := newBuildOptions(opts)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	alertKey, err := hex.DecodeString(cfg.AlertPubKey)
	if err != nil {
		return nil, errors.NewConfigurationError("[NewParams][%s] invalid alert key", cfg.Name, err)
	}

	builder := NewGenesisBuilder(o.logger, o.hasher, WithSearch(o.search), WithProgressInterval(o.progress))

	genesis, err := builder.Build(ctx, cfg.Genesis)
	if err != nil {
		buildErr := errors.New(errors.ERR_CONFIGURATION, "[NewParams][%s] genesis block", cfg.Name, err)
		buildErr.SetData("network", cfg.Name)

		return nil, buildErr
	}

	prefixes := make(map[AddressKind][]byte, len(cfg.Base58Prefixes))
	for kind, prefix := range cfg.Base58Prefixes {
		prefixes[kind] = append([]byte(nil), prefix...)
	}

	params := &Params{
		Name:                cfg.Name,
		Network:             cfg.Network,
		Net:                 wire.BitcoinNet(binary.LittleEndian.Uint32(cfg.Magic[:])),
		AlertPubKey:         alertKey,
		DefaultPort:         cfg.DefaultPort,
		RPCPort:             cfg.RPCPort,
		DataDir:             cfg.DataDir,
		PowLimit:            new(big.Int).Set(cfg.PowLimit),
		PowLimitBits:        model.BigToCompact(cfg.PowLimit),
		GenesisBlock:        genesis.Block,
		GenesisHash:         genesis.Hash,
		Base58Prefixes:      prefixes,
		DNSSeeds:            append([]DNSSeed(nil), cfg.DNSSeeds...),
		FixedSeeds:          ConvertSeeds(cfg.FixedSeeds, cfg.DefaultPort, o.timeSource, o.randSource),
		LastPOWBlock:        cfg.LastPOWBlock,
		POSStartBlock:       cfg.POSStartBlock,
		PoolMaxTransactions: cfg.PoolMaxTransactions,
		PoolDummyAddress:    cfg.PoolDummyAddress,
	}

	o.logger.Infof("[NewParams] %s: magic %x, port %d, rpc port %d, genesis %s",
		params.Name, params.MagicBytes(), params.DefaultPort, params.RPCPort, params.GenesisHash)

	return params, nil
}

func (cfg *NetworkConfig) validate() error {
	if cfg.Name == "" {
		return errors.NewConfigurationError("[NewParams] network name is empty")
	}

	if cfg.DefaultPort == 0 || cfg.RPCPort == 0 {
		return errors.NewConfigurationError("[NewParams][%s] ports must be set, got %d and %d", cfg.Name, cfg.DefaultPort, cfg.RPCPort)
	}

	if cfg.PowLimit == nil || cfg.PowLimit.Sign() <= 0 {
		return errors.NewConfigurationError("[NewParams][%s] proof of work limit must be positive", cfg.Name)
	}

	if target := model.CompactToBig(cfg.Genesis.Bits); target.Cmp(cfg.PowLimit) > 0 {
		return errors.NewConfigurationError("[NewParams][%s] genesis bits %08x are easier than the proof of work limit", cfg.Name, cfg.Genesis.Bits)
	}

	for _, kind := range AddressKinds {
		if len(cfg.Base58Prefixes[kind]) == 0 {
			return errors.NewConfigurationError("[NewParams][%s] missing base58 prefix for %s", cfg.Name, kind)
		}
	}

	return nil
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash. It only differs from the one available in chainhash in that
// it panics on an error since it will only (and must only) be called with
// hard-coded, and therefore known good, hashes.
func newHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		// Ordinarily I don't like panics in library code since it
		// can take applications down without them having a chance to
		// recover which is extremely annoying, however an exception is
		// being made in this case because the only way this can panic
		// is if there is an error in the hard-coded hashes.  Thus it
		// will only ever potentially panic on init and therefore is
		// 100% predictable.
		panic(err)
	}

	return hash
}
