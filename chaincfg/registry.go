package chaincfg

import (
	"context"
	"sync"

	"github.com/looplab/fsm"
	"github.com/stycoin/stynode/errors"
	"github.com/stycoin/stynode/ulogger"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrDuplicateNet describes an error where the parameters for a network
	// could not be registered because its magic is already in use.
	ErrDuplicateNet = errors.New(errors.ERR_CONFIGURATION, "duplicate network")

	// ErrPrefixCollision describes an error where two address prefixes could
	// be confused when decoding.
	ErrPrefixCollision = errors.New(errors.ERR_CONFIGURATION, "address prefix collision")

	// ErrUnknownHDKeyID describes an error where the provided id which
	// is intended to identify the network for a hierarchical deterministic
	// private extended key is not registered.
	ErrUnknownHDKeyID = errors.New(errors.ERR_NOT_FOUND, "unknown hd private extended key bytes")
)

// Registry states and events.
const (
	StateMain    = "MAIN"
	StateTestNet = "TESTNET"

	EventSelectMain    = "SELECT_MAIN"
	EventSelectTestNet = "SELECT_TESTNET"
)

func errInvalidNetwork(network Network) error {
	return errors.NewInvalidArgumentError("unimplemented network %s", network)
}

// Registry holds the parameters of every supported network and which of them
// is active. It is created once at start-up, a network is selected, and the
// registry is sealed before it is handed to the rest of the node, which only
// reads Current().
type Registry struct {
	logger  ulogger.Logger
	params  map[Network]*Params
	index   *prefixIndex
	fsm     *fsm.FSM
	mu      sync.RWMutex
	current *Params
	sealed  bool
}

// NewRegistry builds the main and test network parameters, registers them and
// selects the main network. Any inconsistency in the compiled-in constants is
// returned as a configuration error.
func NewRegistry(ctx context.Context, logger ulogger.Logger, opts ...BuildOption) (*Registry, error) {
	initPrometheusMetrics()

	r := &Registry{
		logger: logger,
		params: make(map[Network]*Params, 2),
		index:  newPrefixIndex(),
	}

	opts = append([]BuildOption{WithLogger(logger)}, opts...)

	configs := []NetworkConfig{MainNetConfig(), TestNetConfig()}
	built := make([]*Params, len(configs))

	// each network hashes its own genesis block, a search on one is cancelled
	// as soon as the other fails
	g, gCtx := errgroup.WithContext(ctx)

	for i, cfg := range configs {
		g.Go(func() error {
			params, err := NewParams(gCtx, cfg, opts...)
			if err != nil {
				return err
			}

			built[i] = params

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// registration order is fixed so collision errors name the same network every time
	for _, params := range built {
		if err := r.Register(params); err != nil {
			return nil, err
		}
	}

	r.fsm = r.newFiniteStateMachine(StateMain)
	r.current = r.params[MainNet]
	r.setActiveNetworkMetric(MainNet)

	return r, nil
}

// newFiniteStateMachine creates the selection state machine. Both states
// accept both events, so selecting the active network again is a no-op.
func (r *Registry) newFiniteStateMachine(initial string) *fsm.FSM {
	return fsm.NewFSM(
		initial,
		fsm.Events{
			{
				Name: EventSelectMain,
				Src:  []string{StateMain, StateTestNet},
				Dst:  StateMain,
			},
			{
				Name: EventSelectTestNet,
				Src:  []string{StateMain, StateTestNet},
				Dst:  StateTestNet,
			},
		},
		fsm.Callbacks{},
	)
}

// Register adds params to the registry. It fails if the network is already
// registered or if its magic or address prefixes clash with a registered one.
func (r *Registry) Register(params *Params) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return errors.NewConfigurationError("[Registry] cannot register %s, registry is sealed", params.Name)
	}

	if _, ok := r.params[params.Network]; ok {
		return errors.NewConfigurationError("[Registry] %s already registered", params.Network, ErrDuplicateNet)
	}

	if err := r.index.register(params); err != nil {
		return err
	}

	r.params[params.Network] = params

	return nil
}

// Select makes network the active one. An unknown network is a caller defect
// and returns an invalid argument error; selecting after Seal returns a
// configuration error. A cancelled ctx leaves the active network unchanged.
func (r *Registry) Select(ctx context.Context, network Network) error {
	var event string

	switch network {
	case MainNet:
		event = EventSelectMain
	case TestNet:
		event = EventSelectTestNet
	default:
		return errInvalidNetwork(network)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return errors.NewConfigurationError("[Registry] cannot select %s, network selection is sealed", network)
	}

	params, ok := r.params[network]
	if !ok {
		return errors.NewConfigurationError("[Registry] %s is not registered", network)
	}

	from := r.fsm.Current()

	if err := r.fsm.Event(ctx, event); err != nil {
		var noTransition fsm.NoTransitionError

		switch {
		case errors.As(err, &noTransition):
		case errors.IsContextError(err):
			// fsm keeps a cancelled transition pending and refuses later events
			r.fsm = r.newFiniteStateMachine(from)

			return errors.NewContextCanceledError("[Registry] selecting %s was cancelled", network, err)
		default:
			return errors.NewProcessingError("[Registry] failed to select %s", network, err)
		}
	}

	if r.current != params {
		r.logger.Infof("[Registry] selected %s parameters", params.Name)
	}

	r.current = params
	r.setActiveNetworkMetric(network)

	return nil
}

// MustSelect is Select for callers that treat an invalid network as a fatal
// programming error.
func (r *Registry) MustSelect(ctx context.Context, network Network) {
	if err := r.Select(ctx, network); err != nil {
		panic(err)
	}
}

// SelectFromStartupFlag selects the test network when testnet is set and the
// main network otherwise.
func (r *Registry) SelectFromStartupFlag(ctx context.Context, testnet bool) error {
	if testnet {
		return r.Select(ctx, TestNet)
	}

	return r.Select(ctx, MainNet)
}

// Seal freezes the selection. The rest of the node only reads from a sealed registry.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sealed = true
}

func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sealed
}

// Current returns the active parameters.
func (r *Registry) Current() *Params {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.current
}

// Network returns the active network.
func (r *Registry) Network() Network {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.fsm.Current() == StateTestNet {
		return TestNet
	}

	return MainNet
}

// State returns the name of the selection state, MAIN or TESTNET.
func (r *Registry) State() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.fsm.Current()
}

// Params returns the parameters of network whether or not it is active.
func (r *Registry) Params(network Network) (*Params, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	params, ok := r.params[network]
	if !ok {
		return nil, errInvalidNetwork(network)
	}

	return params, nil
}

// GetChainParams looks parameters up by network name.
func (r *Registry) GetChainParams(name string) (*Params, error) {
	network, err := ParseNetwork(name)
	if err != nil {
		return nil, err
	}

	return r.Params(network)
}

// IsPubKeyHashAddrID returns whether the id is an identifier known to prefix a
// pay-to-pubkey-hash address on any registered network.
func (r *Registry) IsPubKeyHashAddrID(id byte) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.index.isPubKeyHashAddrID(id)
}

// IsScriptHashAddrID returns whether the id is an identifier known to prefix a
// pay-to-script-hash address on any registered network.
func (r *Registry) IsScriptHashAddrID(id byte) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.index.isScriptHashAddrID(id)
}

// HDPrivateKeyToPublicKeyID accepts a private hierarchical deterministic
// extended key id and returns the associated public key id.  When the provided
// id is not registered, the ErrUnknownHDKeyID error will be returned.
func (r *Registry) HDPrivateKeyToPublicKeyID(id []byte) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.index.hdPrivateKeyToPublicKeyID(id)
}

func (r *Registry) setActiveNetworkMetric(active Network) {
	for network, params := range r.params {
		value := 0.0
		if network == active {
			value = 1
		}

		prometheusActiveNetwork.WithLabelValues(params.Name).Set(value)
	}
}
