// Package params holds the stynode commands that work on the network
// parameter registry: start-up selection, printing the active parameters and
// base58 address encoding for a network.
package params

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	"github.com/stycoin/stynode/chaincfg"
	"github.com/stycoin/stynode/errors"
	"github.com/stycoin/stynode/settings"
	"github.com/stycoin/stynode/ulogger"
)

// Start builds the registry, selects the network once from the testnet flag
// and the settings, and seals the selection for the life of the process.
func Start(ctx context.Context, logger ulogger.Logger, tSettings *settings.Settings, testnetFlag bool) (*chaincfg.Registry, error) {
	useTestnet, err := tSettings.UseTestnet()
	if err != nil {
		return nil, err
	}

	registry, err := chaincfg.NewRegistry(ctx, logger,
		chaincfg.WithGenesisSearch(tSettings.Genesis.Search),
		chaincfg.WithGenesisProgressInterval(progressInterval(tSettings)),
	)
	if err != nil {
		return nil, err
	}

	if err = registry.SelectFromStartupFlag(ctx, testnetFlag || useTestnet); err != nil {
		return nil, err
	}

	registry.Seal()

	current := registry.Current()
	logger.Infof("[Start] running on %s, magic %x, port %d, genesis %s, data folder %q",
		current.Name, current.MagicBytes(), current.DefaultPort, current.GenesisHash, tSettings.NetworkDataFolder(current))

	return registry, nil
}

func progressInterval(tSettings *settings.Settings) uint64 {
	n, err := safeconversion.IntToUint64(tSettings.Genesis.ProgressInterval)
	if err != nil {
		return 0
	}

	return n
}

// Describe writes a human readable summary of params.
func Describe(w io.Writer, params *chaincfg.Params) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	magic := params.MagicBytes()

	rows := [][2]string{
		{"network", params.Name},
		{"magic", hex.EncodeToString(magic[:])},
		{"port", params.DefaultPortString()},
		{"rpc port", params.RPCPortString()},
		{"data dir", params.DataDir},
		{"pow limit bits", fmt.Sprintf("%08x", params.PowLimitBits)},
		{"genesis difficulty", params.GenesisBlock.Header.Bits.CalculateDifficulty().Text('g', 6)},
		{"genesis", params.GenesisHash.String()},
		{"merkle root", params.GenesisBlock.Header.HashMerkleRoot.String()},
		{"last pow block", fmt.Sprintf("%d", params.LastPOWBlock)},
		{"pos start block", fmt.Sprintf("%d", params.POSStartBlock)},
		{"fixed seeds", fmt.Sprintf("%d", len(params.FixedSeeds))},
	}

	for _, seed := range params.DNSSeeds {
		rows = append(rows, [2]string{"dns seed", seed.String()})
	}

	for _, kind := range chaincfg.AddressKinds {
		rows = append(rows, [2]string{strings.ToLower(kind.String()), hex.EncodeToString(params.Prefix(kind))})
	}

	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// ParseAddressKind accepts the kind names printed by Describe in any case.
func ParseAddressKind(name string) (chaincfg.AddressKind, error) {
	for _, kind := range chaincfg.AddressKinds {
		if strings.EqualFold(kind.String(), strings.TrimSpace(name)) {
			return kind, nil
		}
	}

	return 0, errors.NewInvalidArgumentError("unknown address kind %q", name)
}

// EncodeAddress encodes a hex payload as an address of kind on params' network.
func EncodeAddress(params *chaincfg.Params, kindName string, payloadHex string) (string, error) {
	kind, err := ParseAddressKind(kindName)
	if err != nil {
		return "", err
	}

	payload, err := hex.DecodeString(payloadHex)
	if err != nil {
		return "", errors.NewInvalidArgumentError("payload is not hex", err)
	}

	return params.EncodeAddress(kind, payload)
}

// DecodeAddress returns the kind and hex payload of address on params' network.
func DecodeAddress(params *chaincfg.Params, address string) (string, string, error) {
	kind, payload, err := params.DecodeAddress(address)
	if err != nil {
		return "", "", err
	}

	return kind.String(), hex.EncodeToString(payload), nil
}
