package settings

import (
	"path/filepath"

	"github.com/stycoin/stynode/chaincfg"
)

func NewSettings() *Settings {
	return &Settings{
		ServiceName: getString("serviceName", "stynode"),
		Network:     getString("network", "mainnet"),
		Testnet:     getBool("testnet", false),
		DataFolder:  getString("dataFolder", "data"),
		Log: LogSettings{
			Level:      getString("logLevel", "INFO"),
			LoggerType: getString("logger", "zerolog"),
			PrettyLogs: getBool("PRETTY_LOGS", true),
		},
		Genesis: GenesisSettings{
			Search:           getBool("genesis_search", false),
			ProgressInterval: getInt("genesis_progressInterval", 1<<16),
		},
	}
}

// SelectedNetwork resolves the network to run on. The testnet switch wins
// over the network name so a single flag is enough to move off mainnet.
func (s *Settings) SelectedNetwork() (chaincfg.Network, error) {
	if s.Testnet {
		return chaincfg.TestNet, nil
	}

	return chaincfg.ParseNetwork(s.Network)
}

// UseTestnet is the boolean start-up switch handed to the parameter registry.
func (s *Settings) UseTestnet() (bool, error) {
	network, err := s.SelectedNetwork()
	if err != nil {
		return false, err
	}

	return network == chaincfg.TestNet, nil
}

// NetworkDataFolder is the data folder of params' network, the data folder
// itself for the main network.
func (s *Settings) NetworkDataFolder(params *chaincfg.Params) string {
	if params.DataDir == "" {
		return s.DataFolder
	}

	return filepath.Join(s.DataFolder, params.DataDir)
}
