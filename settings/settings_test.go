package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stycoin/stynode/chaincfg"
)

// check settings object is initialised
func TestInitialiseSettings(t *testing.T) {
	tSettings := NewSettings()

	require.Equal(t, "stynode", tSettings.ServiceName)
	require.Equal(t, "mainnet", tSettings.Network)
	require.False(t, tSettings.Testnet)
	require.Equal(t, "data", tSettings.DataFolder)
	require.Equal(t, "INFO", tSettings.Log.Level)
	require.False(t, tSettings.Genesis.Search)
	require.Equal(t, 1<<16, tSettings.Genesis.ProgressInterval)
}

func TestSelectedNetwork(t *testing.T) {
	tests := []struct {
		name     string
		network  string
		testnet  string
		expected chaincfg.Network
	}{
		{"Default mainnet", "", "", chaincfg.MainNet},
		{"Explicit testnet name", "testnet", "", chaincfg.TestNet},
		{"Testnet switch", "", "true", chaincfg.TestNet},
		{"Testnet switch wins", "mainnet", "true", chaincfg.TestNet},
		{"Explicit false", "mainnet", "false", chaincfg.MainNet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.network != "" {
				t.Setenv("network", tt.network)
			}

			if tt.testnet != "" {
				t.Setenv("testnet", tt.testnet)
			}

			tSettings := NewSettings()

			network, err := tSettings.SelectedNetwork()
			require.NoError(t, err)
			require.Equal(t, tt.expected, network)

			useTestnet, err := tSettings.UseTestnet()
			require.NoError(t, err)
			require.Equal(t, tt.expected == chaincfg.TestNet, useTestnet)
		})
	}
}

func TestSelectedNetwork_Unknown(t *testing.T) {
	tSettings := NewSettings()
	tSettings.Network = "regtest"

	_, err := tSettings.SelectedNetwork()
	require.Error(t, err)

	_, err = tSettings.UseTestnet()
	require.Error(t, err)
}

func TestNetworkDataFolder(t *testing.T) {
	tSettings := NewSettings()
	tSettings.DataFolder = "/var/lib/stynode"

	require.Equal(t, "/var/lib/stynode", tSettings.NetworkDataFolder(&chaincfg.Params{}))
	require.Equal(t, filepath.Join("/var/lib/stynode", "testnet"), tSettings.NetworkDataFolder(&chaincfg.Params{DataDir: "testnet"}))
}
