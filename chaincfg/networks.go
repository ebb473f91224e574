package chaincfg

import (
	"math/big"

	"github.com/stycoin/stynode/model"
)

var (
	// bigOne is 1 represented as a big.Int.  It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// mainPowLimit is the highest proof of work value a block can have for
	// the main network.  It is the value 2^240 - 1.
	mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 240), bigOne)

	// testNetPowLimit is the highest proof of work value a block can have
	// for the test network.  It is the value 2^240 - 1.
	testNetPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 240), bigOne)
)

// Fixed seed tables. Each entry is an IPv4 address packed with the first
// octet in the low byte, so 1.2.3.4 is 0x04030201. The tables ship empty
// until seed nodes with stable addresses exist.
var (
	mainNetFixedSeeds = []uint32{}
	testNetFixedSeeds = []uint32{}
)

const (
	genesisTimestamp = 1527086153
	genesisNonce     = 160569
	genesisMessage   = "NyTimes.com 2018/05/23 How Muellers.."
	genesisHash      = "000059b00a8735812562b81dabdc4928ec1bab3abf3e806a942069656a002284"
	genesisMerkle    = "9d0721d50597fe829775ab4b574251a7818c4822eb4d505d2fb217e588c426f0"
)

// MainNetConfig returns the definition of the main network.
func MainNetConfig() NetworkConfig {
	return NetworkConfig{
		Name:        "mainnet",
		Network:     MainNet,
		Magic:       [4]byte{0xa1, 0xbc, 0xfe, 0x17},
		AlertPubKey: "04a956420eabbb8a7106385003fef77896538a382a0dcc389ff45f3c98751d9af423a066689757666259351198a8a2a628a1fd644c3232678c5845384c744ff8d7",
		DefaultPort: 15808,
		RPCPort:     63928,
		PowLimit:    mainPowLimit,

		Genesis: GenesisSpec{
			Version:            1,
			Timestamp:          genesisTimestamp,
			TxTimestamp:        genesisTimestamp,
			Bits:               model.BigToCompact(mainPowLimit),
			Nonce:              genesisNonce,
			CoinbaseMessage:    genesisMessage,
			CoinbaseTag:        []byte{0x2a},
			ExpectedHash:       newHashFromStr(genesisHash),
			ExpectedMerkleRoot: newHashFromStr(genesisMerkle),
		},

		Base58Prefixes: map[AddressKind][]byte{
			PubKeyAddress:  {63},
			ScriptAddress:  {85},
			SecretKey:      {153},
			StealthAddress: {40},
			ExtPublicKey:   {0x04, 0x88, 0xb2, 0x1e},
			ExtSecretKey:   {0x04, 0x88, 0xad, 0xe4},
		},

		DNSSeeds: []DNSSeed{
			{Name: "0", Host: "sty-seednode-1.giize.com"},
		},
		FixedSeeds: mainNetFixedSeeds,

		LastPOWBlock:        43200,
		POSStartBlock:       3,
		PoolMaxTransactions: 3,
		PoolDummyAddress:    "CRaVnHZizkREBg6yBzcpy6TBLn4B5GbUva",
	}
}

// TestNetConfig returns the definition of the test network. It shares the
// main network's genesis block, but has its own magic, ports and prefixes so
// nothing from one network is accepted on the other.
func TestNetConfig() NetworkConfig {
	return NetworkConfig{
		Name:        "testnet",
		Network:     TestNet,
		Magic:       [4]byte{0xcd, 0xf2, 0xc0, 0xef},
		AlertPubKey: "04a983220ea7a38a7106385003fef77896538a382a0dcc389cc45f3c98751d9af423a097789757556259351198a8aaa628a1fd644c3232678c5845384c744ff8d7",
		DefaultPort: 15803,
		RPCPort:     63922,
		DataDir:     "testnet",
		PowLimit:    testNetPowLimit,

		Genesis: GenesisSpec{
			Version:            1,
			Timestamp:          genesisTimestamp,
			TxTimestamp:        genesisTimestamp,
			Bits:               model.BigToCompact(testNetPowLimit),
			Nonce:              genesisNonce,
			CoinbaseMessage:    genesisMessage,
			CoinbaseTag:        []byte{0x2a},
			ExpectedHash:       newHashFromStr(genesisHash),
			ExpectedMerkleRoot: newHashFromStr(genesisMerkle),
		},

		Base58Prefixes: map[AddressKind][]byte{
			PubKeyAddress:  {127},
			ScriptAddress:  {196},
			SecretKey:      {239},
			StealthAddress: {43},
			ExtPublicKey:   {0x04, 0x35, 0x87, 0xcf},
			ExtSecretKey:   {0x04, 0x35, 0x83, 0x94},
		},

		DNSSeeds:   []DNSSeed{},
		FixedSeeds: testNetFixedSeeds,

		LastPOWBlock:        0x7fffffff,
		POSStartBlock:       3,
		PoolMaxTransactions: 3,
		PoolDummyAddress:    "CRaVnHZizkREBg6yBzcpy6TBLn4B5GbUva",
	}
}

// NetworkConfigFor returns the literal definition of network.
func NetworkConfigFor(network Network) (NetworkConfig, error) {
	switch network {
	case MainNet:
		return MainNetConfig(), nil
	case TestNet:
		return TestNetConfig(), nil
	default:
		return NetworkConfig{}, errInvalidNetwork(network)
	}
}
