package settings

type LogSettings struct {
	Level      string
	LoggerType string
	PrettyLogs bool
}

type GenesisSettings struct {
	// Search allows a nonce search at start-up when the compiled-in nonce no
	// longer reproduces the expected genesis hash.
	Search bool

	// ProgressInterval is the number of nonces between search progress lines.
	ProgressInterval int
}

type Settings struct {
	ServiceName string
	Network     string
	Testnet     bool
	DataFolder  string
	Log         LogSettings
	Genesis     GenesisSettings
}
