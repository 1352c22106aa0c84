package importer

// ImportFormat classifies raw input before any parser runs.
type ImportFormat string

const (
	// Phrase formats
	FormatBIP39Mnemonic ImportFormat = "bip39_mnemonic"
	FormatElectrumSeed  ImportFormat = "electrum_seed"
	FormatBrainwallet   ImportFormat = "brainwallet"

	// Raw seed
	FormatSeedBytesHex ImportFormat = "seed_bytes_hex"

	// Single-key formats
	FormatWIFCompressed   ImportFormat = "wif_compressed"
	FormatWIFUncompressed ImportFormat = "wif_uncompressed"
	FormatHexPrivkey      ImportFormat = "hex_privkey"
	FormatDecimalPrivkey  ImportFormat = "decimal_privkey"
	FormatBase64Privkey   ImportFormat = "base64_privkey"
	FormatMiniPrivkey     ImportFormat = "mini_privkey"
	FormatBIP38Encrypted  ImportFormat = "bip38_encrypted"

	// Extended private keys
	FormatXprv     ImportFormat = "xprv"
	FormatYprv     ImportFormat = "yprv"
	FormatZprv     ImportFormat = "zprv"
	FormatYprvMult ImportFormat = "Yprv"
	FormatZprvMult ImportFormat = "Zprv"

	// Extended public keys (watch-only)
	FormatXpub     ImportFormat = "xpub"
	FormatYpub     ImportFormat = "ypub"
	FormatZpub     ImportFormat = "zpub"
	FormatYpubMult ImportFormat = "Ypub"
	FormatZpubMult ImportFormat = "Zpub"

	// File / descriptor formats
	FormatDescriptorSet ImportFormat = "descriptor_set"
	FormatDumpwallet    ImportFormat = "dumpwallet"
	FormatElectrumJSON  ImportFormat = "electrum_json"
	FormatWalletDat     ImportFormat = "wallet_dat"
)

// Confidence grades how certain the detector is about a classification.
type Confidence string

const (
	ConfidenceDefinite Confidence = "definite"
	ConfidenceLikely   Confidence = "likely"
	ConfidencePossible Confidence = "possible"
)

// DetectionResult is the detector's verdict on a piece of raw input.
// Label is a human-readable description and must never contain secret bytes.
type DetectionResult struct {
	Format        ImportFormat   `json:"format"`
	Confidence    Confidence     `json:"confidence"`
	Label         string         `json:"label"`
	NeedsPassword bool           `json:"needsPassword,omitempty"`
	IsMainnet     bool           `json:"isMainnet"`
	WordCount     int            `json:"wordCount,omitempty"`
	Alternatives  []ImportFormat `json:"alternatives,omitempty"`
	IsWatchOnly   bool           `json:"isWatchOnly,omitempty"`
}
