package importer

import (
	"keyimport-core/pkg/address"
	"keyimport-core/pkg/derive"
)

// ScriptType selects the address family used for preview addresses and for
// defaulting the BIP purpose during derivation.
type ScriptType = address.ScriptType

const (
	ScriptP2WPKH    = address.ScriptP2WPKH
	ScriptP2SHP2WPK = address.ScriptP2SHP2WPK
	ScriptP2PKH     = address.ScriptP2PKH
	ScriptP2TR      = address.ScriptP2TR
)

// ImportResultType tags the variant an ImportResult carries.
type ImportResultType string

const (
	ResultHD        ImportResultType = "hd"
	ResultSingleKey ImportResultType = "single_key"
	ResultKeySet    ImportResultType = "key_set"
	ResultWatchOnly ImportResultType = "watch_only"
	ResultWatchXpub ImportResultType = "watch_xpub"
)

// DerivationPreset names a standard derivation scheme.
type DerivationPreset = derive.Preset

const (
	PresetHD     = derive.PresetHD
	PresetBIP32  = derive.PresetBIP32
	PresetBIP44  = derive.PresetBIP44
	PresetBIP49  = derive.PresetBIP49
	PresetBIP84  = derive.PresetBIP84
	PresetBIP86  = derive.PresetBIP86
	PresetCustom = derive.PresetCustom
)

// DerivationPathConfig selects which derivation the derivation helper
// applies when computing preview addresses.
type DerivationPathConfig = derive.PathConfig

// ImportedKey is one row extracted from a multi-key source (dumpwallet,
// Electrum imported keystores).
type ImportedKey struct {
	WIF        string `json:"-"`
	Compressed bool   `json:"compressed"`
	Label      string `json:"label,omitempty"`
	Timestamp  int64  `json:"timestamp,omitempty"`
	Address    string `json:"address,omitempty"`
	HDKeypath  string `json:"hdKeypath,omitempty"`
	IsChange   bool   `json:"isChange,omitempty"`
}

// ParsedDescriptor is one classified output descriptor.
type ParsedDescriptor struct {
	Raw            string     `json:"-"`
	ScriptType     ScriptType `json:"scriptType"`
	HasPrivateKey  bool       `json:"hasPrivateKey"`
	Xprv           string     `json:"-"`
	Fingerprint    string     `json:"fingerprint,omitempty"`
	DerivationPath string     `json:"derivationPath,omitempty"`
	IsInternal     bool       `json:"isInternal"`
}

// ImportResult is the single uniform output of a successful import. The
// Type tag decides which fields are populated; a result never carries both
// secret material and a watch-only tag. PreviewAddress and Fingerprint are
// safe to display and log.
type ImportResult struct {
	Type         ImportResultType `json:"type"`
	SourceFormat ImportFormat     `json:"sourceFormat"`

	// hd
	Mnemonic   string `json:"-"`
	Passphrase string `json:"-"`
	Seed       []byte `json:"-"`
	Xprv       string `json:"-"`

	// single_key
	WIF        string `json:"-"`
	Compressed bool   `json:"compressed,omitempty"`

	// key_set
	Keys []ImportedKey `json:"keys,omitempty"`

	// watch_only / watch_xpub
	Xpub string `json:"xpub,omitempty"`

	// descriptor imports keep the per-descriptor breakdown
	Descriptors []ParsedDescriptor `json:"descriptors,omitempty"`

	// Safe preview data, never secret. Preview derivation is best-effort;
	// absence is not an error.
	PreviewAddress string `json:"previewAddress,omitempty"`
	Fingerprint    string `json:"fingerprint,omitempty"`

	// Optional metadata from file sources.
	BestBlockHeight int64 `json:"bestBlockHeight,omitempty"`
	CreatedAt       int64 `json:"createdAt,omitempty"`
}

// Options carries per-call knobs for Import. The zero value is usable:
// mainnet, native segwit previews, default derivation, 1 MiB size cap.
type Options struct {
	// Passphrase is the optional BIP39 passphrase ("25th word").
	Passphrase string
	// Password unlocks BIP38-encrypted keys.
	Password string
	// Script selects the preview address family. Defaults to ScriptP2WPKH.
	Script ScriptType
	// Derivation overrides the default derivation for hd sources.
	Derivation *DerivationPathConfig
	// Filename disambiguates file-type detection. Optional.
	Filename string
	// MaxInputSize caps accepted input length in bytes. Zero means the
	// package default.
	MaxInputSize int
}

// DefaultMaxInputSize bounds file-sourced input. Wallet exports are small;
// anything bigger is not key material.
const DefaultMaxInputSize = 1 << 20

func (o Options) script() ScriptType {
	if o.Script == "" {
		return ScriptP2WPKH
	}
	return o.Script
}

func (o Options) maxInputSize() int {
	if o.MaxInputSize <= 0 {
		return DefaultMaxInputSize
	}
	return o.MaxInputSize
}
