package importer

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"keyimport-core/pkg/derive"
)

// extendedKeyLen is the serialized BIP32 payload without its checksum.
const extendedKeyLen = 78

// versionEntry describes one SLIP-132 version prefix.
type versionEntry struct {
	format    ImportFormat
	script    ScriptType
	isMainnet bool
	isPrivate bool
	label     string
}

// versionTable maps the 4-byte version prefix (hex) of an extended key to
// its meaning. Testnet prefixes are present so they can be rejected with a
// precise error instead of an unknown-version one.
var versionTable = map[string]versionEntry{
	"0488ade4": {FormatXprv, ScriptP2PKH, true, true, "BIP32 extended private key (xprv)"},
	"049d7878": {FormatYprv, ScriptP2SHP2WPK, true, true, "wrapped-segwit extended private key (yprv)"},
	"04b2430c": {FormatZprv, ScriptP2WPKH, true, true, "native-segwit extended private key (zprv)"},
	"0295b005": {FormatYprvMult, ScriptP2SHP2WPK, true, true, "multisig wrapped-segwit extended private key (Yprv)"},
	"02aa7a99": {FormatZprvMult, ScriptP2WPKH, true, true, "multisig native-segwit extended private key (Zprv)"},

	"0488b21e": {FormatXpub, ScriptP2PKH, true, false, "BIP32 extended public key (xpub)"},
	"049d7cb2": {FormatYpub, ScriptP2SHP2WPK, true, false, "wrapped-segwit extended public key (ypub)"},
	"04b24746": {FormatZpub, ScriptP2WPKH, true, false, "native-segwit extended public key (zpub)"},
	"0295b43f": {FormatYpubMult, ScriptP2SHP2WPK, true, false, "multisig wrapped-segwit extended public key (Ypub)"},
	"02aa7ed3": {FormatZpubMult, ScriptP2WPKH, true, false, "multisig native-segwit extended public key (Zpub)"},

	"04358394": {FormatXprv, ScriptP2PKH, false, true, "testnet extended private key (tprv)"},
	"044a4e28": {FormatYprv, ScriptP2SHP2WPK, false, true, "testnet extended private key (uprv)"},
	"045f18bc": {FormatZprv, ScriptP2WPKH, false, true, "testnet extended private key (vprv)"},
	"043587cf": {FormatXpub, ScriptP2PKH, false, false, "testnet extended public key (tpub)"},
	"044a5262": {FormatYpub, ScriptP2SHP2WPK, false, false, "testnet extended public key (upub)"},
	"045f1cf6": {FormatZpub, ScriptP2WPKH, false, false, "testnet extended public key (vpub)"},
}

var (
	xprvVersion = []byte{0x04, 0x88, 0xad, 0xe4}
	xpubVersion = []byte{0x04, 0x88, 0xb2, 0x1e}
)

// decodeBase58Check decodes s and verifies its trailing 4-byte double-SHA
// checksum, returning the payload without the checksum.
func decodeBase58Check(s string) ([]byte, error) {
	decoded := base58.Decode(s)
	if len(decoded) < 5 {
		return nil, errInvalidFormat
	}
	payload, checksum := decoded[:len(decoded)-4], decoded[len(decoded)-4:]
	expected := chainhash.DoubleHashB(payload)[:4]
	for i := range checksum {
		if checksum[i] != expected[i] {
			return nil, NewImportError(ErrCodeInvalidChecksum, "base58 checksum does not validate")
		}
	}
	return payload, nil
}

// encodeBase58Check is the inverse of decodeBase58Check.
func encodeBase58Check(payload []byte) string {
	checksum := chainhash.DoubleHashB(payload)[:4]
	return base58.Encode(append(append([]byte{}, payload...), checksum...))
}

// lookupExtendedVersion classifies a candidate extended key string without
// fully parsing it. Used by the detector.
func lookupExtendedVersion(text string) (versionEntry, []byte, error) {
	payload, err := decodeBase58Check(text)
	if err != nil {
		return versionEntry{}, nil, err
	}
	if len(payload) != extendedKeyLen {
		return versionEntry{}, nil, errInvalidFormat
	}
	entry, ok := versionTable[hex.EncodeToString(payload[:4])]
	if !ok {
		return versionEntry{}, nil, NewImportError(ErrCodeUnsupportedVersion,
			"unrecognized extended key version prefix")
	}
	return entry, payload, nil
}

// ParseExtendedKey handles the xprv family and, for the pub prefixes,
// produces watch-only results. Non-xprv mainnet prefixes are rewritten in
// place to the xprv/xpub version bytes so one downstream derivation
// implementation suffices; this is format normalization, not a network
// change.
func ParseExtendedKey(text string, opts Options) (*ImportResult, error) {
	entry, payload, err := lookupExtendedVersion(text)
	if err != nil {
		return nil, err
	}
	if !entry.isMainnet {
		return nil, errTestnetRejected
	}

	if entry.isPrivate {
		// Byte 45 is the zero padding marker in front of the 32-byte
		// private key. Anything else means the payload carries a public
		// key despite its version prefix.
		if payload[45] != 0x00 {
			return nil, NewImportError(ErrCodeNoPrivateKeys,
				"extended key payload holds a public key, not a private key")
		}
		return extendedPrivateResult(entry, payload, opts)
	}
	return extendedWatchResult(entry, payload, text, opts)
}

func extendedPrivateResult(entry versionEntry, payload []byte, opts Options) (*ImportResult, error) {
	normalized := append(append([]byte{}, xprvVersion...), payload[4:]...)
	node, err := hdkeychain.NewKeyFromString(encodeBase58Check(normalized))
	if err != nil {
		return nil, errInvalidFormat
	}

	result := &ImportResult{
		Type:         ResultHD,
		SourceFormat: entry.format,
		Xprv:         node.String(),
	}
	if fp, err := derive.Fingerprint(node); err == nil {
		result.Fingerprint = fp
	}
	attachNodePreview(result, node, entry.script, opts)
	return result, nil
}

func extendedWatchResult(entry versionEntry, payload []byte, original string, opts Options) (*ImportResult, error) {
	normalized := append(append([]byte{}, xpubVersion...), payload[4:]...)
	node, err := hdkeychain.NewKeyFromString(encodeBase58Check(normalized))
	if err != nil {
		return nil, errInvalidFormat
	}

	result := &ImportResult{
		Type:         ResultWatchXpub,
		SourceFormat: entry.format,
		Xpub:         original,
	}
	if fp, err := derive.Fingerprint(node); err == nil {
		result.Fingerprint = fp
	}
	// Public nodes can only complete non-hardened segments; preview stays
	// best-effort like everywhere else.
	attachNodePreview(result, node, entry.script, opts)
	return result, nil
}

// attachNodePreview runs the depth-aware derivation helper and swallows
// failures.
func attachNodePreview(result *ImportResult, node *hdkeychain.ExtendedKey, script ScriptType, opts Options) {
	cfg := derive.PathConfig{Preset: derive.PresetHD}
	if opts.Derivation != nil {
		cfg = *opts.Derivation
	}
	if opts.Script != "" {
		script = opts.Script
	}
	addr, err := derive.PreviewAddress(node, cfg, script)
	if err == nil {
		result.PreviewAddress = addr
	}
}
