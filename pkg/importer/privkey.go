package importer

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"math/big"
	"regexp"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"keyimport-core/pkg/address"
	"keyimport-core/pkg/curveguard"
)

// Dispatch order inside ParsePrivateKey, first match wins. The patterns are
// anchored so a matched-but-invalid candidate fails loudly instead of
// falling through to a weaker interpretation.
var (
	wifRe     = regexp.MustCompile(`^[5KL][1-9A-HJ-NP-Za-km-z]{50,51}$`)
	wifTestRe = regexp.MustCompile(`^[9c][1-9A-HJ-NP-Za-km-z]{50,51}$`)
	miniRe    = regexp.MustCompile(`^S[1-9A-HJ-NP-Za-km-z]{21,29}$`)
	hexKeyRe  = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)
	base64Re  = regexp.MustCompile(`^[A-Za-z0-9+/]{43}=$`)
	decimalRe = regexp.MustCompile(`^[0-9]{10,}$`)
)

// guardScalar runs the curve guard and maps its failures onto the import
// error contract.
func guardScalar(b []byte) error {
	if err := curveguard.Validate(b); err != nil {
		return NewImportError(ErrCodeInvalidKeyOnCurve, err.Error())
	}
	return nil
}

// ParsePrivateKey turns any supported single-key encoding into a unified
// single_key result. Non-WIF branches pipe their raw 32 bytes through the
// curve guard and re-encode to WIF so downstream consumers only ever see
// WIF plus a compression flag. The preview address is best-effort.
func ParsePrivateKey(text string, opts Options) (*ImportResult, error) {
	text = strings.TrimSpace(text)

	switch {
	case wifRe.MatchString(text):
		return parseWIF(text, opts)
	case wifTestRe.MatchString(text):
		// Probe the testnet decode so the caller gets a precise rejection
		// instead of a generic format error.
		if wif, err := btcutil.DecodeWIF(text); err == nil && wif.IsForNet(&chaincfg.TestNet3Params) {
			return nil, errTestnetRejected
		}
		return nil, errInvalidFormat
	case miniRe.MatchString(text):
		return parseMiniKey(text, opts)
	case hexKeyRe.MatchString(text):
		raw, _ := hex.DecodeString(text)
		return resultFromRawKey(raw, FormatHexPrivkey, opts)
	case base64Re.MatchString(text):
		raw, err := base64.StdEncoding.DecodeString(text)
		if err != nil || len(raw) != 32 {
			return nil, errInvalidFormat
		}
		return resultFromRawKey(raw, FormatBase64Privkey, opts)
	case decimalRe.MatchString(text):
		return parseDecimalKey(text, opts)
	}

	return nil, errInvalidFormat
}

func parseWIF(text string, opts Options) (*ImportResult, error) {
	wif, err := btcutil.DecodeWIF(text)
	if err != nil {
		return nil, NewImportError(ErrCodeInvalidChecksum, "WIF checksum does not validate")
	}
	if !wif.IsForNet(&chaincfg.MainNetParams) {
		return nil, errTestnetRejected
	}

	format := FormatWIFCompressed
	if !wif.CompressPubKey {
		format = FormatWIFUncompressed
	}
	result := &ImportResult{
		Type:         ResultSingleKey,
		SourceFormat: format,
		WIF:          wif.String(),
		Compressed:   wif.CompressPubKey,
	}
	attachKeyPreview(result, wif.PrivKey, wif.CompressPubKey, opts)
	return result, nil
}

// parseMiniKey handles Casascius mini private keys: well-formed when
// SHA256(key + "?") starts with a zero byte, actual key = SHA256(key).
func parseMiniKey(text string, opts Options) (*ImportResult, error) {
	typoCheck := sha256.Sum256([]byte(text + "?"))
	if typoCheck[0] != 0x00 {
		return nil, NewImportError(ErrCodeInvalidChecksum, "mini private key fails its typo check")
	}
	raw := sha256.Sum256([]byte(text))
	return resultFromRawKey(raw[:], FormatMiniPrivkey, opts)
}

func parseDecimalKey(text string, opts Options) (*ImportResult, error) {
	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, errInvalidFormat
	}
	if n.BitLen() > 256 {
		return nil, NewImportError(ErrCodeInvalidKeyOnCurve,
			"decimal value does not fit in 32 bytes")
	}
	raw := make([]byte, 32)
	n.FillBytes(raw)
	return resultFromRawKey(raw, FormatDecimalPrivkey, opts)
}

// resultFromRawKey is the shared tail for every non-WIF branch: curve
// guard, key construction, mainnet WIF re-encode, preview.
func resultFromRawKey(raw []byte, format ImportFormat, opts Options) (*ImportResult, error) {
	if err := guardScalar(raw); err != nil {
		return nil, err
	}

	priv, _ := btcec.PrivKeyFromBytes(raw)
	compressed := format != FormatBrainwallet
	wif, err := btcutil.NewWIF(priv, &chaincfg.MainNetParams, compressed)
	if err != nil {
		return nil, NewImportError(ErrCodeUnknown, "re-encoding private key to WIF failed")
	}

	result := &ImportResult{
		Type:         ResultSingleKey,
		SourceFormat: format,
		WIF:          wif.String(),
		Compressed:   compressed,
	}
	attachKeyPreview(result, priv, compressed, opts)
	return result, nil
}

// attachKeyPreview derives a display address for the caller-selected script
// type. Failures are swallowed: the preview is never fatal.
func attachKeyPreview(result *ImportResult, priv *btcec.PrivateKey, compressed bool, opts Options) {
	gen := address.NewGenerator(&chaincfg.MainNetParams)
	script := opts.script()
	if !compressed {
		// Segwit and taproot commit to compressed keys only; an
		// uncompressed key previews as legacy P2PKH regardless.
		addr, err := gen.EncodeLegacyUncompressed(priv.PubKey())
		if err == nil {
			result.PreviewAddress = addr
		}
		return
	}
	addr, err := gen.Encode(priv.PubKey(), script)
	if err == nil {
		result.PreviewAddress = addr
	}
}
