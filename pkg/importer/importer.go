// Package importer turns user-supplied key material in any supported
// encoding into a uniform ImportResult. Parsers validate strictly and fail
// with stable error codes; no code path here logs or embeds input bytes in
// an error message.
package importer

import (
	"fmt"
	"strings"

	"keyimport-core/pkg/derive"
)

// Import detects the format of text and runs the matching parser. Testnet
// material is rejected before any parser sees it. Input larger than the
// configured cap fails fast without being scanned.
func Import(text string, opts Options) (*ImportResult, error) {
	if len(text) > opts.maxInputSize() {
		return nil, NewImportError(ErrCodeFileTooLarge,
			fmt.Sprintf("input of %d bytes exceeds the %d byte limit", len(text), opts.maxInputSize()))
	}

	var det *DetectionResult
	if opts.Filename != "" {
		det = DetectFile(text, opts.Filename)
	} else {
		det = Detect(text)
	}
	if det == nil {
		return nil, errInvalidFormat
	}
	if !det.IsMainnet {
		return nil, errTestnetRejected
	}
	// The phrase heuristic is typing assistance, not acceptance: hashing
	// arbitrary text into a key happens only on an explicit format choice.
	if det.Format == FormatBrainwallet && det.Confidence == ConfidencePossible {
		return nil, NewImportError(ErrCodeInvalidFormat,
			"free-text input is only imported as a brainwallet passphrase on explicit request")
	}
	return ImportAs(det.Format, text, opts)
}

// ImportAs parses text as an explicitly chosen format, bypassing detection.
// Callers use it to resolve detection Alternatives, e.g. reading 64 hex
// characters as seed bytes instead of a raw private key.
func ImportAs(format ImportFormat, text string, opts Options) (*ImportResult, error) {
	trimmed := strings.TrimSpace(text)

	switch format {
	case FormatBIP39Mnemonic:
		result, err := ParseMnemonic(trimmed, opts.Passphrase)
		if err != nil {
			return nil, err
		}
		return finishHD(result, opts)

	case FormatElectrumSeed:
		result, err := ParseElectrumSeed(trimmed, opts.Passphrase)
		if err != nil {
			return nil, err
		}
		return finishHD(result, opts)

	case FormatBrainwallet:
		// Detection classified the trimmed string; hash those same bytes.
		return ParseBrainwallet(trimmed, opts)

	case FormatSeedBytesHex:
		return ParseSeedBytes(trimmed, opts)

	case FormatWIFCompressed, FormatWIFUncompressed, FormatHexPrivkey,
		FormatDecimalPrivkey, FormatBase64Privkey, FormatMiniPrivkey:
		return ParsePrivateKey(trimmed, opts)

	case FormatBIP38Encrypted:
		if opts.Password == "" {
			return nil, NewImportError(ErrCodeWrongPassword,
				"encrypted key requires a password")
		}
		return NewBIP38Decrypter(nil).Decrypt(trimmed, opts.Password, opts)

	case FormatXprv, FormatYprv, FormatZprv, FormatYprvMult, FormatZprvMult,
		FormatXpub, FormatYpub, FormatZpub, FormatYpubMult, FormatZpubMult:
		return ParseExtendedKey(trimmed, opts)

	case FormatDescriptorSet:
		return ParseDescriptors(text, opts)

	case FormatDumpwallet:
		return ParseDumpwallet(text, opts)

	case FormatElectrumJSON:
		return ParseElectrumJSON(text, opts)

	case FormatWalletDat:
		return nil, NewImportError(ErrCodeInvalidFormat,
			"wallet.dat databases can be detected but not imported")
	}

	return nil, errInvalidFormat
}

// finishHD completes an hd result that carries only its seed: master node,
// fingerprint and a best-effort preview address.
func finishHD(result *ImportResult, opts Options) (*ImportResult, error) {
	if len(result.Seed) == 0 || result.Xprv != "" {
		return result, nil
	}
	node, err := derive.MasterFromSeed(result.Seed)
	if err != nil {
		return nil, NewImportError(ErrCodeInvalidKeyOnCurve,
			"seed does not produce a usable master key")
	}
	result.Xprv = node.String()
	if fp, err := derive.Fingerprint(node); err == nil {
		result.Fingerprint = fp
	}
	attachNodePreview(result, node, opts.script(), opts)
	return result, nil
}
