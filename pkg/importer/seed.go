package importer

import (
	"encoding/hex"
	"regexp"
	"strings"

	"keyimport-core/pkg/derive"
)

var seedHexRe = regexp.MustCompile(`^(?:[0-9a-fA-F]{2}){16,64}$`)

// ParseSeedBytes accepts 16-64 raw seed bytes as hex and builds a BIP32
// master node from them. All-zero seeds are rejected.
func ParseSeedBytes(text string, opts Options) (*ImportResult, error) {
	text = strings.TrimSpace(text)
	if !seedHexRe.MatchString(text) {
		return nil, NewImportError(ErrCodeInvalidFormat,
			"seed must be 32-128 hex characters of even length")
	}
	seed, err := hex.DecodeString(text)
	if err != nil {
		return nil, errInvalidFormat
	}

	allZero := true
	for _, b := range seed {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return nil, NewImportError(ErrCodeInvalidFormat, "all-zero seed is not usable")
	}

	node, err := derive.MasterFromSeed(seed)
	if err != nil {
		return nil, NewImportError(ErrCodeInvalidFormat, "seed does not produce a usable master key")
	}

	result := &ImportResult{
		Type:         ResultHD,
		SourceFormat: FormatSeedBytesHex,
		Seed:         seed,
		Xprv:         node.String(),
	}
	if fp, err := derive.Fingerprint(node); err == nil {
		result.Fingerprint = fp
	}
	attachNodePreview(result, node, opts.script(), opts)
	return result, nil
}
