package importer

import "crypto/sha256"

// ParseBrainwallet recovers a legacy brainwallet: the private key is the
// SHA256 of the UTF-8 passphrase, validated through the curve guard. This
// exists solely to recover old funds; nothing in this repository offers a
// way to create such a wallet.
func ParseBrainwallet(passphrase string, opts Options) (*ImportResult, error) {
	if passphrase == "" {
		return nil, NewImportError(ErrCodeInvalidFormat, "empty brainwallet passphrase")
	}
	raw := sha256.Sum256([]byte(passphrase))
	// Brainwallet-era tooling used uncompressed keys; resultFromRawKey
	// keys the compression flag off the brainwallet format.
	return resultFromRawKey(raw[:], FormatBrainwallet, opts)
}
