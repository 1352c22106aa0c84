package importer

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"golang.org/x/crypto/pbkdf2"

	"keyimport-core/pkg/derive"
)

// Electrum derives a seed-version tag as HMAC-SHA512("Seed version",
// phrase); the hex prefix tells standard from segwit seeds apart. Phrases
// are strengthened to 64 seed bytes with PBKDF2-HMAC-SHA512 over the
// "electrum" salt, 2048 rounds.
const (
	electrumSeedHMACKey = "Seed version"
	electrumSeedSalt    = "electrum"
	electrumSeedRounds  = 2048
)

// electrumSeedKind classifies a phrase by its version tag. Empty means not
// an Electrum seed.
func electrumSeedKind(phrase string) string {
	mac := hmac.New(sha512.New, []byte(electrumSeedHMACKey))
	mac.Write([]byte(normalizeMnemonic(phrase)))
	tag := hex.EncodeToString(mac.Sum(nil))
	switch {
	case strings.HasPrefix(tag, "01"):
		return "standard"
	case strings.HasPrefix(tag, "100"):
		return "segwit"
	default:
		return ""
	}
}

// ParseElectrumSeed validates an Electrum-native seed phrase and derives
// its 64-byte seed. Electrum seeds are deliberately not BIP39: there is no
// wordlist constraint and no mnemonic checksum, only the version tag.
func ParseElectrumSeed(text, passphrase string) (*ImportResult, error) {
	phrase := normalizeMnemonic(text)
	if phrase == "" {
		return nil, errInvalidFormat
	}
	if electrumSeedKind(phrase) == "" {
		return nil, NewImportError(ErrCodeInvalidChecksum,
			"phrase does not carry an Electrum seed version tag")
	}

	seed := pbkdf2.Key([]byte(phrase), []byte(electrumSeedSalt+passphrase),
		electrumSeedRounds, 64, sha512.New)
	result := &ImportResult{
		Type:         ResultHD,
		SourceFormat: FormatElectrumSeed,
		Mnemonic:     phrase,
		Passphrase:   passphrase,
		Seed:         seed,
	}
	if node, err := derive.MasterFromSeed(seed); err == nil {
		if fp, err := derive.Fingerprint(node); err == nil {
			result.Fingerprint = fp
		}
	}
	return result, nil
}

// electrumWallet is the subset of an Electrum wallet file this importer
// reads.
type electrumWallet struct {
	Keystore  *electrumKeystore `json:"keystore"`
	Addresses *struct {
		Receiving []string `json:"receiving"`
		Change    []string `json:"change"`
	} `json:"addresses"`
}

type electrumKeystore struct {
	Type     string            `json:"type"`
	Seed     string            `json:"seed"`
	Xprv     string            `json:"xprv"`
	Xpub     string            `json:"xpub"`
	Keypairs map[string]string `json:"keypairs"`
}

// ParseElectrumJSON reads an Electrum wallet export. Shapes are tried in
// fixed priority: keystore seed, keystore xprv, imported keypairs, then
// watch-only xpub/addresses. Testnet-prefixed extended keys are rejected.
func ParseElectrumJSON(text string, opts Options) (*ImportResult, error) {
	var wallet electrumWallet
	if err := json.Unmarshal([]byte(text), &wallet); err != nil {
		return nil, NewImportError(ErrCodeFileParseError, "Electrum wallet JSON does not parse")
	}

	ks := wallet.Keystore
	if ks != nil && ks.Seed != "" {
		result, err := ParseElectrumSeed(ks.Seed, opts.Passphrase)
		if err != nil {
			return nil, err
		}
		result.SourceFormat = FormatElectrumJSON
		return finishHD(result, opts)
	}

	if ks != nil && ks.Xprv != "" {
		result, err := ParseExtendedKey(ks.Xprv, opts)
		if err != nil {
			return nil, err
		}
		result.SourceFormat = FormatElectrumJSON
		return result, nil
	}

	if ks != nil && len(ks.Keypairs) > 0 {
		return electrumKeypairsResult(ks.Keypairs, opts)
	}

	if ks != nil && ks.Xpub != "" {
		entry, _, err := lookupExtendedVersion(ks.Xpub)
		if err != nil {
			return nil, err
		}
		if !entry.isMainnet {
			return nil, errTestnetRejected
		}
		result := &ImportResult{
			Type:         ResultWatchXpub,
			SourceFormat: FormatElectrumJSON,
			Xpub:         ks.Xpub,
		}
		if node, err := hdkeychain.NewKeyFromString(ks.Xpub); err == nil {
			if fp, err := derive.Fingerprint(node); err == nil {
				result.Fingerprint = fp
			}
		}
		return result, nil
	}

	if wallet.Addresses != nil && len(wallet.Addresses.Receiving) > 0 {
		return &ImportResult{
			Type:           ResultWatchOnly,
			SourceFormat:   FormatElectrumJSON,
			PreviewAddress: wallet.Addresses.Receiving[0],
		}, nil
	}

	return nil, NewImportError(ErrCodeFileParseError,
		"Electrum wallet carries no recognizable keystore")
}

// electrumKeypairsResult collects the imported-keystore WIF values.
// Mirroring dumpwallet, testnet entries are skipped rather than fatal.
func electrumKeypairsResult(keypairs map[string]string, opts Options) (*ImportResult, error) {
	result := &ImportResult{
		Type:         ResultKeySet,
		SourceFormat: FormatElectrumJSON,
	}
	for _, encoded := range keypairs {
		encoded = strings.TrimSpace(encoded)
		if dumpTestnetWIF.MatchString(encoded) {
			continue
		}
		wif, err := btcutil.DecodeWIF(encoded)
		if err != nil || !wif.IsForNet(&chaincfg.MainNetParams) {
			continue
		}
		result.Keys = append(result.Keys, ImportedKey{
			WIF:        wif.String(),
			Compressed: wif.CompressPubKey,
		})
	}
	if len(result.Keys) == 0 {
		return nil, errNoPrivateKeys
	}
	return result, nil
}
