// Package derive is the shared BIP44/49/84/86-aware child derivation used
// by the extended-key and seed-bytes importers to compute preview
// addresses. It wraps btcutil's hdkeychain and stays mainnet-only.
package derive

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"

	"keyimport-core/pkg/address"
)

// Preset names a standard derivation scheme.
type Preset string

const (
	PresetHD     Preset = "hd"
	PresetBIP32  Preset = "bip32"
	PresetBIP44  Preset = "bip44"
	PresetBIP49  Preset = "bip49"
	PresetBIP84  Preset = "bip84"
	PresetBIP86  Preset = "bip86"
	PresetCustom Preset = "custom"
)

// PathConfig selects which derivation to apply.
type PathConfig struct {
	Preset       Preset `json:"preset"`
	AccountIndex uint32 `json:"accountIndex"`
	AddressIndex uint32 `json:"addressIndex"`
	CustomPath   string `json:"customPath,omitempty"`
}

var (
	ErrInvalidSeed = errors.New("seed must be between 16 and 64 bytes")
	ErrInvalidPath = errors.New("invalid derivation path")
)

// hardened marks a path component as hardened.
const hardened = hdkeychain.HardenedKeyStart

// IsValidPath enforces the "m/" prefix (or bare "m") and
// numeric-or-hardened-apostrophe path components.
func IsValidPath(path string) bool {
	path = strings.TrimSpace(path)
	if path == "m" {
		return true
	}
	if !strings.HasPrefix(path, "m/") {
		return false
	}
	for _, segment := range strings.Split(path[2:], "/") {
		if strings.HasSuffix(segment, "'") || strings.HasSuffix(segment, "h") {
			segment = segment[:len(segment)-1]
		}
		if segment == "" {
			return false
		}
		if _, err := strconv.ParseUint(segment, 10, 31); err != nil {
			return false
		}
	}
	return true
}

// ParsePath parses "m/84'/0'/0'/0/0" (apostrophe or h hardened markers)
// into raw child indices.
func ParsePath(path string) ([]uint32, error) {
	path = strings.TrimSpace(path)
	if !IsValidPath(path) {
		return nil, ErrInvalidPath
	}
	if path == "m" {
		return nil, nil
	}

	segments := strings.Split(path[2:], "/")
	indices := make([]uint32, 0, len(segments))
	for _, segment := range segments {
		isHardened := false
		if strings.HasSuffix(segment, "'") || strings.HasSuffix(segment, "h") {
			isHardened = true
			segment = segment[:len(segment)-1]
		}
		val, err := strconv.ParseUint(segment, 10, 31)
		if err != nil {
			return nil, fmt.Errorf("%w: bad segment %q", ErrInvalidPath, segment)
		}
		index := uint32(val)
		if isHardened {
			index += hardened
		}
		indices = append(indices, index)
	}
	return indices, nil
}

// MasterFromSeed builds a mainnet BIP32 master node from 16-64 seed bytes.
func MasterFromSeed(seed []byte) (*hdkeychain.ExtendedKey, error) {
	if len(seed) < 16 || len(seed) > 64 {
		return nil, ErrInvalidSeed
	}
	return hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
}

// PurposeForScript maps an address family to its BIP purpose number.
func PurposeForScript(script address.ScriptType) uint32 {
	switch script {
	case address.ScriptP2PKH:
		return 44
	case address.ScriptP2SHP2WPK:
		return 49
	case address.ScriptP2TR:
		return 86
	default:
		return 84
	}
}

// purposeForPreset resolves a preset to a BIP purpose, falling back to the
// script-type default for PresetHD.
func purposeForPreset(preset Preset, script address.ScriptType) uint32 {
	switch preset {
	case PresetBIP44:
		return 44
	case PresetBIP49:
		return 49
	case PresetBIP84:
		return 84
	case PresetBIP86:
		return 86
	default:
		return PurposeForScript(script)
	}
}

// FullPath returns the complete index path from a master node for cfg:
// m/purpose'/0'/account'/0/index for the BIP presets, m/0/index for the raw
// BIP32 preset, or the parsed custom path.
func FullPath(cfg PathConfig, script address.ScriptType) ([]uint32, error) {
	switch cfg.Preset {
	case PresetCustom:
		return ParsePath(cfg.CustomPath)
	case PresetBIP32:
		return []uint32{0, cfg.AddressIndex}, nil
	default:
		purpose := purposeForPreset(cfg.Preset, script)
		return []uint32{
			purpose + hardened,
			0 + hardened,
			cfg.AccountIndex + hardened,
			0,
			cfg.AddressIndex,
		}, nil
	}
}

// DeriveRemaining derives from node only the path segments it has not
// already descended through. A node of depth 0 gets the full preset path,
// an account-level node (depth 3) gets just change/index, and a node at or
// below address depth is returned as is. Custom paths apply verbatim
// relative to the node.
func DeriveRemaining(node *hdkeychain.ExtendedKey, cfg PathConfig, script address.ScriptType) (*hdkeychain.ExtendedKey, error) {
	if cfg.Preset == PresetCustom {
		indices, err := ParsePath(cfg.CustomPath)
		if err != nil {
			return nil, err
		}
		return deriveIndices(node, indices)
	}

	full, err := FullPath(cfg, script)
	if err != nil {
		return nil, err
	}
	depth := int(node.Depth())
	if depth >= len(full) {
		return node, nil
	}
	return deriveIndices(node, full[depth:])
}

func deriveIndices(node *hdkeychain.ExtendedKey, indices []uint32) (*hdkeychain.ExtendedKey, error) {
	current := node
	for _, index := range indices {
		next, err := current.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("derive child %d: %w", index, err)
		}
		current = next
	}
	return current, nil
}

// Fingerprint returns the 4-byte key fingerprint of node as lower-case hex:
// the first four bytes of HASH160 over the compressed public key.
func Fingerprint(node *hdkeychain.ExtendedKey) (string, error) {
	pub, err := node.ECPubKey()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(btcutil.Hash160(pub.SerializeCompressed())[:4]), nil
}

// PreviewAddress derives the child selected by cfg and encodes its address
// for the requested script type.
func PreviewAddress(node *hdkeychain.ExtendedKey, cfg PathConfig, script address.ScriptType) (string, error) {
	child, err := DeriveRemaining(node, cfg, script)
	if err != nil {
		return "", err
	}
	pub, err := child.ECPubKey()
	if err != nil {
		return "", err
	}
	return address.NewGenerator(&chaincfg.MainNetParams).Encode(pub, script)
}
