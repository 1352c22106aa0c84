package importer

import (
	"crypto/aes"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/scrypt"

	"keyimport-core/pkg/address"
)

// BIP38 payload layout: 0x01, variant byte, flag byte, 4-byte address
// hash, 32 bytes of ciphertext.
const (
	bip38PayloadLen    = 39
	bip38Prefix        = 0x01
	bip38VariantNoEC   = 0x42
	bip38VariantECMult = 0x43
	bip38FlagCompress  = 0x20
)

// Scrypt parameters fixed by BIP38 for the no-EC-multiply variant.
const (
	bip38ScryptN   = 16384
	bip38ScryptR   = 8
	bip38ScryptP   = 8
	bip38ScryptLen = 64
)

// KDF derives the BIP38 decryption key. Injected so constrained or audited
// builds can swap the implementation; a failed lookup is a construction
// problem, not a runtime one.
type KDF func(password, salt []byte, n, r, p, keyLen int) ([]byte, error)

// BIP38Decrypter decrypts password-protected keys. Decrypt is CPU-bound
// for tens of seconds on small hardware; callers own running it off their
// interactive path.
type BIP38Decrypter struct {
	kdf KDF
}

// NewBIP38Decrypter builds a decrypter. A nil kdf selects x/crypto scrypt.
func NewBIP38Decrypter(kdf KDF) *BIP38Decrypter {
	if kdf == nil {
		kdf = scrypt.Key
	}
	return &BIP38Decrypter{kdf: kdf}
}

// IsBIP38 is a pure format check: Base58Check payload of 39 bytes starting
// 0x01 0x42 or 0x01 0x43. It implies nothing about decryptability.
func IsBIP38(text string) bool {
	payload, err := decodeBase58Check(strings.TrimSpace(text))
	if err != nil {
		return false
	}
	return len(payload) == bip38PayloadLen &&
		payload[0] == bip38Prefix &&
		(payload[1] == bip38VariantNoEC || payload[1] == bip38VariantECMult)
}

// Decrypt recovers the private key protected by password. Only the
// no-EC-multiply variant is supported. Verification against the embedded
// address hash is mandatory: without it a wrong password would yield bytes
// indistinguishable from a valid key.
func (d *BIP38Decrypter) Decrypt(text, password string, opts Options) (*ImportResult, error) {
	payload, err := decodeBase58Check(strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	if len(payload) != bip38PayloadLen || payload[0] != bip38Prefix {
		return nil, errInvalidFormat
	}

	switch payload[1] {
	case bip38VariantNoEC:
	case bip38VariantECMult:
		return nil, NewImportError(ErrCodeEncryptedUnsupported,
			"EC-multiply BIP38 keys are not supported")
	default:
		return nil, errInvalidFormat
	}

	flag := payload[2]
	addressHash := payload[3:7]
	ciphertext := payload[7:39]
	compressed := flag&bip38FlagCompress != 0

	derived, err := d.kdf([]byte(password), addressHash,
		bip38ScryptN, bip38ScryptR, bip38ScryptP, bip38ScryptLen)
	if err != nil {
		return nil, NewImportError(ErrCodeUnknown, "key derivation failed")
	}
	half1, half2 := derived[:32], derived[32:]

	block, err := aes.NewCipher(half2)
	if err != nil {
		return nil, NewImportError(ErrCodeUnknown, "cipher construction failed")
	}
	// Two raw ECB blocks, no padding, each XORed against the first scrypt
	// half to recover the key bytes.
	raw := make([]byte, 32)
	block.Decrypt(raw[:16], ciphertext[:16])
	block.Decrypt(raw[16:], ciphertext[16:])
	for i := range raw {
		raw[i] ^= half1[i]
	}

	// A wrong password can decrypt to bytes outside the scalar range; that
	// is a password failure, not a key to report on.
	if err := guardScalar(raw); err != nil {
		return nil, NewImportError(ErrCodeWrongPassword,
			"password does not decrypt this key")
	}
	priv, _ := btcec.PrivKeyFromBytes(raw)

	if !bip38AddressHashMatches(priv, compressed, addressHash) {
		return nil, NewImportError(ErrCodeWrongPassword,
			"password does not decrypt this key")
	}

	wif, err := btcutil.NewWIF(priv, &chaincfg.MainNetParams, compressed)
	if err != nil {
		return nil, NewImportError(ErrCodeUnknown, "re-encoding private key to WIF failed")
	}
	result := &ImportResult{
		Type:         ResultSingleKey,
		SourceFormat: FormatBIP38Encrypted,
		WIF:          wif.String(),
		Compressed:   compressed,
	}
	attachKeyPreview(result, priv, compressed, opts)
	return result, nil
}

// bip38AddressHashMatches re-derives the legacy P2PKH address of the
// recovered key and compares its double-SHA prefix against the embedded
// address hash.
func bip38AddressHashMatches(priv *btcec.PrivateKey, compressed bool, addressHash []byte) bool {
	gen := address.NewGenerator(&chaincfg.MainNetParams)
	var addr string
	var err error
	if compressed {
		addr, err = gen.Encode(priv.PubKey(), ScriptP2PKH)
	} else {
		addr, err = gen.EncodeLegacyUncompressed(priv.PubKey())
	}
	if err != nil {
		return false
	}
	digest := chainhash.DoubleHashB([]byte(addr))
	for i := 0; i < 4; i++ {
		if digest[i] != addressHash[i] {
			return false
		}
	}
	return true
}
