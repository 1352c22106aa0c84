package importer

import (
	"testing"
)

// BIP32 test vector 1 (seed 000102030405060708090a0b0c0d0e0f).
const (
	vectorXprv = "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi"
	vectorXpub = "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8"
)

// rewriteVersion swaps the 4-byte version prefix of an extended key,
// keeping the checksum valid.
func rewriteVersion(t *testing.T, key string, version []byte) string {
	t.Helper()
	payload, err := decodeBase58Check(key)
	if err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	swapped := append(append([]byte{}, version...), payload[4:]...)
	return encodeBase58Check(swapped)
}

func TestParseExtendedPrivate(t *testing.T) {
	result, err := ParseExtendedKey(vectorXprv, Options{})
	if err != nil {
		t.Fatalf("ParseExtendedKey failed: %v", err)
	}
	if result.Type != ResultHD || result.SourceFormat != FormatXprv {
		t.Errorf("got %s/%s, want hd/xprv", result.Type, result.SourceFormat)
	}
	if result.Xprv != vectorXprv {
		t.Errorf("round-trip changed the key string")
	}
	if result.Fingerprint != "3442193e" {
		t.Errorf("fingerprint = %s, want 3442193e", result.Fingerprint)
	}
}

func TestParseExtendedPublicIsWatchOnly(t *testing.T) {
	result, err := ParseExtendedKey(vectorXpub, Options{})
	if err != nil {
		t.Fatalf("ParseExtendedKey failed: %v", err)
	}
	if result.Type != ResultWatchXpub || result.SourceFormat != FormatXpub {
		t.Errorf("got %s/%s, want watch_xpub/xpub", result.Type, result.SourceFormat)
	}
	if result.Xpub != vectorXpub {
		t.Errorf("xpub not preserved")
	}
	if result.Xprv != "" || result.WIF != "" {
		t.Error("watch-only result carries secret fields")
	}
}

func TestSLIP132NormalizationToXprv(t *testing.T) {
	// zprv version bytes over the vector payload.
	zprv := rewriteVersion(t, vectorXprv, []byte{0x04, 0xb2, 0x43, 0x0c})

	result, err := ParseExtendedKey(zprv, Options{})
	if err != nil {
		t.Fatalf("ParseExtendedKey(zprv) failed: %v", err)
	}
	if result.SourceFormat != FormatZprv {
		t.Errorf("format = %s, want zprv", result.SourceFormat)
	}
	// The SLIP-132 prefix is display metadata; the stored key is
	// normalized back to the xprv serialization.
	if result.Xprv != vectorXprv {
		t.Errorf("normalized xprv = %s, want %s", result.Xprv, vectorXprv)
	}
}

func TestTestnetExtendedKeysRejected(t *testing.T) {
	tprv := rewriteVersion(t, vectorXprv, []byte{0x04, 0x35, 0x83, 0x94})
	_, err := ParseExtendedKey(tprv, Options{})
	if code, _ := Decode(err); code != ErrCodeTestnetRejected {
		t.Errorf("tprv: code = %s, want TESTNET_REJECTED", code)
	}

	tpub := rewriteVersion(t, vectorXpub, []byte{0x04, 0x35, 0x87, 0xcf})
	_, err = ParseExtendedKey(tpub, Options{})
	if code, _ := Decode(err); code != ErrCodeTestnetRejected {
		t.Errorf("tpub: code = %s, want TESTNET_REJECTED", code)
	}
}

func TestUnknownVersionRejected(t *testing.T) {
	odd := rewriteVersion(t, vectorXprv, []byte{0xde, 0xad, 0xbe, 0xef})
	_, err := ParseExtendedKey(odd, Options{})
	if code, _ := Decode(err); code != ErrCodeUnsupportedVersion {
		t.Errorf("code = %s, want UNSUPPORTED_VERSION", code)
	}
}

func TestExtendedKeyBadChecksum(t *testing.T) {
	mangled := vectorXprv[:len(vectorXprv)-1] + "j"
	_, err := ParseExtendedKey(mangled, Options{})
	if code, _ := Decode(err); code != ErrCodeInvalidChecksum {
		t.Errorf("code = %s, want INVALID_CHECKSUM", code)
	}
}
