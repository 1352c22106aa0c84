package importer

import (
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

func testnetWIF(t *testing.T) string {
	t.Helper()
	raw, _ := hex.DecodeString(key1Hex)
	priv, _ := btcec.PrivKeyFromBytes(raw)
	wif, err := btcutil.NewWIF(priv, &chaincfg.TestNet3Params, true)
	if err != nil {
		t.Fatalf("building testnet WIF: %v", err)
	}
	return wif.String()
}

func TestParseDumpwalletKeySet(t *testing.T) {
	dump := fmt.Sprintf(`# Wallet dump created by Bitcoin Core v25.0.0
# * Created on 2023-06-01T12:00:00Z
# * Best block at time of backup was 780000 (00000000000000000002c0c0...)

%s 2023-01-15T10:30:00Z label=savings # addr=1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH hdkeypath=m/44'/0'/0'/0/3
%s 2023-02-20T08:00:00Z change=1 # addr=1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm hdkeypath=m/44'/0'/0'/1/9

# End of dump
`, key1WIFCompressed, key1WIFUncompressed)

	result, err := ParseDumpwallet(dump, Options{})
	if err != nil {
		t.Fatalf("ParseDumpwallet failed: %v", err)
	}
	if result.Type != ResultKeySet {
		t.Fatalf("type = %s, want key_set", result.Type)
	}
	if len(result.Keys) != 2 {
		t.Fatalf("extracted %d keys, want 2", len(result.Keys))
	}
	if result.BestBlockHeight != 780000 {
		t.Errorf("best block = %d, want 780000", result.BestBlockHeight)
	}
	if result.CreatedAt == 0 {
		t.Error("created-on timestamp not captured")
	}

	first := result.Keys[0]
	if !first.Compressed || first.Address != "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH" {
		t.Errorf("first key metadata wrong: %+v", first)
	}
	if first.HDKeypath != "m/44'/0'/0'/0/3" || first.IsChange {
		t.Errorf("first key path/change wrong: %+v", first)
	}

	second := result.Keys[1]
	if second.Compressed || !second.IsChange {
		t.Errorf("second key should be uncompressed change: %+v", second)
	}

	if result.PreviewAddress != "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH" {
		t.Errorf("preview = %s, want the first key's address", result.PreviewAddress)
	}
}

func TestParseDumpwalletSkipsTestnetLines(t *testing.T) {
	dump := fmt.Sprintf(`%s 2023-01-15T10:30:00Z # addr=tb1qunknown
%s 2023-01-15T10:30:00Z # addr=1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH
`, testnetWIF(t), key1WIFCompressed)

	result, err := ParseDumpwallet(dump, Options{})
	if err != nil {
		t.Fatalf("ParseDumpwallet failed: %v", err)
	}
	if len(result.Keys) != 1 {
		t.Errorf("extracted %d keys, want 1 (testnet line skipped)", len(result.Keys))
	}
}

func TestParseDumpwalletMasterKeyPromotion(t *testing.T) {
	dump1 := fmt.Sprintf(`# Wallet dump created by Bitcoin Core v25.0.0
# extended private masterkey: %s

%s 2023-01-15T10:30:00Z # addr=1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH
`, vectorXprv, key1WIFCompressed)

	result, err := ParseDumpwallet(dump1, Options{})
	if err != nil {
		t.Fatalf("ParseDumpwallet failed: %v", err)
	}
	if result.Type != ResultHD {
		t.Errorf("type = %s, want hd (master key promotes the dump)", result.Type)
	}
	if result.Xprv != vectorXprv {
		t.Errorf("xprv = %s, want the dump header's master key", result.Xprv)
	}
	if result.Fingerprint != "3442193e" {
		t.Errorf("fingerprint = %s, want 3442193e", result.Fingerprint)
	}
	// The individual rows ride along for display.
	if len(result.Keys) != 1 {
		t.Errorf("keys = %d, want 1", len(result.Keys))
	}
}

func TestParseDumpwalletTestnetMasterRejected(t *testing.T) {
	tprv := rewriteVersion(t, vectorXprv, []byte{0x04, 0x35, 0x83, 0x94})
	dump := "# extended private masterkey: " + tprv + "\n"
	_, err := ParseDumpwallet(dump, Options{})
	if code, _ := Decode(err); code != ErrCodeTestnetRejected {
		t.Errorf("code = %s, want TESTNET_REJECTED", code)
	}
}

func TestParseDumpwalletNoSecrets(t *testing.T) {
	dump := `# Wallet dump created by Bitcoin Core v25.0.0
# * Best block at time of backup was 780000
# End of dump
`
	_, err := ParseDumpwallet(dump, Options{})
	if code, _ := Decode(err); code != ErrCodeNoPrivateKeys {
		t.Errorf("code = %s, want NO_PRIVATE_KEYS", code)
	}
}
