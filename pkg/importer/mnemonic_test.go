package importer

import (
	"encoding/hex"
	"strings"
	"testing"
)

const (
	// Standard 12-word test phrase (entropy 0x00...00).
	testPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	// Its documented BIP39 seed and BIP32 root.
	testPhraseSeedHex = "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4"
	testPhraseXprv    = "xprv9s21ZrQH143K3GJpoapnV8SFfukcVBSfeCficPSGfubmSFDxo1kuHnLisriDvSnRRuL2Qrg5ggqHKNVpxR86QEC8w35uxmGoggxtQTPvfUu"
)

func TestParseMnemonicVector(t *testing.T) {
	result, err := ParseMnemonic(testPhrase, "")
	if err != nil {
		t.Fatalf("ParseMnemonic failed: %v", err)
	}
	if result.Type != ResultHD {
		t.Errorf("type = %s, want hd", result.Type)
	}
	if got := hex.EncodeToString(result.Seed); got != testPhraseSeedHex {
		t.Errorf("seed = %s, want %s", got, testPhraseSeedHex)
	}
}

func TestParseMnemonicNormalizes(t *testing.T) {
	messy := "  Abandon ABANDON abandon\tabandon abandon abandon abandon abandon abandon abandon abandon About "
	result, err := ParseMnemonic(messy, "")
	if err != nil {
		t.Fatalf("ParseMnemonic(messy) failed: %v", err)
	}
	if result.Mnemonic != testPhrase {
		t.Errorf("normalized phrase = %q, want %q", result.Mnemonic, testPhrase)
	}
}

func TestParseMnemonicWordCount(t *testing.T) {
	thirteen := testPhrase + " abandon"
	_, err := ParseMnemonic(thirteen, "")
	if code, _ := Decode(err); code != ErrCodeInvalidWordCount {
		t.Errorf("13-word phrase: code = %s, want INVALID_WORD_COUNT", code)
	}
}

func TestParseMnemonicReportsWordPositions(t *testing.T) {
	words := strings.Fields(testPhrase)
	words[2] = "xyzzy"
	words[7] = "plugh"
	_, err := ParseMnemonic(strings.Join(words, " "), "")
	code, msg := Decode(err)
	if code != ErrCodeInvalidWord {
		t.Fatalf("code = %s, want INVALID_WORD", code)
	}
	// Positions are 1-based; the message names positions, never the words.
	if !strings.Contains(msg, "3") || !strings.Contains(msg, "8") {
		t.Errorf("message %q does not name positions 3 and 8", msg)
	}
	if strings.Contains(msg, "xyzzy") || strings.Contains(msg, "plugh") {
		t.Errorf("message %q leaks input words", msg)
	}
}

func TestParseMnemonicChecksum(t *testing.T) {
	allAbandon := strings.Repeat("abandon ", 11) + "abandon"
	_, err := ParseMnemonic(allAbandon, "")
	if code, _ := Decode(err); code != ErrCodeInvalidChecksum {
		t.Errorf("bad checksum: code = %s, want INVALID_CHECKSUM", code)
	}
}

func TestImportMnemonicDerivesRootAndPreview(t *testing.T) {
	result, err := Import(testPhrase, Options{})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Xprv != testPhraseXprv {
		t.Errorf("xprv = %s, want %s", result.Xprv, testPhraseXprv)
	}
	if result.Fingerprint != "73c5da0a" {
		t.Errorf("fingerprint = %s, want 73c5da0a", result.Fingerprint)
	}
	// Default preview is native segwit at m/84'/0'/0'/0/0.
	if result.PreviewAddress != "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu" {
		t.Errorf("preview = %s, want the documented first receive address", result.PreviewAddress)
	}
}

func TestImportMnemonicPassphraseChangesSeed(t *testing.T) {
	plain, err := Import(testPhrase, Options{})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	salted, err := Import(testPhrase, Options{Passphrase: "TREZOR"})
	if err != nil {
		t.Fatalf("Import with passphrase failed: %v", err)
	}
	if plain.Xprv == salted.Xprv {
		t.Error("passphrase did not change the derived root")
	}
}

func TestWordHelpers(t *testing.T) {
	if !IsValidWord("abandon") || !IsValidWord(" Zoo ") {
		t.Error("IsValidWord rejected wordlist words")
	}
	if IsValidWord("xyzzy") {
		t.Error("IsValidWord accepted a non-wordlist word")
	}

	suggestions := GetWordSuggestions("aban", 10)
	if len(suggestions) != 1 || suggestions[0] != "abandon" {
		t.Errorf("GetWordSuggestions(aban) = %v, want [abandon]", suggestions)
	}
	if got := GetWordSuggestions("a", 5); len(got) != 5 {
		t.Errorf("limit not honored, got %d suggestions", len(got))
	}

	hits, total := CountSeedWords("abandon xyzzy zoo")
	if hits != 2 || total != 3 {
		t.Errorf("CountSeedWords = (%d, %d), want (2, 3)", hits, total)
	}
}
