package importer

import (
	"fmt"
	"strings"
	"testing"
)

func TestDetectTable(t *testing.T) {
	cases := []struct {
		name       string
		input      string
		format     ImportFormat
		confidence Confidence
		mainnet    bool
	}{
		{"wif compressed", key1WIFCompressed, FormatWIFCompressed, ConfidenceDefinite, true},
		{"wif uncompressed", key1WIFUncompressed, FormatWIFUncompressed, ConfidenceDefinite, true},
		{"bip38", bip38Compressed, FormatBIP38Encrypted, ConfidenceDefinite, true},
		{"xprv", vectorXprv, FormatXprv, ConfidenceDefinite, true},
		{"xpub", vectorXpub, FormatXpub, ConfidenceDefinite, true},
		{"mini key", "S6c56bnXQiBjk9mqSYE7ykVQ7NzrRy", FormatMiniPrivkey, ConfidenceLikely, true},
		{"hex key", key1Hex, FormatHexPrivkey, ConfidenceLikely, true},
		{"seed hex", testPhraseSeedHex, FormatSeedBytesHex, ConfidenceLikely, true},
		{"decimal", "12345678901", FormatDecimalPrivkey, ConfidencePossible, true},
		{"mnemonic", testPhrase, FormatBIP39Mnemonic, ConfidenceDefinite, true},
		{"electrum seed", electrumSegwitSeed, FormatElectrumSeed, ConfidenceLikely, true},
		{"descriptor line", "wpkh(" + vectorXprv + "/0/*)", FormatDescriptorSet, ConfidenceDefinite, true},
		{"listdescriptors json", `{"descriptors":[{"desc":"wpkh(` + vectorXprv + `/0/*)"}]}`, FormatDescriptorSet, ConfidenceDefinite, true},
		{"electrum json", `{"keystore":{"type":"bip32","xprv":"` + vectorXprv + `"}}`, FormatElectrumJSON, ConfidenceLikely, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Detect(tc.input)
			if r == nil {
				t.Fatal("no detection result")
			}
			if r.Format != tc.format {
				t.Errorf("format = %s, want %s", r.Format, tc.format)
			}
			if r.Confidence != tc.confidence {
				t.Errorf("confidence = %s, want %s", r.Confidence, tc.confidence)
			}
			if r.IsMainnet != tc.mainnet {
				t.Errorf("mainnet = %v, want %v", r.IsMainnet, tc.mainnet)
			}
		})
	}
}

func TestDetectNormalizesWhitespace(t *testing.T) {
	r := Detect("\n  " + key1WIFCompressed + "  \n")
	if r == nil || r.Format != FormatWIFCompressed {
		t.Fatalf("padded WIF not detected: %+v", r)
	}
}

func TestDetectNothing(t *testing.T) {
	for _, input := range []string{"", "   ", "not a key", "zz"} {
		if r := Detect(input); r != nil {
			t.Errorf("Detect(%q) = %+v, want nil", input, r)
		}
	}
}

func TestDetectHexAmbiguity(t *testing.T) {
	r := Detect(key1Hex)
	if r == nil || r.Format != FormatHexPrivkey {
		t.Fatalf("64-hex detection wrong: %+v", r)
	}
	if len(r.Alternatives) != 1 || r.Alternatives[0] != FormatSeedBytesHex {
		t.Errorf("alternatives = %v, want [seed_bytes_hex]", r.Alternatives)
	}
	// Longer hex is unambiguous seed material.
	if r := Detect(testPhraseSeedHex); len(r.Alternatives) != 0 {
		t.Errorf("128-hex should carry no alternatives, got %v", r.Alternatives)
	}
}

func TestDetectBIP38NeedsPassword(t *testing.T) {
	r := Detect(bip38Uncompressed)
	if r == nil || !r.NeedsPassword {
		t.Fatalf("BIP38 detection should flag NeedsPassword: %+v", r)
	}
}

func TestDetectTestnetWIF(t *testing.T) {
	r := Detect(testnetWIF(t))
	if r == nil {
		t.Fatal("testnet WIF not detected")
	}
	if r.IsMainnet {
		t.Error("testnet WIF flagged as mainnet")
	}
}

func TestDetectXpubWatchOnly(t *testing.T) {
	r := Detect(vectorXpub)
	if r == nil || !r.IsWatchOnly {
		t.Fatalf("xpub should detect as watch-only: %+v", r)
	}
	if r := Detect(vectorXprv); r.IsWatchOnly {
		t.Error("xprv flagged as watch-only")
	}
}

func TestDetectPhraseGrading(t *testing.T) {
	// 13 words of pure wordlist material is not a valid count, but over
	// half the words hit, so it grades as a partial phrase.
	partial := testPhrase + " abandon"
	r := Detect(partial)
	if r == nil || r.Format != FormatBIP39Mnemonic || r.Confidence != ConfidencePossible {
		t.Fatalf("13-word phrase grading wrong: %+v", r)
	}
	if r.WordCount != 13 {
		t.Errorf("word count = %d, want 13", r.WordCount)
	}

	// Mostly off-list text grades as a brainwallet guess.
	r = Detect("correct horse battery staple")
	if r == nil || r.Format != FormatBrainwallet || r.Confidence != ConfidencePossible {
		t.Fatalf("brainwallet grading wrong: %+v", r)
	}
}

func TestDetectDumpwallet(t *testing.T) {
	header := "# Wallet dump created by Bitcoin Core v25.0.0\n" + key1WIFCompressed + " 2023-01-15T10:30:00Z\n"
	r := Detect(header)
	if r == nil || r.Format != FormatDumpwallet {
		t.Fatalf("dump with header not detected: %+v", r)
	}

	bare := fmt.Sprintf("%s 2023-01-15T10:30:00Z\n%s 2023-02-20T08:00:00Z\n",
		key1WIFCompressed, key1WIFUncompressed)
	r = Detect(bare)
	if r == nil || r.Format != FormatDumpwallet {
		t.Fatalf("bare WIF lines not detected as dump: %+v", r)
	}
}

func TestDetectFileHints(t *testing.T) {
	r := DetectFile("garbage content", "/backups/wallet.dat")
	if r == nil || r.Format != FormatWalletDat || r.Confidence != ConfidenceDefinite {
		t.Fatalf("wallet.dat filename hint ignored: %+v", r)
	}

	magic := strings.Repeat("\x00", 12) + string(berkeleyMagic) + "trailing"
	r = DetectFile(magic, "renamed.bak")
	if r == nil || r.Format != FormatWalletDat {
		t.Fatalf("berkeley magic not detected: %+v", r)
	}

	// .json hint routes through the JSON probe, but content still decides.
	r = DetectFile(`{"keystore":{"seed":"`+electrumSegwitSeed+`"}}`, "export.json")
	if r == nil || r.Format != FormatElectrumJSON {
		t.Fatalf("electrum json via filename hint: %+v", r)
	}
	r = DetectFile(testPhrase, "notes.json")
	if r == nil || r.Format != FormatBIP39Mnemonic {
		t.Fatalf("non-JSON content in .json file should fall through: %+v", r)
	}
}

func TestDetectElectrumSeedBeatsWordlistHit(t *testing.T) {
	// Electrum seeds are drawn from the BIP39 wordlist; the version tag
	// must win over the full-wordlist reading.
	r := Detect(electrumSegwitSeed)
	if r == nil || r.Format != FormatElectrumSeed {
		t.Fatalf("electrum seed misdetected: %+v", r)
	}
}
