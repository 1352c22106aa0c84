package importer

import (
	"fmt"
	"strings"
)

// berkeleyMagic appears at offset 12 of a Berkeley DB btree file, which is
// what a legacy wallet.dat is. Detection only; parsing wallet.dat is out
// of scope.
var berkeleyMagic = []byte{0x00, 0x05, 0x31, 0x62}

// Detect classifies raw input into one format. The cascade is an explicit
// ordered list: the most specific predicates (checksummed, versioned
// encodings) run first and the first match wins. Ambiguities that survive
// ordering are reported through Alternatives instead of being silently
// resolved. A nil result means nothing matched.
func Detect(text string) *DetectionResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	for _, probe := range detectionCascade {
		if r := probe(trimmed); r != nil {
			return r
		}
	}
	return nil
}

// DetectFile classifies file content, using the filename only to
// disambiguate between file formats. The content cascade still has the
// final say for anything the filename hint does not confirm.
func DetectFile(text, filename string) *DetectionResult {
	lower := strings.ToLower(filename)

	if strings.HasSuffix(lower, "wallet.dat") || hasBerkeleyMagic(text) {
		return &DetectionResult{
			Format:     FormatWalletDat,
			Confidence: ConfidenceDefinite,
			Label:      "Bitcoin Core wallet.dat database",
			IsMainnet:  true,
		}
	}

	if strings.HasSuffix(lower, ".json") {
		if r := detectJSON(strings.TrimSpace(text)); r != nil {
			return r
		}
	}

	return Detect(text)
}

// detectionCascade is the reviewable artifact: predicates in tie-break
// order. Reordering entries changes detection semantics.
var detectionCascade = []func(string) *DetectionResult{
	detectWalletDat,
	detectBIP38,
	detectExtendedKey,
	detectWIF,
	detectMiniKey,
	detectHex,
	detectBase64Key,
	detectJSON,
	detectDumpwallet,
	detectDescriptors,
	detectDecimal,
	detectPhrase,
}

func hasBerkeleyMagic(text string) bool {
	if len(text) < 16 {
		return false
	}
	return text[12] == berkeleyMagic[0] && text[13] == berkeleyMagic[1] &&
		text[14] == berkeleyMagic[2] && text[15] == berkeleyMagic[3]
}

func detectWalletDat(text string) *DetectionResult {
	if !hasBerkeleyMagic(text) {
		return nil
	}
	return &DetectionResult{
		Format:     FormatWalletDat,
		Confidence: ConfidenceLikely,
		Label:      "Bitcoin Core wallet.dat database",
		IsMainnet:  true,
	}
}

func detectBIP38(text string) *DetectionResult {
	if !strings.HasPrefix(text, "6P") || !IsBIP38(text) {
		return nil
	}
	return &DetectionResult{
		Format:        FormatBIP38Encrypted,
		Confidence:    ConfidenceDefinite,
		Label:         "BIP38 password-encrypted private key",
		NeedsPassword: true,
		IsMainnet:     true,
	}
}

func detectExtendedKey(text string) *DetectionResult {
	if len(text) < 100 || len(text) > 120 {
		return nil
	}
	entry, payload, err := lookupExtendedVersion(text)
	if err != nil {
		return nil
	}
	r := &DetectionResult{
		Format:      entry.format,
		Confidence:  ConfidenceDefinite,
		Label:       entry.label,
		IsMainnet:   entry.isMainnet,
		IsWatchOnly: !entry.isPrivate,
	}
	if entry.isPrivate && payload[45] != 0x00 {
		// Version bytes say private but the payload does not.
		r.Confidence = ConfidencePossible
	}
	return r
}

func detectWIF(text string) *DetectionResult {
	switch {
	case wifRe.MatchString(text):
		compressed := text[0] != '5'
		format, label := FormatWIFCompressed, "compressed WIF private key"
		if !compressed {
			format, label = FormatWIFUncompressed, "uncompressed WIF private key"
		}
		return &DetectionResult{
			Format:     format,
			Confidence: ConfidenceDefinite,
			Label:      label,
			IsMainnet:  true,
		}
	case wifTestRe.MatchString(text):
		return &DetectionResult{
			Format:     FormatWIFCompressed,
			Confidence: ConfidenceDefinite,
			Label:      "testnet WIF private key",
			IsMainnet:  false,
		}
	}
	return nil
}

func detectMiniKey(text string) *DetectionResult {
	if !miniRe.MatchString(text) {
		return nil
	}
	return &DetectionResult{
		Format:     FormatMiniPrivkey,
		Confidence: ConfidenceLikely,
		Label:      "mini private key",
		IsMainnet:  true,
	}
}

// detectHex covers both the 64-character single key and longer raw seeds.
// A 64-character string is genuinely ambiguous, so the competing reading
// is surfaced in Alternatives rather than dropped.
func detectHex(text string) *DetectionResult {
	if hexKeyRe.MatchString(text) {
		return &DetectionResult{
			Format:       FormatHexPrivkey,
			Confidence:   ConfidenceLikely,
			Label:        "raw private key (64 hex characters)",
			IsMainnet:    true,
			Alternatives: []ImportFormat{FormatSeedBytesHex},
		}
	}
	if seedHexRe.MatchString(text) {
		return &DetectionResult{
			Format:     FormatSeedBytesHex,
			Confidence: ConfidenceLikely,
			Label:      fmt.Sprintf("raw seed bytes (%d hex characters)", len(text)),
			IsMainnet:  true,
		}
	}
	return nil
}

func detectBase64Key(text string) *DetectionResult {
	if !base64Re.MatchString(text) {
		return nil
	}
	return &DetectionResult{
		Format:     FormatBase64Privkey,
		Confidence: ConfidencePossible,
		Label:      "base64-encoded private key",
		IsMainnet:  true,
	}
}

func detectJSON(text string) *DetectionResult {
	if strings.HasPrefix(text, "{") {
		switch {
		case strings.Contains(text, `"descriptors"`):
			return &DetectionResult{
				Format:     FormatDescriptorSet,
				Confidence: ConfidenceDefinite,
				Label:      "Bitcoin Core descriptor export",
				IsMainnet:  !descTestnetRe.MatchString(text),
			}
		case strings.Contains(text, `"keystore"`) || strings.Contains(text, `"addresses"`):
			return &DetectionResult{
				Format:      FormatElectrumJSON,
				Confidence:  ConfidenceLikely,
				Label:       "Electrum wallet file",
				IsMainnet:   !descTestnetRe.MatchString(text),
				IsWatchOnly: !strings.Contains(text, `"seed"`) && !strings.Contains(text, `"xprv"`) && !strings.Contains(text, `"keypairs"`),
			}
		}
		return nil
	}
	if strings.HasPrefix(text, "[") && strings.Contains(text, "(") {
		return &DetectionResult{
			Format:     FormatDescriptorSet,
			Confidence: ConfidenceLikely,
			Label:      "descriptor list",
			IsMainnet:  !descTestnetRe.MatchString(text),
		}
	}
	return nil
}

func detectDumpwallet(text string) *DetectionResult {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "wallet dump") &&
		!strings.Contains(lower, dumpMasterKeyMarker) {
		// A bare list of WIF+timestamp lines still reads as a dump.
		if !looksLikeDumpLines(text) {
			return nil
		}
	}
	return &DetectionResult{
		Format:     FormatDumpwallet,
		Confidence: ConfidenceLikely,
		Label:      "Bitcoin Core dumpwallet file",
		IsMainnet:  true,
	}
}

func looksLikeDumpLines(text string) bool {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return false
	}
	matches := 0
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) >= 2 && (dumpMainnetWIF.MatchString(fields[0]) || dumpTestnetWIF.MatchString(fields[0])) {
			matches++
		}
	}
	return matches >= 2
}

func detectDescriptors(text string) *DetectionResult {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		if _, ok := classifyDescriptor(line); !ok {
			return nil
		}
		return &DetectionResult{
			Format:     FormatDescriptorSet,
			Confidence: ConfidenceDefinite,
			Label:      "output descriptor set",
			IsMainnet:  !descTestnetRe.MatchString(text),
		}
	}
	return nil
}

func detectDecimal(text string) *DetectionResult {
	if !decimalRe.MatchString(text) {
		return nil
	}
	return &DetectionResult{
		Format:     FormatDecimalPrivkey,
		Confidence: ConfidencePossible,
		Label:      "decimal private key",
		IsMainnet:  true,
	}
}

// detectPhrase grades word-sequence input. The Electrum version tag is
// checked first: Electrum seeds are drawn from the same wordlist, so a
// full wordlist hit alone cannot tell the two apart. After that, full
// wordlist coverage with a valid count reads as a BIP39 phrase (checksum
// is the parser's job, not the detector's), and anything else multi-word
// is at best a brainwallet guess. The hit counting doubles as the
// live-typing "partial mnemonic" heuristic.
func detectPhrase(text string) *DetectionResult {
	hits, total := CountSeedWords(text)
	if total < 2 {
		return nil
	}

	if total >= 12 && electrumSeedKind(text) != "" {
		return &DetectionResult{
			Format:     FormatElectrumSeed,
			Confidence: ConfidenceLikely,
			Label:      fmt.Sprintf("Electrum seed phrase (%d words)", total),
			IsMainnet:  true,
			WordCount:  total,
		}
	}

	if hits == total && validWordCounts[total] {
		return &DetectionResult{
			Format:     FormatBIP39Mnemonic,
			Confidence: ConfidenceDefinite,
			Label:      fmt.Sprintf("BIP39 recovery phrase (%d words)", total),
			IsMainnet:  true,
			WordCount:  total,
		}
	}

	if hits >= total/2 && total >= 6 {
		return &DetectionResult{
			Format:     FormatBIP39Mnemonic,
			Confidence: ConfidencePossible,
			Label:      fmt.Sprintf("partial recovery phrase (%d of %d words recognized)", hits, total),
			IsMainnet:  true,
			WordCount:  total,
		}
	}

	return &DetectionResult{
		Format:     FormatBrainwallet,
		Confidence: ConfidencePossible,
		Label:      "possible brainwallet passphrase",
		IsMainnet:  true,
	}
}
