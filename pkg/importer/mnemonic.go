package importer

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// validWordCounts are the BIP39 phrase lengths this importer accepts.
var validWordCounts = map[int]bool{12: true, 15: true, 18: true, 21: true, 24: true}

// normalizeMnemonic lower-cases and single-spaces a phrase. All phrase
// handling goes through this so results round-trip byte-for-byte.
func normalizeMnemonic(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// IsValidWord reports wordlist membership of a single word. Intended for
// live input assistance; it performs no checksum validation.
func IsValidWord(word string) bool {
	_, ok := bip39.GetWordIndex(strings.ToLower(strings.TrimSpace(word)))
	return ok
}

// GetWordSuggestions returns up to limit wordlist completions for prefix.
// Like IsValidWord it never validates checksums.
func GetWordSuggestions(prefix string, limit int) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" || limit <= 0 {
		return nil
	}
	var out []string
	for _, word := range bip39.GetWordList() {
		if strings.HasPrefix(word, prefix) {
			out = append(out, word)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// CountSeedWords counts how many whitespace-separated tokens of text are
// wordlist words. It backs the detector's "looks like a partial mnemonic"
// heuristic for live-typing UX and plays no part in final acceptance.
func CountSeedWords(text string) (hits, total int) {
	words := strings.Fields(strings.ToLower(text))
	for _, word := range words {
		if IsValidWord(word) {
			hits++
		}
	}
	return hits, len(words)
}

// ParseMnemonic validates a BIP39 recovery phrase and derives its 64-byte
// seed with the optional passphrase. Validation order is fixed: word count,
// then per-word membership (reporting 1-based positions), then the full
// checksum. On success the result carries the normalized phrase.
func ParseMnemonic(text, passphrase string) (*ImportResult, error) {
	mnemonic := normalizeMnemonic(text)
	words := strings.Fields(mnemonic)

	if !validWordCounts[len(words)] {
		return nil, NewImportError(ErrCodeInvalidWordCount,
			fmt.Sprintf("expected 12, 15, 18, 21 or 24 words, got %d", len(words)))
	}

	var badPositions []int
	for i, word := range words {
		if !IsValidWord(word) {
			badPositions = append(badPositions, i+1)
		}
	}
	if len(badPositions) > 0 {
		return nil, NewImportError(ErrCodeInvalidWord,
			fmt.Sprintf("words at positions %s are not in the wordlist", joinPositions(badPositions)))
	}

	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, NewImportError(ErrCodeInvalidChecksum, "recovery phrase checksum does not validate")
	}

	seed := bip39.NewSeed(mnemonic, passphrase)
	return &ImportResult{
		Type:         ResultHD,
		SourceFormat: FormatBIP39Mnemonic,
		Mnemonic:     mnemonic,
		Passphrase:   passphrase,
		Seed:         seed,
	}, nil
}

func joinPositions(positions []int) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return strings.Join(parts, ", ")
}
