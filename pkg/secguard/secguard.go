// Package secguard keeps key material out of logs, error messages and the
// clipboard. Parsers never call it on their own inputs; it is the guard rail
// for everything around them (handlers, CLI output, log fields).
package secguard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"go.uber.org/zap"
)

var secretPatterns = []*regexp.Regexp{
	// WIF, mainnet and testnet
	regexp.MustCompile(`^[5KL9c][1-9A-HJ-NP-Za-km-z]{50,51}$`),
	// raw 32-byte key as hex
	regexp.MustCompile(`^[0-9a-fA-F]{64}$`),
	// extended private keys, SLIP-132 prefixes included
	regexp.MustCompile(`^[xyzYZtuv]prv[1-9A-HJ-NP-Za-km-z]{100,112}$`),
	// BIP38 encrypted key
	regexp.MustCompile(`^6P[1-9A-HJ-NP-Za-km-z]{56}$`),
	// mini private key
	regexp.MustCompile(`^S[1-9A-HJ-NP-Za-km-z]{21,29}$`),
}

// LooksLikeSecret reports whether s matches any known private key encoding
// or reads as a recovery phrase. It errs toward true: a false positive hides
// a harmless string, a false negative leaks a key.
func LooksLikeSecret(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, re := range secretPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return wordlistHits(s) >= 12
}

func wordlistHits(s string) int {
	hits := 0
	for _, word := range strings.Fields(strings.ToLower(s)) {
		if _, ok := bip39.GetWordIndex(word); ok {
			hits++
		}
	}
	return hits
}

// Mask replaces s with a placeholder that preserves only its length. No
// prefix or suffix characters survive; for key encodings even a few leading
// characters narrow the search space.
func Mask(s string) string {
	return fmt.Sprintf("[redacted %d chars]", len(s))
}

// String builds a zap field, masking the value when it looks like key
// material. Use this instead of zap.String for any field that carries user
// input.
func String(key, value string) zap.Field {
	if LooksLikeSecret(value) {
		value = Mask(value)
	}
	return zap.String(key, value)
}

// Zero overwrites b in place. Call it on seed and key buffers as soon as
// they have been consumed; it does not free the memory, only clears it.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ZeroString is a reminder that Go strings cannot be wiped in place. It
// returns the empty string so callers can at least drop their reference:
//
//	wif = secguard.ZeroString(wif)
func ZeroString(string) string {
	return ""
}

// Clipboard abstracts the system clipboard so Clear can be tested and so
// this package stays free of platform bindings.
type Clipboard interface {
	WriteText(text string) error
}

// Clear overwrites the clipboard with an empty string. It is only ever run
// on explicit user request; nothing in this codebase clears the clipboard
// on a timer or as a side effect of an import.
func Clear(c Clipboard) error {
	if c == nil {
		return nil
	}
	return c.WriteText("")
}
