package secguard

import (
	"errors"
	"strings"
	"testing"
)

func TestLooksLikeSecret(t *testing.T) {
	secrets := []string{
		"KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn",
		"5HpHagT65TZzG1PH3CSu63k8DbpvD8s5ip4nEB3kEsreAnchuDf",
		"cMahea7zqjxrtgAbB7LSGbcQUr1uX1ojuat9jZodMN8rFTv2sfUK",
		"0000000000000000000000000000000000000000000000000000000000000001",
		"xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi",
		"6PYNKZ1EAgYgmQfmNVamxyXVWHzK5s6DGhwP4J5o44cvXdoY7sRzhtpUeo",
		"S6c56bnXQiBjk9mqSYE7ykVQ7NzrRy",
		strings.Repeat("abandon ", 11) + "about",
		"  KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn  ",
	}
	for _, s := range secrets {
		if !LooksLikeSecret(s) {
			t.Errorf("LooksLikeSecret(%.8s...) = false, want true", s)
		}
	}

	benign := []string{
		"",
		"bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu",
		"1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH",
		"xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8",
		"wallet.dat backup from 2023",
		"abandon about zoo", // a few wordlist words is not a phrase
	}
	for _, s := range benign {
		if LooksLikeSecret(s) {
			t.Errorf("LooksLikeSecret(%q) = true, want false", s)
		}
	}
}

func TestMaskKeepsNothing(t *testing.T) {
	const wif = "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn"
	masked := Mask(wif)
	if masked != "[redacted 52 chars]" {
		t.Errorf("Mask = %q", masked)
	}
	if strings.Contains(masked, "Kw") || strings.Contains(masked, "oWn") {
		t.Error("mask leaks prefix or suffix characters")
	}
}

func TestStringFieldMasksSecrets(t *testing.T) {
	const wif = "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn"
	field := String("input", wif)
	if field.String != Mask(wif) {
		t.Errorf("field value = %q, want masked", field.String)
	}

	field = String("preview", "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu")
	if strings.HasPrefix(field.String, "[redacted") {
		t.Error("benign value was masked")
	}
}

func TestZero(t *testing.T) {
	buf := []byte{0xde, 0xad, 0xbe, 0xef}
	Zero(buf)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %#x after Zero", i, b)
		}
	}
	Zero(nil) // must not panic
}

func TestZeroString(t *testing.T) {
	wif := "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn"
	if wif = ZeroString(wif); wif != "" {
		t.Errorf("ZeroString returned %q", wif)
	}
}

type recordingClipboard struct {
	writes []string
	err    error
}

func (c *recordingClipboard) WriteText(text string) error {
	c.writes = append(c.writes, text)
	return c.err
}

func TestClear(t *testing.T) {
	c := &recordingClipboard{}
	if err := Clear(c); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if len(c.writes) != 1 || c.writes[0] != "" {
		t.Errorf("writes = %q, want one empty write", c.writes)
	}

	c = &recordingClipboard{err: errors.New("no clipboard")}
	if err := Clear(c); err == nil {
		t.Error("clipboard error not propagated")
	}

	if err := Clear(nil); err != nil {
		t.Errorf("Clear(nil) = %v", err)
	}
}
