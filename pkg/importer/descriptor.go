package importer

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"

	"keyimport-core/pkg/derive"
)

var (
	descOriginRe = regexp.MustCompile(`\[([0-9a-fA-F]{8})((?:/[0-9]+['h]?)*)\]`)
	descXprvRe   = regexp.MustCompile(`xprv[1-9A-HJ-NP-Za-km-z]{70,120}`)
	// Any testnet extended-key marker poisons the whole set.
	descTestnetRe = regexp.MustCompile(`\b[tuv]p(?:rv|ub)[1-9A-HJ-NP-Za-km-z]{70,120}`)
)

// listdescriptorsDoc is the shape of `bitcoin-cli listdescriptors true`.
type listdescriptorsDoc struct {
	Descriptors []struct {
		Desc     string `json:"desc"`
		Internal bool   `json:"internal"`
	} `json:"descriptors"`
}

// ParseDescriptors accepts Bitcoin Core listdescriptors JSON, a JSON array
// of descriptor strings, or newline-separated raw descriptors with # / //
// comment lines. Per-descriptor classification failures are collected and
// tolerated as long as at least one descriptor is usable; a set with no
// private key at all fails NO_PRIVATE_KEYS so callers can tell a
// watch-only export from a parse failure.
func ParseDescriptors(text string, opts Options) (*ImportResult, error) {
	raws, err := collectDescriptorStrings(text)
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, NewImportError(ErrCodeFileParseError, "no descriptors found in input")
	}

	var parsed []ParsedDescriptor
	for _, raw := range raws {
		if descTestnetRe.MatchString(raw) {
			return nil, errTestnetRejected
		}
		d, ok := classifyDescriptor(raw)
		if !ok {
			continue
		}
		parsed = append(parsed, d)
	}
	if len(parsed) == 0 {
		return nil, NewImportError(ErrCodeFileParseError, "no descriptor in the set could be classified")
	}

	result := &ImportResult{
		SourceFormat: FormatDescriptorSet,
		Descriptors:  parsed,
	}

	// Prefer the external (receive) chain's private descriptor as the
	// wallet root.
	var root *ParsedDescriptor
	for i := range parsed {
		if parsed[i].HasPrivateKey && (root == nil || (root.IsInternal && !parsed[i].IsInternal)) {
			root = &parsed[i]
		}
	}
	if root == nil {
		return nil, errNoPrivateKeys
	}

	result.Type = ResultHD
	result.Xprv = root.Xprv
	result.Fingerprint = root.Fingerprint
	if node, err := hdkeychain.NewKeyFromString(root.Xprv); err == nil {
		if result.Fingerprint == "" {
			if fp, err := derive.Fingerprint(node); err == nil {
				result.Fingerprint = fp
			}
		}
		attachNodePreview(result, node, root.ScriptType, opts)
	}
	return result, nil
}

func collectDescriptorStrings(text string) ([]string, error) {
	trimmed := strings.TrimSpace(text)

	if strings.HasPrefix(trimmed, "{") {
		var doc listdescriptorsDoc
		if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
			return nil, NewImportError(ErrCodeFileParseError, "descriptor JSON does not parse")
		}
		out := make([]string, 0, len(doc.Descriptors))
		for _, d := range doc.Descriptors {
			if d.Desc != "" {
				out = append(out, d.Desc)
			}
		}
		return out, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(trimmed), &arr); err != nil {
			return nil, NewImportError(ErrCodeFileParseError, "descriptor JSON array does not parse")
		}
		return arr, nil
	}

	var out []string
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

// classifyDescriptor fills a ParsedDescriptor from one raw descriptor
// string. Unknown outer functions report not-ok and are skipped by the
// caller.
func classifyDescriptor(raw string) (ParsedDescriptor, bool) {
	d := ParsedDescriptor{Raw: raw}

	// Trailing "#checksum" is display sugar; classification ignores it.
	core := strings.SplitN(raw, "#", 2)[0]

	switch {
	case strings.HasPrefix(core, "sh(wpkh("):
		d.ScriptType = ScriptP2SHP2WPK
	case strings.HasPrefix(core, "wpkh("):
		d.ScriptType = ScriptP2WPKH
	case strings.HasPrefix(core, "pkh("):
		d.ScriptType = ScriptP2PKH
	case strings.HasPrefix(core, "tr("):
		d.ScriptType = ScriptP2TR
	default:
		return d, false
	}

	if m := descOriginRe.FindStringSubmatch(core); m != nil {
		d.Fingerprint = strings.ToLower(m[1])
		if m[2] != "" {
			d.DerivationPath = "m" + m[2]
		}
	}
	if xprv := descXprvRe.FindString(core); xprv != "" {
		d.HasPrivateKey = true
		d.Xprv = xprv
	}
	d.IsInternal = strings.Contains(core, "/1/*")
	return d, true
}
