package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"

	"keyimport-core/pkg/derive"
)

// Comment markers mined out of a dumpwallet header. Everything else in
// comments is ignored.
const (
	dumpMasterKeyMarker = "extended private masterkey:"
	dumpBestBlockMarker = "best block"
	dumpCreatedMarker   = "created on"
)

var (
	dumpBestBlockRe = regexp.MustCompile(`was (\d+)`)
	dumpMainnetWIF  = regexp.MustCompile(`^[5KL][1-9A-HJ-NP-Za-km-z]{50,51}$`)
	dumpTestnetWIF  = regexp.MustCompile(`^[9c][1-9A-HJ-NP-Za-km-z]{50,51}$`)
)

// ParseDumpwallet is the line-oriented parser for Bitcoin Core `dumpwallet`
// output. Testnet WIF lines are silently skipped, not errors: dump files
// can be mixed-network and only mainnet entries matter here. A dump with
// an extended private masterkey is promoted to an hd import; otherwise it
// is a key_set. Zero extracted secrets is a hard failure.
func ParseDumpwallet(text string, opts Options) (*ImportResult, error) {
	result := &ImportResult{SourceFormat: FormatDumpwallet}

	var masterXprv string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			xprv, err := scanDumpComment(line, result)
			if err != nil {
				return nil, err
			}
			if xprv != "" {
				masterXprv = xprv
			}
			continue
		}

		key, ok := parseDumpKeyLine(line)
		if ok {
			result.Keys = append(result.Keys, key)
		}
	}

	if len(result.Keys) == 0 && masterXprv == "" {
		return nil, errNoPrivateKeys
	}

	if masterXprv != "" {
		result.Type = ResultHD
		result.Xprv = masterXprv
		if node, err := hdkeychain.NewKeyFromString(masterXprv); err == nil {
			if fp, err := derive.Fingerprint(node); err == nil {
				result.Fingerprint = fp
			}
			attachNodePreview(result, node, opts.script(), opts)
		}
	} else {
		result.Type = ResultKeySet
		result.PreviewAddress = firstDumpAddress(result.Keys)
	}
	return result, nil
}

// scanDumpComment extracts the three recognized markers from a comment
// line. It returns the master xprv when the line carries one.
func scanDumpComment(line string, result *ImportResult) (string, error) {
	lower := strings.ToLower(line)

	if idx := strings.Index(lower, dumpMasterKeyMarker); idx >= 0 {
		candidate := strings.TrimSpace(line[idx+len(dumpMasterKeyMarker):])
		if candidate == "" {
			return "", nil
		}
		entry, _, err := lookupExtendedVersion(candidate)
		if err != nil {
			return "", NewImportError(ErrCodeFileParseError,
				"extended private masterkey in dump header does not decode")
		}
		if !entry.isMainnet {
			return "", errTestnetRejected
		}
		if !entry.isPrivate {
			return "", errNoPrivateKeys
		}
		return candidate, nil
	}

	if strings.Contains(lower, dumpBestBlockMarker) {
		if m := dumpBestBlockRe.FindStringSubmatch(line); m != nil {
			if height, err := strconv.ParseInt(m[1], 10, 64); err == nil {
				result.BestBlockHeight = height
			}
		}
		return "", nil
	}

	if idx := strings.Index(lower, dumpCreatedMarker); idx >= 0 {
		stamp := strings.TrimSpace(line[idx+len(dumpCreatedMarker):])
		if t, err := time.Parse(time.RFC3339, stamp); err == nil {
			result.CreatedAt = t.Unix()
		}
		return "", nil
	}

	return "", nil
}

// parseDumpKeyLine handles `WIF timestamp [key=value...] [# label]` rows.
// Anything that is not a decodable mainnet WIF row reports not-ok and the
// caller moves on.
func parseDumpKeyLine(line string) (ImportedKey, bool) {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return ImportedKey{}, false
	}

	candidate := fields[0]
	if dumpTestnetWIF.MatchString(candidate) {
		return ImportedKey{}, false
	}
	if !dumpMainnetWIF.MatchString(candidate) {
		return ImportedKey{}, false
	}
	wif, err := btcutil.DecodeWIF(candidate)
	if err != nil || !wif.IsForNet(&chaincfg.MainNetParams) {
		return ImportedKey{}, false
	}

	key := ImportedKey{
		WIF:        wif.String(),
		Compressed: wif.CompressPubKey,
	}

	if len(fields) > 1 {
		if t, err := time.Parse(time.RFC3339, fields[1]); err == nil {
			key.Timestamp = t.Unix()
		}
	}

	var labelWords []string
	inLabel := false
	for _, tok := range fields[2:] {
		switch {
		case tok == "#":
			inLabel = true
		case strings.HasPrefix(tok, "addr="):
			key.Address = strings.TrimPrefix(tok, "addr=")
		case strings.HasPrefix(tok, "hdkeypath="):
			key.HDKeypath = strings.TrimPrefix(tok, "hdkeypath=")
			key.IsChange = strings.Contains(key.HDKeypath, "/1/")
		case strings.HasPrefix(tok, "label="):
			if v := strings.TrimPrefix(tok, "label="); v != "" {
				labelWords = append(labelWords, v)
			}
		case strings.Contains(tok, "="):
			// hdseed=1, reserve=1 and friends carry no import data.
		case inLabel:
			labelWords = append(labelWords, tok)
		}
	}
	key.Label = strings.Join(labelWords, " ")

	return key, true
}

func firstDumpAddress(keys []ImportedKey) string {
	for _, k := range keys {
		if k.Address != "" {
			return k.Address
		}
	}
	return ""
}
