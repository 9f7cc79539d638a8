// Package registry implements the OUI/IAB lookup layer of spec §4.5: a
// build-once index over IEEE's flat-file oui.txt/iab.txt registries,
// generalizing the teacher's line-oriented "iana" package from a static
// IANA reservation table to a lazily-built, in-memory lookup over
// megabyte-scale bundled text. Per-record byte offsets are recorded only
// for the oui.idx/iab.idx sidecar (BuildSidecar); lookups do not read it.
package registry

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
	"sync/atomic"
)

// Entry is one organizational-registration record: a 24-bit OUI or 36-bit
// IAB prefix, the organization name, and its free-form address lines, in
// file-appearance order (a single prefix may have multiple historical
// entries).
type Entry struct {
	PrefixHex string
	Org       string
	Address   []string
}

// rawRecord is an intermediate parse result before the prefix text is
// interpreted as hex.
type rawRecord struct {
	prefixHex string
	org       string
	address   []string
	offset    int64
	length    int64
}

// parseFlatFile scans an IEEE flat-file registry (oui.txt or iab.txt
// format): a record header line containing the "(hex)" marker --
// "<prefix>   (hex)\t\t<org name>" -- followed by zero or more indented
// address lines, terminated by a blank line or the next record. Malformed
// lines are skipped and counted rather than aborting the scan, per spec
// §4.5's failure semantics.
func parseFlatFile(data []byte, skipped *atomic.Int64) []rawRecord {
	var out []rawRecord
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var offset int64
	var cur *rawRecord

	flush := func() {
		if cur != nil {
			cur.length = offset - cur.offset
			out = append(out, *cur)
			cur = nil
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineLen := int64(len(scanner.Bytes())) + 1 // approximate, +1 for newline
		lineStart := offset
		offset += lineLen

		if strings.Contains(line, "(hex)") {
			flush()
			prefix, org, ok := parseHexHeaderLine(line)
			if !ok {
				skipped.Add(1)
				continue
			}
			cur = &rawRecord{prefixHex: prefix, org: org, offset: lineStart}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if cur != nil && (strings.HasPrefix(line, "\t") || strings.HasPrefix(line, " ")) {
			cur.address = append(cur.address, trimmed)
			continue
		}
		// any other non-blank line (not indented, or outside an open
		// record) is ignored without being counted: e.g. the "(base 16)"
		// restatement of the prefix, which this parser does not need, or
		// stray text between records.
	}
	flush()
	return out
}

// parseHexHeaderLine splits "<prefix>   (hex)\t\t<org>" into its prefix
// and organization name. Returns ok=false for anything that doesn't match
// this shape.
func parseHexHeaderLine(line string) (prefixHex, org string, ok bool) {
	idx := strings.Index(line, "(hex)")
	if idx == -1 {
		return "", "", false
	}
	prefix := strings.TrimSpace(line[:idx])
	rest := strings.TrimSpace(line[idx+len("(hex)"):])
	if prefix == "" || rest == "" {
		return "", "", false
	}
	return prefix, rest, true
}

// hexPrefixToUint parses a dash-separated hex prefix ("00-1B-77" or
// "00-50-C2-3AB") into its integer value, ignoring dashes.
func hexPrefixToUint(prefixHex string) (uint64, error) {
	digits := strings.ReplaceAll(prefixHex, "-", "")
	return strconv.ParseUint(digits, 16, 64)
}
