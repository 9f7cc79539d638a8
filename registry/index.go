package registry

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
)

// Index is a built-once, read-only lookup table keyed by numeric prefix
// (24 bits for an OUI index, 36 bits for an IAB index). Once published by
// its owning package's sync.Once initializer it is never mutated again,
// so concurrent lookups need no further synchronization (spec §5).
type Index struct {
	entries map[uint64][]Entry
	skipped int64
}

// buildIndex parses a bundled flat-file registry into an Index, counting
// (but not failing on) malformed lines.
func buildIndex(data []byte) *Index {
	var skipped atomic.Int64
	raws := parseFlatFile(data, &skipped)

	m := make(map[uint64][]Entry, len(raws))
	for _, r := range raws {
		v, err := hexPrefixToUint(r.prefixHex)
		if err != nil {
			skipped.Add(1)
			continue
		}
		m[v] = append(m[v], Entry{PrefixHex: r.prefixHex, Org: r.org, Address: r.address})
	}
	return &Index{entries: m, skipped: skipped.Load()}
}

// Lookup returns every registered entry for the given numeric prefix, in
// file-appearance order.
func (idx *Index) Lookup(prefix uint64) ([]Entry, bool) {
	e, ok := idx.entries[prefix]
	return e, ok
}

// Count returns the number of registration records for prefix.
func (idx *Index) Count(prefix uint64) int {
	return len(idx.entries[prefix])
}

// SkippedLines returns the number of malformed lines encountered while
// building the index, for test assertions per spec §4.5.
func (idx *Index) SkippedLines() int64 { return idx.skipped }

// SidecarRecord is one line of an oui.idx/iab.idx file: a prefix and the
// byte range of its first record in the source flat file, plus the total
// registration count for that prefix.
type SidecarRecord struct {
	Prefix    uint64
	HexDigits int
	Offset    int64
	Length    int64
	Count     int
}

// BuildSidecar derives the sorted sidecar records for a flat-file
// registry, for use by cmd/oui-indexer.
func BuildSidecar(data []byte, hexDigits int) []SidecarRecord {
	var skipped atomic.Int64
	raws := parseFlatFile(data, &skipped)

	byPrefix := map[uint64]*SidecarRecord{}
	var order []uint64
	for _, r := range raws {
		v, err := hexPrefixToUint(r.prefixHex)
		if err != nil {
			continue
		}
		rec, ok := byPrefix[v]
		if !ok {
			rec = &SidecarRecord{Prefix: v, HexDigits: hexDigits, Offset: r.offset, Length: r.length}
			byPrefix[v] = rec
			order = append(order, v)
		}
		rec.Count++
	}

	out := make([]SidecarRecord, 0, len(order))
	for _, v := range order {
		out = append(out, *byPrefix[v])
	}
	sortSidecar(out)
	return out
}

func sortSidecar(recs []SidecarRecord) {
	for i := 1; i < len(recs); i++ {
		for j := i; j > 0 && recs[j].Prefix < recs[j-1].Prefix; j-- {
			recs[j], recs[j-1] = recs[j-1], recs[j]
		}
	}
}

// WriteSidecar writes records in the §6 "prefix<TAB>offset<TAB>length<TAB>count"
// layout, prefix rendered as zero-padded hex.
func WriteSidecar(w io.Writer, records []SidecarRecord) error {
	for _, r := range records {
		prefixHex := fmt.Sprintf("%0*x", r.HexDigits, r.Prefix)
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", prefixHex, r.Offset, r.Length, r.Count); err != nil {
			return err
		}
	}
	return nil
}

// ReadSidecar parses an oui.idx/iab.idx file written by WriteSidecar.
func ReadSidecar(r io.Reader) ([]SidecarRecord, error) {
	var out []SidecarRecord
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			return nil, fmt.Errorf("registry: malformed sidecar line %q", line)
		}
		prefix, err := strconv.ParseUint(fields[0], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("registry: malformed sidecar prefix %q: %w", fields[0], err)
		}
		offset, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("registry: malformed sidecar offset %q: %w", fields[1], err)
		}
		length, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("registry: malformed sidecar length %q: %w", fields[2], err)
		}
		count, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("registry: malformed sidecar count %q: %w", fields[3], err)
		}
		out = append(out, SidecarRecord{Prefix: prefix, HexDigits: len(fields[0]), Offset: offset, Length: length, Count: count})
	}
	return out, scanner.Err()
}
