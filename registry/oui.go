package registry

import (
	_ "embed"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ipalg/ipalg"
)

//go:embed testdata/oui.txt
var ouiData []byte

var (
	ouiOnce  sync.Once
	ouiIndex atomic.Pointer[Index]
)

// ouiIdx returns the process-wide OUI index, building it from the bundled
// flat file on first use and publishing it atomically (spec §5: a
// one-shot guard so exactly one goroutine builds, all others wait; the
// index is read-only after publication).
func ouiIdx() *Index {
	ouiOnce.Do(func() {
		ouiIndex.Store(buildIndex(ouiData))
	})
	return ouiIndex.Load()
}

// OUIRegistrations returns every registration for the 24-bit OUI
// identified by prefix, which may be given as "AA-BB-CC", "AABBCC", or a
// bare integer string in [0, 2^24).
func OUIRegistrations(prefix string) ([]Entry, error) {
	v, err := parseOUIPrefix(prefix)
	if err != nil {
		return nil, err
	}
	entries, ok := ouiIdx().Lookup(v)
	if !ok {
		return nil, ipalg.NewNotRegisteredError(prefix)
	}
	return entries, nil
}

// OUISkippedLines reports how many malformed lines were skipped while
// building the OUI index (forces the index to build if it hasn't yet).
func OUISkippedLines() int64 { return ouiIdx().SkippedLines() }

func parseOUIPrefix(prefix string) (uint64, error) {
	if strings.Contains(prefix, "-") || strings.Contains(prefix, ":") {
		digits := strings.NewReplacer("-", "", ":", "").Replace(prefix)
		return strconv.ParseUint(digits, 16, 32)
	}
	if len(prefix) == 6 {
		if v, err := strconv.ParseUint(prefix, 16, 32); err == nil {
			return v, nil
		}
	}
	return strconv.ParseUint(prefix, 10, 32)
}
