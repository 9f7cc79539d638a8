package registry

import (
	_ "embed"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ipalg/ipalg"
)

//go:embed testdata/iab.txt
var iabData []byte

var (
	iabOnce  sync.Once
	iabIndex atomic.Pointer[Index]
)

func iabIdx() *Index {
	iabOnce.Do(func() {
		iabIndex.Store(buildIndex(iabData))
	})
	return iabIndex.Load()
}

// legacyIABOUI and newIABOUI are the two OUIs IEEE reserved for Individual
// Address Block sub-assignment (spec §4.5).
const (
	legacyIABOUI uint64 = 0x0050C2
	newIABOUI    uint64 = 0x40D855
)

// IABRegistrations returns every registration for the 36-bit IAB prefix
// identified by prefix, given as "AA-BB-CC-SSS" (OUI dash-joined with the
// 12-bit sub-block in 3 hex digits) or a bare integer string.
func IABRegistrations(prefix string) ([]Entry, error) {
	v, err := parseIABPrefix(prefix)
	if err != nil {
		return nil, err
	}
	entries, ok := iabIdx().Lookup(v)
	if !ok {
		return nil, ipalg.NewNotRegisteredError(prefix)
	}
	return entries, nil
}

// IsIABOUI reports whether oui (a 24-bit value) is one of the two blocks
// IEEE reserved for IAB sub-assignment.
func IsIABOUI(oui uint32) bool {
	return uint64(oui) == legacyIABOUI || uint64(oui) == newIABOUI
}

// IABSkippedLines reports how many malformed lines were skipped while
// building the IAB index.
func IABSkippedLines() int64 { return iabIdx().SkippedLines() }

func parseIABPrefix(prefix string) (uint64, error) {
	if strings.Contains(prefix, "-") {
		digits := strings.ReplaceAll(prefix, "-", "")
		return strconv.ParseUint(digits, 16, 64)
	}
	return strconv.ParseUint(prefix, 10, 64)
}
