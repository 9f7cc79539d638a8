package ipalg

import (
	"strconv"
	"strings"

	"github.com/ipalg/ipalg/internal/bits128"
)

// Dialects for formatting an EUI-48/EUI-64 address.
const (
	macEUI48        = iota // AA-BB-CC-DD-EE-FF, dash, upper
	macUnix                // a:b:c:d:e:f, colon, lower, no zero-pad
	macUnixExpanded        // aa:bb:cc:dd:ee:ff, colon, lower, zero-padded
	macCisco               // aabb.ccdd.eeff, triple hextet, lower
	macBare                // AABBCCDDEEFF, no separators, upper
	macPgsql               // aabbcc:ddeeff, colon at the midpoint, lower
)

// macStrategy implements the strategy interface for both EUI-48 (w=48) and
// EUI-64 (w=64): the two widths share every parser/formatter, differing
// only in byte count, so one type parameterized by width replaces what
// would otherwise be near-duplicate code for each.
type macStrategy struct{ w int }

func (m macStrategy) family() Family {
	if m.w == 64 {
		return MAC64
	}
	return MAC48
}

func (m macStrategy) width() int { return m.w }

func (m macStrategy) maxVal() bits128.U128 {
	return bits128.Sub1(bits128.Shl(bits128.One, uint(m.w)), bits128.One)
}

func (m macStrategy) nbytes() int { return m.w / 8 }

func (m macStrategy) intToPacked(v bits128.U128) []byte {
	b := bits128.Bytes(v)
	return b[16-m.nbytes():]
}

func (m macStrategy) packedToInt(b []byte) (bits128.U128, error) {
	if len(b) != m.nbytes() {
		return bits128.Zero, newFormatError("", "packed value has the wrong byte length for this EUI width")
	}
	padded := make([]byte, 16)
	copy(padded[16-len(b):], b)
	return bits128.FromBytes(padded), nil
}

func (m macStrategy) format(v bits128.U128, dialect int) string {
	raw := m.intToPacked(v)
	hexPairs := make([]string, len(raw))
	for i, b := range raw {
		hexPairs[i] = byteToHex(b)
	}

	switch dialect {
	case macUnix:
		trimmed := make([]string, len(raw))
		for i, b := range raw {
			trimmed[i] = strconv.FormatUint(uint64(b), 16)
		}
		return strings.Join(trimmed, ":")
	case macUnixExpanded:
		return strings.Join(hexPairs, ":")
	case macCisco:
		joined := strings.Join(hexPairs, "")
		var groups []string
		for i := 0; i < len(joined); i += 4 {
			end := i + 4
			if end > len(joined) {
				end = len(joined)
			}
			groups = append(groups, joined[i:end])
		}
		return strings.Join(groups, ".")
	case macBare:
		return strings.ToUpper(strings.Join(hexPairs, ""))
	case macPgsql:
		joined := strings.Join(hexPairs, "")
		mid := len(joined) / 2
		return joined[:mid] + ":" + joined[mid:]
	default: // macEUI48
		return strings.ToUpper(strings.Join(hexPairs, "-"))
	}
}

func byteToHex(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0xF]})
}

// parseText implements the EUI parser families of spec §4.1: IEEE dash,
// UNIX colon (zero-padded or not), Cisco triple-hextet, bare hex, and
// PostgreSQL macaddr8 form. Ties are broken by trying the strictest
// fully-matching grammar first.
func (m macStrategy) parseText(text string, _ Flag) (bits128.U128, error) {
	nbytes := m.nbytes()

	if v, ok := tryParseDelimited(text, "-", nbytes); ok {
		return v, nil
	}
	if v, ok := tryParseDelimited(text, ":", nbytes); ok {
		return v, nil
	}
	if v, ok := tryParseCisco(text, nbytes); ok {
		return v, nil
	}
	if v, ok := tryParsePgsql(text, nbytes); ok {
		return v, nil
	}
	if v, ok := tryParseBare(text, nbytes); ok {
		return v, nil
	}
	return bits128.Zero, newFormatError(text, "does not match any recognized EUI grammar")
}

// tryParseDelimited handles both IEEE dash and UNIX colon forms: each
// component is 1 or 2 hex digits, one component per byte.
func tryParseDelimited(text, sep string, nbytes int) (bits128.U128, bool) {
	parts := strings.Split(text, sep)
	if len(parts) != nbytes {
		return bits128.Zero, false
	}
	b := make([]byte, nbytes)
	for i, p := range parts {
		if len(p) == 0 || len(p) > 2 {
			return bits128.Zero, false
		}
		n, err := strconv.ParseUint(p, 16, 16)
		if err != nil {
			return bits128.Zero, false
		}
		b[i] = byte(n)
	}
	v, err := macStrategy{w: nbytes * 8}.packedToInt(b)
	if err != nil {
		return bits128.Zero, false
	}
	return v, true
}

// tryParseCisco handles the Cisco triple-hextet form: groups of 4 hex
// digits separated by '.', e.g. "aabb.ccdd.eeff".
func tryParseCisco(text string, nbytes int) (bits128.U128, bool) {
	if nbytes%2 != 0 {
		return bits128.Zero, false
	}
	groups := strings.Split(text, ".")
	if len(groups) != nbytes/2 {
		return bits128.Zero, false
	}
	var hexStr strings.Builder
	for _, g := range groups {
		if len(g) != 4 {
			return bits128.Zero, false
		}
		hexStr.WriteString(g)
	}
	return decodeHexBytes(hexStr.String(), nbytes)
}

// tryParsePgsql handles PostgreSQL's "aabbcc:ddeeff" macaddr8-style form:
// exactly one colon at the midpoint of the hex digits.
func tryParsePgsql(text string, nbytes int) (bits128.U128, bool) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return bits128.Zero, false
	}
	want := nbytes // total hex digits expected = nbytes*2, split evenly
	if len(parts[0])+len(parts[1]) != want*2 {
		return bits128.Zero, false
	}
	if len(parts[0]) != want || len(parts[1]) != want {
		return bits128.Zero, false
	}
	return decodeHexBytes(parts[0]+parts[1], nbytes)
}

// tryParseBare handles an unbroken string of hex digits.
func tryParseBare(text string, nbytes int) (bits128.U128, bool) {
	if len(text) != nbytes*2 {
		return bits128.Zero, false
	}
	return decodeHexBytes(text, nbytes)
}

func decodeHexBytes(hexStr string, nbytes int) (bits128.U128, bool) {
	if len(hexStr) != nbytes*2 {
		return bits128.Zero, false
	}
	b := make([]byte, nbytes)
	for i := 0; i < nbytes; i++ {
		n, err := strconv.ParseUint(hexStr[i*2:i*2+2], 16, 16)
		if err != nil {
			return bits128.Zero, false
		}
		b[i] = byte(n)
	}
	v, err := macStrategy{w: nbytes * 8}.packedToInt(b)
	if err != nil {
		return bits128.Zero, false
	}
	return v, true
}

// ValidMAC48 reports whether text parses as an EUI-48 address in any
// recognized dialect, without constructing an EUI.
func ValidMAC48(text string) bool { return validMAC(text, 48) }

// ValidMAC64 reports whether text parses as an EUI-64 address in any
// recognized dialect, without constructing an EUI.
func ValidMAC64(text string) bool { return validMAC(text, 64) }

// validMAC is a boolean validator that never raises: it tries the same
// per-dialect grammar matchers parseText tries, each of which already
// reports match/no-match as a bool rather than an error, instead of
// calling parseText and checking for a non-nil error (Design Note
// "Exception-as-validation").
func validMAC(text string, width int) bool {
	nbytes := width / 8
	if _, ok := tryParseDelimited(text, "-", nbytes); ok {
		return true
	}
	if _, ok := tryParseDelimited(text, ":", nbytes); ok {
		return true
	}
	if _, ok := tryParseCisco(text, nbytes); ok {
		return true
	}
	if _, ok := tryParsePgsql(text, nbytes); ok {
		return true
	}
	if _, ok := tryParseBare(text, nbytes); ok {
		return true
	}
	return false
}
