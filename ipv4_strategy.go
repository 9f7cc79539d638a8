package ipalg

import (
	"strconv"
	"strings"

	"github.com/ipalg/ipalg/internal/bits128"
)

// Dialects for formatting an IPv4 address. There is currently only one;
// the constant exists so format() has a uniform signature across families.
const (
	ipv4Canonical = iota
)

type ipv4Strategy struct{}

func (ipv4Strategy) family() Family       { return IPv4 }
func (ipv4Strategy) width() int           { return 32 }
func (ipv4Strategy) maxVal() bits128.U128 { return bits128.FromLo64(1<<32 - 1) }
func (s ipv4Strategy) intToPacked(v bits128.U128) []byte {
	b := bits128.Bytes(v)
	return b[12:16]
}

func (ipv4Strategy) packedToInt(b []byte) (bits128.U128, error) {
	if len(b) != 4 {
		return bits128.Zero, newFormatError("", "packed IPv4 value must be exactly 4 bytes")
	}
	padded := make([]byte, 16)
	copy(padded[12:], b)
	return bits128.FromBytes(padded), nil
}

func (ipv4Strategy) format(v bits128.U128, _ int) string {
	b := bits128.Bytes(v)
	o := b[12:16]
	return strconv.Itoa(int(o[0])) + "." + strconv.Itoa(int(o[1])) + "." +
		strconv.Itoa(int(o[2])) + "." + strconv.Itoa(int(o[3]))
}

// parseText implements the IPv4 parser grammar of spec §4.1: classic
// dotted-quad, partial inet_aton forms (a / a.b / a.b.c), and per-octet
// decimal/octal/hex in the default (legacy) mode; strict decimal-only
// dotted-quad under INET_PTON; leading-zero stripping under ZEROFILL.
func (ipv4Strategy) parseText(text string, flags Flag) (bits128.U128, error) {
	if text == "" {
		return bits128.Zero, newFormatError(text, "empty IPv4 address")
	}

	if flags.Has(INET_PTON) {
		return parseIPv4Strict(text)
	}

	parts := strings.Split(text, ".")
	if len(parts) > 4 {
		return bits128.Zero, newFormatError(text, "too many octets for IPv4 address")
	}

	vals := make([]uint64, len(parts))
	for i, p := range parts {
		if p == "" {
			return bits128.Zero, newFormatError(text, "empty octet in IPv4 address")
		}
		if flags.Has(ZEROFILL) {
			p = stripLeadingZeros(p)
		}
		n, err := parseAtonOctet(p)
		if err != nil {
			return bits128.Zero, newFormatError(text, err.Error())
		}
		vals[i] = n
	}

	// inet_aton packed semantics: the last element absorbs the remaining
	// width, earlier elements are single octets.
	var total uint64
	switch len(vals) {
	case 1:
		if vals[0] > 0xFFFFFFFF {
			return bits128.Zero, newFormatError(text, "value out of range for IPv4 address")
		}
		total = vals[0]
	case 2:
		if vals[0] > 0xFF || vals[1] > 0xFFFFFF {
			return bits128.Zero, newFormatError(text, "octet out of range in IPv4 address")
		}
		total = vals[0]<<24 | vals[1]
	case 3:
		if vals[0] > 0xFF || vals[1] > 0xFF || vals[2] > 0xFFFF {
			return bits128.Zero, newFormatError(text, "octet out of range in IPv4 address")
		}
		total = vals[0]<<24 | vals[1]<<16 | vals[2]
	case 4:
		for _, v := range vals {
			if v > 0xFF {
				return bits128.Zero, newFormatError(text, "octet out of range in IPv4 address")
			}
		}
		total = vals[0]<<24 | vals[1]<<16 | vals[2]<<8 | vals[3]
	}

	b := make([]byte, 16)
	b[12] = byte(total >> 24)
	b[13] = byte(total >> 16)
	b[14] = byte(total >> 8)
	b[15] = byte(total)
	return bits128.FromBytes(b), nil
}

func stripLeadingZeros(s string) string {
	neg := strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
	if neg {
		return s
	}
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}

// parseAtonOctet parses a single inet_aton component: decimal, 0x-prefixed
// hex, or 0-prefixed octal.
func parseAtonOctet(p string) (uint64, error) {
	base := 10
	switch {
	case strings.HasPrefix(p, "0x") || strings.HasPrefix(p, "0X"):
		base = 16
		p = p[2:]
	case len(p) > 1 && p[0] == '0':
		base = 8
	}
	if p == "" {
		return 0, errInvalidOctet
	}
	n, err := strconv.ParseUint(p, base, 64)
	if err != nil {
		return 0, errInvalidOctet
	}
	return n, nil
}

var errInvalidOctet = errStr("invalid octet")

type errStr string

func (e errStr) Error() string { return string(e) }

// parseIPv4Strict implements INET_PTON mode: exactly four decimal octets,
// no leading zeros (except a lone "0"), each 0..255.
func parseIPv4Strict(text string) (bits128.U128, error) {
	parts := strings.Split(text, ".")
	if len(parts) != 4 {
		return bits128.Zero, newFormatError(text, "INET_PTON requires exactly four octets")
	}
	b := make([]byte, 16)
	for i, p := range parts {
		if p == "" || len(p) > 3 {
			return bits128.Zero, newFormatError(text, "invalid octet length")
		}
		if len(p) > 1 && p[0] == '0' {
			return bits128.Zero, newFormatError(text, "leading zeros not allowed under INET_PTON")
		}
		for _, c := range p {
			if c < '0' || c > '9' {
				return bits128.Zero, newFormatError(text, "non-decimal digit under INET_PTON")
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil || n > 255 {
			return bits128.Zero, newFormatError(text, "octet out of range 0..255")
		}
		b[12+i] = byte(n)
	}
	return bits128.FromBytes(b), nil
}

// ValidIPv4 reports whether text parses as an IPv4 address under flags,
// without constructing an IPAddress.
func ValidIPv4(text string, flags Flag) bool { return validIPv4(text, flags) }

// validIPv4 is a boolean validator that never raises: it re-derives the
// same grammar's structural bounds directly, rather than calling parseText
// and checking for a non-nil error (Design Note "Exception-as-validation").
func validIPv4(text string, flags Flag) bool {
	if text == "" {
		return false
	}
	if flags.Has(INET_PTON) {
		return validIPv4Strict(text)
	}

	parts := strings.Split(text, ".")
	if len(parts) > 4 {
		return false
	}

	vals := make([]uint64, len(parts))
	for i, p := range parts {
		if p == "" {
			return false
		}
		if flags.Has(ZEROFILL) {
			p = stripLeadingZeros(p)
		}
		n, err := parseAtonOctet(p)
		if err != nil {
			return false
		}
		vals[i] = n
	}

	switch len(vals) {
	case 1:
		return vals[0] <= 0xFFFFFFFF
	case 2:
		return vals[0] <= 0xFF && vals[1] <= 0xFFFFFF
	case 3:
		return vals[0] <= 0xFF && vals[1] <= 0xFF && vals[2] <= 0xFFFF
	case 4:
		for _, v := range vals {
			if v > 0xFF {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// validIPv4Strict mirrors parseIPv4Strict's INET_PTON grammar (exactly
// four decimal octets, no leading zeros except a lone "0", each 0..255)
// without constructing a value.
func validIPv4Strict(text string) bool {
	parts := strings.Split(text, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if p == "" || len(p) > 3 {
			return false
		}
		if len(p) > 1 && p[0] == '0' {
			return false
		}
		for _, c := range p {
			if c < '0' || c > '9' {
				return false
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}
