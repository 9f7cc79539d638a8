// Package ipalg is a pure-computation library for parsing, canonicalizing,
// classifying, enumerating, combining and formatting Layer-3 (IPv4, IPv6)
// and Layer-2 (EUI-48, EUI-64) addresses, plus the CIDR / arbitrary-range /
// set algebra layered on top. It performs no I/O and opens no sockets; it
// is a toolkit consumed by tooling that needs address arithmetic.
package ipalg

import (
	"bytes"

	"github.com/ipalg/ipalg/internal/bits128"
)

// IPAddress is a single IPv4 or IPv6 address: a (value_int, strategy) pair
// per spec §3. It is immutable in contract -- every operation that changes
// the value returns a new IPAddress.
type IPAddress struct {
	val  bits128.U128
	fam  Family
	zone string
}

// NewIPAddressFromString parses text into an IPAddress, auto-detecting the
// family by trying IPv6 grammar when the text contains ':' and IPv4
// grammar otherwise.
func NewIPAddressFromString(text string, flags Flag) (IPAddress, error) {
	if containsByte(text, ':') {
		body, zone, zerr := splitZone(text)
		if zerr != nil {
			return IPAddress{}, newFormatError(text, zerr.Error())
		}
		v, err := ipv6Strategy{}.parseText(body, flags)
		if err != nil {
			return IPAddress{}, err
		}
		return IPAddress{val: v, fam: IPv6, zone: zone}, nil
	}
	v, err := ipv4Strategy{}.parseText(text, flags)
	if err != nil {
		return IPAddress{}, err
	}
	return IPAddress{val: v, fam: IPv4}, nil
}

func containsByte(s string, c byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return true
		}
	}
	return false
}

// NewIPAddressFromUint32 builds an IPv4 IPAddress directly from an integer.
func NewIPAddressFromUint32(v uint32) IPAddress {
	return IPAddress{val: bits128.FromLo64(uint64(v)), fam: IPv4}
}

// NewIPAddressFromBig128 builds an IPv6 IPAddress from a 128-bit value
// given as big-endian bytes (len must be 16).
func NewIPAddressFromBig128(b [16]byte) IPAddress {
	return IPAddress{val: bits128.FromBytes(b[:]), fam: IPv6}
}

// NewIPAddressFromPacked builds an IPAddress from packed bytes, choosing
// the family by length: 4 bytes -> IPv4, 16 bytes -> IPv6.
func NewIPAddressFromPacked(b []byte) (IPAddress, error) {
	switch len(b) {
	case 4:
		v, err := ipv4Strategy{}.packedToInt(b)
		if err != nil {
			return IPAddress{}, err
		}
		return IPAddress{val: v, fam: IPv4}, nil
	case 16:
		v, err := ipv6Strategy{}.packedToInt(b)
		if err != nil {
			return IPAddress{}, err
		}
		return IPAddress{val: v, fam: IPv6}, nil
	default:
		return IPAddress{}, newFormatError("", "packed address must be 4 or 16 bytes")
	}
}

// Family returns the address family.
func (a IPAddress) Family() Family { return a.fam }

// Zone returns the IPv6 zone suffix, or "" if none was present/applicable.
func (a IPAddress) Zone() string { return a.zone }

// Uint128 exposes the raw 128-bit integer value (IPv4 values occupy the
// low 32 bits).
func (a IPAddress) Uint128() bits128.U128 { return a.val }

func (a IPAddress) strategy() strategy { return strategyFor(a.fam) }

// String renders the address in its canonical dialect: dotted-quad for
// IPv4, RFC 5952 compact form (plus zone, if any) for IPv6.
func (a IPAddress) String() string {
	switch a.fam {
	case IPv4:
		return ipv4Strategy{}.format(a.val, ipv4Canonical)
	case IPv6:
		s := ipv6Strategy{}.format(a.val, ipv6Compact)
		if a.zone != "" {
			return s + "%" + a.zone
		}
		return s
	default:
		return ""
	}
}

// Format renders the address using an explicit dialect constant
// (ipv6Compact/ipv6Full/ipv6Verbose for IPv6; ignored for IPv4).
func (a IPAddress) Format(dialect int) string {
	return a.strategy().format(a.val, dialect)
}

// Packed returns the address as big-endian bytes (4 for IPv4, 16 for IPv6).
func (a IPAddress) Packed() []byte {
	return a.strategy().intToPacked(a.val)
}

// Equal reports whether a and b denote the same address, family included.
func (a IPAddress) Equal(b IPAddress) bool {
	return a.fam == b.fam && bits128.Cmp(a.val, b.val) == 0
}

// Compare orders a relative to b by (family_tag, int), IPv4 sorting before
// IPv6 (matching the IPSet canonical ordering in spec §3). Returns -1, 0, 1.
// Returns a Conversion-shaped -2 sentinel never: cross-family comparisons
// are well-defined (family is part of the sort key), unlike arithmetic.
func (a IPAddress) Compare(b IPAddress) int {
	if a.fam != b.fam {
		if a.fam < b.fam {
			return -1
		}
		return 1
	}
	return bits128.Cmp(a.val, b.val)
}

// Add returns a new IPAddress offset by delta (may be negative), failing
// with AddrFormatError if the result leaves [0, max_int].
func (a IPAddress) Add(delta int64) (IPAddress, error) {
	s := a.strategy()
	if delta >= 0 {
		sum, overflow := bits128.Add(a.val, bits128.FromLo64(uint64(delta)))
		if overflow || bits128.Cmp(sum, s.maxVal()) > 0 {
			return IPAddress{}, newFormatError(a.String(), "address arithmetic overflowed the family's address space")
		}
		return IPAddress{val: sum, fam: a.fam, zone: a.zone}, nil
	}
	diff, underflow := bits128.Sub(a.val, bits128.FromLo64(uint64(-delta)))
	if underflow {
		return IPAddress{}, newFormatError(a.String(), "address arithmetic underflowed the family's address space")
	}
	return IPAddress{val: diff, fam: a.fam, zone: a.zone}, nil
}

// Next returns the address incremented by one, per spec.
func (a IPAddress) Next() (IPAddress, error) { return a.Add(1) }

// Previous returns the address decremented by one, per spec.
func (a IPAddress) Previous() (IPAddress, error) { return a.Add(-1) }

// BitLen returns the position (1-indexed from the LSB) of the address's
// highest set bit, or 0 for the all-zeroes address.
func (a IPAddress) BitLen() int { return bits128.BitLen(a.val) }

// HexString returns the address rendered as an unpunctuated hex string.
func (a IPAddress) HexString() string {
	b := a.Packed()
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0xF]
	}
	return string(out)
}

// isIPv4Mapped reports whether a is an IPv4-mapped IPv6 address
// (::ffff:a.b.c.d).
func (a IPAddress) isIPv4Mapped() bool {
	if a.fam != IPv6 {
		return false
	}
	b := bits128.Bytes(a.val)
	prefix := []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff}
	return bytes.Equal(b[:12], prefix)
}

func (a IPAddress) isIPv4Compat() bool {
	if a.fam != IPv6 {
		return false
	}
	b := bits128.Bytes(a.val)
	for i := 0; i < 12; i++ {
		if b[i] != 0 {
			return false
		}
	}
	for i := 12; i < 16; i++ {
		if b[i] != 0 {
			return true
		}
	}
	return false
}

// ToIPv4Mapped converts a IPv4 address into its RFC 4291 IPv4-mapped IPv6
// form (::ffff:a.b.c.d).
func (a IPAddress) ToIPv4Mapped() (IPAddress, error) {
	if a.fam != IPv4 {
		return IPAddress{}, newConversionError(a.fam, IPv6, "only an IPv4 address can be mapped into IPv6")
	}
	var b [16]byte
	b[10], b[11] = 0xff, 0xff
	src := bits128.Bytes(a.val)
	copy(b[12:], src[12:])
	return NewIPAddressFromBig128(b), nil
}

// ToIPv4 extracts the embedded IPv4 address from an IPv4-mapped or
// IPv4-compatible IPv6 address.
func (a IPAddress) ToIPv4() (IPAddress, error) {
	if a.fam != IPv6 || (!a.isIPv4Mapped() && !a.isIPv4Compat()) {
		return IPAddress{}, newConversionError(a.fam, IPv4, "address is not IPv4-mapped or IPv4-compatible")
	}
	b := bits128.Bytes(a.val)
	v, _ := ipv4Strategy{}.packedToInt(b[12:16])
	return IPAddress{val: v, fam: IPv4}, nil
}

// Classification predicates, table-driven against ipalg/specialreg (see
// SPEC_FULL.md §4.2).

func (a IPAddress) classify() []specialregMatch {
	return matchSpecialReg(a)
}

func (a IPAddress) IsLoopback() bool  { return a.hasTitle("Loopback") || a.hasTitle("Loopback Address") }
func (a IPAddress) IsUnspecified() bool {
	return a.hasTitle("Unspecified Address") || (a.fam == IPv4 && bits128.IsZero(a.val))
}
func (a IPAddress) IsLinkLocal() bool {
	return a.hasTitle("Link Local") || a.hasTitle("Link-Local Unicast")
}
func (a IPAddress) IsMulticast() bool { return a.hasTitle("Multicast") }
func (a IPAddress) IsPrivate() bool   { return a.hasTitle("Private-Use") || a.hasTitle("Unique-Local") }
func (a IPAddress) IsReserved() bool {
	for _, m := range a.classify() {
		if m.reservation.Reserved {
			return true
		}
	}
	return false
}
func (a IPAddress) IsGlobalUnicast() bool {
	if a.IsMulticast() || a.IsLoopback() || a.IsUnspecified() || a.IsLinkLocal() {
		return false
	}
	for _, m := range a.classify() {
		if !m.reservation.Global && m.reservation.Title != "" {
			return false
		}
	}
	return true
}
func (a IPAddress) IsIPv4Mapped() bool { return a.isIPv4Mapped() }
func (a IPAddress) IsIPv4Compat() bool { return a.isIPv4Compat() }

func (a IPAddress) hasTitle(title string) bool {
	for _, m := range a.classify() {
		if m.reservation.Title == title {
			return true
		}
	}
	return false
}
