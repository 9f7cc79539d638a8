package ipalg

import "github.com/ipalg/ipalg/internal/bits128"

// Family identifies one of the four address families this package
// understands. Every value above the strategy layer carries a Family and
// dispatches parsing, formatting and packing through the matching strategy
// singleton (see Design Note "Dynamic polymorphism across families"); a few
// family-specific operations (reverse-DNS names, host iteration, the
// special-purpose registry lookup) still check the Family directly.
type Family uint8

const (
	// IPv4 is the 32-bit Internet Protocol version 4 family.
	IPv4 Family = iota
	// IPv6 is the 128-bit Internet Protocol version 6 family.
	IPv6
	// MAC48 is the 48-bit IEEE EUI-48 family (classic MAC addresses).
	MAC48
	// MAC64 is the 64-bit IEEE EUI-64 family.
	MAC64
)

func (f Family) String() string {
	switch f {
	case IPv4:
		return "IPv4"
	case IPv6:
		return "IPv6"
	case MAC48:
		return "EUI-48"
	case MAC64:
		return "EUI-64"
	default:
		return "unknown"
	}
}

// IsIP reports whether f is one of the two IP families.
func (f Family) IsIP() bool { return f == IPv4 || f == IPv6 }

// strategy is the per-family primitive set of spec §4.1: bit width, max
// value, parse/format, packed conversion. Every value stores its
// value_int uniformly as a bits128.U128 (128 bits safely holds all four
// widths) and a strategy handle bound once at construction time.
type strategy interface {
	family() Family
	width() int
	maxVal() bits128.U128
	parseText(text string, flags Flag) (bits128.U128, error)
	format(v bits128.U128, dialect int) string
	packedToInt(b []byte) (bits128.U128, error)
	intToPacked(v bits128.U128) []byte
}

func strategyFor(f Family) strategy {
	switch f {
	case IPv4:
		return ipv4Strategy{}
	case IPv6:
		return ipv6Strategy{}
	case MAC48:
		return macStrategy{w: 48}
	case MAC64:
		return macStrategy{w: 64}
	default:
		panic("ipalg: unknown family")
	}
}

// reduceMod reduces v into [0, 2^width) for the given strategy, per the
// data-model invariant that value_int is always reduced mod 2^width.
func reduceMod(s strategy, v bits128.U128) bits128.U128 {
	if s.width() >= 128 {
		return v
	}
	return bits128.And(v, s.maxVal())
}
