package ipalg

// Flag is a bitmask of parser/construction options, combinable with the
// bitwise-OR operator, e.g. INET_PTON|ZEROFILL.
type Flag uint8

const (
	// INET_PTON requires strict IPv4 dotted-quad parsing: exactly four
	// decimal octets, no leading zeros, each in 0..255. Required for
	// safely parsing untrusted input.
	INET_PTON Flag = 1 << iota

	// ZEROFILL strips leading zeros from IPv4 octets before applying the
	// default (inet_aton) parse mode. A compatibility shim.
	ZEROFILL

	// NOHOST zeroes host bits on IPNetwork construction, so the stored
	// address always equals the network base.
	NOHOST

	// NOBROADCAST excludes the broadcast address from host iteration.
	NOBROADCAST
)

// Has reports whether f contains all the bits of other.
func (f Flag) Has(other Flag) bool {
	return f&other == other
}
