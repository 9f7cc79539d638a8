// Package specialreg holds the classification tables behind the address
// layer's is_private/is_loopback/is_reserved/... predicates. It is a direct
// generalization of the teacher library's "iana" satellite package (itself
// sourced from the IANA IPv4/IPv6 Special-Purpose Address Registries) plus
// the reserved-IID table from the teacher's "iid" package (IANA's "Reserved
// IPv6 Interface Identifiers", RFC 5453), now exposed as pure predicates
// instead of IID-generation helpers.
//
// Historical/deprecated reservations are intentionally omitted, matching
// the teacher's documented scope (e.g. ORCHIDv1 2001:10::/28 is absent).
package specialreg

// Reservation describes one entry in an IANA IP Special-Purpose Registry.
type Reservation struct {
	// CIDR is the reserved block in canonical a.b.c.d/n or x:x::/n form.
	CIDR string
	// Title is the name given to the reservation.
	Title string
	RFC   []string
	// Forwardable is true if a router may forward packets for this block
	// between external interfaces.
	Forwardable bool
	// Global is true if a router may pass packets for this block outside
	// a private network.
	Global bool
	// Reserved is true if an implementation must special-case this block
	// to be RFC compliant.
	Reserved bool
}

// IPv4Registry is the IANA IPv4 Special-Purpose Address Registry.
var IPv4Registry = []Reservation{
	{"0.0.0.0/8", "This host on this network", []string{"RFC1122"}, false, false, true},
	{"10.0.0.0/8", "Private-Use", []string{"RFC1918"}, true, false, false},
	{"100.64.0.0/10", "Shared Address Space", []string{"RFC6598"}, false, false, true},
	{"127.0.0.0/8", "Loopback", []string{"RFC1122"}, false, false, true},
	{"169.254.0.0/16", "Link Local", []string{"RFC3927"}, false, false, true},
	{"172.16.0.0/12", "Private-Use", []string{"RFC1918"}, true, false, false},
	{"192.0.0.0/24", "IETF Protocol Assignments", []string{"RFC6890"}, false, false, false},
	{"192.0.0.0/29", "IPv4 Service Continuity Prefix", []string{"RFC7335"}, true, false, false},
	{"192.0.0.8/32", "IPv4 dummy address", []string{"RFC7600"}, false, false, false},
	{"192.0.0.9/32", "Port Control Protocol Anycast", []string{"RFC7723"}, true, true, true},
	{"192.0.0.10/32", "Traversal Using Relays around NAT Anycast", []string{"RFC8155"}, true, true, false},
	{"192.0.0.170/32", "NAT64/DNS64 Discovery", []string{"RFC7050"}, false, false, true},
	{"192.0.0.171/32", "NAT64/DNS64 Discovery", []string{"RFC7050"}, false, false, true},
	{"192.0.2.0/24", "Documentation (TEST-NET-1)", []string{"RFC5737"}, false, false, false},
	{"192.31.196.0/24", "AS112-v4", []string{"RFC7535"}, true, true, false},
	{"192.52.193.0/24", "AMT", []string{"RFC7450"}, true, true, false},
	{"192.168.0.0/16", "Private-Use", []string{"RFC1918"}, true, false, false},
	{"192.175.48.0/24", "Direct Delegation AS112 Service", []string{"RFC7534"}, true, true, false},
	{"198.18.0.0/15", "Benchmarking", []string{"RFC2544"}, true, false, false},
	{"198.51.100.0/24", "Documentation (TEST-NET-2)", []string{"RFC5737"}, false, false, false},
	{"203.0.113.0/24", "Documentation (TEST-NET-3)", []string{"RFC5737"}, false, false, false},
	{"224.0.0.0/4", "Multicast", []string{"RFC1112"}, true, false, false},
	{"240.0.0.0/4", "Reserved", []string{"RFC1112"}, false, false, true},
	{"255.255.255.255/32", "Limited Broadcast", []string{"RFC8190", "RFC919"}, false, false, true},
}

// IPv6Registry is the IANA IPv6 Special-Purpose Address Registry.
var IPv6Registry = []Reservation{
	{"::1/128", "Loopback Address", []string{"RFC4291"}, false, false, true},
	{"::/128", "Unspecified Address", []string{"RFC4291"}, false, false, true},
	{"::ffff:0:0/96", "IPv4-mapped Address", []string{"RFC4291"}, false, false, true},
	{"64:ff9b::/96", "IPv4-IPv6 Translation", []string{"RFC6052"}, true, true, false},
	{"64:ff9b:1::/48", "IPv4-IPv6 Translation", []string{"RFC8215"}, true, false, false},
	{"100::/64", "Discard-Only Address Block", []string{"RFC6666"}, true, false, false},
	{"2001::/23", "IETF Protocol Assignments", []string{"RFC2928"}, false, false, false},
	{"2001::/32", "TEREDO", []string{"RFC4380", "RFC8190"}, true, true, false},
	{"2001:1::1/128", "Port Control Protocol Anycast", []string{"RFC7723"}, true, true, false},
	{"2001:1::2/128", "Traversal Using Relays around NAT Anycast", []string{"RFC8155"}, true, true, false},
	{"2001:2::/48", "Benchmarking", []string{"RFC5180", "RFC1752"}, true, false, false},
	{"2001:3::/32", "AMT", []string{"RFC7450"}, true, true, false},
	{"2001:4:112::/48", "AS112-v6", []string{"RFC7535"}, true, true, false},
	{"2001:5::/32", "EID Space for LISP (Managed by RIPE NCC)", []string{"RFC7954"}, true, true, true},
	{"2001:20::/28", "ORCHIDv2", []string{"RFC7343"}, true, true, false},
	{"2001:db8::/32", "Documentation", []string{"RFC3849"}, false, false, false},
	{"2002::/16", "6to4", []string{"RFC3056"}, true, true, false},
	{"2620:4f:8000::/48", "Direct Delegation AS112 Service", []string{"RFC7534"}, true, true, false},
	{"fc00::/7", "Unique-Local", []string{"RFC4193", "RFC8190"}, true, false, false},
	{"fe80::/10", "Link-Local Unicast", []string{"RFC4291"}, false, false, true},
	{"ff00::/8", "Multicast", []string{"RFC4291"}, true, false, true},
}

// ReservedIID describes an entry in IANA's "Reserved IPv6 Interface
// Identifiers" registry (RFC 5453), carried over from the teacher's "iid"
// package. The interface identifier is the low-order 64 bits of an IPv6
// address, expressed here as an 8-byte first/last pair.
type ReservedIID struct {
	First [8]byte
	Last  [8]byte
	Title string
	RFC   string
}

// ReservedIIDs is the RFC 5453 reserved Interface Identifier range table.
var ReservedIIDs = []ReservedIID{
	{
		[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		"Subnet-Router Anycast", "RFC4291",
	},
	{
		[8]byte{0x02, 0x00, 0x5e, 0xff, 0xfe, 0x00, 0x00, 0x00},
		[8]byte{0x02, 0x00, 0x5e, 0xff, 0xfe, 0x00, 0x52, 0x12},
		"Reserved IPv6 Interface Identifiers corresponding to the IANA Ethernet Block", "RFC4291",
	},
	{
		[8]byte{0x02, 0x00, 0x5e, 0xff, 0xfe, 0x00, 0x52, 0x13},
		[8]byte{0x02, 0x00, 0x5e, 0xff, 0xfe, 0x00, 0x52, 0x13},
		"Proxy Mobile IPv6", "RFC6543",
	},
	{
		[8]byte{0x02, 0x00, 0x5e, 0xff, 0xfe, 0x00, 0x52, 0x14},
		[8]byte{0x02, 0x00, 0x5e, 0xff, 0xfe, 0xff, 0xff, 0xff},
		"Reserved IPv6 Interface Identifiers corresponding to the IANA Ethernet Block", "RFC4291",
	},
	{
		[8]byte{0xfd, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x80},
		[8]byte{0xfd, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		"Reserved Subnet Anycast Addresses", "RFC2526",
	},
}

// IsReservedIID reports whether the given 64-bit interface identifier (the
// low-order half of an IPv6 address) falls in a RFC 5453 reserved range.
func IsReservedIID(iid [8]byte) bool {
	for _, r := range ReservedIIDs {
		if bytesBetween(iid, r.First, r.Last) {
			return true
		}
	}
	return false
}

func bytesBetween(v, lo, hi [8]byte) bool {
	for i := 0; i < 8; i++ {
		if v[i] < lo[i] {
			return false
		}
		if v[i] > lo[i] {
			break
		}
	}
	for i := 0; i < 8; i++ {
		if v[i] > hi[i] {
			return false
		}
		if v[i] < hi[i] {
			break
		}
	}
	return true
}
