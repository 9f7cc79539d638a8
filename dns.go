package ipalg

import (
	"strconv"
	"strings"

	"github.com/ipalg/ipalg/internal/bits128"
)

// ARPA renders the address's reverse-DNS name: dotted-decimal octets
// under in-addr.arpa for IPv4, nibble-reversed hex under ip6.arpa for
// IPv6, adapted from the teacher's IP4ToARPA/IP6ToARPA.
func (a IPAddress) ARPA() string {
	if a.fam == IPv4 {
		return ipv4ToARPA(a.val)
	}
	return ipv6ToARPA(a.val)
}

func ipv4ToARPA(v bits128.U128) string {
	b := bits128.Bytes(v)
	octets := b[12:16]
	var sb strings.Builder
	for i := len(octets) - 1; i >= 0; i-- {
		sb.WriteString(strconv.Itoa(int(octets[i])))
		sb.WriteByte('.')
	}
	sb.WriteString("in-addr.arpa")
	return sb.String()
}

func ipv6ToARPA(v bits128.U128) string {
	b := bits128.Bytes(v)
	const hexDigits = "0123456789abcdef"
	var sb strings.Builder
	for i := len(b) - 1; i >= 0; i-- {
		lo := b[i] & 0x0F
		hi := b[i] >> 4
		sb.WriteByte(hexDigits[lo])
		sb.WriteByte('.')
		sb.WriteByte(hexDigits[hi])
		sb.WriteByte('.')
	}
	sb.WriteString("ip6.arpa")
	return sb.String()
}

// NetworkARPA renders the network's reverse-DNS zone delegation name: a
// truncated in-addr.arpa label set for byte-aligned IPv4 prefixes, or a
// truncated ip6.arpa nibble set for IPv6 prefixes of any length.
func (n IPNetwork) NetworkARPA() (string, error) {
	if n.fam == IPv4 {
		if n.prefixLen%8 != 0 {
			return "", newFormatError(n.String(), "IPv4 reverse-zone delegation requires a byte-aligned prefix")
		}
		full := ipv4ToARPA(n.Network().val)
		keep := n.prefixLen / 8
		labels := strings.Split(full, ".")
		// labels = [o4, o3, o2, o1, "in-addr", "arpa"]; drop (4-keep) octet
		// labels from the front, matching the zone's delegation boundary.
		drop := 4 - keep
		return strings.Join(labels[drop:], "."), nil
	}
	full := ipv6ToARPA(n.Network().val)
	keep := n.prefixLen / 4
	labels := strings.Split(full, ".")
	drop := 32 - keep
	return strings.Join(labels[drop:], "."), nil
}
