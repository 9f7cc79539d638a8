package ipalg

import (
	"iter"
	"strconv"
	"strings"

	"github.com/ipalg/ipalg/internal/bits128"
)

// IPNetwork is a (first_int, prefix_len, family) triple per spec §3. The
// pair is accepted non-prefix-aligned: 10.0.0.1/24 retains 10.0.0.1 as its
// Address() while Network() computes the masked base 10.0.0.0.
type IPNetwork struct {
	addr      bits128.U128 // as entered; host bits preserved unless NOHOST
	prefixLen int
	fam       Family
}

// NewIPNetwork parses the grammar of spec §4.3: addr/prefix, addr/netmask
// (or hostmask, auto-inverted), addr alone (defaulting to a host route --
// see SPEC_FULL.md Open Question (a)), and verbose abbreviations like
// "10/8" or "192.168/16".
func NewIPNetwork(text string, flags Flag) (IPNetwork, error) {
	idx := strings.LastIndexByte(text, '/')
	if idx == -1 {
		addr, err := NewIPAddressFromString(text, flags)
		if err != nil {
			return IPNetwork{}, err
		}
		return newNetworkFromAddr(addr, strategyFor(addr.Family()).width(), flags)
	}

	addrPart, suffix := text[idx+1:], text[:idx]

	// auto-detect family by presence of ':'
	fam := IPv4
	if containsByte(suffix, ':') {
		fam = IPv6
	}

	if containsByte(addrPart, '.') {
		// dotted netmask or hostmask form, IPv4 only
		if fam != IPv4 {
			return IPNetwork{}, newFormatError(text, "dotted mask suffix is only valid for IPv4")
		}
		plen, err := maskTextToPrefixLen(addrPart)
		if err != nil {
			return IPNetwork{}, newFormatError(text, err.Error())
		}
		addr, err := NewIPAddressFromString(expandAbbreviatedIPv4(suffix), flags)
		if err != nil {
			return IPNetwork{}, err
		}
		return newNetworkFromAddr(addr, plen, flags)
	}

	plen, err := strconv.Atoi(addrPart)
	if err != nil {
		return IPNetwork{}, newFormatError(text, "invalid prefix length")
	}

	var addrText2 string
	if fam == IPv4 {
		addrText2 = expandAbbreviatedIPv4(suffix)
	} else {
		addrText2 = suffix
	}
	addr, err := NewIPAddressFromString(addrText2, flags)
	if err != nil {
		return IPNetwork{}, err
	}
	if plen < 0 || plen > strategyFor(addr.Family()).width() {
		return IPNetwork{}, newFormatError(text, "prefix length out of range")
	}
	return newNetworkFromAddr(addr, plen, flags)
}

// expandAbbreviatedIPv4 turns a classful-looking abbreviation ("10",
// "192.168") into its full dotted-quad form ("10.0.0.0", "192.168.0.0")
// by right-padding missing octets with zero, per spec §4.3's
// octet-count-implies-prefix grammar for addr/prefix network literals.
// This is deliberately distinct from inet_aton's legacy parse of a bare
// address (e.g. "10" alone means 0.0.0.10, not 10.0.0.0) -- the expansion
// only applies once an explicit prefix length disambiguates intent.
func expandAbbreviatedIPv4(s string) string {
	parts := strings.Split(s, ".")
	if len(parts) >= 4 {
		return s
	}
	for len(parts) < 4 {
		parts = append(parts, "0")
	}
	return strings.Join(parts, ".")
}

func newNetworkFromAddr(addr IPAddress, prefixLen int, flags Flag) (IPNetwork, error) {
	s := strategyFor(addr.Family())
	if prefixLen < 0 || prefixLen > s.width() {
		return IPNetwork{}, newFormatError(addr.String(), "prefix length out of range")
	}
	v := addr.val
	if flags.Has(NOHOST) {
		v = bits128.And(v, prefixMask(s.width(), prefixLen))
	}
	return IPNetwork{addr: v, prefixLen: prefixLen, fam: addr.Family()}, nil
}

// maskTextToPrefixLen accepts a dotted-quad netmask (1s then 0s) or its
// inverted hostmask (0s then 1s) and returns the equivalent prefix length.
func maskTextToPrefixLen(text string) (int, error) {
	v, err := ipv4Strategy{}.parseText(text, 0)
	if err != nil {
		return 0, err
	}
	n := uint32(v.Lo)
	if ones, ok := contiguousOnesPrefix(n); ok {
		return ones, nil
	}
	if ones, ok := contiguousOnesPrefix(^n); ok {
		return ones, nil
	}
	return 0, newFormatError(text, "not a contiguous netmask or hostmask")
}

// contiguousOnesPrefix reports whether n, read as a 32-bit value, is a
// contiguous run of 1-bits from the MSB (a valid netmask), returning the
// run length.
func contiguousOnesPrefix(n uint32) (int, bool) {
	seenZero := false
	ones := 0
	for i := 31; i >= 0; i-- {
		bit := (n >> uint(i)) & 1
		if bit == 1 {
			if seenZero {
				return 0, false
			}
			ones++
		} else {
			seenZero = true
		}
	}
	return ones, true
}

// Family returns the network's address family.
func (n IPNetwork) Family() Family { return n.fam }

// PrefixLen returns the network's prefix length.
func (n IPNetwork) PrefixLen() int { return n.prefixLen }

// Address returns the address as entered (possibly with host bits set).
func (n IPNetwork) Address() IPAddress {
	return IPAddress{val: n.addr, fam: n.fam}
}

// Network returns the masked network base address (first address in the
// block).
func (n IPNetwork) Network() IPAddress {
	s := strategyFor(n.fam)
	v := bits128.And(n.addr, prefixMask(s.width(), n.prefixLen))
	return IPAddress{val: v, fam: n.fam}
}

// Broadcast returns the last address in the block (for IPv6 this is
// simply the last address; there is no broadcast semantic, but the name
// is retained for symmetry with IPv4 per spec §4.3).
func (n IPNetwork) Broadcast() IPAddress {
	s := strategyFor(n.fam)
	base := bits128.And(n.addr, prefixMask(s.width(), n.prefixLen))
	hostBits := s.width() - n.prefixLen
	hostMask := hostMaskFor(s.width(), hostBits)
	last := bits128.Or(base, hostMask)
	return IPAddress{val: last, fam: n.fam}
}

func hostMaskFor(width, hostBits int) bits128.U128 {
	if hostBits <= 0 {
		return bits128.Zero
	}
	if width >= 128 {
		return bits128.Not(bits128.Mask(width - hostBits))
	}
	if hostBits >= width {
		return bits128.FromLo64((uint64(1) << uint(width)) - 1)
	}
	return bits128.FromLo64((uint64(1) << uint(hostBits)) - 1)
}

// Count returns the number of addresses covered by the block, 2^(width-prefix).
// For an IPv6 /0 (2^128 addresses) it saturates at 2^128-1.
func (n IPNetwork) Count() bits128.U128 {
	s := strategyFor(n.fam)
	hostBits := s.width() - n.prefixLen
	if hostBits >= 128 {
		return bits128.Max
	}
	v := bits128.Shl(bits128.One, uint(hostBits))
	return v
}

// Contains reports whether addr falls within the network.
func (n IPNetwork) Contains(addr IPAddress) bool {
	if addr.Family() != n.fam {
		return false
	}
	s := strategyFor(n.fam)
	mask := prefixMask(s.width(), n.prefixLen)
	return bits128.Cmp(bits128.And(addr.val, mask), bits128.And(n.addr, mask)) == 0
}

// ContainsNetwork reports whether other is entirely contained within n.
func (n IPNetwork) ContainsNetwork(other IPNetwork) bool {
	return n.fam == other.fam && n.prefixLen <= other.prefixLen && n.Contains(other.Network())
}

// String renders the network in canonical "<address>/<prefix>" form, using
// the network base (not the entered address) as the textual address part,
// matching every example in spec §6/§8.
func (n IPNetwork) String() string {
	return n.Network().String() + "/" + strconv.Itoa(n.prefixLen)
}

// ToRange converts the network to its equivalent IPRange.
func (n IPNetwork) ToRange() IPRange {
	return IPRange{first: n.Network().val, last: n.Broadcast().val, fam: n.fam}
}

// Subnet yields all prefix-aligned children of newPrefixLen >= current
// prefix length.
func (n IPNetwork) Subnet(newPrefixLen int) ([]IPNetwork, error) {
	s := strategyFor(n.fam)
	if newPrefixLen < n.prefixLen || newPrefixLen > s.width() {
		return nil, newFormatError(n.String(), "illegal subnet prefix length")
	}
	step := bits128.Shl(bits128.One, uint(s.width()-newPrefixLen))
	base := n.Network().val
	end := n.Broadcast().val

	var out []IPNetwork
	cur := base
	for {
		out = append(out, IPNetwork{addr: cur, prefixLen: newPrefixLen, fam: n.fam})
		next, overflow := bits128.Add(cur, step)
		if overflow || bits128.Cmp(next, end) > 0 {
			break
		}
		cur = next
	}
	return out, nil
}

// Supernet returns the `count` supernets of prefix lengths
// current-1 .. current-levels, tightest first.
func (n IPNetwork) Supernet(levels, count int) ([]IPNetwork, error) {
	if levels <= 0 {
		levels = 1
	}
	if count <= 0 {
		count = 1
	}
	if n.prefixLen-levels < 0 {
		return nil, newFormatError(n.String(), "supernet levels exceed prefix length")
	}
	s := strategyFor(n.fam)
	var out []IPNetwork
	for i := 1; i <= count && i <= levels; i++ {
		plen := n.prefixLen - i
		if plen < 0 {
			break
		}
		mask := prefixMask(s.width(), plen)
		out = append(out, IPNetwork{addr: bits128.And(n.addr, mask), prefixLen: plen, fam: n.fam})
	}
	return out, nil
}

// IterHosts lazily enumerates the usable host addresses: for IPv4
// prefixes <= 30 this omits the network and broadcast address; for IPv6
// it omits only the network (subnet-router anycast) address. NOBROADCAST
// also omits the last address of an IPv4 /31 or /32 (shorter IPv4
// prefixes omit it already) and has no effect on IPv6. A /0 IPv6 network holds 2^128
// hosts, so this yields one address at a time rather than building a
// slice, matching IPSet.IterAddresses' callback shape.
func (n IPNetwork) IterHosts(flags Flag) iter.Seq[IPAddress] {
	first := n.Network().val
	last := n.Broadcast().val
	s := strategyFor(n.fam)

	if n.fam == IPv4 {
		hostBits := s.width() - n.prefixLen
		if hostBits >= 2 {
			first, _ = bits128.Add(first, bits128.One)
			last, _ = bits128.Sub(last, bits128.One)
		} else if flags.Has(NOBROADCAST) {
			last, _ = bits128.Sub(last, bits128.One)
		}
	} else {
		first, _ = bits128.Add(first, bits128.One)
	}
	fam := n.fam

	return func(yield func(IPAddress) bool) {
		cur := first
		for bits128.Cmp(cur, last) <= 0 {
			if !yield(IPAddress{val: cur, fam: fam}) {
				return
			}
			var overflow bool
			cur, overflow = bits128.Add(cur, bits128.One)
			if overflow {
				return
			}
		}
	}
}
