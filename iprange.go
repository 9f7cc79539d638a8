package ipalg

import (
	"strings"

	"github.com/ipalg/ipalg/internal/bits128"
)

// IPRange is an arbitrary closed interval [first, last] of addresses in a
// single family, not necessarily CIDR-aligned (spec §4.3, "arbitrary
// ranges").
type IPRange struct {
	first bits128.U128
	last  bits128.U128
	fam   Family
}

// NewIPRange builds a range from two endpoints, normalizing order and
// rejecting cross-family pairs.
func NewIPRange(first, last IPAddress) (IPRange, error) {
	if first.Family() != last.Family() {
		return IPRange{}, newFormatError(first.String()+"-"+last.String(), "range endpoints must share a family")
	}
	if bits128.Cmp(first.val, last.val) > 0 {
		first, last = last, first
	}
	return IPRange{first: first.val, last: last.val, fam: first.Family()}, nil
}

// NewIPRangeFromString parses the "first-last" textual form of spec §6.
func NewIPRangeFromString(text string, flags Flag) (IPRange, error) {
	idx := strings.IndexByte(text, '-')
	if idx == -1 {
		return IPRange{}, newFormatError(text, "range text must be of the form first-last")
	}
	firstText, lastText := strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+1:])
	first, err := NewIPAddressFromString(firstText, flags)
	if err != nil {
		return IPRange{}, err
	}
	last, err := NewIPAddressFromString(lastText, flags)
	if err != nil {
		return IPRange{}, err
	}
	return NewIPRange(first, last)
}

// Family returns the range's address family.
func (r IPRange) Family() Family { return r.fam }

// First returns the range's lowest address.
func (r IPRange) First() IPAddress { return IPAddress{val: r.first, fam: r.fam} }

// Last returns the range's highest address.
func (r IPRange) Last() IPAddress { return IPAddress{val: r.last, fam: r.fam} }

// Contains reports whether addr falls within the range.
func (r IPRange) Contains(addr IPAddress) bool {
	return addr.Family() == r.fam && bits128.Cmp(addr.val, r.first) >= 0 && bits128.Cmp(addr.val, r.last) <= 0
}

// Count returns the number of addresses in the range. A range covering the
// whole IPv6 space (2^128 addresses) saturates at 2^128-1.
func (r IPRange) Count() bits128.U128 {
	diff, _ := bits128.Sub(r.last, r.first)
	v, _ := bits128.Add(diff, bits128.One)
	return v
}

// String renders the range in "first-last" form.
func (r IPRange) String() string { return r.First().String() + "-" + r.Last().String() }

// CIDRs decomposes the range into the minimal list of CIDR-aligned
// IPNetwork blocks that exactly covers it, per spec §4.3: repeatedly peel
// off the largest prefix-aligned block C with C.first == cursor, where
// C's prefix length is width - min(trailing_zeros(cursor), floor(log2(last-cursor+1))).
func (r IPRange) CIDRs() []IPNetwork {
	width := strategyFor(r.fam).width()
	var out []IPNetwork

	cursor := r.first
	for bits128.Cmp(cursor, r.last) <= 0 {
		remaining, _ := bits128.Sub(r.last, cursor) // addresses left, minus one
		remPlus1, overflow := bits128.Add(remaining, bits128.One)

		// spanExp = floor(log2(remaining+1)): the largest power-of-two block
		// size (in bits) that still fits within what's left of the range.
		var spanExp int
		if overflow {
			spanExp = width // remaining+1 == 2^128, the whole address space
		} else {
			spanExp = bits128.BitLen(remPlus1) - 1
		}
		if spanExp > width {
			spanExp = width
		}

		// align = trailing zero bits of cursor: the largest block size (in
		// bits) for which cursor is a valid prefix-aligned base.
		align := bits128.TrailingZeros(cursor)
		if align > width {
			align = width
		}

		hostBits := spanExp
		if align < hostBits {
			hostBits = align
		}
		prefixLen := width - hostBits

		out = append(out, IPNetwork{addr: cursor, prefixLen: prefixLen, fam: r.fam})

		blockSize := bits128.Shl(bits128.One, uint(hostBits))
		next, overflowAdd := bits128.Add(cursor, blockSize)
		if overflowAdd {
			break
		}
		cursor = next
	}
	return out
}

// SpanningCIDR returns the smallest single IPNetwork that contains the
// entire range.
func (r IPRange) SpanningCIDR() IPNetwork {
	width := strategyFor(r.fam).width()
	xor := bits128.Or(bits128.And(r.first, bits128.Not(r.last)), bits128.And(bits128.Not(r.first), r.last))
	commonPrefix := width - bits128.BitLen(xor)
	if commonPrefix < 0 {
		commonPrefix = 0
	}
	mask := prefixMask(width, commonPrefix)
	base := bits128.And(r.first, mask)
	return IPNetwork{addr: base, prefixLen: commonPrefix, fam: r.fam}
}
