package ipalg

import (
	"iter"
	"sort"

	"github.com/ipalg/ipalg/internal/bits128"
)

// CIDRMerge sorts and combines adjacent/overlapping networks into the
// minimal equivalent list of disjoint CIDR blocks, per spec §4.3/§4.5.
func CIDRMerge(nets []IPNetwork) []IPNetwork {
	byFam := map[Family][]IPNetwork{}
	for _, n := range nets {
		byFam[n.fam] = append(byFam[n.fam], n)
	}

	var out []IPNetwork
	for fam, group := range byFam {
		out = append(out, mergeSameFamily(fam, group)...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address().Compare(out[j].Address()) < 0 })
	return out
}

func mergeSameFamily(fam Family, group []IPNetwork) []IPNetwork {
	if len(group) == 0 {
		return nil
	}
	ranges := make([]IPRange, len(group))
	for i, n := range group {
		ranges[i] = n.ToRange()
	}
	sort.Slice(ranges, func(i, j int) bool { return bits128.Cmp(ranges[i].first, ranges[j].first) < 0 })

	merged := []IPRange{ranges[0]}
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		adjacent, _ := bits128.Add(last.last, bits128.One)
		if bits128.Cmp(r.first, adjacent) <= 0 {
			if bits128.Cmp(r.last, last.last) > 0 {
				last.last = r.last
			}
			continue
		}
		merged = append(merged, r)
	}

	var out []IPNetwork
	for _, r := range merged {
		out = append(out, r.CIDRs()...)
	}
	return out
}

// CIDRExclude removes every address covered by excl from base, returning
// the minimal disjoint CIDR list for what remains.
func CIDRExclude(base IPNetwork, excl IPNetwork) []IPNetwork {
	if base.fam != excl.fam {
		return []IPNetwork{base}
	}
	baseRange := base.ToRange()
	exclRange := excl.ToRange()

	if bits128.Cmp(exclRange.last, baseRange.first) < 0 || bits128.Cmp(exclRange.first, baseRange.last) > 0 {
		return []IPNetwork{base}
	}

	var out []IPNetwork
	if bits128.Cmp(exclRange.first, baseRange.first) > 0 {
		lastBefore, _ := bits128.Sub(exclRange.first, bits128.One)
		leftover := IPRange{first: baseRange.first, last: lastBefore, fam: base.fam}
		out = append(out, leftover.CIDRs()...)
	}
	if bits128.Cmp(exclRange.last, baseRange.last) < 0 {
		firstAfter, _ := bits128.Add(exclRange.last, bits128.One)
		leftover := IPRange{first: firstAfter, last: baseRange.last, fam: base.fam}
		out = append(out, leftover.CIDRs()...)
	}
	return out
}

// SpanningCIDR returns the smallest CIDR block containing every address in
// nets.
func SpanningCIDR(nets []IPNetwork) (IPNetwork, error) {
	if len(nets) == 0 {
		return IPNetwork{}, newFormatError("", "cannot compute a spanning CIDR over an empty list")
	}
	fam := nets[0].fam
	first, last := nets[0].Network().val, nets[0].Broadcast().val
	for _, n := range nets[1:] {
		if n.fam != fam {
			return IPNetwork{}, newFormatError("", "spanning CIDR requires a single address family")
		}
		if bits128.Cmp(n.Network().val, first) < 0 {
			first = n.Network().val
		}
		if bits128.Cmp(n.Broadcast().val, last) > 0 {
			last = n.Broadcast().val
		}
	}
	return IPRange{first: first, last: last, fam: fam}.SpanningCIDR(), nil
}

// IPRangeToCIDRs is the free-function form of IPRange.CIDRs.
func IPRangeToCIDRs(r IPRange) []IPNetwork { return r.CIDRs() }

// CIDRsToIPRange computes the smallest IPRange spanning every network in
// nets (equivalent to SpanningCIDR's range, without re-aligning to a
// prefix).
func CIDRsToIPRange(nets []IPNetwork) (IPRange, error) {
	if len(nets) == 0 {
		return IPRange{}, newFormatError("", "cannot compute a range over an empty list")
	}
	fam := nets[0].fam
	first, last := nets[0].Network().val, nets[0].Broadcast().val
	for _, n := range nets[1:] {
		if n.fam != fam {
			return IPRange{}, newFormatError("", "range requires a single address family")
		}
		if bits128.Cmp(n.Network().val, first) < 0 {
			first = n.Network().val
		}
		if bits128.Cmp(n.Broadcast().val, last) > 0 {
			last = n.Broadcast().val
		}
	}
	return IPRange{first: first, last: last, fam: fam}, nil
}

// GlobToCIDRs converts a glob to its (single-element) CIDR list, matching
// the signature shape of the other list-returning conversions.
func GlobToCIDRs(g IPGlob) ([]IPNetwork, error) {
	n, err := g.ToCIDR()
	if err != nil {
		return nil, err
	}
	return []IPNetwork{n}, nil
}

// CIDRToGlob is the free-function form of GlobFromCIDR.
func CIDRToGlob(n IPNetwork) (IPGlob, error) { return GlobFromCIDR(n) }

// IterIPRange lazily enumerates every address in [first, last], inclusive.
// A range spanning a large fraction of the IPv6 space cannot be
// materialized into a slice, so this yields one address at a time and
// stops as soon as the consumer's range-over-func loop breaks.
func IterIPRange(r IPRange) iter.Seq[IPAddress] {
	return func(yield func(IPAddress) bool) {
		cur := r.first
		for {
			if !yield(IPAddress{val: cur, fam: r.fam}) {
				return
			}
			if bits128.Cmp(cur, r.last) >= 0 {
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

// IterUniqueIPs flattens and de-duplicates the address sequences of
// multiple ranges, preserving the first occurrence's position. Unlike
// IterIPRange this does build a slice: de-duplication across ranges
// inherently requires remembering everything seen so far, so there is no
// lazy form that avoids the memory cost.
func IterUniqueIPs(ranges []IPRange) []IPAddress {
	seen := map[Family]map[string]bool{}
	var out []IPAddress
	for _, r := range ranges {
		for a := range IterIPRange(r) {
			if seen[a.fam] == nil {
				seen[a.fam] = map[string]bool{}
			}
			key := string(a.Packed())
			if seen[a.fam][key] {
				continue
			}
			seen[a.fam][key] = true
			out = append(out, a)
		}
	}
	return out
}

// LargestMatchingCIDR returns the least-specific (smallest prefix length)
// network among candidates that contains addr, or ok=false if none do.
func LargestMatchingCIDR(addr IPAddress, candidates []IPNetwork) (IPNetwork, bool) {
	return bestMatch(addr, candidates, false)
}

// SmallestMatchingCIDR returns the most-specific (largest prefix length)
// network among candidates that contains addr, or ok=false if none do.
func SmallestMatchingCIDR(addr IPAddress, candidates []IPNetwork) (match IPNetwork, ok bool) {
	return bestMatch(addr, candidates, true)
}

func bestMatch(addr IPAddress, candidates []IPNetwork, mostSpecific bool) (IPNetwork, bool) {
	var best IPNetwork
	found := false
	for _, c := range candidates {
		if !c.Contains(addr) {
			continue
		}
		if !found {
			best, found = c, true
			continue
		}
		if mostSpecific && c.prefixLen > best.prefixLen {
			best = c
		}
		if !mostSpecific && c.prefixLen < best.prefixLen {
			best = c
		}
	}
	return best, found
}

// AllMatchingCIDRs returns every network among candidates that contains
// addr, ordered least-specific to most-specific.
func AllMatchingCIDRs(addr IPAddress, candidates []IPNetwork) []IPNetwork {
	var out []IPNetwork
	for _, c := range candidates {
		if c.Contains(addr) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].prefixLen < out[j].prefixLen })
	return out
}
