package ipalg

import (
	"sort"
	"strings"

	"github.com/ipalg/ipalg/internal/bits128"
)

// IPSet is a canonical, disjoint, sorted list of CIDR blocks spanning the
// combined IPv4-and-IPv6 address space (spec §3/§4.5): IPv4 and IPv6
// blocks may coexist in a single set, ordered by (family_tag, first_int)
// with IPv4 sorting before IPv6 -- exactly the ordering IPAddress.Compare
// and CIDRMerge already implement, so no family guard is needed here.
// Construction always re-merges its input through CIDRMerge so two IPSets
// built from differently-shaped input but denoting the same addresses
// compare Equal (see SPEC_FULL.md Open Question (b): IPSet.Equal is
// denotational, not structural, but because the representation is always
// canonicalized the two coincide in practice).
type IPSet struct {
	nets  []IPNetwork // sorted (family_tag, first_int), disjoint, merged
	empty bool
}

// NewIPSet builds an IPSet from zero or more networks, IPv4 and IPv6
// freely intermixed. An empty argument list yields the empty set.
func NewIPSet(nets ...IPNetwork) (IPSet, error) {
	s := IPSet{empty: true}
	for _, n := range nets {
		if err := s.Add(n); err != nil {
			return IPSet{}, err
		}
	}
	return s, nil
}

// Add inserts a network into the set, re-canonicalizing.
func (s *IPSet) Add(n IPNetwork) error {
	s.nets = CIDRMerge(append(append([]IPNetwork{}, s.nets...), n))
	s.empty = false
	return nil
}

// Remove excludes a network's addresses from the set.
func (s *IPSet) Remove(n IPNetwork) error {
	if s.empty {
		return nil
	}
	var out []IPNetwork
	for _, existing := range s.nets {
		out = append(out, CIDRExclude(existing, n)...)
	}
	s.nets = CIDRMerge(out)
	if len(s.nets) == 0 {
		s.empty = true
	}
	return nil
}

// Families returns the distinct address families present in the set, in
// (family_tag) order. Empty on an empty set.
func (s IPSet) Families() []Family {
	var out []Family
	for _, n := range s.nets {
		if len(out) == 0 || out[len(out)-1] != n.fam {
			out = append(out, n.fam)
		}
	}
	return out
}

// IsEmpty reports whether the set contains no addresses.
func (s IPSet) IsEmpty() bool { return s.empty || len(s.nets) == 0 }

// CIDRs returns the set's canonical disjoint CIDR list, sorted ascending.
func (s IPSet) CIDRs() []IPNetwork {
	out := make([]IPNetwork, len(s.nets))
	copy(out, s.nets)
	return out
}

// Contains reports whether addr is a member of the set. The set's blocks
// are sorted and disjoint, so a binary search on each block's first
// address narrows to the one candidate that could possibly contain addr.
func (s IPSet) Contains(addr IPAddress) bool {
	if s.empty {
		return false
	}
	i := sort.Search(len(s.nets), func(i int) bool {
		return s.nets[i].Network().Compare(addr) > 0
	})
	if i == 0 {
		return false
	}
	return s.nets[i-1].Contains(addr)
}

// Union returns a new set containing every address in s or t.
func (s IPSet) Union(t IPSet) (IPSet, error) {
	if s.empty {
		return t, nil
	}
	if t.empty {
		return s, nil
	}
	merged := CIDRMerge(append(append([]IPNetwork{}, s.nets...), t.nets...))
	return IPSet{nets: merged}, nil
}

// Intersection returns a new set containing only addresses present in
// both s and t. Blocks from different families never overlap, so only
// same-family pairs contribute.
func (s IPSet) Intersection(t IPSet) (IPSet, error) {
	if s.empty || t.empty {
		return IPSet{empty: true}, nil
	}
	var out []IPNetwork
	for _, a := range s.nets {
		aRange := a.ToRange()
		for _, b := range t.nets {
			if b.fam != a.fam {
				continue
			}
			bRange := b.ToRange()
			lo := aRange.first
			if bits128.Cmp(bRange.first, lo) > 0 {
				lo = bRange.first
			}
			hi := aRange.last
			if bits128.Cmp(bRange.last, hi) < 0 {
				hi = bRange.last
			}
			if bits128.Cmp(lo, hi) <= 0 {
				out = append(out, IPRange{first: lo, last: hi, fam: a.fam}.CIDRs()...)
			}
		}
	}
	result := CIDRMerge(out)
	return IPSet{nets: result, empty: len(result) == 0}, nil
}

// Difference returns a new set containing addresses in s but not in t.
func (s IPSet) Difference(t IPSet) (IPSet, error) {
	if s.empty {
		return IPSet{empty: true}, nil
	}
	if t.empty {
		return s, nil
	}
	out := append([]IPNetwork{}, s.nets...)
	for _, b := range t.nets {
		var next []IPNetwork
		for _, a := range out {
			next = append(next, CIDRExclude(a, b)...)
		}
		out = next
	}
	merged := CIDRMerge(out)
	return IPSet{nets: merged, empty: len(merged) == 0}, nil
}

// SymmetricDifference returns a new set containing addresses in exactly
// one of s or t.
func (s IPSet) SymmetricDifference(t IPSet) (IPSet, error) {
	sMinusT, err := s.Difference(t)
	if err != nil {
		return IPSet{}, err
	}
	tMinusS, err := t.Difference(s)
	if err != nil {
		return IPSet{}, err
	}
	return sMinusT.Union(tMinusS)
}

// IsSubsetOf reports whether every address in s is also in t.
func (s IPSet) IsSubsetOf(t IPSet) bool {
	if s.empty {
		return true
	}
	if t.empty {
		return false
	}
	for _, a := range s.nets {
		if !anyContainsNetwork(t.nets, a) {
			return false
		}
	}
	return true
}

func anyContainsNetwork(candidates []IPNetwork, n IPNetwork) bool {
	for _, c := range candidates {
		if c.ContainsNetwork(n) {
			return true
		}
	}
	return false
}

// IsSupersetOf reports whether every address in t is also in s.
func (s IPSet) IsSupersetOf(t IPSet) bool { return t.IsSubsetOf(s) }

// IsDisjointFrom reports whether s and t share no addresses.
func (s IPSet) IsDisjointFrom(t IPSet) bool {
	inter, err := s.Intersection(t)
	if err != nil {
		return true
	}
	return inter.IsEmpty()
}

// IsContiguous reports whether the set's addresses form a single
// uninterrupted range.
func (s IPSet) IsContiguous() bool {
	if len(s.nets) <= 1 {
		return true
	}
	r := s.nets[0].ToRange()
	for _, n := range s.nets[1:] {
		if n.fam != r.fam {
			return false
		}
		next := n.ToRange()
		adjacent, _ := bits128.Add(r.last, bits128.One)
		if bits128.Cmp(next.first, adjacent) != 0 {
			return false
		}
		r.last = next.last
	}
	return true
}

// Size returns the total number of addresses in the set.
func (s IPSet) Size() bits128.U128 {
	total := bits128.Zero
	for _, n := range s.nets {
		total, _ = bits128.Add(total, n.Count())
	}
	return total
}

// Equal reports whether s and t denote the same set of addresses. Because
// every mutator re-canonicalizes through CIDRMerge, this reduces to a
// structural comparison of the two canonical CIDR lists.
func (s IPSet) Equal(t IPSet) bool {
	if s.IsEmpty() && t.IsEmpty() {
		return true
	}
	if len(s.nets) != len(t.nets) {
		return false
	}
	for i := range s.nets {
		if !s.nets[i].Network().Equal(t.nets[i].Network()) || s.nets[i].prefixLen != t.nets[i].prefixLen {
			return false
		}
	}
	return true
}

// String renders the set as a comma-separated list of its canonical
// CIDR blocks.
func (s IPSet) String() string {
	parts := make([]string, len(s.nets))
	for i, n := range s.nets {
		parts[i] = n.String()
	}
	return strings.Join(parts, ",")
}

// IterAddresses lazily enumerates every address in the set via a
// callback, stopping early if fn returns false. Lazy rather than a slice
// because full-set enumeration over a /0 would otherwise be unusable.
func (s IPSet) IterAddresses(fn func(IPAddress) bool) {
	for _, n := range s.nets {
		r := n.ToRange()
		cur := r.first
		for {
			if !fn(IPAddress{val: cur, fam: n.fam}) {
				return
			}
			if bits128.Cmp(cur, r.last) >= 0 {
				break
			}
			var overflow bool
			cur, overflow = bits128.Add(cur, bits128.One)
			if overflow {
				break
			}
		}
	}
}
