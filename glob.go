package ipalg

import (
	"fmt"
	"strconv"
	"strings"
)

// globOctet is one component of an IPGlob: a literal 0-255 (lo==hi), a
// hyphenated range a-b (lo<hi), or a wildcard "*" (lo=0, hi=255).
type globOctet struct {
	lo, hi     int
	isWildcard bool
}

// nonSingleton reports whether the octet denotes more than one value, i.e.
// is a wildcard or a genuine (lo != hi) hyphen range.
func (o globOctet) nonSingleton() bool { return o.isWildcard || o.lo != o.hi }

func (o globOctet) String() string {
	switch {
	case o.isWildcard:
		return "*"
	case o.lo == o.hi:
		return strconv.Itoa(o.lo)
	default:
		return fmt.Sprintf("%d-%d", o.lo, o.hi)
	}
}

// IPGlob is the four-octet IPv4 glob grammar of spec §4.4: each octet is a
// literal 0-255, a hyphenated range "a-b", or "*" meaning the full 0-255
// range, with the constraint that once an octet is non-singleton (a range
// or a wildcard) every octet to its right must also be non-singleton (a
// contiguous wildcard/range suffix).
type IPGlob struct {
	octets [4]globOctet
}

// NewIPGlob parses a glob string such as "192.168.1.*", "10.*.*.*", or
// "10.0.0.1-5".
func NewIPGlob(text string) (IPGlob, error) {
	parts := strings.Split(text, ".")
	if len(parts) != 4 {
		return IPGlob{}, newFormatError(text, "glob must have exactly four dot-separated octets")
	}
	var g IPGlob
	sawNonSingleton := false
	for i, p := range parts {
		o, err := parseGlobOctet(p)
		if err != nil {
			return IPGlob{}, newFormatError(text, err.Error())
		}
		if sawNonSingleton && !o.nonSingleton() {
			return IPGlob{}, newFormatError(text, "wildcard/range octets must form a contiguous suffix")
		}
		if o.nonSingleton() {
			sawNonSingleton = true
		}
		g.octets[i] = o
	}
	return g, nil
}

func parseGlobOctet(p string) (globOctet, error) {
	if p == "*" {
		return globOctet{lo: 0, hi: 255, isWildcard: true}, nil
	}
	if idx := strings.IndexByte(p, '-'); idx != -1 {
		lo, err := strconv.Atoi(p[:idx])
		if err != nil {
			return globOctet{}, fmt.Errorf("bad range lower bound %q", p[:idx])
		}
		hi, err := strconv.Atoi(p[idx+1:])
		if err != nil {
			return globOctet{}, fmt.Errorf("bad range upper bound %q", p[idx+1:])
		}
		if lo < 0 || hi > 255 || lo > hi {
			return globOctet{}, fmt.Errorf("range octet %q must satisfy 0 <= a <= b <= 255", p)
		}
		return globOctet{lo: lo, hi: hi}, nil
	}
	n, err := strconv.Atoi(p)
	if err != nil || n < 0 || n > 255 {
		return globOctet{}, fmt.Errorf("glob octet %q must be 0-255, a hyphen range, or '*'", p)
	}
	return globOctet{lo: n, hi: n}, nil
}

// ValidGlob reports whether text parses as an IPGlob, without
// constructing one.
func ValidGlob(text string) bool { return validGlob(text) }

// validGlob is a boolean validator that never raises: it re-derives the
// same per-octet grammar and suffix-contiguity rule directly, rather than
// calling NewIPGlob and checking for a non-nil error (Design Note
// "Exception-as-validation").
func validGlob(text string) bool {
	parts := strings.Split(text, ".")
	if len(parts) != 4 {
		return false
	}
	sawNonSingleton := false
	for _, p := range parts {
		o, err := parseGlobOctet(p)
		if err != nil {
			return false
		}
		if sawNonSingleton && !o.nonSingleton() {
			return false
		}
		if o.nonSingleton() {
			sawNonSingleton = true
		}
	}
	return true
}

// String renders the glob in its canonical textual form.
func (g IPGlob) String() string {
	parts := make([]string, 4)
	for i, o := range g.octets {
		parts[i] = o.String()
	}
	return strings.Join(parts, ".")
}

// ToRange reduces the glob to its equivalent IPRange: the address formed by
// each octet's lower bound, through the address formed by each octet's
// upper bound.
func (g IPGlob) ToRange() (IPRange, error) {
	var firstParts, lastParts [4]string
	for i, o := range g.octets {
		firstParts[i] = strconv.Itoa(o.lo)
		lastParts[i] = strconv.Itoa(o.hi)
	}

	first, err := NewIPAddressFromString(strings.Join(firstParts[:], "."), 0)
	if err != nil {
		return IPRange{}, err
	}
	last, err := NewIPAddressFromString(strings.Join(lastParts[:], "."), 0)
	if err != nil {
		return IPRange{}, err
	}
	return NewIPRange(first, last)
}

// ToCIDR reduces the glob to a single IPNetwork. A wildcard-only glob is,
// by construction, prefix-aligned; a hyphen-range glob need not be (e.g.
// "10.0.0.1-5" spans 5 addresses, no single CIDR block), in which case
// this returns an error rather than silently picking a covering supernet.
func (g IPGlob) ToCIDR() (IPNetwork, error) {
	r, err := g.ToRange()
	if err != nil {
		return IPNetwork{}, err
	}
	cidrs := r.CIDRs()
	if len(cidrs) != 1 {
		return IPNetwork{}, newFormatError(g.String(), "glob did not reduce to a single CIDR block")
	}
	return cidrs[0], nil
}

// GlobFromCIDR converts a byte-aligned (/8, /16, /24, /32) IPv4 network
// into its glob representation. Non-byte-aligned prefixes have no glob
// equivalent.
func GlobFromCIDR(n IPNetwork) (IPGlob, error) {
	if n.Family() != IPv4 {
		return IPGlob{}, newConversionError(n.Family(), IPv4, "glob notation is IPv4-only")
	}
	if n.PrefixLen()%8 != 0 {
		return IPGlob{}, newFormatError(n.String(), "only byte-aligned prefixes (/8, /16, /24, /32) convert to glob notation")
	}
	b := n.Network().Packed()
	wildcards := (32 - n.PrefixLen()) / 8
	var g IPGlob
	for i := 0; i < 4; i++ {
		if i >= 4-wildcards {
			g.octets[i] = globOctet{lo: 0, hi: 255, isWildcard: true}
		} else {
			v := int(b[i])
			g.octets[i] = globOctet{lo: v, hi: v}
		}
	}
	return g, nil
}
