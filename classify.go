package ipalg

import (
	"strconv"
	"strings"

	"github.com/ipalg/ipalg/internal/bits128"
	"github.com/ipalg/ipalg/specialreg"
)

// specialregMatch pairs a parsed reservation CIDR with its source entry.
type specialregMatch struct {
	reservation specialreg.Reservation
	network     bits128.U128
	prefixLen   int
}

type parsedReservation struct {
	fam       Family
	network   bits128.U128
	prefixLen int
	res       specialreg.Reservation
}

var parsedIPv4Registry = parseReservations(specialreg.IPv4Registry, IPv4)
var parsedIPv6Registry = parseReservations(specialreg.IPv6Registry, IPv6)

func parseReservations(list []specialreg.Reservation, fam Family) []parsedReservation {
	out := make([]parsedReservation, 0, len(list))
	for _, r := range list {
		net, plen, err := parseBareCIDR(r.CIDR, fam)
		if err != nil {
			continue
		}
		out = append(out, parsedReservation{fam: fam, network: net, prefixLen: plen, res: r})
	}
	return out
}

// parseBareCIDR parses "addr/prefix" without going through IPNetwork (this
// file is evaluated before the network layer during initialization of
// package-level registry tables).
func parseBareCIDR(s string, fam Family) (bits128.U128, int, error) {
	idx := strings.LastIndexByte(s, '/')
	if idx == -1 {
		return bits128.Zero, 0, newFormatError(s, "missing prefix length")
	}
	addrPart, plenPart := s[:idx], s[idx+1:]
	plen, err := strconv.Atoi(plenPart)
	if err != nil {
		return bits128.Zero, 0, newFormatError(s, "bad prefix length")
	}
	var v bits128.U128
	if fam == IPv4 {
		v, err = ipv4Strategy{}.parseText(addrPart, 0)
	} else {
		v, err = ipv6Strategy{}.parseText(addrPart, 0)
	}
	if err != nil {
		return bits128.Zero, 0, err
	}
	s2 := strategyFor(fam)
	mask := prefixMask(s2.width(), plen)
	return bits128.And(v, mask), plen, nil
}

// prefixMask returns a mask with the top `ones` bits (of a `width`-bit
// value) set, stored in the same low-order-aligned convention used by each
// strategy's packed form: for IPv6 (width==128) the value occupies the
// full 128 bits, for every other family it occupies the low `width` bits.
func prefixMask(width, ones int) bits128.U128 {
	if width >= 128 {
		return bits128.Mask(ones)
	}
	if ones <= 0 {
		return bits128.Zero
	}
	if ones >= width {
		return bits128.FromLo64((uint64(1)<<uint(width) - 1))
	}
	return bits128.FromLo64(((uint64(1) << uint(width)) - 1) &^ ((uint64(1) << uint(width-ones)) - 1))
}

func matchSpecialReg(a IPAddress) []specialregMatch {
	var table []parsedReservation
	switch a.fam {
	case IPv4:
		table = parsedIPv4Registry
	case IPv6:
		table = parsedIPv6Registry
	default:
		return nil
	}

	var out []specialregMatch
	for _, p := range table {
		width := strategyFor(p.fam).width()
		mask := prefixMask(width, p.prefixLen)
		if bits128.Cmp(bits128.And(a.val, mask), p.network) == 0 {
			out = append(out, specialregMatch{reservation: p.res, network: p.network, prefixLen: p.prefixLen})
		}
	}
	return out
}
