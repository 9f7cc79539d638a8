package ipalg

import (
	"strconv"
	"strings"

	"github.com/ipalg/ipalg/internal/bits128"
)

// Dialects for formatting an IPv6 address.
const (
	ipv6Compact = iota // RFC 5952 compact form (lowercase, :: collapse)
	ipv6Full           // no :: collapse, no zero suppression within a hextet
	ipv6Verbose        // full, uppercase
)

type ipv6Strategy struct{}

func (ipv6Strategy) family() Family       { return IPv6 }
func (ipv6Strategy) width() int           { return 128 }
func (ipv6Strategy) maxVal() bits128.U128 { return bits128.Max }

func (ipv6Strategy) intToPacked(v bits128.U128) []byte {
	return bits128.Bytes(v)
}

func (ipv6Strategy) packedToInt(b []byte) (bits128.U128, error) {
	if len(b) != 16 {
		return bits128.Zero, newFormatError("", "packed IPv6 value must be exactly 16 bytes")
	}
	return bits128.FromBytes(b), nil
}

func (ipv6Strategy) format(v bits128.U128, dialect int) string {
	hextets := toHextets(v)
	switch dialect {
	case ipv6Full:
		return joinHextets(hextets, false, false)
	case ipv6Verbose:
		return joinHextets(hextets, false, true)
	default:
		return formatCompact(hextets)
	}
}

func toHextets(v bits128.U128) [8]uint16 {
	b := bits128.Bytes(v)
	var h [8]uint16
	for i := 0; i < 8; i++ {
		h[i] = uint16(b[i*2])<<8 | uint16(b[i*2+1])
	}
	return h
}

func joinHextets(h [8]uint16, suppressZeros, upper bool) string {
	parts := make([]string, 8)
	for i, v := range h {
		var s string
		if suppressZeros {
			s = strconv.FormatUint(uint64(v), 16)
		} else {
			s = padHex4(v)
		}
		if upper {
			s = strings.ToUpper(s)
		}
		parts[i] = s
	}
	return strings.Join(parts, ":")
}

func padHex4(v uint16) string {
	s := strconv.FormatUint(uint64(v), 16)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

// formatCompact implements RFC 5952: lowercase, no leading zeros within a
// hextet, collapse the single longest run of >=2 zero hextets to "::"
// (left-most on ties), never collapse a lone zero hextet.
func formatCompact(h [8]uint16) string {
	start, length := longestZeroRun(h)
	if length < 2 {
		parts := make([]string, 8)
		for i, v := range h {
			parts[i] = strconv.FormatUint(uint64(v), 16)
		}
		return strings.Join(parts, ":")
	}

	var left, right []string
	for i := 0; i < start; i++ {
		left = append(left, strconv.FormatUint(uint64(h[i]), 16))
	}
	for i := start + length; i < 8; i++ {
		right = append(right, strconv.FormatUint(uint64(h[i]), 16))
	}

	ls := strings.Join(left, ":")
	rs := strings.Join(right, ":")
	if ls == "" && rs == "" {
		return "::"
	}
	if ls == "" {
		return "::" + rs
	}
	if rs == "" {
		return ls + "::"
	}
	return ls + "::" + rs
}

func longestZeroRun(h [8]uint16) (start, length int) {
	bestStart, bestLen := -1, 0
	curStart, curLen := -1, 0
	for i, v := range h {
		if v == 0 {
			if curStart == -1 {
				curStart = i
			}
			curLen++
		} else {
			if curLen > bestLen {
				bestStart, bestLen = curStart, curLen
			}
			curStart, curLen = -1, 0
		}
	}
	if curLen > bestLen {
		bestStart, bestLen = curStart, curLen
	}
	if bestStart == -1 {
		return 0, 0
	}
	return bestStart, bestLen
}

// parseText implements the RFC 4291 IPv6 grammar of spec §4.1: at most one
// "::" elision, an optional embedded IPv4 tail in the last 32 bits, leading
// zeros accepted per hextet, and a trailing "%zone" suffix that is
// preserved by the caller (IPAddress.zone) but excluded from the integer
// value. A zone containing "/" is rejected.
func (ipv6Strategy) parseText(text string, _ Flag) (bits128.U128, error) {
	body, _, err := splitZone(text)
	if err != nil {
		return bits128.Zero, newFormatError(text, err.Error())
	}

	if idx := strings.Index(body, "."); idx != -1 {
		// embedded IPv4 tail: rewrite the last group as two hextets
		lastColon := strings.LastIndex(body, ":")
		if lastColon == -1 {
			return bits128.Zero, newFormatError(text, "malformed embedded IPv4 tail")
		}
		v4text := body[lastColon+1:]
		v4, err := ipv4Strategy{}.parseText(v4text, 0)
		if err != nil {
			return bits128.Zero, newFormatError(text, "invalid embedded IPv4 address")
		}
		b := bits128.Bytes(v4)
		hi := uint16(b[12])<<8 | uint16(b[13])
		lo := uint16(b[14])<<8 | uint16(b[15])
		body = body[:lastColon+1] + strconv.FormatUint(uint64(hi), 16) + ":" + strconv.FormatUint(uint64(lo), 16)
	}

	hextets, err := parseHextetGroups(body)
	if err != nil {
		return bits128.Zero, newFormatError(text, err.Error())
	}

	b := make([]byte, 16)
	for i, h := range hextets {
		b[i*2] = byte(h >> 8)
		b[i*2+1] = byte(h)
	}
	return bits128.FromBytes(b), nil
}

// splitZone separates a trailing "%zone" suffix. Returns an error if the
// zone contains "/".
func splitZone(text string) (body, zone string, err error) {
	if idx := strings.IndexByte(text, '%'); idx != -1 {
		body = text[:idx]
		zone = text[idx+1:]
		if strings.ContainsRune(zone, '/') {
			return "", "", errStr("zone identifier must not contain '/'")
		}
		return body, zone, nil
	}
	return text, "", nil
}

func parseHextetGroups(body string) ([8]uint16, error) {
	var out [8]uint16
	if body == "" {
		return out, errStr("empty IPv6 address")
	}

	elisionCount := strings.Count(body, "::")
	if elisionCount > 1 {
		return out, errStr("at most one '::' elision is permitted")
	}

	var leftParts, rightParts []string
	if elisionCount == 1 {
		halves := strings.SplitN(body, "::", 2)
		if halves[0] != "" {
			leftParts = strings.Split(halves[0], ":")
		}
		if halves[1] != "" {
			rightParts = strings.Split(halves[1], ":")
		}
	} else {
		leftParts = strings.Split(body, ":")
	}

	if len(leftParts)+len(rightParts) > 8 {
		return out, errStr("too many hextets")
	}
	if elisionCount == 0 && len(leftParts) != 8 {
		return out, errStr("wrong number of hextets (use '::' to elide zero runs)")
	}

	parsed := make([]uint16, 0, 8)
	for _, p := range leftParts {
		v, err := parseHextet(p)
		if err != nil {
			return out, err
		}
		parsed = append(parsed, v)
	}
	fillCount := 8 - len(leftParts) - len(rightParts)
	for i := 0; i < fillCount; i++ {
		parsed = append(parsed, 0)
	}
	for _, p := range rightParts {
		v, err := parseHextet(p)
		if err != nil {
			return out, err
		}
		parsed = append(parsed, v)
	}
	if len(parsed) != 8 {
		return out, errStr("malformed IPv6 address")
	}
	copy(out[:], parsed)
	return out, nil
}

func parseHextet(p string) (uint16, error) {
	if p == "" || len(p) > 4 {
		return 0, errStr("invalid hextet")
	}
	n, err := strconv.ParseUint(p, 16, 32)
	if err != nil || n > 0xFFFF {
		return 0, errStr("invalid hextet")
	}
	return uint16(n), nil
}

// ValidIPv6 reports whether text parses as an IPv6 address, without
// constructing an IPAddress.
func ValidIPv6(text string, flags Flag) bool { return validIPv6(text, flags) }

// validIPv6 is a boolean validator that never raises: it runs the same
// grammar sub-checks parseText composes (zone split, embedded-IPv4 tail,
// hextet-group structure) directly and reports their combined result,
// rather than calling parseText and checking for a non-nil error (Design
// Note "Exception-as-validation").
func validIPv6(text string, _ Flag) bool {
	body, _, err := splitZone(text)
	if err != nil {
		return false
	}

	if idx := strings.Index(body, "."); idx != -1 {
		lastColon := strings.LastIndex(body, ":")
		if lastColon == -1 {
			return false
		}
		if !validIPv4(body[lastColon+1:], 0) {
			return false
		}
		// Replace the embedded IPv4 tail with two placeholder hextets so
		// the remaining hextet-group structure (elision count, group
		// count) can still be checked independently of the tail's value.
		body = body[:lastColon+1] + "0:0"
	}

	return validHextetGroups(body)
}

// validHextetGroups mirrors parseHextetGroups' structural rules (elision
// count, group count, per-hextet length/digit checks) as a boolean check,
// without building the resulting 8-hextet array.
func validHextetGroups(body string) bool {
	if body == "" {
		return false
	}

	elisionCount := strings.Count(body, "::")
	if elisionCount > 1 {
		return false
	}

	var leftParts, rightParts []string
	if elisionCount == 1 {
		halves := strings.SplitN(body, "::", 2)
		if halves[0] != "" {
			leftParts = strings.Split(halves[0], ":")
		}
		if halves[1] != "" {
			rightParts = strings.Split(halves[1], ":")
		}
	} else {
		leftParts = strings.Split(body, ":")
	}

	if len(leftParts)+len(rightParts) > 8 {
		return false
	}
	if elisionCount == 0 && len(leftParts) != 8 {
		return false
	}

	for _, p := range leftParts {
		if !validHextet(p) {
			return false
		}
	}
	for _, p := range rightParts {
		if !validHextet(p) {
			return false
		}
	}
	return true
}

func validHextet(p string) bool {
	if p == "" || len(p) > 4 {
		return false
	}
	n, err := strconv.ParseUint(p, 16, 32)
	return err == nil && n <= 0xFFFF
}
