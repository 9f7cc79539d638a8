package ipalg

import (
	"github.com/ipalg/ipalg/internal/bits128"
	"github.com/ipalg/ipalg/specialreg"
)

// EUI is a single IEEE EUI-48 or EUI-64 hardware address: a (value_int,
// strategy) pair exactly like IPAddress, but over the MAC48/MAC64
// families (spec §3/§4.2).
type EUI struct {
	val bits128.U128
	fam Family
}

// NewEUIFromString parses text against both EUI-48 and EUI-64 grammars,
// preferring whichever matches; width is disambiguated by byte count, so
// the two never collide (see mac_strategy.go's dialect parsers).
func NewEUIFromString(text string) (EUI, error) {
	if v, err := macStrategy{w: 48}.parseText(text, 0); err == nil {
		return EUI{val: v, fam: MAC48}, nil
	}
	if v, err := macStrategy{w: 64}.parseText(text, 0); err == nil {
		return EUI{val: v, fam: MAC64}, nil
	}
	return EUI{}, newFormatError(text, "does not match any recognized EUI-48 or EUI-64 grammar")
}

// NewEUIFromPacked builds an EUI from packed bytes, choosing the family by
// length: 6 bytes -> EUI-48, 8 bytes -> EUI-64.
func NewEUIFromPacked(b []byte) (EUI, error) {
	switch len(b) {
	case 6:
		v, err := macStrategy{w: 48}.packedToInt(b)
		if err != nil {
			return EUI{}, err
		}
		return EUI{val: v, fam: MAC48}, nil
	case 8:
		v, err := macStrategy{w: 64}.packedToInt(b)
		if err != nil {
			return EUI{}, err
		}
		return EUI{val: v, fam: MAC64}, nil
	default:
		return EUI{}, newFormatError("", "packed EUI must be 6 or 8 bytes")
	}
}

// Family returns MAC48 or MAC64.
func (e EUI) Family() Family { return e.fam }

// Uint128 exposes the raw integer value (occupying the low width bits).
func (e EUI) Uint128() bits128.U128 { return e.val }

// Packed returns the address as big-endian bytes.
func (e EUI) Packed() []byte { return strategyFor(e.fam).intToPacked(e.val) }

// String renders the address in IEEE dash-separated upper-hex form
// ("AA-BB-CC-DD-EE-FF"), matching macEUI48's default dialect.
func (e EUI) String() string { return strategyFor(e.fam).format(e.val, macEUI48) }

// Format renders the address using an explicit dialect constant (see
// mac_strategy.go).
func (e EUI) Format(dialect int) string { return strategyFor(e.fam).format(e.val, dialect) }

// Equal reports whether e and o denote the same address, family included.
func (e EUI) Equal(o EUI) bool { return e.fam == o.fam && bits128.Cmp(e.val, o.val) == 0 }

// HexString renders the address as an unpunctuated upper-hex string.
func (e EUI) HexString() string { return e.Format(macBare) }

// OUI returns the organizationally unique identifier: the top 24 bits for
// EUI-48, and the top 24 bits for EUI-64 as well (the IEEE OUI is always
// the first three octets, regardless of address width).
func (e EUI) OUI() uint32 {
	b := e.Packed()
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// EI returns the extension identifier: the low-order bits of the address
// after the 24-bit OUI (24 bits for EUI-48, 40 bits for EUI-64).
func (e EUI) EI() bits128.U128 {
	width := strategyFor(e.fam).width()
	eiBits := uint(width - 24)
	mask := bits128.FromLo64((uint64(1) << eiBits) - 1)
	return bits128.And(e.val, mask)
}

// IsLocallyAdministered reports whether the U/L bit (bit 1 of the first
// octet) is set, per IEEE 802-2014 §8.2.
func (e EUI) IsLocallyAdministered() bool {
	b := e.Packed()
	return b[0]&0x02 != 0
}

// IsMulticast reports whether the I/G bit (bit 0 of the first octet) is
// set, per IEEE 802-2014 §8.2.
func (e EUI) IsMulticast() bool {
	b := e.Packed()
	return b[0]&0x01 != 0
}

// IsIAB reports whether the address's OUI is one of the two blocks IEEE
// reserved for Individual Address Block sub-assignment (legacy 00-50-C2,
// new 40-D8-55): the full registry-backed check (carved 12-bit sub-block
// against a known IAB record) lives in ipalg/registry, which this package
// cannot import without a cycle.
func (e EUI) IsIAB() bool {
	if e.fam != MAC48 {
		return false
	}
	const legacyIABOUI = 0x0050C2
	const newIABOUI = 0x40D855
	oui := e.OUI()
	return oui == legacyIABOUI || oui == newIABOUI
}

// ModifiedEUI64 derives the RFC 4291 Appendix A modified EUI-64 form used
// to build IPv6 interface identifiers: for an EUI-48 source, insert
// 0xFFFE between the OUI and extension identifier; for an EUI-64 source,
// use it as-is. In both cases the U/L bit is flipped.
func (e EUI) ModifiedEUI64() [8]byte {
	var out [8]byte
	b := e.Packed()
	if e.fam == MAC48 {
		copy(out[0:3], b[0:3])
		out[3], out[4] = 0xFF, 0xFE
		copy(out[5:8], b[3:6])
	} else {
		copy(out[:], b)
	}
	out[0] ^= 0x02
	return out
}

// IPv6LinkLocal derives the fe80::/10 link-local IPv6 address whose
// interface identifier is this EUI's modified EUI-64 form.
func (e EUI) IPv6LinkLocal() IPAddress {
	return e.ipv6WithPrefix([8]byte{0xfe, 0x80, 0, 0, 0, 0, 0, 0})
}

// IPv6 derives a full IPv6 address by concatenating prefix's first 64
// bits with this EUI's modified EUI-64 interface identifier.
func (e EUI) IPv6(prefix IPNetwork) (IPAddress, error) {
	if prefix.Family() != IPv6 || prefix.PrefixLen() > 64 {
		return IPAddress{}, newConversionError(e.fam, IPv6, "prefix must be an IPv6 network of length <= 64")
	}
	b := prefix.Network().Packed()
	var hi [8]byte
	copy(hi[:], b[:8])
	return e.ipv6WithPrefix(hi), nil
}

func (e EUI) ipv6WithPrefix(prefixHi [8]byte) IPAddress {
	iid := e.ModifiedEUI64()
	var full [16]byte
	copy(full[:8], prefixHi[:])
	copy(full[8:], iid[:])
	return NewIPAddressFromBig128(full)
}

// IsReservedIID reports whether this EUI's modified EUI-64 form collides
// with one of the RFC 5453 reserved IPv6 interface identifiers.
func (e EUI) IsReservedIID() bool {
	return specialreg.IsReservedIID(e.ModifiedEUI64())
}
