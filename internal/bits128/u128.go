// Package bits128 provides the fixed-width 128-bit unsigned integer that
// stores the value of every address family (IPv4 and EUI values in the
// low-order bits, IPv6 in all 128). It is a
// thin wrapper around lukechampine.com/uint128 rather than math/big: the
// address space above IPv6 never needs to be represented, so a two-limb
// fixed-width type is the right tool (see Design Note "Big integers"). Bit
// manipulation (shift/mask/and/or) is implemented directly against the
// exported Lo/Hi limbs rather than assumed uint128 helper methods, to keep
// this package pinned to the small slice of the uint128 API the rest of the
// module actually exercises (New, Add, Sub, Cmp, IsZero, FromBytesBE,
// PutBytesBE).
package bits128

import (
	"math/big"

	"lukechampine.com/uint128"
)

// U128 is an unsigned 128-bit integer, MSB-first semantics throughout.
type U128 = uint128.Uint128

// Zero is the all-zero 128-bit value.
var Zero = uint128.New(0, 0)

// Max is the all-ones 128-bit value, 2^128 - 1.
var Max = uint128.New(^uint64(0), ^uint64(0))

// FromBytes reinterprets a 16-byte big-endian slice as a U128. Panics if len(b) != 16.
func FromBytes(b []byte) U128 {
	if len(b) != 16 {
		panic("bits128: FromBytes requires exactly 16 bytes")
	}
	return uint128.FromBytesBE(b)
}

// Bytes returns the big-endian 16-byte encoding of v.
func Bytes(v U128) []byte {
	b := make([]byte, 16)
	v.PutBytesBE(b)
	return b
}

// FromBig converts a math/big.Int in [0, 2^128) to a U128; wider values
// keep only their low 128 bits.
func FromBig(z *big.Int) U128 {
	b := z.Bytes()
	if len(b) > 16 {
		b = b[len(b)-16:]
	}
	padded := make([]byte, 16)
	copy(padded[16-len(b):], b)
	return FromBytes(padded)
}

// ToBig converts a U128 to a math/big.Int.
func ToBig(v U128) *big.Int {
	return new(big.Int).SetBytes(Bytes(v))
}

// Cmp returns -1, 0, or 1 comparing a to b.
func Cmp(a, b U128) int {
	return a.Cmp(b)
}

// Add returns a+b and whether the addition overflowed (saturates at Max).
func Add(a, b U128) (U128, bool) {
	// detect overflow before it happens: a+b overflows iff b > Max-a
	room := Sub1(Max, a)
	if Cmp(b, room) > 0 {
		return Max, true
	}
	return a.Add(b), false
}

// Sub returns a-b and whether the subtraction underflowed (saturates at Zero).
func Sub(a, b U128) (U128, bool) {
	if Cmp(a, b) < 0 {
		return Zero, true
	}
	return a.Sub(b), false
}

// Sub1 is an internal non-saturating subtract used only where the caller has
// already proven a >= b.
func Sub1(a, b U128) U128 {
	return a.Sub(b)
}

// TrailingZeros returns the number of trailing zero bits in v, or 128 if v is zero.
func TrailingZeros(v U128) int {
	if v.Lo != 0 {
		return trailingZeros64(v.Lo)
	}
	if v.Hi != 0 {
		return 64 + trailingZeros64(v.Hi)
	}
	return 128
}

func trailingZeros64(x uint64) int {
	n := 0
	for x&1 == 0 {
		n++
		x >>= 1
	}
	return n
}

// BitLen returns the minimum number of bits required to represent v.
func BitLen(v U128) int {
	if v.Hi != 0 {
		return 64 + bitLen64(v.Hi)
	}
	return bitLen64(v.Lo)
}

func bitLen64(x uint64) int {
	n := 0
	for x != 0 {
		n++
		x >>= 1
	}
	return n
}

// Shl returns v << n. n must be in [0, 128].
func Shl(v U128, n uint) U128 {
	switch {
	case n == 0:
		return v
	case n >= 128:
		return Zero
	case n >= 64:
		return uint128.New(0, v.Lo<<(n-64))
	default:
		return uint128.New(v.Lo<<n, (v.Hi<<n)|(v.Lo>>(64-n)))
	}
}

// Shr returns v >> n (logical). n must be in [0, 128].
func Shr(v U128, n uint) U128 {
	switch {
	case n == 0:
		return v
	case n >= 128:
		return Zero
	case n >= 64:
		return uint128.New(v.Hi>>(n-64), 0)
	default:
		return uint128.New((v.Lo>>n)|(v.Hi<<(64-n)), v.Hi>>n)
	}
}

// And returns the bitwise AND of a and b.
func And(a, b U128) U128 { return uint128.New(a.Lo&b.Lo, a.Hi&b.Hi) }

// Or returns the bitwise OR of a and b.
func Or(a, b U128) U128 { return uint128.New(a.Lo|b.Lo, a.Hi|b.Hi) }

// Not returns the bitwise complement of v.
func Not(v U128) U128 { return uint128.New(^v.Lo, ^v.Hi) }

// Mask returns a U128 whose top `ones` bits are set and remaining 128-ones
// bits are clear -- the netmask for a /ones IPv6 prefix.
func Mask(ones int) U128 {
	if ones <= 0 {
		return Zero
	}
	if ones >= 128 {
		return Max
	}
	return Shl(Max, uint(128-ones))
}

// IsZero reports whether v is the zero value.
func IsZero(v U128) bool { return v.IsZero() }

// One is the 128-bit value 1.
var One = uint128.New(1, 0)

// FromLo64 returns a U128 with low 64 bits set to lo and high 64 bits zero.
func FromLo64(lo uint64) U128 {
	return uint128.New(lo, 0)
}

// New returns a U128 with the given low and high 64-bit limbs.
func New(lo, hi uint64) U128 {
	return uint128.New(lo, hi)
}
