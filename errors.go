package ipalg

import "fmt"

// AddrFormatError signals any syntactic or range violation at parse time:
// malformed text, an integer or packed value outside the family's range, or
// an ambiguous input rejected by a strict parse mode. Constructors are
// all-or-nothing -- no partial value ever escapes an AddrFormatError.
type AddrFormatError struct {
	// Input is the offending text, or a %v-rendering of the offending
	// integer/byte input.
	Input string
	// Reason is a short human-readable explanation.
	Reason string
}

func (e *AddrFormatError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("ipalg: bad address format: %s", e.Reason)
	}
	return fmt.Sprintf("ipalg: bad address format %q: %s", e.Input, e.Reason)
}

func newFormatError(input, reason string) *AddrFormatError {
	return &AddrFormatError{Input: input, Reason: reason}
}

// AddrConversionError signals an arithmetic or containment operation
// attempted between incompatible address families (IPv4 vs IPv6, EUI-48 vs
// a family with no derivation rule, etc).
type AddrConversionError struct {
	From, To Family
	Reason   string
}

func (e *AddrConversionError) Error() string {
	return fmt.Sprintf("ipalg: cannot convert/compare %s with %s: %s", e.From, e.To, e.Reason)
}

func newConversionError(from, to Family, reason string) *AddrConversionError {
	return &AddrConversionError{From: from, To: to, Reason: reason}
}

// NotRegisteredError signals a syntactically valid registry key (an OUI or
// IAB prefix) with no matching entry in the loaded registry.
type NotRegisteredError struct {
	Prefix string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("ipalg: %s is not a registered prefix", e.Prefix)
}

// NewNotRegisteredError constructs a NotRegisteredError for the given
// textual prefix. Exported so the registry package (and others outside
// ipalg) can raise the same error kind.
func NewNotRegisteredError(prefix string) *NotRegisteredError {
	return &NotRegisteredError{Prefix: prefix}
}
