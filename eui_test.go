package ipalg

import "testing"

func TestEUIOUIandEI(t *testing.T) {
	e, err := NewEUIFromString("AA-BB-CC-DD-EE-FF")
	if err != nil {
		t.Fatal(err)
	}
	if got := e.OUI(); got != 0xAABBCC {
		t.Errorf("OUI() = %06X, want AABBCC", got)
	}
	if got := e.EI().Lo; got != 0xDDEEFF {
		t.Errorf("EI() = %06X, want DDEEFF", got)
	}
}

func TestEUI64EI(t *testing.T) {
	e, err := NewEUIFromString("AA-BB-CC-DD-EE-FF-00-11")
	if err != nil {
		t.Fatal(err)
	}
	if got := e.OUI(); got != 0xAABBCC {
		t.Errorf("OUI() = %06X, want AABBCC", got)
	}
	if got := e.EI().Lo; got != 0xDDEEFF0011 {
		t.Errorf("EI() = %X, want DDEEFF0011", got)
	}
}

func TestEUILocallyAdministeredAndMulticast(t *testing.T) {
	// bit0 (I/G) and bit1 (U/L) of the first octet, 0x03 sets both.
	e, err := NewEUIFromString("03-00-00-00-00-01")
	if err != nil {
		t.Fatal(err)
	}
	if !e.IsLocallyAdministered() {
		t.Error("expected locally administered bit to be set")
	}
	if !e.IsMulticast() {
		t.Error("expected multicast bit to be set")
	}

	e2, err := NewEUIFromString("00-1B-77-00-00-01")
	if err != nil {
		t.Fatal(err)
	}
	if e2.IsLocallyAdministered() || e2.IsMulticast() {
		t.Error("universally administered unicast address flagged incorrectly")
	}
}

func TestEUIIsIAB(t *testing.T) {
	legacy, err := NewEUIFromString("00-50-C2-3A-B0-00")
	if err != nil {
		t.Fatal(err)
	}
	if !legacy.IsIAB() {
		t.Error("expected legacy IAB OUI 00-50-C2 to be flagged")
	}

	modern, err := NewEUIFromString("40-D8-55-12-30-00")
	if err != nil {
		t.Fatal(err)
	}
	if !modern.IsIAB() {
		t.Error("expected new IAB OUI 40-D8-55 to be flagged")
	}

	notIAB, err := NewEUIFromString("00-1B-77-00-00-01")
	if err != nil {
		t.Fatal(err)
	}
	if notIAB.IsIAB() {
		t.Error("non-IAB OUI incorrectly flagged as IAB")
	}
}

func TestModifiedEUI64(t *testing.T) {
	e, err := NewEUIFromString("02-00-00-00-00-01")
	if err != nil {
		t.Fatal(err)
	}
	iid := e.ModifiedEUI64()
	want := [8]byte{0x00, 0x00, 0x00, 0xFF, 0xFE, 0x00, 0x00, 0x01}
	if iid != want {
		t.Errorf("ModifiedEUI64() = %x, want %x", iid, want)
	}
}

func TestIPv6LinkLocal(t *testing.T) {
	e, err := NewEUIFromString("02-00-00-00-00-01")
	if err != nil {
		t.Fatal(err)
	}
	addr := e.IPv6LinkLocal()
	if got := addr.String(); got != "fe80::ff:fe00:1" {
		t.Errorf("IPv6LinkLocal() = %q, want fe80::ff:fe00:1", got)
	}
}

func TestEUIIPv6WithPrefix(t *testing.T) {
	e, err := NewEUIFromString("02-00-00-00-00-01")
	if err != nil {
		t.Fatal(err)
	}
	prefix, err := NewIPNetwork("2001:db8::/64", 0)
	if err != nil {
		t.Fatal(err)
	}
	addr, err := e.IPv6(prefix)
	if err != nil {
		t.Fatal(err)
	}
	if got := addr.String(); got != "2001:db8::ff:fe00:1" {
		t.Errorf("IPv6(prefix) = %q, want 2001:db8::ff:fe00:1", got)
	}
}

func TestEUIIPv6RejectsLongPrefix(t *testing.T) {
	e, err := NewEUIFromString("02-00-00-00-00-01")
	if err != nil {
		t.Fatal(err)
	}
	prefix, err := NewIPNetwork("2001:db8::/96", 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.IPv6(prefix); err == nil {
		t.Error("expected an error deriving an IPv6 address from a prefix longer than 64 bits")
	}
}

func TestEUIPacked(t *testing.T) {
	e, err := NewEUIFromString("AA-BB-CC-DD-EE-FF")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	got := e.Packed()
	if len(got) != len(want) {
		t.Fatalf("Packed() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Packed()[%d] = %02X, want %02X", i, got[i], want[i])
		}
	}
}

func TestEUIEqual(t *testing.T) {
	a, _ := NewEUIFromString("AA-BB-CC-DD-EE-FF")
	b, _ := NewEUIFromString("aa:bb:cc:dd:ee:ff")
	c, _ := NewEUIFromString("AA-BB-CC-DD-EE-00")
	if !a.Equal(b) {
		t.Error("expected equal addresses from different dialects to compare equal")
	}
	if a.Equal(c) {
		t.Error("expected different addresses to compare unequal")
	}
}
