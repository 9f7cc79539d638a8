package ipalg

import "testing"

func mustAddr(t *testing.T, s string) IPAddress {
	t.Helper()
	a, err := NewIPAddressFromString(s, 0)
	if err != nil {
		t.Fatalf("NewIPAddressFromString(%q) error: %v", s, err)
	}
	return a
}

func TestIPRangeCIDRsSingleBlock(t *testing.T) {
	r, err := NewIPRange(mustAddr(t, "192.168.1.0"), mustAddr(t, "192.168.1.255"))
	if err != nil {
		t.Fatal(err)
	}
	cidrs := r.CIDRs()
	if len(cidrs) != 1 || cidrs[0].String() != "192.168.1.0/24" {
		t.Fatalf("CIDRs() = %v, want a single 192.168.1.0/24", cidrs)
	}
}

func TestIPRangeCIDRsMultiBlock(t *testing.T) {
	r, err := NewIPRange(mustAddr(t, "10.0.0.1"), mustAddr(t, "10.0.0.10"))
	if err != nil {
		t.Fatal(err)
	}
	cidrs := r.CIDRs()
	// .1 is a /32, .2-.3 is a /31, .4-.7 is a /30, .8-.9 is a /31, .10 is a /32
	want := []string{
		"10.0.0.1/32",
		"10.0.0.2/31",
		"10.0.0.4/30",
		"10.0.0.8/31",
		"10.0.0.10/32",
	}
	if len(cidrs) != len(want) {
		t.Fatalf("CIDRs() returned %d blocks, want %d: %v", len(cidrs), len(want), cidrs)
	}
	for i, w := range want {
		if got := cidrs[i].String(); got != w {
			t.Errorf("cidrs[%d] = %q, want %q", i, got, w)
		}
	}
}

func TestIPRangeCount(t *testing.T) {
	r, err := NewIPRange(mustAddr(t, "192.168.1.0"), mustAddr(t, "192.168.1.255"))
	if err != nil {
		t.Fatal(err)
	}
	if r.Count().Lo != 256 {
		t.Errorf("Count() = %v, want 256", r.Count())
	}
}

func TestIPRangeFromString(t *testing.T) {
	r, err := NewIPRangeFromString("10.0.0.1-10.0.0.10", 0)
	if err != nil {
		t.Fatal(err)
	}
	if r.First().String() != "10.0.0.1" || r.Last().String() != "10.0.0.10" {
		t.Errorf("got first=%v last=%v", r.First(), r.Last())
	}
}

func TestIPRangeSpanningCIDR(t *testing.T) {
	r, err := NewIPRange(mustAddr(t, "10.0.0.0"), mustAddr(t, "10.0.1.255"))
	if err != nil {
		t.Fatal(err)
	}
	got := r.SpanningCIDR()
	if got.String() != "10.0.0.0/23" {
		t.Errorf("SpanningCIDR() = %q, want 10.0.0.0/23", got.String())
	}
}

func TestIPRangeCrossFamilyRejected(t *testing.T) {
	_, err := NewIPRange(mustAddr(t, "10.0.0.1"), mustAddr(t, "::1"))
	if err == nil {
		t.Error("expected an error constructing a range across families")
	}
}
