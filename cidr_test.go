package ipalg

import "testing"

func mustNet(t *testing.T, s string) IPNetwork {
	t.Helper()
	n, err := NewIPNetwork(s, 0)
	if err != nil {
		t.Fatalf("NewIPNetwork(%q) error: %v", s, err)
	}
	return n
}

func TestCIDRMergeAdjacent(t *testing.T) {
	nets := []IPNetwork{
		mustNet(t, "192.168.0.0/25"),
		mustNet(t, "192.168.0.128/25"),
	}
	merged := CIDRMerge(nets)
	if len(merged) != 1 || merged[0].String() != "192.168.0.0/24" {
		t.Fatalf("CIDRMerge() = %v, want a single 192.168.0.0/24", merged)
	}
}

func TestCIDRMergeNonAdjacent(t *testing.T) {
	nets := []IPNetwork{
		mustNet(t, "192.168.0.0/24"),
		mustNet(t, "192.168.5.0/24"),
	}
	merged := CIDRMerge(nets)
	if len(merged) != 2 {
		t.Fatalf("CIDRMerge() = %v, want 2 disjoint blocks", merged)
	}
}

func TestCIDRExcludeMiddle(t *testing.T) {
	base := mustNet(t, "192.168.0.0/24")
	excl := mustNet(t, "192.168.0.64/27")
	out := CIDRExclude(base, excl)
	total := bitsCovered(t, out)
	if total != 256-32 {
		t.Errorf("CIDRExclude covers %d addresses, want %d", total, 256-32)
	}
	for _, n := range out {
		if n.Contains(excl.Network()) {
			t.Errorf("excluded block %v should not appear covered by %v", excl, n)
		}
	}
}

func bitsCovered(t *testing.T, nets []IPNetwork) int {
	t.Helper()
	total := 0
	for _, n := range nets {
		total += int(n.Count().Lo)
	}
	return total
}

func TestCIDRExcludeDisjoint(t *testing.T) {
	base := mustNet(t, "192.168.0.0/24")
	excl := mustNet(t, "10.0.0.0/8")
	out := CIDRExclude(base, excl)
	if len(out) != 1 || out[0].String() != base.String() {
		t.Errorf("CIDRExclude with a disjoint excl should return base unchanged, got %v", out)
	}
}

func TestSpanningCIDRFreeFunction(t *testing.T) {
	nets := []IPNetwork{
		mustNet(t, "10.0.0.0/24"),
		mustNet(t, "10.0.1.0/24"),
	}
	span, err := SpanningCIDR(nets)
	if err != nil {
		t.Fatal(err)
	}
	if got := span.String(); got != "10.0.0.0/23" {
		t.Errorf("SpanningCIDR() = %q, want 10.0.0.0/23", got)
	}
}

func TestIterIPRange(t *testing.T) {
	r, err := NewIPRange(mustAddr(t, "10.0.0.1"), mustAddr(t, "10.0.0.3"))
	if err != nil {
		t.Fatal(err)
	}
	var addrs []IPAddress
	for a := range IterIPRange(r) {
		addrs = append(addrs, a)
	}
	want := []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}
	if len(addrs) != len(want) {
		t.Fatalf("IterIPRange() returned %d addresses, want %d", len(addrs), len(want))
	}
	for i, w := range want {
		if got := addrs[i].String(); got != w {
			t.Errorf("addrs[%d] = %q, want %q", i, got, w)
		}
	}
}

func TestIterIPRangeEarlyStop(t *testing.T) {
	r, err := NewIPRange(mustAddr(t, "10.0.0.1"), mustAddr(t, "10.0.0.10"))
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for range IterIPRange(r) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("range-over-func loop should stop after break, visited %d", count)
	}
}

func TestIterUniqueIPs(t *testing.T) {
	r1, _ := NewIPRange(mustAddr(t, "10.0.0.1"), mustAddr(t, "10.0.0.3"))
	r2, _ := NewIPRange(mustAddr(t, "10.0.0.2"), mustAddr(t, "10.0.0.4"))
	addrs := IterUniqueIPs([]IPRange{r1, r2})
	want := []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4"}
	if len(addrs) != len(want) {
		t.Fatalf("IterUniqueIPs() returned %d addresses, want %d: %v", len(addrs), len(want), addrs)
	}
	for i, w := range want {
		if got := addrs[i].String(); got != w {
			t.Errorf("addrs[%d] = %q, want %q", i, got, w)
		}
	}
}

func TestLargestAndSmallestMatchingCIDR(t *testing.T) {
	candidates := []IPNetwork{
		mustNet(t, "10.0.0.0/8"),
		mustNet(t, "10.0.0.0/16"),
		mustNet(t, "10.0.0.0/24"),
	}
	addr := mustAddr(t, "10.0.0.5")

	largest, ok := LargestMatchingCIDR(addr, candidates)
	if !ok || largest.String() != "10.0.0.0/8" {
		t.Errorf("LargestMatchingCIDR() = %v, ok=%v, want 10.0.0.0/8", largest, ok)
	}

	smallest, ok := SmallestMatchingCIDR(addr, candidates)
	if !ok || smallest.String() != "10.0.0.0/24" {
		t.Errorf("SmallestMatchingCIDR() = %v, ok=%v, want 10.0.0.0/24", smallest, ok)
	}
}

func TestLargestMatchingCIDRNoMatch(t *testing.T) {
	candidates := []IPNetwork{mustNet(t, "192.168.0.0/24")}
	_, ok := LargestMatchingCIDR(mustAddr(t, "10.0.0.1"), candidates)
	if ok {
		t.Error("expected no match for an address outside every candidate")
	}
}

func TestAllMatchingCIDRs(t *testing.T) {
	candidates := []IPNetwork{
		mustNet(t, "10.0.0.0/24"),
		mustNet(t, "10.0.0.0/8"),
		mustNet(t, "10.0.0.0/16"),
	}
	addr := mustAddr(t, "10.0.0.5")
	matches := AllMatchingCIDRs(addr, candidates)
	want := []string{"10.0.0.0/8", "10.0.0.0/16", "10.0.0.0/24"}
	if len(matches) != len(want) {
		t.Fatalf("AllMatchingCIDRs() = %v, want %v", matches, want)
	}
	for i, w := range want {
		if got := matches[i].String(); got != w {
			t.Errorf("matches[%d] = %q, want %q", i, got, w)
		}
	}
}
