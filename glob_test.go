package ipalg

import "testing"

func TestIPGlobParseAndString(t *testing.T) {
	g, err := NewIPGlob("192.168.1.*")
	if err != nil {
		t.Fatal(err)
	}
	if got := g.String(); got != "192.168.1.*" {
		t.Errorf("String() = %q, want 192.168.1.*", got)
	}
}

func TestIPGlobRejectsNonContiguousWildcard(t *testing.T) {
	if _, err := NewIPGlob("192.*.1.1"); err == nil {
		t.Error("expected an error for a non-suffix wildcard")
	}
}

func TestIPGlobToCIDR(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"192.168.1.*", "192.168.1.0/24"},
		{"10.*.*.*", "10.0.0.0/8"},
		{"192.168.1.1", "192.168.1.1/32"},
	}
	for _, tt := range tests {
		g, err := NewIPGlob(tt.in)
		if err != nil {
			t.Fatalf("NewIPGlob(%q) error: %v", tt.in, err)
		}
		n, err := g.ToCIDR()
		if err != nil {
			t.Fatalf("ToCIDR(%q) error: %v", tt.in, err)
		}
		if got := n.String(); got != tt.want {
			t.Errorf("ToCIDR(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGlobFromCIDR(t *testing.T) {
	n, err := NewIPNetwork("192.168.1.0/24", 0)
	if err != nil {
		t.Fatal(err)
	}
	g, err := GlobFromCIDR(n)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.String(); got != "192.168.1.*" {
		t.Errorf("GlobFromCIDR() = %q, want 192.168.1.*", got)
	}
}

func TestGlobFromCIDRRejectsUnaligned(t *testing.T) {
	n, err := NewIPNetwork("192.168.1.0/25", 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := GlobFromCIDR(n); err == nil {
		t.Error("expected an error converting a non-byte-aligned prefix to glob form")
	}
}

func TestIPGlobHyphenRangeToRange(t *testing.T) {
	g, err := NewIPGlob("10.0.0.1-5")
	if err != nil {
		t.Fatal(err)
	}
	r, err := g.ToRange()
	if err != nil {
		t.Fatal(err)
	}
	if got := r.First().String(); got != "10.0.0.1" {
		t.Errorf("ToRange().First() = %q, want 10.0.0.1", got)
	}
	if got := r.Last().String(); got != "10.0.0.5" {
		t.Errorf("ToRange().Last() = %q, want 10.0.0.5", got)
	}
}

func TestIPGlobHyphenRangeString(t *testing.T) {
	g, err := NewIPGlob("10.0.0.1-5")
	if err != nil {
		t.Fatal(err)
	}
	if got := g.String(); got != "10.0.0.1-5" {
		t.Errorf("String() = %q, want 10.0.0.1-5", got)
	}
}

func TestIPGlobHyphenRangeDoesNotReduceToCIDR(t *testing.T) {
	g, err := NewIPGlob("10.0.0.1-5")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.ToCIDR(); err == nil {
		t.Error("expected 10.0.0.1-5 (5 addresses) not to reduce to a single CIDR block")
	}
}

func TestIPGlobHyphenRangeMustBeContiguousSuffix(t *testing.T) {
	if _, err := NewIPGlob("10.1-5.0.1"); err == nil {
		t.Error("expected an error: a hyphen-range octet not in the contiguous suffix")
	}
	if _, err := NewIPGlob("10.0.0.5-1"); err == nil {
		t.Error("expected an error for a range with lo > hi")
	}
}

func TestIPGlobHyphenRangeThenWildcard(t *testing.T) {
	if _, err := NewIPGlob("10.0.1-5.*"); err != nil {
		t.Errorf("a range octet followed by a wildcard should be a valid contiguous suffix: %v", err)
	}
}

func TestValidGlob(t *testing.T) {
	valid := []string{"192.168.1.*", "10.*.*.*", "192.168.1.1", "10.0.0.1-5", "10.0.1-5.*"}
	for _, s := range valid {
		if !ValidGlob(s) {
			t.Errorf("ValidGlob(%q) = false, want true", s)
		}
	}
	invalid := []string{"192.*.1.1", "10.0.0.256", "10.0.0", "10.0.0.5-1", "not a glob"}
	for _, s := range invalid {
		if ValidGlob(s) {
			t.Errorf("ValidGlob(%q) = true, want false", s)
		}
	}
}
