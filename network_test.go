package ipalg

import "testing"

func TestNewIPNetworkBasic(t *testing.T) {
	tests := []struct {
		in          string
		wantNetwork string
		wantPrefix  int
	}{
		{"192.168.1.0/24", "192.168.1.0", 24},
		{"192.168.1.10/24", "192.168.1.0", 24},
		{"10/8", "10.0.0.0", 8},
		{"192.168/16", "192.168.0.0", 16},
		{"10.0.0.0/255.255.255.0", "10.0.0.0", 24},
		{"2001:db8::/32", "2001:db8::", 32},
	}
	for _, tt := range tests {
		n, err := NewIPNetwork(tt.in, 0)
		if err != nil {
			t.Fatalf("NewIPNetwork(%q) error: %v", tt.in, err)
		}
		if got := n.Network().String(); got != tt.wantNetwork {
			t.Errorf("NewIPNetwork(%q).Network() = %q, want %q", tt.in, got, tt.wantNetwork)
		}
		if n.PrefixLen() != tt.wantPrefix {
			t.Errorf("NewIPNetwork(%q).PrefixLen() = %d, want %d", tt.in, n.PrefixLen(), tt.wantPrefix)
		}
	}
}

func TestIPNetworkDefaultsToHostRoute(t *testing.T) {
	n, err := NewIPNetwork("192.168.1.1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if n.PrefixLen() != 32 {
		t.Errorf("bare IPv4 address should default to /32, got /%d", n.PrefixLen())
	}

	n6, err := NewIPNetwork("2001:db8::1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if n6.PrefixLen() != 128 {
		t.Errorf("bare IPv6 address should default to /128, got /%d", n6.PrefixLen())
	}
}

func TestIPNetworkBroadcastAndContains(t *testing.T) {
	n, err := NewIPNetwork("192.168.1.0/24", 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := n.Broadcast().String(); got != "192.168.1.255" {
		t.Errorf("Broadcast() = %q, want 192.168.1.255", got)
	}
	inside, _ := NewIPAddressFromString("192.168.1.200", 0)
	outside, _ := NewIPAddressFromString("192.168.2.1", 0)
	if !n.Contains(inside) {
		t.Error("network should contain 192.168.1.200")
	}
	if n.Contains(outside) {
		t.Error("network should not contain 192.168.2.1")
	}
}

func TestIPNetworkNOHOST(t *testing.T) {
	n, err := NewIPNetwork("192.168.1.123/24", NOHOST)
	if err != nil {
		t.Fatal(err)
	}
	if got := n.Address().String(); got != "192.168.1.0" {
		t.Errorf("NOHOST should zero host bits, got %q", got)
	}
}

func TestIPNetworkSubnetSupernet(t *testing.T) {
	n, err := NewIPNetwork("192.168.0.0/22", 0)
	if err != nil {
		t.Fatal(err)
	}
	subs, err := n.Subnet(24)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 4 {
		t.Fatalf("Subnet(24) on a /22 should yield 4 blocks, got %d", len(subs))
	}
	if got := subs[0].String(); got != "192.168.0.0/24" {
		t.Errorf("subs[0] = %q, want 192.168.0.0/24", got)
	}
	if got := subs[3].String(); got != "192.168.3.0/24" {
		t.Errorf("subs[3] = %q, want 192.168.3.0/24", got)
	}

	supers, err := n.Supernet(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := supers[0].String(); got != "192.168.0.0/21" {
		t.Errorf("Supernet(1,1) = %q, want 192.168.0.0/21", got)
	}
}

func TestIPNetworkIterHosts(t *testing.T) {
	n, err := NewIPNetwork("192.168.1.0/30", 0)
	if err != nil {
		t.Fatal(err)
	}
	var hosts []IPAddress
	for a := range n.IterHosts(0) {
		hosts = append(hosts, a)
	}
	if len(hosts) != 2 {
		t.Fatalf("IterHosts on a /30 should yield 2 usable hosts, got %d", len(hosts))
	}
	if got := hosts[0].String(); got != "192.168.1.1" {
		t.Errorf("first host = %q, want 192.168.1.1", got)
	}
	if got := hosts[1].String(); got != "192.168.1.2" {
		t.Errorf("second host = %q, want 192.168.1.2", got)
	}
}

func TestIPNetworkPointToPoint(t *testing.T) {
	n, err := NewIPNetwork("192.168.1.0/31", 0)
	if err != nil {
		t.Fatal(err)
	}
	var hosts []IPAddress
	for a := range n.IterHosts(0) {
		hosts = append(hosts, a)
	}
	if len(hosts) != 2 {
		t.Fatalf("a /31 RFC3021 point-to-point link should expose both addresses as hosts, got %d", len(hosts))
	}
}
