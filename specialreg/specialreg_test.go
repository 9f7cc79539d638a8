package specialreg

import "testing"

func TestIPv4RegistryContainsPrivateUse(t *testing.T) {
	found := false
	for _, r := range IPv4Registry {
		if r.CIDR == "10.0.0.0/8" {
			found = true
			if r.Title != "Private-Use" {
				t.Errorf("10.0.0.0/8 title = %q, want Private-Use", r.Title)
			}
			if r.Global {
				t.Error("10.0.0.0/8 should not be marked Global")
			}
		}
	}
	if !found {
		t.Error("expected 10.0.0.0/8 in IPv4Registry")
	}
}

func TestIPv6RegistryContainsDocumentation(t *testing.T) {
	found := false
	for _, r := range IPv6Registry {
		if r.CIDR == "2001:db8::/32" {
			found = true
			if r.Title != "Documentation" {
				t.Errorf("2001:db8::/32 title = %q, want Documentation", r.Title)
			}
		}
	}
	if !found {
		t.Error("expected 2001:db8::/32 in IPv6Registry")
	}
}

func TestIsReservedIID(t *testing.T) {
	subnetRouterAnycast := [8]byte{0, 0, 0, 0, 0, 0, 0, 0}
	if !IsReservedIID(subnetRouterAnycast) {
		t.Error("expected the all-zero IID (Subnet-Router Anycast) to be reserved")
	}

	ordinary := [8]byte{0x02, 0x11, 0x22, 0xff, 0xfe, 0x33, 0x44, 0x55}
	if IsReservedIID(ordinary) {
		t.Error("expected an ordinary interface identifier not to be reserved")
	}

	ianaEthernetBlock := [8]byte{0x02, 0x00, 0x5e, 0xff, 0xfe, 0x00, 0x00, 0x01}
	if !IsReservedIID(ianaEthernetBlock) {
		t.Error("expected an IID inside the IANA Ethernet Block range to be reserved")
	}
}
