package registry

import "testing"

func TestOUIRegistrationsIntelCorporate(t *testing.T) {
	entries, err := OUIRegistrations("00-1B-77")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Fatal("expected at least one registration for 00-1B-77")
	}
	if entries[0].Org != "Intel Corporate" {
		t.Errorf("entries[0].Org = %q, want Intel Corporate", entries[0].Org)
	}
}

func TestOUIRegistrationsDashAndCompactForms(t *testing.T) {
	byDash, err := OUIRegistrations("00-50-56")
	if err != nil {
		t.Fatal(err)
	}
	byCompact, err := OUIRegistrations("005056")
	if err != nil {
		t.Fatal(err)
	}
	if byDash[0].Org != byCompact[0].Org {
		t.Errorf("dash form Org %q != compact form Org %q", byDash[0].Org, byCompact[0].Org)
	}
	if byDash[0].Org != "VMware, Inc." {
		t.Errorf("Org = %q, want VMware, Inc.", byDash[0].Org)
	}
}

func TestOUIRegistrationsNotRegistered(t *testing.T) {
	if _, err := OUIRegistrations("DE-AD-BE"); err == nil {
		t.Error("expected an error for an unregistered OUI")
	}
}

func TestOUIRegistrationsSingleEntryPrefix(t *testing.T) {
	entries, err := OUIRegistrations("FF-FF-FF")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Org != "Private" {
		t.Errorf("FF-FF-FF entries = %v, want a single Private registration", entries)
	}
}
