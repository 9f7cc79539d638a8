package registry

import (
	"sync/atomic"
	"testing"
)

func TestParseFlatFileHeaderAndAddress(t *testing.T) {
	data := []byte("00-1B-77   (hex)\t\tIntel Corporate\n" +
		"0001B77    (base 16)\t\tIntel Corporate\n" +
		"\t\t\t2200 Mission College Blvd.\n" +
		"\t\t\tSanta Clara  CA  95052\n" +
		"\n")
	var skipped atomic.Int64
	records := parseFlatFile(data, &skipped)
	if len(records) != 1 {
		t.Fatalf("parseFlatFile returned %d records, want 1", len(records))
	}
	r := records[0]
	if r.prefixHex != "00-1B-77" {
		t.Errorf("prefixHex = %q, want 00-1B-77", r.prefixHex)
	}
	if r.org != "Intel Corporate" {
		t.Errorf("org = %q, want Intel Corporate", r.org)
	}
	if len(r.address) != 2 {
		t.Fatalf("address lines = %v, want 2", r.address)
	}
	if skipped.Load() != 0 {
		t.Errorf("skipped = %d, want 0", skipped.Load())
	}
}

func TestParseFlatFileSkipsNoiseLine(t *testing.T) {
	data := []byte("this line has no markers and should be skipped as noise\n" +
		"AC-DE-48   (hex)\t\tPrivate\n" +
		"ACDE48     (base 16)\t\tPrivate\n")
	var skipped atomic.Int64
	records := parseFlatFile(data, &skipped)
	if len(records) != 1 {
		t.Fatalf("parseFlatFile returned %d records, want 1 (noise line ignored)", len(records))
	}
	if records[0].prefixHex != "AC-DE-48" {
		t.Errorf("prefixHex = %q, want AC-DE-48", records[0].prefixHex)
	}
}

func TestParseFlatFileMalformedHeaderCountsAsSkipped(t *testing.T) {
	data := []byte("   (hex)\t\t\n" +
		"00-1B-77   (hex)\t\tIntel Corporate\n")
	var skipped atomic.Int64
	records := parseFlatFile(data, &skipped)
	if len(records) != 1 {
		t.Fatalf("parseFlatFile returned %d records, want 1", len(records))
	}
	if skipped.Load() != 1 {
		t.Errorf("skipped = %d, want 1 for the empty-prefix header line", skipped.Load())
	}
}

func TestHexPrefixToUint(t *testing.T) {
	v, err := hexPrefixToUint("00-1B-77")
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x001B77 {
		t.Errorf("hexPrefixToUint(00-1B-77) = %x, want 1B77", v)
	}
}
