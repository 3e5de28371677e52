package hidusb

import "testing"

func TestLookupPacketSizeQuirks(t *testing.T) {
	for _, q := range reportSizeQuirks {
		if got := lookupPacketSize(q.vid, q.pid); got != q.size {
			t.Errorf("lookupPacketSize(%04x, %04x) = %d, want %d", q.vid, q.pid, got, q.size)
		}
	}
}

func TestLookupPacketSizeDefault(t *testing.T) {
	pairs := []struct {
		vid, pid uint16
	}{
		{0x0d28, 0x0204}, // DAPLink, no override
		{0x03eb, 0x0000}, // quirk vendor, unknown product
		{0x0000, 0x2141}, // unknown vendor, quirk product
		{0xffff, 0xffff},
	}
	for _, p := range pairs {
		if got := lookupPacketSize(p.vid, p.pid); got != defaultPacketSize {
			t.Errorf("lookupPacketSize(%04x, %04x) = %d, want default %d", p.vid, p.pid, got, defaultPacketSize)
		}
	}
}
