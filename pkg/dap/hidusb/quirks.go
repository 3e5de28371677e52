package hidusb

// hidapi gives no way to query the output report length, so packet sizing
// starts from a hardcoded default and a table of adapters known to use an
// unusual report size. Third generation Atmel tools use 512; the PID list
// comes from toolinfo.py in Microchip's pyedbglib.

const defaultPacketSize = 64

type reportSizeQuirk struct {
	vid  uint16
	pid  uint16
	size int
}

var reportSizeQuirks = []reportSizeQuirk{
	{0x03eb, 0x2140, 512}, // Atmel JTAG-ICE 3
	{0x03eb, 0x2141, 512}, // Atmel-ICE
	{0x03eb, 0x2144, 512}, // Atmel Power Debugger
	{0x03eb, 0x2111, 512}, // EDBG, found on Xplained Pro boards
	{0x03eb, 0x2157, 512}, // Zero
	{0x03eb, 0x2169, 512}, // EDBG with mass storage
	{0x03eb, 0x216a, 512}, // commercially available EDBG
	{0x03eb, 0x2170, 512}, // Kraken
}

// lookupPacketSize returns the report size to assume for an adapter,
// falling back to the 64 byte default when no override is listed.
func lookupPacketSize(vid, pid uint16) int {
	for _, q := range reportSizeQuirks {
		if q.vid == vid && q.pid == pid {
			return q.size
		}
	}
	return defaultPacketSize
}
