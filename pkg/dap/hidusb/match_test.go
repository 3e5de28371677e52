package hidusb

import (
	"errors"
	"testing"

	"github.com/openprobe/dapusb/internal/hid"
	"github.com/openprobe/dapusb/pkg/dap"
)

func TestMatchByProductString(t *testing.T) {
	devs := []hid.DeviceInfo{
		{VendorID: 0x1111, ProductID: 0x0001, Path: "no-product-string"},
		{VendorID: 0x1111, ProductID: 0x0002, ProductStr: "USB Mouse", Path: "mouse"},
		{VendorID: 0x03eb, ProductID: 0x2141, ProductStr: "Atmel-ICE CMSIS-DAP", Path: "atmel"},
		{VendorID: 0x0d28, ProductID: 0x0204, ProductStr: "DAPLink CMSIS-DAP", Path: "daplink"},
	}

	got, err := matchDevice(devs, dap.Filter{})
	if err != nil {
		t.Fatalf("matchDevice: %v", err)
	}
	if got.Path != "atmel" {
		t.Fatalf("matched %q, want first marker device %q", got.Path, "atmel")
	}
}

func TestMatchByPairs(t *testing.T) {
	devs := []hid.DeviceInfo{
		{VendorID: 0x0d28, ProductID: 0x0204, ProductStr: "DAPLink CMSIS-DAP", Path: "daplink"},
		{VendorID: 0x1234, ProductID: 0x5678, ProductStr: "Custom Probe", Path: "custom"},
		{VendorID: 0x1234, ProductID: 0x5678, ProductStr: "Custom Probe", Path: "custom-2"},
	}
	f := dap.Filter{Pairs: []dap.VIDPID{
		{VID: 0x1234, PID: 0x5678},
		{VID: 0x1234, PID: 0x5678}, // duplicates are harmless
	}}

	got, err := matchDevice(devs, f)
	if err != nil {
		t.Fatalf("matchDevice: %v", err)
	}
	if got.Path != "custom" {
		t.Fatalf("matched %q, want first filtered device %q", got.Path, "custom")
	}
}

func TestMatchCompositeAdapterInterface(t *testing.T) {
	link2 := func(iface int, path string) hid.DeviceInfo {
		return hid.DeviceInfo{
			VendorID:     lpcLink2VID,
			ProductID:    lpcLink2PID,
			ProductStr:   "LPC-LINK2 CMSIS-DAP",
			InterfaceNbr: iface,
			Path:         path,
		}
	}

	// Non-zero interfaces are never the debug function, even when the
	// filter names the device explicitly.
	f := dap.Filter{Pairs: []dap.VIDPID{{VID: lpcLink2VID, PID: lpcLink2PID}}}
	if _, err := matchDevice([]hid.DeviceInfo{link2(1, "if1"), link2(2, "if2")}, f); !errors.Is(err, dap.ErrNotFound) {
		t.Fatalf("interface != 0 matched: %v", err)
	}
	if _, err := matchDevice([]hid.DeviceInfo{link2(1, "if1")}, dap.Filter{}); !errors.Is(err, dap.ErrNotFound) {
		t.Fatalf("interface != 0 matched via product string: %v", err)
	}

	got, err := matchDevice([]hid.DeviceInfo{link2(1, "if1"), link2(0, "if0")}, f)
	if err != nil {
		t.Fatalf("matchDevice: %v", err)
	}
	if got.Path != "if0" {
		t.Fatalf("matched %q, want interface 0 device", got.Path)
	}
}

func TestMatchBySerial(t *testing.T) {
	devs := []hid.DeviceInfo{
		{VendorID: 0x0d28, ProductID: 0x0204, ProductStr: "DAPLink CMSIS-DAP", Path: "a"},
		{VendorID: 0x0d28, ProductID: 0x0204, ProductStr: "DAPLink CMSIS-DAP", SerialNbr: "0001", Path: "b"},
		{VendorID: 0x0d28, ProductID: 0x0204, ProductStr: "DAPLink CMSIS-DAP", SerialNbr: "0002", Path: "c"},
	}

	got, err := matchDevice(devs, dap.Filter{Serial: "0002"})
	if err != nil {
		t.Fatalf("matchDevice: %v", err)
	}
	if got.Path != "c" {
		t.Fatalf("matched %q, want serial 0002 device %q", got.Path, "c")
	}

	// Exact match only, never substring.
	if _, err := matchDevice(devs, dap.Filter{Serial: "000"}); !errors.Is(err, dap.ErrNotFound) {
		t.Fatalf("substring serial matched: %v", err)
	}
}

func TestMatchSerialEncoding(t *testing.T) {
	devs := []hid.DeviceInfo{
		{VendorID: 0x0d28, ProductID: 0x0204, ProductStr: "DAPLink CMSIS-DAP", SerialNbr: "0001"},
	}
	if _, err := matchDevice(devs, dap.Filter{Serial: "\xff\xfe"}); !errors.Is(err, dap.ErrSerialEncoding) {
		t.Fatalf("got %v, want ErrSerialEncoding", err)
	}
}

func TestMatchNotFound(t *testing.T) {
	devs := []hid.DeviceInfo{
		{VendorID: 0x1111, ProductID: 0x0002, ProductStr: "USB Mouse"},
	}
	if _, err := matchDevice(devs, dap.Filter{}); !errors.Is(err, dap.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if _, err := matchDevice(nil, dap.Filter{}); !errors.Is(err, dap.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound on empty enumeration", err)
	}
}
