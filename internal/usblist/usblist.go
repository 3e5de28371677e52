// Package usblist enumerates raw USB devices for diagnostics. Probes
// implementing CMSIS-DAP v2 expose bulk endpoints instead of HID and never
// show up in a HID enumeration, so the CLI needs the wider bus view to
// explain why a probe is missing.
package usblist

import (
	"fmt"

	"github.com/karalabe/usb"
)

// Entry is one device on the bus.
type Entry struct {
	VendorID  uint16
	ProductID uint16
	Product   string
	Serial    string
}

func (e Entry) String() string {
	if e.Product != "" {
		return fmt.Sprintf("%04x:%04x %s", e.VendorID, e.ProductID, e.Product)
	}
	return fmt.Sprintf("%04x:%04x", e.VendorID, e.ProductID)
}

// All returns every enumerable USB device, HID or not.
func All() ([]Entry, error) {
	if !usb.Supported() {
		return nil, fmt.Errorf("usblist: raw USB enumeration is not supported on this platform")
	}
	infos, err := usb.Enumerate(0, 0)
	if err != nil {
		return nil, fmt.Errorf("usblist: enumerate: %w", err)
	}
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, Entry{
			VendorID:  info.VendorID,
			ProductID: info.ProductID,
			Product:   info.Product,
			Serial:    info.Serial,
		})
	}
	return entries, nil
}
