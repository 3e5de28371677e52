package hidusb

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/openprobe/dapusb/cmsisdap"
	"github.com/openprobe/dapusb/internal/hid"
	"github.com/openprobe/dapusb/pkg/dap"
)

// The LPC-LINK2 is a composite device with CMSIS-DAP on interface 0 only;
// its other HID interfaces carry unrelated functions and must never be
// opened as a debug probe.
const (
	lpcLink2VID = 0x1fc9
	lpcLink2PID = 0x0090
)

// matchDevice returns the first enumerated device satisfying the filter.
// With no explicit VID/PID pairs the CMSIS-DAP identification rule
// applies: the product string must contain "CMSIS-DAP".
func matchDevice(devs []hid.DeviceInfo, f dap.Filter) (hid.DeviceInfo, error) {
	if f.Serial != "" && !utf8.ValidString(f.Serial) {
		return hid.DeviceInfo{}, dap.ErrSerialEncoding
	}

	for _, dev := range devs {
		found := false

		if len(f.Pairs) == 0 {
			if dev.ProductStr == "" {
				slog.Debug("cannot read product string",
					slog.String("device", dap.VIDPID{VID: dev.VendorID, PID: dev.ProductID}.String()))
			} else if strings.Contains(dev.ProductStr, cmsisdap.ProductStringMarker) {
				found = true
			}
		} else {
			for _, p := range f.Pairs {
				if p.VID == dev.VendorID && p.PID == dev.ProductID {
					found = true
				}
			}
		}

		if dev.VendorID == lpcLink2VID && dev.ProductID == lpcLink2PID && dev.InterfaceNbr != 0 {
			found = false
		}

		if !found {
			continue
		}

		if f.Serial != "" && (dev.SerialNbr == "" || dev.SerialNbr != f.Serial) {
			continue
		}

		return dev, nil
	}

	return hid.DeviceInfo{}, dap.ErrNotFound
}
