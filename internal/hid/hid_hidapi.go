package hid

import (
	"time"

	hidapi "github.com/sstallion/go-hid"
)

type hidapiHost struct{}

func (hidapiHost) Init() error { return hidapi.Init() }
func (hidapiHost) Exit() error { return hidapi.Exit() }

func (hidapiHost) Enumerate() ([]DeviceInfo, error) {
	var infos []DeviceInfo
	err := hidapi.Enumerate(hidapi.VendorIDAny, hidapi.ProductIDAny, func(info *hidapi.DeviceInfo) error {
		infos = append(infos, DeviceInfo{
			Path:         info.Path,
			VendorID:     info.VendorID,
			ProductID:    info.ProductID,
			SerialNbr:    info.SerialNbr,
			ProductStr:   info.ProductStr,
			InterfaceNbr: info.InterfaceNbr,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

func (hidapiHost) OpenPath(path string) (Device, error) {
	d, err := hidapi.OpenPath(path)
	if err != nil {
		return nil, err
	}
	return &hidapiDevice{d}, nil
}

type hidapiDevice struct {
	d *hidapi.Device
}

func (d *hidapiDevice) Write(p []byte) (int, error) {
	return d.d.Write(p)
}

func (d *hidapiDevice) ReadWithTimeout(p []byte, timeout time.Duration) (int, error) {
	return d.d.ReadWithTimeout(p, timeout)
}

func (d *hidapiDevice) Close() error {
	return d.d.Close()
}
