package hid

import (
	"sync"
	"time"
)

// DeviceInfo describes one HID interface found during enumeration.
type DeviceInfo struct {
	Path         string
	VendorID     uint16
	ProductID    uint16
	SerialNbr    string
	ProductStr   string
	InterfaceNbr int
}

// Device is an open HID handle capable of report I/O.
type Device interface {
	Write(p []byte) (int, error)
	ReadWithTimeout(p []byte, timeout time.Duration) (int, error)
	Close() error
}

// Host is the hidapi-shaped facility the transport consumes: subsystem
// lifecycle, enumeration, and opening a handle by path.
type Host interface {
	Init() error
	Enumerate() ([]DeviceInfo, error)
	OpenPath(path string) (Device, error)
	Exit() error
}

// NewHost returns the process-wide hidapi host. Init and Exit are
// reference counted, so a session closing never tears the subsystem down
// under a sibling that is still open.
func NewHost() Host {
	return defaultHost
}

var defaultHost = newCountedHost(hidapiHost{})

type countedHost struct {
	inner Host

	mu   sync.Mutex
	refs int
}

func newCountedHost(inner Host) *countedHost {
	return &countedHost{inner: inner}
}

func (h *countedHost) Init() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.refs == 0 {
		if err := h.inner.Init(); err != nil {
			return err
		}
	}
	h.refs++
	return nil
}

func (h *countedHost) Exit() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.refs == 0 {
		return nil
	}
	h.refs--
	if h.refs == 0 {
		return h.inner.Exit()
	}
	return nil
}

func (h *countedHost) Enumerate() ([]DeviceInfo, error) {
	return h.inner.Enumerate()
}

func (h *countedHost) OpenPath(path string) (Device, error) {
	return h.inner.OpenPath(path)
}
