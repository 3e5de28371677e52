package hid

import (
	"errors"
	"time"
)

// MockHost serves a canned enumeration and hands out MockDevices, so the
// transport can be exercised without hardware.
type MockHost struct {
	Devices      []DeviceInfo
	Handles      map[string]*MockDevice
	InitErr      error
	EnumerateErr error
	OpenErr      error

	InitCalls int
	ExitCalls int
}

func NewMockHost(devs ...DeviceInfo) *MockHost {
	return &MockHost{
		Devices: devs,
		Handles: make(map[string]*MockDevice),
	}
}

func (m *MockHost) Init() error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.InitCalls++
	return nil
}

func (m *MockHost) Exit() error {
	m.ExitCalls++
	return nil
}

func (m *MockHost) Enumerate() ([]DeviceInfo, error) {
	if m.EnumerateErr != nil {
		return nil, m.EnumerateErr
	}
	return m.Devices, nil
}

func (m *MockHost) OpenPath(path string) (Device, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	if d, ok := m.Handles[path]; ok {
		return d, nil
	}
	d := &MockDevice{Path: path}
	m.Handles[path] = d
	return d, nil
}

// MockDevice records writes and serves queued reads. An empty queue reads
// like a hidapi timeout: zero bytes, no error.
type MockDevice struct {
	Path        string
	ReadQueue   [][]byte
	ReadErr     error
	WriteErr    error
	Written     [][]byte
	LastTimeout time.Duration
	Closed      bool
}

func (d *MockDevice) Write(p []byte) (int, error) {
	if d.Closed {
		return 0, errors.New("mock: device closed")
	}
	if d.WriteErr != nil {
		return 0, d.WriteErr
	}
	frame := make([]byte, len(p))
	copy(frame, p)
	d.Written = append(d.Written, frame)
	return len(p), nil
}

func (d *MockDevice) ReadWithTimeout(p []byte, timeout time.Duration) (int, error) {
	d.LastTimeout = timeout
	if d.Closed {
		return 0, errors.New("mock: device closed")
	}
	if d.ReadErr != nil {
		return 0, d.ReadErr
	}
	if len(d.ReadQueue) == 0 {
		return 0, nil
	}
	r := d.ReadQueue[0]
	d.ReadQueue = d.ReadQueue[1:]
	return copy(p, r), nil
}

func (d *MockDevice) Close() error {
	d.Closed = true
	return nil
}
