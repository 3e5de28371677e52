// Package hidusb implements the HID transport for CMSIS-DAP debug probes.
//
// The wire protocol exchanges fixed-size HID reports: a one byte report-ID
// prefix followed by the protocol payload. The payload capacity depends on
// the adapter and is taken from a static quirk table, since hidapi cannot
// report it.
package hidusb

import (
	"fmt"
	"time"

	"github.com/openprobe/dapusb/internal/hid"
	"github.com/openprobe/dapusb/pkg/dap"
)

// reportIDSize is the framing overhead prepended to every packet.
const reportIDSize = 1

// Transport opens CMSIS-DAP probes over HID. The zero value uses the
// process-wide hidapi host.
type Transport struct {
	Host hid.Host
}

func (t *Transport) Name() string { return "hid" }

func (t *Transport) host() hid.Host {
	if t.Host != nil {
		return t.Host
	}
	return hid.NewHost()
}

// Open scans the HID enumeration for a probe matching the filter, opens
// it, and sizes the packet buffer for the adapter. Any partially acquired
// resource is released on failure.
func (t *Transport) Open(f dap.Filter) (dap.Session, error) {
	host := t.host()
	if err := host.Init(); err != nil {
		return nil, fmt.Errorf("hidusb: init HID subsystem: %w", err)
	}

	devs, err := host.Enumerate()
	if err != nil {
		host.Exit()
		return nil, fmt.Errorf("hidusb: enumerate: %w", err)
	}

	match, err := matchDevice(devs, f)
	if err != nil {
		host.Exit()
		return nil, err
	}

	dev, err := host.OpenPath(match.Path)
	if err != nil {
		host.Exit()
		id := dap.VIDPID{VID: match.VendorID, PID: match.ProductID}
		return nil, fmt.Errorf("hidusb: open device %s: %w", id, err)
	}

	return openSession(host, dev, match, lookupPacketSize(match.VendorID, match.ProductID))
}

// openSession wraps an opened handle in a session. If the packet buffer
// cannot be set up, the handle is closed before the error is returned.
func openSession(host hid.Host, dev hid.Device, info hid.DeviceInfo, packetSize int) (*session, error) {
	s := &session{
		host: host,
		dev:  dev,
		vid:  info.VendorID,
		pid:  info.ProductID,
	}
	if err := s.AllocPacketBuffer(packetSize); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

type session struct {
	host hid.Host
	dev  hid.Device
	vid  uint16
	pid  uint16

	packetSize       int
	packetBufferSize int
	buffer           []byte
	command          []byte
	response         []byte

	closed bool
}

var _ dap.Session = (*session)(nil)

func (s *session) id() dap.VIDPID {
	return dap.VIDPID{VID: s.vid, PID: s.pid}
}

// AllocPacketBuffer sizes the packet buffer for the given payload
// capacity plus the report-ID prefix. A failed call leaves the session
// usable for a retry with a different size.
func (s *session) AllocPacketBuffer(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", dap.ErrPacketSize, size)
	}
	buf := make([]byte, size+reportIDSize)
	s.buffer = buf
	s.packetSize = size
	s.packetBufferSize = size + reportIDSize
	s.command = buf[reportIDSize:]
	s.response = buf
	return nil
}

func (s *session) FreePacketBuffer() {
	s.buffer = nil
	s.command = nil
	s.response = nil
	s.packetSize = 0
	s.packetBufferSize = 0
}

func (s *session) Command() []byte  { return s.command }
func (s *session) Response() []byte { return s.response }
func (s *session) PacketSize() int  { return s.packetSize }

// Read fills the packet buffer with the next input report and returns
// the byte count, prefix included. A report that does not arrive within
// the wait budget is dap.ErrTimeout; NonBlocking does not wait at all.
func (s *session) Read(timeout time.Duration, mode dap.BlockingMode) (int, error) {
	if s.buffer == nil {
		return 0, dap.ErrClosed
	}

	wait := timeout
	if mode == dap.NonBlocking {
		wait = 0
	}

	n, err := s.dev.ReadWithTimeout(s.buffer, wait)
	if err != nil {
		return 0, fmt.Errorf("hidusb: read %s: %w", s.id(), err)
	}
	if n == 0 {
		return 0, dap.ErrTimeout
	}
	return n, nil
}

// Write transmits the first n command bytes as one full fixed-size
// report: report ID 0, payload, zero padding to the packet size. The
// device consumes nothing shorter than its report length. The timeout is
// accepted per the transport contract but not enforced here; HID output
// reports are not time-bounded by this backend.
func (s *session) Write(n int, timeout time.Duration) (int, error) {
	_ = timeout

	if s.buffer == nil {
		return 0, dap.ErrClosed
	}
	if n < 0 || n > s.packetSize {
		return 0, fmt.Errorf("%w: payload %d, packet size %d", dap.ErrPacketSize, n, s.packetSize)
	}

	s.buffer[0] = 0 // HID report number
	clear(s.command[n:])

	written, err := s.dev.Write(s.buffer)
	if err != nil {
		return 0, fmt.Errorf("hidusb: write %s: %w", s.id(), err)
	}
	return written, nil
}

// Close releases the device handle, drops the host subsystem reference,
// and frees the packet buffer. Closing twice is a no-op.
func (s *session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.dev.Close()
	if exitErr := s.host.Exit(); err == nil {
		err = exitErr
	}
	s.FreePacketBuffer()
	return err
}

// CancelAll is a no-op: HID I/O on this backend is synchronous, there is
// nothing in flight to cancel.
func (s *session) CancelAll() {}
