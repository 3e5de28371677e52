// Package dap defines the transport contract a CMSIS-DAP protocol engine
// drives, independent of which physical link carries the packets.
package dap

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound means no attached device satisfied the filter.
	ErrNotFound = errors.New("dap: no matching debug probe")

	// ErrTimeout is the expected, retryable outcome of a read that saw
	// no report within its wait budget. It is not a transport failure.
	ErrTimeout = errors.New("dap: timeout reached")

	// ErrSerialEncoding means the requested serial number could not be
	// compared against the enumeration because it is not valid UTF-8.
	ErrSerialEncoding = errors.New("dap: serial number is not valid UTF-8")

	// ErrPacketSize means a packet buffer request or payload length was
	// outside what the session can carry.
	ErrPacketSize = errors.New("dap: invalid packet size")

	// ErrClosed means the session's packet buffer has been freed.
	ErrClosed = errors.New("dap: session closed")
)

// VIDPID is one USB vendor/product identity.
type VIDPID struct {
	VID uint16
	PID uint16
}

func (id VIDPID) String() string {
	return fmt.Sprintf("%04x:%04x", id.VID, id.PID)
}

// Filter selects the probe to open. An empty Pairs list matches by the
// CMSIS-DAP product string marker instead of explicit identities. A
// non-empty Serial additionally requires an exact serial number match.
type Filter struct {
	Pairs  []VIDPID
	Serial string
}

// BlockingMode controls whether a read waits for a report.
type BlockingMode int

const (
	// Blocking waits up to the read timeout.
	Blocking BlockingMode = iota
	// NonBlocking returns immediately with data or ErrTimeout.
	NonBlocking
)

// Session is one open probe connection with its packet buffer. A session
// has a single owner; overlapping calls from multiple goroutines are not
// serialized here.
type Session interface {
	// Read fills the packet buffer with the next report and returns the
	// number of bytes received, prefix included. No report within the
	// wait budget is ErrTimeout.
	Read(timeout time.Duration, mode BlockingMode) (int, error)

	// Write transmits the first n command bytes as one full fixed-size
	// frame. The timeout is accepted for contract symmetry but not
	// enforced by every transport; callers must not rely on write-side
	// deadlines.
	Write(n int, timeout time.Duration) (int, error)

	// Command is the outgoing payload area, after any framing prefix.
	Command() []byte
	// Response is the incoming packet buffer from its origin.
	Response() []byte
	// PacketSize is the payload capacity negotiated for this probe.
	PacketSize() int

	// AllocPacketBuffer resizes the packet buffer, e.g. after DAP_Info
	// reports a larger capacity than the transport's initial guess.
	AllocPacketBuffer(size int) error
	// FreePacketBuffer releases the packet buffer; the session is
	// unusable for I/O afterwards.
	FreePacketBuffer()

	// CancelAll aborts in-flight operations on transports that have any.
	CancelAll()

	Close() error
}

// Transport opens probe sessions over one kind of physical link.
type Transport interface {
	Name() string
	Open(f Filter) (Session, error)
}

// Open tries each transport in order and returns the first session that
// opens. Transports that simply have no matching device are skipped; any
// other failure aborts the scan.
func Open(f Filter, transports ...Transport) (Session, error) {
	for _, t := range transports {
		s, err := t.Open(f)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", t.Name(), err)
		}
	}
	return nil, ErrNotFound
}
