// Package cmsisdap holds protocol-level constants for the CMSIS-DAP debug
// probe protocol defined at
// https://arm-software.github.io/CMSIS_5/DAP/html/index.html

package cmsisdap

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// ProductStringMarker identifies a compliant probe. The specification
	// stipulates that the USB product string of a CMSIS-DAP debug unit
	// must contain this text.
	ProductStringMarker = "CMSIS-DAP"

	CmdInfo byte = 0x00
)

// DAP_Info selectors.
const (
	InfoVendorName      byte = 0x01
	InfoProductName     byte = 0x02
	InfoSerialNumber    byte = 0x03
	InfoFirmwareVersion byte = 0x04
	InfoCapabilities    byte = 0xF0
	InfoPacketCount     byte = 0xFE
	InfoPacketSize      byte = 0xFF
)

var ErrBadResponse = errors.New("cmsisdap: malformed response")

// KnownProbe describes a probe family recognized by VID/PID.
type KnownProbe struct {
	VID         uint16
	PID         uint16
	Description string
}

var KnownProbes = []KnownProbe{
	{0x0d28, 0x0204, "DAPLink"},
	{0x1fc9, 0x0090, "NXP LPC-LINK2"},
	{0x2e8a, 0x000c, "Raspberry Pi Debug Probe"},
	{0x03eb, 0x2140, "Atmel JTAG-ICE 3"},
	{0x03eb, 0x2141, "Atmel-ICE"},
	{0x03eb, 0x2144, "Atmel Power Debugger"},
	{0x03eb, 0x2111, "Atmel EDBG"},
}

// Describe returns the family name for a known VID/PID, or "" for
// probes not in the table.
func Describe(vid, pid uint16) string {
	for _, p := range KnownProbes {
		if p.VID == vid && p.PID == pid {
			return p.Description
		}
	}
	return ""
}

// infoPayload validates a DAP_Info response frame (command echo, length,
// value bytes) and returns the value bytes.
func infoPayload(resp []byte) ([]byte, error) {
	if len(resp) < 2 || resp[0] != CmdInfo {
		return nil, ErrBadResponse
	}
	n := int(resp[1])
	if len(resp) < 2+n {
		return nil, fmt.Errorf("%w: declared %d value bytes, have %d", ErrBadResponse, n, len(resp)-2)
	}
	return resp[2 : 2+n], nil
}

// ParseInfoString decodes a string-valued DAP_Info response. Probes
// terminate the string with a NUL byte included in the length.
func ParseInfoString(resp []byte) (string, error) {
	v, err := infoPayload(resp)
	if err != nil {
		return "", err
	}
	for len(v) > 0 && v[len(v)-1] == 0 {
		v = v[:len(v)-1]
	}
	return string(v), nil
}

// ParseInfoUint16 decodes a 16-bit DAP_Info response such as the
// maximum packet size, sent little endian.
func ParseInfoUint16(resp []byte) (uint16, error) {
	v, err := infoPayload(resp)
	if err != nil {
		return 0, err
	}
	if len(v) != 2 {
		return 0, fmt.Errorf("%w: want 2 value bytes, have %d", ErrBadResponse, len(v))
	}
	return binary.LittleEndian.Uint16(v), nil
}

// ParseInfoByte decodes a single-byte DAP_Info response such as the
// packet count.
func ParseInfoByte(resp []byte) (byte, error) {
	v, err := infoPayload(resp)
	if err != nil {
		return 0, err
	}
	if len(v) != 1 {
		return 0, fmt.Errorf("%w: want 1 value byte, have %d", ErrBadResponse, len(v))
	}
	return v[0], nil
}
