package cmsisdap

import (
	"errors"
	"testing"
)

func TestParseInfoString(t *testing.T) {
	// DAP_Info response: command echo, length (NUL included), value.
	resp := []byte{CmdInfo, 5, '1', '.', '1', '0', 0}
	got, err := ParseInfoString(resp)
	if err != nil {
		t.Fatalf("ParseInfoString: %v", err)
	}
	if got != "1.10" {
		t.Fatalf("ParseInfoString = %q, want %q", got, "1.10")
	}

	// Trailing bytes past the declared length are ignored; the transport
	// always delivers a full fixed-size frame.
	padded := append(resp, make([]byte, 57)...)
	got, err = ParseInfoString(padded)
	if err != nil {
		t.Fatalf("ParseInfoString padded: %v", err)
	}
	if got != "1.10" {
		t.Fatalf("ParseInfoString padded = %q, want %q", got, "1.10")
	}
}

func TestParseInfoUint16(t *testing.T) {
	got, err := ParseInfoUint16([]byte{CmdInfo, 2, 0x00, 0x02})
	if err != nil {
		t.Fatalf("ParseInfoUint16: %v", err)
	}
	if got != 512 {
		t.Fatalf("ParseInfoUint16 = %d, want 512", got)
	}
}

func TestParseInfoByte(t *testing.T) {
	got, err := ParseInfoByte([]byte{CmdInfo, 1, 4})
	if err != nil {
		t.Fatalf("ParseInfoByte: %v", err)
	}
	if got != 4 {
		t.Fatalf("ParseInfoByte = %d, want 4", got)
	}
}

func TestParseInfoMalformed(t *testing.T) {
	cases := [][]byte{
		nil,
		{CmdInfo},
		{0x01, 2, 0, 2},    // wrong command echo
		{CmdInfo, 8, 0, 2}, // declared length exceeds frame
	}
	for _, c := range cases {
		if _, err := ParseInfoString(c); !errors.Is(err, ErrBadResponse) {
			t.Errorf("ParseInfoString(% x): %v, want ErrBadResponse", c, err)
		}
	}

	if _, err := ParseInfoUint16([]byte{CmdInfo, 1, 4}); !errors.Is(err, ErrBadResponse) {
		t.Errorf("ParseInfoUint16 with 1 value byte: %v, want ErrBadResponse", err)
	}
	if _, err := ParseInfoByte([]byte{CmdInfo, 2, 0, 2}); !errors.Is(err, ErrBadResponse) {
		t.Errorf("ParseInfoByte with 2 value bytes: %v, want ErrBadResponse", err)
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(0x0d28, 0x0204); got != "DAPLink" {
		t.Errorf("Describe(0d28:0204) = %q, want DAPLink", got)
	}
	if got := Describe(0xffff, 0xffff); got != "" {
		t.Errorf("Describe(ffff:ffff) = %q, want empty", got)
	}
}
