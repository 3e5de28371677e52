package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openprobe/dapusb/cmsisdap"
	"github.com/openprobe/dapusb/internal/hid"
	"github.com/openprobe/dapusb/internal/usblist"
	"github.com/openprobe/dapusb/pkg/dap"
	"github.com/openprobe/dapusb/pkg/dap/hidusb"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = runList(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "dapctl:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: dapctl <list|info> [flags]")
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	all := fs.Bool("all", false, "also list raw USB devices (v2 probes use bulk endpoints, not HID)")
	fs.Parse(args)

	host := hid.NewHost()
	if err := host.Init(); err != nil {
		return err
	}
	defer host.Exit()

	devs, err := host.Enumerate()
	if err != nil {
		return err
	}

	found := 0
	for _, d := range devs {
		if !strings.Contains(d.ProductStr, cmsisdap.ProductStringMarker) {
			continue
		}
		found++
		line := fmt.Sprintf("%04x:%04x if%d  %s", d.VendorID, d.ProductID, d.InterfaceNbr, d.ProductStr)
		if d.SerialNbr != "" {
			line += "  serial=" + d.SerialNbr
		}
		if desc := cmsisdap.Describe(d.VendorID, d.ProductID); desc != "" {
			line += "  (" + desc + ")"
		}
		fmt.Println(line)
	}
	if found == 0 {
		fmt.Println("no CMSIS-DAP probes found over HID")
	}

	if *all {
		entries, err := usblist.All()
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println("all USB devices:")
		for _, e := range entries {
			fmt.Println(" ", e)
		}
	}
	return nil
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	vid := fs.Uint("vid", 0, "vendor id of the probe (0 selects by product string)")
	pid := fs.Uint("pid", 0, "product id of the probe")
	serial := fs.String("serial", "", "serial number of the probe")
	timeout := fs.Duration("timeout", time.Second, "read timeout")
	fs.Parse(args)

	var f dap.Filter
	f.Serial = *serial
	if *vid != 0 || *pid != 0 {
		f.Pairs = []dap.VIDPID{{VID: uint16(*vid), PID: uint16(*pid)}}
	}

	sess, err := dap.Open(f, &hidusb.Transport{})
	if err != nil {
		return err
	}
	defer sess.Close()

	if fw, err := infoString(sess, cmsisdap.InfoFirmwareVersion, *timeout); err == nil {
		fmt.Println("firmware version:", fw)
	}
	if product, err := infoString(sess, cmsisdap.InfoProductName, *timeout); err == nil && product != "" {
		fmt.Println("product:", product)
	}

	resp, err := queryInfo(sess, cmsisdap.InfoPacketSize, *timeout)
	if err != nil {
		return err
	}
	size, err := cmsisdap.ParseInfoUint16(resp)
	if err != nil {
		return err
	}
	fmt.Println("max packet size:", size)

	resp, err = queryInfo(sess, cmsisdap.InfoPacketCount, *timeout)
	if err != nil {
		return err
	}
	count, err := cmsisdap.ParseInfoByte(resp)
	if err != nil {
		return err
	}
	fmt.Println("max packet count:", count)

	// The transport guesses the packet size from its quirk table; resize
	// to what the probe actually reports before any heavier traffic.
	if int(size) != sess.PacketSize() {
		if err := sess.AllocPacketBuffer(int(size)); err != nil {
			return err
		}
		fmt.Println("packet buffer resized to", sess.PacketSize())
	}
	return nil
}

func infoString(sess dap.Session, id byte, timeout time.Duration) (string, error) {
	resp, err := queryInfo(sess, id, timeout)
	if err != nil {
		return "", err
	}
	return cmsisdap.ParseInfoString(resp)
}

// queryInfo runs one DAP_Info command/response cycle.
func queryInfo(sess dap.Session, id byte, timeout time.Duration) ([]byte, error) {
	cmd := sess.Command()
	cmd[0] = cmsisdap.CmdInfo
	cmd[1] = id
	if _, err := sess.Write(2, timeout); err != nil {
		return nil, err
	}
	n, err := sess.Read(timeout, dap.Blocking)
	if err != nil {
		return nil, err
	}
	return sess.Response()[:n], nil
}
