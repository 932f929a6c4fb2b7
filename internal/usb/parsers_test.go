package usb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLsusbOutput(t *testing.T) {
	out := `Bus 002 Device 001: ID 1d6b:0003 Linux Foundation 3.0 root hub
Bus 001 Device 004: ID 05E3:0610 Genesys Logic, Inc. Hub
Bus 001 Device 005: ID 046d:c52b Logitech, Inc. Unifying Receiver
Bus 001 Device 006: ID 0bda:8153
some stray line lsusb would never print
Bus 001 Device 001: ID 1d6b:0002 Linux Foundation 2.0 root hub`

	devices := parseLsusbOutput(out)

	assert.Equal(t, []Device{
		{VendorID: "0x1d6b", ProductID: "0x0003", Name: "Linux Foundation 3.0 root hub"},
		{VendorID: "0x05e3", ProductID: "0x0610", Name: "Genesys Logic, Inc. Hub"},
		{VendorID: "0x046d", ProductID: "0xc52b", Name: "Logitech, Inc. Unifying Receiver"},
		{VendorID: "0x0bda", ProductID: "0x8153", Name: "Unknown Device"},
		{VendorID: "0x1d6b", ProductID: "0x0002", Name: "Linux Foundation 2.0 root hub"},
	}, devices)
}

func TestParseLsusbOutput_Empty(t *testing.T) {
	assert.Empty(t, parseLsusbOutput(""))
	assert.Empty(t, parseLsusbOutput("garbage\nmore garbage\n"))
}

func TestParseSystemProfilerOutput(t *testing.T) {
	out := `USB:

    USB 3.1 Bus:

      Host Controller Driver: AppleT8103USBXHCI

        USB3.0 Hub:

          Product ID: 0x0610
          Vendor ID: 0x05e3  (Genesys Logic, Inc.)
          Version: 93.03
          Speed: Up to 5 Gb/s
          Location ID: 0x01200000 / 1

            USB Receiver:

              Product ID: 0xc52b
              Vendor ID: 0x046d  (Logitech Inc.)
              Version: 24.11
`

	devices := parseSystemProfilerOutput(out)

	assert.Equal(t, []Device{
		{VendorID: "0x05e3", ProductID: "0x0610", Name: "USB3.0 Hub"},
		{VendorID: "0x046d", ProductID: "0xc52b", Name: "USB Receiver"},
	}, devices)
}

func TestParseSystemProfilerOutput_VendorBeforeProduct(t *testing.T) {
	// A device only materializes once both halves of the identity are
	// seen, whichever order the tool prints them in.
	out := `        Dock:

          Vendor ID: 0x2109
          Product ID: 0x2817
`
	devices := parseSystemProfilerOutput(out)
	assert.Equal(t, []Device{
		{VendorID: "0x2109", ProductID: "0x2817", Name: "Dock"},
	}, devices)
}

func TestParseSystemProfilerOutput_NoDevices(t *testing.T) {
	out := `USB:

    USB 3.1 Bus:

      Host Controller Driver: AppleT8103USBXHCI
`
	assert.Empty(t, parseSystemProfilerOutput(out))
}

func TestSnapshotAppeared(t *testing.T) {
	a := DeviceID{VendorID: "0x05e3", ProductID: "0x0610"}
	b := DeviceID{VendorID: "0x046d", ProductID: "0xc52b"}

	previous := snapshot{a: {}}
	current := snapshot{a: {}, b: {}}

	diff := current.appeared(previous)
	assert.Len(t, diff, 1)
	assert.Contains(t, diff, b)

	// Removal is not an appearance.
	assert.Empty(t, previous.appeared(current))
}
