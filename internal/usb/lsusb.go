package usb

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mzdunek/monitorwatcher/internal/utils"
)

const enumerationTimeout = 5 * time.Second

// LsusbBackend enumerates USB devices on Linux by parsing `lsusb` output.
type LsusbBackend struct{}

func NewLsusbBackend() *LsusbBackend {
	return &LsusbBackend{}
}

// Bus 001 Device 004: ID 05e3:0610 Genesys Logic, Inc. Hub
var lsusbLineRe = regexp.MustCompile(`^Bus \d+ Device \d+: ID ([0-9a-fA-F]{4}):([0-9a-fA-F]{4})\s*(.*)$`)

func (l *LsusbBackend) EnumerateDevices(ctx context.Context) ([]Device, error) {
	ctx, cancel := context.WithTimeout(ctx, enumerationTimeout)
	defer cancel()

	out, err := utils.RunCmd(ctx, "lsusb")
	if err != nil {
		return nil, fmt.Errorf("cant enumerate usb devices: %w", err)
	}
	return parseLsusbOutput(out), nil
}

func parseLsusbOutput(out string) []Device {
	var devices []Device
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		matches := lsusbLineRe.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if matches == nil {
			continue
		}
		name := strings.TrimSpace(matches[3])
		if name == "" {
			name = "Unknown Device"
		}
		devices = append(devices, Device{
			VendorID:  "0x" + strings.ToLower(matches[1]),
			ProductID: "0x" + strings.ToLower(matches[2]),
			Name:      name,
		})
	}
	return devices
}

var _ Backend = &LsusbBackend{}
