package usb

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/mzdunek/monitorwatcher/internal/utils"
)

// SystemProfilerBackend enumerates USB devices on macOS by scraping
// `system_profiler SPUSBDataType` output. The scraping is confined here;
// the monitor only ever sees structured devices.
type SystemProfilerBackend struct{}

func NewSystemProfilerBackend() *SystemProfilerBackend {
	return &SystemProfilerBackend{}
}

func (s *SystemProfilerBackend) EnumerateDevices(ctx context.Context) ([]Device, error) {
	ctx, cancel := context.WithTimeout(ctx, enumerationTimeout)
	defer cancel()

	out, err := utils.RunCmd(ctx, "system_profiler", "SPUSBDataType")
	if err != nil {
		return nil, fmt.Errorf("cant enumerate usb devices: %w", err)
	}
	return parseSystemProfilerOutput(out), nil
}

func parseSystemProfilerOutput(out string) []Device {
	var devices []Device
	var vendorID, productID, name string

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Section headers double as device names; ID lines follow them.
		if strings.HasSuffix(line, ":") &&
			!strings.HasPrefix(line, "Product ID") &&
			!strings.HasPrefix(line, "Vendor ID") {
			if candidate := strings.TrimSuffix(line, ":"); candidate != "" && len(candidate) < 100 {
				name = candidate
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "Vendor ID:"):
			fields := strings.Fields(strings.TrimPrefix(line, "Vendor ID:"))
			if len(fields) > 0 {
				vendorID = strings.ToLower(fields[0])
			}
		case strings.HasPrefix(line, "Product ID:"):
			fields := strings.Fields(strings.TrimPrefix(line, "Product ID:"))
			if len(fields) > 0 {
				productID = strings.ToLower(fields[0])
			}
		}

		// system_profiler prints Product ID before Vendor ID; emit once
		// both halves of the identity are known.
		if vendorID != "" && productID != "" {
			deviceName := name
			if deviceName == "" {
				deviceName = "Unknown Device"
			}
			devices = append(devices, Device{
				VendorID:  vendorID,
				ProductID: productID,
				Name:      deviceName,
			})
			vendorID, productID, name = "", "", ""
		}
	}
	return devices
}

var _ Backend = &SystemProfilerBackend{}
