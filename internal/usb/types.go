// Package usb provides USB device enumeration backends and a polling
// presence monitor that edge-triggers a callback when a target device is
// plugged in.
package usb

import "context"

// DeviceID identifies a USB device for set-membership purposes. The
// descriptive name is deliberately excluded from identity.
type DeviceID struct {
	VendorID  string
	ProductID string
}

func (d DeviceID) String() string {
	return d.VendorID + ":" + d.ProductID
}

// Device is one enumerated USB device.
type Device struct {
	VendorID  string
	ProductID string
	Name      string
}

func (d Device) ID() DeviceID {
	return DeviceID{VendorID: d.VendorID, ProductID: d.ProductID}
}

// Backend enumerates all currently connected USB devices as a snapshot.
type Backend interface {
	EnumerateDevices(ctx context.Context) ([]Device, error)
}

// snapshot is a point-in-time set of connected device identities.
type snapshot map[DeviceID]struct{}

func snapshotOf(devices []Device) snapshot {
	s := make(snapshot, len(devices))
	for _, device := range devices {
		s[device.ID()] = struct{}{}
	}
	return s
}

// appeared computes current − previous: the devices newly present this tick.
func (s snapshot) appeared(previous snapshot) snapshot {
	diff := snapshot{}
	for id := range s {
		if _, ok := previous[id]; !ok {
			diff[id] = struct{}{}
		}
	}
	return diff
}
