//go:build linux

package hid

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/macropad-tool/macropad-go/pkg/session"
)

const (
	sysfsHidrawPath = "/sys/class/hidraw"
	devPath         = "/dev"
)

// Transport opens hidraw devices by USB vendor and product ID.
type Transport struct {
	// classPath and devDir are overridable for tests.
	classPath string
	devDir    string
}

// NewTransport creates a Transport scanning the standard sysfs and
// devfs locations.
func NewTransport() *Transport {
	return &Transport{
		classPath: sysfsHidrawPath,
		devDir:    devPath,
	}
}

// Open locates the first hidraw node matching vendorID:productID and
// opens it for writing.
func (t *Transport) Open(vendorID, productID uint16) (session.Device, error) {
	name, err := findDevice(t.classPath, vendorID, productID)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(filepath.Join(t.devDir, name), os.O_RDWR, 0)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, session.NewTransportError(session.CausePermission, err)
		}
		return nil, session.NewTransportError(session.CauseNotFound, err)
	}
	return &device{file: f}, nil
}

// findDevice scans the hidraw class directory for a node whose HID_ID
// matches the given IDs and returns the node name (e.g. "hidraw3").
func findDevice(classPath string, vendorID, productID uint16) (string, error) {
	entries, err := os.ReadDir(classPath)
	if err != nil {
		return "", session.NewTransportError(session.CauseNotFound, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "hidraw") {
			continue
		}

		uevent := filepath.Join(classPath, name, "device", "uevent")
		data, err := os.ReadFile(uevent)
		if err != nil {
			continue
		}

		v, p, ok := parseHIDID(string(data))
		if ok && v == vendorID && p == productID {
			return name, nil
		}
	}

	return "", session.NewTransportError(session.CauseNotFound,
		fmt.Errorf("no hidraw node for %04x:%04x", vendorID, productID))
}

// parseHIDID extracts the vendor and product ID from an uevent body.
// The HID_ID line has the form "HID_ID=0003:00001189:00008842"
// (bus:vendor:product, hexadecimal).
func parseHIDID(uevent string) (vendorID, productID uint16, ok bool) {
	for _, line := range strings.Split(uevent, "\n") {
		val, found := strings.CutPrefix(strings.TrimSpace(line), "HID_ID=")
		if !found {
			continue
		}
		parts := strings.Split(val, ":")
		if len(parts) != 3 {
			return 0, 0, false
		}
		v, err := strconv.ParseUint(parts[1], 16, 32)
		if err != nil {
			return 0, 0, false
		}
		p, err := strconv.ParseUint(parts[2], 16, 32)
		if err != nil {
			return 0, 0, false
		}
		return uint16(v), uint16(p), true
	}
	return 0, 0, false
}

// device is an open hidraw node.
type device struct {
	file *os.File

	mu     sync.Mutex
	closed bool
}

// hidiocSFeature builds the HIDIOCSFEATURE ioctl request number for a
// report of the given length: _IOC(_IOC_WRITE|_IOC_READ, 'H', 0x06, len).
func hidiocSFeature(length int) uintptr {
	const (
		iocWrite     = 1
		iocRead      = 2
		iocSizeShift = 16
		iocDirShift  = 30
	)
	return uintptr((iocWrite|iocRead)<<iocDirShift | length<<iocSizeShift | 'H'<<8 | 0x06)
}

// WriteFeatureReport sends one feature report. data[0] is the report ID.
func (d *device) WriteFeatureReport(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return session.NewTransportError(session.CauseWrite, os.ErrClosed)
	}
	if len(data) == 0 {
		return session.NewTransportError(session.CauseWrite, errors.New("empty report"))
	}

	_, _, errno := unix.Syscall(
		unix.SYS_IOCTL,
		d.file.Fd(),
		hidiocSFeature(len(data)),
		uintptr(unsafe.Pointer(&data[0])),
	)
	if errno != 0 {
		return session.NewTransportError(session.CauseWrite, errno)
	}
	return nil
}

// Close releases the node. Safe to call multiple times.
func (d *device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	return d.file.Close()
}

// Compile-time interface satisfaction checks.
var (
	_ session.Transport = (*Transport)(nil)
	_ session.Device    = (*device)(nil)
)
