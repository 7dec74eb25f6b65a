// Package hid implements the session transport on Linux hidraw.
//
// Devices are discovered by scanning /sys/class/hidraw and matching
// the HID_ID line of each node's uevent against the USB vendor and
// product ID. Feature reports go out through the HIDIOCSFEATURE ioctl
// on the /dev/hidrawN node.
package hid
