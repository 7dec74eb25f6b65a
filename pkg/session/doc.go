// Package session writes compiled packet streams to a device.
//
// A Session opens the device through a Transport, writes every packet
// in order with per-packet retries and backoff, and closes the device
// again. Writes are strictly sequential; the firmware does not
// tolerate interleaved feature reports. Context cancellation is
// honored between writes, never mid-write.
package session
