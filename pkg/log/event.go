package log

import "time"

// Event is one record of a device programming run. CBOR encoding uses
// integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// RunID uniquely identifies the programming run (UUID).
	RunID string `cbor:"2,keyasint"`

	// Device identifies the target device, e.g. "884x (0x8842)".
	Device string `cbor:"3,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (exactly one is set).
	Packet      *PacketEvent      `cbor:"5,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"6,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"7,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryPacket indicates a feature report write.
	CategoryPacket Category = 0
	// CategoryState indicates a session state change.
	CategoryState Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryPacket:
		return "PACKET"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// maxPacketData caps how many packet bytes a PacketEvent records.
const maxPacketData = 64

// PacketEvent captures one feature report write.
type PacketEvent struct {
	// Opcode is the packet's command byte.
	Opcode uint8 `cbor:"1,keyasint"`

	// Position is the target key position (programming packets only).
	Position uint8 `cbor:"2,keyasint,omitempty"`

	// Layer is the target device layer (1-based).
	Layer uint8 `cbor:"3,keyasint,omitempty"`

	// Attempt is the 1-based write attempt that succeeded.
	Attempt int `cbor:"4,keyasint"`

	// Size is the full report size in bytes.
	Size int `cbor:"5,keyasint"`

	// Data is the report bytes, truncated to maxPacketData.
	Data []byte `cbor:"6,keyasint,omitempty"`

	// Truncated indicates Data was cut short.
	Truncated bool `cbor:"7,keyasint,omitempty"`
}

// NewPacketEvent builds a PacketEvent from raw report bytes,
// truncating oversized payloads.
func NewPacketEvent(data []byte, attempt int) *PacketEvent {
	e := &PacketEvent{
		Attempt: attempt,
		Size:    len(data),
	}
	// Byte 0 is the report ID; the opcode follows it.
	if len(data) > 1 {
		e.Opcode = data[1]
	}
	if len(data) > 2 {
		e.Position = data[2]
	}
	if len(data) > 3 {
		e.Layer = data[3]
	}
	if len(data) > maxPacketData {
		e.Data = append([]byte(nil), data[:maxPacketData]...)
		e.Truncated = true
	} else {
		e.Data = append([]byte(nil), data...)
	}
	return e
}

// StateChangeEvent captures session lifecycle transitions.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors during a run.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`

	// Attempt is the 1-based write attempt that failed, if any.
	Attempt int `cbor:"3,keyasint,omitempty"`
}
