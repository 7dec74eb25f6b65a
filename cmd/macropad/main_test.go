package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropad-tool/macropad-go/pkg/log"
)

func TestShowKeysAllSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, showKeys(&buf, ""))

	out := buf.String()
	assert.Contains(t, out, "Modifiers:")
	assert.Contains(t, out, "alt, opt")
	assert.Contains(t, out, "Keys:")
	assert.Contains(t, out, "f24")
	assert.Contains(t, out, "<N>")
	assert.Contains(t, out, "Media:")
	assert.Contains(t, out, "screenlock")
	assert.Contains(t, out, "Mouse:")
	assert.Contains(t, out, "wheeldown")
	assert.Contains(t, out, "LED colors:")
	assert.Contains(t, out, "purple")
	assert.Contains(t, out, "Devices:")
	assert.Contains(t, out, "884x (0x8840)")
}

func TestShowKeysSection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, showKeys(&buf, "media"))
	assert.Contains(t, buf.String(), "volumeup")
	assert.NotContains(t, buf.String(), "Modifiers:")

	assert.Error(t, showKeys(&buf, "nope"))
}

func TestParseProduct(t *testing.T) {
	p, err := parseProduct("0x8842")
	require.NoError(t, err)
	assert.Equal(t, uint16(0x8842), p.ProductID)

	p, err = parseProduct("8840")
	require.NoError(t, err)
	assert.Equal(t, uint16(0x8840), p.ProductID)

	_, err = parseProduct("")
	assert.Error(t, err)
	_, err = parseProduct("0xzzzz")
	assert.Error(t, err)
	_, err = parseProduct("0xbeef")
	assert.Error(t, err)
}

func TestParseCategory(t *testing.T) {
	c, err := parseCategory("packet")
	require.NoError(t, err)
	assert.Equal(t, log.CategoryPacket, c)

	_, err = parseCategory("frame")
	assert.Error(t, err)
}

func TestPrintEvent(t *testing.T) {
	ts := time.Date(2026, 8, 1, 12, 30, 45, 0, time.UTC)

	var buf bytes.Buffer
	printEvent(&buf, log.Event{
		Timestamp: ts,
		RunID:     "0123456789abcdef",
		Category:  log.CategoryPacket,
		Packet:    &log.PacketEvent{Opcode: 0xfd, Position: 0x10, Layer: 2, Attempt: 1, Size: 65},
	})
	assert.Contains(t, buf.String(), "PACKET 01234567 ")
	assert.Contains(t, buf.String(), "opcode=0xfd position=0x10 layer=2 attempt=1 size=65")

	buf.Reset()
	printEvent(&buf, log.Event{
		Timestamp:   ts,
		RunID:       "run",
		Category:    log.CategoryState,
		StateChange: &log.StateChangeEvent{OldState: "opening", NewState: "failed", Reason: "open failed"},
	})
	assert.Contains(t, buf.String(), "opening -> failed (open failed)")
}
