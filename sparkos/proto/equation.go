package proto

import (
	"encoding/binary"
	"unicode/utf8"
)

// EquationSetPayload encodes a MsgEquationSet payload.
//
// Payload format:
//
//	b[:] : UTF-8 equation text, cut at a rune boundary to max bytes
func EquationSetPayload(eq string, max int) []byte {
	return []byte(clipUTF8(eq, max))
}

func DecodeEquationSetPayload(b []byte) (eq string, ok bool) {
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

// PresetSelectPayload encodes a MsgPresetSelect payload.
//
// Layout (little-endian):
//   - i32: preset index (wraps in both directions)
func PresetSelectPayload(index int32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(index))
	return buf
}

func DecodePresetSelectPayload(b []byte) (index int32, ok bool) {
	if len(b) < 4 {
		return 0, false
	}
	return int32(binary.LittleEndian.Uint32(b[0:4])), true
}
