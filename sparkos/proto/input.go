package proto

import "encoding/binary"

const keyFlagPress = 1 << 0

// KeyPayload encodes a MsgKey payload.
//
// Layout (little-endian):
//   - u16: key code (hal.KeyCode)
//   - u8 : flags (bit0 = press)
//   - u32: rune (0 if none)
func KeyPayload(code uint16, press bool, r rune) []byte {
	buf := make([]byte, 7)
	binary.LittleEndian.PutUint16(buf[0:2], code)
	if press {
		buf[2] = keyFlagPress
	}
	binary.LittleEndian.PutUint32(buf[3:7], uint32(r))
	return buf
}

// DecodeKeyPayload decodes a KeyPayload.
func DecodeKeyPayload(b []byte) (code uint16, press bool, r rune, ok bool) {
	if len(b) < 7 {
		return 0, false, 0, false
	}
	code = binary.LittleEndian.Uint16(b[0:2])
	press = b[2]&keyFlagPress != 0
	r = rune(binary.LittleEndian.Uint32(b[3:7]))
	return code, press, r, true
}

// PointerKind is the type of a pointer event.
type PointerKind uint8

const (
	PointerMove PointerKind = iota + 1
	PointerDown
	PointerUp
	PointerLeave
)

func (k PointerKind) String() string {
	switch k {
	case PointerMove:
		return "move"
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	case PointerLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// PointerPayload encodes a MsgPointer payload.
//
// Layout (little-endian):
//   - u8 : PointerKind
//   - i16: x in framebuffer pixels
//   - i16: y in framebuffer pixels
func PointerPayload(kind PointerKind, x, y int16) []byte {
	buf := make([]byte, 5)
	buf[0] = byte(kind)
	binary.LittleEndian.PutUint16(buf[1:3], uint16(x))
	binary.LittleEndian.PutUint16(buf[3:5], uint16(y))
	return buf
}

// DecodePointerPayload decodes a PointerPayload.
func DecodePointerPayload(b []byte) (kind PointerKind, x, y int16, ok bool) {
	if len(b) < 5 {
		return 0, 0, 0, false
	}
	kind = PointerKind(b[0])
	if kind < PointerMove || kind > PointerLeave {
		return 0, 0, 0, false
	}
	x = int16(binary.LittleEndian.Uint16(b[1:3]))
	y = int16(binary.LittleEndian.Uint16(b[3:5]))
	return kind, x, y, true
}
