package proto

import "unicode/utf8"

// LogLinePayload encodes a MsgLogLine payload: the UTF-8 line without a
// trailing newline, cut at a rune boundary to at most max bytes.
func LogLinePayload(line string, max int) []byte {
	return []byte(clipUTF8(line, max))
}

// clipUTF8 shortens s to at most max bytes without splitting a rune.
// A negative max means no limit.
func clipUTF8(s string, max int) string {
	if max < 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
