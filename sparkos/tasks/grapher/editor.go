package grapher

import "strings"

// glyphAliases spells runes the UI font cannot draw.
var glyphAliases = map[rune]string{
	'π': "pi",
	'√': "sqrt",
}

func (t *Task) insertRune(r rune) {
	if t.cursor < 0 {
		t.cursor = 0
	}
	if t.cursor > len(t.input) {
		t.cursor = len(t.input)
	}
	t.input = append(t.input, 0)
	copy(t.input[t.cursor+1:], t.input[t.cursor:])
	t.input[t.cursor] = r
	t.cursor++
}

func (t *Task) backspace() bool {
	if t.cursor <= 0 || len(t.input) == 0 {
		return false
	}
	copy(t.input[t.cursor-1:], t.input[t.cursor:])
	t.input = t.input[:len(t.input)-1]
	t.cursor--
	return true
}

func (t *Task) deleteForward() bool {
	if t.cursor < 0 || t.cursor >= len(t.input) {
		return false
	}
	copy(t.input[t.cursor:], t.input[t.cursor+1:])
	t.input = t.input[:len(t.input)-1]
	return true
}

// displayText is rs as drawn, with aliases expanded.
func displayText(rs []rune) string {
	var b strings.Builder
	for _, r := range rs {
		if s, ok := glyphAliases[r]; ok {
			b.WriteString(s)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// displayWidth is the number of cells displayText(rs) occupies.
func displayWidth(rs []rune) int {
	n := 0
	for _, r := range rs {
		if s, ok := glyphAliases[r]; ok {
			n += len(s)
			continue
		}
		n++
	}
	return n
}
