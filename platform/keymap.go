package platform

import (
	"fmt"
	"strings"
)

// Layout maps the 16 logical CHIP-8 keys to the characters of a physical keyboard.
// Index i holds the character for key code i.
type Layout [16]rune

/*
Key Mappings:
Keypad       QWERTY       AZERTY
+-+-+-+-+    +-+-+-+-+    +-+-+-+-+
|1|2|3|C|    |1|2|3|4|    |1|2|3|4|
+-+-+-+-+    +-+-+-+-+    +-+-+-+-+
|4|5|6|D|    |Q|W|E|R|    |A|Z|E|R|
+-+-+-+-+ => +-+-+-+-+    +-+-+-+-+
|7|8|9|E|    |A|S|D|F|    |Q|S|D|F|
+-+-+-+-+    +-+-+-+-+    +-+-+-+-+
|A|0|B|F|    |Z|X|C|V|    |W|X|C|V|
+-+-+-+-+    +-+-+-+-+    +-+-+-+-+
*/
var (
	QWERTY = Layout{'x', '1', '2', '3', 'q', 'w', 'e', 'a', 's', 'd', 'z', 'c', '4', 'r', 'f', 'v'}
	AZERTY = Layout{'x', '1', '2', '3', 'a', 'z', 'e', 'q', 's', 'd', 'w', 'c', '4', 'r', 'f', 'v'}
)

// ParseLayout returns the layout with the given name.
func ParseLayout(name string) (Layout, error) {
	switch strings.ToLower(name) {
	case "", "qwerty":
		return QWERTY, nil
	case "azerty":
		return AZERTY, nil
	default:
		return Layout{}, fmt.Errorf("unsupported keyboard layout '%s'", name)
	}
}

// Key returns the CHIP-8 key code bound to the character r.
func (l Layout) Key(r rune) (byte, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	for code, c := range l {
		if c == r {
			return byte(code), true
		}
	}
	return 0, false
}
