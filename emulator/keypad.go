package emulator

// Input is the key state the interpreter queries while executing an instruction.
// Key codes are the logical CHIP-8 keys 0x0 to 0xF.
type Input interface {
	IsHeld(key byte) bool

	// FirstPressed returns a held key, if there is one. The choice must be stable
	// for the same key state.
	FirstPressed() (byte, bool)
}

/*
Keypad is the standard Input. Frontends keep one up to date from their keyboard events.

	Keypad       Keyboard
	+-+-+-+-+    +-+-+-+-+
	|1|2|3|C|    |1|2|3|4|
	+-+-+-+-+    +-+-+-+-+
	|4|5|6|D|    |Q|W|E|R|
	+-+-+-+-+ => +-+-+-+-+
	|7|8|9|E|    |A|S|D|F|
	+-+-+-+-+    +-+-+-+-+
	|A|0|B|F|    |Z|X|C|V|
	+-+-+-+-+    +-+-+-+-+
*/
type Keypad [16]bool

// Set updates the held state of key. Codes above 0xF are ignored.
func (k *Keypad) Set(key byte, held bool) {
	if int(key) < len(k) {
		k[key] = held
	}
}

// Reset releases every key.
func (k *Keypad) Reset() {
	*k = Keypad{}
}

func (k Keypad) IsHeld(key byte) bool {
	return int(key) < len(k) && k[key]
}

// FirstPressed returns the lowest held key code.
func (k Keypad) FirstPressed() (byte, bool) {
	for key, held := range k {
		if held {
			return byte(key), true
		}
	}
	return 0, false
}
