// Package keypad implements the CHIP-8 16-key latch: a press/release mask
// plus the single pending "wait for key" event consumed by the Fx0A
// opcode.
package keypad

import "github.com/retrobit-labs/chippy/internal/model"

// Keypad tracks which of the 16 keys are currently held, plus the
// wait-for-key state used by Fx0A.
type Keypad struct {
	keys       uint16
	waiting    bool
	hasPending bool
	pending    uint8
}

// Event records a press or release transition for key (0-15). trigger is
// the model's current KeyWaitTrigger quirk. If the transition matches
// trigger and actually moves the mask bit (a real edge), the pending key
// becomes min(existing pending, key) — the lowest-numbered matching edge
// in a tick wins.
func (k *Keypad) Event(key uint8, kind model.KeyEvent, trigger model.KeyEvent) {
	key &= 0x0F
	bit := uint16(1) << key
	before := k.keys
	switch kind {
	case model.Press:
		k.keys |= bit
	case model.Release:
		k.keys &^= bit
	}
	if kind != trigger || before == k.keys {
		return
	}
	if !k.hasPending || key < k.pending {
		k.pending = key
		k.hasPending = true
	}
}

// TestEvent implements Fx0A. If waiting is already true and a pending key
// exists, it clears both and returns the key. If waiting is true with no
// pending key, it returns nothing. If waiting is false, it begins waiting,
// clears any stale pending key, and returns nothing — so Fx0A always
// spans at least one full frame before it can succeed.
func (k *Keypad) TestEvent() (uint8, bool) {
	if k.waiting {
		if k.hasPending {
			key := k.pending
			k.waiting = false
			k.hasPending = false
			return key, true
		}
		return 0, false
	}
	k.waiting = true
	k.hasPending = false
	return 0, false
}

// IsPressed reports whether the key named by the low 4 bits of keyByte is
// currently held.
func (k *Keypad) IsPressed(keyByte uint8) bool {
	return k.keys&(1<<(keyByte&0x0F)) != 0
}
