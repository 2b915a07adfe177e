package game

import "sync"

// Battery is the bounded pool of k reusable firing slots. Each slot cycles
// Loaded -> Empty on fire and Empty -> Loaded on reload. Fires never block
// and never queue: with no loaded slot TryFire reports no ammo and returns.
//
// Slot-freed signalling is a one-buffered channel with non-blocking sends,
// standing in for a condition variable: the reloader parks on the channel
// when every slot is loaded and any fire wakes it.
type Battery struct {
	mu    sync.Mutex
	slots []bool // true = loaded
	aim   Aim

	freed chan struct{}
}

// NewBattery creates a battery with k slots, all loaded.
func NewBattery(k int) *Battery {
	slots := make([]bool, k)
	for i := range slots {
		slots[i] = true
	}
	return &Battery{
		slots: slots,
		freed: make(chan struct{}, 1),
	}
}

// TryFire consumes the lowest-index loaded slot and returns its index.
// Returns ok=false without blocking when every slot is empty. A successful
// fire signals the reloader that an empty slot now exists.
func (b *Battery) TryFire() (slot int, ok bool) {
	b.mu.Lock()
	for i, loaded := range b.slots {
		if loaded {
			b.slots[i] = false
			b.mu.Unlock()
			b.SignalFreed()
			return i, true
		}
	}
	b.mu.Unlock()
	return 0, false
}

// SetAim updates the shared firing heading.
func (b *Battery) SetAim(a Aim) {
	b.mu.Lock()
	b.aim = a
	b.mu.Unlock()
}

// Aim returns the current firing heading.
func (b *Battery) Aim() Aim {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.aim
}

// Size returns the slot count k.
func (b *Battery) Size() int {
	return len(b.slots)
}

// Loaded returns how many slots currently hold a rocket.
func (b *Battery) Loaded() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, loaded := range b.slots {
		if loaded {
			n++
		}
	}
	return n
}

// Slots returns a copy of the slot states for rendering.
func (b *Battery) Slots() []bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]bool, len(b.slots))
	copy(out, b.slots)
	return out
}

// SignalFreed wakes the reloader if it is parked waiting for an empty slot.
// The send never blocks; a pending signal is enough for any number of fires.
func (b *Battery) SignalFreed() {
	select {
	case b.freed <- struct{}{}:
	default:
	}
}

// Freed exposes the slot-freed channel for the reloader's parked wait.
func (b *Battery) Freed() <-chan struct{} {
	return b.freed
}

// full reports whether every slot is loaded.
func (b *Battery) full() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, loaded := range b.slots {
		if !loaded {
			return false
		}
	}
	return true
}

// loadedAt reports the state of one slot.
func (b *Battery) loadedAt(i int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.slots[i]
}

// load sets a slot to loaded if it is still empty, re-validating under the
// lock because the reload delay happens with the lock released. Returns
// whether the slot was loaded by this call.
func (b *Battery) load(i int) bool {
	b.mu.Lock()
	if b.slots[i] {
		b.mu.Unlock()
		return false
	}
	b.slots[i] = true
	b.mu.Unlock()
	b.SignalFreed()
	return true
}
