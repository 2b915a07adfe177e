package game

import (
	"fmt"
	"sync"
)

// Hostile is the canonical record of one descending enemy. The registry owns
// it; the hostile's own actor holds only a working copy of the immutable
// fields and writes position back through the registry.
type Hostile struct {
	ID    int
	X, Y  int
	Alive bool

	done chan struct{} // actor handle, attached after insertion
}

// Interceptor is the canonical record of one fired rocket.
type Interceptor struct {
	ID     int
	X, Y   int
	Aim    Aim
	Active bool

	done chan struct{}
}

// Registry is the single source of truth for entity positions and liveness.
// The hostile and interceptor collections are guarded by independent locks;
// no method ever holds both. Records are never removed, only marked dead or
// inactive, so ids stay valid for the whole match.
type Registry struct {
	hostileMu sync.Mutex
	hostiles  []*Hostile

	rocketMu sync.Mutex
	rockets  []*Interceptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// AddHostile inserts a hostile record. Attaching the actor handle is a
// separate critical section (AttachHostile); the two must never be merged
// into one lock hold.
func (r *Registry) AddHostile(h *Hostile) {
	r.hostileMu.Lock()
	r.hostiles = append(r.hostiles, h)
	r.hostileMu.Unlock()
}

// AttachHostile records the actor handle for a hostile.
func (r *Registry) AttachHostile(id int, done chan struct{}) {
	r.hostileMu.Lock()
	defer r.hostileMu.Unlock()
	r.findHostile(id).done = done
}

// MoveHostile writes a hostile's new position back and reports whether the
// record is still alive, so the actor can stop once another actor killed it.
func (r *Registry) MoveHostile(id, x, y int) bool {
	r.hostileMu.Lock()
	defer r.hostileMu.Unlock()
	h := r.findHostile(id)
	h.X, h.Y = x, y
	return h.Alive
}

// TryKillHostile atomically clears the alive flag. It returns true only for
// the caller that performed the transition; duplicate kills are no-ops.
func (r *Registry) TryKillHostile(id int) bool {
	r.hostileMu.Lock()
	defer r.hostileMu.Unlock()
	h := r.findHostile(id)
	if !h.Alive {
		return false
	}
	h.Alive = false
	return true
}

// MarkGrounded clears the alive flag for a hostile that reached the ground.
// Same first-transition-wins semantics as TryKillHostile, through the same
// lock, so an entity contributes to at most one counter.
func (r *Registry) MarkGrounded(id int) bool {
	return r.TryKillHostile(id)
}

// TryKillAt scans live hostiles for one occupying the cell and kills it in
// the same critical section. Returns false when the cell is empty or only
// holds already-dead hostiles; the scan and the kill are atomic, so two
// interceptors arriving at the same cell resolve to exactly one kill.
func (r *Registry) TryKillAt(x, y int) bool {
	r.hostileMu.Lock()
	defer r.hostileMu.Unlock()
	for _, h := range r.hostiles {
		if h.Alive && h.X == x && h.Y == y {
			h.Alive = false
			return true
		}
	}
	return false
}

// AnyHostileAlive reports whether at least one hostile is still descending.
func (r *Registry) AnyHostileAlive() bool {
	r.hostileMu.Lock()
	defer r.hostileMu.Unlock()
	for _, h := range r.hostiles {
		if h.Alive {
			return true
		}
	}
	return false
}

// AddInterceptor inserts an interceptor record. Handle attach is separate,
// as with hostiles.
func (r *Registry) AddInterceptor(ic *Interceptor) {
	r.rocketMu.Lock()
	r.rockets = append(r.rockets, ic)
	r.rocketMu.Unlock()
}

// AttachInterceptor records the actor handle for an interceptor.
func (r *Registry) AttachInterceptor(id int, done chan struct{}) {
	r.rocketMu.Lock()
	defer r.rocketMu.Unlock()
	r.findInterceptor(id).done = done
}

// MoveInterceptor writes an interceptor's new position back.
func (r *Registry) MoveInterceptor(id, x, y int) {
	r.rocketMu.Lock()
	defer r.rocketMu.Unlock()
	ic := r.findInterceptor(id)
	ic.X, ic.Y = x, y
}

// DeactivateInterceptor marks an interceptor as finished.
func (r *Registry) DeactivateInterceptor(id int) {
	r.rocketMu.Lock()
	defer r.rocketMu.Unlock()
	r.findInterceptor(id).Active = false
}

// handles returns the actor handles of every record created so far. Each
// collection is copied under its own lock; the caller waits outside any lock.
func (r *Registry) handles() []chan struct{} {
	var hs []chan struct{}
	r.hostileMu.Lock()
	for _, h := range r.hostiles {
		if h.done != nil {
			hs = append(hs, h.done)
		}
	}
	r.hostileMu.Unlock()
	r.rocketMu.Lock()
	for _, ic := range r.rockets {
		if ic.done != nil {
			hs = append(hs, ic.done)
		}
	}
	r.rocketMu.Unlock()
	return hs
}

// livePositions copies the positions of live hostiles and active
// interceptors for rendering.
func (r *Registry) livePositions() (hostiles, rockets []Position) {
	r.hostileMu.Lock()
	for _, h := range r.hostiles {
		if h.Alive {
			hostiles = append(hostiles, Position{X: h.X, Y: h.Y})
		}
	}
	r.hostileMu.Unlock()
	r.rocketMu.Lock()
	for _, ic := range r.rockets {
		if ic.Active {
			rockets = append(rockets, Position{X: ic.X, Y: ic.Y})
		}
	}
	r.rocketMu.Unlock()
	return hostiles, rockets
}

// findHostile must be called with hostileMu held. A missing id is a logic
// error, not a game state.
func (r *Registry) findHostile(id int) *Hostile {
	for _, h := range r.hostiles {
		if h.ID == id {
			return h
		}
	}
	panic(fmt.Sprintf("game: hostile %d not in registry", id))
}

// findInterceptor must be called with rocketMu held.
func (r *Registry) findInterceptor(id int) *Interceptor {
	for _, ic := range r.rockets {
		if ic.ID == id {
			return ic
		}
	}
	panic(fmt.Sprintf("game: interceptor %d not in registry", id))
}
