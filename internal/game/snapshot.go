package game

// Position is one occupied cell on the field.
type Position struct {
	X, Y int
}

// Snapshot is a read-only copy of everything the render sink paints: header
// counters, battery state with the current aim, and the live entity
// positions. Building one touches each registry lock once; the renderer
// never sees the mutable collections.
type Snapshot struct {
	Destroyed  int
	GroundHits int
	Spawned    int
	Total      int

	Slots []bool
	Aim   Aim

	Hostiles     []Position
	Interceptors []Position
}

// Snapshot copies the current game state for rendering.
func (m *Match) Snapshot() Snapshot {
	hostiles, rockets := m.reg.livePositions()
	return Snapshot{
		Destroyed:    int(m.destroyed.Load()),
		GroundHits:   int(m.grounded.Load()),
		Spawned:      int(m.spawned.Load()),
		Total:        m.settings.Enemies,
		Slots:        m.battery.Slots(),
		Aim:          m.battery.Aim(),
		Hostiles:     hostiles,
		Interceptors: rockets,
	}
}
