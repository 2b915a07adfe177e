package game

// runSpawner creates up to m hostiles at the spawn cadence, each at a random
// column on the top row, and starts an actor for every one. The spawn-done
// flag is set on exit whether the quota ran out or the match was cancelled;
// the controller reads it without blocking.
func (m *Match) runSpawner() {
	defer m.spawnDone.Store(true)
	defer m.wg.Done()

	minX, maxX := m.field.SpawnMinX(), m.field.SpawnMaxX()
	for i := 0; i < m.settings.Enemies; i++ {
		if m.ctx.Err() != nil {
			return
		}
		m.spawnHostileAt(minX+m.rng.Intn(maxX-minX+1), 1)
		m.spawned.Add(1)
		if !sleepCtx(m.ctx, m.settings.SpawnInterval) {
			return
		}
	}
}

// spawnHostileAt inserts a hostile record and starts its actor. Insertion
// and handle attach are two strictly sequential critical sections on the
// hostile lock, never one nested hold.
func (m *Match) spawnHostileAt(x, y int) int {
	id := int(m.nextHostileID.Add(1))
	m.reg.AddHostile(&Hostile{ID: id, X: x, Y: y, Alive: true})

	done := make(chan struct{})
	m.reg.AttachHostile(id, done)
	go m.runHostile(id, x, y, done)
	return id
}
