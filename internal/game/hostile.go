package game

// runHostile is the actor loop for one hostile: Descending until Destroyed
// or Grounded, both terminal. It owns the descent; every position change is
// written back through the registry, which also tells it when an interceptor
// already killed its record. Closing done releases anyone joined on the
// actor handle.
func (m *Match) runHostile(id, x, y int, done chan struct{}) {
	defer close(done)

	ground := m.field.GroundRow()
	for {
		if !sleepCtx(m.ctx, m.settings.EnemyStep) {
			return // shutdown observed at the suspension point
		}
		y++
		if !m.reg.MoveHostile(id, x, y) {
			return // destroyed mid-descent
		}
		if y >= ground {
			if m.reg.MarkGrounded(id) {
				m.grounded.Add(1)
			}
			return
		}
	}
}
