package game

// runInterceptor is the actor loop for one fired rocket: Flying until Hit or
// OutOfBounds, both terminal. The heading is fixed at fire time. The first
// step happens immediately after launch; subsequent steps follow the rocket
// tick. A position match is resolved by the registry's atomic scan-and-kill:
// the actor that wins the kill scores it and terminates, a loser finds no
// live hostile at the cell and keeps flying.
func (m *Match) runInterceptor(id, x, y int, aim Aim, done chan struct{}) {
	defer func() {
		m.reg.DeactivateInterceptor(id)
		// Redundant with the signal sent at fire time, but kept so a rocket
		// retiring can never leave the reloader parked.
		m.battery.SignalFreed()
		close(done)
	}()

	dx, dy := aim.Step()
	for {
		if m.ctx.Err() != nil {
			return // shutdown observed before touching the registry
		}
		x += dx
		y += dy
		m.reg.MoveInterceptor(id, x, y)

		if m.reg.TryKillAt(x, y) {
			m.destroyed.Add(1)
			return
		}
		if !m.field.InBounds(x, y) {
			return
		}
		if !sleepCtx(m.ctx, m.settings.RocketStep) {
			return
		}
	}
}
