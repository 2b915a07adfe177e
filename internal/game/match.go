// Package game implements the concurrent engagement engine: one goroutine
// per hostile and per fired interceptor, a spawner, a serial reloader, and a
// controller polling shared counters for the terminal outcome. All shared
// state lives on the Match; there are no package-level globals. Cancellation
// is cooperative through one context observed at every suspension point.
package game

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/EhoAdan/Trabalho-1-de-SO/internal/config"
)

// Outcome is the terminal result of a match. Win and Lose are mutually
// exclusive; Aborted means the match was cancelled before a decision.
type Outcome int

const (
	OutcomeAborted Outcome = iota
	OutcomeWin
	OutcomeLose
)

// String returns the banner text for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "YOU WIN!"
	case OutcomeLose:
		return "YOU LOSE!"
	default:
		return "ABORTED"
	}
}

// Match bundles everything one engagement needs: registry, battery, counters
// and the cancellation signal. One Match per play-through; nothing survives
// it.
type Match struct {
	settings config.Settings
	field    config.Field
	reg      *Registry
	battery  *Battery
	rng      *rand.Rand // spawner only; not goroutine-safe

	destroyed atomic.Int32
	grounded  atomic.Int32
	spawned   atomic.Int32
	spawnDone atomic.Bool

	nextHostileID atomic.Int32
	nextRocketID  atomic.Int32

	// ctx is created with the match so actors started early are always
	// cancellable; Run ties it to the caller's context.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup // spawner + reloader; entity actors join via handles

	// fireMu orders fires against shutdown: a fire that passes the closed
	// check attaches its actor handle before shutdown collects handles, and
	// once closed is set no fire can start an actor.
	fireMu sync.Mutex
	closed bool // guarded by fireMu

	// OnTick, when set before Run, is invoked with a fresh snapshot once per
	// controller tick. The render sink serializes paints itself.
	OnTick func(Snapshot)
}

// NewMatch creates a match for the given settings and field. The rng seeds
// the spawn column distribution.
func NewMatch(s config.Settings, f config.Field, rng *rand.Rand) *Match {
	m := &Match{
		settings: s,
		field:    f,
		reg:      NewRegistry(),
		battery:  NewBattery(s.Launchers),
		rng:      rng,
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	return m
}

// Run drives the match to its terminal outcome. It starts the spawner and
// the reloader, then polls the counters each controller tick: Win once
// destroyed reaches ceil(m/2); Lose once ground hits exceed floor(m/2); and
// once spawning is done with no hostile left alive, a forced final decision
// with Lose as the default. Before returning it cancels every actor and
// waits for all of them to exit, so no registry mutation can trail the
// returned outcome.
func (m *Match) Run(ctx context.Context) Outcome {
	defer m.cancel()
	go func() {
		select {
		case <-ctx.Done():
			m.cancel() // propagate the caller's cancellation
		case <-m.ctx.Done():
		}
	}()

	m.wg.Add(2)
	go m.runSpawner()
	go func() {
		defer m.wg.Done()
		reloadLoop(m.ctx, m.battery, m.settings.ReloadTime)
	}()

	outcome := OutcomeAborted
	for {
		if m.ctx.Err() != nil {
			break
		}
		if o, decided := m.evaluate(); decided {
			outcome = o
			break
		}
		if m.OnTick != nil {
			m.OnTick(m.Snapshot())
		}
		if !sleepCtx(m.ctx, m.settings.PollTick) {
			break
		}
	}

	m.shutdown()
	return outcome
}

// evaluate applies the win/lose predicates to the current counters.
func (m *Match) evaluate() (Outcome, bool) {
	total := m.settings.Enemies
	destroyed := int(m.destroyed.Load())
	ground := int(m.grounded.Load())

	if destroyed >= (total+1)/2 {
		return OutcomeWin, true
	}
	if ground > total/2 {
		return OutcomeLose, true
	}
	if m.spawnDone.Load() && !m.reg.AnyHostileAlive() {
		// Pool exhausted: force a decision with the final counts.
		if destroyed >= (total+1)/2 {
			return OutcomeWin, true
		}
		return OutcomeLose, true
	}
	return OutcomeAborted, false
}

// shutdown cancels all actors and joins them: background tasks through the
// wait group, every hostile and interceptor actor through the handles the
// registry collected at creation. Handles are copied out under the registry
// locks and waited on with no lock held.
func (m *Match) shutdown() {
	m.cancel()
	m.fireMu.Lock()
	m.closed = true
	m.fireMu.Unlock()
	m.battery.SignalFreed() // wake a parked reloader
	m.wg.Wait()
	for _, done := range m.reg.handles() {
		<-done
	}
}

// Stop aborts the match from outside the controller loop, e.g. on quit.
// Safe to call at any time, from any goroutine, any number of times.
func (m *Match) Stop() {
	m.cancel()
}

// SetAim updates the battery's shared firing heading.
func (m *Match) SetAim(a Aim) {
	m.battery.SetAim(a)
}

// Fire attempts to launch an interceptor with the current aim from the fixed
// launch point. Returns false when no slot is loaded; no ammo is a game
// state, not an error, and the fire is not queued. On success the record is
// inserted, the handle attached in a second critical section, and the actor
// started. A fire arriving after the match shut down is rejected without
// consuming a slot, so Run never returns with an actor it did not join.
func (m *Match) Fire() bool {
	m.fireMu.Lock()
	defer m.fireMu.Unlock()
	if m.closed || m.ctx.Err() != nil {
		return false
	}
	if _, ok := m.battery.TryFire(); !ok {
		return false
	}

	id := int(m.nextRocketID.Add(1))
	x, y := m.field.LaunchX(), m.field.LaunchY()
	aim := m.battery.Aim()
	m.reg.AddInterceptor(&Interceptor{ID: id, X: x, Y: y, Aim: aim, Active: true})

	done := make(chan struct{})
	m.reg.AttachInterceptor(id, done)
	go m.runInterceptor(id, x, y, aim, done)
	return true
}

// Destroyed returns how many hostiles interceptors have taken down.
func (m *Match) Destroyed() int { return int(m.destroyed.Load()) }

// GroundHits returns how many hostiles reached the ground.
func (m *Match) GroundHits() int { return int(m.grounded.Load()) }

// Spawned returns how many hostiles have been created so far.
func (m *Match) Spawned() int { return int(m.spawned.Load()) }

// Field returns the match's play area.
func (m *Match) Field() config.Field { return m.field }

// sleepCtx sleeps for d unless the context is cancelled first. Returns true
// after a full sleep, false on cancellation. Every actor suspension goes
// through here so shutdown latency is bounded by the actor's own tick.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
