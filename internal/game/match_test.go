package game

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/EhoAdan/Trabalho-1-de-SO/internal/config"
)

// testSettings returns fast cadences so matches finish in milliseconds.
func testSettings(k, m int) config.Settings {
	return config.Settings{
		Launchers:     k,
		Enemies:       m,
		EnemyStep:     3 * time.Millisecond,
		ReloadTime:    2 * time.Millisecond,
		SpawnInterval: time.Millisecond,
		RocketStep:    time.Millisecond,
		PollTick:      2 * time.Millisecond,
		InputIdle:     time.Millisecond,
	}
}

func testField() config.Field {
	return config.Field{Width: 80, Height: 24}
}

// newIdleMatch returns a match with no background tasks running, for
// driving individual actors by hand.
func newIdleMatch(t *testing.T, s config.Settings) *Match {
	t.Helper()
	m := NewMatch(s, testField(), rand.New(rand.NewSource(1)))
	t.Cleanup(m.cancel)
	return m
}

func TestMatchWinOnDestroyedMajority(t *testing.T) {
	// One hostile, destroyed before it can descend: the controller must
	// declare a win with destroyedCount = 1.
	s := testSettings(1, 1)
	s.EnemyStep = time.Hour // hostile never reaches the ground
	m := NewMatch(s, testField(), rand.New(rand.NewSource(1)))

	outcomeCh := make(chan Outcome, 1)
	go func() { outcomeCh <- m.Run(context.Background()) }()

	waitFor(t, 2*time.Second, func() bool { return len(m.Snapshot().Hostiles) == 1 },
		"hostile never spawned")

	// Score the kill the way an interceptor actor does.
	if !m.reg.TryKillHostile(1) {
		t.Fatal("kill on the spawned hostile failed")
	}
	m.destroyed.Add(1)

	select {
	case out := <-outcomeCh:
		if out != OutcomeWin {
			t.Fatalf("outcome = %v, want %v", out, OutcomeWin)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("match never ended")
	}
	if m.Destroyed() != 1 || m.GroundHits() != 0 {
		t.Fatalf("counters = %d destroyed, %d grounded; want 1, 0", m.Destroyed(), m.GroundHits())
	}
}

func TestMatchLoseWhenBatteryEmpty(t *testing.T) {
	// No slot ever loads, so firing reports no ammo, no interceptor is
	// created, and the lone hostile walks to the ground.
	m := NewMatch(testSettings(0, 1), testField(), rand.New(rand.NewSource(1)))

	outcomeCh := make(chan Outcome, 1)
	go func() { outcomeCh <- m.Run(context.Background()) }()

	if m.Fire() {
		t.Fatal("fire succeeded with an empty battery")
	}

	select {
	case out := <-outcomeCh:
		if out != OutcomeLose {
			t.Fatalf("outcome = %v, want %v", out, OutcomeLose)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("match never ended")
	}
	if m.GroundHits() != 1 || m.Destroyed() != 0 {
		t.Fatalf("counters = %d destroyed, %d grounded; want 0, 1", m.Destroyed(), m.GroundHits())
	}
	if got := len(m.Snapshot().Interceptors); got != 0 {
		t.Fatalf("%d interceptors created by a dry fire", got)
	}
}

func TestEvaluateThresholds(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		destroyed int
		ground    int
		spawnDone bool
		anyAlive  bool
		decided   bool
		outcome   Outcome
	}{
		{"win at ceil(m/2)", 12, 6, 0, false, true, true, OutcomeWin},
		{"no win below ceil", 12, 5, 6, false, true, false, OutcomeAborted},
		{"lose above floor(m/2)", 12, 0, 7, false, true, true, OutcomeLose},
		{"odd m win", 25, 13, 0, false, true, true, OutcomeWin},
		{"odd m ground at floor undecided", 25, 0, 12, false, true, false, OutcomeAborted},
		{"odd m lose", 25, 0, 13, false, true, true, OutcomeLose},
		{"even midpoint is a win", 2, 1, 1, false, true, true, OutcomeWin},
		{"exhausted defaults to lose", 4, 1, 2, true, false, true, OutcomeLose},
		{"exhausted with majority wins", 4, 2, 0, true, false, true, OutcomeWin},
		{"exhausted flag alone not enough", 4, 1, 2, true, true, false, OutcomeAborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newIdleMatch(t, testSettings(1, tt.total))
			m.destroyed.Store(int32(tt.destroyed))
			m.grounded.Store(int32(tt.ground))
			m.spawnDone.Store(tt.spawnDone)
			if tt.anyAlive {
				m.reg.AddHostile(&Hostile{ID: 99, X: 5, Y: 5, Alive: true})
			}

			out, decided := m.evaluate()
			if decided != tt.decided {
				t.Fatalf("decided = %v, want %v", decided, tt.decided)
			}
			if decided && out != tt.outcome {
				t.Fatalf("outcome = %v, want %v", out, tt.outcome)
			}
		})
	}
}

func TestMatchStopAborts(t *testing.T) {
	s := testSettings(1, 1)
	s.EnemyStep = time.Hour
	s.SpawnInterval = time.Hour
	m := NewMatch(s, testField(), rand.New(rand.NewSource(1)))

	outcomeCh := make(chan Outcome, 1)
	go func() { outcomeCh <- m.Run(context.Background()) }()

	time.Sleep(10 * time.Millisecond)
	m.Stop()

	select {
	case out := <-outcomeCh:
		if out != OutcomeAborted {
			t.Fatalf("outcome = %v, want %v", out, OutcomeAborted)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("match did not stop; a stopped match must not wait out actor sleeps")
	}
}

func TestFullMatchHoldsCounterInvariant(t *testing.T) {
	// Play a whole match with constant firing and check the shared-counter
	// invariants after shutdown.
	const total = 6
	m := NewMatch(testSettings(3, total), config.Field{Width: 60, Height: 20},
		rand.New(rand.NewSource(7)))

	outcomeCh := make(chan Outcome, 1)
	go func() { outcomeCh <- m.Run(context.Background()) }()

	var out Outcome
firing:
	for {
		select {
		case out = <-outcomeCh:
			break firing
		default:
			m.Fire()
			time.Sleep(time.Millisecond)
		}
	}

	if out == OutcomeAborted {
		t.Fatal("completed match reported aborted; exactly one of win/lose expected")
	}
	destroyed, grounded := m.Destroyed(), m.GroundHits()
	if destroyed+grounded > total {
		t.Fatalf("destroyed %d + grounded %d exceeds total %d", destroyed, grounded, total)
	}
	if spawned := m.Spawned(); spawned > total {
		t.Fatalf("spawned %d exceeds total %d", spawned, total)
	}

	// Run returned, so every actor must already have exited, including one
	// started by a fire racing the shutdown.
	for i, done := range m.reg.handles() {
		select {
		case <-done:
		default:
			t.Fatalf("actor %d still running after Run returned", i)
		}
	}
}

func TestFireRejectedAfterMatchEnds(t *testing.T) {
	// A fire landing after Run returned must not consume a slot, insert a
	// record, or start an actor.
	s := testSettings(1, 1)
	s.EnemyStep = time.Hour
	s.SpawnInterval = time.Hour
	m := NewMatch(s, testField(), rand.New(rand.NewSource(1)))

	outcomeCh := make(chan Outcome, 1)
	go func() { outcomeCh <- m.Run(context.Background()) }()

	waitFor(t, 2*time.Second, func() bool { return m.Spawned() == 1 },
		"match never got going")
	m.Stop()
	if out := <-outcomeCh; out != OutcomeAborted {
		t.Fatalf("outcome = %v, want %v", out, OutcomeAborted)
	}

	loaded := m.battery.Loaded()
	if m.Fire() {
		t.Fatal("fire succeeded after Run returned")
	}
	if got := m.battery.Loaded(); got != loaded {
		t.Fatalf("rejected fire consumed a slot: %d loaded, was %d", got, loaded)
	}
	if got := len(m.Snapshot().Interceptors); got != 0 {
		t.Fatalf("%d interceptor records created after Run returned", got)
	}
	for i, done := range m.reg.handles() {
		select {
		case <-done:
		default:
			t.Fatalf("actor %d still running after Run returned", i)
		}
	}
}

func TestSnapshotReflectsState(t *testing.T) {
	m := newIdleMatch(t, testSettings(3, 5))
	m.reg.AddHostile(&Hostile{ID: 1, X: 10, Y: 4, Alive: true})
	m.battery.TryFire()
	m.battery.SetAim(AimLeft)
	m.spawned.Store(1)

	s := m.Snapshot()
	if s.Total != 5 || s.Spawned != 1 {
		t.Errorf("totals = %d/%d, want 1/5", s.Spawned, s.Total)
	}
	if len(s.Slots) != 3 || s.Slots[0] || !s.Slots[1] || !s.Slots[2] {
		t.Errorf("slots = %v, want [false true true]", s.Slots)
	}
	if s.Aim != AimLeft {
		t.Errorf("aim = %v, want %v", s.Aim, AimLeft)
	}
	if len(s.Hostiles) != 1 || s.Hostiles[0] != (Position{X: 10, Y: 4}) {
		t.Errorf("hostiles = %v, want [{10 4}]", s.Hostiles)
	}
}
