// Package session runs one interactive play-through: difficulty menu, the
// match itself with its input loop, and the result screen. It works against
// a reader/writer pair so the same loop serves a local terminal and an SSH
// session.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/EhoAdan/Trabalho-1-de-SO/internal/config"
	"github.com/EhoAdan/Trabalho-1-de-SO/internal/draw"
	"github.com/EhoAdan/Trabalho-1-de-SO/internal/game"
	"github.com/EhoAdan/Trabalho-1-de-SO/internal/input"
	"github.com/EhoAdan/Trabalho-1-de-SO/internal/render"
)

// noAmmoDisplay is how long the empty-battery notice stays on screen.
const noAmmoDisplay = 300 * time.Millisecond

// Options configures a session.
type Options struct {
	// Difficulty skips the menu when set; zero shows the menu.
	Difficulty config.Difficulty
	// Seed fixes the spawn RNG; zero seeds from the clock.
	Seed int64
}

// Run plays one full session on the given terminal. It returns once the
// player quits or the match ends and a final key is pressed.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, size draw.TermSizeFunc, opts Options) error {
	stream := input.StartStream(r)

	width, height, err := size()
	if err != nil {
		width, height = config.DefaultFieldWidth, config.DefaultFieldHeight
	}
	field := config.ClampField(width, height)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	defer draw.ClearScreen(w)

	painter := render.NewPainter(w, field)

	difficulty := opts.Difficulty
	if difficulty == 0 {
		difficulty, err = chooseDifficulty(ctx, stream, painter)
		if err != nil {
			return err
		}
		if difficulty == 0 {
			return nil // quit from the menu
		}
	}
	settings := config.Preset(difficulty)

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m := game.NewMatch(settings, field, rand.New(rand.NewSource(seed)))

	var notice noticeState
	m.OnTick = func(s game.Snapshot) {
		_ = painter.Frame(s, notice.text())
	}

	outcomeCh := make(chan game.Outcome, 1)
	go func() {
		outcomeCh <- m.Run(ctx)
	}()

	for {
		select {
		case out := <-outcomeCh:
			if out == game.OutcomeAborted {
				return nil
			}
			if err := painter.Result(m.Snapshot(), out); err != nil {
				return fmt.Errorf("paint result: %w", err)
			}
			_, _ = stream.Wait(ctx) // any key dismisses the result screen
			return nil
		default:
		}

		switch ev := stream.Poll(); ev {
		case input.Quit:
			m.Stop()
		case input.Fire:
			if !m.Fire() {
				notice.show(noAmmoDisplay)
			}
		default:
			if aim, ok := aimFor(ev); ok {
				m.SetAim(aim)
			}
		}

		if err := painter.Frame(m.Snapshot(), notice.text()); err != nil {
			return fmt.Errorf("paint frame: %w", err)
		}
		time.Sleep(settings.InputIdle)
	}
}

// chooseDifficulty paints the menu and blocks for a selection. Returns zero
// when the player quits instead of choosing; Enter defaults to Medium.
func chooseDifficulty(ctx context.Context, stream *input.Stream, painter *render.Painter) (config.Difficulty, error) {
	if err := painter.Menu(); err != nil {
		return 0, fmt.Errorf("paint menu: %w", err)
	}
	for {
		ev, err := stream.Wait(ctx)
		if err != nil {
			if ev == input.Quit {
				return 0, nil // input source closed
			}
			return 0, err
		}
		switch ev {
		case input.Digit1:
			return config.Easy, nil
		case input.Digit2, input.Enter:
			return config.Medium, nil
		case input.Digit3:
			return config.Hard, nil
		case input.Quit:
			return 0, nil
		}
	}
}

// aimFor maps an input event to a firing heading.
func aimFor(ev input.Event) (game.Aim, bool) {
	switch ev {
	case input.AimUp:
		return game.AimUp, true
	case input.AimUpLeft:
		return game.AimUpLeft, true
	case input.AimUpRight:
		return game.AimUpRight, true
	case input.AimLeft:
		return game.AimLeft, true
	case input.AimRight:
		return game.AimRight, true
	}
	return 0, false
}

// noticeState holds the expiry of the transient no-ammo notice. Written by
// the input loop, read by both painters, hence the atomic.
type noticeState struct {
	until atomic.Int64
}

func (n *noticeState) show(d time.Duration) {
	n.until.Store(time.Now().Add(d).UnixNano())
}

func (n *noticeState) text() string {
	if time.Now().UnixNano() < n.until.Load() {
		return render.NoAmmoNotice
	}
	return ""
}
