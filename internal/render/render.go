// Package render paints read-only game snapshots onto a terminal. It owns
// no game logic: the session hands it a snapshot and it draws the frame.
package render

import (
	"io"
	"sync"

	"github.com/EhoAdan/Trabalho-1-de-SO/internal/config"
	"github.com/EhoAdan/Trabalho-1-de-SO/internal/draw"
	"github.com/EhoAdan/Trabalho-1-de-SO/internal/game"
)

// Painter renders frames for one session. Both the controller tick and the
// input cycle paint through the same Painter; the mutex makes the terminal a
// single independently locked surface, entered only for the duration of a
// paint.
type Painter struct {
	mu    sync.Mutex
	fw    *draw.FrameWriter
	field config.Field
}

// NewPainter creates a painter targeting w for the given field size.
func NewPainter(w io.Writer, f config.Field) *Painter {
	return &Painter{fw: draw.NewFrameWriter(w), field: f}
}

// cell converts 0-based field coordinates to 1-based terminal coordinates.
func cell(x, y int) (int, int) { return x + 1, y + 1 }

// Frame paints one full game frame: border, header counters, battery grid,
// aim legend, ground line, live hostiles and interceptors, footer, and an
// optional transient notice.
func (p *Painter) Frame(s game.Snapshot, notice string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.paintField(s)
	if notice != "" {
		x, y := cell(2, p.field.Height-3)
		p.fw.Text(x, y, notice)
	}
	return p.fw.Flush()
}

// Result paints the final frame with the outcome banner and exit prompt.
func (p *Painter) Result(s game.Snapshot, out game.Outcome) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.paintField(s)

	w, h := p.field.Width, p.field.Height
	count := s.Destroyed
	if out == game.OutcomeLose {
		count = s.GroundHits
	}
	x, y := cell(w/2-8, h/2)
	p.fw.Textf(x, y, "%s (%d/%d)", out, count, s.Total)
	x, y = cell(2, h-4)
	p.fw.Text(x, y, "Press any key to exit...")
	return p.fw.Flush()
}

// Menu paints the difficulty selection screen.
func (p *Painter) Menu() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	const mw, mh = 36, 10
	left := (p.field.Width - mw) / 2
	top := (p.field.Height - mh) / 2

	p.fw.Clear()
	bx, by := cell(left, top)
	p.fw.Box(bx, by, mw, mh)
	x, y := cell(left+2, top+1)
	p.fw.Text(x, y, "Choose difficulty:")
	x, y = cell(left+4, top+3)
	p.fw.Text(x, y, "1 - Easy")
	x, y = cell(left+4, top+4)
	p.fw.Text(x, y, "2 - Medium")
	x, y = cell(left+4, top+5)
	p.fw.Text(x, y, "3 - Hard")
	x, y = cell(left+2, top+7)
	p.fw.Text(x, y, "Use keys 1/2/3 then Enter")
	return p.fw.Flush()
}

// paintField appends everything except transient overlays to the frame.
// Callers hold the mutex and flush.
func (p *Painter) paintField(s game.Snapshot) {
	w, h := p.field.Width, p.field.Height

	p.fw.Clear()
	p.fw.Box(1, 1, w, h)

	x, y := cell(1, 0)
	p.fw.Text(x, y, "Antiaereo - Fogo em massa!  Press Q para sair")
	x, y = cell(1, 1)
	p.fw.Textf(x, y, "Destroyed: %d    Ground hits: %d    Spawned: %d/%d",
		s.Destroyed, s.GroundHits, s.Spawned, s.Total)

	// Battery grid, top-right, eight slots per row.
	bx := w - 28
	x, y = cell(bx, 2)
	p.fw.Textf(x, y, "Battery (k=%d):", len(s.Slots))
	for i, loaded := range s.Slots {
		glyph := '.'
		if loaded {
			glyph = 'O'
		}
		x, y = cell(bx+(i%8)*3, 3+i/8)
		p.fw.Cell(x, y, glyph)
	}
	x, y = cell(bx, 6)
	p.fw.Textf(x, y, "Aim: %s", s.Aim)

	// Ground line.
	x, y = cell(0, h-2)
	p.fw.HLine(x, y, w-1, '=')

	for _, pos := range s.Hostiles {
		if onField(p.field, pos) {
			x, y = cell(pos.X, pos.Y)
			p.fw.Cell(x, y, 'V')
		}
	}
	for _, pos := range s.Interceptors {
		if onField(p.field, pos) {
			x, y = cell(pos.X, pos.Y)
			p.fw.Cell(x, y, '*')
		}
	}

	x, y = cell(1, h-1)
	p.fw.Text(x, y, "Objective: shoot at least 50% of enemies to win.")
}

// onField reports whether a position lands inside the drawable area, above
// the ground line.
func onField(f config.Field, pos game.Position) bool {
	return pos.X >= 0 && pos.X < f.Width-1 && pos.Y >= 0 && pos.Y < f.Height-2
}

// NoAmmoNotice is the transient message shown when firing with an empty
// battery.
const NoAmmoNotice = "No rockets available!"
