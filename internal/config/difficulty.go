package config

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty selects one of the fixed parameter presets.
type Difficulty int

const (
	Easy Difficulty = iota + 1
	Medium
	Hard
)

// String returns the display name of the difficulty.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// Settings holds every tunable parameter for one match. The five preset
// fields are fixed at match start and never change mid-match; the tick
// fields carry the engine's fixed cadences and exist as fields so tests
// can shrink them.
type Settings struct {
	Launchers     int           // k: battery slots
	Enemies       int           // m: total hostiles spawned
	EnemyStep     time.Duration // descent interval per hostile
	ReloadTime    time.Duration // per-slot reload delay
	SpawnInterval time.Duration // interval between spawns

	RocketStep time.Duration // interceptor flight tick
	PollTick   time.Duration // match controller cadence
	InputIdle  time.Duration // input poll idle sleep
}

// Engine cadences shared by every preset.
const (
	DefaultRocketStep = 70 * time.Millisecond
	DefaultPollTick   = 120 * time.Millisecond
	DefaultInputIdle  = 30 * time.Millisecond
)

// Preset returns the settings for a difficulty level.
func Preset(d Difficulty) Settings {
	s := Settings{
		RocketStep: DefaultRocketStep,
		PollTick:   DefaultPollTick,
		InputIdle:  DefaultInputIdle,
	}
	switch d {
	case Easy:
		s.Launchers, s.Enemies = 3, 12
		s.EnemyStep = 700 * time.Millisecond
		s.ReloadTime = 1200 * time.Millisecond
		s.SpawnInterval = 900 * time.Millisecond
	case Hard:
		s.Launchers, s.Enemies = 8, 25
		s.EnemyStep = 250 * time.Millisecond
		s.ReloadTime = 350 * time.Millisecond
		s.SpawnInterval = 300 * time.Millisecond
	default: // Medium
		s.Launchers, s.Enemies = 5, 18
		s.EnemyStep = 450 * time.Millisecond
		s.ReloadTime = 800 * time.Millisecond
		s.SpawnInterval = 600 * time.Millisecond
	}
	return s
}

// ParseDifficulty maps a user-facing name or menu digit to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "easy":
		return Easy, nil
	case "2", "medium", "":
		return Medium, nil
	case "3", "hard":
		return Hard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", s)
	}
}

// Field geometry. The playfield adapts to the terminal but never shrinks
// below the minimum; the ground line sits two rows above the bottom edge.
const (
	DefaultFieldWidth  = 80
	DefaultFieldHeight = 24
	MinFieldWidth      = 60
	MinFieldHeight     = 20
)

// Field describes the bounded play area in terminal cells.
type Field struct {
	Width, Height int
}

// ClampField fits a terminal size to the playfield minimums.
func ClampField(width, height int) Field {
	if width < MinFieldWidth {
		width = MinFieldWidth
	}
	if height < MinFieldHeight {
		height = MinFieldHeight
	}
	return Field{Width: width, Height: height}
}

// GroundRow is the row hostiles crash into.
func (f Field) GroundRow() int { return f.Height - 2 }

// LaunchX and LaunchY give the fixed interceptor launch point,
// bottom-center one row above the ground line.
func (f Field) LaunchX() int { return f.Width / 2 }
func (f Field) LaunchY() int { return f.Height - 3 }

// SpawnMinX and SpawnMaxX bound the random spawn column (inclusive).
func (f Field) SpawnMinX() int { return 2 }
func (f Field) SpawnMaxX() int { return f.Width - 4 }

// InBounds reports whether an interceptor position is still on the field.
// The border and the ground line are out of bounds.
func (f Field) InBounds(x, y int) bool {
	return x >= 1 && x < f.Width-1 && y >= 1 && y < f.Height-2
}
