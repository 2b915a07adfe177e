package game

// Aim is one of the five fixed firing headings shared by the whole battery.
// The current heading is read at fire time to set the new interceptor's
// direction; interceptors never change heading in flight.
type Aim int

const (
	AimUp Aim = iota
	AimUpLeft
	AimUpRight
	AimLeft
	AimRight
)

// Step returns the per-tick displacement for the heading.
// Negative dy is up; hostiles descend from the top of the field.
func (a Aim) Step() (dx, dy int) {
	switch a {
	case AimUpLeft:
		return -1, -1
	case AimUpRight:
		return 1, -1
	case AimLeft:
		return -1, 0
	case AimRight:
		return 1, 0
	default:
		return 0, -1
	}
}

// String returns the HUD legend for the heading.
func (a Aim) String() string {
	switch a {
	case AimUpLeft:
		return `45° (\)`
	case AimUpRight:
		return "45° (/)"
	case AimLeft:
		return "180° left (--)"
	case AimRight:
		return "180° right (--)"
	default:
		return "90° (|)"
	}
}
