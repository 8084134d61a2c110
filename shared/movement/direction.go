package movement

import "fmt"

// Direction is one of the four logical movement inputs.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
	directionCount
)

var directionNames = [directionCount]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

func (d Direction) String() string {
	if d < directionCount {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d < directionCount
}

// Delta returns the unit step of d on each axis.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// Facing returns the sprite facing for d.
func (d Direction) Facing() Facing {
	switch d {
	case Up:
		return FacingUp
	case Down:
		return FacingDown
	case Left:
		return FacingLeft
	case Right:
		return FacingRight
	}
	return FacingStand
}

// Facing is the presentation-only orientation of the entity. It never affects
// collision.
type Facing uint8

const (
	FacingStand Facing = iota
	FacingUp
	FacingDown
	FacingLeft
	FacingRight
	facingCount
)

var facingNames = [facingCount]string{
	FacingStand: "stand",
	FacingUp:    "up",
	FacingDown:  "down",
	FacingLeft:  "left",
	FacingRight: "right",
}

func (f Facing) String() string {
	if f < facingCount {
		return facingNames[f]
	}
	return fmt.Sprintf("Facing(%d)", uint8(f))
}

// ParseFacing converts a facing name as stored in save files.
func ParseFacing(name string) (Facing, error) {
	for f, n := range facingNames {
		if n == name {
			return Facing(f), nil
		}
	}
	return FacingStand, fmt.Errorf("unknown facing %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (f Facing) MarshalText() ([]byte, error) {
	if f >= facingCount {
		return nil, fmt.Errorf("unknown facing %d", uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Facing) UnmarshalText(text []byte) error {
	parsed, err := ParseFacing(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// State is the resolver state: Idle with nothing held, Moving otherwise.
type State uint8

const (
	Idle State = iota
	Moving
)

func (s State) String() string {
	if s == Moving {
		return "moving"
	}
	return "idle"
}
