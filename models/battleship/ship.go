package battleship

type Orientation uint8

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

func (o Orientation) IsValid() bool {
	return o == OrientationHorizontal || o == OrientationVertical
}

// Unit step along the axis the ship extends on
func (o Orientation) step() Coordinates {
	if o == OrientationHorizontal {
		return NewCoordinates(1, 0)
	}
	return NewCoordinates(0, 1)
}

// A ship is created by the board once its placement is valid.
// Only the board mutates it, through RegisterHit.
type Ship struct {
	origin      Coordinates
	length      int
	orientation Orientation
	cells       []Coordinates
	aliveCells  map[Coordinates]struct{}
}

// NewShip does not validate anything. Bounds and neighbourhood
// checks are the responsibility of the board placing the ship.
func NewShip(origin Coordinates, length int, orientation Orientation) *Ship {
	ship := &Ship{
		origin:      origin,
		length:      length,
		orientation: orientation,
	}

	step := orientation.step()
	ship.cells = make([]Coordinates, 0, max(length, 0))
	for i := 0; i < length; i++ {
		ship.cells = append(ship.cells, step.Mult(i).Add(origin))
	}

	ship.aliveCells = make(map[Coordinates]struct{}, len(ship.cells))
	for _, cell := range ship.cells {
		ship.aliveCells[cell] = struct{}{}
	}

	return ship
}

func (sh *Ship) Origin() Coordinates {
	return sh.origin
}

func (sh *Ship) Length() int {
	return sh.length
}

func (sh *Ship) Orientation() Orientation {
	return sh.orientation
}

// Returns a copy of the coordinates the ship spans
func (sh *Ship) Cells() []Coordinates {
	cells := make([]Coordinates, len(sh.cells))
	copy(cells, sh.cells)
	return cells
}

func (sh *Ship) AliveCellsCount() int {
	return len(sh.aliveCells)
}

func (sh *Ship) IsAlive() bool {
	return len(sh.aliveCells) > 0
}

// Hitting the same cell twice has no further effect.
func (sh *Ship) RegisterHit(c Coordinates) {
	delete(sh.aliveCells, c)
}
