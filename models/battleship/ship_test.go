package battleship

import (
	"reflect"
	"testing"
)

func TestNewShipCells(t *testing.T) {
	tests := []struct {
		name          string
		origin        Coordinates
		length        int
		orientation   Orientation
		expectedCells []Coordinates
	}{
		{
			name:          "horizontal",
			origin:        NewCoordinates(2, 3),
			length:        3,
			orientation:   OrientationHorizontal,
			expectedCells: []Coordinates{{2, 3}, {3, 3}, {4, 3}},
		},
		{
			name:          "vertical",
			origin:        NewCoordinates(2, 3),
			length:        2,
			orientation:   OrientationVertical,
			expectedCells: []Coordinates{{2, 3}, {2, 4}},
		},
		{
			name:          "single cell",
			origin:        NewCoordinates(0, 0),
			length:        1,
			orientation:   OrientationVertical,
			expectedCells: []Coordinates{{0, 0}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ship := NewShip(test.origin, test.length, test.orientation)

			if !reflect.DeepEqual(ship.Cells(), test.expectedCells) {
				t.Fatalf("expected cells: %v\tgot: %v", test.expectedCells, ship.Cells())
			}
			if ship.AliveCellsCount() != test.length {
				t.Fatalf("expected alive cells: %d\tgot: %d", test.length, ship.AliveCellsCount())
			}
			if !ship.IsAlive() {
				t.Fatal("a new ship must be alive")
			}
		})
	}
}

func TestShipRegisterHit(t *testing.T) {
	ship := NewShip(NewCoordinates(0, 0), 2, OrientationHorizontal)

	ship.RegisterHit(NewCoordinates(0, 0))
	if !ship.IsAlive() || ship.AliveCellsCount() != 1 {
		t.Fatalf("expected ship alive with 1 cell\tgot: alive %t, cells %d", ship.IsAlive(), ship.AliveCellsCount())
	}

	// hitting the same cell again changes nothing
	ship.RegisterHit(NewCoordinates(0, 0))
	if ship.AliveCellsCount() != 1 {
		t.Fatalf("expected alive cells: 1\tgot: %d", ship.AliveCellsCount())
	}

	ship.RegisterHit(NewCoordinates(1, 0))
	if ship.IsAlive() {
		t.Fatal("ship must be sunk after every cell is hit")
	}
}

func TestShipCellsIsCopy(t *testing.T) {
	ship := NewShip(NewCoordinates(0, 0), 2, OrientationHorizontal)
	cells := ship.Cells()
	cells[0] = NewCoordinates(9, 9)

	if ship.Cells()[0] != NewCoordinates(0, 0) {
		t.Fatal("mutating the returned cells must not change the ship")
	}
}

func TestCoordinatesArithmetic(t *testing.T) {
	c := NewCoordinates(1, 2)

	if got := c.Add(NewCoordinates(-1, 3)); got != NewCoordinates(0, 5) {
		t.Fatalf("expected: (0, 5)\tgot: %s", got)
	}
	if got := c.Mult(3); got != NewCoordinates(3, 6) {
		t.Fatalf("expected: (3, 6)\tgot: %s", got)
	}
}
