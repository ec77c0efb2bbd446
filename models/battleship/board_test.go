package battleship

import (
	"errors"
	"reflect"
	"testing"

	cerr "github.com/saeidalz13/battleship-board/internal/error"
)

type placement struct {
	origin      Coordinates
	length      int
	orientation Orientation
}

func mustNewBoard(t *testing.T, width, height int) *Board {
	t.Helper()

	board, err := NewBoard(width, height)
	if err != nil {
		t.Fatal(err)
	}
	return board
}

func TestNewBoardInvalidSize(t *testing.T) {
	sizes := [][2]int{{0, 10}, {10, 0}, {-1, 5}}

	for _, size := range sizes {
		if _, err := NewBoard(size[0], size[1]); !errors.Is(err, cerr.ErrInvalidBoardSize) {
			t.Fatalf("expected error: %v\tgot: %v", cerr.ErrInvalidBoardSize, err)
		}
	}
}

func TestPlaceShipInsideBounds(t *testing.T) {
	tests := []struct {
		name     string
		ship     placement
		expected bool
	}{
		{name: "origin horizontal", ship: placement{NewCoordinates(0, 0), 5, OrientationHorizontal}, expected: true},
		{name: "touching right edge", ship: placement{NewCoordinates(95, 9), 5, OrientationHorizontal}, expected: true},
		{name: "past right edge", ship: placement{NewCoordinates(99, 9), 2, OrientationHorizontal}, expected: false},
		{name: "past bottom edge", ship: placement{NewCoordinates(99, 9), 2, OrientationVertical}, expected: false},
		{name: "negative origin", ship: placement{NewCoordinates(-1, 0), 2, OrientationHorizontal}, expected: false},
		{name: "zero length", ship: placement{NewCoordinates(50, 5), 0, OrientationHorizontal}, expected: false},
		{name: "invalid orientation", ship: placement{NewCoordinates(50, 5), 2, Orientation(7)}, expected: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := mustNewBoard(t, 100, 10)

			got := board.PlaceShip(test.ship.origin, test.ship.length, test.ship.orientation)
			if got != test.expected {
				t.Fatalf("expected placement: %t\tgot: %t", test.expected, got)
			}
		})
	}
}

func TestPlaceShipNeighborhood(t *testing.T) {
	first := placement{NewCoordinates(0, 0), 3, OrientationHorizontal}

	tests := []struct {
		name     string
		second   placement
		expected bool
	}{
		{name: "one column apart", second: placement{NewCoordinates(4, 0), 2, OrientationHorizontal}, expected: true},
		{name: "one row apart", second: placement{NewCoordinates(0, 2), 3, OrientationHorizontal}, expected: true},
		{name: "overlapping", second: placement{NewCoordinates(1, 0), 2, OrientationVertical}, expected: false},
		{name: "touching side", second: placement{NewCoordinates(3, 0), 2, OrientationHorizontal}, expected: false},
		{name: "touching below", second: placement{NewCoordinates(1, 1), 1, OrientationHorizontal}, expected: false},
		{name: "touching diagonally", second: placement{NewCoordinates(3, 1), 2, OrientationVertical}, expected: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := mustNewBoard(t, 100, 10)
			if !board.PlaceShip(first.origin, first.length, first.orientation) {
				t.Fatal("first ship must be placed")
			}
			before := board.Grid()

			got := board.PlaceShip(test.second.origin, test.second.length, test.second.orientation)
			if got != test.expected {
				t.Fatalf("expected placement: %t\tgot: %t", test.expected, got)
			}

			if !got {
				if !reflect.DeepEqual(before, board.Grid()) {
					t.Fatal("rejected placement must not change the grid")
				}
				if board.ShipsCount() != 1 {
					t.Fatalf("expected ships: 1\tgot: %d", board.ShipsCount())
				}
			}
		})
	}
}

func TestPlaceShipMarksCells(t *testing.T) {
	board := mustNewBoard(t, 10, 10)
	board.PlaceShip(NewCoordinates(2, 2), 3, OrientationVertical)

	for _, c := range []Coordinates{{2, 2}, {2, 3}, {2, 4}} {
		if board.CellStateAt(c) != CellStateShip {
			t.Fatalf("expected ship at %s\tgot: %d", c, board.CellStateAt(c))
		}
		cells, ok := board.ShipCellsAt(c)
		if !ok || len(cells) != 3 {
			t.Fatalf("expected a 3 cells ship at %s\tgot: %v", c, cells)
		}
	}

	if board.CellStateAt(NewCoordinates(2, 5)) != CellStateEmpty {
		t.Fatal("cell after the ship must stay empty")
	}
	if _, ok := board.ShipCellsAt(NewCoordinates(3, 3)); ok {
		t.Fatal("empty cell must not have an owner")
	}
}

func TestCellNeighborhood(t *testing.T) {
	board := mustNewBoard(t, 5, 5)

	tests := []struct {
		name     string
		cell     Coordinates
		expected int
	}{
		{name: "corner", cell: NewCoordinates(0, 0), expected: 4},
		{name: "edge", cell: NewCoordinates(2, 4), expected: 6},
		{name: "center", cell: NewCoordinates(2, 2), expected: 9},
		{name: "outside next to corner", cell: NewCoordinates(-1, -1), expected: 1},
		{name: "far outside", cell: NewCoordinates(10, 10), expected: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			neighborhood := board.CellNeighborhood(test.cell)
			if len(neighborhood) != test.expected {
				t.Fatalf("expected neighbours: %d\tgot: %d (%v)", test.expected, len(neighborhood), neighborhood)
			}
			for _, c := range neighborhood {
				if !board.CheckBounds(c) {
					t.Fatalf("neighbour out of bounds: %s", c)
				}
			}
		})
	}
}

func TestResolveShotKillSingleCell(t *testing.T) {
	board := mustNewBoard(t, 100, 10)
	board.PlaceShip(NewCoordinates(0, 0), 1, OrientationHorizontal)

	if got := board.ResolveShot(NewCoordinates(0, 0)); got != ShotResultKill {
		t.Fatalf("expected shot result: %d\tgot: %d", ShotResultKill, got)
	}
	if got := board.CellStateAt(NewCoordinates(0, 0)); got != CellStateHitShip {
		t.Fatalf("expected cell state: %d\tgot: %d", CellStateHitShip, got)
	}
}

func TestResolveShotWoundThenKill(t *testing.T) {
	board := mustNewBoard(t, 100, 10)
	board.PlaceShip(NewCoordinates(0, 0), 2, OrientationHorizontal)

	if got := board.ResolveShot(NewCoordinates(0, 0)); got != ShotResultWound {
		t.Fatalf("expected shot result: %d\tgot: %d", ShotResultWound, got)
	}
	if got := board.CellStateAt(NewCoordinates(0, 0)); got != CellStateHitShip {
		t.Fatalf("expected cell state: %d\tgot: %d", CellStateHitShip, got)
	}
	if got := board.CellStateAt(NewCoordinates(1, 0)); got != CellStateShip {
		t.Fatalf("expected cell state: %d\tgot: %d", CellStateShip, got)
	}
	if got := board.ResolveShot(NewCoordinates(1, 0)); got != ShotResultKill {
		t.Fatalf("expected shot result: %d\tgot: %d", ShotResultKill, got)
	}
	if board.SunkShipsCount() != 1 {
		t.Fatalf("expected sunk ships: 1\tgot: %d", board.SunkShipsCount())
	}
}

func TestResolveShotMissPersistence(t *testing.T) {
	board := mustNewBoard(t, 10, 10)
	target := NewCoordinates(5, 5)

	for i := 0; i < 2; i++ {
		if got := board.ResolveShot(target); got != ShotResultMiss {
			t.Fatalf("shot %d: expected shot result: %d\tgot: %d", i, ShotResultMiss, got)
		}
		if got := board.CellStateAt(target); got != CellStateMiss {
			t.Fatalf("shot %d: expected cell state: %d\tgot: %d", i, CellStateMiss, got)
		}
	}
}

// Shooting a cell that was already hit reports a miss, even
// when the ship it belongs to is already sunk.
func TestResolveShotOnHitCellReportsMiss(t *testing.T) {
	board := mustNewBoard(t, 10, 10)
	board.PlaceShip(NewCoordinates(0, 0), 2, OrientationHorizontal)

	board.ResolveShot(NewCoordinates(0, 0))
	if got := board.ResolveShot(NewCoordinates(0, 0)); got != ShotResultMiss {
		t.Fatalf("wounded ship: expected shot result: %d\tgot: %d", ShotResultMiss, got)
	}

	board.ResolveShot(NewCoordinates(1, 0))
	if got := board.ResolveShot(NewCoordinates(1, 0)); got != ShotResultMiss {
		t.Fatalf("sunk ship: expected shot result: %d\tgot: %d", ShotResultMiss, got)
	}
	if got := board.CellStateAt(NewCoordinates(1, 0)); got != CellStateHitShip {
		t.Fatalf("expected cell state: %d\tgot: %d", CellStateHitShip, got)
	}
}

func TestResolveShotOutOfBounds(t *testing.T) {
	board := mustNewBoard(t, 10, 10)
	before := board.Grid()

	for _, target := range []Coordinates{{-1, 0}, {10, 3}, {3, 10}} {
		if got := board.ResolveShot(target); got != ShotResultMiss {
			t.Fatalf("expected shot result: %d\tgot: %d", ShotResultMiss, got)
		}
		if got := board.CellStateAt(target); got != CellStateEmpty {
			t.Fatalf("out of bound cell must read empty\tgot: %d", got)
		}
	}

	if !reflect.DeepEqual(before, board.Grid()) {
		t.Fatal("out of bound shots must not change the grid")
	}
}

func TestHasAliveShipsIsMonotonic(t *testing.T) {
	board := mustNewBoard(t, 10, 10)
	if board.HasAliveShips() {
		t.Fatal("board without ships has no alive ship")
	}

	board.PlaceShip(NewCoordinates(0, 0), 2, OrientationHorizontal)
	board.PlaceShip(NewCoordinates(5, 5), 1, OrientationVertical)

	shots := []Coordinates{{0, 0}, {9, 9}, {1, 0}, {5, 5}, {5, 5}, {0, 0}, {3, 3}}
	expected := []bool{true, true, true, false, false, false, false}

	for i, shot := range shots {
		board.ResolveShot(shot)
		if board.HasAliveShips() != expected[i] {
			t.Fatalf("after shot %d at %s: expected alive ships: %t\tgot: %t", i, shot, expected[i], board.HasAliveShips())
		}
	}
}

func TestWriteOutOfBoundPanics(t *testing.T) {
	board := mustNewBoard(t, 3, 3)

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, cerr.ErrCoordinatesOutOfBound) {
			t.Fatalf("expected panic with: %v\tgot: %v", cerr.ErrCoordinatesOutOfBound, r)
		}
	}()

	board.mustSetCellState(NewCoordinates(3, 0), CellStateMiss)
}

func TestFogOfWarGrid(t *testing.T) {
	board := mustNewBoard(t, 4, 4)
	board.PlaceShip(NewCoordinates(0, 0), 2, OrientationVertical)
	board.ResolveShot(NewCoordinates(0, 0))
	board.ResolveShot(NewCoordinates(3, 3))

	grid := board.FogOfWarGrid()
	if grid[0][0] != CellStateHitShip {
		t.Fatalf("expected hit ship at (0, 0)\tgot: %d", grid[0][0])
	}
	if grid[0][1] != CellStateEmpty {
		t.Fatalf("unrevealed ship cell must read empty\tgot: %d", grid[0][1])
	}
	if grid[3][3] != CellStateMiss {
		t.Fatalf("expected miss at (3, 3)\tgot: %d", grid[3][3])
	}
	if board.CellStateAt(NewCoordinates(0, 1)) != CellStateShip {
		t.Fatal("fog of war must not change the board")
	}
}

func TestBoardReset(t *testing.T) {
	board := mustNewBoard(t, 4, 4)
	board.PlaceShip(NewCoordinates(0, 0), 2, OrientationVertical)
	board.ResolveShot(NewCoordinates(0, 0))

	board.Reset()

	if !reflect.DeepEqual(board.Grid(), NewGrid(4, 4)) {
		t.Fatal("grid must be empty after reset")
	}
	if board.ShipsCount() != 0 || board.HasAliveShips() {
		t.Fatal("ships must be dropped after reset")
	}
	if !board.PlaceShip(NewCoordinates(0, 0), 4, OrientationHorizontal) {
		t.Fatal("ship must be placeable where the old one was")
	}
}
