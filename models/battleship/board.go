package battleship

import (
	cerr "github.com/saeidalz13/battleship-board/internal/error"
)

// int keeps a Grid a JSON array of arrays
type CellState int

const (
	CellStateEmpty CellState = iota
	CellStateShip
	CellStateHitShip
	CellStateMiss
)

type ShotResult uint8

const (
	ShotResultMiss ShotResult = iota
	ShotResultWound
	ShotResultKill
)

// Marks an occupancy position that no ship owns
const noShip = -1

// Grid is indexed as grid[x][y]
type Grid [][]CellState

func NewGrid(width, height int) Grid {
	grid := make(Grid, width)
	for x := 0; x < width; x++ {
		grid[x] = make([]CellState, height)
	}
	return grid
}

// Board owns its cell grid, the occupancy grid pointing
// every ship cell to the index of its ship in `ships`,
// and the ships themselves. A cell has an owner in the
// occupancy grid iff its state is CellStateShip or
// CellStateHitShip.
//
// Board is not safe for concurrent use; the game
// serialises access to the boards of its players.
type Board struct {
	width     int
	height    int
	cells     Grid
	occupancy [][]int
	ships     []*Ship
}

func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, cerr.ErrBoardSize(width, height)
	}

	b := &Board{width: width, height: height}
	b.Reset()
	return b, nil
}

// Reset empties both grids and drops every ship.
func (b *Board) Reset() {
	b.cells = NewGrid(b.width, b.height)
	b.occupancy = make([][]int, b.width)
	for x := 0; x < b.width; x++ {
		b.occupancy[x] = make([]int, b.height)
		for y := 0; y < b.height; y++ {
			b.occupancy[x][y] = noShip
		}
	}
	b.ships = make([]*Ship, 0)
}

func (b *Board) Width() int {
	return b.width
}

func (b *Board) Height() int {
	return b.height
}

func (b *Board) CheckBounds(c Coordinates) bool {
	return c.X >= 0 && c.X < b.width && c.Y >= 0 && c.Y < b.height
}

// Out of bound coordinates read as empty so that
// neighbourhood logic never needs to branch on bounds.
func (b *Board) CellStateAt(c Coordinates) CellState {
	if !b.CheckBounds(c) {
		return CellStateEmpty
	}
	return b.cells[c.X][c.Y]
}

// Writing outside the board is a bug in the caller.
func (b *Board) mustSetCellState(c Coordinates, state CellState) {
	if !b.CheckBounds(c) {
		panic(cerr.ErrWriteOutOfBound(c.X, c.Y))
	}
	b.cells[c.X][c.Y] = state
}

// Returns the up to 9 cells around c (c included) that are inside the board.
func (b *Board) CellNeighborhood(c Coordinates) []Coordinates {
	neighborhood := make([]Coordinates, 0, 9)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			neighbor := c.Add(NewCoordinates(dx, dy))
			if b.CheckBounds(neighbor) {
				neighborhood = append(neighborhood, neighbor)
			}
		}
	}
	return neighborhood
}

func (b *Board) isShipFit(shipCells []Coordinates) bool {
	for _, cell := range shipCells {
		if !b.CheckBounds(cell) {
			return false
		}
	}
	return true
}

// A single emptiness check over the Moore neighbourhood
// rejects both overlapping and touching ships.
func (b *Board) isShipNeighborhoodEmpty(shipCells []Coordinates) bool {
	for _, cell := range shipCells {
		for _, neighbor := range b.CellNeighborhood(cell) {
			if b.CellStateAt(neighbor) != CellStateEmpty {
				return false
			}
		}
	}
	return true
}

// PlaceShip puts a ship of `length` cells at `origin` extending along
// `orientation`. A rejected placement returns false and leaves the
// board untouched; it is an expected outcome, not an error.
func (b *Board) PlaceShip(origin Coordinates, length int, orientation Orientation) bool {
	if length <= 0 || !orientation.IsValid() {
		return false
	}

	ship := NewShip(origin, length, orientation)
	shipCells := ship.cells
	if !b.isShipFit(shipCells) || !b.isShipNeighborhoodEmpty(shipCells) {
		return false
	}

	shipIdx := len(b.ships)
	for _, cell := range shipCells {
		b.mustSetCellState(cell, CellStateShip)
		b.occupancy[cell.X][cell.Y] = shipIdx
	}
	b.ships = append(b.ships, ship)

	return true
}

// ResolveShot fires at target. Shooting outside the board, at an empty
// cell or at a cell already shot reports a miss. Only an empty cell
// changes (to CellStateMiss); already shot cells stay as they are.
func (b *Board) ResolveShot(target Coordinates) ShotResult {
	if b.CellStateAt(target) == CellStateShip {
		ship := b.ships[b.occupancy[target.X][target.Y]]
		ship.RegisterHit(target)
		b.mustSetCellState(target, CellStateHitShip)

		if ship.IsAlive() {
			return ShotResultWound
		}
		return ShotResultKill
	}

	if b.CheckBounds(target) && b.CellStateAt(target) == CellStateEmpty {
		b.mustSetCellState(target, CellStateMiss)
	}
	return ShotResultMiss
}

func (b *Board) HasAliveShips() bool {
	for _, ship := range b.ships {
		if ship.IsAlive() {
			return true
		}
	}
	return false
}

func (b *Board) ShipsCount() int {
	return len(b.ships)
}

func (b *Board) SunkShipsCount() int {
	var sunk int
	for _, ship := range b.ships {
		if !ship.IsAlive() {
			sunk++
		}
	}
	return sunk
}

// Returns the footprint of the ship occupying c, if any
func (b *Board) ShipCellsAt(c Coordinates) ([]Coordinates, bool) {
	if !b.CheckBounds(c) {
		return nil, false
	}

	shipIdx := b.occupancy[c.X][c.Y]
	if shipIdx == noShip {
		return nil, false
	}
	return b.ships[shipIdx].Cells(), true
}

// Returns a copy of the cell grid
func (b *Board) Grid() Grid {
	grid := NewGrid(b.width, b.height)
	for x := range b.cells {
		copy(grid[x], b.cells[x])
	}
	return grid
}

// Same as Grid but ship cells not shot yet read as empty.
// This is what an opponent is allowed to see.
func (b *Board) FogOfWarGrid() Grid {
	grid := b.Grid()
	for x := range grid {
		for y := range grid[x] {
			if grid[x][y] == CellStateShip {
				grid[x][y] = CellStateEmpty
			}
		}
	}
	return grid
}
