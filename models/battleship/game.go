package battleship

import (
	"sync"

	cerr "github.com/saeidalz13/battleship-board/internal/error"
)

type Game struct {
	uuid       string
	difficulty uint8
	rules      Rules
	isFinished bool
	hostPlayer *Player
	joinPlayer *Player

	// every board mutation of both players goes through mu
	mu sync.Mutex
}

// AttackOutcome is what an attack did to the defender's board.
type AttackOutcome struct {
	Result ShotResult

	// footprint of the ship sunk by this attack, nil otherwise
	SunkShipCells []Coordinates

	DefenderSunkShips int
	IsMatchOver       bool
}

func newGame(difficulty uint8, gameUuid string) *Game {
	return &Game{
		uuid:       gameUuid,
		difficulty: difficulty,
		rules:      NewRules(difficulty),
	}
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) Difficulty() uint8 {
	return g.difficulty
}

func (g *Game) Rules() Rules {
	return g.rules
}

func (g *Game) IsFinished() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isFinished
}

// Host always starts the match
func (g *Game) CreateHostPlayer(sessionId string) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.hostPlayer = NewPlayer(true, true, sessionId, g.rules)
	return g.hostPlayer
}

func (g *Game) CreateJoinPlayer(sessionId string) (*Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.joinPlayer != nil {
		return nil, cerr.ErrGameIsFull(g.uuid)
	}
	g.joinPlayer = NewPlayer(false, false, sessionId, g.rules)
	return g.joinPlayer, nil
}

func (g *Game) FetchPlayer(isHost bool) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	if isHost {
		return g.hostPlayer
	}
	return g.joinPlayer
}

func (g *Game) GetOtherPlayer(p *Player) *Player {
	return g.FetchPlayer(!p.IsHost())
}

// PlaceShip also returns the fleet p still has to place, read
// under the same lock as the placement.
func (g *Game) PlaceShip(p *Player, origin Coordinates, length int, orientation Orientation) (bool, []int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	isPlaced, err := p.placeShip(origin, length, orientation)
	if err != nil {
		return false, nil, err
	}
	return isPlaced, p.RemainingFleet(), nil
}

// SetPlayerReady returns a copy of the defence grid of p. Once both
// players are ready the opponent may attack right away, so the copy
// is taken before mu is released.
func (g *Game) SetPlayerReady(p *Player) (Grid, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := p.setReady(); err != nil {
		return nil, err
	}
	return p.board.Grid(), nil
}

func (g *Game) IsReadyToStart() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isReadyToStart()
}

func (g *Game) isReadyToStart() bool {
	return g.hostPlayer != nil && g.joinPlayer != nil && g.hostPlayer.isReady && g.joinPlayer.isReady
}

// Attack fires at target on the board of the other player.
// After a valid attack the turn goes to the defender. When the
// defender has no alive ship left the match is over.
func (g *Game) Attack(attacker *Player, target Coordinates) (AttackOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.isFinished {
		return AttackOutcome{}, cerr.ErrGameFinished()
	}
	if !g.isReadyToStart() {
		return AttackOutcome{}, cerr.ErrGameNotStarted()
	}
	if !attacker.isTurn {
		return AttackOutcome{}, cerr.ErrNotPlayerTurn()
	}

	defender := g.joinPlayer
	if !attacker.isHost {
		defender = g.hostPlayer
	}

	if !defender.board.CheckBounds(target) {
		return AttackOutcome{}, cerr.ErrXorYOutOfGridBound(target.X, target.Y)
	}

	outcome := AttackOutcome{Result: defender.board.ResolveShot(target)}
	if outcome.Result == ShotResultKill {
		outcome.SunkShipCells, _ = defender.board.ShipCellsAt(target)
	}
	outcome.DefenderSunkShips = defender.board.SunkShipsCount()

	attacker.isTurn = false
	defender.isTurn = true

	if !defender.board.HasAliveShips() {
		attacker.matchStatus = PlayerMatchStatusWon
		defender.matchStatus = PlayerMatchStatusLost
		g.isFinished = true
		outcome.IsMatchOver = true
	}

	return outcome, nil
}

// Reset prepares both players for a rematch on empty boards.
func (g *Game) Reset() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isFinished {
		return cerr.ErrRematchNotAllowed()
	}

	g.hostPlayer.reset(true, g.rules)
	g.joinPlayer.reset(false, g.rules)
	g.isFinished = false
	return nil
}
