package battleship

import (
	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-board/internal/error"
)

const (
	PlayerMatchStatusLost      = -1
	PlayerMatchStatusUndefined = 0
	PlayerMatchStatusWon       = 1
)

type Player struct {
	uuid        string
	sessionId   string
	isHost      bool
	isTurn      bool
	isReady     bool
	matchStatus int
	board       *Board

	// ship lengths still waiting to be placed
	remainingFleet []int
}

func NewPlayer(isHost, isTurn bool, sessionId string, rules Rules) *Player {
	// rules sizes are positive constants
	board, err := NewBoard(rules.Width, rules.Height)
	if err != nil {
		panic(err)
	}

	p := &Player{
		uuid:        uuid.NewString()[:10],
		sessionId:   sessionId,
		isHost:      isHost,
		isTurn:      isTurn,
		matchStatus: PlayerMatchStatusUndefined,
		board:       board,
	}
	p.remainingFleet = append(make([]int, 0, len(rules.Fleet)), rules.Fleet...)
	return p
}

func (p *Player) Uuid() string {
	return p.uuid
}

func (p *Player) SessionId() string {
	return p.sessionId
}

func (p *Player) IsHost() bool {
	return p.isHost
}

func (p *Player) IsTurn() bool {
	return p.isTurn
}

func (p *Player) IsReady() bool {
	return p.isReady
}

func (p *Player) MatchStatus() int {
	return p.matchStatus
}

func (p *Player) IsMatchOver() bool {
	return p.matchStatus != PlayerMatchStatusUndefined
}

func (p *Player) Board() *Board {
	return p.board
}

func (p *Player) RemainingFleet() []int {
	fleet := make([]int, len(p.remainingFleet))
	copy(fleet, p.remainingFleet)
	return fleet
}

// placeShip returns false without error when the board rejects
// the placement; the player is expected to pick another spot.
func (p *Player) placeShip(origin Coordinates, length int, orientation Orientation) (bool, error) {
	if p.isReady {
		return false, cerr.ErrPlayerAlreadyReady()
	}
	if !orientation.IsValid() {
		return false, cerr.ErrInvalidOrientation(uint8(orientation))
	}

	fleetIdx := -1
	for i, l := range p.remainingFleet {
		if l == length {
			fleetIdx = i
			break
		}
	}
	if fleetIdx == -1 {
		return false, cerr.ErrShipLengthNotInFleet(length)
	}

	if !p.board.PlaceShip(origin, length, orientation) {
		return false, nil
	}

	p.remainingFleet = append(p.remainingFleet[:fleetIdx], p.remainingFleet[fleetIdx+1:]...)
	return true, nil
}

func (p *Player) setReady() error {
	if len(p.remainingFleet) != 0 {
		return cerr.ErrFleetNotPlaced(len(p.remainingFleet))
	}
	p.isReady = true
	return nil
}

func (p *Player) reset(isTurn bool, rules Rules) {
	p.board.Reset()
	p.remainingFleet = append(make([]int, 0, len(rules.Fleet)), rules.Fleet...)
	p.isReady = false
	p.isTurn = isTurn
	p.matchStatus = PlayerMatchStatusUndefined
}
