package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrAttackFailed = "attack operation failed"
)

var (
	ErrCoordinatesOutOfBound = errors.New("coordinates are out of board bound")
	ErrInvalidBoardSize      = errors.New("board width and height must be positive")
)

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s", gameUuid)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session is nil, id: %s", sessionId)
}

func ErrInvalidGameDifficulty() error {
	return fmt.Errorf("game difficulty must be easy (0), normal (1) or hard (2)")
}

func ErrGameIsFull(gameUuid string) error {
	return fmt.Errorf("game already has two players, uuid: %s", gameUuid)
}

func ErrWriteOutOfBound(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrCoordinatesOutOfBound, x, y)
}

func ErrBoardSize(width, height int) error {
	return fmt.Errorf("%w\twidth: %d\theight: %d", ErrInvalidBoardSize, width, height)
}

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("incoming x or y is out of game grid bound\tx: %d\ty: %d", x, y)
}

func ErrShipLengthNotInFleet(length int) error {
	return fmt.Errorf("no ship of this length is left to place in the fleet\tlength: %d", length)
}

func ErrInvalidOrientation(orientation uint8) error {
	return fmt.Errorf("orientation must be horizontal (0) or vertical (1)\tgot: %d", orientation)
}

func ErrPlayerAlreadyReady() error {
	return fmt.Errorf("player is ready; ships cannot be placed anymore")
}

func ErrFleetNotPlaced(remaining int) error {
	return fmt.Errorf("all ships must be placed before getting ready\tremaining: %d", remaining)
}

func ErrGameNotStarted() error {
	return fmt.Errorf("both players must be ready before attacking")
}

func ErrGameFinished() error {
	return fmt.Errorf("game is already finished")
}

func ErrNotPlayerTurn() error {
	return fmt.Errorf("it is not this player's turn")
}

func ErrNoGameInSession() error {
	return fmt.Errorf("session does not belong to any game yet")
}

func ErrRematchNotAllowed() error {
	return fmt.Errorf("rematch is only possible after the match is over")
}

func ErrCodeAbsent() error {
	return fmt.Errorf("incoming req payload must contain 'code' field")
}
