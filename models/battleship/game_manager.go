package battleship

import (
	"log"
	"sync"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-board/internal/error"
)

type GameManager interface {
	CreateGame(difficulty uint8) (*Game, error)
	FetchGame(gameUuid string) (*Game, error)
	AddJoinPlayer(gameUuid, sessionId string) (*Game, *Player, error)
	TerminateGame(gameUuid string)
}

type BattleshipGameManager struct {
	games map[string]*Game
	mu    sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

func NewBattleshipGameManager() *BattleshipGameManager {
	return &BattleshipGameManager{
		games: make(map[string]*Game, 10),
	}
}

func (bgm *BattleshipGameManager) CreateGame(difficulty uint8) (*Game, error) {
	if !IsDifficultyValid(difficulty) {
		return nil, cerr.ErrInvalidGameDifficulty()
	}

	game := newGame(difficulty, uuid.NewString()[:6])

	bgm.mu.Lock()
	bgm.games[game.Uuid()] = game
	bgm.mu.Unlock()

	return game, nil
}

func (bgm *BattleshipGameManager) FetchGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) AddJoinPlayer(gameUuid, sessionId string) (*Game, *Player, error) {
	game, err := bgm.FetchGame(gameUuid)
	if err != nil {
		return nil, nil, err
	}

	joinPlayer, err := game.CreateJoinPlayer(sessionId)
	if err != nil {
		return nil, nil, err
	}

	return game, joinPlayer, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	if _, prs := bgm.games[gameUuid]; prs {
		delete(bgm.games, gameUuid)
		log.Printf("game terminated: %s\n", gameUuid)
	}
}
