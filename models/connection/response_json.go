package connection

import (
	mb "github.com/saeidalz13/battleship-board/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid string `json:"game_uuid"`
	HostUuid string `json:"host_uuid"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Fleet    []int  `json:"fleet"`
}

type RespJoinGame struct {
	GameUuid   string `json:"game_uuid"`
	PlayerUuid string `json:"player_uuid"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Fleet      []int  `json:"fleet"`
}

type RespPlaceShip struct {
	IsPlaced       bool  `json:"is_placed"`
	RemainingFleet []int `json:"remaining_fleet"`
}

type RespReady struct {
	DefenceGrid mb.Grid `json:"defence_grid"`
}

type RespAttack struct {
	X                         int              `json:"x"`
	Y                         int              `json:"y"`
	ShotResult                mb.ShotResult    `json:"shot_result"`
	IsTurn                    bool             `json:"is_turn"`
	DefenderSunkenShips       int              `json:"defender_sunken_ships"`
	DefenderSunkenShipsCoords []mb.Coordinates `json:"defender_sunken_ships_coords,omitempty"`
}

type RespEndGame struct {
	PlayerMatchStatus int `json:"player_match_status"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
