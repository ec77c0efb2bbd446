package api

import (
	"encoding/json"

	mb "github.com/saeidalz13/battleship-board/models/battleship"
	mc "github.com/saeidalz13/battleship-board/models/connection"

	cerr "github.com/saeidalz13/battleship-board/internal/error"
)

// Every incoming valid request carries a payload of the form
// mc.Message[T]. The handlers never return an error directly;
// failures are reported to the client in Message.Error.
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	var req Request
	if len(payload) != 0 {
		req.payload = payload[0]
	}
	return req
}

func (r Request) HandleCreateGame(gm mb.GameManager, sessionId string) (*mb.Game, *mb.Player, mc.Message[mc.RespCreateGame]) {
	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)

	var reqCreateGame mc.Message[mc.ReqCreateGame]
	if err := json.Unmarshal(r.payload, &reqCreateGame); err != nil {
		resp.AddError(err.Error(), "failed to unmarshal create game request")
		return nil, nil, resp
	}

	game, err := gm.CreateGame(reqCreateGame.Payload.GameDifficulty)
	if err != nil {
		resp.AddError(err.Error(), "failed to create game")
		return nil, nil, resp
	}
	hostPlayer := game.CreateHostPlayer(sessionId)

	rules := game.Rules()
	resp.AddPayload(mc.RespCreateGame{
		GameUuid: game.Uuid(),
		HostUuid: hostPlayer.Uuid(),
		Width:    rules.Width,
		Height:   rules.Height,
		Fleet:    append([]int(nil), rules.Fleet...),
	})
	return game, hostPlayer, resp
}

// Join user sends the game uuid and if this game exists,
// a new join player is created and added to the game
func (r Request) HandleJoinPlayer(gm mb.GameManager, sessionId string) (*mb.Game, *mb.Player, mc.Message[mc.RespJoinGame]) {
	resp := mc.NewMessage[mc.RespJoinGame](mc.CodeJoinGame)

	var reqJoinGame mc.Message[mc.ReqJoinGame]
	if err := json.Unmarshal(r.payload, &reqJoinGame); err != nil {
		resp.AddError(err.Error(), "failed to unmarshal join game request")
		return nil, nil, resp
	}

	game, joinPlayer, err := gm.AddJoinPlayer(reqJoinGame.Payload.GameUuid, sessionId)
	if err != nil {
		resp.AddError(err.Error(), "failed to join the player")
		return nil, nil, resp
	}

	rules := game.Rules()
	resp.AddPayload(mc.RespJoinGame{
		GameUuid:   game.Uuid(),
		PlayerUuid: joinPlayer.Uuid(),
		Width:      rules.Width,
		Height:     rules.Height,
		Fleet:      append([]int(nil), rules.Fleet...),
	})
	return game, joinPlayer, resp
}

// A placement rejected by the board is not an error; the
// client receives IsPlaced false and picks another spot.
func (r Request) HandlePlaceShip(game *mb.Game, player *mb.Player) mc.Message[mc.RespPlaceShip] {
	resp := mc.NewMessage[mc.RespPlaceShip](mc.CodePlaceShip)
	if game == nil || player == nil {
		resp.AddError(cerr.ErrNoGameInSession().Error(), "failed to place ship")
		return resp
	}

	var reqPlaceShip mc.Message[mc.ReqPlaceShip]
	if err := json.Unmarshal(r.payload, &reqPlaceShip); err != nil {
		resp.AddError(err.Error(), "failed to unmarshal place ship request")
		return resp
	}

	p := reqPlaceShip.Payload
	isPlaced, remainingFleet, err := game.PlaceShip(player, mb.NewCoordinates(p.X, p.Y), p.Length, mb.Orientation(p.Orientation))
	if err != nil {
		resp.AddError(err.Error(), "failed to place ship")
		return resp
	}

	resp.AddPayload(mc.RespPlaceShip{IsPlaced: isPlaced, RemainingFleet: remainingFleet})
	return resp
}

// Player is ready once every ship of the fleet is on the board
func (r Request) HandleReadyPlayer(game *mb.Game, player *mb.Player) mc.Message[mc.RespReady] {
	resp := mc.NewMessage[mc.RespReady](mc.CodeReady)
	if game == nil || player == nil {
		resp.AddError(cerr.ErrNoGameInSession().Error(), "failed to make the player ready")
		return resp
	}

	defenceGrid, err := game.SetPlayerReady(player)
	if err != nil {
		resp.AddError(err.Error(), "failed to make the player ready")
		return resp
	}

	resp.AddPayload(mc.RespReady{DefenceGrid: defenceGrid})
	return resp
}

func (r Request) HandleAttack(game *mb.Game, attacker *mb.Player) (mc.Message[mc.RespAttack], mb.AttackOutcome) {
	resp := mc.NewMessage[mc.RespAttack](mc.CodeAttack)
	if game == nil || attacker == nil {
		resp.AddError(cerr.ErrNoGameInSession().Error(), cerr.ConstErrAttackFailed)
		return resp, mb.AttackOutcome{}
	}

	var reqAttack mc.Message[mc.ReqAttack]
	if err := json.Unmarshal(r.payload, &reqAttack); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp, mb.AttackOutcome{}
	}

	x, y := reqAttack.Payload.X, reqAttack.Payload.Y
	outcome, err := game.Attack(attacker, mb.NewCoordinates(x, y))
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp, mb.AttackOutcome{}
	}

	// attacker just played; the defender copy flips this
	resp.AddPayload(mc.RespAttack{
		X:                         x,
		Y:                         y,
		ShotResult:                outcome.Result,
		IsTurn:                    false,
		DefenderSunkenShips:       outcome.DefenderSunkShips,
		DefenderSunkenShipsCoords: outcome.SunkShipCells,
	})
	return resp, outcome
}

func (r Request) HandleCallRematch(game *mb.Game) (mc.Message[mc.NoPayload], error) {
	if game == nil {
		return mc.Message[mc.NoPayload]{}, cerr.ErrNoGameInSession()
	}
	if !game.IsFinished() {
		return mc.Message[mc.NoPayload]{}, cerr.ErrRematchNotAllowed()
	}
	return mc.NewMessage[mc.NoPayload](mc.CodeRematchCall), nil
}

// Both players get the same rematch message once the boards are reset
func (r Request) HandleAcceptRematchCall(game *mb.Game) (mc.Message[mc.RespCreateGame], error) {
	if game == nil {
		return mc.Message[mc.RespCreateGame]{}, cerr.ErrNoGameInSession()
	}
	if err := game.Reset(); err != nil {
		return mc.Message[mc.RespCreateGame]{}, err
	}

	rules := game.Rules()
	msg := mc.NewMessage[mc.RespCreateGame](mc.CodeRematch)
	msg.AddPayload(mc.RespCreateGame{
		GameUuid: game.Uuid(),
		HostUuid: game.FetchPlayer(true).Uuid(),
		Width:    rules.Width,
		Height:   rules.Height,
		Fleet:    append([]int(nil), rules.Fleet...),
	})
	return msg, nil
}
