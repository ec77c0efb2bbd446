package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID
	CodeCreateGame
	CodeJoinGame
	CodeSelectGrid
	CodePlaceShip
	CodeReady
	CodeStartGame
	CodeAttack
	CodeEndGame
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent

	CodeOtherPlayerDisconnected

	// Ask the server to message the other player
	// if they want a rematch too
	CodeRematchCall

	// Other player also wants a rematch
	CodeRematchCallAccepted
	CodeRematchCallRejected

	// Sent to both players once boards are reset
	CodeRematch
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
