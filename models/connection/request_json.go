package connection

type ReqCreateGame struct {
	GameDifficulty uint8 `json:"game_difficulty"`
}

type ReqJoinGame struct {
	GameUuid string `json:"game_uuid"`
}

type ReqPlaceShip struct {
	X           int   `json:"x"`
	Y           int   `json:"y"`
	Length      int   `json:"length"`
	Orientation uint8 `json:"orientation"`
}

type ReqAttack struct {
	X int `json:"x"`
	Y int `json:"y"`
}
