package battleship

const (
	GameDifficultyEasy uint8 = iota
	GameDifficultyNormal
	GameDifficultyHard
)

const (
	GridSizeEasy   int = 6
	GridSizeNormal int = 8
	GridSizeHard   int = 10
)

// Rules describe the board size and the ship lengths
// each player has to place for a game difficulty.
type Rules struct {
	Width  int
	Height int
	Fleet  []int
}

func IsDifficultyValid(difficulty uint8) bool {
	return difficulty == GameDifficultyEasy || difficulty == GameDifficultyNormal || difficulty == GameDifficultyHard
}

func NewRules(difficulty uint8) Rules {
	switch difficulty {
	case GameDifficultyEasy:
		return Rules{Width: GridSizeEasy, Height: GridSizeEasy, Fleet: []int{4, 3, 2}}
	case GameDifficultyNormal:
		return Rules{Width: GridSizeNormal, Height: GridSizeNormal, Fleet: []int{4, 3, 2, 2}}
	default:
		return Rules{Width: GridSizeHard, Height: GridSizeHard, Fleet: []int{4, 3, 3, 2, 2, 2, 1, 1, 1, 1}}
	}
}
