package stock101

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StateRepainting  GameStateType = "repainting"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// GameSnapshot captures the complete game state for determinism testing
// and replay.
type GameSnapshot struct {
	Tick    uint64
	Score   int
	Heap    int
	Goal    int
	Board   string // Board.String() of the live board
	Cursor  Pos
	History int
	Reason  string
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() GameSnapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.state.Over():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.pending != nil:
		state = StateAnimating
	case g.state.RepaintMode():
		state = StateRepainting
	}

	return GameSnapshot{
		Tick:    g.tick,
		Score:   g.state.Score(),
		Heap:    g.state.Heap(),
		Goal:    g.state.Goal(),
		Board:   g.state.board.String(),
		Cursor:  g.cursor,
		History: g.state.HistoryLen(),
		Reason:  g.state.Reason().String(),
		State:   state,
	}
}
