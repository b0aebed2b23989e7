package stock101

// GameOverEvent carries the final figures at the moment a game ends.
// Heap and Score are what the host persists.
type GameOverEvent struct {
	Reason EndReason
	Score  int
	Goal   int
	Heap   int
}

// Observer receives state changes. Calls are synchronous and made after the
// corresponding state transition is complete; the core ignores what
// observers do with them.
type Observer interface {
	BoardChanged(b *Board)
	ScoreChanged(score int)
	GoalAchieved(goal int)
	GameOver(ev GameOverEvent)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) BoardChanged(*Board)    {}
func (NopObserver) ScoreChanged(int)       {}
func (NopObserver) GoalAchieved(int)       {}
func (NopObserver) GameOver(GameOverEvent) {}

// ObserverFuncs adapts optional callbacks to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnBoardChanged func(b *Board)
	OnScoreChanged func(score int)
	OnGoalAchieved func(goal int)
	OnGameOver     func(ev GameOverEvent)
}

func (f ObserverFuncs) BoardChanged(b *Board) {
	if f.OnBoardChanged != nil {
		f.OnBoardChanged(b)
	}
}

func (f ObserverFuncs) ScoreChanged(score int) {
	if f.OnScoreChanged != nil {
		f.OnScoreChanged(score)
	}
}

func (f ObserverFuncs) GoalAchieved(goal int) {
	if f.OnGoalAchieved != nil {
		f.OnGoalAchieved(goal)
	}
}

func (f ObserverFuncs) GameOver(ev GameOverEvent) {
	if f.OnGameOver != nil {
		f.OnGameOver(ev)
	}
}

var (
	_ Observer = NopObserver{}
	_ Observer = ObserverFuncs{}
)
