package stock101

import "fmt"

// Rules are the numeric constants of a game.
type Rules struct {
	BoardSize       int
	InitialGoal     int
	GoalIncrement   int
	HistoryCapacity int
}

// DefaultRules returns the classic 4x4 rules with a goal of 101.
func DefaultRules() Rules {
	return Rules{
		BoardSize:       4,
		InitialGoal:     101,
		GoalIncrement:   101,
		HistoryCapacity: 10,
	}
}

// State is the single live game: board, progress counters, undo history and
// mode flags. It is owned by one goroutine and is not safe for concurrent use.
type State struct {
	rules    Rules
	palette  *Palette
	observer Observer

	board   *Board
	score   int
	heap    int
	goal    int
	history *History

	over        bool
	reason      EndReason
	repaintMode bool

	// version changes on every board mutation so stale plans are caught.
	version uint64
}

// Option customizes a State.
type Option func(*State)

// WithObserver routes state change events to o.
func WithObserver(o Observer) Option {
	return func(s *State) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewState starts a game with a freshly filled board.
func NewState(rules Rules, palette *Palette, opts ...Option) *State {
	s := &State{
		rules:    rules,
		palette:  palette,
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reset()
	return s
}

// NewStateWithBoard starts a game on a prepared board. The board is copied.
func NewStateWithBoard(rules Rules, palette *Palette, b *Board, opts ...Option) *State {
	s := NewState(Rules{
		BoardSize:       b.Size(),
		InitialGoal:     rules.InitialGoal,
		GoalIncrement:   rules.GoalIncrement,
		HistoryCapacity: rules.HistoryCapacity,
	}, palette, opts...)
	s.board = b.Clone()
	return s
}

func (s *State) reset() {
	s.board = NewFilledBoard(s.rules.BoardSize, s.palette)
	s.score = 0
	s.heap = 0
	s.goal = s.rules.InitialGoal
	s.history = NewHistory(s.rules.HistoryCapacity)
	s.over = false
	s.reason = ReasonNone
	s.repaintMode = false
	s.version++
}

// Restart discards the current game and deals a new board.
func (s *State) Restart() {
	s.reset()
	s.observer.BoardChanged(s.board.Clone())
	s.observer.ScoreChanged(s.score)
}

// Board returns a copy of the current board.
func (s *State) Board() *Board { return s.board.Clone() }

// Tile returns the tile at (row, col). Panics if out of range.
func (s *State) Tile(row, col int) (Tile, bool) { return s.board.At(row, col) }

func (s *State) Score() int           { return s.score }
func (s *State) Heap() int            { return s.heap }
func (s *State) Goal() int            { return s.goal }
func (s *State) Over() bool           { return s.over }
func (s *State) Reason() EndReason    { return s.reason }
func (s *State) RepaintMode() bool    { return s.repaintMode }
func (s *State) Rules() Rules         { return s.rules }
func (s *State) Palette() *Palette    { return s.palette }
func (s *State) HistoryLen() int      { return s.history.Len() }
func (s *State) History() []Snapshot  { return s.history.Entries() }

// SetRepaintMode switches what the next click does.
func (s *State) SetRepaintMode(on bool) {
	s.repaintMode = on
}

// SaveSnapshot pushes a deep copy of board, heap, goal and score onto the
// undo history.
func (s *State) SaveSnapshot() {
	s.history.Push(Snapshot{
		Board: s.board.Clone(),
		Heap:  s.heap,
		Goal:  s.goal,
		Score: s.score,
	})
}

// RestoreSnapshot pops the latest snapshot into the live state. It refuses,
// returning false, when the history is empty or the game is over.
func (s *State) RestoreSnapshot() bool {
	if s.over {
		return false
	}
	snap, ok := s.history.Pop()
	if !ok {
		return false
	}
	s.board = snap.Board
	s.heap = snap.Heap
	s.goal = snap.Goal
	s.score = snap.Score
	s.reason = ReasonNone
	s.version++

	s.observer.BoardChanged(s.board.Clone())
	s.observer.ScoreChanged(s.score)
	return true
}

// ClearGameOver lifts the terminal flag so an undo can take the game back.
func (s *State) ClearGameOver() {
	s.over = false
	s.reason = ReasonNone
}

// Undo clears a game over and restores the previous snapshot. Nothing
// changes when there is no history.
func (s *State) Undo() bool {
	if s.history.Len() == 0 {
		return false
	}
	s.ClearGameOver()
	return s.RestoreSnapshot()
}

// RecordMerge adds total to the score and raises the heap to it if larger.
func (s *State) RecordMerge(total int) {
	s.score += total
	s.heap = max(s.heap, total)
}

// GoalReached reports whether the heap hits the goal exactly.
func (s *State) GoalReached() bool {
	return s.heap == s.goal
}

// AdvanceGoal raises the goal by the configured increment.
func (s *State) AdvanceGoal() {
	s.goal += s.rules.GoalIncrement
}

// MergePlan is the read-only result of resolving a click: what will move and
// what the merge will be worth. It is produced by PlanMerge and consumed by
// CommitMerge; anything may happen in between (typically an animation) as
// long as the state is not mutated.
type MergePlan struct {
	Row, Col  int
	Center    Tile
	Neighbors []Neighbor
	Shifts    []Shift
	Total     int

	version uint64
}

// MergeOutcome describes what CommitMerge did.
type MergeOutcome struct {
	Total       int
	GoalReached bool
	GoalBefore  int // Goal in force when the merge was scored
	Spawned     []Pos
	Verdict     Verdict
}

// PlanMerge resolves a click at (row, col) without changing anything.
// ok is false when the game is over, the cell is empty or it has no
// same-colored neighbor.
func (s *State) PlanMerge(row, col int) (plan MergePlan, ok bool) {
	if s.over {
		return MergePlan{}, false
	}
	center, occupied := s.board.At(row, col)
	if !occupied {
		return MergePlan{}, false
	}
	neighbors := FindSameColorNeighbors(s.board, row, col, center.Color)
	if len(neighbors) == 0 {
		return MergePlan{}, false
	}
	return MergePlan{
		Row:       row,
		Col:       col,
		Center:    center,
		Neighbors: neighbors,
		Shifts:    ComputeShifts(s.board.Size(), row, col, neighbors),
		Total:     MergeTotal(center, neighbors),
		version:   s.version,
	}, true
}

// CommitMerge applies a plan: snapshot, shift, place the merged tile, score,
// advance the goal on an exact hit, refill, then run the terminal check.
// Panics if the state changed since the plan was made.
func (s *State) CommitMerge(plan MergePlan) MergeOutcome {
	if plan.version != s.version || s.over {
		panic(fmt.Sprintf("stock101: stale merge plan for (%d,%d)", plan.Row, plan.Col))
	}
	s.SaveSnapshot()

	board := ApplyShifts(s.board, plan.Shifts)
	PlaceMergedTile(board, plan.Row, plan.Col, plan.Total, s.palette.Working())
	s.board = board
	s.version++

	out := MergeOutcome{Total: plan.Total, GoalBefore: s.goal}

	s.RecordMerge(plan.Total)
	s.observer.ScoreChanged(s.score)

	if s.GoalReached() {
		out.GoalReached = true
		s.observer.GoalAchieved(s.goal)
		s.AdvanceGoal()
	}

	s.board = FillEmptySpaces(s.board, s.palette)
	out.Spawned = SpawnedCells(s.board)
	s.observer.BoardChanged(s.board.Clone())

	out.Verdict = Evaluate(s.board, s.heap, s.goal)
	if out.Verdict.Over {
		s.over = true
		s.reason = out.Verdict.Reason
		s.observer.GameOver(GameOverEvent{
			Reason: s.reason,
			Score:  s.score,
			Goal:   s.goal,
			Heap:   s.heap,
		})
	}
	return out
}

// Repaint gives the tile at (row, col) a new random color and leaves repaint
// mode. Working-colored tiles, empty cells and finished games are refused.
// The previous board is saved so the repaint can be undone.
func (s *State) Repaint(row, col int) bool {
	if s.over {
		return false
	}
	t, ok := s.board.At(row, col)
	if !ok {
		return false
	}
	repainted, ok := s.palette.Repaint(t)
	if !ok {
		return false
	}
	s.SaveSnapshot()
	s.board.Set(row, col, repainted)
	s.version++
	s.repaintMode = false
	s.observer.BoardChanged(s.board.Clone())
	return true
}

// ClickKind says what a click did.
type ClickKind int

const (
	ClickNone ClickKind = iota
	ClickMerged
	ClickRepainted
)

// ClickResult reports the effect of HandleClick.
type ClickResult struct {
	Kind    ClickKind
	Plan    MergePlan
	Outcome MergeOutcome
}

// HandleClick runs a whole click synchronously: a repaint in repaint mode,
// otherwise plan and commit a merge. Hosts that animate the shifts should
// call PlanMerge and CommitMerge themselves.
func (s *State) HandleClick(row, col int) ClickResult {
	if s.over {
		return ClickResult{}
	}
	if s.repaintMode {
		if s.Repaint(row, col) {
			return ClickResult{Kind: ClickRepainted}
		}
		return ClickResult{}
	}
	plan, ok := s.PlanMerge(row, col)
	if !ok {
		return ClickResult{}
	}
	return ClickResult{Kind: ClickMerged, Plan: plan, Outcome: s.CommitMerge(plan)}
}
