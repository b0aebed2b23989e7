package stock101

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateOvershootBeatsNoMoves(t *testing.T) {
	b := checkerboard(t)
	assert.False(t, HasLegalMove(b))

	v := Evaluate(b, 300, 202)
	assert.Equal(t, Verdict{Over: true, Reason: ReasonOvershoot}, v)
}

func TestEvaluate(t *testing.T) {
	open := parseBoard(t,
		"1r 1r 1b 1g",
		"1b 1g 1r 1b",
		"1g 1b 1g 1r",
		"1b 1r 1b 1g",
	)
	tests := []struct {
		name       string
		board      *Board
		heap, goal int
		want       Verdict
	}{
		{"playing", open, 50, 101, Verdict{}},
		{"exact goal is not over", open, 101, 101, Verdict{}},
		{"overshoot with moves left", open, 102, 101, Verdict{Over: true, Reason: ReasonOvershoot}},
		{"stuck", checkerboard(t), 10, 101, Verdict{Over: true, Reason: ReasonNoMoves}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.board, tt.heap, tt.goal))
		})
	}
}

func TestEndReasonText(t *testing.T) {
	assert.Equal(t, "overshoot", ReasonOvershoot.String())
	assert.Equal(t, "no_moves", ReasonNoMoves.String())
	assert.Equal(t, "Heap too big! Needed exactly 202", ReasonOvershoot.Message(202))
	assert.Equal(t, "No available moves!", ReasonNoMoves.Message(101))
	assert.Empty(t, ReasonNone.Message(101))
}
