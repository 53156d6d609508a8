package player

import (
	"github.com/abhisek/listlab/internal/evaluation"
	"github.com/abhisek/listlab/internal/playback"
)

// frameMsg carries a frame published by the screen's player. Frames from a
// player that is no longer current are dropped.
type frameMsg struct {
	player *playback.Player
	frame  playback.Frame
}

// answerCheckedMsg is sent when the evaluator has judged an answer.
type answerCheckedMsg struct {
	page     int
	question int
	outcome  *evaluation.Outcome
}
