package player

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/benbjohnson/clock"

	"github.com/abhisek/listlab/internal/evaluation"
	"github.com/abhisek/listlab/internal/lesson"
	"github.com/abhisek/listlab/internal/playback"
	"github.com/abhisek/listlab/internal/screen"
	"github.com/abhisek/listlab/internal/ui/components"
)

// Deps are the services shared by every lesson screen.
type Deps struct {
	Evaluator *evaluation.Service
	Interval  time.Duration
	Clock     clock.Clock
}

// Screen walks through one lesson page by page. Visualization pages are
// played by a playback.Player, quiz pages are graded locally and free-text
// questions are sent to the evaluator.
type Screen struct {
	lesson  lesson.Lesson
	page    int
	reached bool // the last page has been shown
	deps    Deps
	keys    keyMap

	player    *playback.Player
	frame     playback.Frame
	done      chan struct{}
	closeOnce sync.Once

	// ctx bounds answer checks; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc

	quiz components.MultiChoice

	input    components.TextInput
	question int // index into the page's chatbot questions
	attempt  int
	checking bool
	solved   bool
	feedback *evaluation.Outcome
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.Positioned      = (*Screen)(nil)
	_ screen.BindingProvider = (*Screen)(nil)
	_ screen.Closer          = (*Screen)(nil)
	_ screen.Capturer        = (*Screen)(nil)
)

// New creates a screen for l, opened on the step with id startStep, or on
// the first step when startStep is empty or unknown.
func New(l lesson.Lesson, startStep string, deps Deps) *Screen {
	var opts []playback.Option
	if deps.Clock != nil {
		opts = append(opts, playback.WithClock(deps.Clock))
	}
	if deps.Interval > 0 {
		opts = append(opts, playback.WithInterval(deps.Interval))
	}

	s := &Screen{
		lesson: l,
		deps:   deps,
		keys:   defaultKeys,
		player: playback.NewPlayer(playback.NewEngine(nil, nil, nil), opts...),
		done:   make(chan struct{}),
		input:  components.NewTextInput("Type your answer...", 4000),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	for i, st := range l.Steps {
		if st.ID == startStep {
			s.page = i
			break
		}
	}
	s.enterPage()
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.waitFrame()
}

func (s *Screen) Title() string {
	return s.lesson.Title
}

// Position implements screen.Positioned.
func (s *Screen) Position() string {
	if len(s.lesson.Steps) == 0 {
		return ""
	}
	return fmt.Sprintf("Page %d of %d", s.page+1, len(s.lesson.Steps))
}

// Capturing implements screen.Capturer.
func (s *Screen) Capturing() bool {
	return s.input.Focused()
}

// Close stops the player, abandons any answer check in flight and releases
// the frame waiter.
func (s *Screen) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.player.Close()
		close(s.done)
	})
}

// Step returns the current lesson step.
func (s *Screen) Step() lesson.Step {
	if len(s.lesson.Steps) == 0 {
		return lesson.Step{}
	}
	return s.lesson.Steps[s.page]
}

// Lesson returns the lesson being played.
func (s *Screen) Lesson() lesson.Lesson {
	return s.lesson
}

// Finished reports whether the learner has reached the last page.
func (s *Screen) Finished() bool {
	return s.reached
}

// Frame returns the last frame received from the player.
func (s *Screen) Frame() playback.Frame {
	return s.frame
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.player != s.player {
			return s, nil
		}
		s.frame = msg.frame
		return s, s.waitFrame()

	case answerCheckedMsg:
		s.handleChecked(msg)
		return s, nil

	case tea.KeyPressMsg:
		if s.input.Focused() {
			return s, s.handleInputKey(msg)
		}
		return s, s.handleKey(msg)
	}

	if s.input.Focused() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Next):
		if s.page < len(s.lesson.Steps)-1 {
			s.page++
			s.enterPage()
		}
		return nil
	case key.Matches(msg, s.keys.Prev):
		if s.page > 0 {
			s.page--
			s.enterPage()
		}
		return nil
	}

	step := s.Step()
	switch step.Kind {
	case lesson.KindVisualization:
		switch {
		case key.Matches(msg, s.keys.Play):
			s.player.TogglePlay()
		case key.Matches(msg, s.keys.Step):
			s.player.Step()
		case key.Matches(msg, s.keys.Reset):
			s.player.Reset()
		}

	case lesson.KindMCQ:
		if key.Matches(msg, s.keys.Retry) && s.quiz.Submitted {
			s.quiz.Retry()
			return nil
		}
		var cmd tea.Cmd
		s.quiz, cmd = s.quiz.Update(msg)
		return cmd
	}

	if len(step.Chatbot) > 0 {
		switch {
		case key.Matches(msg, s.keys.Answer):
			return s.input.Focus()
		case key.Matches(msg, s.keys.NextQuestion):
			s.question = (s.question + 1) % len(step.Chatbot)
			s.resetQuestion()
		}
	}
	return nil
}

func (s *Screen) handleInputKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Cancel):
		s.input.Blur()
		return nil
	case key.Matches(msg, s.keys.Submit):
		answer := s.input.Value()
		if answer == "" || s.checking {
			return nil
		}
		s.checking = true
		return s.check(answer)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// check asks the evaluator about the current question. The result comes
// back as an answerCheckedMsg tagged with the page and question it belongs
// to.
func (s *Screen) check(answer string) tea.Cmd {
	q := s.Step().Chatbot[s.question]
	page, question, attempt := s.page, s.question, s.attempt
	title := s.lesson.Title
	eval, ctx := s.deps.Evaluator, s.ctx

	return func() tea.Msg {
		if eval == nil {
			return answerCheckedMsg{page: page, question: question, outcome: &evaluation.Outcome{
				Status:   http.StatusInternalServerError,
				Feedback: evaluation.MsgMissingCredentials,
				Reaction: evaluation.ReactionWarning,
			}}
		}
		out, _ := eval.Check(ctx, evaluation.Input{
			Question: q.Question,
			Answer:   answer,
			Context:  q.EvaluationContext(title),
			Attempt:  &attempt,
		})
		return answerCheckedMsg{page: page, question: question, outcome: out}
	}
}

// handleChecked shows feedback for the question still on screen. A reply
// that does not solve the question counts as a used attempt.
func (s *Screen) handleChecked(msg answerCheckedMsg) {
	if msg.page != s.page || msg.question != s.question {
		return
	}
	s.checking = false
	s.feedback = msg.outcome
	if msg.outcome == nil || msg.outcome.Status != http.StatusOK {
		return
	}
	if evaluation.Solved(msg.outcome.Feedback, msg.outcome.Reaction) {
		s.solved = true
		s.input.Blur()
		return
	}
	s.attempt++
	s.input.Reset()
}

func (s *Screen) enterPage() {
	if s.page == len(s.lesson.Steps)-1 {
		s.reached = true
	}
	s.question = 0
	s.resetQuestion()
	s.input.Blur()

	step := s.Step()
	switch step.Kind {
	case lesson.KindVisualization:
		s.player.Load(step.ExecutionSteps, step.Visualization, step.Code)
	case lesson.KindMCQ:
		s.player.Pause()
		if step.MCQ != nil {
			s.quiz = components.NewMultiChoice(*step.MCQ)
		}
	default:
		s.player.Pause()
	}
	s.frame = s.player.Frame()
}

func (s *Screen) resetQuestion() {
	s.attempt = 1
	s.checking = false
	s.solved = false
	s.feedback = nil
	s.input.Reset()
}

// waitFrame waits for the next published frame, or for Close.
func (s *Screen) waitFrame() tea.Cmd {
	p, frames, done := s.player, s.player.Frames(), s.done
	return func() tea.Msg {
		select {
		case f := <-frames:
			return frameMsg{player: p, frame: f}
		case <-done:
			return nil
		}
	}
}

// Bindings implements screen.BindingProvider.
func (s *Screen) Bindings() []key.Binding {
	if s.input.Focused() {
		return []key.Binding{s.keys.Submit, s.keys.Cancel}
	}

	var b []key.Binding
	if s.page > 0 {
		b = append(b, s.keys.Prev)
	}
	if s.page < len(s.lesson.Steps)-1 {
		b = append(b, s.keys.Next)
	}

	step := s.Step()
	switch step.Kind {
	case lesson.KindVisualization:
		if len(step.ExecutionSteps) > 0 {
			b = append(b, s.keys.Play, s.keys.Step, s.keys.Reset)
		}
	case lesson.KindMCQ:
		if s.quiz.Submitted {
			b = append(b, s.keys.Retry)
		} else {
			b = append(b, s.quiz.Keys.Up, s.quiz.Keys.Select)
		}
	}
	if len(step.Chatbot) > 0 {
		b = append(b, s.keys.Answer)
		if len(step.Chatbot) > 1 {
			b = append(b, s.keys.NextQuestion)
		}
	}
	return b
}
