package playback

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/listlab/internal/lesson"
)

func newTestPlayer(t *testing.T, n int) (*Player, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	p := NewPlayer(NewEngine(plainSteps(n), nil, nil), WithClock(mock))
	t.Cleanup(p.Close)
	return p, mock
}

func waitIndex(t *testing.T, p *Player, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return p.State().Index == want
	}, time.Second, time.Millisecond)
}

func TestPlayer_TicksAdvanceAndStopAtEnd(t *testing.T) {
	p, mock := newTestPlayer(t, 3)

	p.TogglePlay()
	require.True(t, p.State().Playing)

	mock.Add(DefaultInterval)
	waitIndex(t, p, 1)
	mock.Add(DefaultInterval)
	waitIndex(t, p, 2)

	mock.Add(DefaultInterval)
	require.Eventually(t, func() bool {
		return !p.State().Playing
	}, time.Second, time.Millisecond)
	assert.Equal(t, 2, p.State().Index)
}

func TestPlayer_NoTickBeforeInterval(t *testing.T) {
	p, mock := newTestPlayer(t, 3)
	p.Play()

	mock.Add(DefaultInterval - time.Millisecond)
	assert.Never(t, func() bool {
		return p.State().Index != 0
	}, 20*time.Millisecond, time.Millisecond)
}

func TestPlayer_PlayIsIdempotent(t *testing.T) {
	p, mock := newTestPlayer(t, 10)

	p.Play()
	p.Play()
	p.Play()

	mock.Add(DefaultInterval)
	waitIndex(t, p, 1)
	assert.Never(t, func() bool {
		return p.State().Index > 1
	}, 30*time.Millisecond, time.Millisecond)
}

func TestPlayer_PauseCancelsTicker(t *testing.T) {
	p, mock := newTestPlayer(t, 5)

	p.TogglePlay()
	mock.Add(DefaultInterval)
	waitIndex(t, p, 1)

	p.TogglePlay()
	require.False(t, p.State().Playing)
	mock.Add(3 * DefaultInterval)
	assert.Never(t, func() bool {
		return p.State().Index != 1
	}, 20*time.Millisecond, time.Millisecond)
}

func TestPlayer_ToggleRestartKeepsSingleTicker(t *testing.T) {
	p, mock := newTestPlayer(t, 10)

	for i := 0; i < 5; i++ {
		p.TogglePlay()
	}
	require.True(t, p.State().Playing)

	mock.Add(DefaultInterval)
	waitIndex(t, p, 1)
	assert.Never(t, func() bool {
		return p.State().Index > 1
	}, 30*time.Millisecond, time.Millisecond)
}

func TestPlayer_ResetAndLoadStopPlayback(t *testing.T) {
	p, mock := newTestPlayer(t, 5)

	p.Play()
	mock.Add(DefaultInterval)
	waitIndex(t, p, 1)

	p.Reset()
	s := p.State()
	assert.False(t, s.Playing)
	assert.Equal(t, 0, s.Index)
	assert.Empty(t, s.Output)

	p.Play()
	p.Load([]lesson.ExecutionStep{{Action: lesson.ActionPrint, OutputText: "x"}, {}}, nil, nil)
	mock.Add(2 * DefaultInterval)
	assert.Never(t, func() bool {
		return p.State().Index != 0
	}, 20*time.Millisecond, time.Millisecond)
	assert.Equal(t, []string{"x"}, p.State().Output)
}

func TestPlayer_EmptyNeverStartsTicker(t *testing.T) {
	p, _ := newTestPlayer(t, 0)
	p.TogglePlay()
	assert.False(t, p.State().Playing)
	p.mu.Lock()
	defer p.mu.Unlock()
	assert.Nil(t, p.cancel)
}

func TestPlayer_FramesLatestWins(t *testing.T) {
	p, _ := newTestPlayer(t, 4)

	p.Step()
	p.Step()
	p.Step()

	select {
	case f := <-p.Frames():
		assert.Equal(t, 3, f.Index)
	case <-time.After(time.Second):
		t.Fatal("no frame published")
	}
	select {
	case f := <-p.Frames():
		t.Fatalf("stale frame left in channel: %+v", f)
	default:
	}
}

func TestPlayer_CustomInterval(t *testing.T) {
	mock := clock.NewMock()
	p := NewPlayer(NewEngine(plainSteps(3), nil, nil), WithClock(mock), WithInterval(500*time.Millisecond))
	t.Cleanup(p.Close)

	p.Play()
	mock.Add(500 * time.Millisecond)
	waitIndex(t, p, 1)
}
