package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"popquiz-client/internal/domain"
)

// scriptedSnapshots returns queued results, repeating the last forever.
type scriptedSnapshots struct {
	mu      sync.Mutex
	script  []func() (domain.Quiz, error)
	calls   int
	callsAt []time.Time
}

func (s *scriptedSnapshots) Refresh(_ context.Context, code string) (domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callsAt = append(s.callsAt, time.Now())
	step := s.calls
	if step >= len(s.script) {
		step = len(s.script) - 1
	}
	s.calls++
	quiz, err := s.script[step]()
	quiz.Code = code
	return quiz, err
}

func (s *scriptedSnapshots) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func pending() (domain.Quiz, error) {
	return domain.Quiz{Status: domain.StatusPending}, nil
}

func active() (domain.Quiz, error) {
	return domain.Quiz{Status: domain.StatusActive}, nil
}

func failing() (domain.Quiz, error) {
	return domain.Quiz{}, errors.New("boom")
}

func TestPollerStopsOnlyWhenActive(t *testing.T) {
	source := &scriptedSnapshots{script: []func() (domain.Quiz, error){pending, pending, active}}
	poller := NewPoller(source, testTick, 10*testTick, nil)

	var mu sync.Mutex
	var snapshots []domain.Status
	activated := make(chan domain.Quiz, 1)

	poller.Start(context.Background(), "AB12", PollHooks{
		OnSnapshot: func(q domain.Quiz) {
			mu.Lock()
			snapshots = append(snapshots, q.Status)
			mu.Unlock()
		},
		OnActive: func(q domain.Quiz) { activated <- q },
	})

	select {
	case quiz := <-activated:
		if quiz.Code != "AB12" || !quiz.Status.IsActive() {
			t.Fatalf("unexpected handoff quiz %+v", quiz)
		}
	case <-time.After(time.Second):
		t.Fatal("poller never handed off to the game")
	}

	calls := source.callCount()
	time.Sleep(5 * testTick)
	if source.callCount() != calls {
		t.Error("poller kept polling after handoff")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(snapshots) != 3 || snapshots[2] != domain.StatusActive {
		t.Errorf("unexpected snapshot sequence %v", snapshots)
	}
}

func TestPollerSurvivesErrors(t *testing.T) {
	source := &scriptedSnapshots{script: []func() (domain.Quiz, error){failing, failing, pending, active}}
	poller := NewPoller(source, testTick, 10*testTick, nil)

	activated := make(chan domain.Quiz, 1)
	poller.Start(context.Background(), "AB12", PollHooks{
		OnActive: func(q domain.Quiz) { activated <- q },
	})

	select {
	case <-activated:
	case <-time.After(time.Second):
		t.Fatal("poller did not recover from errors")
	}
}

func TestPollerBacksOffOnConsecutiveFailures(t *testing.T) {
	source := &scriptedSnapshots{script: []func() (domain.Quiz, error){failing}}
	poller := NewPoller(source, 10*time.Millisecond, 200*time.Millisecond, nil)
	defer poller.Stop()

	poller.Start(context.Background(), "AB12", PollHooks{})
	waitFor(t, 2*time.Second, func() bool { return source.callCount() >= 4 })
	poller.Stop()

	source.mu.Lock()
	defer source.mu.Unlock()
	first := source.callsAt[1].Sub(source.callsAt[0])
	third := source.callsAt[3].Sub(source.callsAt[2])
	if third <= first {
		t.Errorf("expected growing delays, got %v then %v", first, third)
	}
}

func TestStopHandleOnlyReleasesItsOwnRun(t *testing.T) {
	source := &scriptedSnapshots{script: []func() (domain.Quiz, error){pending}}
	poller := NewPoller(source, testTick, 10*testTick, nil)

	stopFirst := poller.Start(context.Background(), "AB12", PollHooks{})
	waitFor(t, time.Second, func() bool { return source.callCount() >= 1 })

	// re-enter a lobby: the second run takes over the poller
	poller.Start(context.Background(), "CD34", PollHooks{})

	// the delayed stop of the abandoned run must not cancel the new one
	stopFirst()
	stopFirst() // idempotent

	calls := source.callCount()
	waitFor(t, time.Second, func() bool { return source.callCount() > calls })
	poller.Stop()
}

func TestPollerStopAndContextCancel(t *testing.T) {
	source := &scriptedSnapshots{script: []func() (domain.Quiz, error){pending}}
	poller := NewPoller(source, testTick, 10*testTick, nil)

	poller.Start(context.Background(), "AB12", PollHooks{})
	waitFor(t, time.Second, func() bool { return source.callCount() >= 2 })
	poller.Stop()
	calls := source.callCount()
	time.Sleep(5 * testTick)
	if source.callCount() != calls {
		t.Error("poller kept polling after Stop")
	}

	ctx, cancel := context.WithCancel(context.Background())
	poller.Start(ctx, "AB12", PollHooks{})
	waitFor(t, time.Second, func() bool { return source.callCount() > calls })
	cancel()
	time.Sleep(2 * testTick)
	calls = source.callCount()
	time.Sleep(5 * testTick)
	if source.callCount() > calls+1 {
		t.Error("poller kept polling after context cancel")
	}
	poller.Stop()
}
