package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"popquiz-client/internal/domain"
)

// Snapshots refreshes quiz snapshots from the service, bypassing any
// cache so each poll observes current server state.
type Snapshots interface {
	Refresh(ctx context.Context, code string) (domain.Quiz, error)
}

// PollHooks receive lobby poll outcomes. OnSnapshot fires after every
// successful fetch; OnActive fires once when the quiz goes ACTIVE, after
// which the poller stops itself.
type PollHooks struct {
	OnSnapshot func(domain.Quiz)
	OnActive   func(domain.Quiz)
}

// Poller repeatedly fetches a quiz until it turns ACTIVE. Errors are
// logged and never surfaced: lobby formation must survive transient
// failures, so only a successful fetch can end the loop. Consecutive
// failures back off exponentially up to a cap and the interval resets
// to the base on the next success.
type Poller struct {
	source   Snapshots
	interval time.Duration
	cap      time.Duration
	log      *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller builds a lobby poller with the base interval and backoff cap.
func NewPoller(source Snapshots, interval, cap time.Duration, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{source: source, interval: interval, cap: cap, log: logger}
}

// Start begins polling in the background, releasing any prior run
// first. The loop ends when the quiz turns ACTIVE, the run is stopped,
// or ctx is canceled. The returned handle stops this run only: calling
// it after a later Start has taken over leaves the newer run polling.
func (p *Poller) Start(ctx context.Context, code string, hooks PollHooks) (stop func()) {
	p.mu.Lock()
	p.stopLocked()
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	go p.loop(runCtx, code, hooks, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
			p.mu.Lock()
			if p.done == done {
				p.cancel = nil
				p.done = nil
			}
			p.mu.Unlock()
		})
	}
}

// Stop cancels the current run and waits for it to finish. Idempotent.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.done = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (p *Poller) stopLocked() {
	if p.cancel != nil {
		p.cancel()
		<-p.done
		p.cancel = nil
		p.done = nil
	}
}

func (p *Poller) loop(ctx context.Context, code string, hooks PollHooks, done chan struct{}) {
	defer close(done)

	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = p.interval
	retry.MaxInterval = p.cap
	retry.MaxElapsedTime = 0 // poll until told otherwise
	retry.RandomizationFactor = 0
	retry.Reset()

	for {
		delay := p.interval

		quiz, err := p.source.Refresh(ctx, code)
		switch {
		case ctx.Err() != nil:
			return
		case err != nil:
			p.log.Warn("lobby poll failed", "code", code, "err", err)
			delay = retry.NextBackOff()
		default:
			retry.Reset()
			if hooks.OnSnapshot != nil {
				hooks.OnSnapshot(quiz)
			}
			if quiz.Status.IsActive() {
				if hooks.OnActive != nil {
					hooks.OnActive(quiz)
				}
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}
