package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"popquiz-client/internal/api"
	"popquiz-client/internal/domain"
)

// Phase is the controller's position in the question lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingQuestion
	PhaseAnswering
	PhaseSubmitting
	PhaseSubmitFailed
	PhaseRevealed
	PhaseFinished
)

// Controls tells the presenter which advance control to offer.
type Controls int

const (
	ControlsNone Controls = iota
	ControlsNext
	ControlsFinish
	ControlsRetry
)

// NoteLevel classifies a user-facing notification.
type NoteLevel int

const (
	NoteInfo NoteLevel = iota
	NoteSuccess
	NoteError
)

// Notifier shows transient user-facing messages.
type Notifier interface {
	Notify(level NoteLevel, message string)
}

// Presenter renders game-play state. Implementations are called from
// the controller's goroutines and must marshal onto their own UI thread.
type Presenter interface {
	ShowQuestion(index, total int, question domain.Question)
	ShowCountdown(remaining int, band Band)
	ShowScore(total int)
	MarkSelection(option int)
	DisableOptions()
	RevealAnswer(correctIndex, chosenIndex int, correct bool)
	ShowControls(controls Controls)
	ShowResults(results domain.Results)
}

// GameService is the slice of the API client the controller needs.
type GameService interface {
	SubmitAnswer(ctx context.Context, submission api.AnswerSubmission) (domain.AnswerResult, error)
	CompleteQuiz(ctx context.Context, code string) error
	GetResults(ctx context.Context, code string) (domain.Results, error)
}

// ControllerConfig wires a Controller.
type ControllerConfig struct {
	Service          GameService
	Session          *Session
	Presenter        Presenter
	Notifier         Notifier
	CountdownSeconds int
	TickInterval     time.Duration // defaults to one second
	Logger           *slog.Logger
	// OnFinished fires after results render, with the final standings
	// and the player's authoritative score.
	OnFinished func(results domain.Results, finalScore int)
}

// Controller drives one player's play-through of one quiz: question
// display, countdown, answer capture, submission, and the transition to
// results. The server is the sole authority for correctness and
// scoring; the controller only mirrors what it reports.
type Controller struct {
	svc       GameService
	session   *Session
	presenter Presenter
	notifier  Notifier
	countdown *Countdown
	log       *slog.Logger
	onDone    func(domain.Results, int)

	ctx context.Context

	mu         sync.Mutex
	phase      Phase
	lastChoice int
	lastTaken  int
}

// NewController builds a Controller. Countdown seconds must be positive.
func NewController(cfg ControllerConfig) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	seconds := cfg.CountdownSeconds
	if seconds <= 0 {
		seconds = 15
	}
	return &Controller{
		svc:       cfg.Service,
		session:   cfg.Session,
		presenter: cfg.Presenter,
		notifier:  cfg.Notifier,
		countdown: NewCountdown(seconds, cfg.TickInterval),
		log:       logger,
		onDone:    cfg.OnFinished,
		ctx:       context.Background(),
		phase:     PhaseIdle,
	}
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Countdown exposes the owned timer so the screen manager can verify
// cancellation on navigation.
func (c *Controller) Countdown() *Countdown { return c.countdown }

// Start begins game play from question zero with a zeroed score mirror.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctx = ctx
	c.session.RestartProgress()
	c.presenter.ShowScore(0)
	c.phase = PhaseAwaitingQuestion
	c.showQuestionLocked()
}

// Stop cancels the countdown; used when navigating away mid-game.
func (c *Controller) Stop() {
	c.countdown.Stop()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhaseIdle
}

// Select records the player's option choice. The first call wins: all
// options are disabled synchronously before the submission starts, so a
// second selection for the same question is impossible. The countdown's
// expiry path calls this with domain.NoAnswer.
func (c *Controller) Select(option int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseAnswering {
		return
	}
	c.phase = PhaseSubmitting
	c.presenter.DisableOptions()
	if option >= 0 {
		c.presenter.MarkSelection(option)
	}
	c.countdown.Stop()

	taken := c.countdown.Limit() - c.countdown.Remaining()
	if taken < 0 {
		taken = 0
	}
	c.lastChoice = option
	c.lastTaken = taken
	c.submitLocked()
}

// Retry re-submits the same choice after a failed submission.
func (c *Controller) Retry() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseSubmitFailed {
		return
	}
	c.phase = PhaseSubmitting
	c.submitLocked()
}

// Next advances to the following question after a reveal.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseRevealed {
		return
	}
	c.session.AdvanceQuestion()
	c.phase = PhaseAwaitingQuestion
	c.showQuestionLocked()
}

// Finish completes the quiz and fetches results; wired to the finish
// control shown after the last reveal.
func (c *Controller) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseRevealed {
		return
	}
	c.finishLocked()
}

func (c *Controller) showQuestionLocked() {
	quiz, ok := c.session.Quiz()
	if !ok {
		c.log.Error("game started without a quiz snapshot")
		return
	}
	index := c.session.QuestionIndex()
	if index >= len(quiz.Questions) {
		c.finishLocked()
		return
	}

	c.presenter.ShowQuestion(index, len(quiz.Questions), quiz.Questions[index])
	c.presenter.ShowControls(ControlsNone)
	c.phase = PhaseAnswering
	c.countdown.Start(c.handleTick, c.handleExpiry)
}

func (c *Controller) handleTick(remaining int) {
	c.presenter.ShowCountdown(remaining, BandFor(remaining))
}

// handleExpiry forces a "no answer" selection. Sentinel NoAnswer is
// guaranteed incorrect server-side; timeTaken is the full window.
func (c *Controller) handleExpiry() {
	c.Select(domain.NoAnswer)
}

func (c *Controller) submitLocked() {
	quiz, _ := c.session.Quiz()
	submission := api.AnswerSubmission{
		QuizCode:      quiz.Code,
		Nickname:      c.session.Player().Nickname,
		QuestionIndex: c.session.QuestionIndex(),
		ChosenIndex:   c.lastChoice,
		TimeTaken:     c.lastTaken,
	}
	epoch := c.session.Epoch()
	chosen := c.lastChoice
	total := len(quiz.Questions)
	index := submission.QuestionIndex

	go func() {
		result, err := c.svc.SubmitAnswer(c.ctx, submission)
		c.applyVerdict(epoch, index, total, chosen, result, err)
	}()
}

func (c *Controller) applyVerdict(epoch string, index, total, chosen int, result domain.AnswerResult, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.session.Matches(epoch) {
		c.log.Debug("dropping answer verdict for stale session", "question", index)
		return
	}
	if c.phase != PhaseSubmitting {
		return
	}

	if err != nil {
		c.phase = PhaseSubmitFailed
		c.notifyError(err, "Failed to submit answer")
		c.presenter.ShowControls(ControlsRetry)
		return
	}

	c.session.SetScore(result.TotalScore)
	c.presenter.ShowScore(result.TotalScore)
	c.presenter.RevealAnswer(result.CorrectIndex, chosen, result.Correct)
	if result.Correct {
		c.notify(NoteSuccess, fmt.Sprintf("Correct! +%d points", result.ScoreGained))
	} else {
		c.notify(NoteError, "Wrong answer!")
	}

	c.phase = PhaseRevealed
	if index < total-1 {
		c.presenter.ShowControls(ControlsNext)
	} else {
		c.presenter.ShowControls(ControlsFinish)
	}
}

func (c *Controller) finishLocked() {
	c.phase = PhaseFinished
	c.countdown.Stop()

	quiz, _ := c.session.Quiz()
	epoch := c.session.Epoch()

	go func() {
		if err := c.svc.CompleteQuiz(c.ctx, quiz.Code); err != nil {
			c.haltFinish(epoch, err, "Failed to complete quiz")
			return
		}
		results, err := c.svc.GetResults(c.ctx, quiz.Code)
		if err != nil {
			c.haltFinish(epoch, err, "Failed to load results")
			return
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.session.Matches(epoch) {
			c.log.Debug("dropping results for stale session")
			return
		}
		c.presenter.ShowResults(results)
		if c.onDone != nil {
			c.onDone(results, c.session.Score())
		}
	}()
}

func (c *Controller) haltFinish(epoch string, err error, fallback string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.session.Matches(epoch) {
		return
	}
	c.notifyError(err, fallback)
}

// notifyError shows the server's message verbatim when there is one,
// and a generic network message otherwise.
func (c *Controller) notifyError(err error, fallback string) {
	if serverErr, ok := api.AsServerError(err); ok {
		c.notify(NoteError, serverErr.Message)
		return
	}
	c.log.Warn("request failed", "err", err)
	c.notify(NoteError, fallback+": network error")
}

func (c *Controller) notify(level NoteLevel, message string) {
	if c.notifier != nil {
		c.notifier.Notify(level, message)
	}
}
