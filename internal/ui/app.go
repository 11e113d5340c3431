package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/rivo/tview"

	"popquiz-client/internal/api"
	"popquiz-client/internal/domain"
	"popquiz-client/internal/game"
	"popquiz-client/internal/history"
)

// Screen names one page of the client. Exactly one screen is visible
// at a time.
type Screen string

const (
	ScreenHome     Screen = "home"
	ScreenCreate   Screen = "create"
	ScreenJoin     Screen = "join"
	ScreenLobby    Screen = "lobby"
	ScreenGame     Screen = "game"
	ScreenResults  Screen = "results"
	ScreenActive   Screen = "active"
	ScreenRegister Screen = "register"
)

// Config carries the UI-relevant settings.
type Config struct {
	CountdownSeconds int
	NotificationTTL  time.Duration
	PollInterval     time.Duration
	PollBackoffCap   time.Duration
}

// Root owns the terminal application: the page stack, the notifier,
// and the game wiring. It is the screen manager: Show is the only way
// screens change, and it guarantees the countdown timer never survives
// a transition.
type Root struct {
	app        *tview.Application
	pages      *tview.Pages
	notifier   *Notifier
	client     *api.Client
	snapshots  *api.SnapshotSource
	session    *game.Session
	poller     *game.Poller
	controller *game.Controller
	history    *history.Store
	log        *slog.Logger
	cfg        Config

	ctx      context.Context
	cancel   context.CancelFunc
	updates  chan func()
	current  Screen
	stopPoll func()

	home     *homeScreen
	create   *createScreen
	join     *joinScreen
	lobby    *lobbyScreen
	game     *gameScreen
	results  *resultsScreen
	active   *activeScreen
	register *registerScreen
}

// NewRoot wires the full client UI.
func NewRoot(client *api.Client, session *game.Session, store *history.Store, cfg Config, logger *slog.Logger) *Root {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.NotificationTTL <= 0 {
		cfg.NotificationTTL = 5 * time.Second
	}

	r := &Root{
		app:       tview.NewApplication(),
		pages:     tview.NewPages(),
		client:    client,
		snapshots: api.NewSnapshotSource(client, cfg.PollInterval),
		session:   session,
		history:   store,
		log:       logger,
		cfg:       cfg,
		updates:   make(chan func(), 256),
		current:   ScreenHome,
	}
	r.notifier = newNotifier(r, cfg.NotificationTTL)
	r.poller = game.NewPoller(r.snapshots, cfg.PollInterval, cfg.PollBackoffCap, logger)

	r.home = newHomeScreen(r)
	r.create = newCreateScreen(r)
	r.join = newJoinScreen(r)
	r.lobby = newLobbyScreen(r)
	r.game = newGameScreen(r)
	r.results = newResultsScreen(r)
	r.active = newActiveScreen(r)
	r.register = newRegisterScreen(r)

	r.controller = game.NewController(game.ControllerConfig{
		Service:          client,
		Session:          session,
		Presenter:        r.game,
		Notifier:         r.notifier,
		CountdownSeconds: cfg.CountdownSeconds,
		Logger:           logger,
		OnFinished:       r.recordFinish,
	})

	r.pages.AddPage(string(ScreenHome), r.home.primitive(), true, true)
	r.pages.AddPage(string(ScreenCreate), r.create.primitive(), true, false)
	r.pages.AddPage(string(ScreenJoin), r.join.primitive(), true, false)
	r.pages.AddPage(string(ScreenLobby), r.lobby.primitive(), true, false)
	r.pages.AddPage(string(ScreenGame), r.game.primitive(), true, false)
	r.pages.AddPage(string(ScreenResults), r.results.primitive(), true, false)
	r.pages.AddPage(string(ScreenActive), r.active.primitive(), true, false)
	r.pages.AddPage(string(ScreenRegister), r.register.primitive(), true, false)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(r.notifier.view, 1, 0, false).
		AddItem(r.pages, 0, 1, true)
	r.app.SetRoot(layout, true)

	return r
}

// Run blocks until the user quits or ctx is canceled.
func (r *Root) Run(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)
	defer r.cancel()

	go func() {
		for f := range r.updates {
			r.app.QueueUpdateDraw(f)
		}
	}()
	go func() {
		<-r.ctx.Done()
		r.app.Stop()
	}()

	r.home.refreshHistory()
	return r.app.Run()
}

// post schedules f on the UI thread, preserving submission order.
// Never blocks: a full queue drops the update, which is acceptable for
// the idempotent renders that go through here.
func (r *Root) post(f func()) {
	select {
	case r.updates <- f:
	default:
		r.log.Warn("ui update queue full, dropping update")
	}
}

// Show switches to the named screen. Any running countdown is canceled
// before the transition; leaving the lobby (other than into the game)
// also cancels the lobby poller. An unknown name is a no-op. Entering
// the active-quizzes screen triggers an asynchronous list refresh.
func (r *Root) Show(target Screen) {
	if !r.pages.HasPage(string(target)) {
		return
	}

	r.controller.Stop()
	if r.current == ScreenLobby && target != ScreenLobby && target != ScreenGame {
		r.stopLobbyPoll()
	}

	r.current = target
	r.pages.SwitchToPage(string(target))

	switch target {
	case ScreenActive:
		r.active.refresh()
	case ScreenHome:
		r.home.refreshHistory()
	}
}

// Quit tears the application down.
func (r *Root) Quit() {
	r.cancel()
}

// enterLobby records the created/joined quiz and starts polling for
// the ACTIVE transition. The stop handle is kept so leaving the lobby
// tears down exactly this run, never a successor's.
func (r *Root) enterLobby(quiz domain.Quiz) {
	r.session.SetQuiz(quiz)
	r.lobby.setQuiz(quiz)
	r.Show(ScreenLobby)

	r.stopPoll = r.poller.Start(r.ctx, quiz.Code, r.lobbyHooks(r.session.Epoch()))
}

// lobbyHooks builds the poll callbacks for one lobby stay. Both hooks
// capture the session epoch they were issued under and drop their
// update if the session has since been reset, so a poll result queued
// just before the player leaves cannot re-populate the new session or
// drag the player back into a game.
func (r *Root) lobbyHooks(epoch string) game.PollHooks {
	return game.PollHooks{
		OnSnapshot: func(snapshot domain.Quiz) {
			r.post(func() {
				if !r.session.Matches(epoch) {
					return
				}
				r.session.SetQuiz(snapshot)
				r.lobby.updateRoster(snapshot)
			})
		},
		OnActive: func(snapshot domain.Quiz) {
			r.post(func() {
				if !r.session.Matches(epoch) {
					return
				}
				r.session.SetQuiz(snapshot)
				r.Show(ScreenGame)
				r.controller.Start(r.ctx)
			})
		},
	}
}

// stopLobbyPoll releases the current lobby's poll run off the UI
// thread. The handle is bound to its run, so a delayed stop cannot
// cancel a lobby entered afterwards.
func (r *Root) stopLobbyPoll() {
	if stop := r.stopPoll; stop != nil {
		r.stopPoll = nil
		go stop()
	}
}

// showResults flips to the results screen; called by the game screen
// when the controller delivers the final leaderboard.
func (r *Root) showResults(results domain.Results) {
	r.results.render(results, r.session.Player().Nickname)
	r.Show(ScreenResults)
}

// playAgain resets the session (minting a new epoch, so any in-flight
// responses are orphaned) and returns home.
func (r *Root) playAgain() {
	r.session.Reset()
	r.Show(ScreenHome)
}

func (r *Root) recordFinish(results domain.Results, finalScore int) {
	if r.history == nil {
		return
	}
	quiz, _ := r.session.Quiz()
	player := r.session.Player()
	entry := history.Entry{
		QuizCode:   quiz.Code,
		QuizTitle:  quiz.Title,
		Nickname:   player.Nickname,
		Score:      finalScore,
		Placement:  PlacementOf(results, player.Nickname),
		FinishedAt: time.Now(),
	}
	if err := r.history.Append(entry); err != nil {
		r.log.Warn("could not record game history", "err", err)
	}
}
