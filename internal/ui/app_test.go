package ui

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"popquiz-client/internal/api"
	"popquiz-client/internal/domain"
	"popquiz-client/internal/game"
	"popquiz-client/internal/history"
)

// newTestRoot builds a Root against baseURL without running the
// terminal application; tests drive the update queue themselves.
func newTestRoot(t *testing.T, baseURL string) *Root {
	t.Helper()
	client := api.NewClient(baseURL, time.Second, nil)
	store := history.NewStore(filepath.Join(t.TempDir(), "history.json"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	root := NewRoot(client, game.NewSession(), store, Config{
		CountdownSeconds: 15,
		NotificationTTL:  time.Second,
		PollInterval:     time.Hour,
		PollBackoffCap:   time.Hour,
	}, logger)
	root.ctx, root.cancel = context.WithCancel(context.Background())
	t.Cleanup(root.cancel)
	return root
}

// drainUpdates runs queued updates the way the application thread
// would, in submission order.
func drainUpdates(root *Root) {
	for {
		select {
		case f := <-root.updates:
			f()
		default:
			return
		}
	}
}

func drainUntil(t *testing.T, root *Root, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		drainUpdates(root)
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestStalePollHooksDroppedAfterLeave(t *testing.T) {
	root := newTestRoot(t, "http://127.0.0.1:0")
	quiz := domain.Quiz{Code: "AB12", Title: "Geography", Status: domain.StatusPending}

	root.enterLobby(quiz)
	drainUpdates(root)
	hooks := root.lobbyHooks(root.session.Epoch())

	// poll results land in the queue just before the player leaves
	activated := quiz
	activated.Status = domain.StatusActive
	hooks.OnSnapshot(activated)
	hooks.OnActive(activated)

	// leave the lobby: reset the session, go home
	root.session.Reset()
	root.Show(ScreenHome)
	drainUpdates(root)

	if _, ok := root.session.Quiz(); ok {
		t.Error("stale poll snapshot re-populated the reset session")
	}
	if root.current != ScreenHome {
		t.Errorf("stale hook moved the user to %q", root.current)
	}
	if root.controller.Phase() != game.PhaseIdle {
		t.Errorf("stale hook started game play, phase %v", root.controller.Phase())
	}
}

func TestFreshPollHooksStillApply(t *testing.T) {
	root := newTestRoot(t, "http://127.0.0.1:0")
	quiz := domain.Quiz{Code: "AB12", Title: "Geography", Status: domain.StatusPending}

	root.enterLobby(quiz)
	drainUpdates(root)
	hooks := root.lobbyHooks(root.session.Epoch())

	roster := quiz
	roster.Players = []domain.Player{{Nickname: "alice"}}
	hooks.OnSnapshot(roster)
	drainUpdates(root)

	snapshot, ok := root.session.Quiz()
	if !ok || len(snapshot.Players) != 1 {
		t.Fatalf("live snapshot not applied: %+v", snapshot)
	}
	root.Show(ScreenHome)
}

func TestHostJoinFailureKeepsErrorVisible(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/quizzes/create", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(domain.Quiz{Code: "AB12", Title: "Geography", Status: domain.StatusPending})
	})
	mux.HandleFunc("/quizzes/join", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Nickname already taken"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	root := newTestRoot(t, srv.URL)
	root.create.titleField().SetText("Geography")
	root.create.nicknameField().SetText("alice")
	row := root.create.rows[0]
	row.input(itemQuestionText).SetText("Capital of France?")
	row.input(itemFirstOption).SetText("Paris")
	row.input(itemFirstOption + 1).SetText("Lyon")
	row.dropdown(itemCorrect).SetCurrentOption(1)

	root.create.submit()
	drainUntil(t, root, func() bool { return root.current == ScreenLobby })

	banner := root.notifier.view.GetText(true)
	if !strings.Contains(banner, "Nickname already taken") {
		t.Errorf("join failure not visible, banner %q", banner)
	}
	if strings.Contains(banner, "Quiz created successfully!") {
		t.Error("success banner overwrote the join failure")
	}
	root.Show(ScreenHome)
}
