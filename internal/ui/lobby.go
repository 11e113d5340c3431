package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/rivo/tview"

	"popquiz-client/internal/domain"
)

// lobbyScreen shows the join code and the live player roster while
// waiting for the host to start the quiz.
type lobbyScreen struct {
	root    *Root
	banner  *tview.TextView
	roster  *tview.TextView
	actions *tview.Form
	layout  *tview.Flex
	code    string
}

func newLobbyScreen(root *Root) *lobbyScreen {
	s := &lobbyScreen{root: root}

	s.banner = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	s.banner.SetBorder(true).SetTitle(" Lobby ")

	s.roster = tview.NewTextView().SetDynamicColors(true)
	s.roster.SetBorder(true).SetTitle(" Players ")

	s.actions = tview.NewForm()
	s.actions.AddButton("Copy code", func() { s.copyCode() })
	s.actions.AddButton("Start quiz", func() { s.startQuiz() })
	s.actions.AddButton("Leave", func() {
		root.session.Reset()
		root.Show(ScreenHome)
	})
	s.actions.SetButtonsAlign(tview.AlignCenter)

	s.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.banner, 4, 0, false).
		AddItem(s.roster, 0, 1, false).
		AddItem(s.actions, 3, 0, true)
	return s
}

func (s *lobbyScreen) primitive() tview.Primitive { return s.layout }

func (s *lobbyScreen) setQuiz(quiz domain.Quiz) {
	s.code = quiz.Code
	s.banner.SetText(fmt.Sprintf("%s\nJoin code: [::b]%s[-:-:-] — waiting for players...",
		tview.Escape(quiz.Title), quiz.Code))
	s.updateRoster(quiz)
}

func (s *lobbyScreen) updateRoster(quiz domain.Quiz) {
	if len(quiz.Players) == 0 {
		s.roster.SetText("No players joined yet...")
		return
	}
	var b strings.Builder
	for _, player := range quiz.Players {
		fmt.Fprintf(&b, "👤 %s — score: %d\n", tview.Escape(player.Nickname), player.Score)
	}
	s.roster.SetText(b.String())
}

func (s *lobbyScreen) copyCode() {
	if err := clipboard.WriteAll(s.code); err != nil {
		s.root.log.Warn("clipboard unavailable", "err", err)
		s.root.notifier.Info("Join code: " + s.code)
		return
	}
	s.root.notifier.Success("Join code copied to clipboard")
}

// startQuiz asks the server to begin; only the host's request will be
// honored, everyone else gets the server's error verbatim.
func (s *lobbyScreen) startQuiz() {
	root := s.root
	code := s.code
	go func() {
		if err := root.client.StartQuiz(root.ctx, code); err != nil {
			root.post(func() { notifyRequestError(root, err, "Failed to start quiz") })
			return
		}
		root.post(func() { root.notifier.Success("Quiz started!") })
	}()
}
