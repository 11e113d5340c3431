package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

// homeScreen is the entry menu plus a recap of recent games.
type homeScreen struct {
	root   *Root
	menu   *tview.List
	recent *tview.TextView
	layout *tview.Flex
}

func newHomeScreen(root *Root) *homeScreen {
	s := &homeScreen{root: root}

	title := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText("[::b]popQuiz[-:-:-] — live multiplayer quizzes")

	s.menu = tview.NewList().
		AddItem("Create Quiz", "Author questions and host a game", 'c', func() { root.Show(ScreenCreate) }).
		AddItem("Join Quiz", "Enter a join code and nickname", 'j', func() { root.Show(ScreenJoin) }).
		AddItem("Active Quizzes", "Browse joinable games", 'a', func() { root.Show(ScreenActive) }).
		AddItem("Register", "Create an account", 'r', func() { root.Show(ScreenRegister) }).
		AddItem("Quit", "Leave popQuiz", 'q', func() { root.Quit() })
	s.menu.SetBorder(true).SetTitle(" Menu ")

	s.recent = tview.NewTextView().SetDynamicColors(true)
	s.recent.SetBorder(true).SetTitle(" Recent games ")

	s.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(title, 1, 0, false).
		AddItem(s.menu, 0, 2, true).
		AddItem(s.recent, 0, 1, false)
	return s
}

func (s *homeScreen) primitive() tview.Primitive { return s.layout }

// refreshHistory re-reads the local play history; shown best effort.
func (s *homeScreen) refreshHistory() {
	if s.root.history == nil {
		s.recent.SetText("No history available.")
		return
	}
	entries, err := s.root.history.List()
	if err != nil {
		s.root.log.Warn("could not read history", "err", err)
		s.recent.SetText("No history available.")
		return
	}
	if len(entries) == 0 {
		s.recent.SetText("No games played yet.")
		return
	}

	var b strings.Builder
	for i, entry := range entries {
		if i == 5 {
			break
		}
		medal := Medal(entry.Placement)
		if medal != "" {
			medal = " " + medal
		}
		fmt.Fprintf(&b, "%s — %s as %s: %d pts%s\n",
			entry.FinishedAt.Format("2006-01-02 15:04"),
			tview.Escape(entry.QuizTitle),
			tview.Escape(entry.Nickname),
			entry.Score,
			medal,
		)
	}
	s.recent.SetText(b.String())
}
