package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"popquiz-client/internal/domain"
)

// resultsScreen renders the final leaderboard exactly as the server
// ordered it.
type resultsScreen struct {
	root    *Root
	board   *tview.TextView
	actions *tview.Form
	layout  *tview.Flex
}

func newResultsScreen(root *Root) *resultsScreen {
	s := &resultsScreen{root: root}

	s.board = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	s.board.SetBorder(true).SetTitle(" Final Results ")

	s.actions = tview.NewForm()
	s.actions.AddButton("Play again", func() { root.playAgain() })
	s.actions.AddButton("Quit", func() { root.Quit() })
	s.actions.SetButtonsAlign(tview.AlignCenter)

	s.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.board, 0, 1, false).
		AddItem(s.actions, 3, 0, true)
	return s
}

func (s *resultsScreen) primitive() tview.Primitive { return s.layout }

func (s *resultsScreen) render(results domain.Results, ownNickname string) {
	if len(results.Leaderboard) == 0 {
		s.board.SetText("No results reported.")
		return
	}

	var b strings.Builder
	for i, entry := range results.Leaderboard {
		position := i + 1
		marker := ""
		if entry.Nickname == ownNickname {
			marker = " (you)"
		}
		fmt.Fprintf(&b, "[%s]%d %s  %s%s — %d pts[-]\n",
			placementColor(position),
			position,
			Medal(position),
			tview.Escape(entry.Nickname),
			marker,
			entry.Score,
		)
	}
	s.board.SetText(b.String())
}
