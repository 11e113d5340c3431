package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// activeScreen lists joinable quizzes with quick join.
type activeScreen struct {
	root    *Root
	list    *tview.List
	actions *tview.Form
	layout  *tview.Flex
}

func newActiveScreen(root *Root) *activeScreen {
	s := &activeScreen{root: root}

	s.list = tview.NewList()
	s.list.SetBorder(true).SetTitle(" Active Quizzes ")

	s.actions = tview.NewForm()
	s.actions.AddButton("Refresh", func() { s.refresh() })
	s.actions.AddButton("Back", func() { root.Show(ScreenHome) })
	s.actions.SetButtonsAlign(tview.AlignCenter)

	s.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.list, 0, 1, true).
		AddItem(s.actions, 3, 0, false)
	return s
}

func (s *activeScreen) primitive() tview.Primitive { return s.layout }

// refresh reloads the list in the background.
func (s *activeScreen) refresh() {
	s.list.Clear()
	s.list.AddItem("Loading active quizzes...", "", 0, nil)

	root := s.root
	go func() {
		quizzes, err := root.client.ListActiveQuizzes(root.ctx)
		if err != nil {
			root.post(func() {
				s.list.Clear()
				s.list.AddItem("Failed to load active quizzes", "", 0, nil)
				notifyRequestError(root, err, "Failed to load quizzes")
			})
			return
		}

		root.post(func() {
			s.list.Clear()
			if len(quizzes) == 0 {
				s.list.AddItem("No active quizzes found. Create one to get started!", "", 0, nil)
				return
			}
			for _, quiz := range quizzes {
				code := quiz.Code
				s.list.AddItem(
					quiz.Title,
					fmt.Sprintf("Code: %s | Status: %s | Players: %d", quiz.Code, quiz.Status, len(quiz.Players)),
					0,
					func() { s.quickJoin(code) },
				)
			}
		})
	}()
}

// quickJoin pre-fills the join form with the chosen code.
func (s *activeScreen) quickJoin(code string) {
	s.root.join.prefill(code)
	s.root.Show(ScreenJoin)
}
