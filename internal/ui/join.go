package ui

import (
	"strings"

	"github.com/rivo/tview"
)

// joinScreen collects a join code and nickname.
type joinScreen struct {
	root *Root
	form *tview.Form
}

func newJoinScreen(root *Root) *joinScreen {
	s := &joinScreen{root: root}
	s.form = tview.NewForm()
	s.form.AddInputField("Quiz code", "", 12, nil, nil)
	s.form.AddInputField("Nickname", "", 24, nil, nil)
	s.form.AddButton("Join", func() { s.submit() })
	s.form.AddButton("Back", func() { root.Show(ScreenHome) })
	s.form.SetBorder(true).SetTitle(" Join Quiz ")
	return s
}

func (s *joinScreen) primitive() tview.Primitive { return s.form }

// prefill sets the code field; used by the active list's quick join.
func (s *joinScreen) prefill(code string) {
	s.form.GetFormItem(0).(*tview.InputField).SetText(code)
}

func (s *joinScreen) submit() {
	code := strings.TrimSpace(s.form.GetFormItem(0).(*tview.InputField).GetText())
	nickname := strings.TrimSpace(s.form.GetFormItem(1).(*tview.InputField).GetText())
	if code == "" || nickname == "" {
		s.root.notifier.Error("Please enter both quiz code and nickname")
		return
	}

	root := s.root
	go func() {
		player, err := root.client.JoinQuiz(root.ctx, code, nickname)
		if err != nil {
			root.post(func() { notifyRequestError(root, err, "Failed to join quiz") })
			return
		}
		quiz, err := root.client.GetQuiz(root.ctx, code)
		if err != nil {
			root.post(func() { notifyRequestError(root, err, "Failed to get quiz details") })
			return
		}

		root.post(func() {
			root.session.Reset()
			root.session.SetPlayer(player, false)
			root.notifier.Success("Joined quiz successfully!")
			root.enterLobby(quiz)
		})
	}()
}
