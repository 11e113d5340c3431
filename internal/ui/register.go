package ui

import (
	"strings"
	"time"

	"github.com/rivo/tview"

	"popquiz-client/internal/api"
)

// registerScreen collects and validates a new-user signup.
type registerScreen struct {
	root *Root
	form *tview.Form
}

var roles = []string{"USER", "HOST"}

func newRegisterScreen(root *Root) *registerScreen {
	s := &registerScreen{root: root}
	s.form = tview.NewForm()
	s.form.AddInputField("Username", "", 24, nil, nil)
	s.form.AddInputField("Email", "", 32, nil, nil)
	s.form.AddPasswordField("Password", "", 24, '*', nil)
	s.form.AddDropDown("Role", roles, 0, nil)
	s.form.AddButton("Register", func() { s.submit() })
	s.form.AddButton("Back", func() { root.Show(ScreenHome) })
	s.form.SetBorder(true).SetTitle(" Register ")
	return s
}

func (s *registerScreen) primitive() tview.Primitive { return s.form }

func (s *registerScreen) submit() {
	username := strings.TrimSpace(s.form.GetFormItem(0).(*tview.InputField).GetText())
	email := strings.TrimSpace(s.form.GetFormItem(1).(*tview.InputField).GetText())
	password := s.form.GetFormItem(2).(*tview.InputField).GetText()
	roleIdx, _ := s.form.GetFormItem(3).(*tview.DropDown).GetCurrentOption()

	// local validation, no request sent on failure
	switch {
	case username == "":
		s.root.notifier.Error("Please enter a username")
		return
	case email == "":
		s.root.notifier.Error("Please enter an email")
		return
	case password == "":
		s.root.notifier.Error("Please enter a password")
		return
	case len(password) < 6:
		s.root.notifier.Error("Password must be at least 6 characters long")
		return
	}

	root := s.root
	registration := api.Registration{
		Username: username,
		Email:    email,
		Password: password,
		Role:     roles[roleIdx],
	}
	go func() {
		if err := root.client.RegisterUser(root.ctx, registration); err != nil {
			root.post(func() { notifyRequestError(root, err, "Failed to create account") })
			return
		}
		root.post(func() {
			root.notifier.Success("Account created successfully! You can now create and join quizzes.")
			s.clear()
		})
		time.AfterFunc(2*time.Second, func() {
			root.post(func() { root.Show(ScreenHome) })
		})
	}()
}

func (s *registerScreen) clear() {
	s.form.GetFormItem(0).(*tview.InputField).SetText("")
	s.form.GetFormItem(1).(*tview.InputField).SetText("")
	s.form.GetFormItem(2).(*tview.InputField).SetText("")
	s.form.GetFormItem(3).(*tview.DropDown).SetCurrentOption(0)
}
