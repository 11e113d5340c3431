package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"popquiz-client/internal/domain"
	"popquiz-client/internal/game"
)

// gameScreen renders game play. It implements game.Presenter; every
// method marshals onto the UI thread, so the controller may call from
// any goroutine.
type gameScreen struct {
	root       *Root
	question   *tview.TextView
	optionsBox *tview.Flex
	options    []*tview.Button
	status     *tview.TextView
	controls   *tview.Form
	layout     *tview.Flex
}

func newGameScreen(root *Root) *gameScreen {
	s := &gameScreen{root: root}

	s.question = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	s.question.SetBorder(true)

	s.optionsBox = tview.NewFlex().SetDirection(tview.FlexRow)

	s.status = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)

	s.controls = tview.NewForm()
	s.controls.SetButtonsAlign(tview.AlignCenter)

	s.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.status, 1, 0, false).
		AddItem(s.question, 5, 0, false).
		AddItem(s.optionsBox, 0, 1, true).
		AddItem(s.controls, 3, 0, false)
	return s
}

func (s *gameScreen) primitive() tview.Primitive { return s.layout }

func (s *gameScreen) ShowQuestion(index, total int, question domain.Question) {
	s.root.post(func() {
		s.question.SetText(fmt.Sprintf("Question %d of %d\n\n%s",
			index+1, total, tview.Escape(question.Text)))

		s.optionsBox.Clear()
		s.options = s.options[:0]
		for i, option := range question.Options {
			i := i
			button := tview.NewButton(OptionLabel(i, option))
			button.SetSelectedFunc(func() { s.root.controller.Select(i) })
			s.options = append(s.options, button)
			s.optionsBox.AddItem(button, 3, 0, i == 0)
		}
		s.root.app.SetFocus(s.optionsBox)
	})
}

func (s *gameScreen) ShowCountdown(remaining int, band game.Band) {
	s.root.post(func() {
		color := "green"
		switch band {
		case game.BandAlert:
			color = "red"
		case game.BandWarning:
			color = "yellow"
		}
		s.setStatus(fmt.Sprintf("[%s]⏱ %2d[-]", color, remaining), s.root.session.Score())
	})
}

func (s *gameScreen) ShowScore(total int) {
	s.root.post(func() {
		s.setStatus("", total)
	})
}

func (s *gameScreen) setStatus(timer string, score int) {
	if timer == "" {
		timer = "⏱ --"
	}
	s.status.SetText(fmt.Sprintf("%s    Score: %d", timer, score))
}

func (s *gameScreen) MarkSelection(option int) {
	s.root.post(func() {
		if option < 0 || option >= len(s.options) {
			return
		}
		s.options[option].SetBackgroundColor(tcell.ColorDarkBlue)
	})
}

func (s *gameScreen) DisableOptions() {
	s.root.post(func() {
		for _, button := range s.options {
			button.SetDisabled(true)
		}
	})
}

func (s *gameScreen) RevealAnswer(correctIndex, chosenIndex int, correct bool) {
	s.root.post(func() {
		if correctIndex >= 0 && correctIndex < len(s.options) {
			s.options[correctIndex].SetBackgroundColor(tcell.ColorDarkGreen)
		}
		if !correct && chosenIndex >= 0 && chosenIndex < len(s.options) && chosenIndex != correctIndex {
			s.options[chosenIndex].SetBackgroundColor(tcell.ColorDarkRed)
		}
	})
}

func (s *gameScreen) ShowControls(controls game.Controls) {
	s.root.post(func() {
		s.controls.Clear(true)
		switch controls {
		case game.ControlsNext:
			s.controls.AddButton("Next question", func() { s.root.controller.Next() })
		case game.ControlsFinish:
			s.controls.AddButton("Finish quiz", func() { s.root.controller.Finish() })
		case game.ControlsRetry:
			s.controls.AddButton("Retry submission", func() { s.root.controller.Retry() })
		}
		if controls != game.ControlsNone {
			s.root.app.SetFocus(s.controls)
		}
	})
}

func (s *gameScreen) ShowResults(results domain.Results) {
	s.root.post(func() {
		s.root.showResults(results)
	})
}
