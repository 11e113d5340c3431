package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"popquiz-client/internal/api"
	"popquiz-client/internal/domain"
)

const maxOptions = 4

var difficulties = []string{
	string(domain.DifficultyEasy),
	string(domain.DifficultyMedium),
	string(domain.DifficultyHard),
}

// questionRow is one editable question entry in the authoring form.
type questionRow struct {
	form *tview.Form
}

// Form item positions within a question row.
const (
	itemQuestionText = 0
	itemFirstOption  = 1
	itemCorrect      = itemFirstOption + maxOptions
	itemDifficulty   = itemCorrect + 1
	itemCategory     = itemDifficulty + 1
)

func newQuestionRow(remove func(*questionRow)) *questionRow {
	row := &questionRow{form: tview.NewForm()}
	row.form.AddInputField("Question", "", 60, nil, nil)
	for i := 0; i < maxOptions; i++ {
		row.form.AddInputField(fmt.Sprintf("Option %c", 'A'+i), "", 40, nil, nil)
	}
	row.form.AddDropDown("Correct answer", []string{"(choose)", "A", "B", "C", "D"}, 0, nil)
	row.form.AddDropDown("Difficulty", difficulties, 0, nil)
	row.form.AddInputField("Category", "", 30, nil, nil)
	row.form.AddButton("Remove question", func() { remove(row) })
	row.form.SetBorder(true)
	return row
}

func (row *questionRow) input(index int) *tview.InputField {
	return row.form.GetFormItem(index).(*tview.InputField)
}

func (row *questionRow) dropdown(index int) *tview.DropDown {
	return row.form.GetFormItem(index).(*tview.DropDown)
}

// draft reads the row into a QuestionDraft; the correct-answer choice
// "(choose)" maps to the not-chosen sentinel.
func (row *questionRow) draft() domain.QuestionDraft {
	options := make([]string, maxOptions)
	for i := 0; i < maxOptions; i++ {
		options[i] = row.input(itemFirstOption + i).GetText()
	}
	correctChoice, _ := row.dropdown(itemCorrect).GetCurrentOption()
	difficultyIdx, _ := row.dropdown(itemDifficulty).GetCurrentOption()

	return domain.QuestionDraft{
		Text:         row.input(itemQuestionText).GetText(),
		Options:      options,
		CorrectIndex: correctChoice - 1, // "(choose)" -> -1
		Difficulty:   domain.Difficulty(difficulties[difficultyIdx]),
		Category:     row.input(itemCategory).GetText(),
	}
}

// createScreen is the quiz authoring form: a title, a host nickname,
// and a dynamic list of question rows.
type createScreen struct {
	root    *Root
	header  *tview.Form
	rows    []*questionRow
	rowsBox *tview.Flex
	layout  *tview.Flex
}

func newCreateScreen(root *Root) *createScreen {
	s := &createScreen{root: root}

	s.header = tview.NewForm()
	s.header.AddInputField("Quiz title", "", 40, nil, nil)
	s.header.AddInputField("Your nickname (to play along)", "", 30, nil, nil)
	s.header.AddDropDown("Mode", []string{"manual", "automatic"}, 0, func(_ string, index int) {
		if index == 1 {
			root.notifier.Info("🚧 Automatic quiz creation is coming soon! Using manual mode instead.")
			s.header.GetFormItem(2).(*tview.DropDown).SetCurrentOption(0)
		}
	})
	s.header.AddButton("Add question", func() { s.addRow() })
	s.header.AddButton("Create quiz", func() { s.submit() })
	s.header.AddButton("Back", func() { root.Show(ScreenHome) })
	s.header.SetBorder(true).SetTitle(" Create Quiz ")

	s.rowsBox = tview.NewFlex().SetDirection(tview.FlexRow)
	s.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.header, 9, 0, true).
		AddItem(s.rowsBox, 0, 1, false)

	s.addRow()
	return s
}

func (s *createScreen) primitive() tview.Primitive { return s.layout }

func (s *createScreen) addRow() {
	row := newQuestionRow(s.removeRow)
	s.rows = append(s.rows, row)
	s.rowsBox.AddItem(row.form, 19, 0, false)
}

func (s *createScreen) removeRow(row *questionRow) {
	for i, existing := range s.rows {
		if existing == row {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			s.rowsBox.RemoveItem(row.form)
			return
		}
	}
}

func (s *createScreen) titleField() *tview.InputField {
	return s.header.GetFormItem(0).(*tview.InputField)
}

func (s *createScreen) nicknameField() *tview.InputField {
	return s.header.GetFormItem(1).(*tview.InputField)
}

// submit validates the draft locally; nothing is sent while any row is
// invalid. On success the new quiz becomes the session's current quiz
// and the lobby opens.
func (s *createScreen) submit() {
	draft := domain.QuizDraft{Title: s.titleField().GetText()}
	for _, row := range s.rows {
		draft.Questions = append(draft.Questions, row.draft())
	}

	questions, err := draft.Validate()
	if err != nil {
		s.root.notifier.Error(err.Error())
		return
	}

	title := draft.Title
	nickname := s.nicknameField().GetText()
	root := s.root
	go func() {
		quiz, err := root.client.CreateQuiz(root.ctx, title, questions)
		if err != nil {
			root.post(func() { notifyRequestError(root, err, "Failed to create quiz") })
			return
		}

		var player domain.Player
		joined := true
		if nickname != "" {
			player, err = root.client.JoinQuiz(root.ctx, quiz.Code, nickname)
			if err != nil {
				joined = false
				root.post(func() { notifyRequestError(root, err, "Failed to join your own quiz") })
			}
		}

		root.post(func() {
			root.session.Reset()
			root.session.SetPlayer(player, true)
			// on a failed self-join the error banner stays up so the
			// host learns they are not a player
			if joined {
				root.notifier.Success("Quiz created successfully!")
			}
			root.enterLobby(quiz)
		})
	}()
}

// notifyRequestError shows the server's message verbatim, or a generic
// network error for transport failures.
func notifyRequestError(root *Root, err error, fallback string) {
	if serverErr, ok := api.AsServerError(err); ok {
		root.notifier.Error(serverErr.Message)
		return
	}
	root.log.Warn("request failed", "err", err)
	root.notifier.Error(fallback + ": network error")
}
