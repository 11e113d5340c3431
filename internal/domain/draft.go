package domain

import "strings"

// QuestionDraft is one editable row of the quiz authoring form. Option
// slots may be left blank; CorrectIndex refers to the slot as displayed
// and is NoAnswer until the author marks one.
type QuestionDraft struct {
	Text         string
	Options      []string
	CorrectIndex int
	Difficulty   Difficulty
	Category     string
}

// QuizDraft is an in-progress quiz as collected by the authoring form.
type QuizDraft struct {
	Title     string
	Questions []QuestionDraft
}

// Validate checks the draft and compiles it into the questions to send
// in a creation request. It fails fast on the first invalid row so the
// author sees one problem at a time. Blank option slots are dropped and
// the correct-answer mark is re-mapped onto the compacted option list.
func (d QuizDraft) Validate() ([]Question, error) {
	if strings.TrimSpace(d.Title) == "" {
		return nil, ErrMissingTitle
	}
	if len(d.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	questions := make([]Question, 0, len(d.Questions))
	for _, row := range d.Questions {
		q, err := row.compile()
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (q QuestionDraft) compile() (Question, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return Question{}, ErrMissingQuestionText
	}

	// Drop blank slots, remembering where the marked option lands in
	// the compacted list.
	options := make([]string, 0, len(q.Options))
	correct := NoAnswer
	for i, opt := range q.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			if i == q.CorrectIndex {
				return Question{}, ErrCorrectOptionBlank
			}
			continue
		}
		if i == q.CorrectIndex {
			correct = len(options)
		}
		options = append(options, opt)
	}
	if len(options) < 2 {
		return Question{}, ErrTooFewOptions
	}
	if q.CorrectIndex == NoAnswer || correct == NoAnswer {
		return Question{}, ErrNoCorrectOption
	}

	difficulty := q.Difficulty
	if difficulty == "" {
		difficulty = DifficultyEasy
	}
	category := strings.TrimSpace(q.Category)
	if category == "" {
		category = DefaultCategory
	}

	return Question{
		Text:         text,
		Options:      options,
		CorrectIndex: correct,
		Difficulty:   difficulty,
		Category:     category,
	}, nil
}
