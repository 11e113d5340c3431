package domain

import "errors"

var (
	// ErrMissingTitle is returned when a draft quiz has no title.
	ErrMissingTitle = errors.New("please enter a quiz title")
	// ErrNoQuestions is returned when a draft quiz has no questions.
	ErrNoQuestions = errors.New("please add at least one question")
	// ErrMissingQuestionText is returned when a question has no text.
	ErrMissingQuestionText = errors.New("please fill in all question texts")
	// ErrTooFewOptions is returned when a question has fewer than two non-empty options.
	ErrTooFewOptions = errors.New("each question must have at least 2 options")
	// ErrNoCorrectOption is returned when no correct answer is marked.
	ErrNoCorrectOption = errors.New("please select the correct answer for each question")
	// ErrCorrectOptionBlank is returned when the marked correct option is an empty field.
	ErrCorrectOptionBlank = errors.New("the correct answer cannot be a blank option")
)
