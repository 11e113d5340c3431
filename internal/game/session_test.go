package game

import (
	"testing"

	"popquiz-client/internal/domain"
)

func TestResetMintsNewEpochAndClearsState(t *testing.T) {
	s := NewSession()
	before := s.Epoch()

	s.SetQuiz(domain.Quiz{Code: "AB12"})
	s.SetPlayer(domain.Player{Nickname: "alice"}, true)
	s.AdvanceQuestion()
	s.SetScore(40)

	s.Reset()

	if s.Matches(before) {
		t.Error("old epoch must not match after reset")
	}
	if _, ok := s.Quiz(); ok {
		t.Error("quiz should be cleared")
	}
	if s.Player().Nickname != "" || s.IsHost() {
		t.Error("player identity should be cleared")
	}
	if s.QuestionIndex() != 0 || s.Score() != 0 {
		t.Error("progress should be cleared")
	}
}

func TestRestartProgressKeepsIdentity(t *testing.T) {
	s := NewSession()
	epoch := s.Epoch()
	s.SetQuiz(domain.Quiz{Code: "AB12"})
	s.AdvanceQuestion()
	s.SetScore(10)

	s.RestartProgress()

	if !s.Matches(epoch) {
		t.Error("restart must not change the epoch")
	}
	if s.QuestionIndex() != 0 || s.Score() != 0 {
		t.Error("restart should zero progress")
	}
	if _, ok := s.Quiz(); !ok {
		t.Error("restart should keep the quiz snapshot")
	}
}
