package game

import (
	"sync"

	"github.com/google/uuid"

	"popquiz-client/internal/domain"
)

// Session holds one play-through's client-local state: the current quiz
// snapshot, the player identity, progress, and an advisory score mirror
// of the server's truth.
//
// Every Reset mints a new epoch. In-flight request callbacks capture
// the epoch they were issued under and are dropped if the session has
// since been reset, so a late response can never leak into the next
// game ("play again" race).
type Session struct {
	mu      sync.RWMutex
	epoch   string
	quiz    domain.Quiz
	player  domain.Player
	index   int
	score   int
	hasQuiz bool
	isHost  bool
}

// NewSession returns an empty session with a fresh epoch.
func NewSession() *Session {
	return &Session{epoch: uuid.NewString()}
}

// Reset clears all state and mints a new epoch.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch = uuid.NewString()
	s.quiz = domain.Quiz{}
	s.player = domain.Player{}
	s.index = 0
	s.score = 0
	s.hasQuiz = false
	s.isHost = false
}

// Epoch returns the current session identity tag.
func (s *Session) Epoch() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// Matches reports whether epoch is still the live session identity.
func (s *Session) Matches(epoch string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch == epoch
}

// SetQuiz replaces the quiz snapshot.
func (s *Session) SetQuiz(quiz domain.Quiz) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quiz = quiz
	s.hasQuiz = true
}

// Quiz returns the current snapshot and whether one is set.
func (s *Session) Quiz() (domain.Quiz, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quiz, s.hasQuiz
}

// SetPlayer records the joined player identity. Host marks the session
// as created by this client, which enables the start-quiz action.
func (s *Session) SetPlayer(player domain.Player, host bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player = player
	s.isHost = host
}

// Player returns the current player identity.
func (s *Session) Player() domain.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player
}

// IsHost reports whether this client created the current quiz.
func (s *Session) IsHost() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isHost
}

// QuestionIndex returns the zero-based current question index.
func (s *Session) QuestionIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// AdvanceQuestion moves to the next question.
func (s *Session) AdvanceQuestion() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index++
}

// RestartProgress zeroes the question index and score mirror without
// touching identity; used when game play begins.
func (s *Session) RestartProgress() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = 0
	s.score = 0
}

// Score returns the advisory local score mirror.
func (s *Session) Score() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.score
}

// SetScore overwrites the mirror with the server's authoritative total.
func (s *Session) SetScore(total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.score = total
}
