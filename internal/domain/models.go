package domain

// Status is the lifecycle state of a quiz as reported by the server.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
)

// IsActive reports whether the quiz has started.
func (s Status) IsActive() bool { return s == StatusActive }

// IsCompleted reports whether the quiz has finished.
func (s Status) IsCompleted() bool { return s == StatusCompleted }

// Difficulty of a single question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DefaultCategory is used when the author leaves the category blank.
const DefaultCategory = "general"

// NoAnswer is the sentinel option index submitted when the countdown
// expires before the player picks an option. The server treats it as
// guaranteed incorrect.
const NoAnswer = -1

// Question is an MCQ question with a single correct option.
// Immutable once the quiz is created.
type Question struct {
	Text         string     `json:"text"`
	Options      []string   `json:"options"`
	CorrectIndex int        `json:"correctIndex"`
	Difficulty   Difficulty `json:"difficulty"`
	Category     string     `json:"category"`
}

// Player is a participant in a quiz. Score is mutated only by the
// server in response to answer submissions.
type Player struct {
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
}

// Quiz is the client's read-only snapshot of a quiz, refreshed by
// polling. The server owns its lifecycle.
type Quiz struct {
	Code      string     `json:"code"`
	Title     string     `json:"title"`
	Status    Status     `json:"status"`
	Questions []Question `json:"questions"`
	Players   []Player   `json:"players"`
}

// LeaderboardEntry is one row of the server's ranked result list.
// Order is authoritative; the client never re-sorts.
type LeaderboardEntry struct {
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
}

// Results is the final scoreboard for a completed quiz.
type Results struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// AnswerResult summarizes the server's verdict on one submission.
// TotalScore is the authoritative cumulative score; the client's local
// mirror is overwritten with it.
type AnswerResult struct {
	Correct      bool `json:"correct"`
	CorrectIndex int  `json:"correctIndex"`
	ScoreGained  int  `json:"scoreGained"`
	TotalScore   int  `json:"totalScore"`
}
