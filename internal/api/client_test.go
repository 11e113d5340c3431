package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"popquiz-client/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/api", 2*time.Second, nil), server
}

func TestCreateQuizSendsAuthoredPayload(t *testing.T) {
	var got map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/quizzes/create" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(domain.Quiz{Code: "AB12", Title: "Geography", Status: domain.StatusPending})
	}))

	questions := []domain.Question{{
		Text:         "Capital of France?",
		Options:      []string{"Paris", "Lyon", "Nice"},
		CorrectIndex: 0,
		Difficulty:   domain.DifficultyEasy,
		Category:     domain.DefaultCategory,
	}}
	quiz, err := client.CreateQuiz(context.Background(), "Geography", questions)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if quiz.Code != "AB12" {
		t.Errorf("expected code AB12, got %q", quiz.Code)
	}

	if got["title"] != "Geography" || got["mode"] != "manual" {
		t.Errorf("unexpected envelope: %v", got)
	}
	sent := got["questions"].([]any)[0].(map[string]any)
	if sent["text"] != "Capital of France?" || sent["correctIndex"] != float64(0) {
		t.Errorf("unexpected question payload: %v", sent)
	}
	if sent["difficulty"] != "easy" || sent["category"] != "general" {
		t.Errorf("unexpected metadata: %v", sent)
	}
}

func TestSubmitAnswerPayloadAndVerdict(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var submission AnswerSubmission
		if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
			t.Fatalf("decode submission: %v", err)
		}
		if submission.TimeTaken != 9 || submission.ChosenIndex != 1 {
			t.Errorf("unexpected submission %+v", submission)
		}
		json.NewEncoder(w).Encode(domain.AnswerResult{
			Correct:      false,
			CorrectIndex: 2,
			ScoreGained:  0,
			TotalScore:   40,
		})
	}))

	result, err := client.SubmitAnswer(context.Background(), AnswerSubmission{
		QuizCode:      "AB12",
		Nickname:      "alice",
		QuestionIndex: 3,
		ChosenIndex:   1,
		TimeTaken:     9,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Correct || result.CorrectIndex != 2 || result.TotalScore != 40 {
		t.Errorf("unexpected verdict %+v", result)
	}
}

func TestServerErrorIsSurfacedVerbatim(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "nickname already taken"})
	}))

	_, err := client.JoinQuiz(context.Background(), "AB12", "alice")
	serverErr, ok := AsServerError(err)
	if !ok {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if serverErr.Message != "nickname already taken" {
		t.Errorf("expected verbatim message, got %q", serverErr.Message)
	}
	if serverErr.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %d", serverErr.StatusCode)
	}
}

func TestServerErrorWithoutPayloadGetsFallbackMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := client.StartQuiz(context.Background(), "AB12")
	serverErr, ok := AsServerError(err)
	if !ok {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if serverErr.Message == "" {
		t.Error("expected a fallback message")
	}
}

func TestTransportFailureWrapsErrNetwork(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // unreachable on purpose
	client := NewClient(server.URL+"/api", time.Second, nil)

	_, err := client.GetQuiz(context.Background(), "AB12")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestMalformedBodyWrapsErrNetwork(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))

	_, err := client.GetResults(context.Background(), "AB12")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestListActiveQuizzes(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/quizzes/active" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]domain.Quiz{
			{Code: "AB12", Title: "Geography", Status: domain.StatusPending},
			{Code: "CD34", Title: "History", Status: domain.StatusActive},
		})
	}))

	quizzes, err := client.ListActiveQuizzes(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(quizzes) != 2 || quizzes[1].Status != domain.StatusActive {
		t.Errorf("unexpected list %+v", quizzes)
	}
}

func TestRegisterUser(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var reg Registration
		if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
			t.Fatalf("decode registration: %v", err)
		}
		if reg.Username != "alice" || reg.Role != "USER" {
			t.Errorf("unexpected registration %+v", reg)
		}
		w.WriteHeader(http.StatusCreated)
	}))

	err := client.RegisterUser(context.Background(), Registration{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
		Role:     "USER",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
}
