package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"popquiz-client/internal/domain"
)

// Client talks to the popQuiz REST service. All real quiz logic
// (scoring, correctness, lifecycle) lives on the server; the client
// only relays requests and surfaces responses.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// NewClient builds a Client for the given service root, e.g.
// "http://localhost:8080/api".
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger,
	}
}

type createQuizRequest struct {
	Title     string            `json:"title"`
	Mode      string            `json:"mode"`
	Questions []domain.Question `json:"questions"`
}

type joinQuizRequest struct {
	QuizCode string `json:"quizCode"`
	Nickname string `json:"nickname"`
}

// AnswerSubmission is the payload for one answer. TimeTaken is seconds
// elapsed within the question's countdown window.
type AnswerSubmission struct {
	QuizCode      string `json:"quizCode"`
	Nickname      string `json:"nickname"`
	QuestionIndex int    `json:"questionIndex"`
	ChosenIndex   int    `json:"chosenIndex"`
	TimeTaken     int    `json:"timeTaken"`
}

// Registration is the signup payload.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateQuiz submits an authored quiz. Mode is always "manual"; the
// auto-generation mode is not implemented by this client.
func (c *Client) CreateQuiz(ctx context.Context, title string, questions []domain.Question) (domain.Quiz, error) {
	var quiz domain.Quiz
	req := createQuizRequest{Title: title, Mode: "manual", Questions: questions}
	if err := c.do(ctx, http.MethodPost, "/quizzes/create", req, &quiz); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

// JoinQuiz attaches a player to an existing quiz by join code.
func (c *Client) JoinQuiz(ctx context.Context, code, nickname string) (domain.Player, error) {
	var player domain.Player
	req := joinQuizRequest{QuizCode: code, Nickname: nickname}
	if err := c.do(ctx, http.MethodPost, "/quizzes/join", req, &player); err != nil {
		return domain.Player{}, err
	}
	return player, nil
}

// GetQuiz fetches the current snapshot of a quiz, including status,
// players, and questions.
func (c *Client) GetQuiz(ctx context.Context, code string) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := c.do(ctx, http.MethodGet, "/quizzes/"+url.PathEscape(code), nil, &quiz); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

// StartQuiz moves a pending quiz to ACTIVE. Host-only action.
func (c *Client) StartQuiz(ctx context.Context, code string) error {
	return c.do(ctx, http.MethodPost, "/quizzes/start/"+url.PathEscape(code), nil, nil)
}

// SubmitAnswer sends one answer and returns the server's verdict.
func (c *Client) SubmitAnswer(ctx context.Context, submission AnswerSubmission) (domain.AnswerResult, error) {
	var result domain.AnswerResult
	if err := c.do(ctx, http.MethodPost, "/quizzes/answer", submission, &result); err != nil {
		return domain.AnswerResult{}, err
	}
	return result, nil
}

// CompleteQuiz marks the quiz finished so results can be fetched.
func (c *Client) CompleteQuiz(ctx context.Context, code string) error {
	return c.do(ctx, http.MethodPost, "/quizzes/"+url.PathEscape(code)+"/complete", nil, nil)
}

// GetResults fetches the final leaderboard. Order is authoritative.
func (c *Client) GetResults(ctx context.Context, code string) (domain.Results, error) {
	var results domain.Results
	if err := c.do(ctx, http.MethodGet, "/quizzes/"+url.PathEscape(code)+"/results", nil, &results); err != nil {
		return domain.Results{}, err
	}
	return results, nil
}

// ListActiveQuizzes fetches joinable quizzes.
func (c *Client) ListActiveQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	var quizzes []domain.Quiz
	if err := c.do(ctx, http.MethodGet, "/quizzes/active", nil, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

// RegisterUser creates a new account.
func (c *Client) RegisterUser(ctx context.Context, reg Registration) error {
	return c.do(ctx, http.MethodPost, "/users/register", reg, nil)
}

// do performs one request/response cycle. Transport and decode failures
// wrap ErrNetwork; non-2xx responses become ServerError, with the
// service's {error} message when it sends one.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrNetwork, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", method, "path", path, "err", err)
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.serverError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrNetwork, err)
	}
	return nil
}

func (c *Client) serverError(resp *http.Response) error {
	payload := struct {
		Error string `json:"error"`
	}{}
	message := fmt.Sprintf("request failed (status %d)", resp.StatusCode)
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		message = payload.Error
	}
	return &ServerError{StatusCode: resp.StatusCode, Message: message}
}
