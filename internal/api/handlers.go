package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/abhisek/wisein/internal/adversarial"
	"github.com/abhisek/wisein/internal/csp"
	"github.com/abhisek/wisein/internal/question"
	"github.com/abhisek/wisein/internal/search"
	"github.com/abhisek/wisein/internal/tutor"
)

// questionView is an item with its prompt. Answers are never sent; use
// /v1/answer to check a response.
type questionView struct {
	question.Item
	Prompt string `json:"q,omitempty"`
}

type quizRequest struct {
	Constraints csp.Constraints `json:"constraints"`
	// Pool, when set, is searched instead of the server's question bank.
	Pool question.Pool `json:"pool,omitempty"`
}

type quizResponse struct {
	Items []questionView `json:"items"`
	Stats search.Stats   `json:"stats"`
}

type planRequest struct {
	Topic string `json:"topic"`
}

type planResponse struct {
	Requested   string          `json:"requested_topic"`
	Topic       string          `json:"topic"`
	Fallback    bool            `json:"fallback"`
	Constraints csp.Constraints `json:"constraints"`
	Items       []questionView  `json:"items"`
	Stats       search.Stats    `json:"stats"`
}

type interviewRequest struct {
	Topic   string        `json:"topic"`
	History []question.ID `json:"history"`
}

type interviewResponse struct {
	Topic string       `json:"topic"`
	Item  questionView `json:"item"`
	Stats search.Stats `json:"stats"`
}

type answerRequest struct {
	ID       question.ID `json:"id"`
	Response string      `json:"response"`
}

type answerResponse struct {
	Correct  bool   `json:"correct"`
	Message  string `json:"message"`
	Expected string `json:"expected"`
}

func (s *Server) listPool(w http.ResponseWriter, r *http.Request) {
	pool := s.svc.Catalog().Pool()
	if topic := r.URL.Query().Get("topic"); topic != "" {
		pool = pool.FilterTopic(topic)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": s.views(pool)})
}

func (s *Server) solveQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if !decode(w, r, &req) {
		return
	}

	if n := len(req.Pool); n > s.limits.MaxPoolSize {
		writeErr(w, http.StatusBadRequest, fmt.Sprintf("pool has %d items, at most %d allowed", n, s.limits.MaxPoolSize))
		return
	}
	if size := req.Constraints.TargetSize; size > s.limits.MaxQuizSize {
		writeErr(w, http.StatusBadRequest, fmt.Sprintf("size %d exceeds the limit of %d", size, s.limits.MaxQuizSize))
		return
	}
	pool := req.Pool
	if pool == nil {
		pool = s.svc.Catalog().Pool()
	}
	if !csp.Bounded(pool, req.Constraints, s.limits.MaxSearchStates) {
		writeErr(w, http.StatusBadRequest, "constraints allow too large a search; narrow the topic or lower the size")
		return
	}

	res := s.svc.Solve(r.Context(), pool, req.Constraints)
	items := s.views(res.Items)
	if req.Pool != nil {
		// Client items have no cards on the server.
		items = bareViews(res.Items)
	}
	writeJSON(w, http.StatusOK, quizResponse{Items: items, Stats: res.Stats})
}

func (s *Server) planQuiz(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Topic == "" {
		writeErr(w, http.StatusBadRequest, "topic is required")
		return
	}

	plan, err := s.svc.PlanQuiz(r.Context(), req.Topic)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, planResponse{
		Requested:   plan.Requested,
		Topic:       plan.Topic,
		Fallback:    plan.Fallback,
		Constraints: plan.Constraints,
		Items:       s.views(plan.Items),
		Stats:       plan.Stats,
	})
}

func (s *Server) nextInterviewQuestion(w http.ResponseWriter, r *http.Request) {
	var req interviewRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Topic == "" {
		writeErr(w, http.StatusBadRequest, "topic is required")
		return
	}

	step, err := s.svc.NextInterviewQuestion(r.Context(), req.Topic, adversarial.NewHistory(req.History...))
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, interviewResponse{
		Topic: step.Topic,
		Item:  questionView{Item: step.Item, Prompt: step.Card.Prompt},
		Stats: step.Stats,
	})
}

func (s *Server) checkAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decode(w, r, &req) {
		return
	}
	card, ok := s.svc.Card(req.ID)
	if !ok {
		writeErr(w, http.StatusNotFound, fmt.Sprintf("question %d not found", req.ID))
		return
	}

	resp := answerResponse{Correct: card.Check(req.Response), Expected: card.Answer}
	if resp.Correct {
		resp.Message = card.CorrectFeedback
	} else {
		resp.Message = card.IncorrectFeedback
	}
	writeJSON(w, http.StatusOK, resp)
}

// views pairs catalog items with their prompts.
func (s *Server) views(items []question.Item) []questionView {
	out := make([]questionView, len(items))
	for i, it := range items {
		card, _ := s.svc.Card(it.ID)
		out[i] = questionView{Item: it, Prompt: card.Prompt}
	}
	return out
}

func bareViews(items []question.Item) []questionView {
	out := make([]questionView, len(items))
	for i, it := range items {
		out[i] = questionView{Item: it}
	}
	return out
}

func (s *Server) writeServiceErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, tutor.ErrNoQuestions):
		writeErr(w, http.StatusNotFound, err.Error())
	default:
		s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

type errResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResp{Error: msg})
}
