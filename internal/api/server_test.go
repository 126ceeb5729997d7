package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wisein/internal/config"
	"github.com/abhisek/wisein/internal/question"
	"github.com/abhisek/wisein/internal/tutor"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := tutor.New(question.SeedCatalog(), config.DefaultConfig(), tutor.Deps{})
	srv := httptest.NewServer(NewRouter(svc, Options{CORSOrigins: []string{"*"}}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func itemIDs(t *testing.T, v any) []float64 {
	t.Helper()
	items, ok := v.([]any)
	require.True(t, ok, "items is %T", v)
	ids := make([]float64, len(items))
	for i, it := range items {
		ids[i] = it.(map[string]any)["id"].(float64)
	}
	return ids
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, body := do(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))
}

func TestListPool(t *testing.T) {
	srv := newTestServer(t)

	_, body := do(t, srv, http.MethodGet, "/v1/pool?topic=aws", "")
	assert.Equal(t, []float64{201, 202}, itemIDs(t, body["items"]))

	first := body["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "hard", first["level"])
	assert.Equal(t, "Which AWS service runs code serverless?", first["q"])
	assert.NotContains(t, first, "a")

	_, body = do(t, srv, http.MethodGet, "/v1/pool", "")
	assert.Len(t, body["items"], len(question.Seed()))
}

func TestSolveQuiz_Catalog(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/v1/quiz",
		`{"constraints":{"size":2,"topic":"python","min_skill_category":{"grammar":1}}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, []float64{101, 105}, itemIDs(t, body["items"]))
	stats := body["stats"].(map[string]any)
	assert.Equal(t, true, stats["success"])
	assert.Contains(t, stats, "time_seconds")
	assert.Contains(t, stats, "steps")
}

func TestSolveQuiz_ExplicitPool(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"constraints": {"size": 2, "min_hard": 1},
		"pool": [
			{"id": 1, "topic": "go", "level": "easy", "type": "multiple_choice", "category": "vocab"},
			{"id": 2, "topic": "go", "level": "hard", "type": "multiple_choice", "category": "vocab"}
		]
	}`
	resp, out := do(t, srv, http.MethodPost, "/v1/quiz", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []float64{1, 2}, itemIDs(t, out["items"]))
}

func TestSolveQuiz_ExplicitPoolIgnoresCatalogPrompts(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"constraints": {"size": 1},
		"pool": [{"id": 101, "topic": "rust", "level": "easy", "type": "true_false", "category": "vocab"}]
	}`
	resp, out := do(t, srv, http.MethodPost, "/v1/quiz", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items := out["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "rust", item["topic"])
	assert.NotContains(t, item, "q")
}

func poolJSON(n int) string {
	var b strings.Builder
	b.WriteString("[")
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"id":%d,"topic":"go","level":"easy","type":"true_false","category":"vocab"}`, i)
	}
	b.WriteString("]")
	return b.String()
}

func TestSolveQuiz_Limits(t *testing.T) {
	svc := tutor.New(question.SeedCatalog(), config.DefaultConfig(), tutor.Deps{})
	srv := httptest.NewServer(NewRouter(svc, Options{
		Limits: config.APIConfig{MaxPoolSize: 40, MaxQuizSize: 12, MaxSearchStates: 10_000},
	}))
	t.Cleanup(srv.Close)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"pool too large", `{"constraints":{"size":1},"pool":` + poolJSON(41) + `}`, "at most 40"},
		{"size too large", `{"constraints":{"size":13,"topic":"python"}}`, "limit of 12"},
		{"search too large", `{"constraints":{"size":10,"topic":"go","min_hard":1},"pool":` + poolJSON(30) + `}`, "too large a search"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := do(t, srv, http.MethodPost, "/v1/quiz", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, out["error"], tt.wantErr)
		})
	}

	resp, out := do(t, srv, http.MethodPost, "/v1/quiz", `{"constraints":{"size":2,"topic":"go"},"pool":`+poolJSON(30)+`}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []float64{1, 2}, itemIDs(t, out["items"]))
}

func TestSolveQuiz_NoSolution(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/v1/quiz", `{"constraints":{"size":3,"topic":"AWS"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["items"])
	stats := body["stats"].(map[string]any)
	assert.Equal(t, false, stats["success"])
	assert.Equal(t, float64(0), stats["steps"])
}

func TestSolveQuiz_BadBody(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/v1/quiz", `{"constraints":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "invalid request body")

	resp, _ = do(t, srv, http.MethodPost, "/v1/quiz", `{"unknown":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPlanQuiz(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/v1/quiz/plan", `{"topic":"Python"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "python", body["topic"])
	assert.Equal(t, "Python", body["requested_topic"])
	assert.Equal(t, false, body["fallback"])
	assert.Equal(t, []float64{101, 102, 103}, itemIDs(t, body["items"]))

	resp, body = do(t, srv, http.MethodPost, "/v1/quiz/plan", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "topic is required", body["error"])
}

func TestNextInterviewQuestion(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/v1/interview/next", `{"topic":"python","history":[103]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	item := body["item"].(map[string]any)
	assert.Equal(t, float64(105), item["id"])
	assert.NotEmpty(t, item["q"])

	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(9), stats["steps"])

	resp, body = do(t, srv, http.MethodPost, "/v1/interview/next", `{"topic":"aws","history":[201,202]}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, tutor.ErrNoQuestions.Error(), body["error"])
}

func TestCheckAnswer(t *testing.T) {
	srv := newTestServer(t)

	_, body := do(t, srv, http.MethodPost, "/v1/answer", `{"id":201,"response":"Lambda"}`)
	assert.Equal(t, true, body["correct"])
	assert.Equal(t, "Correct.", body["message"])

	_, body = do(t, srv, http.MethodPost, "/v1/answer", `{"id":201,"response":"ec2"}`)
	assert.Equal(t, false, body["correct"])
	assert.Equal(t, "lambda", body["expected"])

	resp, _ := do(t, srv, http.MethodPost, "/v1/answer", `{"id":999,"response":"x"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/v1/quiz", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
