package store

import (
	"context"
	"time"

	"github.com/abhisek/wisein/internal/question"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// QuestionRecord is a persisted question: the engine-facing item plus the
// card shown to the learner.
type QuestionRecord struct {
	Item      question.Item
	Card      question.Card
	Source    string // "seed", "llm", ...
	CreatedAt time.Time
}

// QuestionRepo persists the question bank.
type QuestionRepo interface {
	// Upsert inserts a question or replaces the one with the same ID.
	Upsert(ctx context.Context, rec QuestionRecord) error

	// List returns every question in ID order.
	List(ctx context.Context) ([]QuestionRecord, error)

	// ByTopic returns questions whose topic contains topic, ignoring case.
	ByTopic(ctx context.Context, topic string) ([]QuestionRecord, error)

	// Count returns the number of stored questions.
	Count(ctx context.Context) (int, error)
}

// SearchEventData captures one engine invocation.
type SearchEventData struct {
	Engine  string // "csp" or "adversarial"
	Topic   string
	Detail  string // constraints summary or chosen item
	Success bool
	Steps   int
	Size    int
	Elapsed time.Duration
}

// SearchEventRecord is a stored search event.
type SearchEventRecord struct {
	SearchEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	RequestID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	LLMRequestEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// LLMUsage aggregates LLM calls under one key (purpose or model).
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// SessionEventData captures a quiz or interview session start or end.
type SessionEventData struct {
	SessionID       string
	Mode            string // "quiz" or "interview"
	Action          string // "start" or "end"
	Topic           string
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// SessionEventRecord is a stored session event.
type SessionEventRecord struct {
	SessionEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// EventRepo provides append and query access to observability events.
type EventRepo interface {
	// AppendSearchEvent records a solver or selector run.
	AppendSearchEvent(ctx context.Context, data SearchEventData) error

	// QuerySearchEvents returns search events, newest first.
	QuerySearchEvents(ctx context.Context, opts QueryOpts) ([]SearchEventRecord, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns the LLM event with the given row ID or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates LLM calls per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates LLM calls per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QuerySessionEvents returns session events, newest first.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)
}
