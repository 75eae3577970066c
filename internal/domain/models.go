package domain

import "time"

// Category is a fixed grouping of questions. The set is closed; unknown
// categories are rejected at the edges.
type Category string

const (
	CategoryCinema           Category = "Cinema"
	CategoryGeneralKnowledge Category = "General Knowledge"
	CategoryHistory          Category = "History"
	CategoryPolitics         Category = "Politics"
)

// Categories lists every known category in a stable order.
func Categories() []Category {
	return []Category{CategoryCinema, CategoryGeneralKnowledge, CategoryHistory, CategoryPolitics}
}

// ParseCategory validates a raw category string.
func ParseCategory(raw string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// Question is an MCQ question with one correct option, compared by exact
// string equality against a selected option.
type Question struct {
	ID            string   `json:"id"`
	Category      Category `json:"category"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// AnswerRecord is one entry in a score's submission log.
type AnswerRecord struct {
	QuestionID     string   `json:"questionId"`
	SelectedOption string   `json:"selectedOption"`
	IsCorrect      bool     `json:"isCorrect"`
	Category       Category `json:"category"`
}

// Score accumulates one user's results for a single category. A question id
// appears in at most one of CorrectAnswer/InCorrectAnswer; AnsweredQuestions
// and PendingAnswer are disjoint and partition the category's question set as
// it stood when the record was created.
type Score struct {
	UserID            string            `json:"userId"`
	Category          Category          `json:"category"`
	Score             int               `json:"score"`
	CorrectAnswer     []string          `json:"correctAnswer"`
	InCorrectAnswer   []string          `json:"inCorrectAnswer"`
	AnsweredQuestions []string          `json:"answeredQuestions"`
	Answers           []AnswerRecord    `json:"answers"`
	Feedback          map[string]string `json:"feedback"`
	PendingAnswer     []string          `json:"pendingAnswer"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// NewScore builds an empty score record, seeding PendingAnswer with the full
// question-id set for the category at creation time.
func NewScore(userID string, category Category, pendingIDs []string, now time.Time) Score {
	pending := make([]string, len(pendingIDs))
	copy(pending, pendingIDs)
	return Score{
		UserID:            userID,
		Category:          category,
		CorrectAnswer:     []string{},
		InCorrectAnswer:   []string{},
		AnsweredQuestions: []string{},
		Answers:           []AnswerRecord{},
		Feedback:          map[string]string{},
		PendingAnswer:     pending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// HasAnswered reports whether the question was already answered on this score.
func (s *Score) HasAnswered(questionID string) bool {
	for _, id := range s.AnsweredQuestions {
		if id == questionID {
			return true
		}
	}
	return false
}

// GuestUserID is the sentinel identity for unauthenticated callers.
const GuestUserID = "guest"

// Identity describes the caller of a use case. Guest identities carry a
// client-issued session id scoping their ephemeral state.
type Identity struct {
	UserID    string
	Guest     bool
	SessionID string
}

// Key returns a stable identifier usable for locking and stream routing.
func (i Identity) Key() string {
	if i.Guest {
		return "guest:" + i.SessionID
	}
	return i.UserID
}

// GuestState mirrors a Score for a single category of a guest session, plus
// the question set cached for that session.
type GuestState struct {
	Questions         []Question        `json:"questions"`
	Score             int               `json:"score"`
	CorrectAnswer     []string          `json:"correctAnswer"`
	InCorrectAnswer   []string          `json:"inCorrectAnswer"`
	AnsweredQuestions []string          `json:"answeredQuestions"`
	Answers           []AnswerRecord    `json:"answers"`
	Feedback          map[string]string `json:"feedback"`
	PendingAnswer     []string          `json:"pendingAnswer"`
}

// HasAnswered reports whether the guest already answered the question.
func (g *GuestState) HasAnswered(questionID string) bool {
	for _, id := range g.AnsweredQuestions {
		if id == questionID {
			return true
		}
	}
	return false
}

// AnnotatedQuestion is a question decorated with the caller's answered status.
type AnnotatedQuestion struct {
	Question
	IsAnswered bool `json:"isAnswered"`
}

// QuestionPage is one page of a category's question feed.
type QuestionPage struct {
	Questions          []AnnotatedQuestion `json:"questions"`
	PendingAnswerCount int                 `json:"pendingAnswerCount"`
	TotalQuestions     int                 `json:"totalQuestions"`
	TotalPages         int                 `json:"totalPages"`
	CurrentPage        int                 `json:"currentPage"`
}

// SubmitResult summarizes the outcome of one answer submission.
type SubmitResult struct {
	IsCorrect        bool   `json:"isCorrect"`
	UpdatedScore     int    `json:"updatedScore"`
	FeedbackMessage  string `json:"feedbackMessage"`
	TotalQuestions   int    `json:"totalQuestions"`
	PendingQuestions int    `json:"pendingQuestions"`
	AlreadyAnswered  bool   `json:"alreadyAnswered"`
}

// SummaryRow is one per-category line of a user's score summary. Despite the
// route name this is a per-user rollup, not a cross-user ranking.
type SummaryRow struct {
	Category         Category `json:"category"`
	TotalScore       int      `json:"totalScore"`
	CorrectAnswers   int      `json:"correctAnswers"`
	IncorrectAnswers int      `json:"incorrectAnswers"`
	PendingAnswers   int      `json:"pendingAnswers"`
}
