package app

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/akshay-rawal/Quiz-Game/internal/domain"
)

// CorrectAward is the fixed score increment for a first-time correct answer.
const CorrectAward = 2

// guestFetchCap bounds how many questions are cached per guest category.
const guestFetchCap = 10

const (
	defaultPage  = 1
	defaultLimit = 5
)

const (
	feedbackCorrect   = "Correct answer!"
	feedbackIncorrect = "Incorrect answer."
)

// QuestionRepository loads question content (from cache/backing store).
type QuestionRepository interface {
	Question(ctx context.Context, id string) (domain.Question, error)
	CategoryQuestions(ctx context.Context, category domain.Category) ([]domain.Question, error)
}

// ScoreStore persists per-(user, category) score records.
type ScoreStore interface {
	Get(ctx context.Context, userID string, category domain.Category) (domain.Score, bool, error)
	Save(ctx context.Context, score domain.Score) error
	Summary(ctx context.Context, userID string) ([]domain.SummaryRow, error)
}

// GuestStore holds ephemeral per-session quiz state.
type GuestStore interface {
	Get(ctx context.Context, sessionID string, category domain.Category) (domain.GuestState, bool, error)
	Put(ctx context.Context, sessionID string, category domain.Category, state domain.GuestState) error
	Categories(ctx context.Context, sessionID string) (map[domain.Category]domain.GuestState, error)
}

// QuestionSeeder inserts question content into the backing store.
type QuestionSeeder interface {
	SeedQuestions(ctx context.Context, questions []domain.Question) error
}

// QuizService contains the quiz use cases: the answer reconciler, the
// paginated question feed, and the score summary rollup.
type QuizService struct {
	questions QuestionRepository
	scores    ScoreStore
	guests    GuestStore
	seeder    QuestionSeeder

	locks *keyedMutex
	hub   *summaryHub
	now   func() time.Time
}

func NewQuizService(questions QuestionRepository, scores ScoreStore, guests GuestStore, seeder QuestionSeeder) *QuizService {
	return &QuizService{
		questions: questions,
		scores:    scores,
		guests:    guests,
		seeder:    seeder,
		locks:     newKeyedMutex(),
		hub:       newSummaryHub(),
		now:       time.Now,
	}
}

// WithClock is test-only for deterministic timestamps.
func (s *QuizService) WithClock(now func() time.Time) *QuizService {
	s.now = now
	return s
}

// SubmitAnswer records an answer for the caller's score in the question's
// category. Resubmitting an answered question is a no-op reported via
// AlreadyAnswered; concurrent submissions for the same (identity, category)
// are serialized so updates are never lost.
func (s *QuizService) SubmitAnswer(ctx context.Context, identity domain.Identity, questionID, selectedOption string) (domain.SubmitResult, error) {
	question, err := s.questions.Question(ctx, questionID)
	if err != nil {
		return domain.SubmitResult{}, err
	}
	isCorrect := selectedOption == question.CorrectAnswer

	unlock := s.locks.lock(identity.Key() + "|" + string(question.Category))
	defer unlock()

	var result domain.SubmitResult
	if identity.Guest {
		result, err = s.submitGuest(ctx, identity.SessionID, question, selectedOption, isCorrect)
	} else {
		result, err = s.submitUser(ctx, identity.UserID, question, selectedOption, isCorrect)
	}
	if err != nil {
		return domain.SubmitResult{}, err
	}

	if !result.AlreadyAnswered {
		s.publishSummary(ctx, identity)
	}
	return result, nil
}

func (s *QuizService) submitUser(ctx context.Context, userID string, question domain.Question, selectedOption string, isCorrect bool) (domain.SubmitResult, error) {
	categoryQuestions, err := s.questions.CategoryQuestions(ctx, question.Category)
	if err != nil {
		return domain.SubmitResult{}, err
	}

	score, ok, err := s.scores.Get(ctx, userID, question.Category)
	if err != nil {
		return domain.SubmitResult{}, err
	}
	if !ok {
		score = domain.NewScore(userID, question.Category, questionIDs(categoryQuestions), s.now())
	}

	if score.HasAnswered(question.ID) {
		return domain.SubmitResult{
			IsCorrect:        isCorrect,
			UpdatedScore:     score.Score,
			FeedbackMessage:  score.Feedback[question.ID],
			TotalQuestions:   len(categoryQuestions),
			PendingQuestions: len(score.PendingAnswer),
			AlreadyAnswered:  true,
		}, nil
	}

	feedback := feedbackIncorrect
	if isCorrect {
		score.Score += CorrectAward
		score.CorrectAnswer = append(score.CorrectAnswer, question.ID)
		feedback = feedbackCorrect
	} else {
		score.InCorrectAnswer = append(score.InCorrectAnswer, question.ID)
	}
	score.AnsweredQuestions = append(score.AnsweredQuestions, question.ID)
	score.PendingAnswer = removeID(score.PendingAnswer, question.ID)
	score.Answers = append(score.Answers, domain.AnswerRecord{
		QuestionID:     question.ID,
		SelectedOption: selectedOption,
		IsCorrect:      isCorrect,
		Category:       question.Category,
	})
	if score.Feedback == nil {
		score.Feedback = map[string]string{}
	}
	score.Feedback[question.ID] = feedback
	score.UpdatedAt = s.now()

	if err := s.scores.Save(ctx, score); err != nil {
		return domain.SubmitResult{}, err
	}

	return domain.SubmitResult{
		IsCorrect:        isCorrect,
		UpdatedScore:     score.Score,
		FeedbackMessage:  feedback,
		TotalQuestions:   len(categoryQuestions),
		PendingQuestions: len(score.PendingAnswer),
		AlreadyAnswered:  false,
	}, nil
}

func (s *QuizService) submitGuest(ctx context.Context, sessionID string, question domain.Question, selectedOption string, isCorrect bool) (domain.SubmitResult, error) {
	state, ok, err := s.guests.Get(ctx, sessionID, question.Category)
	if err != nil {
		return domain.SubmitResult{}, err
	}
	if !ok {
		// Guests must fetch the category feed before answering.
		return domain.SubmitResult{}, domain.ErrGuestSessionNotFound
	}

	if state.HasAnswered(question.ID) {
		return domain.SubmitResult{
			IsCorrect:        isCorrect,
			UpdatedScore:     state.Score,
			FeedbackMessage:  state.Feedback[question.ID],
			TotalQuestions:   len(state.Questions),
			PendingQuestions: len(state.PendingAnswer),
			AlreadyAnswered:  true,
		}, nil
	}

	feedback := feedbackIncorrect
	if isCorrect {
		state.Score += CorrectAward
		state.CorrectAnswer = append(state.CorrectAnswer, question.ID)
		feedback = feedbackCorrect
	} else {
		state.InCorrectAnswer = append(state.InCorrectAnswer, question.ID)
	}
	state.AnsweredQuestions = append(state.AnsweredQuestions, question.ID)
	state.PendingAnswer = removeID(state.PendingAnswer, question.ID)
	state.Answers = append(state.Answers, domain.AnswerRecord{
		QuestionID:     question.ID,
		SelectedOption: selectedOption,
		IsCorrect:      isCorrect,
		Category:       question.Category,
	})
	if state.Feedback == nil {
		state.Feedback = map[string]string{}
	}
	state.Feedback[question.ID] = feedback

	if err := s.guests.Put(ctx, sessionID, question.Category, state); err != nil {
		return domain.SubmitResult{}, err
	}

	return domain.SubmitResult{
		IsCorrect:        isCorrect,
		UpdatedScore:     state.Score,
		FeedbackMessage:  feedback,
		TotalQuestions:   len(state.Questions),
		PendingQuestions: len(state.PendingAnswer),
		AlreadyAnswered:  false,
	}, nil
}

// ListQuestions returns one page of a category's questions annotated with the
// caller's answered status. Page and limit default to 1 and 5; a page past the
// end yields an empty list, not an error.
func (s *QuizService) ListQuestions(ctx context.Context, identity domain.Identity, category domain.Category, page, limit int) (domain.QuestionPage, error) {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	var (
		questions []domain.Question
		answered  []string
		pending   int
		err       error
	)
	if identity.Guest {
		questions, answered, pending, err = s.guestFeed(ctx, identity.SessionID, category)
	} else {
		questions, answered, pending, err = s.userFeed(ctx, identity.UserID, category)
	}
	if err != nil {
		return domain.QuestionPage{}, err
	}

	total := len(questions)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start, end = total, total
	} else if end > total {
		end = total
	}

	answeredSet := make(map[string]struct{}, len(answered))
	for _, id := range answered {
		answeredSet[id] = struct{}{}
	}

	pageQuestions := make([]domain.AnnotatedQuestion, 0, end-start)
	for _, q := range questions[start:end] {
		_, isAnswered := answeredSet[q.ID]
		pageQuestions = append(pageQuestions, domain.AnnotatedQuestion{Question: q, IsAnswered: isAnswered})
	}

	return domain.QuestionPage{
		Questions:          pageQuestions,
		PendingAnswerCount: pending,
		TotalQuestions:     total,
		TotalPages:         totalPages,
		CurrentPage:        page,
	}, nil
}

func (s *QuizService) userFeed(ctx context.Context, userID string, category domain.Category) ([]domain.Question, []string, int, error) {
	questions, err := s.questions.CategoryQuestions(ctx, category)
	if err != nil {
		return nil, nil, 0, err
	}

	score, ok, err := s.scores.Get(ctx, userID, category)
	if err != nil {
		return nil, nil, 0, err
	}
	if !ok {
		score = domain.NewScore(userID, category, questionIDs(questions), s.now())
		if err := s.scores.Save(ctx, score); err != nil {
			return nil, nil, 0, err
		}
	}
	return questions, score.AnsweredQuestions, len(score.PendingAnswer), nil
}

func (s *QuizService) guestFeed(ctx context.Context, sessionID string, category domain.Category) ([]domain.Question, []string, int, error) {
	state, ok, err := s.guests.Get(ctx, sessionID, category)
	if err != nil {
		return nil, nil, 0, err
	}
	if !ok {
		questions, err := s.questions.CategoryQuestions(ctx, category)
		if err != nil {
			return nil, nil, 0, err
		}
		if len(questions) > guestFetchCap {
			questions = questions[:guestFetchCap]
		}
		state = domain.GuestState{
			Questions:         questions,
			CorrectAnswer:     []string{},
			InCorrectAnswer:   []string{},
			AnsweredQuestions: []string{},
			Answers:           []domain.AnswerRecord{},
			Feedback:          map[string]string{},
			PendingAnswer:     questionIDs(questions),
		}
		if err := s.guests.Put(ctx, sessionID, category, state); err != nil {
			return nil, nil, 0, err
		}
	}
	return state.Questions, state.AnsweredQuestions, len(state.PendingAnswer), nil
}

// GetSummary rolls up the caller's scores by category, highest total first.
func (s *QuizService) GetSummary(ctx context.Context, identity domain.Identity) ([]domain.SummaryRow, error) {
	if identity.Guest {
		states, err := s.guests.Categories(ctx, identity.SessionID)
		if err != nil {
			return nil, err
		}
		rows := make([]domain.SummaryRow, 0, len(states))
		for category, state := range states {
			rows = append(rows, domain.SummaryRow{
				Category:         category,
				TotalScore:       state.Score,
				CorrectAnswers:   len(state.CorrectAnswer),
				IncorrectAnswers: len(state.InCorrectAnswer),
				PendingAnswers:   len(state.PendingAnswer),
			})
		}
		sortSummary(rows)
		return rows, nil
	}

	rows, err := s.scores.Summary(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	sortSummary(rows)
	return rows, nil
}

// Subscribe streams the caller's summary after each of their submissions.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *QuizService) Subscribe(ctx context.Context, identity domain.Identity) (<-chan []domain.SummaryRow, func(), error) {
	rows, err := s.GetSummary(ctx, identity)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.hub.subscribe(identity.Key())
	ch <- rows
	return ch, cancel, nil
}

// SeedDefaults loads questions into the backing store (idempotent upsert).
func (s *QuizService) SeedDefaults(ctx context.Context, questions []domain.Question) error {
	if s.seeder == nil {
		return nil
	}
	return s.seeder.SeedQuestions(ctx, questions)
}

func (s *QuizService) publishSummary(ctx context.Context, identity domain.Identity) {
	if !s.hub.hasSubscribers(identity.Key()) {
		return
	}
	rows, err := s.GetSummary(ctx, identity)
	if err != nil {
		log.Printf("summary publish failed for %s: %v", identity.Key(), err)
		return
	}
	s.hub.publish(identity.Key(), rows)
}

func sortSummary(rows []domain.SummaryRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalScore != rows[j].TotalScore {
			return rows[i].TotalScore > rows[j].TotalScore
		}
		return rows[i].Category < rows[j].Category
	})
}

func questionIDs(questions []domain.Question) []string {
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return ids
}

func removeID(ids []string, target string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
