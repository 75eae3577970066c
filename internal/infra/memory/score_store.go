package memory

import (
	"context"
	"sync"

	"github.com/akshay-rawal/Quiz-Game/internal/domain"
)

// ScoreStore keeps score records in memory, keyed by (userID, category).
// Used when no database is configured and throughout unit tests.
type ScoreStore struct {
	mu     sync.RWMutex
	scores map[scoreKey]domain.Score
}

type scoreKey struct {
	userID   string
	category domain.Category
}

func NewScoreStore() *ScoreStore {
	return &ScoreStore{scores: make(map[scoreKey]domain.Score)}
}

func (s *ScoreStore) Get(_ context.Context, userID string, category domain.Category) (domain.Score, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	score, ok := s.scores[scoreKey{userID, category}]
	return score, ok, nil
}

func (s *ScoreStore) Save(_ context.Context, score domain.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[scoreKey{score.UserID, score.Category}] = score
	return nil
}

func (s *ScoreStore) Summary(_ context.Context, userID string) ([]domain.SummaryRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rows []domain.SummaryRow
	for key, score := range s.scores {
		if key.userID != userID {
			continue
		}
		rows = append(rows, domain.SummaryRow{
			Category:         score.Category,
			TotalScore:       score.Score,
			CorrectAnswers:   len(score.CorrectAnswer),
			IncorrectAnswers: len(score.InCorrectAnswer),
			PendingAnswers:   len(score.PendingAnswer),
		})
	}
	return rows, nil
}
