package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/akshay-rawal/Quiz-Game/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Store persists question and score documents as JSONB rows, mirroring the
// document-store layout the records originally lived in.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// LoadQuestion implements memory.QuestionLoader.
func (s *Store) LoadQuestion(ctx context.Context, id string) (domain.Question, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM questions WHERE id=$1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	if err != nil {
		return domain.Question{}, fmt.Errorf("load question: %w", err)
	}
	var question domain.Question
	if err := json.Unmarshal(raw, &question); err != nil {
		return domain.Question{}, fmt.Errorf("unmarshal question: %w", err)
	}
	return question, nil
}

// LoadCategory implements memory.QuestionLoader.
func (s *Store) LoadCategory(ctx context.Context, category domain.Category) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM questions WHERE category=$1 ORDER BY id`, string(category))
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		var question domain.Question
		if err := json.Unmarshal(raw, &question); err != nil {
			return nil, fmt.Errorf("unmarshal question: %w", err)
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}

// Get implements app.ScoreStore.
func (s *Store) Get(ctx context.Context, userID string, category domain.Category) (domain.Score, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM scores WHERE user_id=$1 AND category=$2`, userID, string(category)).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Score{}, false, nil
	}
	if err != nil {
		return domain.Score{}, false, fmt.Errorf("load score: %w", err)
	}
	var score domain.Score
	if err := json.Unmarshal(raw, &score); err != nil {
		return domain.Score{}, false, fmt.Errorf("unmarshal score: %w", err)
	}
	return score, true, nil
}

// Save implements app.ScoreStore as an upsert on (user_id, category), so the
// second of two racing creates updates instead of violating the unique index.
func (s *Store) Save(ctx context.Context, score domain.Score) error {
	data, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("marshal score: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO scores (user_id, category, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, category)
		DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		score.UserID, string(score.Category), data)
	if err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	return nil
}

// Summary implements app.ScoreStore by grouping score documents per category
// in SQL, the same rollup the source expressed as an aggregation pipeline.
func (s *Store) Summary(ctx context.Context, userID string) ([]domain.SummaryRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT category,
		       COALESCE(SUM((data->>'score')::int), 0)                    AS total_score,
		       COALESCE(SUM(jsonb_array_length(data->'correctAnswer')), 0)   AS correct_answers,
		       COALESCE(SUM(jsonb_array_length(data->'inCorrectAnswer')), 0) AS incorrect_answers,
		       COALESCE(SUM(jsonb_array_length(data->'pendingAnswer')), 0)   AS pending_answers
		FROM scores
		WHERE user_id=$1
		GROUP BY category
		ORDER BY total_score DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("score summary: %w", err)
	}
	defer rows.Close()

	var out []domain.SummaryRow
	for rows.Next() {
		var (
			category string
			row      domain.SummaryRow
		)
		if err := rows.Scan(&category, &row.TotalScore, &row.CorrectAnswers, &row.IncorrectAnswers, &row.PendingAnswers); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		row.Category = domain.Category(category)
		out = append(out, row)
	}
	return out, rows.Err()
}
