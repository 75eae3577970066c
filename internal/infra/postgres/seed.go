package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akshay-rawal/Quiz-Game/internal/domain"
	"github.com/uptrace/bun"
)

// Seeder inserts question documents, updating content in place when a
// question id already exists.
type Seeder struct {
	db *bun.DB
}

func NewSeeder(db *bun.DB) *Seeder {
	return &Seeder{db: db}
}

func (s *Seeder) SeedQuestions(ctx context.Context, questions []domain.Question) error {
	for _, q := range questions {
		data, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("marshal question %s: %w", q.ID, err)
		}
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO questions (id, category, data)
			VALUES (?, ?, ?::jsonb)
			ON CONFLICT (id) DO UPDATE SET category=EXCLUDED.category, data=EXCLUDED.data`,
			q.ID, string(q.Category), string(data))
		if err != nil {
			return fmt.Errorf("insert question %s: %w", q.ID, err)
		}
	}
	return nil
}
