package memory

import (
	"context"
	"testing"
	"time"

	"github.com/akshay-rawal/Quiz-Game/internal/domain"
)

func TestQuestionCacheCaches(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewStaticQuestionLoader(sampleQuestions())}
	cache := NewQuestionCache(loader, time.Minute)

	if _, err := cache.CategoryQuestions(context.Background(), domain.CategoryCinema); err != nil {
		t.Fatalf("get category: %v", err)
	}
	if loader.categoryCalls != 1 {
		t.Fatalf("expected loader once, got %d", loader.categoryCalls)
	}

	if _, err := cache.CategoryQuestions(context.Background(), domain.CategoryCinema); err != nil {
		t.Fatalf("get category 2: %v", err)
	}
	if loader.categoryCalls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.categoryCalls)
	}
}

func TestQuestionCacheServesPointLookupFromCachedSet(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewStaticQuestionLoader(sampleQuestions())}
	cache := NewQuestionCache(loader, time.Minute)

	if _, err := cache.CategoryQuestions(context.Background(), domain.CategoryCinema); err != nil {
		t.Fatalf("get category: %v", err)
	}

	q, err := cache.Question(context.Background(), "cinema-01")
	if err != nil {
		t.Fatalf("get question: %v", err)
	}
	if q.ID != "cinema-01" {
		t.Fatalf("unexpected question: %+v", q)
	}
	if loader.questionCalls != 0 {
		t.Fatalf("expected cached lookup, loader calls %d", loader.questionCalls)
	}
}

func TestStaticLoaderUnknownQuestion(t *testing.T) {
	loader := NewStaticQuestionLoader(nil)
	if _, err := loader.LoadQuestion(context.Background(), "nope"); err != domain.ErrQuestionNotFound {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

type countingLoader struct {
	QuestionLoader
	categoryCalls int
	questionCalls int
}

func (l *countingLoader) LoadCategory(ctx context.Context, category domain.Category) ([]domain.Question, error) {
	l.categoryCalls++
	return l.QuestionLoader.LoadCategory(ctx, category)
}

func (l *countingLoader) LoadQuestion(ctx context.Context, id string) (domain.Question, error) {
	l.questionCalls++
	return l.QuestionLoader.LoadQuestion(ctx, id)
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:            "cinema-01",
			Category:      domain.CategoryCinema,
			Question:      "Who directed Jaws?",
			Options:       []string{"Spielberg", "Lucas"},
			CorrectAnswer: "Spielberg",
		},
		{
			ID:            "cinema-02",
			Category:      domain.CategoryCinema,
			Question:      "Who played Jack Dawson?",
			Options:       []string{"DiCaprio", "Pitt"},
			CorrectAnswer: "DiCaprio",
		},
	}
}
