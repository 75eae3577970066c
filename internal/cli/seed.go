package cli

import (
	"fmt"
	"log"

	"github.com/akshay-rawal/Quiz-Game/internal/config"
	"github.com/akshay-rawal/Quiz-Game/internal/domain"
	"github.com/akshay-rawal/Quiz-Game/internal/infra/postgres"
	"github.com/spf13/cobra"
)

// NewSeedCmd loads the built-in question set into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the built-in questions into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}
			if err := runMigrationsWithConfig(cmd.Context(), cfg); err != nil {
				return err
			}

			db := openBun(cfg.Postgres.URL)
			defer db.Close()

			questions := defaultQuestions()
			if err := postgres.NewSeeder(db).SeedQuestions(cmd.Context(), questions); err != nil {
				return err
			}
			log.Printf("seeded %d questions", len(questions))
			return nil
		},
	}
}

// defaultQuestions is the built-in question bank, spanning every category.
func defaultQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:            "cinema-1",
			Category:      domain.CategoryCinema,
			Question:      "Who directed the movie Jaws?",
			Options:       []string{"Steven Spielberg", "George Lucas", "Martin Scorsese", "Francis Ford Coppola"},
			CorrectAnswer: "Steven Spielberg",
		},
		{
			ID:            "cinema-2",
			Category:      domain.CategoryCinema,
			Question:      "Which film won the Academy Award for Best Picture in 1994?",
			Options:       []string{"Pulp Fiction", "Forrest Gump", "The Shawshank Redemption", "Speed"},
			CorrectAnswer: "Forrest Gump",
		},
		{
			ID:            "cinema-3",
			Category:      domain.CategoryCinema,
			Question:      "In which movie does the character Jack Dawson appear?",
			Options:       []string{"Titanic", "The Revenant", "Inception", "The Departed"},
			CorrectAnswer: "Titanic",
		},
		{
			ID:            "gk-1",
			Category:      domain.CategoryGeneralKnowledge,
			Question:      "What is the largest planet in the solar system?",
			Options:       []string{"Earth", "Saturn", "Jupiter", "Neptune"},
			CorrectAnswer: "Jupiter",
		},
		{
			ID:            "gk-2",
			Category:      domain.CategoryGeneralKnowledge,
			Question:      "How many continents are there?",
			Options:       []string{"five", "six", "seven", "eight"},
			CorrectAnswer: "seven",
		},
		{
			ID:            "gk-3",
			Category:      domain.CategoryGeneralKnowledge,
			Question:      "Which element has the chemical symbol O?",
			Options:       []string{"Gold", "Oxygen", "Osmium", "Silver"},
			CorrectAnswer: "Oxygen",
		},
		{
			ID:            "history-1",
			Category:      domain.CategoryHistory,
			Question:      "In which year did World War II end?",
			Options:       []string{"1943", "1944", "1945", "1946"},
			CorrectAnswer: "1945",
		},
		{
			ID:            "history-2",
			Category:      domain.CategoryHistory,
			Question:      "Who was the first emperor of Rome?",
			Options:       []string{"Julius Caesar", "Augustus", "Nero", "Caligula"},
			CorrectAnswer: "Augustus",
		},
		{
			ID:            "history-3",
			Category:      domain.CategoryHistory,
			Question:      "The Great Wall of China was primarily built to protect against which group?",
			Options:       []string{"Mongols", "Japanese", "Russians", "Koreans"},
			CorrectAnswer: "Mongols",
		},
		{
			ID:            "politics-1",
			Category:      domain.CategoryPolitics,
			Question:      "How many members sit in the United States Senate?",
			Options:       []string{"50", "100", "435", "538"},
			CorrectAnswer: "100",
		},
		{
			ID:            "politics-2",
			Category:      domain.CategoryPolitics,
			Question:      "Which body is the lower house of the Parliament of India?",
			Options:       []string{"Rajya Sabha", "Lok Sabha", "Vidhan Sabha", "Gram Sabha"},
			CorrectAnswer: "Lok Sabha",
		},
		{
			ID:            "politics-3",
			Category:      domain.CategoryPolitics,
			Question:      "Where is the headquarters of the United Nations?",
			Options:       []string{"Geneva", "Paris", "New York", "Vienna"},
			CorrectAnswer: "New York",
		},
	}
}
