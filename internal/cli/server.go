package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akshay-rawal/Quiz-Game/internal/app"
	"github.com/akshay-rawal/Quiz-Game/internal/auth"
	"github.com/akshay-rawal/Quiz-Game/internal/config"
	"github.com/akshay-rawal/Quiz-Game/internal/infra/memory"
	"github.com/akshay-rawal/Quiz-Game/internal/infra/postgres"
	infraredis "github.com/akshay-rawal/Quiz-Game/internal/infra/redis"
	transport "github.com/akshay-rawal/Quiz-Game/internal/transport/http"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "4001"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	questionTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	guestTTL := config.TTLDuration(cfg.Guest.TTL, 30*time.Minute)

	staticLoader := memory.NewStaticQuestionLoader(defaultQuestions())

	var (
		loader memory.QuestionLoader = staticLoader
		scores app.ScoreStore        = memory.NewScoreStore()
		seeder app.QuestionSeeder    = staticLoader
	)
	if pool != nil {
		store := postgres.NewStore(pool)
		loader = store
		scores = store

		db := openBun(cfg.Postgres.URL)
		defer db.Close()
		seeder = postgres.NewSeeder(db)
	}

	var questions app.QuestionRepository
	if redisClient != nil {
		questions = infraredis.NewQuestionCache(redisClient, loader, questionTTL)
	} else {
		questions = memory.NewQuestionCache(loader, questionTTL)
	}

	var guests app.GuestStore
	if redisClient != nil {
		guests = infraredis.NewGuestStore(redisClient, guestTTL)
	} else {
		guests = memory.NewGuestStore()
	}

	service := app.NewQuizService(questions, scores, guests, seeder)
	handler := transport.NewHandler(service, auth.New(cfg.Auth.JWTSecret), defaultQuestions())

	router := mux.NewRouter()
	handler.Routes(router)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
