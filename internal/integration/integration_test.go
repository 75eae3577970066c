package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/akshay-rawal/Quiz-Game/internal/app"
	"github.com/akshay-rawal/Quiz-Game/internal/domain"
	"github.com/akshay-rawal/Quiz-Game/internal/infra/postgres"
	pgmigrations "github.com/akshay-rawal/Quiz-Game/internal/infra/postgres/migrations"
	infraredis "github.com/akshay-rawal/Quiz-Game/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestAnswerFlowEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedQuestions(t, ctx, pgURL, sampleQuestions())

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	store := postgres.NewStore(pool)

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	questions := infraredis.NewQuestionCache(redisClient, store, 5*time.Minute)
	guests := infraredis.NewGuestStore(redisClient, 5*time.Minute)
	service := app.NewQuizService(questions, store, guests, nil)

	alice := domain.Identity{UserID: "u1"}

	page, err := service.ListQuestions(ctx, alice, domain.CategoryHistory, 1, 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalQuestions != 2 || page.PendingAnswerCount != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}

	result, err := service.SubmitAnswer(ctx, alice, "history-01", "1945")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.IsCorrect || result.UpdatedScore != app.CorrectAward || result.PendingQuestions != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	// Second submission must be a no-op reported as already answered.
	again, err := service.SubmitAnswer(ctx, alice, "history-01", "1945")
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if !again.AlreadyAnswered || again.UpdatedScore != app.CorrectAward {
		t.Fatalf("resubmission not idempotent: %+v", again)
	}

	rows, err := service.GetSummary(ctx, alice)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(rows) != 1 || rows[0].Category != domain.CategoryHistory || rows[0].TotalScore != app.CorrectAward {
		t.Fatalf("unexpected summary: %+v", rows)
	}
	if rows[0].CorrectAnswers != 1 || rows[0].PendingAnswers != 1 {
		t.Fatalf("unexpected counts: %+v", rows[0])
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedQuestions(t *testing.T, ctx context.Context, dsn string, questions []domain.Question) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := postgres.NewSeeder(db).SeedQuestions(ctx, questions); err != nil {
		t.Fatalf("seed questions: %v", err)
	}
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:            "history-01",
			Category:      domain.CategoryHistory,
			Question:      "In which year did World War II end?",
			Options:       []string{"1944", "1945", "1946"},
			CorrectAnswer: "1945",
		},
		{
			ID:            "history-02",
			Category:      domain.CategoryHistory,
			Question:      "Who was the first emperor of Rome?",
			Options:       []string{"Julius Caesar", "Augustus"},
			CorrectAnswer: "Augustus",
		},
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
