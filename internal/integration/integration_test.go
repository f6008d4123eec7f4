package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/infra/memory"
	pgloader "trivia-quiz-service/internal/infra/postgres"
	pgmigrations "trivia-quiz-service/internal/infra/postgres/migrations"
	infraredis "trivia-quiz-service/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestQuizSessionEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedBank(t, ctx, pgURL, sampleBank())

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	loader := pgloader.NewCatalogLoader(pool)

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	catalogRepo := infraredis.NewCatalogRepository(redisClient, loader, 5*time.Minute)
	board := memory.NewLeaderboardStore()
	service := app.NewQuizService(catalogRepo, board)

	session, err := service.StartSession(ctx, "Alice", "Science", 0, []domain.Kind{domain.KindMultipleChoice, domain.KindTrueFalse})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.Total() != 2 {
		t.Fatalf("expected 2 questions, got %d", session.Total())
	}

	for {
		q, ok := session.Current()
		if !ok {
			break
		}
		record, err := service.SubmitAnswer(session, q.Answer)
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if !record.Correct {
			t.Fatalf("expected correct answer for %q", q.Prompt)
		}
		if record.Category != "Science" {
			t.Fatalf("expected category resolution through the cached catalog, got %q", record.Category)
		}
		if err := service.Advance(session); err != nil {
			break
		}
	}

	result, err := service.Finish(session)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if result.Percentage != 100 || result.Score != 2 {
		t.Fatalf("unexpected result %+v", result)
	}

	entries := service.Leaderboard(10)
	if len(entries) != 1 || entries[0].Username != "Alice" {
		t.Fatalf("unexpected leaderboard %+v", entries)
	}

	// The catalog must now be cached in Redis for subsequent loads.
	if err := redisClient.Get(ctx, "quiz:catalog").Err(); err != nil {
		t.Fatalf("expected cached catalog in redis: %v", err)
	}
	stats, err := service.CatalogStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 2 {
		t.Fatalf("unexpected catalog stats %+v", stats)
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

func seedBank(t *testing.T, ctx context.Context, dsn string, grouped map[string][]domain.Question) {
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

	for category, questions := range grouped {
		data, err := json.Marshal(questions)
		if err != nil {
			t.Fatalf("marshal questions: %v", err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO question_bank (category, questions) VALUES (?, ?::jsonb) ON CONFLICT (category) DO UPDATE SET questions = EXCLUDED.questions`, category, string(data)); err != nil {
			t.Fatalf("insert bank row: %v", err)
		}
	}
}

func sampleBank() map[string][]domain.Question {
	return map[string][]domain.Question{
		"Science": {
			{
				Prompt:      "What planet is known as the Red Planet?",
				Options:     []string{"Venus", "Mars", "Jupiter", "Saturn"},
				Answer:      "Mars",
				Explanation: "Iron oxide gives Mars its color.",
				Difficulty:  domain.DifficultyEasy,
				Kind:        domain.KindMultipleChoice,
			},
			{
				Prompt:      "The human brain is composed of approximately 80% water.",
				Options:     []string{"True", "False"},
				Answer:      "False",
				Explanation: "It is about 73% water.",
				Difficulty:  domain.DifficultyMedium,
				Kind:        domain.KindTrueFalse,
			},
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
