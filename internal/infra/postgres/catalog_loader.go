package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"trivia-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// CatalogLoader loads the question bank from Postgres: one row per category
// with the category's questions as a JSONB array.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	rows, err := l.pool.Query(ctx, `SELECT category, questions FROM question_bank`)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load question bank: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]domain.Question)
	for rows.Next() {
		var category string
		var raw []byte
		if err := rows.Scan(&category, &raw); err != nil {
			return domain.Catalog{}, fmt.Errorf("scan question bank row: %w", err)
		}
		var questions []domain.Question
		if err := json.Unmarshal(raw, &questions); err != nil {
			return domain.Catalog{}, fmt.Errorf("unmarshal questions for %q: %w", category, err)
		}
		grouped[category] = questions
	}
	if err := rows.Err(); err != nil {
		return domain.Catalog{}, fmt.Errorf("load question bank: %w", err)
	}
	if len(grouped) == 0 {
		return domain.Catalog{}, domain.ErrCatalogNotFound
	}
	return domain.NewCatalog(grouped), nil
}
