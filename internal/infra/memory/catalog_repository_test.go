package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/infra/memory"
)

type countingLoader struct {
	calls   int
	grouped map[string][]domain.Question
}

func (l *countingLoader) LoadCatalog(_ context.Context) (domain.Catalog, error) {
	l.calls++
	if len(l.grouped) == 0 {
		return domain.Catalog{}, domain.ErrCatalogNotFound
	}
	return domain.NewCatalog(l.grouped), nil
}

func TestCatalogRepositoryCachesWithinTTL(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{grouped: sampleBank()}
	repo := memory.NewCatalogRepository(loader, time.Minute)

	first, err := repo.GetCatalog(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if first.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", first.Len())
	}

	for i := 0; i < 5; i++ {
		if _, err := repo.GetCatalog(ctx); err != nil {
			t.Fatalf("cached load: %v", err)
		}
	}
	if loader.calls != 1 {
		t.Fatalf("expected a single backing load, got %d", loader.calls)
	}
}

func TestCatalogRepositoryPropagatesLoaderError(t *testing.T) {
	repo := memory.NewCatalogRepository(&countingLoader{}, time.Minute)
	if _, err := repo.GetCatalog(context.Background()); !errors.Is(err, domain.ErrCatalogNotFound) {
		t.Fatalf("expected catalog-not-found, got %v", err)
	}
}

func TestStaticCatalogLoader(t *testing.T) {
	catalog, err := memory.NewStaticCatalogLoader(sampleBank()).LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := catalog.Categories(); len(got) != 2 {
		t.Fatalf("expected 2 categories, got %v", got)
	}
	if _, err := memory.NewStaticCatalogLoader(nil).LoadCatalog(context.Background()); !errors.Is(err, domain.ErrCatalogNotFound) {
		t.Fatalf("expected catalog-not-found for empty bank, got %v", err)
	}
}

func sampleBank() map[string][]domain.Question {
	return map[string][]domain.Question{
		"Science": {{
			Prompt: "What planet is known as the Red Planet?",
			Answer: "Mars",
			Kind:   domain.KindMultipleChoice,
		}},
		"History": {{
			Prompt: "The ______ Wall was built in ancient China for protection.",
			Answer: "great",
			Kind:   domain.KindFillBlank,
		}},
	}
}
