package domain_test

import (
	"reflect"
	"testing"

	"trivia-quiz-service/internal/domain"
)

func testCatalog() domain.Catalog {
	return domain.NewCatalog(map[string][]domain.Question{
		"Science": {
			{Prompt: "sci-1", Answer: "a", Difficulty: domain.DifficultyEasy, Kind: domain.KindMultipleChoice},
			{Prompt: "sci-2", Answer: "b", Difficulty: domain.DifficultyHard, Kind: domain.KindTrueFalse},
		},
		"History": {
			{Prompt: "his-1", Answer: "c", Difficulty: domain.DifficultyEasy, Kind: domain.KindFillBlank},
		},
	})
}

func TestCatalogCategoriesSorted(t *testing.T) {
	got := testCatalog().Categories()
	want := []string{"History", "Science"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCatalogQuestions(t *testing.T) {
	catalog := testCatalog()

	if got := catalog.Questions("Science"); len(got) != 2 {
		t.Fatalf("expected 2 science questions, got %d", len(got))
	}
	if got := catalog.Questions(domain.CategoryAll); len(got) != 3 {
		t.Fatalf("expected 3 pooled questions, got %d", len(got))
	}
	if got := catalog.Questions("Astrology"); got != nil {
		t.Fatalf("expected nil for unknown category, got %v", got)
	}
}

func TestCatalogCategoryOf(t *testing.T) {
	catalog := testCatalog()

	if got := catalog.CategoryOf("his-1"); got != "History" {
		t.Fatalf("got %q, want History", got)
	}
	if got := catalog.CategoryOf("never-asked"); got != domain.CategoryUnknown {
		t.Fatalf("got %q, want %q", got, domain.CategoryUnknown)
	}
}

func TestCatalogStats(t *testing.T) {
	stats := testCatalog().Stats()

	if stats.Total != 3 {
		t.Fatalf("expected total 3, got %d", stats.Total)
	}
	if stats.ByCategory["Science"] != 2 || stats.ByCategory["History"] != 1 {
		t.Fatalf("unexpected category counts %+v", stats.ByCategory)
	}
	if stats.ByDifficulty[domain.DifficultyEasy] != 2 || stats.ByDifficulty[domain.DifficultyHard] != 1 {
		t.Fatalf("unexpected difficulty counts %+v", stats.ByDifficulty)
	}
}
