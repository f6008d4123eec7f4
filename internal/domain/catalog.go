package domain

import "sort"

// Catalog is the read-only question repository: questions grouped by
// category, plus a prompt-to-category index built once at construction so
// category resolution never rescans the full bank.
type Catalog struct {
	grouped  map[string][]Question
	byPrompt map[string]string
}

// NewCatalog builds a catalog from questions grouped by category.
func NewCatalog(grouped map[string][]Question) Catalog {
	byPrompt := make(map[string]string)
	for category, questions := range grouped {
		for _, q := range questions {
			byPrompt[q.Prompt] = category
		}
	}
	return Catalog{grouped: grouped, byPrompt: byPrompt}
}

// Grouped exposes the raw category-to-questions mapping (for serialization
// by caching layers). Callers must not mutate it.
func (c Catalog) Grouped() map[string][]Question {
	return c.grouped
}

// Categories lists the catalog's category names in sorted order.
func (c Catalog) Categories() []string {
	names := make([]string, 0, len(c.grouped))
	for name := range c.grouped {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Questions returns the question pool for a category. CategoryAll pools
// every category.
func (c Catalog) Questions(category string) []Question {
	if category == CategoryAll {
		all := make([]Question, 0)
		for _, name := range c.Categories() {
			all = append(all, c.grouped[name]...)
		}
		return all
	}
	return c.grouped[category]
}

// CategoryOf resolves the category a question belongs to, or
// CategoryUnknown when the prompt is not in the catalog.
func (c Catalog) CategoryOf(prompt string) string {
	if category, ok := c.byPrompt[prompt]; ok {
		return category
	}
	return CategoryUnknown
}

// Len reports the total number of questions across all categories.
func (c Catalog) Len() int {
	return len(c.byPrompt)
}

// CatalogStats summarizes the bank for the setup screen.
type CatalogStats struct {
	Total        int                `json:"total"`
	ByCategory   map[string]int     `json:"byCategory"`
	ByDifficulty map[Difficulty]int `json:"byDifficulty"`
}

// Stats counts questions per category and per difficulty.
func (c Catalog) Stats() CatalogStats {
	stats := CatalogStats{
		ByCategory:   make(map[string]int, len(c.grouped)),
		ByDifficulty: make(map[Difficulty]int, 3),
	}
	for category, questions := range c.grouped {
		stats.ByCategory[category] = len(questions)
		stats.Total += len(questions)
		for _, q := range questions {
			stats.ByDifficulty[q.Difficulty]++
		}
	}
	return stats
}
