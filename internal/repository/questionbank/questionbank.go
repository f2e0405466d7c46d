// Package questionbank loads the static question bank CSV and serves
// category-filtered lookups. The bank is immutable once loaded.
package questionbank

import (
	"fmt"
	"os"

	"interview-ease/internal/domain"

	"github.com/gocarina/gocsv"
)

// questionRow mirrors the question bank CSV contract:
// Question Number, Question, Answer1..Answer4, Category, Difficulty.
type questionRow struct {
	Number     string `csv:"Question Number"`
	Question   string `csv:"Question"`
	Answer1    string `csv:"Answer1"`
	Answer2    string `csv:"Answer2"`
	Answer3    string `csv:"Answer3"`
	Answer4    string `csv:"Answer4"`
	Category   string `csv:"Category"`
	Difficulty string `csv:"Difficulty"`
}

// Repository is an in-memory, read-only question bank.
type Repository struct {
	questions  []domain.Question
	byCategory map[string][]domain.Question
	categories []string
}

// Load reads and validates the question bank from a CSV file.
func Load(path string) (*Repository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open question bank %s: %w", path, err)
	}
	defer f.Close()

	var rows []*questionRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse question bank %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("question bank %s contains no questions", path)
	}

	repo := &Repository{
		byCategory: make(map[string][]domain.Question),
	}
	for i, row := range rows {
		q := domain.Question{
			ID:     row.Number,
			Prompt: row.Question,
			ReferenceAnswers: []string{
				row.Answer1, row.Answer2, row.Answer3, row.Answer4,
			},
			Category:   row.Category,
			Difficulty: row.Difficulty,
		}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("invalid question at row %d: %w", i+1, err)
		}
		if _, seen := repo.byCategory[q.Category]; !seen {
			repo.categories = append(repo.categories, q.Category)
		}
		repo.questions = append(repo.questions, q)
		repo.byCategory[q.Category] = append(repo.byCategory[q.Category], q)
	}
	return repo, nil
}

// All returns every question in bank order. Callers get a copy so the
// bank stays immutable.
func (r *Repository) All() []domain.Question {
	return append([]domain.Question(nil), r.questions...)
}

// ByCategory returns a copy of the questions labeled with the given category.
func (r *Repository) ByCategory(category string) []domain.Question {
	qs, ok := r.byCategory[category]
	if !ok {
		return nil
	}
	return append([]domain.Question(nil), qs...)
}

// Categories returns the distinct category labels in bank order.
func (r *Repository) Categories() []string {
	return append([]string(nil), r.categories...)
}

// ReferenceCorpus returns every prompt and reference answer. Corpus-based
// embedders prepare their vocabulary from this.
func (r *Repository) ReferenceCorpus() []string {
	corpus := make([]string, 0, len(r.questions)*(domain.ReferenceAnswerCount+1))
	for _, q := range r.questions {
		corpus = append(corpus, q.Prompt)
		corpus = append(corpus, q.ReferenceAnswers...)
	}
	return corpus
}
