package domain

// QuestionRepository provides read access to the immutable question bank.
type QuestionRepository interface {
	// All returns every question in bank order.
	All() []Question
	// ByCategory returns the questions labeled with the given category.
	ByCategory(category string) []Question
	// Categories returns the distinct category labels in bank order.
	Categories() []string
	// ReferenceCorpus returns every prompt and reference answer, used to
	// prepare corpus-based embedders.
	ReferenceCorpus() []string
}
