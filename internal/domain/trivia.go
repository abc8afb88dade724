package domain

import (
	"context"
	"strings"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 5

	// AllCategories is the quiz category id meaning "no category filter"
	AllCategories int64 = 0
)

// Category groups questions under a display name
type Category struct {
	ID   int64
	Type string
}

// Question is a single trivia item
type Question struct {
	ID         int64
	Question   string
	Answer     string
	CategoryID int64
	Difficulty int
}

// NewQuestion trims the free-text fields; the ID is assigned on save.
func NewQuestion(question, answer string, categoryID int64, difficulty int) *Question {
	return &Question{
		Question:   strings.TrimSpace(question),
		Answer:     strings.TrimSpace(answer),
		CategoryID: categoryID,
		Difficulty: difficulty,
	}
}

// CategoryRepository is the read/write port for categories. Lookups that
// find nothing return (nil, nil).
type CategoryRepository interface {
	GetAllCategories(ctx context.Context) ([]*Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*Category, error)
	GetCategoryByType(ctx context.Context, categoryType string) (*Category, error)
	SaveCategory(ctx context.Context, category *Category) error
}

// QuestionRepository is the read/write port for questions. Lookups that
// find nothing return (nil, nil).
type QuestionRepository interface {
	GetQuestions(ctx context.Context, limit, offset int) ([]*Question, error)
	GetQuestionsByCategory(ctx context.Context, categoryID int64, limit, offset int) ([]*Question, error)
	CountQuestions(ctx context.Context) (int64, error)
	CountQuestionsByCategory(ctx context.Context, categoryID int64) (int64, error)
	SearchQuestions(ctx context.Context, term string) ([]*Question, error)
	GetQuestionByID(ctx context.Context, id int64) (*Question, error)
	// GetQuestionIDs returns every question id, restricted to categoryID
	// unless it is AllCategories.
	GetQuestionIDs(ctx context.Context, categoryID int64) ([]int64, error)
	SaveQuestion(ctx context.Context, question *Question) error
	// DeleteQuestion reports whether a row was removed.
	DeleteQuestion(ctx context.Context, id int64) (bool, error)
}

// TransactionManager runs fn inside a transaction carried by the context
// passed to it. fn's error rolls back; nil commits.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Pinger is satisfied by the database handle for health checks
type Pinger interface {
	PingContext(ctx context.Context) error
}
