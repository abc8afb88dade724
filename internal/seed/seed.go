package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"trivia-api/internal/domain"
	"trivia-api/internal/logger"
	"trivia-api/internal/validation"

	"go.uber.org/zap"
)

// SeedQuestion defines the structure for a question in the JSON seed file.
type SeedQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
}

// SeedCategory defines the structure for a category in the JSON seed file.
type SeedCategory struct {
	Type      string         `json:"type"`
	Questions []SeedQuestion `json:"questions"`
}

// Result counts what a seeding run inserted
type Result struct {
	CategoriesCreated int
	CategoriesSkipped int
	QuestionsCreated  int
}

// LoadFile reads a seed file
func LoadFile(path string) ([]SeedCategory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var categories []SeedCategory
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed file %s: %w", path, err)
	}
	return categories, nil
}

// Seeder inserts seed categories and their questions
type Seeder struct {
	txManager  domain.TransactionManager
	categories domain.CategoryRepository
	questions  domain.QuestionRepository
	validator  *validation.Validator
}

// NewSeeder creates a new Seeder
func NewSeeder(txManager domain.TransactionManager, categories domain.CategoryRepository, questions domain.QuestionRepository) *Seeder {
	return &Seeder{
		txManager:  txManager,
		categories: categories,
		questions:  questions,
		validator:  validation.NewValidator(),
	}
}

// Run seeds every category in its own transaction. A category whose type is
// already present is left alone together with its questions, so reruns are
// safe. A failing category is rolled back and the rest are still seeded.
func (s *Seeder) Run(ctx context.Context, data []SeedCategory) (Result, error) {
	var (
		result Result
		errs   []error
	)
	log := logger.Get()

	for _, sc := range data {
		created, questions, err := s.seedCategory(ctx, sc)
		if err != nil {
			log.Error("Error seeding category, transaction rolled back", zap.String("category", sc.Type), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		if !created {
			log.Info("Category exists, skipping", zap.String("category", sc.Type))
			result.CategoriesSkipped++
			continue
		}
		log.Info("Seeded category", zap.String("category", sc.Type), zap.Int("questions", questions))
		result.CategoriesCreated++
		result.QuestionsCreated += questions
	}

	return result, errors.Join(errs...)
}

func (s *Seeder) seedCategory(ctx context.Context, sc SeedCategory) (created bool, questions int, err error) {
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.categories.GetCategoryByType(txCtx, sc.Type)
		if err != nil {
			return fmt.Errorf("error checking category %s: %w", sc.Type, err)
		}
		if existing != nil {
			return nil
		}

		category := &domain.Category{Type: sc.Type}
		if err := s.categories.SaveCategory(txCtx, category); err != nil {
			return fmt.Errorf("failed to save category %s: %w", sc.Type, err)
		}
		created = true

		for i, sq := range sc.Questions {
			if verrs := s.validator.ValidateNewQuestion(sq.Question, sq.Answer, category.ID, sq.Difficulty); len(verrs) > 0 {
				return fmt.Errorf("question %d of %s: %w", i, sc.Type, verrs)
			}
			question := domain.NewQuestion(sq.Question, sq.Answer, category.ID, sq.Difficulty)
			if err := s.questions.SaveQuestion(txCtx, question); err != nil {
				return fmt.Errorf("failed to save question %d of %s: %w", i, sc.Type, err)
			}
			questions++
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return created, questions, nil
}
