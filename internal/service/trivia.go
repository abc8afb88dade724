package service

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"
	"trivia-api/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TriviaService defines the operations behind the trivia endpoints
type TriviaService interface {
	ListQuestions(ctx context.Context, page int) (*dto.QuestionListResponse, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsResponse, error)
	ListCategories(ctx context.Context) (*dto.CategoryListResponse, error)
	GetCategory(ctx context.Context, id int64) (*dto.CategoryDetailResponse, error)
	SearchQuestions(ctx context.Context, req *dto.SearchQuestionsRequest) (*dto.CategoryQuestionsResponse, error)
	CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error)
	DeleteQuestion(ctx context.Context, id int64) (*dto.DeleteQuestionResponse, error)
	NextQuizQuestion(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error)
	Health(ctx context.Context) (*dto.HealthResponse, error)
}

// triviaService implements TriviaService
type triviaService struct {
	categories domain.CategoryRepository
	questions  domain.QuestionRepository
	txManager  domain.TransactionManager
	db         domain.Pinger
	validator  *validation.Validator
	pageSize   int

	// pick returns a uniformly random index in [0, n)
	pick func(n int) int
}

// NewTriviaService creates a new instance of triviaService
func NewTriviaService(
	categories domain.CategoryRepository,
	questions domain.QuestionRepository,
	txManager domain.TransactionManager,
	db domain.Pinger,
	pageSize int,
) TriviaService {
	return &triviaService{
		categories: categories,
		questions:  questions,
		txManager:  txManager,
		db:         db,
		validator:  validation.NewValidator(),
		pageSize:   pageSize,
		pick:       rand.IntN,
	}
}

// ListQuestions implements TriviaService. The page, the total and the
// category list are read concurrently.
func (s *triviaService) ListQuestions(ctx context.Context, page int) (*dto.QuestionListResponse, error) {
	offset, ok := s.offset(page)
	if !ok {
		return nil, domain.NewPageNotFoundError(page)
	}

	var (
		questions  []*domain.Question
		total      int64
		categories []*domain.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = s.questions.GetQuestions(gctx, s.pageSize, offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.questions.CountQuestions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categories.GetAllCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("Failed to list questions", err)
	}

	if len(questions) == 0 {
		return nil, domain.NewPageNotFoundError(page)
	}

	return &dto.QuestionListResponse{
		Success:         true,
		Questions:       toQuestionResponses(questions),
		TotalQuestions:  total,
		Categories:      toCategoryResponses(categories),
		CurrentCategory: dto.AllCategoriesLabel,
	}, nil
}

// ListQuestionsByCategory implements TriviaService
func (s *triviaService) ListQuestionsByCategory(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsResponse, error) {
	category, err := s.categories.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get category", err)
	}
	if category == nil {
		return nil, domain.NewCategoryNotFoundError(categoryID)
	}
	offset, ok := s.offset(page)
	if !ok {
		return nil, domain.NewPageNotFoundError(page)
	}

	questions, err := s.questions.GetQuestionsByCategory(ctx, categoryID, s.pageSize, offset)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get questions by category", err)
	}
	if len(questions) == 0 {
		return nil, domain.NewPageNotFoundError(page)
	}

	total, err := s.questions.CountQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to count questions by category", err)
	}

	return &dto.CategoryQuestionsResponse{
		Success:         true,
		Questions:       toQuestionResponses(questions),
		TotalQuestions:  total,
		CurrentCategory: category.Type,
	}, nil
}

// ListCategories implements TriviaService. No categories at all is reported
// as not found.
func (s *triviaService) ListCategories(ctx context.Context) (*dto.CategoryListResponse, error) {
	categories, err := s.categories.GetAllCategories(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get categories", err)
	}
	if len(categories) == 0 {
		return nil, domain.NewNotFoundError("no categories")
	}

	return &dto.CategoryListResponse{
		Success:    true,
		Categories: toCategoryResponses(categories),
	}, nil
}

// GetCategory implements TriviaService
func (s *triviaService) GetCategory(ctx context.Context, id int64) (*dto.CategoryDetailResponse, error) {
	category, err := s.categories.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get category", err)
	}
	if category == nil {
		return nil, domain.NewCategoryNotFoundError(id)
	}

	return &dto.CategoryDetailResponse{
		Success:  true,
		Category: toCategoryResponse(category),
	}, nil
}

// SearchQuestions implements TriviaService. A request without a search term
// is an internal error, not a validation failure.
func (s *triviaService) SearchQuestions(ctx context.Context, req *dto.SearchQuestionsRequest) (*dto.CategoryQuestionsResponse, error) {
	if req == nil || req.SearchTerm == nil {
		return nil, domain.NewInternalError("search term is missing", nil)
	}

	questions, err := s.questions.SearchQuestions(ctx, *req.SearchTerm)
	if err != nil {
		return nil, domain.NewInternalError("Failed to search questions", err)
	}

	return &dto.CategoryQuestionsResponse{
		Success:         true,
		Questions:       toQuestionResponses(questions),
		TotalQuestions:  int64(len(questions)),
		CurrentCategory: dto.AllCategoriesLabel,
	}, nil
}

// CreateQuestion implements TriviaService
func (s *triviaService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error) {
	if req == nil {
		return nil, domain.NewUnprocessableError("request body is missing", nil)
	}
	if errs := s.validator.ValidateNewQuestion(req.Question, req.Answer, req.Category, req.Difficulty); len(errs) > 0 {
		return nil, errs
	}

	question := domain.NewQuestion(req.Question, req.Answer, req.Category, req.Difficulty)

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		category, err := s.categories.GetCategoryByID(txCtx, req.Category)
		if err != nil {
			return domain.NewInternalError("Failed to get category", err)
		}
		if category == nil {
			return domain.ValidationErrors{domain.NewUnknownReferenceError("category", req.Category)}
		}

		if err := s.questions.SaveQuestion(txCtx, question); err != nil {
			return domain.NewInternalError("Failed to save question", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Question created",
		zap.Int64("questionID", question.ID),
		zap.Int64("categoryID", question.CategoryID))

	return &dto.CreateQuestionResponse{Success: true, Created: question.ID}, nil
}

// DeleteQuestion implements TriviaService. Deleting an id that does not exist
// is unprocessable rather than not found.
func (s *triviaService) DeleteQuestion(ctx context.Context, id int64) (*dto.DeleteQuestionResponse, error) {
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		deleted, err := s.questions.DeleteQuestion(txCtx, id)
		if err != nil {
			return domain.NewInternalError("Failed to delete question", err)
		}
		if !deleted {
			return domain.NewUnprocessableError(fmt.Sprintf("question %d does not exist", id), nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Question deleted", zap.Int64("questionID", id))
	return &dto.DeleteQuestionResponse{Success: true, Deleted: id}, nil
}

// NextQuizQuestion implements TriviaService. It draws uniformly from the
// category's questions that are not in the asked list and returns a nil
// question once none remain.
func (s *triviaService) NextQuizQuestion(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error) {
	if req == nil {
		req = &dto.QuizRequest{}
	}
	categoryID := req.CategoryID()

	if categoryID != domain.AllCategories {
		category, err := s.categories.GetCategoryByID(ctx, categoryID)
		if err != nil {
			return nil, domain.NewInternalError("Failed to get category", err)
		}
		if category == nil {
			return nil, domain.NewCategoryNotFoundError(categoryID)
		}
	}

	ids, err := s.questions.GetQuestionIDs(ctx, categoryID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get question ids", err)
	}

	eligible := excludeAsked(ids, req.AskedIDs())
	if len(eligible) == 0 {
		logger.Get().Debug("Quiz exhausted", zap.Int64("categoryID", categoryID), zap.Int("asked", len(req.AskedIDs())))
		return &dto.QuizResponse{Success: true, Question: nil}, nil
	}

	id := eligible[s.pick(len(eligible))]
	question, err := s.questions.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz question", err)
	}
	if question == nil {
		return nil, domain.NewInternalError(fmt.Sprintf("question %d disappeared during selection", id), nil)
	}

	resp := toQuestionResponse(question)
	return &dto.QuizResponse{Success: true, Question: &resp}, nil
}

// Health implements TriviaService
func (s *triviaService) Health(ctx context.Context) (*dto.HealthResponse, error) {
	if err := s.db.PingContext(ctx); err != nil {
		return nil, domain.NewInternalError("Database ping failed", err)
	}
	return &dto.HealthResponse{Success: true, Status: "ok"}, nil
}

// offset returns the row offset of page. ok is false for pages below one and
// for pages whose offset does not fit in an int, which can hold no rows.
func (s *triviaService) offset(page int) (offset int, ok bool) {
	if page < 1 || page-1 > math.MaxInt/s.pageSize {
		return 0, false
	}
	return (page - 1) * s.pageSize, true
}

func excludeAsked(ids, asked []int64) []int64 {
	seen := make(map[int64]struct{}, len(asked))
	for _, id := range asked {
		seen[id] = struct{}{}
	}

	eligible := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			eligible = append(eligible, id)
		}
	}
	return eligible
}

func toQuestionResponse(q *domain.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.CategoryID,
		Difficulty: q.Difficulty,
	}
}

func toQuestionResponses(questions []*domain.Question) []dto.QuestionResponse {
	out := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, toQuestionResponse(q))
	}
	return out
}

func toCategoryResponse(c *domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Type: c.Type}
}

func toCategoryResponses(categories []*domain.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	return out
}
