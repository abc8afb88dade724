package handler

import (
	"strconv"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TriviaHandler handles the trivia HTTP endpoints
type TriviaHandler struct {
	service service.TriviaService
}

// NewTriviaHandler creates a new TriviaHandler instance
func NewTriviaHandler(service service.TriviaService) *TriviaHandler {
	return &TriviaHandler{
		service: service,
	}
}

// RegisterRoutes mounts every trivia endpoint on router
func (h *TriviaHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/healthz", h.Health)

	router.Get("/categories", h.ListCategories)
	router.Get("/categories/:id", h.GetCategory)
	router.Get("/categories/:id/questions", h.ListCategoryQuestions)

	router.Get("/questions", h.ListQuestions)
	router.Post("/questions", h.CreateQuestion)
	router.Delete("/questions/:id", h.DeleteQuestion)

	router.Post("/question", h.SearchQuestions)
	router.Post("/quizzes", h.NextQuizQuestion)
}

// ListQuestions godoc
// @Summary List questions
// @Description Returns one page of all questions with the total count and every category
// @Tags questions
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Success 200 {object} dto.QuestionListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions [get]
func (h *TriviaHandler) ListQuestions(c *fiber.Ctx) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}

	resp, err := h.service.ListQuestions(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListCategoryQuestions godoc
// @Summary List questions in a category
// @Description Returns one page of a category's questions
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Param page query int false "Page number, starting at 1"
// @Success 200 {object} dto.CategoryQuestionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /categories/{id}/questions [get]
func (h *TriviaHandler) ListCategoryQuestions(c *fiber.Ctx) error {
	categoryID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return domain.NewNotFoundError("category id is not a number")
	}

	page, err := pageParam(c)
	if err != nil {
		return err
	}

	resp, err := h.service.ListQuestionsByCategory(c.UserContext(), categoryID, page)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoryListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /categories [get]
func (h *TriviaHandler) ListCategories(c *fiber.Ctx) error {
	resp, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetCategory godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.CategoryDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /categories/{id} [get]
func (h *TriviaHandler) GetCategory(c *fiber.Ctx) error {
	categoryID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return domain.NewNotFoundError("category id is not a number")
	}

	resp, err := h.service.GetCategory(c.UserContext(), categoryID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SearchQuestions godoc
// @Summary Search questions
// @Description Case-insensitive substring search over question text
// @Tags questions
// @Accept json
// @Produce json
// @Param request body dto.SearchQuestionsRequest true "Search term"
// @Success 200 {object} dto.CategoryQuestionsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /question [post]
func (h *TriviaHandler) SearchQuestions(c *fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return domain.NewInternalError("search request has no body", nil)
	}

	var req dto.SearchQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInternalError("failed to parse search request", err)
	}

	resp, err := h.service.SearchQuestions(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateQuestion godoc
// @Summary Create a question
// @Tags questions
// @Accept json
// @Produce json
// @Param request body dto.CreateQuestionRequest true "New question"
// @Success 200 {object} dto.CreateQuestionResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions [post]
func (h *TriviaHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("Failed to parse create question request", zap.Error(err))
		return domain.NewUnprocessableError("failed to parse create question request", err)
	}

	resp, err := h.service.CreateQuestion(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.DeleteQuestionResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions/{id} [delete]
func (h *TriviaHandler) DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return domain.NewUnprocessableError("question id is not a number", err)
	}

	resp, err := h.service.DeleteQuestion(c.UserContext(), questionID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// NextQuizQuestion godoc
// @Summary Next quiz question
// @Description Draws a random question from the category that is not in previous_questions. question is null once every eligible question has been asked.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body dto.QuizRequest true "Asked question ids and quiz category (id 0 for all)"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes [post]
func (h *TriviaHandler) NextQuizQuestion(c *fiber.Ctx) error {
	var req dto.QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("failed to parse quiz request", err)
	}

	resp, err := h.service.NextQuizQuestion(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Health godoc
// @Summary Health check
// @Description Pings the database
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /healthz [get]
func (h *TriviaHandler) Health(c *fiber.Ctx) error {
	resp, err := h.service.Health(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// pageParam reads ?page, defaulting to 1. Out-of-range pages are left for
// the service to reject.
func pageParam(c *fiber.Ctx) (int, error) {
	raw := c.Query("page")
	if raw == "" {
		return 1, nil
	}

	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewInvalidInputError("page must be an integer", err)
	}
	return page, nil
}
