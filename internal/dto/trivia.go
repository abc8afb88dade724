package dto

import (
	"fmt"
	"strconv"
	"strings"
)

// AllCategoriesLabel is reported as current_category when a listing is not
// filtered by category
const AllCategoriesLabel = "All"

// QuestionResponse represents a question in the API response
// @Description Trivia question
type QuestionResponse struct {
	ID         int64  `json:"id" example:"5"`
	Question   string `json:"question" example:"Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?"`
	Answer     string `json:"answer" example:"Maya Angelou"`
	Category   int64  `json:"category" example:"4"`
	Difficulty int    `json:"difficulty" example:"2"`
}

// CategoryResponse represents a category in the API response
// @Description Question category
type CategoryResponse struct {
	ID   int64  `json:"id" example:"1"`
	Type string `json:"type" example:"Science"`
}

// QuestionListResponse is returned by GET /questions
type QuestionListResponse struct {
	Success         bool               `json:"success"`
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int64              `json:"total_questions"`
	Categories      []CategoryResponse `json:"categories"`
	CurrentCategory string             `json:"current_category"`
}

// CategoryQuestionsResponse is returned by GET /categories/{id}/questions and
// by POST /question
type CategoryQuestionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int64              `json:"total_questions"`
	CurrentCategory string             `json:"current_category"`
}

// CategoryListResponse is returned by GET /categories
type CategoryListResponse struct {
	Success    bool               `json:"success"`
	Categories []CategoryResponse `json:"categories"`
}

// CategoryDetailResponse is returned by GET /categories/{id}
type CategoryDetailResponse struct {
	Success  bool             `json:"success"`
	Category CategoryResponse `json:"category"`
}

// CreateQuestionRequest is the body of POST /questions
// @Description New question payload
type CreateQuestionRequest struct {
	Question   string `json:"question" example:"Who let the dogs out?"`
	Answer     string `json:"answer" example:"Baha Men"`
	Category   int64  `json:"category" example:"5"`
	Difficulty int    `json:"difficulty" example:"1"`
}

// CreateQuestionResponse is returned by POST /questions
type CreateQuestionResponse struct {
	Success bool  `json:"success"`
	Created int64 `json:"created"`
}

// DeleteQuestionResponse is returned by DELETE /questions/{id}
type DeleteQuestionResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}

// SearchQuestionsRequest is the body of POST /question. SearchTerm is a
// pointer so an absent term can be told apart from an empty one.
type SearchQuestionsRequest struct {
	SearchTerm *string `json:"searchTerm" example:"who"`
}

// QuizCategory identifies the category a quiz draws from; ID 0 means all
type QuizCategory struct {
	Type string    `json:"type" example:"Science"`
	ID   NumericID `json:"id" swaggertype:"integer" example:"1"`
}

// NumericID is an id that decodes from a JSON number or a numeric string.
// Browser clients often take ids from object keys, which are strings.
type NumericID int64

// UnmarshalJSON implements json.Unmarshaler
func (n *NumericID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*n = NumericID(v)
	return nil
}

// QuizRequest is the body of POST /quizzes
// @Description Next quiz question request
type QuizRequest struct {
	PreviousQuestions []int64       `json:"previous_questions"`
	PreviousQuestion  []int64       `json:"previous_question" swaggerignore:"true"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// AskedIDs merges previous_questions with its singular alias
func (r *QuizRequest) AskedIDs() []int64 {
	ids := make([]int64, 0, len(r.PreviousQuestions)+len(r.PreviousQuestion))
	ids = append(ids, r.PreviousQuestions...)
	return append(ids, r.PreviousQuestion...)
}

// CategoryID returns the requested category, or 0 when none was given
func (r *QuizRequest) CategoryID() int64 {
	if r.QuizCategory == nil {
		return 0
	}
	return int64(r.QuizCategory.ID)
}

// QuizResponse is returned by POST /quizzes. Question is null once every
// eligible question has been asked.
type QuizResponse struct {
	Success  bool              `json:"success"`
	Question *QuestionResponse `json:"question"`
}

// HealthResponse is returned by GET /healthz
type HealthResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status" example:"ok"`
}

// ErrorResponse is the body of every failed request
// @Description Error payload
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   int    `json:"error" example:"404"`
	Message string `json:"message" example:"resource not found"`
}
