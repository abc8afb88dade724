package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trivia-api/internal/database"
	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"
)

const questionColumns = `id "id", question "question", answer "answer", category "category", difficulty "difficulty"`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx
type QuestionDatabaseAdapter struct {
	db DBTX
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db DBTX) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// GetQuestions returns one page of all questions ordered by id
func (a *QuestionDatabaseAdapter) GetQuestions(ctx context.Context, limit, offset int) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	page, pageArgs := database.PageClause(exec.DriverName(), limit, offset)

	query := "SELECT " + questionColumns + " FROM questions ORDER BY id " + page
	return a.selectQuestions(ctx, exec, query, pageArgs...)
}

// GetQuestionsByCategory returns one page of a category's questions ordered by id
func (a *QuestionDatabaseAdapter) GetQuestionsByCategory(ctx context.Context, categoryID int64, limit, offset int) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	page, pageArgs := database.PageClause(exec.DriverName(), limit, offset)

	query := "SELECT " + questionColumns + " FROM questions WHERE category = ? ORDER BY id " + page
	args := append([]any{categoryID}, pageArgs...)
	return a.selectQuestions(ctx, exec, query, args...)
}

// CountQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) CountQuestions(ctx context.Context) (int64, error) {
	exec := GetExecutor(ctx, a.db)

	var total int64
	if err := exec.GetContext(ctx, &total, exec.Rebind("SELECT COUNT(*) FROM questions")); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return total, nil
}

// CountQuestionsByCategory implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) CountQuestionsByCategory(ctx context.Context, categoryID int64) (int64, error) {
	exec := GetExecutor(ctx, a.db)

	var total int64
	query := exec.Rebind("SELECT COUNT(*) FROM questions WHERE category = ?")
	if err := exec.GetContext(ctx, &total, query, categoryID); err != nil {
		return 0, fmt.Errorf("failed to count questions in category %d: %w", categoryID, err)
	}
	return total, nil
}

// SearchQuestions matches term anywhere in the question text, ignoring case.
// LIKE wildcards in term are matched literally. The term is lowered here with
// full Unicode folding; SQLite's LOWER only folds ASCII on the column side.
func (a *QuestionDatabaseAdapter) SearchQuestions(ctx context.Context, term string) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)

	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	query := "SELECT " + questionColumns + ` FROM questions WHERE LOWER(question) LIKE LOWER(?) ESCAPE '\' ORDER BY id`
	return a.selectQuestions(ctx, exec, query, pattern)
}

// GetQuestionByID returns nil, nil when the question does not exist
func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)

	var question models.Question
	query := exec.Rebind("SELECT " + questionColumns + " FROM questions WHERE id = ?")
	if err := exec.GetContext(ctx, &question, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %d: %w", id, err)
	}
	return toDomainQuestion(&question), nil
}

// GetQuestionIDs implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionIDs(ctx context.Context, categoryID int64) ([]int64, error) {
	exec := GetExecutor(ctx, a.db)

	var (
		ids []int64
		err error
	)
	if categoryID == domain.AllCategories {
		err = exec.SelectContext(ctx, &ids, exec.Rebind("SELECT id FROM questions ORDER BY id"))
	} else {
		err = exec.SelectContext(ctx, &ids, exec.Rebind("SELECT id FROM questions WHERE category = ? ORDER BY id"), categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question ids: %w", err)
	}
	return ids, nil
}

// SaveQuestion inserts question and sets its generated ID
func (a *QuestionDatabaseAdapter) SaveQuestion(ctx context.Context, question *domain.Question) error {
	if question == nil {
		return fmt.Errorf("cannot save nil question")
	}
	exec := GetExecutor(ctx, a.db)
	m := toModelQuestion(question)

	id, err := insertReturningID(ctx, exec,
		"INSERT INTO questions (question, answer, category, difficulty) VALUES (?, ?, ?, ?)",
		m.Question, m.Answer, m.Category, m.Difficulty,
	)
	if err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	question.ID = id
	return nil
}

// DeleteQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) DeleteQuestion(ctx context.Context, id int64) (bool, error) {
	exec := GetExecutor(ctx, a.db)

	result, err := exec.ExecContext(ctx, exec.Rebind("DELETE FROM questions WHERE id = ?"), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete question %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (a *QuestionDatabaseAdapter) selectQuestions(ctx context.Context, exec DBTX, query string, args ...any) ([]*domain.Question, error) {
	var rows []models.Question
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to select questions: %w", err)
	}

	questions := make([]*domain.Question, len(rows))
	for i := range rows {
		questions[i] = toDomainQuestion(&rows[i])
	}
	return questions, nil
}

func toDomainQuestion(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:         m.ID,
		Question:   m.Question,
		Answer:     m.Answer,
		CategoryID: m.Category,
		Difficulty: m.Difficulty,
	}
}

func toModelQuestion(q *domain.Question) *models.Question {
	return &models.Question{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.CategoryID,
		Difficulty: q.Difficulty,
	}
}
