package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"trivia-api/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a new sqlx.DB instance and sqlmock for testing.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

var questionRowColumns = []string{"id", "question", "answer", "category", "difficulty"}

func TestGetQuestions(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	rows := sqlmock.NewRows(questionRowColumns).
		AddRow(int64(11), "Which is the only team to play in every soccer World Cup tournament?", "Brazil", int64(6), 3).
		AddRow(int64(12), "Who invented Peanut Butter?", "George Washington Carver", int64(4), 2)

	query := `SELECT id "id", question "question", answer "answer", category "category", difficulty "difficulty" FROM questions ORDER BY id LIMIT ? OFFSET ?`
	mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(10, 10).WillReturnRows(rows)

	result, err := repo.GetQuestions(context.Background(), 10, 10)

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, int64(11), result[0].ID)
	assert.Equal(t, "Brazil", result[0].Answer)
	assert.Equal(t, int64(6), result[0].CategoryID)
	assert.Equal(t, 3, result[0].Difficulty)
	assert.Equal(t, "Who invented Peanut Butter?", result[1].Question)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuestions_Error(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	dbErr := errors.New("connection refused")
	mock.ExpectQuery(regexp.QuoteMeta(`FROM questions ORDER BY id`)).WillReturnError(dbErr)

	result, err := repo.GetQuestions(context.Background(), 10, 0)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuestionsByCategory(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	rows := sqlmock.NewRows(questionRowColumns).
		AddRow(int64(16), "Which Dutch graphic artist-initials M C was a creator of optical illusions?", "Escher", int64(2), 1)

	query := `FROM questions WHERE category = ? ORDER BY id LIMIT ? OFFSET ?`
	mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(2), 10, 0).WillReturnRows(rows)

	result, err := repo.GetQuestionsByCategory(context.Background(), 2, 10, 0)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Escher", result[0].Answer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountQuestions(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM questions`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(19)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM questions WHERE category = ?`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	total, err := repo.CountQuestions(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(19), total)

	inCategory, err := repo.CountQuestionsByCategory(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), inCategory)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchQuestions(t *testing.T) {
	tests := []struct {
		name        string
		term        string
		wantPattern string
	}{
		{name: "plain", term: "who", wantPattern: "%who%"},
		{name: "wildcards are literal", term: "100%_sure", wantPattern: `%100\%\_sure%`},
		{name: "backslash", term: `a\b`, wantPattern: `%a\\b%`},
		{name: "empty matches all", term: "", wantPattern: "%%"},
		{name: "upper case folded", term: "WHO", wantPattern: "%who%"},
		{name: "non-ascii lowered", term: "ÉDITH PIAF", wantPattern: "%édith piaf%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupTestDB(t)
			repo := NewQuestionDatabaseAdapter(db)

			rows := sqlmock.NewRows(questionRowColumns).
				AddRow(int64(9), "What boxer's original name is Cassius Clay?", "Muhammad Ali", int64(4), 1)

			query := `FROM questions WHERE LOWER(question) LIKE LOWER(?) ESCAPE '\' ORDER BY id`
			mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(tt.wantPattern).WillReturnRows(rows)

			result, err := repo.SearchQuestions(context.Background(), tt.term)

			require.NoError(t, err)
			assert.Len(t, result, 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetQuestionByID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	query := `FROM questions WHERE id = ?`
	mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(questionRowColumns).
			AddRow(int64(5), "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", "Maya Angelou", int64(4), 2))
	mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(1000)).
		WillReturnRows(sqlmock.NewRows(questionRowColumns))

	found, err := repo.GetQuestionByID(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Maya Angelou", found.Answer)

	missing, err := repo.GetQuestionByID(context.Background(), 1000)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuestionIDs(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM questions ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)).AddRow(int64(4)).AddRow(int64(5)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM questions WHERE category = ? ORDER BY id`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(20)).AddRow(int64(21)))

	all, err := repo.GetQuestionIDs(context.Background(), domain.AllCategories)
	assert.NoError(t, err)
	assert.Equal(t, []int64{2, 4, 5}, all)

	science, err := repo.GetQuestionIDs(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, []int64{20, 21}, science)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveQuestion(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	q := domain.NewQuestion("Who let the dogs", "Who who who who", 2, 5)

	query := `INSERT INTO questions (question, answer, category, difficulty) VALUES (?, ?, ?, ?) RETURNING id`
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(q.Question, q.Answer, int64(2), 5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(24)))

	err := repo.SaveQuestion(context.Background(), q)

	assert.NoError(t, err)
	assert.Equal(t, int64(24), q.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveQuestion_Nil(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	assert.Error(t, repo.SaveQuestion(context.Background(), nil))
}

func TestDeleteQuestion(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	query := `DELETE FROM questions WHERE id = ?`
	mock.ExpectExec(regexp.QuoteMeta(query)).WithArgs(int64(15)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(query)).WithArgs(int64(1000)).WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteQuestion(context.Background(), 15)
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteQuestion(context.Background(), 1000)
	assert.NoError(t, err)
	assert.False(t, deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}
