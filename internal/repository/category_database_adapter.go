package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trivia-api/internal/database"
	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"
)

const categoryColumns = `id "id", type "type"`

type CategoryDatabaseAdapter struct {
	db DBTX
}

// NewCategoryDatabaseAdapter creates a new instance of CategoryDatabaseAdapter
func NewCategoryDatabaseAdapter(db DBTX) domain.CategoryRepository {
	return &CategoryDatabaseAdapter{db: db}
}

// GetAllCategories returns every category ordered by id
func (r *CategoryDatabaseAdapter) GetAllCategories(ctx context.Context) ([]*domain.Category, error) {
	exec := GetExecutor(ctx, r.db)

	var categories []models.Category
	query := "SELECT " + categoryColumns + " FROM categories ORDER BY id"
	if err := exec.SelectContext(ctx, &categories, exec.Rebind(query)); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	domainCategories := make([]*domain.Category, len(categories))
	for i := range categories {
		domainCategories[i] = toDomainCategory(&categories[i])
	}
	return domainCategories, nil
}

// GetCategoryByID returns nil, nil when no category has the id
func (r *CategoryDatabaseAdapter) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetCategoryByType returns nil, nil when no category has the type
func (r *CategoryDatabaseAdapter) GetCategoryByType(ctx context.Context, categoryType string) (*domain.Category, error) {
	return r.getOne(ctx, "type = ?", categoryType)
}

func (r *CategoryDatabaseAdapter) getOne(ctx context.Context, where string, arg any) (*domain.Category, error) {
	exec := GetExecutor(ctx, r.db)

	var category models.Category
	query := "SELECT " + categoryColumns + " FROM categories WHERE " + where
	if err := exec.GetContext(ctx, &category, exec.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category by %s: %w", where, err)
	}
	return toDomainCategory(&category), nil
}

// SaveCategory inserts category and sets its generated ID
func (r *CategoryDatabaseAdapter) SaveCategory(ctx context.Context, category *domain.Category) error {
	if category == nil {
		return fmt.Errorf("cannot save nil category")
	}
	exec := GetExecutor(ctx, r.db)

	id, err := insertReturningID(ctx, exec, "INSERT INTO categories (type) VALUES (?)", category.Type)
	if err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	category.ID = id
	return nil
}

// insertReturningID runs an INSERT and reads back the generated id column.
func insertReturningID(ctx context.Context, exec DBTX, insert string, args ...any) (int64, error) {
	var id int64
	if database.SupportsReturning(exec.DriverName()) {
		err := exec.GetContext(ctx, &id, exec.Rebind(insert+" RETURNING id"), args...)
		return id, err
	}

	args = append(args, sql.Out{Dest: &id})
	_, err := exec.ExecContext(ctx, exec.Rebind(insert+" RETURNING id INTO ?"), args...)
	return id, err
}

func toDomainCategory(category *models.Category) *domain.Category {
	return &domain.Category{
		ID:   category.ID,
		Type: category.Type,
	}
}
