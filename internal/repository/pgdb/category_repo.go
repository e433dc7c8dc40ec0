package pgdb

import (
	"context"

	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/product-admin/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jimlawless/whereami"
)

const categoryColumns = `id::text, name, properties, parent_id::text, created_at, updated_at`

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool Querier
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool Querier, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

// List возвращает все неархивные категории, отсортированные по имени.
func (c *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE NOT is_archived ORDER BY name`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Category, 0)
	for rows.Next() {
		model, err := scanCategory(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, *c.conv.ToEntity(model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// GetByID возвращает категорию или NotFoundError.
func (c *CategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND NOT is_archived`

	model, err := scanCategory(c.pool.QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			return nil, e.NewNotFoundError("category", id)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(model), nil
}

func scanCategory(row pgx.Row) (*converter.CategoryModel, error) {
	var model converter.CategoryModel
	err := row.Scan(
		&model.ID, &model.Name, &model.Properties, &model.ParentID, &model.CreatedAt, &model.UpdatedAt,
	)
	return &model, err
}
