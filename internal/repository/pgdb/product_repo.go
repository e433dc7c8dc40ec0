package pgdb

import (
	"context"

	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/product-admin/internal/usecase"
	"github.com/DRSN-tech/product-admin/pkg/e"
	"github.com/DRSN-tech/product-admin/pkg/tr"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jimlawless/whereami"
)

var productColumns = []string{
	"id::text", "title", "description", "price", "price_col", "weight_and_prices",
	"flavors", "images", "category_id::text", "properties", "created_at", "updated_at",
}

const productReturning = "RETURNING id::text, title, description, price, price_col, weight_and_prices, " +
	"flavors, images, category_id::text, properties, created_at, updated_at"

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool Querier
	conv converter.ProductConverter
}

func NewProductRepo(pool Querier, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Create вставляет товар в рамках транзакции из контекста.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query, args, err := insertProductQuery(p.conv.ToModel(product)).ToSql()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	saved, err := scanProduct(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapWriteError(err, product)
	}

	return p.conv.ToEntity(saved), nil
}

// Update перезаписывает все поля товара. Отсутствующий товар — NotFoundError.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query, args, err := updateProductQuery(p.conv.ToModel(product)).ToSql()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	saved, err := scanProduct(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapWriteError(err, product)
	}

	return p.conv.ToEntity(saved), nil
}

// GetByID возвращает товар или NotFoundError.
func (p *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query, args, err := psql.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := scanProduct(p.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, e.NewNotFoundError("product", id)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// List возвращает страницу товаров (новые сверху) и общее число подходящих записей.
func (p *ProductRepo) List(ctx context.Context, req *usecase.ListProductsReq) ([]domain.Product, int64, error) {
	countBuilder, listBuilder := listProductsQueries(req)

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	var total int64
	if err := p.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0, req.PerPage)
	for rows.Next() {
		model, err := scanProduct(rows)
		if err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, *p.conv.ToEntity(model))
	}

	if err := rows.Err(); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, total, nil
}

func insertProductQuery(model *converter.ProductModel) squirrel.InsertBuilder {
	values := productValues(model)
	values["id"] = model.ID

	return psql.Insert("products").
		SetMap(values).
		Suffix(productReturning)
}

func updateProductQuery(model *converter.ProductModel) squirrel.UpdateBuilder {
	return psql.Update("products").
		SetMap(productValues(model)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": model.ID}).
		Suffix(productReturning)
}

// listProductsQueries строит запрос общего числа и запрос страницы с одинаковым фильтром.
// Page и PerPage уже нормализованы use case'ом.
func listProductsQueries(req *usecase.ListProductsReq) (squirrel.SelectBuilder, squirrel.SelectBuilder) {
	where := squirrel.And{}
	if req.Query != "" {
		where = append(where, squirrel.ILike{"title": containsPattern(req.Query)})
	}
	if req.CategoryID != "" {
		where = append(where, squirrel.Eq{"category_id": req.CategoryID})
	}

	count := psql.Select("COUNT(*)").From("products").Where(where)
	page := psql.Select(productColumns...).
		From("products").
		Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(req.PerPage)).
		Offset(uint64((req.Page - 1) * req.PerPage))

	return count, page
}

func productValues(model *converter.ProductModel) map[string]interface{} {
	return map[string]interface{}{
		"title":             model.Title,
		"description":       model.Description,
		"price":             model.Price,
		"price_col":         model.PriceCOL,
		"weight_and_prices": model.WeightAndPrices,
		"flavors":           model.Flavors,
		"images":            model.Images,
		"category_id":       model.CategoryID,
		"properties":        model.Properties,
	}
}

func mapWriteError(err error, product *domain.Product) error {
	switch {
	case noRows(err):
		return e.NewNotFoundError("product", product.ID)
	case postgresForeignKey(err):
		return e.NewValidationError("category", "unknown category")
	case postgresDuplicate(err):
		return e.Wrap(whereami.WhereAmI(), e.NewValidationError("_id", "product already exists"))
	default:
		return e.Wrap(whereami.WhereAmI(), err)
	}
}

func scanProduct(row pgx.Row) (*converter.ProductModel, error) {
	var model converter.ProductModel
	err := row.Scan(
		&model.ID, &model.Title, &model.Description, &model.Price, &model.PriceCOL,
		&model.WeightAndPrices, &model.Flavors, &model.Images, &model.CategoryID,
		&model.Properties, &model.CreatedAt, &model.UpdatedAt,
	)
	return &model, err
}
