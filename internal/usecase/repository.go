package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/product-admin/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, req *ListProductsReq) ([]domain.Product, int64, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	ReleaseStuck(ctx context.Context, olderThan time.Duration) (int64, error)
}

// CacheRepository — кэш чтения. Промах возвращается как nil без ошибки.
type CacheRepository interface {
	GetCategories(ctx context.Context) ([]domain.Category, error)
	SetCategories(ctx context.Context, categories []domain.Category) error
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	DeleteProducts(ctx context.Context, ids []string) error
}

// Transactor выполняет fn в одной транзакции PostgreSQL.
// Репозитории достают транзакцию из контекста.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
