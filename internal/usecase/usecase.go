package usecase

import (
	"context"

	"github.com/DRSN-tech/product-admin/internal/domain"
)

// CatalogUC — операции API каталога, которыми пользуется редактор товара.
type CatalogUC interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error)
}
