package editor

import (
	"context"

	"github.com/DRSN-tech/product-admin/internal/domain"
)

// ProductsPath — куда редактор уходит после успешного сохранения.
const ProductsPath = "/products"

// CatalogAPI — серверные вызовы, которые нужны форме.
type CatalogAPI interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	UploadImages(ctx context.Context, files []File) ([]string, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
}

// Navigator переключает экран. Реализация живёт в хост-приложении.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc позволяет передать функцию как Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Renderer получает новый снимок после каждого изменения формы.
type Renderer func(Snapshot)

// File — файл, выбранный пользователем для загрузки.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}
