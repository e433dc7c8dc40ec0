package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/pkg/e"
	"github.com/DRSN-tech/product-admin/pkg/logger"
	"github.com/google/uuid"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
	cacheTimeout   = 500 * time.Millisecond
)

// CatalogUseCase реализует бизнес-логику API каталога.
type CatalogUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	outboxRepo   OutboxRepository
	cacheRepo    CacheRepository
	transactor   Transactor
	imagesInfra  ImagesInfra
	encoder      EventEncoder
	logger       logger.Logger
	now          func() time.Time
}

func NewCatalogUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	transactor Transactor,
	imagesInfra ImagesInfra,
	encoder EventEncoder,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		outboxRepo:   outboxRepo,
		cacheRepo:    cacheRepo,
		transactor:   transactor,
		imagesInfra:  imagesInfra,
		encoder:      encoder,
		logger:       logger,
		now:          time.Now,
	}
}

// ListCategories возвращает все категории, сначала пробуя кэш.
func (c *CatalogUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "CatalogUseCase.ListCategories"

	cached, err := c.cacheRepo.GetCategories(ctx)
	if err != nil {
		c.logger.Warnf("%s: category cache unavailable: %v", op, err)
	}
	if cached != nil {
		return cached, nil
	}

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Фоновое добавление категорий в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
		defer cancel()

		if err := c.cacheRepo.SetCategories(bgCtx, categories); err != nil {
			c.logger.Warnf("Failed to cache categories in background: %v", e.Wrap(op, err))
		}
	}()

	return categories, nil
}

// UploadImages сохраняет фото и возвращает публичные ссылки в порядке файлов.
func (c *CatalogUseCase) UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error) {
	const op = "CatalogUseCase.UploadImages"

	if len(req.Images) == 0 {
		return nil, e.Wrap(op, e.NewValidationError("file", e.ErrNoImages.Error()))
	}

	res, err := c.imagesInfra.UploadImages(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.logger.Infof("%s: stored %d image(s)", op, len(res.Keys))
	return res, nil
}

// CreateProduct сохраняет новый товар и событие product.created в одной транзакции.
func (c *CatalogUseCase) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	const op = "CatalogUseCase.CreateProduct"

	if product.ID != "" {
		return nil, e.Wrap(op, e.NewValidationError("_id", e.ErrUnexpectedID.Error()))
	}
	if err := c.validateProduct(ctx, product); err != nil {
		return nil, e.Wrap(op, err)
	}

	toSave := product.Clone()
	toSave.ID = uuid.NewString()

	var created *domain.Product
	err := c.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = c.productRepo.Create(ctx, toSave)
		if err != nil {
			return err
		}
		return c.writeEvent(ctx, ProductCreated, created)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.logger.Infof("%s: product %s created", op, created.ID)
	return created, nil
}

// UpdateProduct перезаписывает товар целиком и пишет событие product.updated.
func (c *CatalogUseCase) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	const op = "CatalogUseCase.UpdateProduct"

	if product.ID == "" {
		return nil, e.Wrap(op, e.NewValidationError("_id", e.ErrMissingID.Error()))
	}
	if _, err := uuid.Parse(product.ID); err != nil {
		return nil, e.Wrap(op, e.NewNotFoundError("product", product.ID))
	}
	if err := c.validateProduct(ctx, product); err != nil {
		return nil, e.Wrap(op, err)
	}

	var updated *domain.Product
	err := c.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = c.productRepo.Update(ctx, product.Clone())
		if err != nil {
			return err
		}
		return c.writeEvent(ctx, ProductUpdated, updated)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Удаление из кэша старых данных товара
	if err := c.cacheRepo.DeleteProducts(ctx, []string{updated.ID}); err != nil {
		c.logger.Warnf("Failed to delete products: %v", e.Wrap(op, err))
	}

	c.logger.Infof("%s: product %s updated", op, updated.ID)
	return updated, nil
}

// GetProduct возвращает товар по id, сначала пробуя кэш.
func (c *CatalogUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	const op = "CatalogUseCase.GetProduct"

	if _, err := uuid.Parse(id); err != nil {
		return nil, e.Wrap(op, e.NewNotFoundError("product", id))
	}

	cached, err := c.cacheRepo.GetProduct(ctx, id)
	if err != nil {
		c.logger.Warnf("%s: product cache unavailable: %v", op, err)
	}
	if cached != nil {
		return cached, nil
	}

	product, err := c.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
		defer cancel()

		if err := c.cacheRepo.SetProduct(bgCtx, product); err != nil {
			c.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return product, nil
}

// ListProducts возвращает страницу товаров. Кэш не используется.
func (c *CatalogUseCase) ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error) {
	const op = "CatalogUseCase.ListProducts"

	normalized := *req
	if normalized.Page < 1 {
		normalized.Page = 1
	}
	if normalized.PerPage < 1 {
		normalized.PerPage = defaultPerPage
	}
	normalized.PerPage = min(normalized.PerPage, maxPerPage)

	products, total, err := c.productRepo.List(ctx, &normalized)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &ListProductsRes{
		Products: products,
		Total:    total,
		Page:     normalized.Page,
		PerPage:  normalized.PerPage,
	}, nil
}

// validateProduct проверяет документ так же, как схема хранения,
// и убеждается, что выбранная категория существует.
func (c *CatalogUseCase) validateProduct(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	if product.CategoryID == "" {
		return nil
	}
	if _, err := uuid.Parse(product.CategoryID); err != nil {
		return e.NewValidationError("category", "unknown category")
	}

	if _, err := c.categoryRepo.GetByID(ctx, product.CategoryID); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return e.NewValidationError("category", "unknown category")
		}
		return err
	}

	return nil
}

// writeEvent сериализует товар и кладёт событие в outbox текущей транзакции.
func (c *CatalogUseCase) writeEvent(ctx context.Context, eventType OutboxEventType, product *domain.Product) error {
	event := &ProductEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OccurredAt: c.now().UTC(),
		Product:    product,
	}

	payload, err := c.encoder.EncodeProductEvent(event)
	if err != nil {
		return err
	}

	_, err = c.outboxRepo.Create(ctx, NewOutboxEvent(event.EventID, eventType, product.ID, payload))
	return err
}
