package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/pkg/e"
	"github.com/DRSN-tech/product-admin/pkg/logger"
)

type fakeProducts struct {
	mu        sync.Mutex
	items     map[string]*domain.Product
	createErr error
	gets      int
	listReq   *ListProductsReq
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{items: map[string]*domain.Product{}}
}

func (f *fakeProducts) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := p.Clone()
	cp.CreatedAt = time.Now()
	f.items[p.ID] = cp
	return cp.Clone(), nil
}

func (f *fakeProducts) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[p.ID]; !ok {
		return nil, e.NewNotFoundError("product", p.ID)
	}
	f.items[p.ID] = p.Clone()
	return p.Clone(), nil
}

func (f *fakeProducts) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	p, ok := f.items[id]
	if !ok {
		return nil, e.NewNotFoundError("product", id)
	}
	return p.Clone(), nil
}

func (f *fakeProducts) List(ctx context.Context, req *ListProductsReq) ([]domain.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listReq = req
	out := make([]domain.Product, 0, len(f.items))
	for _, p := range f.items {
		out = append(out, *p.Clone())
	}
	return out, int64(len(out)), nil
}

type fakeCategories struct {
	items []domain.Category
	calls int
}

func (f *fakeCategories) List(ctx context.Context) ([]domain.Category, error) {
	f.calls++
	return f.items, nil
}

func (f *fakeCategories) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, e.NewNotFoundError("category", id)
}

type fakeOutbox struct {
	mu     sync.Mutex
	events []*OutboxEvent
}

func (f *fakeOutbox) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeOutbox) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkAsProcessed(ctx context.Context, id int64) error { return nil }

func (f *fakeOutbox) ReleaseStuck(ctx context.Context, olderThan time.Duration) (int64, error) {
	return 0, nil
}

type fakeCache struct {
	mu         sync.Mutex
	categories []domain.Category
	products   map[string]*domain.Product
	deleted    []string
	getErr     error
	set        chan struct{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{products: map[string]*domain.Product{}, set: make(chan struct{}, 8)}
}

func (f *fakeCache) GetCategories(ctx context.Context) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.categories, f.getErr
}

func (f *fakeCache) SetCategories(ctx context.Context, categories []domain.Category) error {
	f.mu.Lock()
	f.categories = categories
	f.mu.Unlock()
	f.set <- struct{}{}
	return nil
}

func (f *fakeCache) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id], f.getErr
}

func (f *fakeCache) SetProduct(ctx context.Context, p *domain.Product) error {
	f.mu.Lock()
	f.products[p.ID] = p
	f.mu.Unlock()
	f.set <- struct{}{}
	return nil
}

func (f *fakeCache) DeleteProducts(ctx context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, ids...)
	for _, id := range ids {
		delete(f.products, id)
	}
	return nil
}

// fakeTransactor откатывает изменения fakeProducts и fakeOutbox, если fn вернула ошибку.
type fakeTransactor struct {
	products *fakeProducts
	outbox   *fakeOutbox
	commits  int
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.products.mu.Lock()
	snapshot := make(map[string]*domain.Product, len(f.products.items))
	for k, v := range f.products.items {
		snapshot[k] = v
	}
	f.products.mu.Unlock()
	f.outbox.mu.Lock()
	events := len(f.outbox.events)
	f.outbox.mu.Unlock()

	if err := fn(ctx); err != nil {
		f.products.mu.Lock()
		f.products.items = snapshot
		f.products.mu.Unlock()
		f.outbox.mu.Lock()
		f.outbox.events = f.outbox.events[:events]
		f.outbox.mu.Unlock()
		return err
	}
	f.commits++
	return nil
}

type fakeImages struct {
	req *UploadImagesReq
	err error
}

func (f *fakeImages) UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	keys := make([]string, len(req.Images))
	links := make([]string, len(req.Images))
	for i, img := range req.Images {
		keys[i] = "products/" + img.Name
		links[i] = "http://cdn/" + keys[i]
	}
	return NewUploadImagesRes(keys, links), nil
}

func (f *fakeImages) CleanupImages(keys []string) {}

type fakeEncoder struct {
	err error
}

func (f fakeEncoder) EncodeProductEvent(event *ProductEvent) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte(string(event.Type) + ":" + event.Product.ID), nil
}

var errBoom = errors.New("boom")

type testDeps struct {
	uc         *CatalogUseCase
	products   *fakeProducts
	categories *fakeCategories
	outbox     *fakeOutbox
	cache      *fakeCache
	tx         *fakeTransactor
	images     *fakeImages
}

func newTestUC(encoder EventEncoder) *testDeps {
	d := &testDeps{
		products:   newFakeProducts(),
		categories: &fakeCategories{},
		outbox:     &fakeOutbox{},
		cache:      newFakeCache(),
		images:     &fakeImages{},
	}
	d.tx = &fakeTransactor{products: d.products, outbox: d.outbox}
	if encoder == nil {
		encoder = fakeEncoder{}
	}
	d.uc = NewCatalogUC(d.products, d.categories, d.outbox, d.cache, d.tx, d.images, encoder, logger.Nop{})
	return d
}
