package editor

import (
	"context"
	"sync"

	"github.com/DRSN-tech/product-admin/internal/domain"
)

// fakeAPI — управляемая из теста реализация CatalogAPI.
type fakeAPI struct {
	mu sync.Mutex

	categories    []domain.Category
	categoriesErr error
	categoryCalls int

	uploadLinks []string
	uploadErr   error
	uploadGate  chan struct{}
	uploaded    [][]File

	saveErr error
	created []*domain.Product
	updated []*domain.Product
}

func (f *fakeAPI) Categories(ctx context.Context) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categoryCalls++
	if f.categoriesErr != nil {
		return nil, f.categoriesErr
	}
	return f.categories, nil
}

func (f *fakeAPI) UploadImages(ctx context.Context, files []File) ([]string, error) {
	if f.uploadGate != nil {
		<-f.uploadGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, files)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.uploadLinks, nil
}

func (f *fakeAPI) CreateProduct(ctx context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.created = append(f.created, p)
	return nil
}

func (f *fakeAPI) UpdateProduct(ctx context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.updated = append(f.updated, p)
	return nil
}

type recorder struct {
	mu    sync.Mutex
	snaps []Snapshot
	paths []string
}

func (r *recorder) render(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) renders() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}

func newTestForm(api *fakeAPI, existing *domain.Product) (*Form, *recorder) {
	rec := &recorder{}
	f := New(Deps{API: api, Navigator: rec, Render: rec.render}, existing)
	return f, rec
}
