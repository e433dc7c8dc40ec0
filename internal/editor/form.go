// Package editor держит состояние формы редактирования товара.
// Форма не знает о виджетах: хост вызывает методы на события пользователя
// и перерисовывает экран из Snapshot, который приходит в Renderer.
package editor

import (
	"strings"
	"sync"

	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/pkg/logger"
)

// Deps — явные зависимости формы.
type Deps struct {
	API       CatalogAPI
	Navigator Navigator
	Render    Renderer
	Logger    logger.Logger
}

// Form — состояние одного редактора товара. Каждое поле хранится отдельно
// и меняется своим сеттером.
type Form struct {
	mu   sync.Mutex
	deps Deps

	id          string
	title       string
	description string
	price       string
	priceCOL    string
	category    string
	properties  map[string]string
	images      []string
	tiers       []Tier
	flavors     string

	categories        []domain.Category
	categoriesLoaded  bool
	categoriesLoading bool
	pendingUploads    int
	submitting        bool

	categoriesErr error
	uploadErr     error
	submitErr     error
	fieldErrors   map[string]string
}

// New создаёт пустую форму, либо заполненную из existing.
func New(deps Deps, existing *domain.Product) *Form {
	if deps.Logger == nil {
		deps.Logger = logger.Nop{}
	}

	f := &Form{
		deps:       deps,
		properties: map[string]string{},
	}

	if existing == nil {
		return f
	}

	f.id = existing.ID
	f.title = existing.Title
	f.description = existing.Description
	f.price = existing.Price.String()
	f.priceCOL = existing.PriceCOL.String()
	f.category = existing.CategoryID
	f.images = append([]string(nil), existing.Images...)
	f.flavors = strings.Join(existing.Flavors, ", ")
	for k, v := range existing.Properties {
		f.properties[k] = v
	}
	for _, wp := range existing.WeightAndPrices {
		f.tiers = append(f.tiers, Tier{Weight: wp.Weight, PriceUnit: wp.PriceUnit.String()})
	}

	return f
}

// Snapshot — неизменяемая копия состояния формы для отрисовки.
type Snapshot struct {
	ID          string
	Title       string
	Description string
	Price       string
	PriceCOL    string
	Category    string
	Properties  map[string]string
	Images      []string
	Tiers       []Tier
	Flavors     string

	Categories        []domain.Category
	PropertiesToFill  []domain.Property
	PropertiesErr     error
	CategoriesLoading bool
	Uploading         bool
	Submitting        bool

	CategoriesErr error
	UploadErr     error
	SubmitErr     error
	FieldErrors   map[string]string
}

// Snapshot возвращает текущее состояние.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Form) SetTitle(v string)       { f.update(func() { f.title = v }) }
func (f *Form) SetDescription(v string) { f.update(func() { f.description = v }) }
func (f *Form) SetPrice(v string)       { f.update(func() { f.price = v }) }
func (f *Form) SetPriceCOL(v string)    { f.update(func() { f.priceCOL = v }) }
func (f *Form) SetFlavors(v string)     { f.update(func() { f.flavors = v }) }

// update применяет изменение под блокировкой и перерисовывает форму.
func (f *Form) update(mutate func()) {
	f.mu.Lock()
	mutate()
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.render(snap)
}

func (f *Form) render(snap Snapshot) {
	if f.deps.Render != nil {
		f.deps.Render(snap)
	}
}

func (f *Form) snapshotLocked() Snapshot {
	props := make(map[string]string, len(f.properties))
	for k, v := range f.properties {
		props[k] = v
	}

	var fieldErrs map[string]string
	if len(f.fieldErrors) > 0 {
		fieldErrs = make(map[string]string, len(f.fieldErrors))
		for k, v := range f.fieldErrors {
			fieldErrs[k] = v
		}
	}

	toFill, propsErr := f.propertiesToFillLocked()

	return Snapshot{
		ID:                f.id,
		Title:             f.title,
		Description:       f.description,
		Price:             f.price,
		PriceCOL:          f.priceCOL,
		Category:          f.category,
		Properties:        props,
		Images:            append([]string(nil), f.images...),
		Tiers:             append([]Tier(nil), f.tiers...),
		Flavors:           f.flavors,
		Categories:        append([]domain.Category(nil), f.categories...),
		PropertiesToFill:  toFill,
		PropertiesErr:     propsErr,
		CategoriesLoading: f.categoriesLoading,
		Uploading:         f.pendingUploads > 0,
		Submitting:        f.submitting,
		CategoriesErr:     f.categoriesErr,
		UploadErr:         f.uploadErr,
		SubmitErr:         f.submitErr,
		FieldErrors:       fieldErrs,
	}
}
