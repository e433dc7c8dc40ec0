package editor

import (
	"context"

	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/pkg/e"
)

// LoadCategories загружает список категорий. Успешная загрузка выполняется один раз,
// после ошибки вызов можно повторить.
func (f *Form) LoadCategories(ctx context.Context) error {
	const op = "Form.LoadCategories"

	f.mu.Lock()
	if f.categoriesLoaded || f.categoriesLoading {
		f.mu.Unlock()
		return nil
	}
	f.categoriesLoading = true
	f.categoriesErr = nil
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.render(snap)

	cats, err := f.deps.API.Categories(ctx)

	f.mu.Lock()
	f.categoriesLoading = false
	if err != nil {
		f.categoriesErr = err
	} else {
		f.categories = cats
		f.categoriesLoaded = true
	}
	snap = f.snapshotLocked()
	f.mu.Unlock()
	f.render(snap)

	if err != nil {
		f.deps.Logger.Warnf("%s: categories unavailable: %v", op, err)
		return e.Wrap(op, err)
	}

	return nil
}

// SetCategory выбирает категорию. Пустая строка — «без категории».
func (f *Form) SetCategory(id string) {
	f.update(func() { f.category = id })
}

// SetProperty запоминает выбранное значение свойства.
func (f *Form) SetProperty(name, value string) {
	f.update(func() { f.properties[name] = value })
}

// PropertiesToFill возвращает свойства выбранной категории с учётом наследования.
func (f *Form) PropertiesToFill() ([]domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.propertiesToFillLocked()
}

// propertiesToFillLocked пересчитывается при каждом снимке, без кэширования.
func (f *Form) propertiesToFillLocked() ([]domain.Property, error) {
	props, err := domain.ResolveProperties(f.category, f.categories)
	if err != nil {
		f.deps.Logger.Debugf("category %s: %v", f.category, err)
	}
	return props, err
}
