package editor

import (
	"context"
	"errors"
	"strings"

	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/pkg/e"
	"github.com/shopspring/decimal"
)

// Submit проверяет форму, создаёт или обновляет товар и уходит на список товаров.
// Пока идёт загрузка фото или предыдущее сохранение, отправка запрещена.
// При ошибке состояние формы не меняется, ошибка доступна в Snapshot.SubmitErr.
func (f *Form) Submit(ctx context.Context) error {
	const op = "Form.Submit"

	f.mu.Lock()
	if f.pendingUploads > 0 {
		f.mu.Unlock()
		return e.ErrUploadInProgress
	}
	if f.submitting {
		f.mu.Unlock()
		return e.ErrSubmitInProgress
	}

	payload, verrs := f.buildPayloadLocked()
	if len(verrs) > 0 {
		f.fieldErrors = make(map[string]string, len(verrs))
		errs := make([]error, 0, len(verrs))
		for _, v := range verrs {
			f.fieldErrors[v.Field] = v.Reason
			errs = append(errs, v)
		}
		f.submitErr = errors.Join(errs...)
		err := f.submitErr
		snap := f.snapshotLocked()
		f.mu.Unlock()
		f.render(snap)
		return err
	}

	f.fieldErrors = nil
	f.submitErr = nil
	f.submitting = true
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.render(snap)

	var err error
	if payload.IsNew() {
		err = f.deps.API.CreateProduct(ctx, payload)
	} else {
		err = f.deps.API.UpdateProduct(ctx, payload)
	}

	f.mu.Lock()
	f.submitting = false
	f.submitErr = err
	snap = f.snapshotLocked()
	f.mu.Unlock()
	f.render(snap)

	if err != nil {
		f.deps.Logger.Warnf("%s: product %q not saved: %v", op, payload.Title, err)
		return e.Wrap(op, err)
	}

	f.deps.Logger.Infof("%s: product %q saved", op, payload.Title)
	if f.deps.Navigator != nil {
		f.deps.Navigator.Navigate(ProductsPath)
	}

	return nil
}

// buildPayloadLocked собирает товар из полей формы и возвращает все ошибки проверки разом.
func (f *Form) buildPayloadLocked() (*domain.Product, []*e.ValidationError) {
	var verrs []*e.ValidationError

	if strings.TrimSpace(f.title) == "" {
		verrs = append(verrs, e.NewValidationError("title", "is required"))
	}

	price, verr := parseMoney("price", f.price)
	if verr != nil {
		verrs = append(verrs, verr)
	}

	priceCOL, verr := parseMoney("priceCOL", f.priceCOL)
	if verr != nil {
		verrs = append(verrs, verr)
	}

	tiers := make([]domain.WeightPrice, 0, len(f.tiers))
	for i, t := range f.tiers {
		if strings.TrimSpace(t.Weight) == "" {
			verrs = append(verrs, e.NewValidationError(tierFieldName(i, string(TierWeight)), "is required"))
		}
		unit, verr := parseMoney(tierFieldName(i, string(TierPriceUnit)), t.PriceUnit)
		if verr != nil {
			verrs = append(verrs, verr)
			continue
		}
		tiers = append(tiers, domain.WeightPrice{Weight: t.Weight, PriceUnit: unit})
	}

	if len(verrs) > 0 {
		return nil, verrs
	}

	props := make(map[string]string, len(f.properties))
	for k, v := range f.properties {
		props[k] = v
	}

	return &domain.Product{
		ID:              f.id,
		Title:           f.title,
		Description:     f.description,
		Price:           price,
		PriceCOL:        priceCOL,
		WeightAndPrices: tiers,
		Flavors:         ParseFlavors(f.flavors),
		Images:          append([]string(nil), f.images...),
		CategoryID:      f.category,
		Properties:      props,
	}, nil
}

// parseMoney разбирает обязательное денежное поле и проверяет его теми же правилами, что и сервер.
func parseMoney(field, raw string) (decimal.Decimal, *e.ValidationError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, e.NewValidationError(field, "is required")
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, e.NewValidationError(field, "must be a number")
	}
	if err := domain.ValidateMoney(field, d); err != nil {
		var verr *e.ValidationError
		if errors.As(err, &verr) {
			return decimal.Zero, verr
		}
		return decimal.Zero, e.NewValidationError(field, err.Error())
	}

	return d, nil
}
