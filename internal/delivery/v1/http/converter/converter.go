// Package converter переводит доменные модели в JSON-формат API и обратно.
// Пакетом пользуются и HTTP-обработчики, и клиент API редактора.
package converter

import (
	"fmt"
	"strings"

	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/pkg/e"
)

// ToDomainProduct проверяет обязательные поля документа и собирает доменный товар.
func ToDomainProduct(in *ProductJSON) (*domain.Product, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, e.NewValidationError("title", e.ErrTitleRequired.Error())
	}
	if in.Price == nil {
		return nil, e.NewValidationError("price", "price is required")
	}
	if in.PriceCOL == nil {
		return nil, e.NewValidationError("priceCOL", "priceCOL is required")
	}

	tiers := make([]domain.WeightPrice, 0, len(in.WeightAndPrices))
	for i, wp := range in.WeightAndPrices {
		if strings.TrimSpace(wp.Weight) == "" {
			return nil, e.NewValidationError(fmt.Sprintf("weightAndPrices[%d].weight", i), "weight is required")
		}
		if wp.PriceUnit == nil {
			return nil, e.NewValidationError(fmt.Sprintf("weightAndPrices[%d].priceUnit", i), "priceUnit is required")
		}
		tiers = append(tiers, domain.WeightPrice{Weight: wp.Weight, PriceUnit: wp.PriceUnit.Decimal})
	}

	return &domain.Product{
		ID:              in.ID,
		Title:           in.Title,
		Description:     in.Description,
		Price:           in.Price.Decimal,
		PriceCOL:        in.PriceCOL.Decimal,
		WeightAndPrices: tiers,
		Flavors:         in.Flavors,
		Images:          in.Images,
		CategoryID:      in.Category,
		Properties:      in.Properties,
	}, nil
}

func FromDomainProduct(p *domain.Product) ProductJSON {
	tiers := make([]WeightPriceJSON, 0, len(p.WeightAndPrices))
	for _, wp := range p.WeightAndPrices {
		tiers = append(tiers, WeightPriceJSON{Weight: wp.Weight, PriceUnit: NewMoney(wp.PriceUnit)})
	}

	out := ProductJSON{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		Price:           NewMoney(p.Price),
		PriceCOL:        NewMoney(p.PriceCOL),
		WeightAndPrices: tiers,
		Flavors:         p.Flavors,
		Images:          p.Images,
		Category:        p.CategoryID,
		Properties:      p.Properties,
		UpdatedAt:       p.UpdatedAt,
	}
	if !p.CreatedAt.IsZero() {
		createdAt := p.CreatedAt
		out.CreatedAt = &createdAt
	}

	return out
}

func FromDomainProducts(products []domain.Product) []ProductJSON {
	out := make([]ProductJSON, 0, len(products))
	for i := range products {
		out = append(out, FromDomainProduct(&products[i]))
	}
	return out
}

// FromDomainCategories подставляет в parent имя родителя из того же списка.
func FromDomainCategories(categories []domain.Category) []CategoryJSON {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	out := make([]CategoryJSON, 0, len(categories))
	for _, c := range categories {
		props := make([]PropertyJSON, 0, len(c.Properties))
		for _, p := range c.Properties {
			props = append(props, PropertyJSON{Name: p.Name, Values: p.Values})
		}

		item := CategoryJSON{ID: c.ID, Name: c.Name, Properties: props}
		if c.ParentID != "" {
			item.Parent = &ParentRefJSON{ID: c.ParentID, Name: names[c.ParentID]}
		}
		out = append(out, item)
	}

	return out
}

func ToDomainCategories(in []CategoryJSON) []domain.Category {
	out := make([]domain.Category, 0, len(in))
	for _, c := range in {
		props := make([]domain.Property, 0, len(c.Properties))
		for _, p := range c.Properties {
			props = append(props, domain.Property{Name: p.Name, Values: p.Values})
		}

		cat := domain.Category{ID: c.ID, Name: c.Name, Properties: props}
		if c.Parent != nil {
			cat.ParentID = c.Parent.ID
		}
		out = append(out, cat)
	}

	return out
}
