package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/DRSN-tech/product-admin/pkg/e"
	"github.com/shopspring/decimal"
)

// MaxPrice — верхняя граница цены, помещающаяся в NUMERIC(14,2).
var MaxPrice = decimal.New(1, 12)

// WeightPrice — одна фасовка товара: вес и цена за единицу.
type WeightPrice struct {
	Weight    string
	PriceUnit decimal.Decimal
}

// Product описывает товар каталога
type Product struct {
	ID              string
	Title           string
	Description     string
	Price           decimal.Decimal // USD
	PriceCOL        decimal.Decimal // цена в местной валюте
	WeightAndPrices []WeightPrice
	Flavors         []string
	Images          []string
	CategoryID      string
	Properties      map[string]string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// IsNew сообщает, что товар ещё не сохранён.
func (p *Product) IsNew() bool {
	return p.ID == ""
}

// Clone возвращает глубокую копию, чтобы снимки формы не делили срезы с состоянием.
func (p *Product) Clone() *Product {
	cp := *p
	cp.WeightAndPrices = append([]WeightPrice(nil), p.WeightAndPrices...)
	cp.Flavors = append([]string(nil), p.Flavors...)
	cp.Images = append([]string(nil), p.Images...)
	if p.Properties != nil {
		cp.Properties = make(map[string]string, len(p.Properties))
		for k, v := range p.Properties {
			cp.Properties[k] = v
		}
	}
	return &cp
}

// Validate проверяет товар по правилам схемы хранения:
// название обязательно, цены неотрицательны и не длиннее двух знаков после запятой,
// у каждой фасовки задан вес.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return e.NewValidationError("title", e.ErrTitleRequired.Error())
	}
	if err := ValidateMoney("price", p.Price); err != nil {
		return err
	}
	if err := ValidateMoney("priceCOL", p.PriceCOL); err != nil {
		return err
	}

	for i, wp := range p.WeightAndPrices {
		if strings.TrimSpace(wp.Weight) == "" {
			return e.NewValidationError(fmt.Sprintf("weightAndPrices[%d].weight", i), "weight is required")
		}
		if err := ValidateMoney(fmt.Sprintf("weightAndPrices[%d].priceUnit", i), wp.PriceUnit); err != nil {
			return err
		}
	}

	return nil
}

// ValidateMoney проверяет знак, границу MaxPrice и точность до копеек.
func ValidateMoney(field string, d decimal.Decimal) error {
	switch {
	case d.IsNegative():
		return e.NewValidationError(field, "must not be negative")
	case d.GreaterThanOrEqual(MaxPrice):
		return e.NewValidationError(field, e.ErrInvalidPrice.Error())
	case !d.Equal(d.Truncate(2)):
		return e.NewValidationError(field, e.ErrPricePrecision.Error())
	}
	return nil
}
