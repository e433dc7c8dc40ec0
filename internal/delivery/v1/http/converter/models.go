package converter

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money — денежное значение, которое в JSON всегда пишется числом.
// При чтении принимаются и число, и строка с числом.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) *Money {
	return &Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}

type WeightPriceJSON struct {
	Weight    string `json:"weight"`
	PriceUnit *Money `json:"priceUnit"`
}

// ProductJSON — товар в формате API. _id отсутствует у нового товара.
type ProductJSON struct {
	ID              string            `json:"_id,omitempty"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Price           *Money            `json:"price"`
	PriceCOL        *Money            `json:"priceCOL"`
	WeightAndPrices []WeightPriceJSON `json:"weightAndPrices"`
	Flavors         []string          `json:"flavors"`
	Images          []string          `json:"images"`
	Category        string            `json:"category,omitempty"`
	Properties      map[string]string `json:"properties"`
	CreatedAt       *time.Time        `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time        `json:"updatedAt,omitempty"`
}

type PropertyJSON struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type ParentRefJSON struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// CategoryJSON — категория в формате API, parent равен null у корневой.
type CategoryJSON struct {
	ID         string         `json:"_id"`
	Name       string         `json:"name"`
	Properties []PropertyJSON `json:"properties"`
	Parent     *ParentRefJSON `json:"parent"`
}

type UploadResponse struct {
	Links []string `json:"links"`
}

type ProductListResponse struct {
	Items   []ProductJSON `json:"items"`
	Total   int64         `json:"total"`
	Page    int           `json:"page"`
	PerPage int           `json:"perPage"`
}

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
