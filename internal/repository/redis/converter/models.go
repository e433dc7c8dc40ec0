package converter

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductRedisModel struct {
	ID              string                  `json:"id"`
	Title           string                  `json:"title"`
	Description     string                  `json:"description"`
	Price           decimal.Decimal         `json:"price"`
	PriceCOL        decimal.Decimal         `json:"price_col"`
	WeightAndPrices []WeightPriceRedisModel `json:"weight_and_prices"`
	Flavors         []string                `json:"flavors"`
	Images          []string                `json:"images"`
	CategoryID      string                  `json:"category_id,omitempty"`
	Properties      map[string]string       `json:"properties,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       *time.Time              `json:"updated_at,omitempty"`
}

type WeightPriceRedisModel struct {
	Weight    string          `json:"weight"`
	PriceUnit decimal.Decimal `json:"price_unit"`
}

type CategoryRedisModel struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Properties []PropertyRedisModel `json:"properties"`
	ParentID   string               `json:"parent_id,omitempty"`
}

type PropertyRedisModel struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}
