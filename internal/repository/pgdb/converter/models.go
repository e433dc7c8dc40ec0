package converter

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID              string             `db:"id"`
	Title           string             `db:"title"`
	Description     string             `db:"description"`
	Price           decimal.Decimal    `db:"price"`
	PriceCOL        decimal.Decimal    `db:"price_col"`
	WeightAndPrices []WeightPriceModel `db:"weight_and_prices"` // jsonb
	Flavors         []string           `db:"flavors"`
	Images          []string           `db:"images"`
	CategoryID      *string            `db:"category_id"`
	Properties      map[string]string  `db:"properties"` // jsonb
	CreatedAt       time.Time          `db:"created_at"`
	UpdatedAt       *time.Time         `db:"updated_at"`
}

type WeightPriceModel struct {
	Weight    string          `json:"weight"`
	PriceUnit decimal.Decimal `json:"priceUnit"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID         string          `db:"id"`
	Name       string          `db:"name"`
	Properties []PropertyModel `db:"properties"` // jsonb
	ParentID   *string         `db:"parent_id"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  *time.Time      `db:"updated_at"`
}

type PropertyModel struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	ProductID   string     `db:"product_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
