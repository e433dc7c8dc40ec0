package converter

import (
	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
}

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
type CategoryConverter interface {
	ToEntity(model *CategoryModel) *domain.Category
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type ProductConverterImpl struct{}

func (ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	tiers := make([]WeightPriceModel, 0, len(entity.WeightAndPrices))
	for _, wp := range entity.WeightAndPrices {
		tiers = append(tiers, WeightPriceModel{Weight: wp.Weight, PriceUnit: wp.PriceUnit})
	}

	props := entity.Properties
	if props == nil {
		props = map[string]string{}
	}

	return &ProductModel{
		ID:              entity.ID,
		Title:           entity.Title,
		Description:     entity.Description,
		Price:           entity.Price,
		PriceCOL:        entity.PriceCOL,
		WeightAndPrices: tiers,
		Flavors:         nonNil(entity.Flavors),
		Images:          nonNil(entity.Images),
		CategoryID:      optional(entity.CategoryID),
		Properties:      props,
		CreatedAt:       entity.CreatedAt,
		UpdatedAt:       entity.UpdatedAt,
	}
}

func (ProductConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	tiers := make([]domain.WeightPrice, 0, len(model.WeightAndPrices))
	for _, wp := range model.WeightAndPrices {
		tiers = append(tiers, domain.WeightPrice{Weight: wp.Weight, PriceUnit: wp.PriceUnit})
	}

	var categoryID string
	if model.CategoryID != nil {
		categoryID = *model.CategoryID
	}

	return &domain.Product{
		ID:              model.ID,
		Title:           model.Title,
		Description:     model.Description,
		Price:           model.Price,
		PriceCOL:        model.PriceCOL,
		WeightAndPrices: tiers,
		Flavors:         model.Flavors,
		Images:          model.Images,
		CategoryID:      categoryID,
		Properties:      model.Properties,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

type CategoryConverterImpl struct{}

func (CategoryConverterImpl) ToEntity(model *CategoryModel) *domain.Category {
	props := make([]domain.Property, 0, len(model.Properties))
	for _, p := range model.Properties {
		props = append(props, domain.Property{Name: p.Name, Values: p.Values})
	}

	var parentID string
	if model.ParentID != nil {
		parentID = *model.ParentID
	}

	return &domain.Category{
		ID:         model.ID,
		Name:       model.Name,
		Properties: props,
		ParentID:   parentID,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

type OutboxEventConverterImpl struct{}

func (OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		ProductID:   entity.ProductID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		ProductID:   model.ProductID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	out := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		out = append(out, c.ToEntity(m))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
