package converter

import (
	"github.com/DRSN-tech/product-admin/internal/domain"
)

// CacheConverter преобразует доменные сущности в модели кэша и обратно.
type CacheConverter interface {
	ToProductRedisModel(entity *domain.Product) *ProductRedisModel
	ToProduct(model *ProductRedisModel) *domain.Product
	ToArrCategoryRedisModel(entities []domain.Category) []CategoryRedisModel
	ToArrCategory(models []CategoryRedisModel) []domain.Category
}

type CacheConverterImpl struct{}

func (CacheConverterImpl) ToProductRedisModel(entity *domain.Product) *ProductRedisModel {
	tiers := make([]WeightPriceRedisModel, 0, len(entity.WeightAndPrices))
	for _, wp := range entity.WeightAndPrices {
		tiers = append(tiers, WeightPriceRedisModel{Weight: wp.Weight, PriceUnit: wp.PriceUnit})
	}

	return &ProductRedisModel{
		ID:              entity.ID,
		Title:           entity.Title,
		Description:     entity.Description,
		Price:           entity.Price,
		PriceCOL:        entity.PriceCOL,
		WeightAndPrices: tiers,
		Flavors:         entity.Flavors,
		Images:          entity.Images,
		CategoryID:      entity.CategoryID,
		Properties:      entity.Properties,
		CreatedAt:       entity.CreatedAt,
		UpdatedAt:       entity.UpdatedAt,
	}
}

func (CacheConverterImpl) ToProduct(model *ProductRedisModel) *domain.Product {
	tiers := make([]domain.WeightPrice, 0, len(model.WeightAndPrices))
	for _, wp := range model.WeightAndPrices {
		tiers = append(tiers, domain.WeightPrice{Weight: wp.Weight, PriceUnit: wp.PriceUnit})
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
		CategoryID:      model.CategoryID,
		Properties:      model.Properties,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func (CacheConverterImpl) ToArrCategoryRedisModel(entities []domain.Category) []CategoryRedisModel {
	out := make([]CategoryRedisModel, 0, len(entities))
	for _, c := range entities {
		props := make([]PropertyRedisModel, 0, len(c.Properties))
		for _, p := range c.Properties {
			props = append(props, PropertyRedisModel{Name: p.Name, Values: p.Values})
		}
		out = append(out, CategoryRedisModel{ID: c.ID, Name: c.Name, Properties: props, ParentID: c.ParentID})
	}
	return out
}

func (CacheConverterImpl) ToArrCategory(models []CategoryRedisModel) []domain.Category {
	out := make([]domain.Category, 0, len(models))
	for _, m := range models {
		props := make([]domain.Property, 0, len(m.Properties))
		for _, p := range m.Properties {
			props = append(props, domain.Property{Name: p.Name, Values: p.Values})
		}
		out = append(out, domain.Category{ID: m.ID, Name: m.Name, Properties: props, ParentID: m.ParentID})
	}
	return out
}
