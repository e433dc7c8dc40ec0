package domain

import (
	"time"

	"github.com/DRSN-tech/product-admin/pkg/e"
)

// Property — свойство с перечислимыми значениями (например, цвет).
type Property struct {
	Name   string
	Values []string
}

// Category описывает категорию товара. ParentID пуст у корневой категории.
type Category struct {
	ID         string
	Name       string
	Properties []Property
	ParentID   string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// ResolveProperties собирает свойства категории и всех её предков:
// сначала собственные, затем от ближайшего предка к самому дальнему.
//
// Пустой id, пустой список или неизвестная категория дают пустой результат.
// Если родитель отсутствует в списке, обход заканчивается на нём.
// При повторном заходе в категорию возвращается собранное и e.ErrCategoryCycle.
func ResolveProperties(categoryID string, categories []Category) ([]Property, error) {
	if categoryID == "" || len(categories) == 0 {
		return nil, nil
	}

	byID := make(map[string]*Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}

	var (
		result  []Property
		visited = make(map[string]struct{})
	)

	for id := categoryID; id != ""; {
		cat, ok := byID[id]
		if !ok {
			break
		}
		if _, seen := visited[id]; seen {
			return result, e.ErrCategoryCycle
		}
		visited[id] = struct{}{}

		result = append(result, cat.Properties...)
		id = cat.ParentID
	}

	return result, nil
}
