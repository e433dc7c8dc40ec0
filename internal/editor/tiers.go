package editor

import (
	"fmt"

	"github.com/DRSN-tech/product-admin/pkg/e"
)

// Tier — фасовка в процессе редактирования, цена пока хранится текстом.
type Tier struct {
	Weight    string
	PriceUnit string
}

// TierField — редактируемое поле фасовки.
type TierField string

const (
	TierWeight    TierField = "weight"
	TierPriceUnit TierField = "priceUnit"
)

// AddTier добавляет пустую фасовку в конец списка.
func (f *Form) AddTier() {
	f.update(func() { f.tiers = append(f.tiers, Tier{}) })
}

// UpdateTier меняет одно поле фасовки с индексом index.
func (f *Form) UpdateTier(index int, field TierField, value string) error {
	f.mu.Lock()
	if err := f.checkTierIndexLocked(index); err != nil {
		f.mu.Unlock()
		return err
	}

	switch field {
	case TierWeight:
		f.tiers[index].Weight = value
	case TierPriceUnit:
		f.tiers[index].PriceUnit = value
	default:
		f.mu.Unlock()
		return e.NewValidationError(tierFieldName(index, string(field)), "unknown tier field")
	}

	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.render(snap)

	return nil
}

// RemoveTier удаляет фасовку; следующие сдвигаются на одну позицию.
func (f *Form) RemoveTier(index int) error {
	f.mu.Lock()
	if err := f.checkTierIndexLocked(index); err != nil {
		f.mu.Unlock()
		return err
	}

	f.tiers = append(f.tiers[:index:index], f.tiers[index+1:]...)
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.render(snap)

	return nil
}

func (f *Form) checkTierIndexLocked(index int) error {
	if index < 0 || index >= len(f.tiers) {
		return e.NewValidationError("weightAndPrices", fmt.Sprintf("no tier at index %d", index))
	}
	return nil
}

func tierFieldName(index int, field string) string {
	return fmt.Sprintf("weightAndPrices[%d].%s", index, field)
}
