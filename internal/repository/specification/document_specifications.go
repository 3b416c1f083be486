package specification

import (
	"encoding/json"

	"gorm.io/gorm"
)

// BySource filters documents by their source label
type BySource struct {
	Source string
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source = ?", s.Source)
}

// HasCategory filters documents whose JSON categories list contains the
// given category.
type HasCategory struct {
	Category string
}

func (s HasCategory) Apply(db *gorm.DB) *gorm.DB {
	raw, err := json.Marshal([]string{s.Category})
	if err != nil {
		return db
	}
	return db.Where("categories @> ?", string(raw))
}
