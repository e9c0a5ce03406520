package specification

import "gorm.io/gorm"

type ByConfigKey struct {
	Key string
}

func (s ByConfigKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("key = ?", s.Key)
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}
