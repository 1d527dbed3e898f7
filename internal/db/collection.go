package db

import (
	"gorm.io/gorm"
)

// collection implements the full-collection contract shared by the
// lifestyle record tables: list all, create, delete by id.
type collection[T any] struct {
	database *gorm.DB
	order    string
}

func (repo *collection[T]) ListAll() ([]T, error) {
	records := make([]T, 0)
	if err := repo.database.Order(repo.order).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *collection[T]) Count() (int64, error) {
	var count int64
	var model T
	if err := repo.database.Model(&model).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *collection[T]) Create(record *T) error {
	return repo.database.Create(record).Error
}

// DeleteByID reports false when no record had the id.
func (repo *collection[T]) DeleteByID(id string) (bool, error) {
	var model T
	result := repo.database.Where("id = ?", id).Delete(&model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
