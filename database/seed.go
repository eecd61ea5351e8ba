package database

import (
	"gorm.io/gorm"

	"github.com/YongERong/wth-caifan-lovers/models"
)

// SeedActivities inserts catalog activities that are not stored yet
func SeedActivities(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, activity := range models.GetDefaultActivities() {
			a := activity
			if err := tx.Where(models.Activity{ID: a.ID}).FirstOrCreate(&a).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListActivities every activity ordered by legacy number then title
func ListActivities(db *gorm.DB) ([]models.Activity, error) {
	var activities []models.Activity
	err := db.Order("number").Order("title").Find(&activities).Error
	return activities, err
}

// ActivitiesByID the stored activities among ids, keyed by id
func ActivitiesByID(db *gorm.DB, ids []string) (map[string]models.Activity, error) {
	byID := make(map[string]models.Activity, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	var activities []models.Activity
	if err := db.Where("id IN ?", ids).Find(&activities).Error; err != nil {
		return nil, err
	}
	for _, a := range activities {
		byID[a.ID] = a
	}
	return byID, nil
}
