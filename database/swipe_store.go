package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/YongERong/wth-caifan-lovers/models"
)

// ErrNotFound no record matched
var ErrNotFound = errors.New("record not found")

// SwipeStore persists swipe history. Decisions are only ever inserted or deleted.
type SwipeStore interface {
	Insert(ctx context.Context, decision *models.SwipeDecision) error
	// ListBySwiper newest first
	ListBySwiper(ctx context.Context, swiperID string) ([]models.SwipeDecision, error)
	// DeleteByID removes one of the swiper's own decisions
	DeleteByID(ctx context.Context, swiperID, id string) error
	// DeleteBySwiper clears the swiper's history and reports how many rows went
	DeleteBySwiper(ctx context.Context, swiperID string) (int64, error)
}

// GormSwipeStore swipe history in the application database
type GormSwipeStore struct {
	db *gorm.DB
}

func NewGormSwipeStore(db *gorm.DB) *GormSwipeStore {
	return &GormSwipeStore{db: db}
}

func (s *GormSwipeStore) Insert(ctx context.Context, decision *models.SwipeDecision) error {
	return s.db.WithContext(ctx).Create(decision).Error
}

func (s *GormSwipeStore) ListBySwiper(ctx context.Context, swiperID string) ([]models.SwipeDecision, error) {
	var decisions []models.SwipeDecision
	err := s.db.WithContext(ctx).
		Where("swiper_id = ?", swiperID).
		Order("swiped_at DESC").
		Find(&decisions).Error
	return decisions, err
}

func (s *GormSwipeStore) DeleteByID(ctx context.Context, swiperID, id string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND swiper_id = ?", id, swiperID).
		Delete(&models.SwipeDecision{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormSwipeStore) DeleteBySwiper(ctx context.Context, swiperID string) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("swiper_id = ?", swiperID).
		Delete(&models.SwipeDecision{})
	return result.RowsAffected, result.Error
}
