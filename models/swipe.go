package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SwipeAction is the judgment recorded against an activity
type SwipeAction string

const (
	SwipeLike SwipeAction = "like"
	SwipePass SwipeAction = "pass"
)

// Valid reports whether a is one of the known actions
func (a SwipeAction) Valid() bool {
	return a == SwipeLike || a == SwipePass
}

// HostedValue the yes/no value the web client stores for a
func (a SwipeAction) HostedValue() string {
	if a == SwipeLike {
		return "yes"
	}
	return "no"
}

// ParseSwipeAction accepts like/pass as well as the yes/no values older clients send
func ParseSwipeAction(s string) (SwipeAction, error) {
	switch s {
	case "like", "yes":
		return SwipeLike, nil
	case "pass", "no":
		return SwipePass, nil
	default:
		return "", fmt.Errorf("unsupported swipe action: %q", s)
	}
}

// SwipeDecision one like/pass per (user, activity) swipe event.
// Re-swiping inserts another row; there is no uniqueness on (swiper_id, activity_id).
type SwipeDecision struct {
	ID         string      `gorm:"size:36;primaryKey" json:"id"`
	SwiperID   string      `gorm:"size:36;not null;index" json:"swiper_id"`
	ActivityID string      `gorm:"size:36;not null" json:"activity_id"`
	Action     SwipeAction `gorm:"size:10;not null" json:"action"`
	SwipedAt   time.Time   `gorm:"not null;index" json:"swiped_at"`
}

// TableName keeps the table name used by the hosted store
func (SwipeDecision) TableName() string {
	return "swipe_history"
}

// BeforeCreate assigns the identifier and timestamp on insert
func (d *SwipeDecision) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.SwipedAt.IsZero() {
		d.SwipedAt = time.Now().UTC()
	}
	return nil
}

// SwipeRequest records one swipe
type SwipeRequest struct {
	ActivityID string `json:"activityId" binding:"required"`
	Action     string `json:"action" binding:"required"`
}

// SwipeHistoryItem a decision joined with the card it was made on
type SwipeHistoryItem struct {
	SwipeDecision
	Activity Activity `json:"activity"`
}

// SwipeStats counts over a swiper's full history
type SwipeStats struct {
	Total  int `json:"total"`
	Liked  int `json:"liked"`
	Passed int `json:"passed"`
}

// NewSwipeStats tallies decisions by action; yes/no rows count as like/pass
func NewSwipeStats(decisions []SwipeDecision) SwipeStats {
	stats := SwipeStats{Total: len(decisions)}
	for _, d := range decisions {
		action, _ := ParseSwipeAction(string(d.Action))
		switch action {
		case SwipeLike:
			stats.Liked++
		case SwipePass:
			stats.Passed++
		}
	}
	return stats
}
