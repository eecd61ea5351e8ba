package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity a scheduled event users may join or swipe on.
// The swipe deck and the history view only ever read it.
type Activity struct {
	ID              string    `gorm:"size:36;primaryKey" json:"id"`
	Number          int       `gorm:"index" json:"number"` // legacy integer id used by older clients
	Title           string    `gorm:"size:120;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	Category        string    `gorm:"size:50" json:"category"`
	Date            string    `gorm:"size:10" json:"date"`
	Time            string    `gorm:"size:40" json:"time"`
	Location        string    `gorm:"size:120" json:"location"`
	Participants    int       `json:"participants"`
	MaxParticipants int       `json:"maxParticipants"`
	Difficulty      string    `gorm:"size:30" json:"difficulty"`
	Points          int       `json:"points"`
	Image           string    `gorm:"size:16" json:"image"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// BeforeCreate assigns a UUID when the caller did not
func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// SpotsLeft remaining capacity, never negative
func (a Activity) SpotsLeft() int {
	if a.Participants >= a.MaxParticipants {
		return 0
	}
	return a.MaxParticipants - a.Participants
}

// ActivityRegistration a user's place on an activity
type ActivityRegistration struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"size:36;not null;uniqueIndex:idx_registration" json:"userId"`
	ActivityID string    `gorm:"size:36;not null;uniqueIndex:idx_registration" json:"activityId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UnknownActivity stands in for cards the catalog no longer has
func UnknownActivity(id string) Activity {
	return Activity{
		ID:          id,
		Title:       "Unknown Activity",
		Description: "Activity details not available",
		Category:    "Unknown",
		Date:        "TBD",
		Time:        "TBD",
		Location:    "TBD",
		Image:       "❓",
	}
}

// DefaultActivityID store identifier of the n-th catalog activity
func DefaultActivityID(n int) string {
	return fmt.Sprintf("00000000-0000-0000-0000-%012d", n)
}

// GetDefaultActivities the seeded catalog
func GetDefaultActivities() []Activity {
	activities := []Activity{
		{
			Number:          1,
			Title:           "Morning Tai Chi",
			Description:     "Gentle movement practice perfect for maintaining flexibility and balance",
			Category:        "Exercise",
			Date:            "2024-09-21",
			Time:            "9:00 AM - 10:00 AM",
			Location:        "Garden Pavilion",
			Participants:    12,
			MaxParticipants: 20,
			Difficulty:      "Beginner",
			Points:          15,
			Image:           "🧘",
		},
		{
			Number:          2,
			Title:           "Creative Watercolor Painting",
			Description:     "Express yourself through beautiful watercolor techniques with guided instruction",
			Category:        "Arts & Crafts",
			Date:            "2024-09-22",
			Time:            "2:00 PM - 4:00 PM",
			Location:        "Art Studio",
			Participants:    8,
			MaxParticipants: 15,
			Difficulty:      "All Levels",
			Points:          20,
			Image:           "🎨",
		},
		{
			Number:          3,
			Title:           "Book Club: Classic Literature",
			Description:     "Join us for engaging discussions about timeless novels and stories",
			Category:        "Social",
			Date:            "2024-09-23",
			Time:            "10:30 AM - 12:00 PM",
			Location:        "Library Lounge",
			Participants:    6,
			MaxParticipants: 12,
			Difficulty:      "All Levels",
			Points:          10,
			Image:           "📚",
		},
		{
			Number:          4,
			Title:           "Cooking Workshop: Asian Delights",
			Description:     "Learn to prepare delicious traditional Asian dishes",
			Category:        "Cooking",
			Date:            "2024-09-24",
			Time:            "11:00 AM - 1:00 PM",
			Location:        "Community Kitchen",
			Participants:    4,
			MaxParticipants: 8,
			Difficulty:      "Intermediate",
			Points:          25,
			Image:           "🍳",
		},
		{
			Number:          5,
			Title:           "Nature Photography Walk",
			Description:     "Explore the beautiful gardens while learning photography tips",
			Category:        "Outdoor",
			Date:            "2024-09-25",
			Time:            "8:00 AM - 10:00 AM",
			Location:        "Botanical Gardens",
			Participants:    7,
			MaxParticipants: 10,
			Difficulty:      "All Levels",
			Points:          15,
			Image:           "📸",
		},
		{
			Number:          6,
			Title:           "Music Therapy Session",
			Description:     "Relaxing musical activities to enhance wellbeing and memory",
			Category:        "Wellness",
			Date:            "2024-09-26",
			Time:            "3:00 PM - 4:30 PM",
			Location:        "Music Room",
			Participants:    10,
			MaxParticipants: 15,
			Difficulty:      "All Levels",
			Points:          18,
			Image:           "🎵",
		},
	}
	for i := range activities {
		activities[i].ID = DefaultActivityID(activities[i].Number)
	}
	return activities
}
