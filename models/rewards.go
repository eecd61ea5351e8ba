package models

import (
	"time"
)

// PointsReason why a balance changed
type PointsReason string

const (
	PointsSignup   PointsReason = "signup"
	PointsActivity PointsReason = "activity"
	PointsRedeem   PointsReason = "redeem"
)

// PointTransaction one signed entry in a user's points ledger
type PointTransaction struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    string       `gorm:"size:36;not null;index" json:"userId"`
	Amount    int          `gorm:"not null" json:"amount"` // positive earned, negative spent
	Reason    PointsReason `gorm:"size:20;not null" json:"reason"`
	Reference string       `gorm:"size:120" json:"reference"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Reward an item points can be redeemed for
type Reward struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Points      int    `json:"points"`
	Icon        string `json:"icon"`
}

// RedeemRequest redeem one reward
type RedeemRequest struct {
	RewardID string `json:"rewardId" binding:"required"`
}

// GetDefaultRewards the reward catalog
func GetDefaultRewards() []Reward {
	return []Reward{
		{ID: "coffee", Title: "Free Coffee & Cake", Description: "Enjoy a complimentary coffee and slice of cake at the cafe", Category: "Food & Drink", Points: 50, Icon: "☕"},
		{ID: "massage", Title: "One-Hour Massage", Description: "Relaxing therapeutic massage session with our wellness therapist", Category: "Wellness", Points: 150, Icon: "💆"},
		{ID: "garden-tools", Title: "Garden Tools Set", Description: "Complete set of gardening tools for your hobby", Category: "Hobby", Points: 200, Icon: "🌱"},
		{ID: "art-supplies", Title: "Art Supplies Bundle", Description: "Premium art supplies including paints, brushes, and canvas", Category: "Arts & Crafts", Points: 120, Icon: "🎨"},
		{ID: "book-voucher", Title: "Book Store Voucher", Description: "$20 voucher to spend at the local bookstore", Category: "Education", Points: 80, Icon: "📚"},
		{ID: "cooking-pass", Title: "Cooking Class Pass", Description: "Free entry to any premium cooking class", Category: "Learning", Points: 100, Icon: "🍳"},
	}
}

// FindReward looks a reward up by id
func FindReward(id string) (Reward, bool) {
	for _, r := range GetDefaultRewards() {
		if r.ID == id {
			return r, true
		}
	}
	return Reward{}, false
}
