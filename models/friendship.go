package models

import (
	"strings"
	"time"
	"unicode"
)

// FriendshipStatus where a buddy request stands
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Friendship a buddy request from RequesterID to AddresseeID. A pair of users has
// at most one row, whichever of them asked first.
type Friendship struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RequesterID string           `gorm:"size:36;not null;uniqueIndex:idx_friend_pair" json:"requesterId"`
	AddresseeID string           `gorm:"size:36;not null;uniqueIndex:idx_friend_pair;index" json:"addresseeId"`
	Status      FriendshipStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Other the user on the far side of the friendship from userID
func (f Friendship) Other(userID string) string {
	if f.RequesterID == userID {
		return f.AddresseeID
	}
	return f.RequesterID
}

// Relationship values shown on a buddy
const (
	RelationshipAccepted = "accepted"
	RelationshipReceived = "received"
	RelationshipSent     = "sent"
)

// Buddy another user as shown on the friends page
type Buddy struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Age          string    `json:"age,omitempty"`
	Location     string    `json:"location,omitempty"`
	Interests    []string  `json:"interests"`
	Avatar       string    `json:"avatar"`
	Relationship string    `json:"relationship,omitempty"`
	Since        time.Time `json:"since,omitempty"`
}

// BuddySuggestion a user the caller may want to befriend
type BuddySuggestion struct {
	Buddy
	MatchScore      int `json:"matchScore"`
	MutualInterests int `json:"mutualInterests"`
}

// NewBuddy the public view of a user and their profile
func NewBuddy(user User, profile Profile) Buddy {
	name := strings.TrimSpace(profile.FirstName + " " + profile.LastName)
	if name == "" {
		name = user.Username
	}
	interests := []string(profile.Interests)
	if interests == nil {
		interests = []string{}
	}
	return Buddy{
		ID:        user.ID,
		Name:      name,
		Age:       profile.Age,
		Location:  profile.City,
		Interests: interests,
		Avatar:    Initials(name),
	}
}

// Initials up to two leading letters of name, upper-cased
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}
